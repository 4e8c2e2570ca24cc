package nutrition

import (
	"math"

	"diet-calculator/internal/models"
)

const (
	BMIUnderweight = "underweight"
	BMINormal      = "normal"
	BMIOverweight  = "overweight"
	BMIObese       = "obese"
)

func BMI(height, weight float64) float64 {
	if height <= 0 {
		return 0
	}
	m := height / 100
	return round(weight/(m*m), 1)
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// IdealWeightRange is the weight band corresponding to a BMI of 20 to 25.
func IdealWeightRange(height float64) models.WeightRange {
	m := height / 100
	return models.WeightRange{
		Min: round(20*m*m, 1),
		Max: round(25*m*m, 1),
	}
}

// TimeToGoal estimates how long the daily surplus or deficit takes to close the gap.
// It returns nil when there is no goal weight or no energy difference.
func TimeToGoal(currentWeight float64, goalWeight *float64, dailyCalories, tdee float64) *models.TimeToGoal {
	if goalWeight == nil || *goalWeight == currentWeight {
		return nil
	}
	daily := math.Abs(tdee - dailyCalories)
	if daily == 0 {
		return nil
	}
	days := math.Abs(currentWeight-*goalWeight) * kcalPerKgFat / daily
	weeks := int(math.Ceil(days / 7))
	return &models.TimeToGoal{
		Weeks:  weeks,
		Months: round(float64(weeks)/4.33, 1),
	}
}

// Recommendations returns advice driven by BMI band, age, sex and goal.
func Recommendations(p models.UserProfile) []string {
	var out []string

	switch BMICategory(BMI(p.Height, p.Weight)) {
	case BMIUnderweight:
		out = append(out, "Focus on healthy weight gain with nutrient-dense, calorie-rich foods.")
		if p.Flags().NutAllergy {
			out = append(out, "Include healthy fats like seeds, avocados, and olive oil in your meals.")
		} else {
			out = append(out, "Include healthy fats like nuts, avocados, and olive oil in your meals.")
		}
	case BMIOverweight, BMIObese:
		out = append(out,
			"Prioritize whole foods and increase physical activity gradually.",
			"Focus on creating a moderate calorie deficit for sustainable weight loss.",
		)
	default:
		out = append(out, "Maintain your healthy weight with balanced nutrition and regular exercise.")
	}

	if p.Age > 50 {
		out = append(out,
			"Ensure adequate calcium and vitamin D intake for bone health.",
			"Consider adding resistance training to maintain muscle mass.",
		)
	}
	if p.Sex == models.SexFemale && p.Age < 50 {
		out = append(out, "Ensure adequate iron intake, especially if you experience heavy menstrual periods.")
	}

	switch p.Goal {
	case models.GoalBuildMuscle:
		out = append(out,
			"Consume protein within 2 hours after strength training for optimal muscle synthesis.",
			"Aim for 1.6-2.2g protein per kg of body weight daily.",
		)
	case models.GoalLoseWeight:
		out = append(out,
			"Eat slowly and mindfully to help recognize satiety cues.",
			"Include fiber-rich foods to help you feel full with fewer calories.",
		)
	case models.GoalAthleticPerformance:
		out = append(out,
			"Time your carbohydrate intake around training sessions for optimal performance.",
			"Stay well-hydrated before, during, and after exercise.",
		)
	}
	return out
}
