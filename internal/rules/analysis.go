package rules

import (
	"fmt"
	"math"

	"diet-calculator/internal/models"
	"diet-calculator/internal/nutrition"
)

// BuildNutritionalAnalysis summarizes the metabolic profile and macro balance
// and adds micronutrient and meal-timing advice.
func BuildNutritionalAnalysis(p models.UserProfile, t models.NutritionTargets) models.NutritionalAnalysis {
	bmi := nutrition.BMI(p.Height, p.Weight)
	proteinPerKg := 0.0
	if p.Weight > 0 {
		proteinPerKg = math.Round(t.ProteinGrams/p.Weight*10) / 10
	}

	balance := macroBalance(t)
	balance.Assessment = macroAssessment(p, balance)

	return models.NutritionalAnalysis{
		MetabolicProfile: models.MetabolicProfile{
			BMR:          math.Round(t.BMR),
			TDEE:         math.Round(t.TDEE),
			BMI:          bmi,
			BMICategory:  nutrition.BMICategory(bmi),
			ProteinPerKg: proteinPerKg,
			Analysis:     metabolicAnalysis(p, bmi, proteinPerKg),
		},
		MacroBalance:       balance,
		MicronutrientFocus: micronutrientFocus(p),
		MealTimingStrategy: mealTiming(p),
		Recommendations:    nutrition.Recommendations(p),
		IdealWeightRange:   nutrition.IdealWeightRange(p.Height),
		TimeToGoal:         nutrition.TimeToGoal(p.Weight, p.GoalWeight, t.DailyCalories, t.TDEE),
	}
}

func macroBalance(t models.NutritionTargets) models.MacroBalance {
	if t.DailyCalories <= 0 {
		return models.MacroBalance{}
	}
	pct := func(grams, kcalPerGram float64) int {
		return int(math.Round(grams * kcalPerGram / t.DailyCalories * 100))
	}
	return models.MacroBalance{
		ProteinPercent: pct(t.ProteinGrams, 4),
		CarbPercent:    pct(t.CarbGrams, 4),
		FatPercent:     pct(t.FatGrams, 9),
	}
}

func macroAssessment(p models.UserProfile, b models.MacroBalance) string {
	verdict := "balanced for general health and your specified goals."
	switch {
	case p.Goal == models.GoalBuildMuscle && b.ProteinPercent >= 25:
		verdict = "well-suited for muscle building with adequate protein for synthesis."
	case p.Goal == models.GoalLoseWeight && b.ProteinPercent >= 30:
		verdict = "excellent for weight loss with high protein to preserve muscle mass."
	case p.MacronutrientRatio == models.RatioLowCarb && b.CarbPercent <= 20:
		verdict = "aligned with low-carb principles for metabolic flexibility."
	}
	return fmt.Sprintf("Your macro split (%d%% protein, %d%% carbs, %d%% fat) is %s",
		b.ProteinPercent, b.CarbPercent, b.FatPercent, verdict)
}

func metabolicAnalysis(p models.UserProfile, bmi, proteinPerKg float64) string {
	status := "obese"
	switch nutrition.BMICategory(bmi) {
	case nutrition.BMIUnderweight:
		status = "underweight"
	case nutrition.BMINormal:
		status = "healthy weight"
	case nutrition.BMIOverweight:
		status = "overweight"
	}

	intake := "within recommended range"
	switch {
	case proteinPerKg < 1.2:
		intake = "below optimal"
	case proteinPerKg > 2.0:
		intake = "quite high"
	}
	return fmt.Sprintf("Your metabolic profile indicates %s status. Your protein intake of %.1fg/kg is %s for your %s goal.",
		status, proteinPerKg, intake, p.Goal.Label())
}

func micronutrientFocus(p models.UserProfile) []string {
	f := p.Flags()
	out := []string{}

	if p.Sex == models.SexFemale && p.Age < 50 {
		out = append(out,
			"Iron-rich foods (spinach, lean meats, legumes) due to menstrual losses",
			"Folate sources (leafy greens, fortified grains) for reproductive health",
		)
	}
	if p.Age > 50 {
		out = append(out,
			"Vitamin B12 and D3 for age-related absorption changes",
			"Calcium-rich foods for bone health maintenance",
		)
	}
	if p.Goal == models.GoalAthleticPerformance || p.ExerciseIntensity.Intense() {
		out = append(out,
			"Antioxidant-rich foods (berries, colorful vegetables) for recovery",
			"Electrolyte balance through natural sources (coconut water, bananas)",
		)
	}
	if f.Vegan {
		omega := "Omega-3 from algae sources or walnuts, flax seeds"
		if f.NutAllergy {
			omega = "Omega-3 from algae sources, flax and chia seeds"
		}
		out = append(out,
			"B12 supplementation is essential for vegans",
			omega,
			"Iron absorption enhancers (vitamin C foods with iron-rich meals)",
		)
	}
	return out
}

func mealTiming(p models.UserProfile) string {
	meals := mealCount(p.MealsPerDay)
	switch {
	case p.ExerciseIntensity.Intense():
		return fmt.Sprintf("For your high-intensity training: Eat carbs 1-2 hours before workouts, protein within 30 minutes after. Space your %d meals every %.0f hours while awake.",
			meals, math.Round(16/float64(meals)))
	case p.Goal == models.GoalLoseWeight:
		return fmt.Sprintf("For weight loss: Consider longer gaps between meals to promote fat oxidation. Your %d meals can be spaced 3-4 hours apart with the last meal 2-3 hours before bed.", meals)
	}
	return fmt.Sprintf("Spread your %d meals evenly throughout the day, ensuring protein at each meal for optimal muscle protein synthesis.", meals)
}
