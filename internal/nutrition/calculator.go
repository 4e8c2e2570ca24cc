// Package nutrition computes energy and macronutrient targets from a user profile.
package nutrition

import (
	"math"

	"diet-calculator/internal/models"
)

const (
	kcalPerKgFat     = 7700
	minDailyCalories = 1200
	minDailyDeficit  = 300
	maxDailyDeficit  = 1000
	minWaterMl       = 2000
	maxWaterMl       = 4000
)

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:        1.2,
	models.ActivityLightlyActive:    1.375,
	models.ActivityModeratelyActive: 1.55,
	models.ActivityVeryActive:       1.725,
	models.ActivityExtremelyActive:  1.9,
}

// Flat kcal added on top of the activity-scaled BMR.
var exerciseOffsets = map[models.ExerciseIntensity]float64{
	models.IntensityLow:      0,
	models.IntensityModerate: 100,
	models.IntensityHigh:     200,
	models.IntensityVeryHigh: 300,
}

var waterBonuses = map[models.ExerciseIntensity]float64{
	models.IntensityLow:      250,
	models.IntensityModerate: 500,
	models.IntensityHigh:     750,
	models.IntensityVeryHigh: 1000,
}

type macroSplit struct {
	protein, carbs, fat float64
}

var macroRatios = map[models.MacroRatio]macroSplit{
	models.RatioBalanced:    {0.25, 0.45, 0.30},
	models.RatioHighProtein: {0.35, 0.35, 0.30},
	models.RatioLowCarb:     {0.30, 0.20, 0.50},
	models.RatioHighCarb:    {0.20, 0.60, 0.20},
}

var muscleBalanced = macroSplit{0.30, 0.40, 0.30}

// ComputeBMR uses the Mifflin-St Jeor equation.
func ComputeBMR(height, weight float64, age int, sex models.Sex) float64 {
	base := 10*weight + 6.25*height - 5*float64(age)
	if sex == models.SexMale {
		return round(base+5, 2)
	}
	return round(base-161, 2)
}

func ComputeTDEE(bmr float64, activity models.ActivityLevel, intensity models.ExerciseIntensity) float64 {
	multiplier, ok := activityMultipliers[activity]
	if !ok {
		multiplier = activityMultipliers[models.ActivityModeratelyActive]
	}
	offset, ok := exerciseOffsets[intensity]
	if !ok {
		offset = exerciseOffsets[models.IntensityModerate]
	}
	return round(bmr*multiplier+offset, 2)
}

// ComputeDailyCalories applies the goal adjustment to tdee. The result never drops below 1200 kcal.
func ComputeDailyCalories(tdee float64, goal models.Goal, currentWeight float64, goalWeight *float64, timelineWeeks int) float64 {
	var calories float64
	switch goal {
	case models.GoalLoseWeight:
		if goalWeight != nil && *goalWeight < currentWeight {
			weeks := timelineWeeks
			if weeks < 1 {
				weeks = 1
			}
			deficit := (currentWeight - *goalWeight) * kcalPerKgFat / float64(weeks*7)
			deficit = clamp(deficit, minDailyDeficit, maxDailyDeficit)
			calories = tdee - deficit
		} else {
			calories = tdee * 0.8
		}
	case models.GoalBuildMuscle:
		calories = tdee * 1.1
	case models.GoalAthleticPerformance:
		calories = tdee * 1.05
	default:
		calories = tdee
	}
	return math.Max(round(calories, 0), minDailyCalories)
}

type Macros struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

func ComputeMacros(dailyCalories float64, ratio models.MacroRatio, goal models.Goal) Macros {
	split, ok := macroRatios[ratio]
	if !ok {
		ratio = models.RatioBalanced
		split = macroRatios[ratio]
	}
	if goal == models.GoalBuildMuscle && ratio == models.RatioBalanced {
		split = muscleBalanced
	}
	return Macros{
		Protein: round(dailyCalories*split.protein/4, 1),
		Carbs:   round(dailyCalories*split.carbs/4, 1),
		Fat:     round(dailyCalories*split.fat/9, 1),
	}
}

func ComputeWaterIntake(weight float64, intensity models.ExerciseIntensity) float64 {
	bonus, ok := waterBonuses[intensity]
	if !ok {
		bonus = waterBonuses[models.IntensityModerate]
	}
	return round(clamp(weight*35+bonus, minWaterMl, maxWaterMl), 0)
}

// ComputeTargets runs the full calculation chain for a validated profile.
func ComputeTargets(p models.UserProfile) models.NutritionTargets {
	bmr := ComputeBMR(p.Height, p.Weight, p.Age, p.Sex)
	tdee := ComputeTDEE(bmr, p.DailyActivityLevel, p.ExerciseIntensity)
	calories := ComputeDailyCalories(tdee, p.Goal, p.Weight, p.GoalWeight, p.TimelineWeeks)
	macros := ComputeMacros(calories, p.MacronutrientRatio, p.Goal)

	return models.NutritionTargets{
		BMR:           bmr,
		TDEE:          tdee,
		DailyCalories: calories,
		ProteinGrams:  macros.Protein,
		CarbGrams:     macros.Carbs,
		FatGrams:      macros.Fat,
		WaterIntakeMl: ComputeWaterIntake(p.Weight, p.ExerciseIntensity),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
