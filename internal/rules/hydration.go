package rules

import (
	"fmt"
	"math"

	"diet-calculator/internal/models"
)

const highWaterTarget = 4000

var hydrationBonus = map[models.ExerciseIntensity]float64{
	models.IntensityLow:      100,
	models.IntensityModerate: 200,
	models.IntensityHigh:     300,
	models.IntensityVeryHigh: 500,
}

// BuildHydrationSchedule spreads the daily water target, plus a training bonus,
// over six time slots.
func BuildHydrationSchedule(p models.UserProfile, t models.NutritionTargets) models.HydrationPlan {
	bonus, ok := hydrationBonus[p.ExerciseIntensity]
	if !ok {
		bonus = hydrationBonus[models.IntensityLow]
	}
	total := t.WaterIntakeMl + bonus
	intense := p.ExerciseIntensity.Intense()

	morning := math.Round(total * 0.25)
	preWorkout := math.Round(total * 0.15)
	during := math.Round(total * 0.1)
	if intense {
		during = math.Round(total * 0.2)
	}
	postWorkout := math.Round(total * 0.2)
	remaining := total - morning - preWorkout - during - postWorkout
	perMeal := math.Round(remaining / float64(mealCount(p.MealsPerDay)))

	duringType := "Plain water"
	if p.ExerciseIntensity == models.IntensityVeryHigh {
		duringType = "Electrolyte drink"
	}

	benefit := "overall health optimization"
	switch p.Goal {
	case models.GoalLoseWeight:
		benefit = "appetite control and metabolism"
	case models.GoalBuildMuscle:
		benefit = "nutrient transport and recovery"
	case models.GoalAthleticPerformance:
		benefit = "performance and thermoregulation"
	}

	electrolytes := "Plain water is sufficient for moderate exercise sessions"
	if intense {
		electrolytes = "Consider electrolyte replacement during intense or long workouts (>1 hour)"
	}

	plan := models.HydrationPlan{
		DailyTarget: total,
		Schedule: []models.HydrationSlot{
			{
				Time:    "Upon waking (6:00-7:00 AM)",
				Amount:  ml(morning),
				Type:    "Plain water with lemon slice",
				Purpose: "Rehydrate after overnight fast, kickstart metabolism",
				Tip:     "Keep a glass by your bedside to start immediately",
			},
			{
				Time:    "30-60 minutes before workout",
				Amount:  ml(preWorkout),
				Type:    "Plain water or diluted electrolyte drink",
				Purpose: "Ensure optimal hydration for performance",
				Tip:     "Stop drinking 15 minutes before exercise to avoid discomfort",
			},
			{
				Time:    "During workout (if >45 minutes)",
				Amount:  ml(during),
				Type:    duringType,
				Purpose: "Maintain hydration and electrolyte balance",
				Tip:     "Sip small amounts every 15-20 minutes during exercise",
			},
			{
				Time:    "Within 30 minutes post-workout",
				Amount:  ml(postWorkout),
				Type:    "Water + pinch of sea salt or coconut water",
				Purpose: "Rapid rehydration and electrolyte replacement",
				Tip:     "Weigh yourself before/after exercise - drink 150% of weight lost",
			},
			{
				Time:    "With each meal",
				Amount:  ml(perMeal),
				Type:    "Room temperature water",
				Purpose: "Aid digestion and nutrient absorption",
				Tip:     "Drink mostly before and after meals, limit during eating",
			},
			{
				Time:    "Evening wind-down (2-3 hours before bed)",
				Amount:  "200-300ml",
				Type:    "Herbal tea (chamomile, peppermint) or warm water",
				Purpose: "Relaxation and final hydration without disrupting sleep",
				Tip:     "Avoid large amounts close to bedtime to prevent night wakings",
			},
		},
		Tips: []string{
			fmt.Sprintf("Your %s goal benefits from optimal hydration for %s", p.Goal.Label(), benefit),
			"Monitor urine color: aim for pale yellow throughout the day",
			fmt.Sprintf("Track intake with a %.0fml bottle - fill and finish 4 times daily", math.Round(total/4)),
			"Add natural flavor with cucumber, mint, or berries if plain water is boring",
			electrolytes,
			"Increase intake on hot days, when ill, or if consuming alcohol/caffeine",
		},
	}
	if total > highWaterTarget {
		plan.Warning = "This is a high water target. Increase gradually and ensure electrolyte balance."
	}
	return plan
}

func ml(v float64) string {
	return fmt.Sprintf("%.0fml", v)
}
