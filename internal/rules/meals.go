package rules

import (
	"math"

	"diet-calculator/internal/models"
)

const daysPerWeek = 7

// SuggestMeals returns one day of meals for the first mealsPerDay slots.
// Calories and macros are split evenly across the meals.
func SuggestMeals(p models.UserProfile, t models.NutritionTargets) []models.Meal {
	return mealsForDay(p, t, 0)
}

// BuildWeeklyPlan returns seven days. Day 1 matches SuggestMeals and later
// days rotate through each slot's variants.
func BuildWeeklyPlan(p models.UserProfile, t models.NutritionTargets) []models.DayPlan {
	days := make([]models.DayPlan, daysPerWeek)
	for i := range days {
		days[i] = models.DayPlan{Day: i + 1, Meals: mealsForDay(p, t, i)}
	}
	return days
}

func mealsForDay(p models.UserProfile, t models.NutritionTargets, day int) []models.Meal {
	count := mealCount(p.MealsPerDay)
	f := p.Flags()

	per := float64(count)
	calories := math.Round(t.DailyCalories / per)
	protein := math.Round(t.ProteinGrams / per)
	carbs := math.Round(t.CarbGrams / per)
	fat := math.Round(t.FatGrams / per)

	meals := make([]models.Meal, 0, count)
	for _, slot := range mealSlots[:count] {
		options := menuFor(slot).options(f)
		tmpl := options[day%len(options)]
		meals = append(meals, models.Meal{
			Name:        slot,
			Food:        tmpl.food,
			Calories:    calories,
			Protein:     protein,
			Carbs:       carbs,
			Fat:         fat,
			Ingredients: adaptIngredients(tmpl.ingredients, f),
			Portions:    adaptItem(tmpl.portions, f),
		})
	}
	return meals
}

func mealCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > len(mealSlots) {
		return len(mealSlots)
	}
	return n
}
