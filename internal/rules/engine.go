// Package rules maps a profile and its nutrition targets to meal plans,
// food lists and supporting advice. Every function is pure and deterministic.
package rules

import "diet-calculator/internal/models"

// Build fills every structured field of a MealPlan. The AI fields are left
// for the caller to set.
func Build(p models.UserProfile, t models.NutritionTargets) *models.MealPlan {
	return &models.MealPlan{
		WeeklyPlan:          BuildWeeklyPlan(p, t),
		Recipes:             BuildRecipes(p, t),
		ShoppingList:        BuildShoppingList(p, t),
		Supplements:         BuildSupplementList(p, t),
		HydrationSchedule:   BuildHydrationSchedule(p, t),
		MealPrepTips:        BuildMealPrepTips(p, t),
		FoodCategorization:  CategorizeFoods(p),
		NutritionalAnalysis: BuildNutritionalAnalysis(p, t),
	}
}
