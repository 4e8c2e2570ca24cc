package rules

import (
	"fmt"

	"diet-calculator/internal/models"
)

type foodTable struct {
	prioritize []string
	neutral    []string
	minimize   []string
}

var goalFoods = map[models.Goal]foodTable{
	models.GoalLoseWeight: {
		prioritize: []string{"leafy greens", "lean protein", "fiber-rich vegetables", "berries", "green tea", "quinoa", "salmon", "greek yogurt", "legumes", "egg whites"},
		neutral:    []string{"whole grains", "nuts in moderation", "lean poultry", "low-fat dairy", "sweet potato", "oats", "brown rice"},
		minimize:   []string{"processed foods", "sugary drinks", "refined carbs", "fried foods", "alcohol", "high-calorie snacks", "white bread", "candy"},
	},
	models.GoalBuildMuscle: {
		prioritize: []string{"lean meats", "eggs", "protein powder", "greek yogurt", "cottage cheese", "quinoa", "sweet potato", "nuts", "avocado", "salmon"},
		neutral:    []string{"whole grains", "fruits", "vegetables", "healthy fats", "dairy products", "legumes"},
		minimize:   []string{"excessive alcohol", "processed meats", "trans fats", "excessive sugar", "low-protein processed foods"},
	},
	models.GoalAthleticPerformance: {
		prioritize: []string{"complex carbs", "lean protein", "anti-inflammatory foods", "beetroot", "tart cherries", "banana", "oats", "salmon", "spinach"},
		neutral:    []string{"whole grains", "healthy fats", "varied vegetables", "fruits", "nuts", "seeds"},
		minimize:   []string{"processed foods", "excessive fiber before workouts", "high-fat meals pre-exercise", "alcohol"},
	},
	models.GoalBodyRecomposition: {
		prioritize: []string{"high-protein foods", "nutrient-dense vegetables", "complex carbs around workouts", "lean fish", "eggs", "legumes"},
		neutral:    []string{"moderate healthy fats", "whole grains", "fruits", "nuts in moderation"},
		minimize:   []string{"empty calories", "processed snacks", "excessive simple carbs", "calorie-dense low-nutrition foods"},
	},
	models.GoalImproveHealth: {
		prioritize: []string{"colorful vegetables", "omega-3 rich fish", "whole grains", "berries", "nuts", "olive oil", "legumes", "fermented foods"},
		neutral:    []string{"lean meats", "dairy products", "fruits", "herbs and spices"},
		minimize:   []string{"processed meats", "trans fats", "excessive sodium", "refined sugars", "processed foods"},
	},
}

func tableFor(goal models.Goal) foodTable {
	t, ok := goalFoods[goal]
	if !ok {
		t = goalFoods[models.GoalImproveHealth]
	}
	return foodTable{
		prioritize: append([]string(nil), t.prioritize...),
		neutral:    append([]string(nil), t.neutral...),
		minimize:   append([]string(nil), t.minimize...),
	}
}

// CategorizeFoods sorts foods into prioritize, neutral and minimize lists for the
// profile's goal, then applies diet and allergy filters in a fixed order.
// Any list may end up empty.
func CategorizeFoods(p models.UserProfile) models.FoodCategorization {
	f := p.Flags()
	t := tableFor(p.Goal)

	switch {
	case f.Vegan:
		t.prioritize = without(t.prioritize, animalTerms)
		t.neutral = without(t.neutral, animalTerms)
		t.prioritize = append(t.prioritize, "tofu", "tempeh", "nutritional yeast", "hemp seeds", "chia seeds", "plant-based protein powder")
	case f.Vegetarian:
		t.prioritize = without(t.prioritize, meatTerms)
		t.neutral = without(t.neutral, meatTerms)
		t.prioritize = append(t.prioritize, "eggs", "lentils", "tofu")
	}

	if f.Keto {
		t.prioritize = without(t.prioritize, ketoCarbTerms)
		t.neutral = without(t.neutral, ketoNeutralCarbs)
		t.prioritize = append(t.prioritize, "avocado", "mct oil", "low-carb vegetables")
		if !f.DairyFree {
			t.prioritize = append(t.prioritize, "grass-fed butter")
		}
		if !f.Vegetarian {
			t.prioritize = append(t.prioritize, "fatty fish")
		}
		t.minimize = append(t.minimize, "grains", "most fruits", "legumes", "starchy vegetables")
	}

	if f.DairyFree {
		t.prioritize = without(t.prioritize, dairyTerms)
		t.neutral = without(t.neutral, dairyTerms)
		t.prioritize = append(t.prioritize, "plant-based milk alternatives", "coconut yogurt", "nutritional yeast for B12", "calcium-fortified plant milk")
		t.minimize = append(t.minimize, "all dairy products", "milk-based foods", "whey protein", "casein protein")
	}

	if f.GlutenFree {
		t.prioritize = without(t.prioritize, glutenTerms)
		t.neutral = without(t.neutral, glutenTerms)
		t.prioritize = append(t.prioritize, "gluten-free grains", "rice", "certified gluten-free oats")
		t.minimize = append(t.minimize, "wheat", "barley", "rye", "conventional oats", "processed foods with gluten")
	}

	if f.NutAllergy {
		t.prioritize = withoutNuts(t.prioritize)
		t.neutral = withoutNuts(t.neutral)
		t.prioritize = append(t.prioritize, "seeds (sunflower, pumpkin)", "tahini", "coconut")
		t.minimize = append(t.minimize, "almonds, cashews, pecans and pistachios", "spreads, butters and baked goods made with tree or ground kernels")
	}

	for _, allergy := range p.FoodAllergies {
		if f.NutAllergy && IsNutItem(allergy) {
			continue
		}
		t.minimize = append(t.minimize, "foods containing "+allergy, allergy+" products")
	}

	goal := p.Goal.Label()
	return models.FoodCategorization{
		Prioritize: models.FoodCategory{
			Title:       "Prioritize (Good to Have)",
			Description: fmt.Sprintf("Foods that actively support your %s goal and overall health", goal),
			Foods:       dedupe(t.prioritize),
			Reasoning: fmt.Sprintf("These foods are specifically chosen based on your %s goal, %s demographics, and %s lifestyle.",
				goal, p.Sex, models.Humanize(string(p.DailyActivityLevel))),
		},
		Neutral: models.FoodCategory{
			Title:       "Neutral (Moderate Consumption)",
			Description: "Foods that can be included in moderation as part of a balanced approach",
			Foods:       dedupe(t.neutral),
			Reasoning:   "These foods provide good nutrition but should be balanced with your primary goal foods.",
		},
		Minimize: models.FoodCategory{
			Title:       "Minimize (Avoid/Limit)",
			Description: "Foods that may hinder your progress or cause health issues",
			Foods:       dedupe(t.minimize),
			Reasoning:   fmt.Sprintf("These foods may interfere with your %s goal or conflict with your dietary restrictions.", goal),
		},
	}
}
