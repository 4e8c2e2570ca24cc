package rules

import (
	"encoding/json"
	"strings"
	"testing"

	"diet-calculator/internal/models"
	"diet-calculator/internal/nutrition"
)

func baseProfile() models.UserProfile {
	return models.UserProfile{
		Height:             175,
		Weight:             80,
		Age:                28,
		Sex:                models.SexMale,
		Goal:               models.GoalLoseWeight,
		TimelineWeeks:      12,
		ExerciseIntensity:  models.IntensityModerate,
		DailyActivityLevel: models.ActivityModeratelyActive,
		MacronutrientRatio: models.RatioBalanced,
		MealsPerDay:        3,
	}
}

var allGoals = []models.Goal{
	models.GoalLoseWeight,
	models.GoalBuildMuscle,
	models.GoalAthleticPerformance,
	models.GoalBodyRecomposition,
	models.GoalImproveHealth,
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestBuild_Deterministic(t *testing.T) {
	p := baseProfile()
	p.DietaryPreferences = []string{models.PrefVegetarian}
	p.FoodAllergies = []string{models.AllergyNuts, "shellfish"}
	targets := nutrition.ComputeTargets(p)

	first := Build(p, targets)
	second := Build(p, targets)

	if mustJSON(t, first.FoodCategorization) != mustJSON(t, second.FoodCategorization) {
		t.Fatalf("food categorization differs between runs")
	}
	if mustJSON(t, first.ShoppingList) != mustJSON(t, second.ShoppingList) {
		t.Fatalf("shopping list differs between runs")
	}
	if mustJSON(t, first.Supplements) != mustJSON(t, second.Supplements) {
		t.Fatalf("supplements differ between runs")
	}
	if mustJSON(t, first) != mustJSON(t, second) {
		t.Fatalf("meal plan differs between runs")
	}
}

// The nut check mirrors the allergy contract: "coconut" and "nutritional yeast"
// are accepted substitutes, and "nutrient", "nutrition" and "minute" are ordinary words.
func containsNut(s string) bool {
	s = strings.ToLower(s)
	for _, ok := range []string{"coconut", "nutritional yeast", "nutrient", "nutrition", "minute"} {
		s = strings.ReplaceAll(s, ok, "")
	}
	return strings.Contains(s, "nut")
}

func TestNutAllergy_NoNutsAnywhere(t *testing.T) {
	preferences := [][]string{
		nil,
		{models.PrefVegan},
		{models.PrefVegetarian},
		{models.PrefKeto},
		{models.PrefVegan, models.PrefKeto},
		{models.PrefVegetarian, models.PrefLowCarb},
	}
	intolerances := [][]string{nil, {models.IntoleranceLactose}, {models.IntoleranceGluten}}
	intensities := []models.ExerciseIntensity{models.IntensityLow, models.IntensityVeryHigh}

	for _, goal := range allGoals {
		for _, prefs := range preferences {
			for _, intol := range intolerances {
				for _, intensity := range intensities {
					p := baseProfile()
					p.Goal = goal
					p.DietaryPreferences = prefs
					p.FoodIntolerances = intol
					p.FoodAllergies = []string{models.AllergyNuts}
					p.ExerciseIntensity = intensity
					p.MealsPerDay = 8

					plan := Build(p, nutrition.ComputeTargets(p))
					check := func(where, s string) {
						if containsNut(s) {
							t.Fatalf("goal=%s prefs=%v intol=%v: %s contains nut item %q", goal, prefs, intol, where, s)
						}
					}

					for _, food := range plan.FoodCategorization.Prioritize.Foods {
						check("prioritize", food)
					}
					for _, food := range plan.FoodCategorization.Neutral.Foods {
						check("neutral", food)
					}
					for _, food := range plan.FoodCategorization.Minimize.Foods {
						check("minimize", food)
					}
					for _, day := range plan.WeeklyPlan {
						for _, meal := range day.Meals {
							check("meal name", meal.Food)
							check("meal portions", meal.Portions)
							for _, ing := range meal.Ingredients {
								check("meal ingredient", ing)
							}
						}
					}
					for _, r := range plan.Recipes {
						check("recipe name", r.Name)
						for _, ing := range r.Ingredients {
							check("recipe ingredient", ing)
						}
						for _, step := range r.Instructions {
							check("recipe step", step)
						}
					}
					for _, c := range plan.ShoppingList.Categories {
						for _, item := range c.Items {
							check("shopping "+c.Key, item)
						}
					}
				}
			}
		}
	}
}

func TestCategorizeFoods_AllergiesAppendToMinimize(t *testing.T) {
	p := baseProfile()
	p.FoodAllergies = []string{models.AllergyNuts, "shellfish"}
	cat := CategorizeFoods(p)

	minimize := strings.Join(cat.Minimize.Foods, "|")
	for _, want := range []string{"almonds, cashews, pecans and pistachios", "foods containing shellfish", "shellfish products"} {
		if !strings.Contains(minimize, want) {
			t.Fatalf("minimize missing %q: %v", want, cat.Minimize.Foods)
		}
	}
	if strings.Contains(minimize, "foods containing nuts") {
		t.Fatalf("nut allergy should use kernel names in minimize: %v", cat.Minimize.Foods)
	}

	prioritize := strings.Join(cat.Prioritize.Foods, "|")
	for _, want := range []string{"seeds (sunflower, pumpkin)", "tahini", "coconut"} {
		if !strings.Contains(prioritize, want) {
			t.Fatalf("prioritize missing substitute %q: %v", want, cat.Prioritize.Foods)
		}
	}
}

func TestCategorizeFoods_Vegan(t *testing.T) {
	for _, goal := range allGoals {
		p := baseProfile()
		p.Goal = goal
		p.DietaryPreferences = []string{models.PrefVegan}
		cat := CategorizeFoods(p)

		for _, list := range [][]string{cat.Prioritize.Foods, cat.Neutral.Foods} {
			for _, food := range list {
				for _, animal := range []string{"meat", "salmon", "fish", "poultry", "egg", "greek yogurt", "cottage cheese", "dairy products"} {
					if strings.Contains(food, animal) {
						t.Fatalf("goal=%s: vegan list contains %q", goal, food)
					}
				}
			}
		}
		if !strings.Contains(strings.Join(cat.Prioritize.Foods, "|"), "tofu") {
			t.Fatalf("goal=%s: vegan prioritize missing tofu", goal)
		}
	}
}

func TestCategorizeFoods_DairyFreeAndKeto(t *testing.T) {
	p := baseProfile()
	p.Goal = models.GoalBuildMuscle
	p.DietaryPreferences = []string{models.PrefKeto}
	p.FoodIntolerances = []string{models.IntoleranceLactose}
	cat := CategorizeFoods(p)

	for _, food := range cat.Prioritize.Foods {
		switch food {
		case "greek yogurt", "cottage cheese", "quinoa", "sweet potato", "grass-fed butter":
			t.Fatalf("unexpected %q in prioritize: %v", food, cat.Prioritize.Foods)
		}
	}
	minimize := strings.Join(cat.Minimize.Foods, "|")
	for _, want := range []string{"all dairy products", "starchy vegetables"} {
		if !strings.Contains(minimize, want) {
			t.Fatalf("minimize missing %q", want)
		}
	}
	if !strings.Contains(cat.Prioritize.Reasoning, "build muscle goal, male demographics, and moderately active lifestyle") {
		t.Fatalf("unexpected reasoning: %q", cat.Prioritize.Reasoning)
	}
}

func TestCategorizeFoods_EmptyListsAreValid(t *testing.T) {
	if got := withoutNuts([]string{"nuts", "walnuts", "almonds"}); got == nil || len(got) != 0 {
		t.Fatalf("withoutNuts = %#v, want empty non-nil slice", got)
	}

	p := baseProfile()
	p.Goal = models.GoalBodyRecomposition
	p.DietaryPreferences = []string{models.PrefVegan, models.PrefKeto}
	p.FoodAllergies = []string{models.AllergyNuts, models.AllergyGluten}
	cat := CategorizeFoods(p)
	if cat.Neutral.Foods == nil || cat.Prioritize.Foods == nil || cat.Minimize.Foods == nil {
		t.Fatalf("food lists must never be nil")
	}
}

func TestCategorizeFoods_UnknownGoalUsesHealthTable(t *testing.T) {
	p := baseProfile()
	p.Goal = "longevity"
	got := CategorizeFoods(p)

	p.Goal = models.GoalImproveHealth
	want := CategorizeFoods(p)
	if mustJSON(t, got.Neutral.Foods) != mustJSON(t, want.Neutral.Foods) {
		t.Fatalf("unknown goal neutral = %v, want %v", got.Neutral.Foods, want.Neutral.Foods)
	}
}

func TestSuggestMeals_CountAndSplit(t *testing.T) {
	for n := 1; n <= 8; n++ {
		p := baseProfile()
		p.MealsPerDay = n
		targets := models.NutritionTargets{DailyCalories: 2100, ProteinGrams: 131, CarbGrams: 236, FatGrams: 70}

		meals := SuggestMeals(p, targets)
		if len(meals) != n {
			t.Fatalf("mealsPerDay=%d: got %d meals", n, len(meals))
		}
		for i, meal := range meals {
			if meal.Name != mealSlots[i] {
				t.Fatalf("meal %d named %q, want %q", i, meal.Name, mealSlots[i])
			}
			if len(meal.Ingredients) == 0 || meal.Food == "" {
				t.Fatalf("meal %q is empty", meal.Name)
			}
		}
		if n == 3 && (meals[0].Calories != 700 || meals[0].Protein != 44 || meals[0].Fat != 23) {
			t.Fatalf("unexpected split: %+v", meals[0])
		}
	}
}

func TestSuggestMeals_Branches(t *testing.T) {
	cases := []struct {
		name      string
		prefs     []string
		allergies []string
		want      string
	}{
		{"default", nil, nil, "Greek Yogurt Parfait"},
		{"vegan", []string{models.PrefVegan}, nil, "Overnight Oats with Berries"},
		{"keto", []string{models.PrefKeto}, nil, "Avocado and Eggs"},
		{"dairy allergy", nil, []string{models.AllergyDairy}, "Chia Pudding with Plant Milk"},
		{"vegetarian", []string{models.PrefVegetarian}, nil, "Berry Breakfast Parfait"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baseProfile()
			p.DietaryPreferences = tc.prefs
			p.FoodAllergies = tc.allergies
			meals := SuggestMeals(p, nutrition.ComputeTargets(p))
			if meals[0].Food != tc.want {
				t.Fatalf("breakfast = %q, want %q", meals[0].Food, tc.want)
			}
		})
	}
}

func TestSuggestMeals_DairyFreeKetoSwapsDairy(t *testing.T) {
	p := baseProfile()
	p.DietaryPreferences = []string{models.PrefKeto}
	p.FoodAllergies = []string{models.AllergyDairy}
	lunch := SuggestMeals(p, nutrition.ComputeTargets(p))[1]

	joined := strings.Join(lunch.Ingredients, "|")
	if strings.Contains(joined, "parmesan") || !strings.Contains(joined, "nutritional yeast") {
		t.Fatalf("dairy not swapped: %v", lunch.Ingredients)
	}
}

func TestBuildWeeklyPlan(t *testing.T) {
	p := baseProfile()
	targets := nutrition.ComputeTargets(p)
	week := BuildWeeklyPlan(p, targets)

	if len(week) != 7 {
		t.Fatalf("got %d days", len(week))
	}
	if mustJSON(t, week[0].Meals) != mustJSON(t, SuggestMeals(p, targets)) {
		t.Fatalf("day 1 should match SuggestMeals")
	}
	for i, day := range week {
		if day.Day != i+1 || len(day.Meals) != 3 {
			t.Fatalf("day %d malformed: %+v", i+1, day)
		}
	}
	if week[0].Meals[0].Food == week[1].Meals[0].Food {
		t.Fatalf("breakfast should rotate between days")
	}
	if week[0].Meals[0].Food != week[3].Meals[0].Food {
		t.Fatalf("three breakfast variants should cycle back on day 4")
	}
}

func TestBuildRecipes(t *testing.T) {
	for _, goal := range allGoals {
		p := baseProfile()
		p.Goal = goal
		recipes := BuildRecipes(p, nutrition.ComputeTargets(p))
		if len(recipes) == 0 || len(recipes) > 3 {
			t.Fatalf("goal=%s: got %d recipes", goal, len(recipes))
		}
		for _, r := range recipes {
			if r.MacrosPerServing.Calories <= 0 || len(r.Instructions) == 0 {
				t.Fatalf("goal=%s: recipe %q incomplete", goal, r.Name)
			}
		}
	}

	p := baseProfile()
	p.Goal = models.GoalBuildMuscle
	p.DietaryPreferences = []string{models.PrefVegetarian}
	recipes := BuildRecipes(p, models.NutritionTargets{DailyCalories: 2000, ProteinGrams: 150, CarbGrams: 200, FatGrams: 66.7})
	if recipes[1].Name != "Anabolic Tofu and Sweet Potato Stack" {
		t.Fatalf("vegetarian recipe name = %q", recipes[1].Name)
	}
	if recipes[0].MacrosPerServing != (models.Macros{Calories: 800, Protein: 68, Carbs: 80, Fat: 23}) {
		t.Fatalf("macros per serving = %+v", recipes[0].MacrosPerServing)
	}
}

func TestBuildShoppingList(t *testing.T) {
	p := baseProfile()
	list := BuildShoppingList(p, nutrition.ComputeTargets(p))

	keys := make([]string, 0, len(list.Categories))
	for _, c := range list.Categories {
		keys = append(keys, c.Key)
	}
	if strings.Join(keys, ",") != "proteins,vegetables,grains,fats,pantry" {
		t.Fatalf("categories = %v", keys)
	}
	if list.TotalEstimatedCost != "$138-179 USD (varies by location and quality)" {
		t.Fatalf("cost = %q", list.TotalEstimatedCost)
	}

	p.DietaryPreferences = []string{models.PrefKeto}
	p.FoodAllergies = []string{models.AllergyNuts}
	grains, _ := BuildShoppingList(p, nutrition.ComputeTargets(p)).Category("grains")
	if grains.WeeklyTarget != "Minimal carbs (<50g/day)" {
		t.Fatalf("keto grains target = %q", grains.WeeklyTarget)
	}
	if !strings.HasPrefix(grains.Items[1], "Sunflower seed flour") {
		t.Fatalf("nut-free flour not used: %v", grains.Items)
	}
}

func TestBuildSupplementList(t *testing.T) {
	p := baseProfile()
	plan := BuildSupplementList(p, nutrition.ComputeTargets(p))
	if len(plan.Recommendations) != 2 || plan.TotalMonthlyCost != "$25-35/month" {
		t.Fatalf("lose weight supplements = %+v", plan)
	}

	p.Goal = models.GoalImproveHealth
	plan = BuildSupplementList(p, nutrition.ComputeTargets(p))
	if len(plan.Recommendations) != 1 || plan.Recommendations[0].Name != "High-Quality Multivitamin" {
		t.Fatalf("expected multivitamin fallback, got %+v", plan.Recommendations)
	}
	if plan.TotalMonthlyCost != "$20-28/month" {
		t.Fatalf("cost = %q", plan.TotalMonthlyCost)
	}

	p.Sex = models.SexFemale
	p.DietaryPreferences = []string{models.PrefVegan}
	plan = BuildSupplementList(p, nutrition.ComputeTargets(p))
	if len(plan.Recommendations) != 3 {
		t.Fatalf("vegan supplements = %+v", plan.Recommendations)
	}
	if plan.Recommendations[0].Priority != PriorityEssential || plan.Recommendations[2].Priority != PriorityHigh {
		t.Fatalf("unexpected priorities: %+v", plan.Recommendations)
	}
	if plan.TotalMonthlyCost != "$45-63/month" {
		t.Fatalf("cost = %q", plan.TotalMonthlyCost)
	}
}

func TestBuildHydrationSchedule(t *testing.T) {
	p := baseProfile()
	h := BuildHydrationSchedule(p, models.NutritionTargets{WaterIntakeMl: 2950})

	if h.DailyTarget != 3150 {
		t.Fatalf("daily target = %v", h.DailyTarget)
	}
	if len(h.Schedule) != 6 {
		t.Fatalf("got %d slots", len(h.Schedule))
	}
	// 3150 * 0.25 = 787.5 rounds up
	if h.Schedule[0].Amount != "788ml" || h.Schedule[2].Amount != "315ml" {
		t.Fatalf("unexpected amounts: %+v", h.Schedule)
	}
	if h.Warning != "" {
		t.Fatalf("unexpected warning: %q", h.Warning)
	}

	p.ExerciseIntensity = models.IntensityVeryHigh
	h = BuildHydrationSchedule(p, models.NutritionTargets{WaterIntakeMl: 4000})
	if h.DailyTarget != 4500 || h.Warning == "" {
		t.Fatalf("expected warning for %v ml", h.DailyTarget)
	}
	if h.Schedule[2].Amount != "900ml" || h.Schedule[2].Type != "Electrolyte drink" {
		t.Fatalf("during-workout slot = %+v", h.Schedule[2])
	}
}

func TestBuildMealPrepTips(t *testing.T) {
	p := baseProfile()
	p.MealsPerDay = 5
	tips := BuildMealPrepTips(p, models.NutritionTargets{ProteinGrams: 150})

	if len(tips.Sections) != 5 {
		t.Fatalf("got %d sections", len(tips.Sections))
	}
	if tips.Sections[3].Title != "LOSE WEIGHT OPTIMIZATION" {
		t.Fatalf("goal section title = %q", tips.Sections[3].Title)
	}
	if !strings.Contains(tips.Sections[0].Items[0], "Batch cook 42 portions") {
		t.Fatalf("weekly tip = %q", tips.Sections[0].Items[0])
	}
	if tips.Sections[0].Items[4] != "Pre-portion snacks into grab-and-go containers" {
		t.Fatalf("backup tip = %q", tips.Sections[0].Items[4])
	}
	if tips.SuccessTip != "Consistency beats perfection - even prepping 3 meals ahead makes a huge difference" {
		t.Fatalf("success tip = %q", tips.SuccessTip)
	}
}

func TestBuildNutritionalAnalysis(t *testing.T) {
	p := baseProfile()
	goal := 72.0
	p.GoalWeight = &goal
	targets := models.NutritionTargets{BMR: 1758.75, TDEE: 2826.06, DailyCalories: 2000, ProteinGrams: 125, CarbGrams: 225, FatGrams: 66.7}

	a := BuildNutritionalAnalysis(p, targets)
	if a.MacroBalance.ProteinPercent != 25 || a.MacroBalance.CarbPercent != 45 || a.MacroBalance.FatPercent != 30 {
		t.Fatalf("macro balance = %+v", a.MacroBalance)
	}
	if a.MetabolicProfile.BMR != 1759 || a.MetabolicProfile.TDEE != 2826 || a.MetabolicProfile.BMI != 26.1 {
		t.Fatalf("metabolic profile = %+v", a.MetabolicProfile)
	}
	if !strings.Contains(a.MetabolicProfile.Analysis, "overweight status") {
		t.Fatalf("analysis = %q", a.MetabolicProfile.Analysis)
	}
	if a.TimeToGoal == nil || a.TimeToGoal.Weeks <= 0 {
		t.Fatalf("time to goal = %+v", a.TimeToGoal)
	}
	if !strings.HasPrefix(a.MealTimingStrategy, "For weight loss") {
		t.Fatalf("meal timing = %q", a.MealTimingStrategy)
	}
	if len(a.Recommendations) == 0 {
		t.Fatalf("expected personalized recommendations")
	}
}
