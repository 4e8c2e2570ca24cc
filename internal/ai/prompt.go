package ai

import (
	"fmt"
	"math"
	"strings"

	"diet-calculator/internal/models"
	"diet-calculator/internal/nutrition"
)

// BuildPrompt renders the nutritionist request for a profile and its targets.
func BuildPrompt(p models.UserProfile, t models.NutritionTargets) string {
	bmi := nutrition.BMI(p.Height, p.Weight)
	goal := p.Goal.Label()

	balance := "MAINTENANCE"
	switch p.Goal {
	case models.GoalLoseWeight:
		balance = "DEFICIT"
	case models.GoalBuildMuscle:
		balance = "SURPLUS"
	}

	target := ""
	if p.GoalWeight != nil {
		target = fmt.Sprintf(" (target: %gkg)", *p.GoalWeight)
	}

	restrictions := append(append([]string{}, p.FoodAllergies...), p.FoodIntolerances...)
	restrictionText := "None"
	if len(restrictions) > 0 {
		restrictionText = "YES - " + strings.Join(restrictions, ", ")
	}

	var b strings.Builder
	b.WriteString("You are a certified nutritionist and meal planning expert. Create a comprehensive, personalized meal plan based on scientific nutrition principles.\n\n")

	b.WriteString("CLIENT PROFILE:\n")
	fmt.Fprintf(&b, "- Demographics: %dyr %s, %gcm, %gkg (BMI: %.1f - %s)\n", p.Age, p.Sex, p.Height, p.Weight, bmi, nutrition.BMICategory(bmi))
	fmt.Fprintf(&b, "- Primary Goal: %s\n", strings.ToUpper(goal))
	fmt.Fprintf(&b, "- Timeline: %d weeks%s\n", p.TimelineWeeks, target)
	fmt.Fprintf(&b, "- Activity: %s lifestyle, %s exercise intensity\n",
		models.Humanize(string(p.DailyActivityLevel)), models.Humanize(string(p.ExerciseIntensity)))
	fmt.Fprintf(&b, "- Meal Frequency: %d meals/day\n", p.MealsPerDay)
	fmt.Fprintf(&b, "- Macro Strategy: %s\n\n", models.Humanize(string(p.MacronutrientRatio)))

	b.WriteString("CALCULATED TARGETS:\n")
	fmt.Fprintf(&b, "- Daily Calories: %.0f (%s)\n", t.DailyCalories, balance)
	fmt.Fprintf(&b, "- Protein: %.0fg (%d%%)\n", t.ProteinGrams, percent(t.ProteinGrams*4, t.DailyCalories))
	fmt.Fprintf(&b, "- Carbohydrates: %.0fg (%d%%)\n", t.CarbGrams, percent(t.CarbGrams*4, t.DailyCalories))
	fmt.Fprintf(&b, "- Fat: %.0fg (%d%%)\n", t.FatGrams, percent(t.FatGrams*9, t.DailyCalories))
	fmt.Fprintf(&b, "- Water: %.0fml\n\n", t.WaterIntakeMl)

	b.WriteString("DIETARY REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Preferences: %s\n", listOr(p.DietaryPreferences, "None specified"))
	fmt.Fprintf(&b, "- Allergies: %s\n", listOr(p.FoodAllergies, "None"))
	fmt.Fprintf(&b, "- Intolerances: %s\n\n", listOr(p.FoodIntolerances, "None"))

	b.WriteString("Generate a comprehensive meal plan with:\n")
	fmt.Fprintf(&b, "1. SAMPLE DAILY MEALS (%d meals): specific foods with exact portions, macros per meal and timing\n", p.MealsPerDay)
	b.WriteString("2. 7-DAY VARIETY SUGGESTIONS: rotating protein sources, seasonal vegetables, snack alternatives\n")
	fmt.Fprintf(&b, "3. FOOD CATEGORIZATION: PRIORITIZE foods that support the %s goal, NEUTRAL foods for moderation, MINIMIZE foods that hinder progress\n", goal)
	fmt.Fprintf(&b, "4. PERSONALIZED RECIPES: prep and cook times, restrictions to respect: %s\n", restrictionText)
	b.WriteString("5. STRATEGIC SHOPPING LIST: organized by category with weekly quantities\n")
	b.WriteString("6. EVIDENCE-BASED SUPPLEMENTS: dosage, timing and interactions\n")
	b.WriteString("7. MEAL PREP STRATEGY: batch cooking, storage and time-saving techniques\n")
	fmt.Fprintf(&b, "8. SUCCESS TIPS: hydration, meal timing for %s, progress monitoring\n\n", goal)

	fmt.Fprintf(&b, "Be specific, scientific, and practical. Provide actionable advice that a %d-year-old %s can realistically follow.", p.Age, p.Sex)
	return b.String()
}

func percent(kcal, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(kcal / total * 100))
}

func listOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
