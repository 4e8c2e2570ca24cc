// Package report renders a stored plan as plain text or HTML.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"diet-calculator/internal/models"

	"github.com/google/uuid"
)

const (
	title      = "Personalized Diet & Nutrition Report"
	disclaimer = "This report is for informational purposes only and is not medical advice. Consult a qualified healthcare provider or registered dietitian before making significant changes to your diet or supplement routine."
	dateLayout = "January 2, 2006"
)

type targetRow struct {
	Metric string
	Target string
	Notes  string
}

// view is the document model shared by both renderers.
type view struct {
	Title        string
	GeneratedAt  string
	PlanID       string
	Profile      []string
	Requirements []string
	Targets      []targetRow
	Categories   []models.FoodCategory
	Meals        []models.Meal
	Shopping     models.ShoppingList
	Supplements  models.SupplementPlan
	Hydration    models.HydrationPlan
	Prep         models.MealPrepTips
	AIExcerpt    string
	Disclaimer   string
}

func newView(sp models.StoredPlan) view {
	p := sp.Profile
	t := sp.Targets
	plan := sp.Plan

	created := sp.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	profile := []string{
		fmt.Sprintf("Age: %d years", p.Age),
		fmt.Sprintf("Sex: %s", titleCase(string(p.Sex))),
		fmt.Sprintf("Height: %g cm", p.Height),
		fmt.Sprintf("Current Weight: %g kg", p.Weight),
		fmt.Sprintf("Primary Goal: %s", titleCase(p.Goal.Label())),
		fmt.Sprintf("Timeline: %d weeks", p.TimelineWeeks),
	}
	if p.GoalWeight != nil {
		profile = append(profile, fmt.Sprintf("Goal Weight: %g kg", *p.GoalWeight))
	}
	profile = append(profile,
		fmt.Sprintf("Activity Level: %s", models.Humanize(string(p.DailyActivityLevel))),
		fmt.Sprintf("Exercise Intensity: %s", models.Humanize(string(p.ExerciseIntensity))),
		fmt.Sprintf("Meals Per Day: %d", p.MealsPerDay),
	)

	var requirements []string
	if len(p.DietaryPreferences) > 0 {
		requirements = append(requirements, "Preferences: "+strings.Join(p.DietaryPreferences, ", "))
	}
	if len(p.FoodAllergies) > 0 {
		requirements = append(requirements, "Allergies: "+strings.Join(p.FoodAllergies, ", "))
	}
	if len(p.FoodIntolerances) > 0 {
		requirements = append(requirements, "Intolerances: "+strings.Join(p.FoodIntolerances, ", "))
	}

	v := view{
		Title:        title,
		GeneratedAt:  created.UTC().Format(dateLayout),
		Profile:      profile,
		Requirements: requirements,
		Targets: []targetRow{
			{"Calories", whole(t.DailyCalories), "Total daily energy intake"},
			{"Protein", whole(t.ProteinGrams) + "g", "Muscle maintenance & growth"},
			{"Carbohydrates", whole(t.CarbGrams) + "g", "Primary energy source"},
			{"Fat", whole(t.FatGrams) + "g", "Essential fatty acids & vitamins"},
			{"Water", whole(t.WaterIntakeMl) + "ml", "Hydration target"},
			{"BMR", whole(t.BMR), "Basal Metabolic Rate"},
			{"TDEE", whole(t.TDEE), "Total Daily Energy Expenditure"},
		},
		Categories: []models.FoodCategory{
			plan.FoodCategorization.Prioritize,
			plan.FoodCategorization.Neutral,
			plan.FoodCategorization.Minimize,
		},
		Shopping:    plan.ShoppingList,
		Supplements: plan.Supplements,
		Hydration:   plan.HydrationSchedule,
		Prep:        plan.MealPrepTips,
		Disclaimer:  disclaimer,
	}
	if sp.ID != uuid.Nil {
		v.PlanID = sp.ID.String()
	}
	if len(plan.WeeklyPlan) > 0 {
		v.Meals = plan.WeeklyPlan[0].Meals
	}
	if plan.AIGenerated {
		v.AIExcerpt = plan.GeneratedTextExcerpt
	}
	return v
}

func whole(v float64) string {
	return fmt.Sprintf("%.0f", math.Round(v))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
