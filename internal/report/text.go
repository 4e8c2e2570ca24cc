package report

import (
	"fmt"
	"strings"

	"diet-calculator/internal/models"
)

// Text renders the report as plain text suitable for chat messages and e-mail.
func Text(sp models.StoredPlan) string {
	v := newView(sp)
	var b strings.Builder

	b.WriteString(strings.ToUpper(v.Title) + "\n")
	fmt.Fprintf(&b, "Generated on %s\n", v.GeneratedAt)
	if v.PlanID != "" {
		fmt.Fprintf(&b, "Plan ID: %s\n", v.PlanID)
	}

	section(&b, "PERSONAL INFORMATION")
	bullets(&b, v.Profile)
	if len(v.Requirements) > 0 {
		section(&b, "DIETARY REQUIREMENTS")
		bullets(&b, v.Requirements)
	}

	section(&b, "DAILY NUTRITION TARGETS")
	for _, r := range v.Targets {
		fmt.Fprintf(&b, "%-14s %-8s %s\n", r.Metric, r.Target, r.Notes)
	}

	if len(v.Meals) > 0 {
		section(&b, "SAMPLE DAILY MEAL PLAN")
		for _, m := range v.Meals {
			fmt.Fprintf(&b, "%s: %s (%.0f kcal, P %.0fg / C %.0fg / F %.0fg)\n", m.Name, m.Food, m.Calories, m.Protein, m.Carbs, m.Fat)
			fmt.Fprintf(&b, "  Portions: %s\n", m.Portions)
			fmt.Fprintf(&b, "  Ingredients: %s\n", strings.Join(m.Ingredients, ", "))
		}
	}

	section(&b, "FOOD CATEGORIZATION GUIDE")
	for _, c := range v.Categories {
		fmt.Fprintf(&b, "%s\n", c.Title)
		if len(c.Foods) == 0 {
			b.WriteString("  (none)\n")
		} else {
			fmt.Fprintf(&b, "  %s\n", strings.Join(c.Foods, ", "))
		}
	}

	section(&b, "SMART SHOPPING LIST")
	for _, c := range v.Shopping.Categories {
		fmt.Fprintf(&b, "%s (%s)\n", c.Title, c.WeeklyTarget)
		for _, item := range c.Items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	fmt.Fprintf(&b, "Estimated cost: %s\n", v.Shopping.TotalEstimatedCost)

	section(&b, "SUPPLEMENTS")
	for _, s := range v.Supplements.Recommendations {
		fmt.Fprintf(&b, "[%s] %s: %s, %s\n", s.Priority, s.Name, s.Dosage, s.Timing)
	}
	fmt.Fprintf(&b, "Monthly cost: %s\n", v.Supplements.TotalMonthlyCost)

	section(&b, "HYDRATION SCHEDULE")
	fmt.Fprintf(&b, "Daily target: %.0fml\n", v.Hydration.DailyTarget)
	for _, s := range v.Hydration.Schedule {
		fmt.Fprintf(&b, "  %s: %s %s\n", s.Time, s.Amount, strings.ToLower(s.Type))
	}
	if v.Hydration.Warning != "" {
		fmt.Fprintf(&b, "Note: %s\n", v.Hydration.Warning)
	}

	section(&b, "MEAL PREP STRATEGY")
	for _, s := range v.Prep.Sections {
		b.WriteString(s.Title + "\n")
		for _, item := range s.Items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	fmt.Fprintf(&b, "%s\n", v.Prep.SuccessTip)

	if v.AIExcerpt != "" {
		section(&b, "AI INSIGHTS")
		b.WriteString(v.AIExcerpt + "\n")
	}

	b.WriteString("\n" + v.Disclaimer + "\n")
	return b.String()
}

func section(b *strings.Builder, name string) {
	b.WriteString("\n" + name + "\n")
	b.WriteString(strings.Repeat("-", len(name)) + "\n")
}

func bullets(b *strings.Builder, lines []string) {
	for _, l := range lines {
		fmt.Fprintf(b, "- %s\n", l)
	}
}
