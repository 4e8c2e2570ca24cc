package report

import (
	"fmt"
	"html/template"
	"io"

	"diet-calculator/internal/models"
)

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:Helvetica,Arial,sans-serif;max-width:820px;margin:2em auto;color:#222}
h1{color:#2e7d32}h2{border-bottom:2px solid #2e7d32;padding-bottom:4px}
table{border-collapse:collapse;width:100%}td,th{border:1px solid #ddd;padding:6px;text-align:left}
.muted{color:#666;font-size:.9em}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="muted">Generated on {{.GeneratedAt}}{{with .PlanID}} &middot; Plan {{.}}{{end}}</p>

<h2>Personal Information</h2>
<ul>{{range .Profile}}<li>{{.}}</li>{{end}}</ul>
{{if .Requirements}}<h2>Dietary Requirements</h2>
<ul>{{range .Requirements}}<li>{{.}}</li>{{end}}</ul>{{end}}

<h2>Daily Nutrition Targets</h2>
<table>
<tr><th>Metric</th><th>Target</th><th>Notes</th></tr>
{{range .Targets}}<tr><td>{{.Metric}}</td><td>{{.Target}}</td><td>{{.Notes}}</td></tr>
{{end}}</table>

{{if .Meals}}<h2>Sample Daily Meal Plan</h2>
{{range .Meals}}<h3>{{.Name}}: {{.Food}}</h3>
<p>{{printf "%.0f" .Calories}} kcal &middot; Protein {{printf "%.0f" .Protein}}g &middot; Carbs {{printf "%.0f" .Carbs}}g &middot; Fat {{printf "%.0f" .Fat}}g</p>
<p class="muted">{{.Portions}}</p>
<ul>{{range .Ingredients}}<li>{{.}}</li>{{end}}</ul>
{{end}}{{end}}

<h2>Food Categorization Guide</h2>
{{range .Categories}}<h3>{{.Title}}</h3>
<p class="muted">{{.Description}}</p>
{{if .Foods}}<ul>{{range .Foods}}<li>{{.}}</li>{{end}}</ul>{{else}}<p>(none)</p>{{end}}
<p><em>{{.Reasoning}}</em></p>
{{end}}

<h2>Smart Shopping List</h2>
{{range .Shopping.Categories}}<h3>{{.Title}}</h3>
<p class="muted">{{.WeeklyTarget}}</p>
<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
<p><em>{{.Tips}}</em></p>
{{end}}<p>Estimated cost: {{.Shopping.TotalEstimatedCost}}</p>

<h2>Supplements</h2>
<table>
<tr><th>Supplement</th><th>Priority</th><th>Dosage</th><th>Timing</th></tr>
{{range .Supplements.Recommendations}}<tr><td>{{.Name}}</td><td>{{.Priority}}</td><td>{{.Dosage}}</td><td>{{.Timing}}</td></tr>
{{end}}</table>
<ul>{{range .Supplements.ImportantNotes}}<li>{{.}}</li>{{end}}</ul>
<p>Monthly cost: {{.Supplements.TotalMonthlyCost}}</p>

<h2>Hydration Schedule</h2>
<p>Daily target: {{printf "%.0f" .Hydration.DailyTarget}}ml</p>
{{with .Hydration.Warning}}<p><strong>{{.}}</strong></p>{{end}}
<table>
<tr><th>When</th><th>Amount</th><th>What</th></tr>
{{range .Hydration.Schedule}}<tr><td>{{.Time}}</td><td>{{.Amount}}</td><td>{{.Type}}</td></tr>
{{end}}</table>

<h2>Meal Prep Strategy</h2>
{{range .Prep.Sections}}<h3>{{.Title}}</h3>
<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{end}}<p>{{.Prep.SuccessTip}}</p>

{{with .AIExcerpt}}<h2>AI Insights</h2>
<p>{{.}}</p>{{end}}

<p class="muted">{{.Disclaimer}}</p>
</body>
</html>
`))

// HTML writes the report as a standalone HTML page.
func HTML(w io.Writer, sp models.StoredPlan) error {
	if err := page.Execute(w, newView(sp)); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
