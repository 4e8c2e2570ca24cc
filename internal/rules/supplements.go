package rules

import (
	"fmt"
	"math"

	"diet-calculator/internal/models"
)

const (
	PriorityEssential = "ESSENTIAL"
	PriorityHigh      = "HIGH"
	PriorityModerate  = "MODERATE"
	PriorityLow       = "LOW"
)

// Approximate monthly cost in USD, keyed by supplement name.
var supplementCost = map[string]int{
	"Vitamin B12 (Methylcobalamin)":               8,
	"Algae-Based Omega-3 (DHA/EPA)":               25,
	"Iron (if female <50 or signs of deficiency)": 12,
	"Creatine Monohydrate":                        15,
	"Plant Protein Powder":                        35,
	"Whey Protein Powder":                         35,
	"Caffeine (if not sensitive)":                 10,
	"Fiber Supplement (Psyllium Husk)":            15,
	"Iron (if signs of deficiency)":               12,
	"Vitamin D3":                                  10,
	"Vitamin B12":                                 8,
	"Magnesium Glycinate":                         18,
	"High-Quality Multivitamin":                   20,
}

const defaultSupplementCost = 15

// BuildSupplementList recommends supplements from diet, goal, training, age and sex.
// A multivitamin is returned when nothing more specific applies.
func BuildSupplementList(p models.UserProfile, t models.NutritionTargets) models.SupplementPlan {
	f := p.Flags()
	premenopausal := p.Sex == models.SexFemale && p.Age < 50

	var recs []models.Supplement

	if f.Vegan {
		ironPriority := PriorityModerate
		if premenopausal {
			ironPriority = PriorityHigh
		}
		recs = append(recs,
			models.Supplement{
				Name:         "Vitamin B12 (Methylcobalamin)",
				Priority:     PriorityEssential,
				Reason:       "Vegans cannot obtain adequate B12 from plant foods alone. Deficiency leads to neurological damage and anemia.",
				Dosage:       "250-500mcg cyanocobalamin daily OR 2500mcg weekly",
				Timing:       "With any meal for better absorption",
				Evidence:     "Meta-analyses show 90%+ of vegans are B12 deficient without supplementation",
				Interactions: "None significant. Do not take with hot beverages.",
			},
			models.Supplement{
				Name:         "Algae-Based Omega-3 (DHA/EPA)",
				Priority:     PriorityHigh,
				Reason:       "Plant-based diets typically lack preformed omega-3s (DHA/EPA) found in fish.",
				Dosage:       "300-500mg combined DHA/EPA daily",
				Timing:       "With fat-containing meal for absorption",
				Evidence:     "Vegan omega-3 status is significantly lower; algae supplements effectively raise levels",
				Interactions: "May enhance effects of blood-thinning medications",
			},
			models.Supplement{
				Name:         "Iron (if female <50 or signs of deficiency)",
				Priority:     ironPriority,
				Reason:       "Plant-based iron (non-heme) is less bioavailable than heme iron from meat.",
				Dosage:       "18mg daily for premenopausal women, 8mg for men/postmenopausal women",
				Timing:       "Away from tea/coffee, with vitamin C foods",
				Evidence:     "Vegetarians have lower iron stores; supplementation recommended for high-risk groups",
				Interactions: "Reduces absorption of zinc and certain antibiotics",
			},
		)
	}

	if p.Goal == models.GoalBuildMuscle || p.ExerciseIntensity.Intense() {
		powder := "Whey Protein Powder"
		if f.Vegan || f.DairyFree {
			powder = "Plant Protein Powder"
		}
		recs = append(recs,
			models.Supplement{
				Name:         "Creatine Monohydrate",
				Priority:     PriorityHigh,
				Reason:       "Most researched supplement for strength and power. Increases muscle phosphocreatine stores.",
				Dosage:       "3-5g daily, timing irrelevant",
				Timing:       "Anytime, preferably consistent daily timing",
				Evidence:     "70+ studies show 5-15% strength gains, faster recovery, increased muscle mass",
				Interactions: "Generally safe, may increase water retention initially",
			},
			models.Supplement{
				Name:         powder,
				Priority:     PriorityModerate,
				Reason:       fmt.Sprintf("Convenient way to reach %.0fg daily protein target for muscle protein synthesis.", t.ProteinGrams),
				Dosage:       "25-40g per serving, 1-2 servings daily if needed",
				Timing:       "Post-workout within 2 hours, or between meals",
				Evidence:     "Protein intake of 1.6-2.2g/kg bodyweight optimizes muscle protein synthesis",
				Interactions: "None significant, but space away from fiber-rich meals",
			},
		)
	}

	if p.Goal == models.GoalLoseWeight {
		recs = append(recs,
			models.Supplement{
				Name:         "Caffeine (if not sensitive)",
				Priority:     PriorityModerate,
				Reason:       "Increases metabolic rate by 3-11%, enhances fat oxidation during exercise.",
				Dosage:       "200-400mg daily (equivalent to 2-4 cups coffee)",
				Timing:       "30-60 minutes before workouts, avoid after 2 PM",
				Evidence:     "Meta-analyses show modest weight loss effects when combined with diet and exercise",
				Interactions: "May increase anxiety in sensitive individuals, affects sleep",
			},
			models.Supplement{
				Name:         "Fiber Supplement (Psyllium Husk)",
				Priority:     PriorityModerate,
				Reason:       "Increases satiety, helps maintain regular digestion during calorie restriction.",
				Dosage:       "5-10g with large glass of water, 30 minutes before meals",
				Timing:       "Before largest meals, ensure adequate water intake",
				Evidence:     "Soluble fiber supplements reduce appetite and support weight management",
				Interactions: "Can reduce absorption of medications - take 1 hour apart",
			},
		)
	}

	// Vegans already get the iron entry above.
	if premenopausal && !f.Vegan {
		recs = append(recs, models.Supplement{
			Name:         "Iron (if signs of deficiency)",
			Priority:     PriorityModerate,
			Reason:       "Premenopausal women lose iron through menstruation, higher risk of deficiency.",
			Dosage:       "18mg daily, or as directed by blood test results",
			Timing:       "On empty stomach with vitamin C, away from calcium",
			Evidence:     "Women of childbearing age have 2-5x higher iron deficiency rates",
			Interactions: "Can cause GI upset, reduces zinc absorption",
		})
	}

	if p.Age > 50 {
		recs = append(recs, models.Supplement{
			Name:         "Vitamin D3",
			Priority:     PriorityHigh,
			Reason:       "Reduced skin synthesis with age, crucial for bone health and immune function.",
			Dosage:       "1000-2000 IU daily (get blood test to optimize)",
			Timing:       "With fat-containing meal for absorption",
			Evidence:     "Majority of older adults are vitamin D insufficient (<30 ng/mL)",
			Interactions: "Enhances calcium absorption, may affect certain heart medications",
		})
		if !f.Vegan {
			recs = append(recs, models.Supplement{
				Name:         "Vitamin B12",
				Priority:     PriorityHigh,
				Reason:       "Reduced stomach acid production with age impairs B12 absorption from food.",
				Dosage:       "25-100mcg daily or 1000mcg weekly",
				Timing:       "With any meal",
				Evidence:     "10-30% of older adults have B12 malabsorption from food sources",
				Interactions: "None significant",
			})
		}
	}

	if p.DailyActivityLevel == models.ActivityVeryActive || p.DailyActivityLevel == models.ActivityExtremelyActive {
		recs = append(recs, models.Supplement{
			Name:         "Magnesium Glycinate",
			Priority:     PriorityModerate,
			Reason:       "Intense training increases magnesium losses through sweat, needed for muscle function.",
			Dosage:       "200-400mg daily",
			Timing:       "Evening, may promote relaxation and sleep",
			Evidence:     "Athletes commonly have suboptimal magnesium status, supplementation improves performance",
			Interactions: "May enhance effects of blood pressure medications",
		})
	}

	if len(recs) == 0 {
		recs = append(recs, models.Supplement{
			Name:         "High-Quality Multivitamin",
			Priority:     PriorityLow,
			Reason:       "Insurance against potential micronutrient gaps in your personalized diet plan.",
			Dosage:       "As directed on label, typically 1-2 capsules daily",
			Timing:       "With breakfast for consistency",
			Evidence:     "May help fill small nutritional gaps, but whole foods are preferred",
			Interactions: "Generally safe, but check individual vitamin levels",
		})
	}

	diet := "omnivorous"
	switch {
	case f.Vegan:
		diet = "vegan"
	case f.Vegetarian:
		diet = "vegetarian"
	}

	return models.SupplementPlan{
		Recommendations: recs,
		ImportantNotes: []string{
			"Supplements complement, never replace, a well-planned diet",
			"Consider blood testing before starting iron, B12, or vitamin D",
			"Start supplements one at a time to identify any adverse reactions",
			"Consult healthcare provider if taking medications or have health conditions",
			fmt.Sprintf("Your %s goal and %s diet inform these specific recommendations", p.Goal.Label(), diet),
		},
		TotalMonthlyCost: monthlyCost(recs),
	}
}

func monthlyCost(recs []models.Supplement) string {
	total := 0
	for _, s := range recs {
		cost, ok := supplementCost[s.Name]
		if !ok {
			cost = defaultSupplementCost
		}
		total += cost
	}
	return fmt.Sprintf("$%d-%d/month", total, int(math.Round(float64(total)*1.4)))
}
