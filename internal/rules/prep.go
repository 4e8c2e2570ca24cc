package rules

import (
	"fmt"
	"math"
	"strings"

	"diet-calculator/internal/models"
)

// BuildMealPrepTips returns weekly, daily, storage, goal-specific and time-saving advice.
func BuildMealPrepTips(p models.UserProfile, t models.NutritionTargets) models.MealPrepTips {
	f := p.Flags()
	meals := mealCount(p.MealsPerDay)
	intense := p.ExerciseIntensity.Intense()

	batchCook := "grains like quinoa, brown rice in large batches"
	if f.Keto {
		batchCook = "cauliflower rice and zucchini noodles"
	}
	backup := "Prepare 2-3 backup meals for busy days"
	if meals >= 5 {
		backup = "Pre-portion snacks into grab-and-go containers"
	}

	snackPrep := "Prepare healthy snacks to avoid impulsive food choices"
	if intense {
		snackPrep = "Pack post-workout meal/shake before leaving for gym"
	}
	emergencyKit := `Keep an "emergency meal" kit: canned fish, quick oats, nuts, frozen vegetables`
	if f.NutAllergy {
		emergencyKit = `Keep an "emergency meal" kit: canned fish, quick oats, seeds, frozen vegetables`
	}

	rawStorage := "Raw proteins: use within 2 days or freeze immediately after purchase"
	if f.Vegan {
		rawStorage = "Soak nuts/seeds overnight for better digestibility and faster cooking"
		if f.NutAllergy {
			rawStorage = "Soak seeds and legumes overnight for better digestibility and faster cooking"
		}
	}

	quickProtein := "quick-cooking proteins like eggs, canned fish"
	if intense {
		quickProtein = "protein powder"
	}
	threeIngredient := "Master 3-ingredient meals: protein + vegetable + healthy carb/fat"
	if f.Keto {
		threeIngredient = "Keep keto emergency kit: " + strings.Join(ketoKit(f), ", ")
	}

	return models.MealPrepTips{
		Sections: []models.TipSection{
			{
				Key:   "weekly",
				Title: "WEEKLY PREP STRATEGY",
				Items: []string{
					fmt.Sprintf("Sunday Prep Session (2-3 hours): Batch cook %.0f portions of protein for the week", math.Round(t.ProteinGrams*daysPerWeek/25)),
					"Wash, chop, and portion vegetables immediately after grocery shopping",
					"Cook " + batchCook,
					"Prepare mason jar salads - dressing on bottom, sturdy vegetables, greens on top",
					backup,
				},
			},
			{
				Key:   "daily",
				Title: "DAILY EFFICIENCY TIPS",
				Items: []string{
					"Morning: Set out tomorrow's meals during breakfast cleanup",
					"Use slow cooker or Instant Pot for hands-off protein cooking",
					fmt.Sprintf("Evening: Quick 15-minute prep for next day's %d meals", meals),
					snackPrep,
					emergencyKit,
				},
			},
			{
				Key:   "storage",
				Title: "SMART STORAGE SOLUTIONS",
				Items: []string{
					fmt.Sprintf("Glass containers (%d containers recommended) - microwave safe, no plastic chemicals", meals+2),
					"Vacuum seal or freezer bags for batch-cooked proteins (stay fresh 3+ months)",
					"Herb storage: wash, dry completely, store in glass jars with paper towel",
					"Avocado hack: store cut avocado with onion slice to prevent browning",
					rawStorage,
				},
			},
			{
				Key:   "goalSpecific",
				Title: strings.ToUpper(p.Goal.Label()) + " OPTIMIZATION",
				Items: goalPrepTips(p.Goal),
			},
			{
				Key:   "timeHacks",
				Title: "TIME-SAVING HACKS",
				Items: []string{
					fmt.Sprintf("Use %s for 5-minute meals", quickProtein),
					"One-pan meals: protein + vegetables + healthy fat cooked together",
					"Spiralize vegetables while watching TV for weekly prep",
					"Use pre-washed salad mixes strategically (more expensive but saves 30+ minutes weekly)",
					"Make double portions at dinner - instant lunch for tomorrow",
					threeIngredient,
				},
			},
		},
		WeeklyTimeInvestment: "2-3 hours prep saves 1+ hour daily during busy weekdays",
		BudgetImpact:         "Meal prep reduces food waste by 40% and dining out by 60%",
		SuccessTip:           fmt.Sprintf("Consistency beats perfection - even prepping %d meals ahead makes a huge difference", (meals+1)/2),
	}
}

func ketoKit(f models.DietFlags) []string {
	kit := []string{"nuts", "cheese", "olives", "avocados"}
	if f.NutAllergy {
		kit[0] = "seeds"
	}
	if f.DairyFree {
		kit[1] = "coconut chips"
	}
	return kit
}

func goalPrepTips(goal models.Goal) []string {
	switch goal {
	case models.GoalLoseWeight:
		return []string{
			"Pre-portion all meals to avoid overeating - use smaller containers",
			"Prep high-volume, low-calorie foods: vegetable soups, large salads",
			"Keep cut vegetables visible in fridge front for easy snacking",
			"Freeze single-serving smoothie packets with pre-measured ingredients",
		}
	case models.GoalBuildMuscle:
		return []string{
			"Double batch and freeze protein-rich casseroles and stews",
			"Always have quick protein available: hard-boiled eggs, Greek yogurt, protein powder",
			"Pre-make calorie-dense smoothie ingredients in freezer bags",
			"Prep post-workout meals in advance - timing is crucial for muscle synthesis",
		}
	case models.GoalAthleticPerformance:
		return []string{
			"Prepare both pre and post-workout meals with optimal carb timing",
			"Batch cook sweet potatoes and oats for quick energy sources",
			"Make electrolyte popsicles for post-workout recovery",
			"Keep emergency energy foods: dates, bananas, homemade energy balls",
		}
	}
	return []string{
		"Focus on variety - prep different cuisines to avoid boredom",
		"Batch cook versatile bases: roasted vegetables, cooked grains, proteins",
		"Prepare healthy versions of comfort foods for cravings",
		"Keep backup healthy options for social situations",
	}
}
