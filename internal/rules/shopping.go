package rules

import (
	"fmt"
	"math"

	"diet-calculator/internal/models"
)

// Average price in USD per item, by category key.
var itemCost = map[string]int{
	"proteins":   8,
	"vegetables": 3,
	"grains":     4,
	"fats":       6,
	"pantry":     2,
}

// BuildShoppingList returns a weekly list in five categories with an estimated cost range.
func BuildShoppingList(p models.UserProfile, t models.NutritionTargets) models.ShoppingList {
	f := p.Flags()

	proteinTips := "Lean proteins help maintain muscle during weight loss"
	if p.Goal == models.GoalBuildMuscle {
		proteinTips = "Focus on complete proteins with all essential amino acids"
	}

	grainsTarget := fmt.Sprintf("%.1fkg carbs/week", t.CarbGrams*daysPerWeek/1000)
	grainsTips := "Time carbs around your workouts for best results"
	if f.Keto {
		grainsTarget = "Minimal carbs (<50g/day)"
		grainsTips = "Focus on fiber-rich, low-net-carb options"
	}

	categories := []models.ShoppingCategory{
		{
			Key:          "proteins",
			Title:        "PROTEIN SOURCES",
			Items:        proteinItems(p, f),
			WeeklyTarget: fmt.Sprintf("%.0fg protein/week", math.Round(t.ProteinGrams*daysPerWeek)),
			Tips:         proteinTips,
		},
		{
			Key:          "vegetables",
			Title:        "VEGETABLES & GREENS",
			Items:        vegetableItems(p.Goal),
			WeeklyTarget: "2-3kg mixed vegetables for micronutrients",
			Tips:         "Aim for 5+ different colors throughout the week for diverse phytonutrients",
		},
		{
			Key:          "grains",
			Title:        "COMPLEX CARBOHYDRATES",
			Items:        grainItems(p.Goal, f),
			WeeklyTarget: grainsTarget,
			Tips:         grainsTips,
		},
		{
			Key:          "fats",
			Title:        "HEALTHY FATS",
			Items:        fatItems(f),
			WeeklyTarget: fmt.Sprintf("%.0fg healthy fats/week", math.Round(t.FatGrams*daysPerWeek)),
			Tips:         "Essential for hormone production and vitamin absorption",
		},
		{
			Key:   "pantry",
			Title: "PANTRY ESSENTIALS",
			Items: []string{
				"Sea salt or Himalayan salt - mineral balance",
				"Black pepper, turmeric, ginger - anti-inflammatory spices",
				"Garlic (1 bulb) + onions (1kg) - flavor base, prebiotics",
				"Apple cider vinegar (500ml) - blood sugar support",
				"Coconut aminos or tamari - umami flavor enhancer",
				"Fresh herbs: basil, cilantro, parsley - antioxidants + flavor",
				"Lemons (6) + limes (4) - vitamin C, natural flavor enhancer",
				"Ceylon cinnamon - blood sugar regulation, natural sweetness",
			},
			WeeklyTarget: "Stock up on flavor enhancers and cooking basics",
			Tips:         "Quality spices and condiments make healthy eating more enjoyable",
		},
	}

	focus := "balanced portions across all food groups"
	switch p.Goal {
	case models.GoalLoseWeight:
		focus = "volume foods that fill you up"
	case models.GoalBuildMuscle:
		focus = "calorie-dense, nutrient-rich options"
	}

	return models.ShoppingList{
		Categories:         categories,
		TotalEstimatedCost: estimateCost(categories),
		ShoppingTips: []string{
			"Shop the perimeter of the store first for whole foods",
			`Buy organic for the "Dirty Dozen" produce items when possible`,
			"Batch prep proteins and grains on Sunday for the week",
			"Store leafy greens with a paper towel to extend freshness",
			"Focus on " + focus,
		},
	}
}

func proteinItems(p models.UserProfile, f models.DietFlags) []string {
	muscle := p.Goal == models.GoalBuildMuscle

	switch {
	case f.Vegan:
		powder := "Plant protein powder (500g)"
		if muscle {
			powder = "Plant protein powder (1kg)"
		}
		return []string{
			"Organic firm tofu (800g) - versatile protein base",
			"Tempeh (400g) - fermented, complete protein",
			"Red lentils (1kg) - quick-cooking, high-protein legume",
			"Chickpeas (800g dried or 3 cans) - fiber + protein",
			powder + " - post-workout convenience",
			"Hemp seeds (250g) - omega-3 rich protein boost",
			"Nutritional yeast (100g) - B12 + cheesy flavor",
		}
	case f.Vegetarian && f.DairyFree:
		return []string{
			"Plant-based protein powder (1kg) - dairy-free complete protein",
			"Free-range eggs (18 pack) - complete amino acid profile",
			"Quinoa (500g) - complete plant protein",
			"Hemp hearts (300g) - complete protein + omega-3s",
			"Nutritional yeast (200g) - B12 + protein boost",
			"Pea protein powder (500g) - easily digestible",
		}
	case f.Vegetarian:
		powder := "Protein powder (500g)"
		if muscle {
			powder = "Whey protein powder (1kg)"
		}
		return []string{
			"Greek yogurt (1kg) - 100g protein, probiotic benefits",
			"Cottage cheese (500g) - casein protein for sustained release",
			"Free-range eggs (18 pack) - complete amino acid profile",
			"Quinoa (500g) - complete plant protein",
			powder,
			"Paneer or firm cheese (300g) - calcium + protein",
		}
	}

	chicken := "Chicken breast (1kg) - lean, versatile protein"
	if muscle {
		chicken = "Chicken breast (1.5kg) - lean, versatile protein"
	}
	extra := "Canned tuna (4 cans)"
	if p.ExerciseIntensity.Intense() {
		extra = "Lean ground turkey (500g)"
	}

	items := []string{
		chicken,
		"Wild-caught salmon (600g) - omega-3 + high-quality protein",
		"Free-range eggs (12-18 pack) - bioavailable nutrients",
	}
	if f.DairyFree {
		return append(items,
			"Plant-based protein powder (500g) - dairy-free option",
			extra,
			"Hemp hearts (200g) - complete protein alternative",
		)
	}
	items = append(items, "Greek yogurt (500g) - probiotics + protein", extra)
	if muscle {
		items = append(items, "Whey protein powder (1kg)")
	}
	return items
}

func vegetableItems(goal models.Goal) []string {
	switch goal {
	case models.GoalLoseWeight:
		return []string{
			"Baby spinach (400g) - iron, low-calorie volume",
			"Broccoli crowns (1kg) - fiber, supports detoxification",
			"Bell peppers (6 mixed colors) - vitamin C, antioxidants",
			"Zucchini (4 large) - low-calorie pasta substitute",
			"Cauliflower (2 heads) - versatile low-carb base",
			"Cucumber (4 large) - hydrating, virtually zero calories",
			"Cherry tomatoes (500g) - lycopene, natural flavor enhancer",
			"Leafy salad mix (300g) - nutrient density, satiety",
		}
	case models.GoalBuildMuscle:
		return []string{
			"Sweet potatoes (1kg) - complex carbs for muscle glycogen",
			"Spinach (300g) - iron for oxygen transport",
			"Broccoli (500g) - vitamin K for bone health",
			"Asparagus (400g) - supports recovery",
			"Beets (3 medium) - nitrates for blood flow",
			"Carrots (500g) - beta-carotene, natural sweetness",
			"Red bell peppers (4) - vitamin C for collagen synthesis",
		}
	}
	return []string{
		"Mixed leafy greens (400g) - diverse micronutrients",
		"Broccoli (500g) - cruciferous benefits",
		"Colorful bell peppers (4) - antioxidant variety",
		"Carrots (500g) - fiber + beta-carotene",
		"Zucchini (2 large) - versatile, low-calorie",
		"Cherry tomatoes (300g) - lycopene, flavor",
	}
}

func grainItems(goal models.Goal, f models.DietFlags) []string {
	if f.Keto {
		flour := "Almond flour (500g) - baking substitute"
		if f.NutAllergy {
			flour = "Sunflower seed flour (500g) - seed-based baking substitute"
		}
		return []string{
			"Cauliflower rice (1kg frozen) - rice substitute",
			flour,
			"Coconut flour (250g) - high-fiber, low-carb",
			"Shirataki noodles (4 packs) - near-zero carb pasta",
		}
	}

	oats := "Steel-cut oats"
	if f.GlutenFree {
		oats = "Certified gluten-free oats"
	}

	if goal == models.GoalAthleticPerformance {
		pasta := "Whole grain pasta (500g) - carb loading option"
		if f.GlutenFree {
			pasta = "Rice pasta (500g) - gluten-free carb loading option"
		}
		return []string{
			oats + " (1kg) - sustained energy release",
			"Quinoa (500g) - complete protein + complex carbs",
			"Brown rice (1kg) - easily digestible post-workout",
			"Sweet potatoes (1kg) - natural electrolytes",
			pasta,
		}
	}

	potatoes := "Sweet potatoes (500g)"
	if goal == models.GoalBuildMuscle {
		potatoes = "Sweet potatoes (1kg)"
	}
	return []string{
		"Quinoa (500g) - complete protein grain",
		oats + " (500g) - fiber + sustained energy",
		"Brown rice (500g) - whole grain staple",
		potatoes,
	}
}

func fatItems(f models.DietFlags) []string {
	if f.NutAllergy {
		return []string{
			"Avocados (6) - monounsaturated fats, fiber",
			"Extra virgin olive oil (500ml) - cooking + dressing",
			"Coconut oil (250ml) - medium-chain triglycerides",
			"Sunflower seeds (200g) - vitamin E, seed-based protein",
			"Pumpkin seeds (150g) - magnesium, zinc",
			"Tahini (200g) - sesame-based spread",
		}
	}
	return []string{
		"Avocados (4-6) - heart-healthy monounsaturated fats",
		"Extra virgin olive oil (500ml) - anti-inflammatory",
		"Raw almonds (300g) - vitamin E, magnesium",
		"Walnuts (200g) - omega-3 ALA, brain health",
		"Natural nut butter (250g) - convenient fat + protein",
		"Chia seeds (200g) - omega-3, fiber, protein",
		"Ground flaxseed (200g) - lignans, omega-3",
	}
}

func estimateCost(categories []models.ShoppingCategory) string {
	total := 0
	for _, c := range categories {
		total += len(c.Items) * itemCost[c.Key]
	}
	return fmt.Sprintf("$%d-%d USD (varies by location and quality)", total, int(math.Round(float64(total)*1.3)))
}
