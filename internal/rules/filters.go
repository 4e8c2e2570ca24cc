package rules

import (
	"strings"

	"diet-calculator/internal/models"
)

// Terms that contain "nut" but are safe with a nut allergy.
var nutSafeTerms = []string{"coconut", "nutritional yeast", "nutrient", "nutrition", "minute"}

// Tree nuts that do not carry the "nut" substring.
var treeNuts = []string{"almond", "cashew", "pecan", "pistachio", "macadamia"}

// IsNutItem reports whether s names a nut or a nut product.
func IsNutItem(s string) bool {
	s = strings.ToLower(s)
	for _, safe := range nutSafeTerms {
		s = strings.ReplaceAll(s, safe, "")
	}
	if strings.Contains(s, "nut") {
		return true
	}
	return containsAny(s, treeNuts)
}

var (
	dairyTerms       = []string{"dairy", "milk", "yogurt", "cheese", "whey", "casein"}
	meatTerms        = []string{"meat", "salmon", "fish", "poultry", "chicken", "beef", "turkey", "tuna"}
	animalTerms      = append([]string{"egg", "yogurt", "cheese", "dairy", "whey", "casein"}, meatTerms...)
	ketoCarbTerms    = []string{"quinoa", "sweet potato", "oats", "brown rice", "complex carbs", "whole grains", "banana"}
	ketoNeutralCarbs = []string{"whole grains", "fruits", "legumes"}
	glutenTerms      = []string{"oats", "wheat", "barley", "rye"}
)

func containsAny(s string, terms []string) bool {
	s = strings.ToLower(s)
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// without returns the items that match none of the terms.
func without(items []string, terms []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !containsAny(item, terms) {
			out = append(out, item)
		}
	}
	return out
}

func withoutNuts(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !IsNutItem(item) {
			out = append(out, item)
		}
	}
	return out
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Identity pairs pin already-safe phrases so the shorter patterns after them cannot rewrite them.
var dairySwaps = strings.NewReplacer(
	"coconut yogurt", "coconut yogurt",
	"coconut milk", "coconut milk",
	"plant milk", "plant milk",
	"oat milk", "oat milk",
	"almond milk", "almond milk",
	"peanut butter", "peanut butter",
	"almond butter", "almond butter",
	"nut butter", "nut butter",
	"seed butter", "seed butter",
	"greek yogurt", "coconut yogurt",
	"yogurt", "coconut yogurt",
	"cottage cheese", "silken tofu",
	"parmesan", "nutritional yeast",
	"feta cheese", "olives",
	"cheese", "dairy-free cheese",
	"whey protein", "pea protein",
	"milk", "oat milk",
	"butter", "olive oil",
)

var glutenSwaps = strings.NewReplacer(
	"whole grain pasta", "rice pasta",
	"pasta", "rice pasta",
	"whole wheat bread", "rice cakes",
	"bread", "rice cakes",
	"1 slice toast", "2 rice cakes",
	"rolled oats", "certified gluten-free oats",
	"quick oats", "certified gluten-free oats",
	"oats", "certified gluten-free oats",
	"granola", "buckwheat granola",
	"couscous", "quinoa",
	"barley", "brown rice",
	"whole wheat tortilla", "corn tortilla",
	"seitan", "tempeh",
)

var nutSwaps = strings.NewReplacer(
	"coconut", "coconut",
	"nutritional yeast", "nutritional yeast",
	"pine nuts", "sunflower seeds",
	"peanut butter", "sunflower seed butter",
	"almond butter", "sunflower seed butter",
	"nut butter", "sunflower seed butter",
	"almond milk", "oat milk",
	"almond flour", "sunflower seed flour",
	"mixed nuts", "mixed seeds",
	"almonds", "pumpkin seeds",
	"walnuts", "hemp seeds",
	"cashews", "sunflower seeds",
	"pecans", "pumpkin seeds",
	"nuts", "seeds",
)

// adaptIngredients rewrites ingredient lines for the profile's restrictions.
func adaptIngredients(items []string, f models.DietFlags) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = adaptItem(item, f)
	}
	return out
}

// adaptItem applies the dairy, gluten and nut swaps in that order.
// Nut handling runs last and drops to a generic seed mix if a nut term survives.
func adaptItem(item string, f models.DietFlags) string {
	if f.DairyFree {
		item = dairySwaps.Replace(item)
	}
	if f.GlutenFree {
		item = glutenSwaps.Replace(item)
	}
	if f.NutAllergy {
		item = nutSwaps.Replace(item)
		if IsNutItem(item) {
			item = "mixed seeds"
		}
	}
	return item
}
