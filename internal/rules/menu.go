package rules

import "diet-calculator/internal/models"

type mealTemplate struct {
	food        string
	portions    string
	ingredients []string
}

func m(food, portions string, ingredients ...string) mealTemplate {
	return mealTemplate{food: food, portions: portions, ingredients: ingredients}
}

// slotMenu holds rotating variants per diet branch. A nil branch falls through to standard.
type slotMenu struct {
	vegan      []mealTemplate
	keto       []mealTemplate
	vegetarian []mealTemplate
	dairyFree  []mealTemplate
	standard   []mealTemplate
}

// Branches are tried as vegan, keto (omnivores only), vegetarian, dairy-free, standard.
func (s slotMenu) options(f models.DietFlags) []mealTemplate {
	switch {
	case f.Vegan && s.vegan != nil:
		return s.vegan
	case f.Keto && !f.Vegetarian && s.keto != nil:
		return s.keto
	case f.Vegetarian && s.vegetarian != nil:
		return s.vegetarian
	case f.DairyFree && s.dairyFree != nil:
		return s.dairyFree
	}
	return s.standard
}

var mealSlots = []string{"Breakfast", "Lunch", "Dinner", "Snack 1", "Snack 2", "Pre-workout", "Post-workout", "Evening snack"}

var genericMeal = []mealTemplate{
	m("Balanced meal with protein and vegetables", "Appropriate serving size", "protein source", "vegetables", "healthy fats"),
}

var preWorkoutCarbs = []mealTemplate{
	m("Banana Energy Snack", "1 banana, 1 tbsp spread", "banana", "almond butter", "cinnamon"),
	m("Rice Cakes with Honey", "2 rice cakes, 1 tsp honey", "rice cakes", "honey", "banana slices"),
}

var menus = map[string]slotMenu{
	"Breakfast": {
		vegan: []mealTemplate{
			m("Overnight Oats with Berries", "1/2 cup oats, 1 cup plant milk, 1/2 cup berries", "oats", "plant milk", "berries", "chia seeds"),
			m("Tofu Scramble with Spinach", "150g tofu, 1 cup spinach, 1 slice toast", "firm tofu", "spinach", "turmeric", "whole wheat bread"),
			m("Chia Pudding with Mango", "3 tbsp chia seeds, 1 cup coconut milk", "chia seeds", "coconut milk", "mango", "hemp seeds"),
		},
		keto: []mealTemplate{
			m("Avocado and Eggs", "2 eggs, 1/2 avocado", "eggs", "avocado", "spinach", "olive oil"),
			m("Smoked Salmon Omelette", "3 eggs, 60g salmon", "eggs", "smoked salmon", "chives", "butter"),
			m("Vegetable Frittata", "3 eggs, 1 cup vegetables", "eggs", "spinach", "bell peppers", "cheese"),
		},
		vegetarian: []mealTemplate{
			m("Berry Breakfast Parfait", "1 cup yogurt, 1/2 cup berries", "greek yogurt", "berries", "granola", "honey"),
			m("Vegetable Omelette with Toast", "2 eggs, 1 slice toast", "eggs", "bell peppers", "spinach", "whole wheat bread"),
			m("Banana Protein Oatmeal", "1/2 cup oats, 1 banana", "rolled oats", "milk", "banana", "almonds"),
		},
		dairyFree: []mealTemplate{
			m("Chia Pudding with Plant Milk", "3 tbsp chia seeds, 1 cup coconut milk", "chia seeds", "coconut milk", "berries", "nuts"),
			m("Scrambled Eggs with Avocado Toast", "2 eggs, 1 slice toast, 1/2 avocado", "eggs", "avocado", "whole wheat bread", "cherry tomatoes"),
			m("Oatmeal with Banana and Seeds", "1/2 cup oats, 1 cup oat milk", "rolled oats", "oat milk", "banana", "pumpkin seeds"),
		},
		standard: []mealTemplate{
			m("Greek Yogurt Parfait", "1 cup yogurt, 1/2 cup berries", "greek yogurt", "berries", "granola", "honey"),
			m("Vegetable Omelette with Toast", "3 eggs, 1 slice toast", "eggs", "spinach", "mushrooms", "whole wheat bread"),
			m("Protein Oatmeal", "1/2 cup oats, 1 scoop protein", "rolled oats", "milk", "whey protein", "berries"),
		},
	},
	"Lunch": {
		vegan: []mealTemplate{
			m("Quinoa Buddha Bowl", "1 cup quinoa, 1/2 cup chickpeas", "quinoa", "chickpeas", "vegetables", "tahini"),
			m("Lentil and Vegetable Soup", "1.5 cups soup", "red lentils", "carrots", "celery", "spinach"),
			m("Tempeh Stir-Fry with Rice", "120g tempeh, 1 cup rice", "tempeh", "brown rice", "broccoli", "tamari"),
		},
		keto: []mealTemplate{
			m("Chicken Caesar Salad", "150g chicken, 2 cups salad", "chicken", "romaine", "parmesan", "olive oil"),
			m("Tuna Stuffed Avocado", "1 can tuna, 1 avocado", "tuna", "avocado", "celery", "olive oil"),
			m("Turkey Lettuce Wraps", "150g turkey, 4 lettuce cups", "ground turkey", "lettuce", "cucumber", "sesame oil"),
		},
		vegetarian: []mealTemplate{
			m("Quinoa Buddha Bowl", "1 cup quinoa, 1/2 cup chickpeas", "quinoa", "chickpeas", "vegetables", "tahini"),
			m("Lentil Salad with Eggs", "1 cup lentils, 2 eggs", "lentils", "hard-boiled eggs", "cucumber", "olive oil"),
			m("Black Bean Burrito Bowl", "1 cup beans, 1/2 cup rice", "black beans", "brown rice", "salsa", "cheese"),
		},
		dairyFree: []mealTemplate{
			m("Grilled Chicken Breast", "120g protein, 1 cup grains", "chicken breast", "brown rice", "broccoli", "olive oil"),
			m("Chicken Avocado Salad", "150g chicken, 2 cups salad", "chicken", "romaine", "avocado", "olive oil"),
			m("Salmon Rice Bowl", "120g salmon, 1 cup rice", "salmon", "brown rice", "edamame", "cucumber"),
		},
		standard: []mealTemplate{
			m("Grilled Chicken Breast", "120g protein, 1 cup grains", "chicken breast", "brown rice", "broccoli", "olive oil"),
			m("Turkey and Vegetable Wrap", "100g turkey, 1 tortilla", "turkey breast", "whole wheat tortilla", "lettuce", "hummus"),
			m("Tuna Quinoa Salad", "1 can tuna, 1 cup quinoa", "tuna", "quinoa", "cherry tomatoes", "feta cheese"),
		},
	},
	"Dinner": {
		vegan: []mealTemplate{
			m("Lentil Curry with Vegetables", "1.5 cups curry", "lentils", "coconut milk", "vegetables", "spices"),
			m("Tofu and Broccoli Stir-Fry", "150g tofu, 1 cup rice", "firm tofu", "broccoli", "brown rice", "tamari"),
			m("Black Bean Chili", "2 cups chili", "black beans", "kidney beans", "tomatoes", "bell peppers"),
		},
		keto: []mealTemplate{
			m("Salmon with Asparagus", "150g salmon, 200g vegetables", "salmon", "asparagus", "butter", "herbs"),
			m("Steak with Garlic Greens", "150g steak, 2 cups greens", "sirloin steak", "spinach", "garlic", "olive oil"),
			m("Chicken Thighs with Cauliflower Mash", "2 thighs, 1 cup mash", "chicken thighs", "cauliflower", "butter", "rosemary"),
		},
		vegetarian: []mealTemplate{
			m("Vegetable Lentil Curry", "1.5 cups curry", "lentils", "tomatoes", "spinach", "yogurt"),
			m("Stuffed Bell Peppers", "2 peppers", "bell peppers", "quinoa", "black beans", "cheese"),
			m("Egg Fried Rice with Vegetables", "2 eggs, 1 cup rice", "eggs", "brown rice", "peas", "carrots"),
		},
		dairyFree: []mealTemplate{
			m("Lean Beef with Sweet Potato", "120g protein, 1 medium potato", "lean beef", "sweet potato", "green beans", "herbs"),
			m("Baked Cod with Quinoa", "150g cod, 1 cup quinoa", "cod", "quinoa", "zucchini", "lemon"),
			m("Chicken Stir-Fry", "150g chicken, 1 cup rice", "chicken breast", "brown rice", "bell peppers", "tamari"),
		},
		standard: []mealTemplate{
			m("Lean Beef with Sweet Potato", "120g protein, 1 medium potato", "lean beef", "sweet potato", "green beans", "herbs"),
			m("Baked Salmon with Quinoa", "150g salmon, 1 cup quinoa", "salmon", "quinoa", "asparagus", "lemon"),
			m("Chicken with Roasted Vegetables", "150g chicken, 1 cup potatoes", "chicken breast", "potatoes", "zucchini", "parmesan"),
		},
	},
	"Snack 1": {
		vegan: []mealTemplate{
			m("Hummus and Carrot Sticks", "1/4 cup hummus, 1 cup vegetables", "hummus", "carrots", "cucumber"),
			m("Trail Mix", "1/4 cup", "mixed nuts", "pumpkin seeds", "raisins"),
		},
		keto: []mealTemplate{
			m("Celery Boats", "3 stalks, 2 tbsp spread", "celery", "almond butter"),
			m("Hard-Boiled Eggs", "2 eggs", "eggs", "sea salt", "paprika"),
		},
		vegetarian: []mealTemplate{
			m("Berry Protein Bowl", "1/2 cup cottage cheese, 1/2 cup berries", "cottage cheese", "berries", "honey"),
			m("Apple Slices with Spread", "1 apple, 2 tbsp spread", "apple", "peanut butter"),
		},
		dairyFree: []mealTemplate{
			m("Hummus and Vegetable Sticks", "1/4 cup hummus, 1 cup vegetables", "hummus", "carrots", "bell peppers"),
			m("Apple Slices with Spread", "1 apple, 2 tbsp spread", "apple", "almond butter"),
		},
		standard: []mealTemplate{
			m("Greek Yogurt with Honey", "1 cup yogurt, 1 tsp honey", "greek yogurt", "honey", "cinnamon"),
			m("Apple Slices with Spread", "1 apple, 2 tbsp spread", "apple", "peanut butter"),
		},
	},
	"Snack 2": {
		vegan: []mealTemplate{
			m("Roasted Chickpeas", "1/2 cup", "chickpeas", "olive oil", "smoked paprika"),
			m("Fruit and Seeds", "1 banana, 2 tbsp seeds", "banana", "pumpkin seeds"),
		},
		keto: []mealTemplate{
			m("Olives and Cucumber", "10 olives, 30g cheese", "olives", "cucumber", "cheese cubes"),
			m("Keto Snack Mix", "30g", "macadamia nuts", "pecans", "pumpkin seeds"),
		},
		vegetarian: []mealTemplate{
			m("Hard-Boiled Eggs", "2 eggs", "eggs", "sea salt"),
			m("Edamame", "1 cup", "edamame", "sea salt"),
		},
		dairyFree: []mealTemplate{
			m("Edamame", "1 cup", "edamame", "sea salt"),
			m("Rice Cakes with Avocado", "2 rice cakes, 1/4 avocado", "rice cakes", "avocado", "chili flakes"),
		},
		standard: []mealTemplate{
			m("Cheese and Fruit Plate", "30g cheese, 1 cup grapes", "cheese", "grapes"),
			m("Edamame", "1 cup", "edamame", "sea salt"),
		},
	},
	"Pre-workout": {
		keto: []mealTemplate{
			m("Coffee with MCT Oil", "1 cup coffee, 1 tbsp oil", "black coffee", "mct oil"),
			m("Turkey Roll-Ups", "80g turkey", "turkey slices", "avocado", "lettuce"),
		},
		vegan: []mealTemplate{
			preWorkoutCarbs[0],
			m("Date and Oat Bites", "3 bites", "dates", "oats", "cocoa powder"),
		},
		standard: preWorkoutCarbs,
	},
	"Post-workout": {
		vegan: []mealTemplate{
			m("Plant Protein Smoothie", "1 scoop, 1 banana", "plant protein powder", "banana", "plant milk", "spinach"),
			m("Tofu Rice Bowl", "150g tofu, 1 cup rice", "firm tofu", "white rice", "edamame"),
		},
		keto: []mealTemplate{
			m("Protein Shake", "1 scoop", "whey protein", "water", "mct oil"),
			m("Tuna Salad Cups", "1 can tuna", "tuna", "avocado", "lettuce"),
		},
		vegetarian: []mealTemplate{
			m("Protein Smoothie", "1 scoop, 1 banana", "whey protein", "banana", "milk", "berries"),
			m("Eggs on Rice", "2 eggs, 1 cup rice", "eggs", "white rice", "spinach"),
		},
		dairyFree: []mealTemplate{
			m("Protein Smoothie", "1 scoop, 1 banana", "pea protein", "banana", "oat milk", "berries"),
			m("Chicken and Rice", "120g chicken, 1 cup rice", "chicken breast", "white rice", "spinach"),
		},
		standard: []mealTemplate{
			m("Protein Smoothie", "1 scoop, 1 banana", "whey protein", "banana", "milk", "berries"),
			m("Chicken and Rice", "120g chicken, 1 cup rice", "chicken breast", "white rice", "spinach"),
		},
	},
	"Evening snack": {
		vegan: []mealTemplate{
			m("Chia Pudding", "2 tbsp chia seeds, 1/2 cup coconut milk", "chia seeds", "coconut milk", "cinnamon"),
			m("Herbal Tea and Fruit", "1 cup tea, 2 kiwis", "chamomile tea", "kiwi"),
		},
		keto: []mealTemplate{
			m("Evening Fat Bombs", "2 pieces", "coconut oil", "cocoa powder", "almond butter"),
			m("Cucumber and Guacamole", "1 cucumber, 1/4 cup guacamole", "cucumber", "guacamole"),
		},
		vegetarian: []mealTemplate{
			m("Evening Berry Bowl", "1/2 cup cottage cheese, 1/2 cup berries", "cottage cheese", "berries", "cinnamon"),
			m("Herbal Tea and Fruit", "1 cup tea, 2 kiwis", "chamomile tea", "kiwi"),
		},
		dairyFree: []mealTemplate{
			m("Herbal Tea and Fruit", "1 cup tea, 2 kiwis", "chamomile tea", "kiwi"),
			m("Turkey Slices and Cucumber", "60g turkey, 1 cucumber", "turkey slices", "cucumber"),
		},
		standard: []mealTemplate{
			m("Cottage Cheese with Berries", "1/2 cup cottage cheese, 1/2 cup berries", "cottage cheese", "berries"),
			m("Herbal Tea and Fruit", "1 cup tea, 2 kiwis", "chamomile tea", "kiwi"),
		},
	},
}

func menuFor(slot string) slotMenu {
	if menu, ok := menus[slot]; ok {
		return menu
	}
	return slotMenu{standard: genericMeal}
}
