package rules

import (
	"math"

	"diet-calculator/internal/models"
)

const maxRecipes = 3

type recipeTemplate struct {
	name         string
	plantName    string
	servings     int
	prepTime     string
	cookTime     string
	vegan        []string
	vegetarian   []string
	standard     []string
	instructions []string
	// Share of the daily targets carried by one serving.
	calories, protein, carbs, fat float64
	benefits                      string
}

// variant picks the name and ingredient list for the diet. Plant-based lists
// use plantName when one is set.
func (r recipeTemplate) variant(f models.DietFlags) (string, []string) {
	var plant []string
	switch {
	case f.Vegan && r.vegan != nil:
		plant = r.vegan
	case f.Vegetarian && r.vegetarian != nil:
		plant = r.vegetarian
	case f.Vegetarian && r.vegan != nil:
		plant = r.vegan
	default:
		return r.name, r.standard
	}
	if r.plantName != "" {
		return r.plantName, plant
	}
	return r.name, plant
}

var goalRecipes = map[models.Goal][]recipeTemplate{
	models.GoalLoseWeight: {
		{
			name: "Mediterranean Stuffed Bell Peppers", servings: 2, prepTime: "15 mins", cookTime: "35 mins",
			vegan:    []string{"4 bell peppers", "1 cup quinoa", "1 can chickpeas", "1 diced tomato", "1/2 cup olive tapenade", "fresh herbs"},
			standard: []string{"4 bell peppers", "200g lean ground turkey", "1 cup cauliflower rice", "1 diced tomato", "2 tbsp feta cheese", "oregano"},
			instructions: []string{
				"Preheat oven to 375°F (190°C)",
				"Cut tops off peppers and remove seeds",
				"Mix filling ingredients in a bowl",
				"Stuff peppers with mixture and bake 30-35 minutes",
				"Serve with side salad",
			},
			calories: 0.35, protein: 0.4, carbs: 0.25, fat: 0.3,
			benefits: "High fiber, low calorie density, supports satiety for weight loss",
		},
		{
			name: "Zucchini Noodle Protein Bowl", servings: 1, prepTime: "10 mins", cookTime: "8 mins",
			vegan:    []string{"2 large zucchini", "150g firm tofu", "1 tbsp nutritional yeast", "1 cup cherry tomatoes", "2 tbsp hemp seeds", "basil"},
			standard: []string{"2 large zucchini", "150g grilled chicken", "1/4 cup parmesan", "1 cup cherry tomatoes", "1 tbsp pine nuts", "basil"},
			instructions: []string{
				"Spiralize zucchini into noodles",
				"Sauté protein of choice with herbs",
				"Lightly cook zucchini noodles for 2-3 minutes",
				"Combine with protein and cherry tomatoes",
				"Top with seeds and fresh herbs",
			},
			calories: 0.3, protein: 0.35, carbs: 0.15, fat: 0.25,
			benefits: "Very low carb, high protein, promotes fat oxidation",
		},
		{
			name: "Lemon Herb Cod with Greens", plantName: "Lemon Herb Tofu with Greens", servings: 2, prepTime: "10 mins", cookTime: "15 mins",
			vegan:    []string{"300g firm tofu", "2 cups green beans", "1 lemon", "2 tsp olive oil", "garlic", "parsley"},
			standard: []string{"2 cod fillets", "2 cups green beans", "1 lemon", "2 tsp olive oil", "garlic", "parsley"},
			instructions: []string{
				"Preheat oven to 400°F (200°C)",
				"Arrange protein and green beans on a lined tray",
				"Drizzle with olive oil, lemon juice and garlic",
				"Bake 12-15 minutes until cooked through",
				"Finish with parsley and lemon zest",
			},
			calories: 0.28, protein: 0.35, carbs: 0.12, fat: 0.2,
			benefits: "Lean protein with high-volume vegetables keeps calories low",
		},
	},
	models.GoalBuildMuscle: {
		{
			name: "Power-Packed Overnight Oats", servings: 1, prepTime: "5 mins", cookTime: "0 mins (overnight)",
			vegan:    []string{"1 cup rolled oats", "1 scoop plant protein powder", "2 tbsp almond butter", "1 banana", "1 cup plant milk", "1 tbsp chia seeds"},
			standard: []string{"1 cup rolled oats", "1 scoop whey protein", "2 tbsp peanut butter", "1 banana", "1 cup milk", "1 tbsp ground flaxseed"},
			instructions: []string{
				"Mix oats, protein powder, and liquid in jar",
				"Add the spread and mashed banana",
				"Stir in seeds and refrigerate overnight",
				"Top with extra banana slices before eating",
				"Eat within 30 minutes post-workout for optimal results",
			},
			calories: 0.4, protein: 0.45, carbs: 0.4, fat: 0.35,
			benefits: "High protein for muscle synthesis, complex carbs for sustained energy",
		},
		{
			name: "Anabolic Chicken and Sweet Potato Stack", plantName: "Anabolic Tofu and Sweet Potato Stack", servings: 1, prepTime: "10 mins", cookTime: "25 mins",
			vegetarian: []string{"200g extra-firm tofu", "1 large sweet potato", "1 cup spinach", "1/4 avocado", "2 tbsp tahini sauce"},
			standard:   []string{"200g chicken breast", "1 large sweet potato", "1 cup broccoli", "1/4 avocado", "1 tbsp olive oil"},
			instructions: []string{
				"Bake sweet potato at 400°F for 20 minutes",
				"Season and grill protein until cooked through",
				"Steam vegetables until tender-crisp",
				"Stack ingredients with protein on top",
				"Drizzle with healthy fat source",
			},
			calories: 0.45, protein: 0.5, carbs: 0.45, fat: 0.4,
			benefits: "Complete amino acid profile, optimal carb timing for muscle growth",
		},
	},
	models.GoalAthleticPerformance: {
		{
			name: "Pre-Workout Energy Balls", servings: 6, prepTime: "15 mins", cookTime: "0 mins",
			standard: []string{"1 cup dates", "1/2 cup almonds", "2 tbsp almond butter", "1 tsp vanilla", "1 tbsp cacao powder"},
			instructions: []string{
				"Soak dates in warm water for 10 minutes",
				"Pulse the dry base in a food processor until roughly chopped",
				"Add dates and other ingredients, process until sticky",
				"Roll into 12 balls and refrigerate",
				"Eat 1-2 balls 30 minutes before training",
			},
			calories: 0.08, protein: 0.08, carbs: 0.15, fat: 0.1,
			benefits: "Quick-digesting carbs for immediate energy, portable for training",
		},
		{
			name: "Recovery Salmon Rice Bowl", plantName: "Recovery Tempeh Rice Bowl", servings: 1, prepTime: "10 mins", cookTime: "20 mins",
			vegan:    []string{"150g baked tempeh", "1 cup jasmine rice", "1 cup spinach", "1/2 cup edamame", "1 tbsp tamari"},
			standard: []string{"150g salmon fillet", "1 cup jasmine rice", "1 cup spinach", "1/2 cup edamame", "1 tbsp tamari"},
			instructions: []string{
				"Cook rice according to package directions",
				"Bake or pan-sear protein for 10-12 minutes",
				"Wilt spinach in the warm pan",
				"Assemble bowl with rice, greens, edamame and protein",
				"Eat within an hour after training",
			},
			calories: 0.35, protein: 0.35, carbs: 0.35, fat: 0.25,
			benefits: "Replenishes glycogen and supplies protein for recovery",
		},
	},
	models.GoalBodyRecomposition: {
		{
			name: "High-Protein Egg Muffins", plantName: "High-Protein Tofu Muffins", servings: 6, prepTime: "10 mins", cookTime: "20 mins",
			vegan:    []string{"400g silken tofu", "1 cup chopped spinach", "1 diced bell pepper", "2 tbsp nutritional yeast", "turmeric"},
			standard: []string{"8 eggs", "1 cup chopped spinach", "1 diced bell pepper", "1/4 cup cottage cheese", "black pepper"},
			instructions: []string{
				"Preheat oven to 350°F (175°C)",
				"Whisk the base with seasoning",
				"Fold in the vegetables",
				"Pour into a muffin tin and bake 18-20 minutes",
				"Cool and refrigerate for grab-and-go breakfasts",
			},
			calories: 0.1, protein: 0.12, carbs: 0.05, fat: 0.1,
			benefits: "High protein with minimal carbs, easy to portion",
		},
		{
			name: "Turkey Quinoa Power Bowl", plantName: "Black Bean Quinoa Power Bowl", servings: 2, prepTime: "10 mins", cookTime: "20 mins",
			vegan:    []string{"1 can black beans", "1 cup quinoa", "2 cups roasted vegetables", "1/2 avocado", "salsa"},
			standard: []string{"300g lean ground turkey", "1 cup quinoa", "2 cups roasted vegetables", "1/2 avocado", "salsa"},
			instructions: []string{
				"Cook quinoa and roast vegetables",
				"Brown the protein with cumin and garlic",
				"Divide everything between two bowls",
				"Top with avocado and salsa",
			},
			calories: 0.35, protein: 0.4, carbs: 0.35, fat: 0.3,
			benefits: "Balanced protein and carbs to support training while managing body fat",
		},
	},
	models.GoalImproveHealth: {
		{
			name: "Rainbow Mediterranean Salad", servings: 2, prepTime: "15 mins", cookTime: "0 mins",
			vegan:    []string{"4 cups mixed greens", "1 can chickpeas", "1 cup cherry tomatoes", "1 cucumber", "1/4 cup olives", "2 tbsp olive oil"},
			standard: []string{"4 cups mixed greens", "200g grilled salmon", "1 cup cherry tomatoes", "1 cucumber", "1/4 cup olives", "2 tbsp olive oil"},
			instructions: []string{
				"Wash and chop all vegetables",
				"Combine greens, tomatoes, cucumber and olives",
				"Add protein on top",
				"Dress with olive oil and lemon juice",
			},
			calories: 0.3, protein: 0.3, carbs: 0.2, fat: 0.35,
			benefits: "Rich in omega-3s, fiber and antioxidants for long-term health",
		},
		{
			name: "Lentil and Vegetable Stew", servings: 4, prepTime: "15 mins", cookTime: "40 mins",
			standard: []string{"1.5 cups brown lentils", "2 carrots", "2 celery stalks", "1 can diced tomatoes", "4 cups vegetable broth", "cumin"},
			instructions: []string{
				"Sauté onion, carrots and celery until soft",
				"Add lentils, tomatoes, broth and spices",
				"Simmer 35-40 minutes until lentils are tender",
				"Season and serve warm",
			},
			calories: 0.25, protein: 0.25, carbs: 0.3, fat: 0.1,
			benefits: "Plant protein and fiber support heart and gut health",
		},
	},
}

// BuildRecipes returns up to three recipes for the profile's goal with
// ingredients adjusted for diet and allergies.
func BuildRecipes(p models.UserProfile, t models.NutritionTargets) []models.Recipe {
	templates, ok := goalRecipes[p.Goal]
	if !ok {
		templates = goalRecipes[models.GoalImproveHealth]
	}
	if len(templates) > maxRecipes {
		templates = templates[:maxRecipes]
	}

	f := p.Flags()
	recipes := make([]models.Recipe, 0, len(templates))
	for _, r := range templates {
		name, ingredients := r.variant(f)
		recipes = append(recipes, models.Recipe{
			Name:         name,
			Servings:     r.servings,
			PrepTime:     r.prepTime,
			CookTime:     r.cookTime,
			Ingredients:  adaptIngredients(ingredients, f),
			Instructions: append([]string(nil), r.instructions...),
			MacrosPerServing: models.Macros{
				Calories: math.Round(t.DailyCalories * r.calories),
				Protein:  math.Round(t.ProteinGrams * r.protein),
				Carbs:    math.Round(t.CarbGrams * r.carbs),
				Fat:      math.Round(t.FatGrams * r.fat),
			},
			Benefits: r.benefits,
		})
	}
	return recipes
}
