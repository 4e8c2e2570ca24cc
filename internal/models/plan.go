// internal/models/plan.go
package models

type NutritionTargets struct {
	BMR           float64 `json:"bmr"`
	TDEE          float64 `json:"tdee"`
	DailyCalories float64 `json:"dailyCalories"`
	ProteinGrams  float64 `json:"proteinGrams"`
	CarbGrams     float64 `json:"carbGrams"`
	FatGrams      float64 `json:"fatGrams"`
	WaterIntakeMl float64 `json:"waterIntakeMl"`
}

const (
	ConfidenceHigh     = "high"
	ConfidenceFallback = "fallback"
)

type MealPlan struct {
	WeeklyPlan           []DayPlan           `json:"weeklyPlan"`
	Recipes              []Recipe            `json:"recipes"`
	ShoppingList         ShoppingList        `json:"shoppingList"`
	Supplements          SupplementPlan      `json:"supplements"`
	HydrationSchedule    HydrationPlan       `json:"hydrationSchedule"`
	MealPrepTips         MealPrepTips        `json:"mealPrepTips"`
	FoodCategorization   FoodCategorization  `json:"foodCategorization"`
	NutritionalAnalysis  NutritionalAnalysis `json:"nutritionalAnalysis"`
	AIGenerated          bool                `json:"aiGenerated"`
	AIConfidence         string              `json:"aiConfidence"`
	GeneratedTextExcerpt string              `json:"generatedTextExcerpt"`
}

type DayPlan struct {
	Day   int    `json:"day"`
	Meals []Meal `json:"meals"`
}

type Meal struct {
	Name        string   `json:"name"`
	Food        string   `json:"food"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Ingredients []string `json:"ingredients"`
	Portions    string   `json:"portions"`
}

type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Recipe struct {
	Name             string   `json:"name"`
	Servings         int      `json:"servings"`
	PrepTime         string   `json:"prepTime"`
	CookTime         string   `json:"cookTime"`
	Ingredients      []string `json:"ingredients"`
	Instructions     []string `json:"instructions"`
	MacrosPerServing Macros   `json:"macrosPerServing"`
	Benefits         string   `json:"benefits"`
}

type ShoppingCategory struct {
	Key          string   `json:"key"`
	Title        string   `json:"title"`
	Items        []string `json:"items"`
	WeeklyTarget string   `json:"weeklyTarget"`
	Tips         string   `json:"tips"`
}

type ShoppingList struct {
	Categories         []ShoppingCategory `json:"categories"`
	TotalEstimatedCost string             `json:"totalEstimatedCost"`
	ShoppingTips       []string           `json:"shoppingTips"`
}

// Category returns the category with the given key, if present.
func (s ShoppingList) Category(key string) (ShoppingCategory, bool) {
	for _, c := range s.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return ShoppingCategory{}, false
}

type Supplement struct {
	Name         string `json:"name"`
	Priority     string `json:"priority"`
	Reason       string `json:"reason"`
	Dosage       string `json:"dosage"`
	Timing       string `json:"timing"`
	Evidence     string `json:"evidence"`
	Interactions string `json:"interactions"`
}

type SupplementPlan struct {
	Recommendations  []Supplement `json:"recommendations"`
	ImportantNotes   []string     `json:"importantNotes"`
	TotalMonthlyCost string       `json:"totalMonthlyCost"`
}

type HydrationSlot struct {
	Time    string `json:"time"`
	Amount  string `json:"amount"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
	Tip     string `json:"tip"`
}

type HydrationPlan struct {
	DailyTarget float64         `json:"dailyTarget"`
	Schedule    []HydrationSlot `json:"schedule"`
	Tips        []string        `json:"hydrationTips"`
	Warning     string          `json:"warning,omitempty"`
}

type TipSection struct {
	Key   string   `json:"key"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type MealPrepTips struct {
	Sections             []TipSection `json:"sections"`
	WeeklyTimeInvestment string       `json:"weeklyTimeInvestment"`
	BudgetImpact         string       `json:"budgetImpact"`
	SuccessTip           string       `json:"successTip"`
}

type FoodCategory struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Foods       []string `json:"foods"`
	Reasoning   string   `json:"reasoning"`
}

type FoodCategorization struct {
	Prioritize FoodCategory `json:"prioritize"`
	Neutral    FoodCategory `json:"neutral"`
	Minimize   FoodCategory `json:"minimize"`
}

type MetabolicProfile struct {
	BMR          float64 `json:"bmr"`
	TDEE         float64 `json:"tdee"`
	BMI          float64 `json:"bmi"`
	BMICategory  string  `json:"bmiCategory"`
	ProteinPerKg float64 `json:"proteinPerKg"`
	Analysis     string  `json:"analysis"`
}

type MacroBalance struct {
	ProteinPercent int    `json:"proteinPercent"`
	CarbPercent    int    `json:"carbPercent"`
	FatPercent     int    `json:"fatPercent"`
	Assessment     string `json:"assessment"`
}

type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type TimeToGoal struct {
	Weeks  int     `json:"weeks"`
	Months float64 `json:"months"`
}

type NutritionalAnalysis struct {
	MetabolicProfile   MetabolicProfile `json:"metabolicProfile"`
	MacroBalance       MacroBalance     `json:"macroBalance"`
	MicronutrientFocus []string         `json:"micronutrientFocus"`
	MealTimingStrategy string           `json:"mealTimingStrategy"`
	Recommendations    []string         `json:"recommendations"`
	IdealWeightRange   WeightRange      `json:"idealWeightRange"`
	TimeToGoal         *TimeToGoal      `json:"timeToGoal,omitempty"`
}
