// internal/models/profile.go
package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

type Goal string

const (
	GoalLoseWeight          Goal = "lose_weight"
	GoalBuildMuscle         Goal = "build_muscle"
	GoalAthleticPerformance Goal = "athletic_performance"
	GoalBodyRecomposition   Goal = "body_recomposition"
	GoalImproveHealth       Goal = "improve_health"
)

func (g Goal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalBuildMuscle, GoalAthleticPerformance, GoalBodyRecomposition, GoalImproveHealth:
		return true
	}
	return false
}

// Label is the goal with underscores replaced, e.g. "lose weight".
func (g Goal) Label() string {
	return humanize(string(g))
}

type ExerciseIntensity string

const (
	IntensityLow      ExerciseIntensity = "low"
	IntensityModerate ExerciseIntensity = "moderate"
	IntensityHigh     ExerciseIntensity = "high"
	IntensityVeryHigh ExerciseIntensity = "very_high"
)

func (e ExerciseIntensity) Valid() bool {
	switch e {
	case IntensityLow, IntensityModerate, IntensityHigh, IntensityVeryHigh:
		return true
	}
	return false
}

// Intense reports high or very_high training.
func (e ExerciseIntensity) Intense() bool {
	return e == IntensityHigh || e == IntensityVeryHigh
}

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive, ActivityExtremelyActive:
		return true
	}
	return false
}

type MacroRatio string

const (
	RatioBalanced    MacroRatio = "balanced"
	RatioHighProtein MacroRatio = "high_protein"
	RatioLowCarb     MacroRatio = "low_carb"
	RatioHighCarb    MacroRatio = "high_carb"
)

func (m MacroRatio) Valid() bool {
	switch m {
	case RatioBalanced, RatioHighProtein, RatioLowCarb, RatioHighCarb:
		return true
	}
	return false
}

// Recognized preference, allergy and intolerance values.
const (
	PrefVegan      = "vegan"
	PrefVegetarian = "vegetarian"
	PrefKeto       = "keto"
	PrefLowCarb    = "low_carb"

	AllergyNuts   = "nuts"
	AllergyDairy  = "dairy"
	AllergyGluten = "gluten"

	IntoleranceLactose = "lactose"
	IntoleranceGluten  = "gluten"
)

var ErrInvalidProfile = errors.New("invalid profile")

type UserProfile struct {
	Height             float64           `json:"height"`
	Weight             float64           `json:"weight"`
	Age                int               `json:"age"`
	Sex                Sex               `json:"sex"`
	Goal               Goal              `json:"goal"`
	TimelineWeeks      int               `json:"timelineWeeks"`
	GoalWeight         *float64          `json:"goalWeight,omitempty"`
	ExerciseIntensity  ExerciseIntensity `json:"exerciseIntensity"`
	DailyActivityLevel ActivityLevel     `json:"dailyActivityLevel"`
	DietaryPreferences []string          `json:"dietaryPreferences"`
	FoodAllergies      []string          `json:"foodAllergies"`
	FoodIntolerances   []string          `json:"foodIntolerances"`
	MacronutrientRatio MacroRatio        `json:"macronutrientRatio"`
	MealsPerDay        int               `json:"mealsPerDay"`
}

// Normalize lower-cases and trims the free-form sets, dropping blanks and duplicates.
func (p UserProfile) Normalize() UserProfile {
	p.DietaryPreferences = normalizeSet(p.DietaryPreferences)
	p.FoodAllergies = normalizeSet(p.FoodAllergies)
	p.FoodIntolerances = normalizeSet(p.FoodIntolerances)
	p.Sex = Sex(strings.ToLower(strings.TrimSpace(string(p.Sex))))
	p.Goal = Goal(strings.ToLower(strings.TrimSpace(string(p.Goal))))
	p.ExerciseIntensity = ExerciseIntensity(strings.ToLower(strings.TrimSpace(string(p.ExerciseIntensity))))
	p.DailyActivityLevel = ActivityLevel(strings.ToLower(strings.TrimSpace(string(p.DailyActivityLevel))))
	p.MacronutrientRatio = MacroRatio(strings.ToLower(strings.TrimSpace(string(p.MacronutrientRatio))))
	return p
}

// Validate checks every field and reports all violations at once.
func (p UserProfile) Validate() error {
	var problems []string
	if !inRange(p.Height, 100, 250) {
		problems = append(problems, "height must be between 100 and 250 cm")
	}
	if !inRange(p.Weight, 30, 300) {
		problems = append(problems, "weight must be between 30 and 300 kg")
	}
	if p.Age < 13 || p.Age > 100 {
		problems = append(problems, "age must be between 13 and 100")
	}
	if !p.Sex.Valid() {
		problems = append(problems, fmt.Sprintf("sex %q is not supported", p.Sex))
	}
	if !p.Goal.Valid() {
		problems = append(problems, fmt.Sprintf("goal %q is not supported", p.Goal))
	}
	if p.TimelineWeeks < 1 {
		problems = append(problems, "timeline must be at least 1 week")
	}
	if p.GoalWeight != nil && !inRange(*p.GoalWeight, 30, 300) {
		problems = append(problems, "goal weight must be between 30 and 300 kg")
	}
	if !p.ExerciseIntensity.Valid() {
		problems = append(problems, fmt.Sprintf("exercise intensity %q is not supported", p.ExerciseIntensity))
	}
	if !p.DailyActivityLevel.Valid() {
		problems = append(problems, fmt.Sprintf("activity level %q is not supported", p.DailyActivityLevel))
	}
	if !p.MacronutrientRatio.Valid() {
		problems = append(problems, fmt.Sprintf("macronutrient ratio %q is not supported", p.MacronutrientRatio))
	}
	if p.MealsPerDay < 1 || p.MealsPerDay > 8 {
		problems = append(problems, "meals per day must be between 1 and 8")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, "; "))
	}
	return nil
}

// DietFlags are the boolean switches the rule tables branch on.
type DietFlags struct {
	Vegan      bool
	Vegetarian bool
	Keto       bool
	NutAllergy bool
	DairyFree  bool
	GlutenFree bool
}

func (p UserProfile) Flags() DietFlags {
	vegan := contains(p.DietaryPreferences, PrefVegan)
	return DietFlags{
		Vegan:      vegan,
		Vegetarian: vegan || contains(p.DietaryPreferences, PrefVegetarian),
		Keto:       contains(p.DietaryPreferences, PrefKeto) || contains(p.DietaryPreferences, PrefLowCarb),
		NutAllergy: contains(p.FoodAllergies, AllergyNuts),
		DairyFree:  vegan || contains(p.FoodAllergies, AllergyDairy) || contains(p.FoodIntolerances, IntoleranceLactose),
		GlutenFree: contains(p.FoodAllergies, AllergyGluten) || contains(p.FoodIntolerances, IntoleranceGluten),
	}
}

// HasPreference reports whether pref was selected.
func (p UserProfile) HasPreference(pref string) bool {
	return contains(p.DietaryPreferences, pref)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func normalizeSet(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// Humanize replaces underscores with spaces in an enum value.
func Humanize(v string) string {
	return humanize(v)
}

// inRange is false for NaN and infinities.
func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= lo && v <= hi
}
