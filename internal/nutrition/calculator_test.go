package nutrition

import (
	"math"
	"testing"

	"diet-calculator/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestComputeBMR(t *testing.T) {
	cases := []struct {
		name   string
		height float64
		weight float64
		age    int
		sex    models.Sex
		want   float64
	}{
		{"male", 170, 70, 30, models.SexMale, 1617.5},
		{"female", 170, 70, 30, models.SexFemale, 1451.5},
		{"fractional", 182, 77.33, 41, models.SexMale, 1710.8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeBMR(tc.height, tc.weight, tc.age, tc.sex)
			if got != tc.want {
				t.Fatalf("ComputeBMR = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestComputeTDEE(t *testing.T) {
	got := ComputeTDEE(1617.5, models.ActivityVeryActive, models.IntensityModerate)
	if got != 2890.19 {
		t.Fatalf("ComputeTDEE = %v, want 2890.19", got)
	}

	// unknown values fall back to moderate activity and intensity
	fallback := ComputeTDEE(1000, "", "")
	if fallback != 1650 {
		t.Fatalf("ComputeTDEE fallback = %v, want 1650", fallback)
	}

	low := ComputeTDEE(1000, models.ActivitySedentary, models.IntensityLow)
	if low != 1200 {
		t.Fatalf("ComputeTDEE sedentary/low = %v, want 1200", low)
	}
}

func TestComputeDailyCalories(t *testing.T) {
	cases := []struct {
		name       string
		tdee       float64
		goal       models.Goal
		weight     float64
		goalWeight *float64
		weeks      int
		want       float64
	}{
		{"lose with target", 2600, models.GoalLoseWeight, 80, floatPtr(72), 12, 1867},
		{"lose deficit capped", 2600, models.GoalLoseWeight, 100, floatPtr(70), 4, 1600},
		{"lose deficit min", 2600, models.GoalLoseWeight, 80, floatPtr(79), 52, 2300},
		{"lose without target", 2500, models.GoalLoseWeight, 80, nil, 12, 2000},
		{"lose target above weight", 2500, models.GoalLoseWeight, 80, floatPtr(85), 12, 2000},
		{"lose zero weeks", 2600, models.GoalLoseWeight, 80, floatPtr(79), 0, 1600},
		{"build muscle", 2500, models.GoalBuildMuscle, 80, nil, 12, 2750},
		{"athletic", 2500, models.GoalAthleticPerformance, 80, nil, 12, 2625},
		{"recomposition", 2500, models.GoalBodyRecomposition, 80, nil, 12, 2500},
		{"health", 2500, models.GoalImproveHealth, 80, nil, 12, 2500},
		{"unknown goal", 2500, "bulk", 80, nil, 12, 2500},
		{"floor", 1300, models.GoalLoseWeight, 50, nil, 12, 1200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDailyCalories(tc.tdee, tc.goal, tc.weight, tc.goalWeight, tc.weeks)
			if got != tc.want {
				t.Fatalf("ComputeDailyCalories = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestComputeDailyCalories_NeverBelowFloor(t *testing.T) {
	goals := []models.Goal{
		models.GoalLoseWeight, models.GoalBuildMuscle, models.GoalAthleticPerformance,
		models.GoalBodyRecomposition, models.GoalImproveHealth,
	}
	for _, goal := range goals {
		for tdee := 800.0; tdee <= 4000; tdee += 137 {
			for _, gw := range []*float64{nil, floatPtr(30), floatPtr(60)} {
				for _, weeks := range []int{0, 1, 4, 26} {
					got := ComputeDailyCalories(tdee, goal, 120, gw, weeks)
					if got < 1200 {
						t.Fatalf("goal=%s tdee=%v weeks=%d: got %v below floor", goal, tdee, weeks, got)
					}
				}
			}
		}
	}
}

func TestComputeMacros(t *testing.T) {
	cases := []struct {
		name  string
		kcal  float64
		ratio models.MacroRatio
		goal  models.Goal
		want  Macros
	}{
		{"balanced", 2000, models.RatioBalanced, models.GoalImproveHealth, Macros{125, 225, 66.7}},
		{"high protein", 2000, models.RatioHighProtein, models.GoalLoseWeight, Macros{175, 175, 66.7}},
		{"low carb", 2000, models.RatioLowCarb, models.GoalLoseWeight, Macros{150, 100, 111.1}},
		{"high carb", 2000, models.RatioHighCarb, models.GoalAthleticPerformance, Macros{100, 300, 44.4}},
		{"muscle balanced override", 2000, models.RatioBalanced, models.GoalBuildMuscle, Macros{150, 200, 66.7}},
		{"muscle high protein keeps table", 2000, models.RatioHighProtein, models.GoalBuildMuscle, Macros{175, 175, 66.7}},
		{"unknown ratio", 2000, "paleo", models.GoalImproveHealth, Macros{125, 225, 66.7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeMacros(tc.kcal, tc.ratio, tc.goal)
			if got != tc.want {
				t.Fatalf("ComputeMacros = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestComputeMacros_EnergyRoundTrip(t *testing.T) {
	for _, ratio := range []models.MacroRatio{models.RatioBalanced, models.RatioHighProtein, models.RatioLowCarb, models.RatioHighCarb} {
		m := ComputeMacros(2345, ratio, models.GoalImproveHealth)
		kcal := m.Protein*4 + m.Carbs*4 + m.Fat*9
		if math.Abs(kcal-2345) > 5 {
			t.Fatalf("%s: macros sum to %v kcal", ratio, kcal)
		}
	}
}

func TestComputeWaterIntake(t *testing.T) {
	cases := []struct {
		weight    float64
		intensity models.ExerciseIntensity
		want      float64
	}{
		{70, models.IntensityModerate, 2950},
		{70, models.IntensityLow, 2700},
		{40, models.IntensityLow, 2000},
		{120, models.IntensityVeryHigh, 4000},
		{80, "", 3300},
	}
	for _, tc := range cases {
		got := ComputeWaterIntake(tc.weight, tc.intensity)
		if got != tc.want {
			t.Fatalf("ComputeWaterIntake(%v, %q) = %v, want %v", tc.weight, tc.intensity, got, tc.want)
		}
	}
}

func TestComputeTargets(t *testing.T) {
	p := models.UserProfile{
		Height: 175, Weight: 80, Age: 28,
		Sex:                models.SexMale,
		Goal:               models.GoalLoseWeight,
		TimelineWeeks:      12,
		GoalWeight:         floatPtr(72),
		ExerciseIntensity:  models.IntensityModerate,
		DailyActivityLevel: models.ActivityModeratelyActive,
		MacronutrientRatio: models.RatioBalanced,
		MealsPerDay:        3,
	}
	got := ComputeTargets(p)

	if got.BMR != 1758.75 {
		t.Fatalf("BMR = %v", got.BMR)
	}
	if got.TDEE != 2826.06 {
		t.Fatalf("TDEE = %v", got.TDEE)
	}
	if got.DailyCalories >= got.TDEE || got.DailyCalories < 1200 {
		t.Fatalf("DailyCalories = %v, TDEE = %v", got.DailyCalories, got.TDEE)
	}
	if got.WaterIntakeMl != 3300 {
		t.Fatalf("WaterIntakeMl = %v", got.WaterIntakeMl)
	}
}
