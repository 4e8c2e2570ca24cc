package planner

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"diet-calculator/internal/models"
	"diet-calculator/internal/nutrition"
)

type fakeGenerator struct {
	text   string
	err    error
	panics bool
	calls  int
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.panics {
		panic("generator exploded")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.text, f.err
}

func scenarioProfile() models.UserProfile {
	goal := 72.0
	return models.UserProfile{
		Height:             175,
		Weight:             80,
		Age:                28,
		Sex:                models.SexMale,
		Goal:               models.GoalLoseWeight,
		TimelineWeeks:      12,
		GoalWeight:         &goal,
		ExerciseIntensity:  models.IntensityModerate,
		DailyActivityLevel: models.ActivityModeratelyActive,
		MacronutrientRatio: models.RatioBalanced,
		MealsPerDay:        3,
	}
}

func structured(t *testing.T, plan *models.MealPlan) string {
	t.Helper()
	clone := *plan
	clone.AIGenerated = false
	clone.AIConfidence = ""
	clone.GeneratedTextExcerpt = ""
	b, err := json.Marshal(clone)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestGenerate_NoCredentialFallsBack(t *testing.T) {
	res, err := New(nil, nil).Generate(context.Background(), scenarioProfile())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if res.Plan.AIGenerated || res.Plan.AIConfidence != models.ConfidenceFallback {
		t.Fatalf("expected fallback plan, got aiGenerated=%v confidence=%q", res.Plan.AIGenerated, res.Plan.AIConfidence)
	}
	if res.Plan.GeneratedTextExcerpt != FallbackExcerpt {
		t.Fatalf("excerpt = %q", res.Plan.GeneratedTextExcerpt)
	}
	if res.Targets.DailyCalories >= res.Targets.TDEE {
		t.Fatalf("daily calories %v should be below TDEE %v", res.Targets.DailyCalories, res.Targets.TDEE)
	}
	if len(res.Plan.WeeklyPlan) != 7 || len(res.Plan.WeeklyPlan[0].Meals) != 3 {
		t.Fatalf("unexpected weekly plan shape")
	}
	if len(res.Plan.FoodCategorization.Prioritize.Foods) == 0 || len(res.Plan.Supplements.Recommendations) == 0 {
		t.Fatalf("structured fields missing")
	}
}

func TestGenerate_InvalidProfile(t *testing.T) {
	p := scenarioProfile()
	p.MealsPerDay = 0
	p.Age = 9

	gen := &fakeGenerator{text: "unused"}
	_, err := New(gen, nil).Generate(context.Background(), p)
	if !errors.Is(err, models.ErrInvalidProfile) {
		t.Fatalf("err = %v, want ErrInvalidProfile", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called for an invalid profile")
	}
}

func TestGenerate_NormalizesSets(t *testing.T) {
	p := scenarioProfile()
	p.FoodAllergies = []string{" Nuts ", "nuts", ""}
	res, err := New(nil, nil).Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Profile.FoodAllergies) != 1 || res.Profile.FoodAllergies[0] != "nuts" {
		t.Fatalf("allergies = %v", res.Profile.FoodAllergies)
	}
}

func TestAssemble_GeneratorError(t *testing.T) {
	p := scenarioProfile()
	targets := nutrition.ComputeTargets(p)
	gen := &fakeGenerator{err: errors.New("all models failed")}

	plan := New(gen, nil).Assemble(context.Background(), p, targets)
	if gen.calls != 1 {
		t.Fatalf("generator called %d times", gen.calls)
	}
	if plan.AIGenerated || plan.GeneratedTextExcerpt != FallbackExcerpt {
		t.Fatalf("expected fallback, got %+v", plan.AIConfidence)
	}
	if !strings.Contains(gen.prompt, "Daily Calories:") {
		t.Fatalf("prompt not built from targets")
	}
}

func TestAssemble_GeneratorPanicAndEmptyText(t *testing.T) {
	p := scenarioProfile()
	targets := nutrition.ComputeTargets(p)

	for name, gen := range map[string]*fakeGenerator{
		"panic": {panics: true},
		"empty": {text: "   "},
	} {
		plan := New(gen, nil).Assemble(context.Background(), p, targets)
		if plan.AIGenerated {
			t.Fatalf("%s: expected fallback", name)
		}
	}
}

func TestAssemble_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := scenarioProfile()
	plan := New(&fakeGenerator{text: "never returned"}, nil).Assemble(ctx, p, nutrition.ComputeTargets(p))
	if plan.AIGenerated {
		t.Fatalf("canceled context should fall back")
	}
}

func TestAssemble_Confidence(t *testing.T) {
	p := scenarioProfile()
	targets := nutrition.ComputeTargets(p)

	short := New(&fakeGenerator{text: "Eat more greens."}, nil).Assemble(context.Background(), p, targets)
	if !short.AIGenerated || short.AIConfidence != models.ConfidenceFallback {
		t.Fatalf("short text: aiGenerated=%v confidence=%q", short.AIGenerated, short.AIConfidence)
	}
	if short.GeneratedTextExcerpt != "Eat more greens." {
		t.Fatalf("excerpt = %q", short.GeneratedTextExcerpt)
	}

	long := strings.Repeat("é", 1500)
	plan := New(&fakeGenerator{text: long}, nil).Assemble(context.Background(), p, targets)
	if plan.AIConfidence != models.ConfidenceHigh {
		t.Fatalf("confidence = %q", plan.AIConfidence)
	}
	if n := utf8.RuneCountInString(plan.GeneratedTextExcerpt); n != 1000 {
		t.Fatalf("excerpt has %d runes", n)
	}
	if !utf8.ValidString(plan.GeneratedTextExcerpt) {
		t.Fatalf("excerpt cut inside a rune")
	}
}

func TestAssemble_SameShapeEitherWay(t *testing.T) {
	p := scenarioProfile()
	targets := nutrition.ComputeTargets(p)

	withAI := New(&fakeGenerator{text: strings.Repeat("advice ", 40)}, nil).Assemble(context.Background(), p, targets)
	without := New(nil, nil).Assemble(context.Background(), p, targets)

	if structured(t, withAI) != structured(t, without) {
		t.Fatalf("structured fields differ between AI and fallback paths")
	}
}
