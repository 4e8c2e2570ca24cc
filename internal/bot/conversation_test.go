package bot

import (
	"strings"
	"testing"

	"diet-calculator/internal/models"
)

func TestConversation_HappyPath(t *testing.T) {
	c := NewConversation()
	start := c.Start()
	if len(start.Options) != 2 || start.Options[0] != "Male" {
		t.Fatalf("start options = %v", start.Options)
	}

	answers := []struct {
		text string
		next State
	}{
		{"female", StateAge},
		{"34", StateHeight},
		{"168,5", StateWeight},
		{"64", StateGoal},
		{"Improve health", StateActivity},
		{"lightly_active", StateIntensity},
		{"Very high", StateMeals},
		{"4", StateAllergies},
		{" Nuts, dairy, nuts ", StateConfirm},
	}
	var step Step
	for _, a := range answers {
		step = c.Handle(a.text)
		if c.State() != a.next {
			t.Fatalf("after %q state = %s, want %s (reply %q)", a.text, c.State(), a.next, step.Reply)
		}
		if step.Done {
			t.Fatalf("conversation finished early at %q", a.text)
		}
	}
	if !strings.Contains(step.Reply, "Allergies: nuts, dairy") || !strings.Contains(step.Reply, "Height: 168.5 cm") {
		t.Fatalf("summary = %q", step.Reply)
	}

	step = c.Handle(answerYes)
	if !step.Done || c.State() != StateDone {
		t.Fatalf("confirm did not finish: %+v", step)
	}

	p := step.Profile
	if p.Sex != models.SexFemale || p.Age != 34 || p.Height != 168.5 || p.Weight != 64 {
		t.Fatalf("profile basics = %+v", p)
	}
	if p.Goal != models.GoalImproveHealth || p.DailyActivityLevel != models.ActivityLightlyActive ||
		p.ExerciseIntensity != models.IntensityVeryHigh || p.MealsPerDay != 4 {
		t.Fatalf("profile choices = %+v", p)
	}
	if strings.Join(p.FoodAllergies, ",") != "nuts,dairy" {
		t.Fatalf("allergies = %v", p.FoodAllergies)
	}
	if err := p.Normalize().Validate(); err != nil {
		t.Fatalf("collected profile does not validate: %v", err)
	}
}

func TestConversation_InvalidAnswersKeepState(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		bad   string
		state State
	}{
		{"sex", nil, "robot", StateSex},
		{"age too young", []string{"male"}, "9", StateAge},
		{"age not a number", []string{"male"}, "thirty", StateAge},
		{"height", []string{"male", "30"}, "2.1", StateHeight},
		{"height NaN", []string{"male", "30"}, "NaN", StateHeight},
		{"weight", []string{"male", "30", "180"}, "500", StateWeight},
		{"weight infinite", []string{"male", "30", "180"}, "Inf", StateWeight},
		{"goal", []string{"male", "30", "180", "80"}, "get huge", StateGoal},
		{"activity", []string{"male", "30", "180", "80", "build muscle"}, "couch", StateActivity},
		{"intensity", []string{"male", "30", "180", "80", "build muscle", "sedentary"}, "extreme", StateIntensity},
		{"meals", []string{"male", "30", "180", "80", "build muscle", "sedentary", "low"}, "9", StateMeals},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConversation()
			c.Start()
			for _, s := range tt.setup {
				c.Handle(s)
			}
			step := c.Handle(tt.bad)
			if c.State() != tt.state {
				t.Fatalf("state = %s, want %s", c.State(), tt.state)
			}
			if step.Done || !strings.HasPrefix(step.Reply, "Please") {
				t.Fatalf("reply = %q", step.Reply)
			}
		})
	}
}

func TestConversation_StartOver(t *testing.T) {
	c := NewConversation()
	c.Start()
	for _, s := range []string{"male", "30", "180", "80", "build muscle", "sedentary", "low", "3", "none"} {
		c.Handle(s)
	}
	if c.State() != StateConfirm {
		t.Fatalf("state = %s, want confirm", c.State())
	}

	step := c.Handle("maybe")
	if c.State() != StateConfirm || len(step.Options) != 2 {
		t.Fatalf("unclear answer should re-ask, got %+v", step)
	}

	step = c.Handle(answerNo)
	if c.State() != StateSex || step.Done {
		t.Fatalf("start over state = %s", c.State())
	}
	if c.profile.Age != 0 || len(c.profile.FoodAllergies) != 0 {
		t.Fatalf("profile not reset: %+v", c.profile)
	}
}

func TestForget_KeepsRestartedConversation(t *testing.T) {
	tb := &TelegramBot{conversations: make(map[int64]*Conversation)}
	finished := NewConversation()
	restarted := NewConversation()

	tb.conversations[7] = restarted
	tb.forget(7, finished)
	if tb.conversations[7] != restarted {
		t.Fatalf("conversation started during generation was dropped")
	}

	tb.forget(7, restarted)
	if _, ok := tb.conversations[7]; ok {
		t.Fatalf("finished conversation not forgotten")
	}
}

func TestParseList(t *testing.T) {
	if got := parseList("None"); len(got) != 0 {
		t.Fatalf("parseList(None) = %v", got)
	}
	if got := parseList("Gluten, , SHELLFISH"); strings.Join(got, "|") != "gluten|shellfish" {
		t.Fatalf("parseList = %v", got)
	}
}

func TestSplitMessage(t *testing.T) {
	text := strings.Repeat("line of report text\n", 500)
	chunks := splitMessage(text, 4000)
	if len(chunks) < 3 {
		t.Fatalf("chunks = %d", len(chunks))
	}
	var total int
	for _, c := range chunks {
		if len(c) > 4000 {
			t.Fatalf("chunk of %d bytes exceeds limit", len(c))
		}
		total += len(c)
	}
	if total+len(chunks)-1 < len(text)-1 {
		t.Fatalf("text lost while splitting: %d of %d bytes", total, len(text))
	}

	long := strings.Repeat("é", 3000)
	for _, c := range splitMessage(long, 4001) {
		if !strings.HasPrefix(c, "é") || len(c)%2 != 0 {
			t.Fatalf("split inside a rune")
		}
	}

	if got := splitMessage("short", 4000); len(got) != 1 || got[0] != "short" {
		t.Fatalf("short message = %v", got)
	}
}

func TestKeyboard(t *testing.T) {
	kb := keyboard([]string{"a", "b", "c"})
	if len(kb.Keyboard) != 2 || len(kb.Keyboard[0]) != 2 || len(kb.Keyboard[1]) != 1 {
		t.Fatalf("keyboard rows = %v", kb.Keyboard)
	}
	if kb.Keyboard[1][0].Text != "c" || !kb.OneTimeKeyboard {
		t.Fatalf("keyboard = %+v", kb)
	}
}
