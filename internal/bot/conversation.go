package bot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"diet-calculator/internal/models"
)

type State string

const (
	StateSex       State = "sex"
	StateAge       State = "age"
	StateHeight    State = "height"
	StateWeight    State = "weight"
	StateGoal      State = "goal"
	StateActivity  State = "activity"
	StateIntensity State = "intensity"
	StateMeals     State = "meals"
	StateAllergies State = "allergies"
	StateConfirm   State = "confirm"
	StateDone      State = "done"
)

const (
	defaultTimelineWeeks = 12

	answerYes  = "Yes, build my plan"
	answerNo   = "No, start over"
	answerNone = "None"
)

type choice struct {
	label string
	value string
}

var (
	sexChoices = []choice{
		{"Male", string(models.SexMale)},
		{"Female", string(models.SexFemale)},
	}
	goalChoices = []choice{
		{"Lose weight", string(models.GoalLoseWeight)},
		{"Build muscle", string(models.GoalBuildMuscle)},
		{"Athletic performance", string(models.GoalAthleticPerformance)},
		{"Body recomposition", string(models.GoalBodyRecomposition)},
		{"Improve health", string(models.GoalImproveHealth)},
	}
	activityChoices = []choice{
		{"Sedentary", string(models.ActivitySedentary)},
		{"Lightly active", string(models.ActivityLightlyActive)},
		{"Moderately active", string(models.ActivityModeratelyActive)},
		{"Very active", string(models.ActivityVeryActive)},
		{"Extremely active", string(models.ActivityExtremelyActive)},
	}
	intensityChoices = []choice{
		{"Low", string(models.IntensityLow)},
		{"Moderate", string(models.IntensityModerate)},
		{"High", string(models.IntensityHigh)},
		{"Very high", string(models.IntensityVeryHigh)},
	}
	mealChoices = []string{"3", "4", "5", "6"}
)

// Step is what the bot should say after an answer. Options become reply
// keyboard buttons. Done is set once the user confirmed a complete profile.
type Step struct {
	Reply   string
	Options []string
	Done    bool
	Profile models.UserProfile
}

// Conversation collects a profile one answer at a time. It does no I/O.
type Conversation struct {
	state   State
	profile models.UserProfile
}

func NewConversation() *Conversation {
	c := &Conversation{}
	c.reset()
	return c
}

func (c *Conversation) State() State {
	return c.state
}

func (c *Conversation) reset() {
	c.state = StateSex
	c.profile = models.UserProfile{
		TimelineWeeks:      defaultTimelineWeeks,
		MacronutrientRatio: models.RatioBalanced,
		DietaryPreferences: []string{},
		FoodAllergies:      []string{},
		FoodIntolerances:   []string{},
	}
}

// Start restarts the conversation and returns the greeting.
func (c *Conversation) Start() Step {
	c.reset()
	return Step{
		Reply:   "Hi! I will build a personalized nutrition plan for you. First, what is your sex?",
		Options: labels(sexChoices),
	}
}

// Handle consumes one answer. Invalid answers repeat the current question
// with a hint and leave the state unchanged.
func (c *Conversation) Handle(text string) Step {
	text = strings.TrimSpace(text)

	switch c.state {
	case StateSex:
		v, ok := match(text, sexChoices)
		if !ok {
			return Step{Reply: "Please choose your sex using the buttons below.", Options: labels(sexChoices)}
		}
		c.profile.Sex = models.Sex(v)
		c.state = StateAge
		return Step{Reply: "How old are you? (13-100)"}

	case StateAge:
		age, err := strconv.Atoi(text)
		if err != nil || age < 13 || age > 100 {
			return Step{Reply: "Please enter your age in years as a whole number between 13 and 100."}
		}
		c.profile.Age = age
		c.state = StateHeight
		return Step{Reply: "What is your height in centimeters? (e.g. 175)"}

	case StateHeight:
		h, ok := parseNumber(text, 100, 250)
		if !ok {
			return Step{Reply: "Please enter a height between 100 and 250 cm (e.g. 175)."}
		}
		c.profile.Height = h
		c.state = StateWeight
		return Step{Reply: "What is your current weight in kilograms? (e.g. 70.5)"}

	case StateWeight:
		w, ok := parseNumber(text, 30, 300)
		if !ok {
			return Step{Reply: "Please enter a weight between 30 and 300 kg (e.g. 70.5)."}
		}
		c.profile.Weight = w
		c.state = StateGoal
		return Step{Reply: "What is your main goal?", Options: labels(goalChoices)}

	case StateGoal:
		v, ok := match(text, goalChoices)
		if !ok {
			return Step{Reply: "Please pick a goal using the buttons below.", Options: labels(goalChoices)}
		}
		c.profile.Goal = models.Goal(v)
		c.state = StateActivity
		return Step{Reply: "How active are you during a normal day?", Options: labels(activityChoices)}

	case StateActivity:
		v, ok := match(text, activityChoices)
		if !ok {
			return Step{Reply: "Please pick an activity level using the buttons below.", Options: labels(activityChoices)}
		}
		c.profile.DailyActivityLevel = models.ActivityLevel(v)
		c.state = StateIntensity
		return Step{Reply: "How intense are your workouts?", Options: labels(intensityChoices)}

	case StateIntensity:
		v, ok := match(text, intensityChoices)
		if !ok {
			return Step{Reply: "Please pick an exercise intensity using the buttons below.", Options: labels(intensityChoices)}
		}
		c.profile.ExerciseIntensity = models.ExerciseIntensity(v)
		c.state = StateMeals
		return Step{Reply: "How many meals per day do you prefer? (1-8)", Options: mealChoices}

	case StateMeals:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > 8 {
			return Step{Reply: "Please enter a number of meals between 1 and 8.", Options: mealChoices}
		}
		c.profile.MealsPerDay = n
		c.state = StateAllergies
		return Step{
			Reply:   "Any food allergies? Send them separated by commas (e.g. nuts, dairy) or tap None.",
			Options: []string{answerNone},
		}

	case StateAllergies:
		c.profile.FoodAllergies = parseList(text)
		c.state = StateConfirm
		return Step{Reply: c.summary(), Options: []string{answerYes, answerNo}}

	case StateConfirm:
		switch {
		case strings.EqualFold(text, answerYes) || strings.EqualFold(text, "yes"):
			c.state = StateDone
			return Step{Reply: "Great! Building your plan, this can take up to a minute...", Done: true, Profile: c.profile}
		case strings.EqualFold(text, answerNo) || strings.EqualFold(text, "no"):
			step := c.Start()
			step.Reply = "Let's start over. What is your sex?"
			return step
		}
		return Step{Reply: "Please answer with one of the buttons below.", Options: []string{answerYes, answerNo}}
	}

	return Step{Reply: "Your plan is ready. Send /start to build a new one."}
}

func (c *Conversation) summary() string {
	p := c.profile
	allergies := answerNone
	if len(p.FoodAllergies) > 0 {
		allergies = strings.Join(p.FoodAllergies, ", ")
	}
	return fmt.Sprintf(
		"Please check your answers:\n\nSex: %s\nAge: %d\nHeight: %g cm\nWeight: %g kg\nGoal: %s\nActivity: %s\nExercise intensity: %s\nMeals per day: %d\nAllergies: %s\n\nIs everything correct?",
		p.Sex, p.Age, p.Height, p.Weight, p.Goal.Label(),
		models.Humanize(string(p.DailyActivityLevel)), models.Humanize(string(p.ExerciseIntensity)),
		p.MealsPerDay, allergies,
	)
}

func match(text string, choices []choice) (string, bool) {
	for _, c := range choices {
		if strings.EqualFold(text, c.label) || strings.EqualFold(text, c.value) {
			return c.value, true
		}
	}
	return "", false
}

func labels(choices []choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.label
	}
	return out
}

func parseNumber(text string, lo, hi float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

func parseList(text string) []string {
	if strings.EqualFold(text, answerNone) || strings.EqualFold(text, "no") || text == "-" {
		return []string{}
	}
	out := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(text, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}
