// Package planner assembles meal plans: it asks the text generator first and
// always fills the structured fields from the rule engine.
package planner

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"diet-calculator/internal/ai"
	"diet-calculator/internal/models"
	"diet-calculator/internal/nutrition"
	"diet-calculator/internal/rules"
	"diet-calculator/pkg/logger"
)

const (
	highConfidenceRunes = 100
	maxExcerptRunes     = 1000

	FallbackExcerpt = "Using intelligent fallback recommendations based on your profile"
)

type Result struct {
	Profile models.UserProfile
	Targets models.NutritionTargets
	Plan    *models.MealPlan
}

type Assembler struct {
	gen ai.Generator
	log *logger.Logger
}

// New returns an Assembler. A nil generator means every plan takes the fallback path.
func New(gen ai.Generator, log *logger.Logger) *Assembler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Assembler{gen: gen, log: log}
}

// Generate normalizes and validates the profile, computes its targets and assembles the plan.
// The only error it returns wraps models.ErrInvalidProfile.
func (a *Assembler) Generate(ctx context.Context, p models.UserProfile) (Result, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	t := nutrition.ComputeTargets(p)
	return Result{Profile: p, Targets: t, Plan: a.Assemble(ctx, p, t)}, nil
}

// Assemble always returns a plan. Generator failures are logged and fall back
// to the rule engine alone.
func (a *Assembler) Assemble(ctx context.Context, p models.UserProfile, t models.NutritionTargets) *models.MealPlan {
	plan := rules.Build(p, t)

	if a.gen == nil {
		return withFallback(plan)
	}

	text, err := a.generate(ctx, ai.BuildPrompt(p, t))
	if err != nil {
		a.log.Warnw("AI generation failed, using rule-based plan", "error", err)
		return withFallback(plan)
	}

	plan.AIGenerated = true
	plan.AIConfidence = models.ConfidenceFallback
	if utf8.RuneCountInString(text) > highConfidenceRunes {
		plan.AIConfidence = models.ConfidenceHigh
	}
	plan.GeneratedTextExcerpt = excerpt(text, maxExcerptRunes)
	a.log.Infow("AI text attached to plan", "confidence", plan.AIConfidence)
	return plan
}

func (a *Assembler) generate(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()

	text, err = a.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ai.ErrNoOutput
	}
	return text, nil
}

func withFallback(plan *models.MealPlan) *models.MealPlan {
	plan.AIGenerated = false
	plan.AIConfidence = models.ConfidenceFallback
	plan.GeneratedTextExcerpt = FallbackExcerpt
	return plan
}

func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
