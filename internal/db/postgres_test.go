package db

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"diet-calculator/config"
	"diet-calculator/internal/models"
	"diet-calculator/internal/nutrition"
	"diet-calculator/internal/rules"

	"github.com/google/uuid"
)

func TestConnString(t *testing.T) {
	got := connString(config.DBConfig{
		Host: "db", Port: "5433", User: "diet", Password: "secret",
		DBName: "plans", SSLMode: "disable", MaxOpenConns: 7,
	})
	want := "host=db port=5433 user=diet password=secret dbname=plans sslmode=disable pool_max_conns=7"
	if got != want {
		t.Fatalf("connString = %q, want %q", got, want)
	}
}

func TestEncodeSets_NilBecomesEmptyArray(t *testing.T) {
	prefs, allergies, intolerances, err := encodeSets(models.UserProfile{
		FoodAllergies: []string{"nuts", "dairy"},
	})
	if err != nil {
		t.Fatalf("encodeSets: %v", err)
	}
	if string(prefs) != "[]" {
		t.Fatalf("prefs = %s, want []", prefs)
	}
	if string(allergies) != `["nuts","dairy"]` {
		t.Fatalf("allergies = %s", allergies)
	}
	if string(intolerances) != "[]" {
		t.Fatalf("intolerances = %s, want []", intolerances)
	}
}

func TestNullable(t *testing.T) {
	if nullable("") != nil {
		t.Fatalf("empty owner should be NULL")
	}
	if got := nullable("telegram:42"); got == nil || *got != "telegram:42" {
		t.Fatalf("nullable = %v", got)
	}
}

// openTestDB connects using the DIET_TEST_DB_* variables and skips when they are unset.
func openTestDB(t *testing.T) *PostgresDB {
	t.Helper()
	if os.Getenv("DIET_TEST_DB_HOST") == "" {
		t.Skip("DIET_TEST_DB_HOST not set; skipping postgres integration test")
	}
	cfg := config.DBConfig{
		Host:         os.Getenv("DIET_TEST_DB_HOST"),
		Port:         envOr("DIET_TEST_DB_PORT", "5432"),
		User:         envOr("DIET_TEST_DB_USER", "postgres"),
		Password:     os.Getenv("DIET_TEST_DB_PASSWORD"),
		DBName:       envOr("DIET_TEST_DB_NAME", "diet_test"),
		SSLMode:      "disable",
		MaxOpenConns: 4,
		MaxIdleConns: 1,
		ConnLifetime: time.Minute,
	}
	db, err := NewPostgresDB(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Close)
	if err := db.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return db
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func samplePlan(session string) *models.StoredPlan {
	p := models.UserProfile{
		Height: 168, Weight: 64, Age: 34, Sex: models.SexFemale,
		Goal: models.GoalImproveHealth, TimelineWeeks: 8,
		ExerciseIntensity: models.IntensityLow, DailyActivityLevel: models.ActivityLightlyActive,
		DietaryPreferences: []string{"vegetarian"}, FoodAllergies: []string{"nuts"},
		MacronutrientRatio: models.RatioBalanced, MealsPerDay: 4,
	}
	targets := nutrition.ComputeTargets(p)
	return &models.StoredPlan{
		SessionID: session,
		Profile:   p,
		Targets:   targets,
		Plan:      *rules.Build(p, targets),
	}
}

func TestPostgres_PlanRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	session := "it-" + uuid.NewString()

	sp := samplePlan(session)
	if err := db.SavePlan(ctx, sp); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}
	if sp.ID == uuid.Nil || sp.CreatedAt.IsZero() {
		t.Fatalf("SavePlan did not fill ID and CreatedAt")
	}

	got, err := db.GetPlan(ctx, sp.ID)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if got.SessionID != session || got.OwnerID != "" {
		t.Fatalf("session/owner = %q/%q", got.SessionID, got.OwnerID)
	}
	if got.Targets != sp.Targets {
		t.Fatalf("targets = %+v, want %+v", got.Targets, sp.Targets)
	}
	if strings.Join(got.Profile.FoodAllergies, ",") != "nuts" {
		t.Fatalf("allergies = %v", got.Profile.FoodAllergies)
	}
	if len(got.Plan.WeeklyPlan) != 7 || len(got.Plan.WeeklyPlan[0].Meals) != 4 {
		t.Fatalf("weekly plan not restored")
	}

	list, err := db.ListPlansBySession(ctx, session)
	if err != nil {
		t.Fatalf("ListPlansBySession: %v", err)
	}
	if len(list) != 1 || list[0].ID != sp.ID {
		t.Fatalf("list = %v", list)
	}

	if _, err := db.GetPlan(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetPlan unknown err = %v, want ErrNotFound", err)
	}
}

func TestPostgres_Progress(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sp := samplePlan("it-" + uuid.NewString())
	if err := db.SavePlan(ctx, sp); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	for _, w := range []float64{63.5, 63.1} {
		e := &models.ProgressEntry{PlanID: sp.ID, CurrentWeight: w, Notes: "weekly weigh-in"}
		if err := db.SaveProgress(ctx, e); err != nil {
			t.Fatalf("SaveProgress: %v", err)
		}
		if e.ID == 0 || e.RecordedAt.IsZero() {
			t.Fatalf("SaveProgress did not fill id and timestamp")
		}
	}

	entries, err := db.ListProgress(ctx, sp.ID)
	if err != nil {
		t.Fatalf("ListProgress: %v", err)
	}
	if len(entries) != 2 || entries[0].CurrentWeight != 63.1 {
		t.Fatalf("entries = %+v", entries)
	}

	missing := &models.ProgressEntry{PlanID: uuid.New(), CurrentWeight: 60}
	if err := db.SaveProgress(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SaveProgress unknown plan err = %v, want ErrNotFound", err)
	}
}

func TestPostgres_CleanupKeepsOwnedProfiles(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	old := time.Now().Add(-90 * 24 * time.Hour).UTC()

	anon := samplePlan("it-" + uuid.NewString())
	anon.CreatedAt = old
	owned := samplePlan("it-" + uuid.NewString())
	owned.OwnerID = "telegram:" + uuid.NewString()
	owned.CreatedAt = old

	for _, sp := range []*models.StoredPlan{anon, owned} {
		if err := db.SavePlan(ctx, sp); err != nil {
			t.Fatalf("SavePlan: %v", err)
		}
	}
	if err := db.SaveProgress(ctx, &models.ProgressEntry{PlanID: anon.ID, CurrentWeight: 64}); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}

	res, err := db.CleanupOldData(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("CleanupOldData: %v", err)
	}
	if res.Profiles < 1 {
		t.Fatalf("removed = %d, want at least 1", res.Profiles)
	}
	var sawAnon bool
	for _, id := range res.PlanIDs {
		if id == owned.ID {
			t.Fatalf("owned plan id reported as removed")
		}
		sawAnon = sawAnon || id == anon.ID
	}
	if !sawAnon {
		t.Fatalf("removed plan ids %v missing %s", res.PlanIDs, anon.ID)
	}
	if _, err := db.GetPlan(ctx, anon.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("anonymous plan survived cleanup: %v", err)
	}
	if _, err := db.GetPlan(ctx, owned.ID); err != nil {
		t.Fatalf("owned plan removed: %v", err)
	}
}
