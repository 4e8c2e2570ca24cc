package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"diet-calculator/config"
	"diet-calculator/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS diet_profiles (
    id                   UUID PRIMARY KEY,
    owner_id             TEXT,
    session_id           TEXT NOT NULL,
    height               DOUBLE PRECISION NOT NULL,
    weight               DOUBLE PRECISION NOT NULL,
    age                  INTEGER NOT NULL,
    sex                  TEXT NOT NULL,
    goal                 TEXT NOT NULL,
    timeline_weeks       INTEGER NOT NULL,
    goal_weight          DOUBLE PRECISION,
    exercise_intensity   TEXT NOT NULL,
    daily_activity_level TEXT NOT NULL,
    dietary_preferences  JSONB NOT NULL DEFAULT '[]',
    food_allergies       JSONB NOT NULL DEFAULT '[]',
    food_intolerances    JSONB NOT NULL DEFAULT '[]',
    macronutrient_ratio  TEXT NOT NULL,
    meals_per_day        INTEGER NOT NULL,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS diet_profiles_session_idx ON diet_profiles (session_id);
CREATE INDEX IF NOT EXISTS diet_profiles_owner_idx ON diet_profiles (owner_id);

CREATE TABLE IF NOT EXISTS diet_plans (
    id              UUID PRIMARY KEY,
    profile_id      UUID NOT NULL REFERENCES diet_profiles (id),
    bmr             DOUBLE PRECISION NOT NULL,
    tdee            DOUBLE PRECISION NOT NULL,
    daily_calories  DOUBLE PRECISION NOT NULL,
    protein_grams   DOUBLE PRECISION NOT NULL,
    carb_grams      DOUBLE PRECISION NOT NULL,
    fat_grams       DOUBLE PRECISION NOT NULL,
    water_intake_ml DOUBLE PRECISION NOT NULL,
    ai_generated    BOOLEAN NOT NULL DEFAULT FALSE,
    meal_plan       JSONB NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS diet_plans_profile_idx ON diet_plans (profile_id);

CREATE TABLE IF NOT EXISTS diet_progress (
    id             BIGSERIAL PRIMARY KEY,
    plan_id        UUID NOT NULL REFERENCES diet_plans (id),
    current_weight DOUBLE PRECISION NOT NULL,
    notes          TEXT NOT NULL DEFAULT '',
    recorded_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS diet_progress_plan_idx ON diet_progress (plan_id);
`

const selectPlan = `
    SELECT p.id, pr.session_id, pr.owner_id,
           pr.height, pr.weight, pr.age, pr.sex, pr.goal, pr.timeline_weeks, pr.goal_weight,
           pr.exercise_intensity, pr.daily_activity_level,
           pr.dietary_preferences, pr.food_allergies, pr.food_intolerances,
           pr.macronutrient_ratio, pr.meals_per_day,
           p.bmr, p.tdee, p.daily_calories, p.protein_grams, p.carb_grams, p.fat_grams, p.water_intake_ml,
           p.meal_plan, p.created_at
    FROM diet_plans p
    JOIN diet_profiles pr ON pr.id = p.profile_id
`

type PostgresDB struct {
	pool *pgxpool.Pool
}

func connString(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode, cfg.MaxOpenConns,
	)
}

func NewPostgresDB(cfg config.DBConfig) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnLifetime
	poolConfig.MaxConnIdleTime = 15 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

func (db *PostgresDB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SavePlan stores the profile and the plan in one transaction. A zero ID or
// CreatedAt is filled in before writing.
func (db *PostgresDB) SavePlan(ctx context.Context, sp *models.StoredPlan) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	if sp.CreatedAt.IsZero() {
		sp.CreatedAt = time.Now().UTC()
	}

	prefs, allergies, intolerances, err := encodeSets(sp.Profile)
	if err != nil {
		return err
	}
	mealPlan, err := json.Marshal(sp.Plan)
	if err != nil {
		return fmt.Errorf("failed to encode meal plan: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	p := sp.Profile
	profileID := uuid.New()
	_, err = tx.Exec(ctx, `
        INSERT INTO diet_profiles (id, owner_id, session_id, height, weight, age, sex, goal, timeline_weeks,
            goal_weight, exercise_intensity, daily_activity_level, dietary_preferences, food_allergies,
            food_intolerances, macronutrient_ratio, meals_per_day, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
    `,
		profileID.String(), nullable(sp.OwnerID), sp.SessionID, p.Height, p.Weight, p.Age, string(p.Sex), string(p.Goal),
		p.TimelineWeeks, p.GoalWeight, string(p.ExerciseIntensity), string(p.DailyActivityLevel),
		prefs, allergies, intolerances, string(p.MacronutrientRatio), p.MealsPerDay, sp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	t := sp.Targets
	_, err = tx.Exec(ctx, `
        INSERT INTO diet_plans (id, profile_id, bmr, tdee, daily_calories, protein_grams, carb_grams,
            fat_grams, water_intake_ml, ai_generated, meal_plan, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `,
		sp.ID.String(), profileID.String(), t.BMR, t.TDEE, t.DailyCalories, t.ProteinGrams, t.CarbGrams,
		t.FatGrams, t.WaterIntakeMl, sp.Plan.AIGenerated, mealPlan, sp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit plan: %w", err)
	}
	return nil
}

func (db *PostgresDB) GetPlan(ctx context.Context, id uuid.UUID) (*models.StoredPlan, error) {
	row := db.pool.QueryRow(ctx, selectPlan+" WHERE p.id = $1", id.String())
	sp, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %s: %w", id, err)
	}
	return sp, nil
}

// ListPlansBySession returns the session's plans, newest first.
func (db *PostgresDB) ListPlansBySession(ctx context.Context, sessionID string) ([]*models.StoredPlan, error) {
	rows, err := db.pool.Query(ctx, selectPlan+" WHERE pr.session_id = $1 ORDER BY p.created_at DESC", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	plans := []*models.StoredPlan{}
	for rows.Next() {
		sp, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

func (db *PostgresDB) SaveProgress(ctx context.Context, e *models.ProgressEntry) error {
	query := `
        INSERT INTO diet_progress (plan_id, current_weight, notes)
        SELECT $1::uuid, $2::double precision, $3::text
        WHERE EXISTS (SELECT 1 FROM diet_plans WHERE id = $1::uuid)
        RETURNING id, recorded_at
    `
	err := db.pool.QueryRow(ctx, query, e.PlanID.String(), e.CurrentWeight, e.Notes).Scan(&e.ID, &e.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// ListProgress returns the plan's progress entries, newest first.
func (db *PostgresDB) ListProgress(ctx context.Context, planID uuid.UUID) ([]models.ProgressEntry, error) {
	query := `
        SELECT id, current_weight, notes, recorded_at
        FROM diet_progress
        WHERE plan_id = $1
        ORDER BY recorded_at DESC, id DESC
    `
	rows, err := db.pool.Query(ctx, query, planID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	entries := []models.ProgressEntry{}
	for rows.Next() {
		e := models.ProgressEntry{PlanID: planID}
		if err := rows.Scan(&e.ID, &e.CurrentWeight, &e.Notes, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return entries, nil
}

// CleanupResult lists what a retention pass removed.
type CleanupResult struct {
	Profiles int64
	PlanIDs  []uuid.UUID
}

// CleanupOldData removes anonymous profiles older than the cutoff together with
// their plans and progress.
func (db *PostgresDB) CleanupOldData(ctx context.Context, olderThan time.Duration) (CleanupResult, error) {
	var res CleanupResult
	cutoff := time.Now().Add(-olderThan)

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin cleanup: %w", err)
	}
	defer tx.Rollback(ctx)

	stale := `SELECT id FROM diet_profiles WHERE owner_id IS NULL AND created_at < $1`

	if _, err := tx.Exec(ctx, `
        DELETE FROM diet_progress WHERE plan_id IN (
            SELECT id FROM diet_plans WHERE profile_id IN (`+stale+`))`, cutoff); err != nil {
		return res, fmt.Errorf("failed to delete old progress: %w", err)
	}

	rows, err := tx.Query(ctx, `DELETE FROM diet_plans WHERE profile_id IN (`+stale+`) RETURNING id`, cutoff)
	if err != nil {
		return res, fmt.Errorf("failed to delete old plans: %w", err)
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return res, fmt.Errorf("failed to scan deleted plan id: %w", err)
		}
		planID, err := uuid.Parse(id)
		if err != nil {
			rows.Close()
			return res, fmt.Errorf("failed to parse deleted plan id: %w", err)
		}
		res.PlanIDs = append(res.PlanIDs, planID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("failed to delete old plans: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM diet_profiles WHERE owner_id IS NULL AND created_at < $1`, cutoff)
	if err != nil {
		return res, fmt.Errorf("failed to delete old profiles: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return CleanupResult{}, fmt.Errorf("failed to commit cleanup: %w", err)
	}
	res.Profiles = tag.RowsAffected()
	return res, nil
}

func scanPlan(row pgx.Row) (*models.StoredPlan, error) {
	var (
		sp                            models.StoredPlan
		id                            string
		owner                         *string
		sex, goal, intensity          string
		activity, ratio               string
		prefs, allergies, intolerance []byte
		mealPlan                      []byte
	)
	p := &sp.Profile
	t := &sp.Targets

	err := row.Scan(
		&id, &sp.SessionID, &owner,
		&p.Height, &p.Weight, &p.Age, &sex, &goal, &p.TimelineWeeks, &p.GoalWeight,
		&intensity, &activity,
		&prefs, &allergies, &intolerance,
		&ratio, &p.MealsPerDay,
		&t.BMR, &t.TDEE, &t.DailyCalories, &t.ProteinGrams, &t.CarbGrams, &t.FatGrams, &t.WaterIntakeMl,
		&mealPlan, &sp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sp.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid plan id %q: %w", id, err)
	}
	if owner != nil {
		sp.OwnerID = *owner
	}
	p.Sex = models.Sex(sex)
	p.Goal = models.Goal(goal)
	p.ExerciseIntensity = models.ExerciseIntensity(intensity)
	p.DailyActivityLevel = models.ActivityLevel(activity)
	p.MacronutrientRatio = models.MacroRatio(ratio)

	for _, set := range []struct {
		raw []byte
		dst *[]string
	}{
		{prefs, &p.DietaryPreferences},
		{allergies, &p.FoodAllergies},
		{intolerance, &p.FoodIntolerances},
	} {
		if err := json.Unmarshal(set.raw, set.dst); err != nil {
			return nil, fmt.Errorf("failed to decode profile set: %w", err)
		}
	}
	if err := json.Unmarshal(mealPlan, &sp.Plan); err != nil {
		return nil, fmt.Errorf("failed to decode meal plan: %w", err)
	}
	return &sp, nil
}

func encodeSets(p models.UserProfile) (prefs, allergies, intolerances []byte, err error) {
	enc := func(v []string) ([]byte, error) {
		if v == nil {
			v = []string{}
		}
		return json.Marshal(v)
	}
	if prefs, err = enc(p.DietaryPreferences); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode preferences: %w", err)
	}
	if allergies, err = enc(p.FoodAllergies); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode allergies: %w", err)
	}
	if intolerances, err = enc(p.FoodIntolerances); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode intolerances: %w", err)
	}
	return prefs, allergies, intolerances, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
