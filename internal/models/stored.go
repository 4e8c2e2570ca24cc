// internal/models/stored.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// StoredPlan is a generated plan together with the inputs it was built from.
// OwnerID is empty for anonymous sessions; retention cleanup only removes those.
type StoredPlan struct {
	ID        uuid.UUID        `json:"id"`
	SessionID string           `json:"sessionId"`
	OwnerID   string           `json:"ownerId,omitempty"`
	Profile   UserProfile      `json:"profile"`
	Targets   NutritionTargets `json:"nutritionTargets"`
	Plan      MealPlan         `json:"mealPlan"`
	CreatedAt time.Time        `json:"createdAt"`
}

type ProgressEntry struct {
	ID            int64     `json:"id"`
	PlanID        uuid.UUID `json:"planId"`
	CurrentWeight float64   `json:"currentWeight"`
	Notes         string    `json:"notes"`
	RecordedAt    time.Time `json:"recordedAt"`
}
