package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"diet-calculator/internal/db"
	"diet-calculator/pkg/logger"

	"github.com/google/uuid"
)

type fakeRetention struct {
	res       db.CleanupResult
	err       error
	retention time.Duration
}

func (f *fakeRetention) CleanupOldData(_ context.Context, olderThan time.Duration) (db.CleanupResult, error) {
	f.retention = olderThan
	return f.res, f.err
}

type fakeEvicter struct {
	deleted []uuid.UUID
	failOn  uuid.UUID
}

func (f *fakeEvicter) Delete(_ context.Context, id uuid.UUID) error {
	if id == f.failOn {
		return errors.New("redis down")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestCleanupOnce_EvictsRemovedPlans(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	store := &fakeRetention{res: db.CleanupResult{Profiles: 3, PlanIDs: []uuid.UUID{a, b, c}}}
	evicter := &fakeEvicter{failOn: b}

	cleanupOnce(context.Background(), store, evicter, 90*24*time.Hour, logger.NewNop())

	if store.retention != 90*24*time.Hour {
		t.Fatalf("retention = %v", store.retention)
	}
	if len(evicter.deleted) != 2 || evicter.deleted[0] != a || evicter.deleted[1] != c {
		t.Fatalf("evicted = %v, want [%s %s]", evicter.deleted, a, c)
	}
}

func TestCleanupOnce_StoreErrorSkipsEviction(t *testing.T) {
	store := &fakeRetention{err: errors.New("db down"), res: db.CleanupResult{PlanIDs: []uuid.UUID{uuid.New()}}}
	evicter := &fakeEvicter{}

	cleanupOnce(context.Background(), store, evicter, time.Hour, logger.NewNop())

	if len(evicter.deleted) != 0 {
		t.Fatalf("evicted %v after a failed cleanup", evicter.deleted)
	}
}
