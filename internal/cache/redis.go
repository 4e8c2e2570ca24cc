// Package cache keeps recently generated plans in Redis. When Redis is
// disabled or unreachable every call is a no-op and reads miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"diet-calculator/config"
	"diet-calculator/internal/models"
	"diet-calculator/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 24 * time.Hour
	keyPrefix  = "diet:plan:"
)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger

	warnedUnavailable atomic.Bool
}

// New connects to Redis and pings it once. On failure the returned cache
// bypasses Redis entirely.
func New(cfg config.RedisConfig, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	r := &Redis{ttl: ttl, log: log}
	if !cfg.Enabled {
		return r
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("Redis unavailable, bypassing cache", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return r
	}

	log.Infow("Redis cache connected", "addr", cfg.Addr, "ttl", ttl)
	r.client = client
	return r
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warnw("Redis error, cache degraded", "error", err)
	}
}

func planKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Enabled reports whether a live Redis connection backs the cache.
func (r *Redis) Enabled() bool {
	return !r.isUnavailable()
}

// GetPlan returns the cached plan and true on a hit.
func (r *Redis) GetPlan(ctx context.Context, id uuid.UUID) (*models.StoredPlan, bool, error) {
	if r.isUnavailable() {
		return nil, false, nil
	}
	b, err := r.client.Get(ctx, planKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		r.warnUnavailableOnce(err)
		return nil, false, err
	}
	if len(b) == 0 {
		return nil, false, nil
	}
	var sp models.StoredPlan
	if err := json.Unmarshal(b, &sp); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached plan: %w", err)
	}
	return &sp, true, nil
}

func (r *Redis) SetPlan(ctx context.Context, sp *models.StoredPlan) error {
	if r.isUnavailable() || sp == nil {
		return nil
	}
	b, err := json.Marshal(sp)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := r.client.Set(ctx, planKey(sp.ID), b, r.ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, id uuid.UUID) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Del(ctx, planKey(id)).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}
