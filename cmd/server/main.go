package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"diet-calculator/config"
	"diet-calculator/internal/ai"
	"diet-calculator/internal/bot"
	"diet-calculator/internal/cache"
	"diet-calculator/internal/db"
	"diet-calculator/internal/planner"
	"diet-calculator/internal/server"
	"diet-calculator/pkg/logger"

	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Fatalw("Failed to load config", "error", err)
	}

	l := newLogger(cfg.Log)
	defer func() { _ = l.Sync() }()
	l.Info("Starting diet calculator...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	planCache := cache.New(cfg.Redis, l.With("component", "cache"))
	defer func() { _ = planCache.Close() }()

	var database *db.PostgresDB
	if cfg.DB.Enabled {
		database = connectDB(cfg.DB, l)
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			l.Fatalw("Failed to prepare database schema", "error", err)
		}
		go runCleanup(ctx, database, planCache, cfg.Cleanup, l)
	} else {
		l.Info("Database disabled, plans will not be stored")
	}

	generator := ai.NewGenerator(cfg.AI, l.With("component", "ai"))
	if generator == nil {
		l.Info("No AI API key configured, using rule-based plans only")
	}
	assembler := planner.New(generator, l.With("component", "planner"))

	deps := server.Deps{Generator: assembler}
	var botStore bot.PlanStore
	if database != nil {
		deps.Store = database
		botStore = database
	}
	if planCache.Enabled() {
		deps.Cache = planCache
	}

	httpServer := server.NewServer(cfg.Server, deps, l.With("component", "http"))
	go func() {
		if err := httpServer.Start(); err != nil {
			l.Fatalw("Failed to start HTTP server", "error", err)
		}
	}()

	var telegramBot *bot.TelegramBot
	if cfg.Telegram.Token != "" {
		telegramBot, err = bot.NewTelegramBot(cfg.Telegram, assembler, botStore, l.With("component", "telegram"))
		if err != nil {
			l.Fatalw("Failed to create Telegram bot", "error", err)
		}
		if err := telegramBot.Start(ctx); err != nil {
			l.Fatalw("Failed to start Telegram bot", "error", err)
		}
		l.Info("Telegram bot started successfully")
	}

	<-ctx.Done()
	l.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		l.Errorw("Error during HTTP server shutdown", "error", err)
	}
	if telegramBot != nil {
		if err := telegramBot.Stop(shutdownCtx); err != nil {
			l.Errorw("Error during bot shutdown", "error", err)
		}
	}

	l.Info("Stopped")
}

func newLogger(cfg config.LogConfig) *logger.Logger {
	if cfg.Development {
		return logger.NewDevelopment()
	}
	return logger.NewWithLevel(cfg.Level)
}

func connectDB(cfg config.DBConfig, l *logger.Logger) *db.PostgresDB {
	var (
		database *db.PostgresDB
		err      error
	)
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		database, err = db.NewPostgresDB(cfg)
		if err == nil {
			return database
		}
		l.Errorw("Failed to connect to database, retrying...", "attempt", i+1, "error", err)
		time.Sleep(time.Duration(i+1) * time.Second)
	}
	l.Fatalw("Failed to connect to database after multiple attempts", "error", err)
	return nil
}

type retentionStore interface {
	CleanupOldData(ctx context.Context, olderThan time.Duration) (db.CleanupResult, error)
}

type planEvicter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// runCleanup removes anonymous data past the retention window once per interval.
func runCleanup(ctx context.Context, store retentionStore, evicter planEvicter, cfg config.CleanupConfig, l *logger.Logger) {
	if cfg.Interval <= 0 || cfg.RetentionDays <= 0 {
		l.Info("Retention cleanup disabled")
		return
	}
	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupOnce(ctx, store, evicter, retention, l)
		}
	}
}

// cleanupOnce runs one retention pass and evicts the removed plans from the cache.
func cleanupOnce(ctx context.Context, store retentionStore, evicter planEvicter, retention time.Duration, l *logger.Logger) {
	res, err := store.CleanupOldData(ctx, retention)
	if err != nil {
		l.Errorw("Retention cleanup failed", "error", err)
		return
	}
	evicted := 0
	for _, id := range res.PlanIDs {
		if err := evicter.Delete(ctx, id); err != nil {
			l.Warnw("Failed to evict cleaned plan from cache", "plan_id", id, "error", err)
			continue
		}
		evicted++
	}
	l.Infow("Retention cleanup finished", "profiles_removed", res.Profiles, "plans_removed", len(res.PlanIDs), "plans_evicted", evicted)
}
