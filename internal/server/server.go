// Package server exposes the plan generator and the stored plans over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"diet-calculator/config"
	"diet-calculator/internal/models"
	"diet-calculator/internal/planner"
	"diet-calculator/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Generator turns a raw profile into a plan. *planner.Assembler implements it.
type Generator interface {
	Generate(ctx context.Context, p models.UserProfile) (planner.Result, error)
}

type PlanStore interface {
	SavePlan(ctx context.Context, sp *models.StoredPlan) error
	GetPlan(ctx context.Context, id uuid.UUID) (*models.StoredPlan, error)
	ListPlansBySession(ctx context.Context, sessionID string) ([]*models.StoredPlan, error)
	SaveProgress(ctx context.Context, e *models.ProgressEntry) error
	ListProgress(ctx context.Context, planID uuid.UUID) ([]models.ProgressEntry, error)
}

type PlanCache interface {
	GetPlan(ctx context.Context, id uuid.UUID) (*models.StoredPlan, bool, error)
	SetPlan(ctx context.Context, sp *models.StoredPlan) error
}

// Deps are the collaborators behind the routes. Store and Cache may be nil.
type Deps struct {
	Generator Generator
	Store     PlanStore
	Cache     PlanCache
}

type Server struct {
	server *http.Server
	deps   Deps
	logger *logger.Logger
}

func NewServer(cfg config.ServerConfig, deps Deps, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Server{deps: deps, logger: log}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	s.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(s.recoverMiddleware(s.loggingMiddleware(s.routes()))),
		ReadTimeout:  orDefault(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: orDefault(cfg.WriteTimeout, 60*time.Second),
		IdleTimeout:  orDefault(cfg.IdleTimeout, 120*time.Second),
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/meal-plans").Subrouter()
	api.HandleFunc("", s.handleCreatePlan).Methods(http.MethodPost)
	api.HandleFunc("", s.handleListPlans).Methods(http.MethodGet)
	api.HandleFunc("/{id}", s.handleGetPlan).Methods(http.MethodGet)
	api.HandleFunc("/{id}/report", s.handleReport).Methods(http.MethodGet)
	api.HandleFunc("/{id}/progress", s.handleAddProgress).Methods(http.MethodPost)
	api.HandleFunc("/{id}/progress", s.handleListProgress).Methods(http.MethodGet)

	return r
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Infow("Starting HTTP server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
