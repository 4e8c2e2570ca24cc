package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"diet-calculator/internal/db"
	"diet-calculator/internal/models"
	"diet-calculator/internal/report"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

var errNoStore = errors.New("plan storage is not configured")

// planRequest is the inbound profile. "timeline" is accepted as a legacy
// spelling of timelineWeeks.
type planRequest struct {
	models.UserProfile
	Timeline  *int   `json:"timeline,omitempty"`
	SessionID string `json:"sessionId"`
}

type planResponse struct {
	MealPlan         *models.MealPlan        `json:"mealPlan"`
	NutritionTargets models.NutritionTargets `json:"nutritionTargets"`
	Success          bool                    `json:"success"`
	PlanID           string                  `json:"planId,omitempty"`
	SessionID        string                  `json:"sessionId"`
}

type progressRequest struct {
	CurrentWeight float64 `json:"currentWeight"`
	Notes         string  `json:"notes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"database": s.deps.Store != nil,
		"cache":    s.deps.Cache != nil,
	})
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	profile := req.UserProfile
	if profile.TimelineWeeks == 0 && req.Timeline != nil {
		profile.TimelineWeeks = *req.Timeline
	}

	res, err := s.deps.Generator.Generate(r.Context(), profile)
	if err != nil {
		if errors.Is(err, models.ErrInvalidProfile) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Errorw("Failed to generate meal plan", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate meal plan")
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	resp := planResponse{
		MealPlan:         res.Plan,
		NutritionTargets: res.Targets,
		Success:          true,
		SessionID:        sessionID,
	}

	if s.deps.Store != nil {
		sp := &models.StoredPlan{
			SessionID: sessionID,
			Profile:   res.Profile,
			Targets:   res.Targets,
			Plan:      *res.Plan,
		}
		if err := s.deps.Store.SavePlan(r.Context(), sp); err != nil {
			s.logger.Errorw("Failed to save meal plan", "session_id", sessionID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save meal plan")
			return
		}
		resp.PlanID = sp.ID.String()
		s.cachePlan(r, sp)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore.Error())
		return
	}
	sessionID := strings.TrimSpace(r.URL.Query().Get("sessionId"))
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	plans, err := s.deps.Store.ListPlansBySession(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "Failed to list meal plans", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	sp, ok := s.loadPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format != "" && format != "text" && format != "html" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported report format %q", format))
		return
	}
	sp, ok := s.loadPlan(w, r)
	if !ok {
		return
	}

	if format == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.HTML(w, *sp); err != nil {
			s.logger.Errorw("Failed to render report", "plan_id", sp.ID, "error", err)
		}
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(report.Text(*sp)))
}

func (s *Server) handleAddProgress(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore.Error())
		return
	}
	id, ok := planID(w, r)
	if !ok {
		return
	}
	var req progressRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CurrentWeight < 30 || req.CurrentWeight > 300 {
		writeError(w, http.StatusBadRequest, "currentWeight must be between 30 and 300 kg")
		return
	}

	entry := &models.ProgressEntry{PlanID: id, CurrentWeight: req.CurrentWeight, Notes: strings.TrimSpace(req.Notes)}
	if err := s.deps.Store.SaveProgress(r.Context(), entry); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "meal plan not found")
			return
		}
		s.fail(w, "Failed to save progress", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore.Error())
		return
	}
	id, ok := planID(w, r)
	if !ok {
		return
	}
	entries, err := s.deps.Store.ListProgress(r.Context(), id)
	if err != nil {
		s.fail(w, "Failed to list progress", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// loadPlan resolves {id} through the cache and then the store, writing the
// error response itself when it returns false.
func (s *Server) loadPlan(w http.ResponseWriter, r *http.Request) (*models.StoredPlan, bool) {
	if s.deps.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore.Error())
		return nil, false
	}
	id, ok := planID(w, r)
	if !ok {
		return nil, false
	}

	if s.deps.Cache != nil {
		sp, hit, err := s.deps.Cache.GetPlan(r.Context(), id)
		if err != nil {
			s.logger.Debugw("Cache read failed", "plan_id", id, "error", err)
		}
		if hit {
			return sp, true
		}
	}

	sp, err := s.deps.Store.GetPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "meal plan not found")
			return nil, false
		}
		s.fail(w, "Failed to load meal plan", err)
		return nil, false
	}
	s.cachePlan(r, sp)
	return sp, true
}

func (s *Server) cachePlan(r *http.Request, sp *models.StoredPlan) {
	if s.deps.Cache == nil {
		return
	}
	if err := s.deps.Cache.SetPlan(r.Context(), sp); err != nil {
		s.logger.Debugw("Cache write failed", "plan_id", sp.ID, "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	s.logger.Errorw(msg, "error", err)
	writeError(w, http.StatusInternalServerError, strings.ToLower(msg[:1])+msg[1:])
}

func planID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
