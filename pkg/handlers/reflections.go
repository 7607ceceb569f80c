package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/models"
	"github.com/crewlog/crewlog-engine/pkg/services"
)

// ReflectionHandler handles reflection sessions: generating question
// sets and saving answered reflections.
type ReflectionHandler struct {
	journal  services.JournalService
	insights services.InsightService
	logger   *zap.Logger
}

// NewReflectionHandler creates a new ReflectionHandler.
func NewReflectionHandler(journal services.JournalService, insights services.InsightService, logger *zap.Logger) *ReflectionHandler {
	return &ReflectionHandler{
		journal:  journal,
		insights: insights,
		logger:   logger.Named("reflection_handler"),
	}
}

// RegisterRoutes registers the reflection routes on the given mux.
func (h *ReflectionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/reflections/prompts", h.Prompts)
	mux.HandleFunc("POST /api/reflections/quick", h.Quick)
	mux.HandleFunc("POST /api/reflections", h.Save)
	mux.HandleFunc("GET /api/reflections", h.List)
}

// Prompts handles GET /api/reflections/prompts. Question generation
// never hard-fails on the AI; the response always contains questions.
func (h *ReflectionHandler) Prompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := services.ReflectionRequest{
		Scope:       models.ReflectionScope(q.Get("scope")),
		PeriodLabel: q.Get("period"),
	}
	if req.Scope == "" {
		req.Scope = models.ReflectionPeriodic
	}
	if !models.ValidReflectionScope(req.Scope) {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "unknown reflection scope")
		return
	}
	if raw := q.Get("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid project_id")
			return
		}
		req.ProjectID = &id
	}
	if raw := q.Get("person_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid person_id")
			return
		}
		req.PersonID = &id
	}
	if req.Scope == models.ReflectionProject && req.ProjectID == nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "project_id is required for project scope")
		return
	}
	if req.Scope == models.ReflectionRelationship && req.PersonID == nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "person_id is required for relationship scope")
		return
	}

	result, err := h.insights.ReflectionPrompts(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode prompts response", zap.Error(err))
	}
}

// Quick handles POST /api/reflections/quick.
func (h *ReflectionHandler) Quick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Trigger string     `json:"trigger"`
		EntryID *uuid.UUID `json:"entry_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.insights.QuickReflection(r.Context(), req.Trigger, req.EntryID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode quick reflection response", zap.Error(err))
	}
}

type saveReflectionRequest struct {
	Scope       models.ReflectionScope    `json:"scope"`
	PeriodStart *time.Time                `json:"period_start"`
	PeriodEnd   *time.Time                `json:"period_end"`
	ProjectID   *uuid.UUID                `json:"project_id"`
	PersonID    *uuid.UUID                `json:"person_id"`
	Mood        string                    `json:"mood"`
	Answers     []models.ReflectionAnswer `json:"answers"`
}

// Save handles POST /api/reflections. Themes are extracted from the
// answers before saving; theme extraction degrading to nothing does not
// block the save.
func (h *ReflectionHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	answers := make([]string, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, a.Answer)
	}
	themes, err := h.insights.ExtractThemes(r.Context(), answers)
	if err != nil {
		h.logger.Warn("theme extraction failed, saving without themes", zap.Error(err))
		themes = nil
	}

	ref := &models.Reflection{
		Scope:       req.Scope,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		ProjectID:   req.ProjectID,
		PersonID:    req.PersonID,
		Mood:        req.Mood,
		Themes:      themes,
		Answers:     req.Answers,
	}

	if err := h.journal.SaveReflection(r.Context(), ref); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ref); err != nil {
		h.logger.Error("Failed to encode reflection response", zap.Error(err))
	}
}

// List handles GET /api/reflections.
func (h *ReflectionHandler) List(w http.ResponseWriter, r *http.Request) {
	reflections, err := h.journal.ListReflections(r.Context(), queryLimit(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if reflections == nil {
		reflections = []models.Reflection{}
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{"reflections": reflections}); err != nil {
		h.logger.Error("Failed to encode reflections response", zap.Error(err))
	}
}
