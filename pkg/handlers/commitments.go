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

// CommitmentHandler handles commitment endpoints.
type CommitmentHandler struct {
	journal services.JournalService
	logger  *zap.Logger
}

// NewCommitmentHandler creates a new CommitmentHandler.
func NewCommitmentHandler(journal services.JournalService, logger *zap.Logger) *CommitmentHandler {
	return &CommitmentHandler{journal: journal, logger: logger.Named("commitment_handler")}
}

// RegisterRoutes registers the commitment routes on the given mux.
func (h *CommitmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/commitments", h.Create)
	mux.HandleFunc("GET /api/commitments", h.ListOpen)
	mux.HandleFunc("GET /api/commitments/{id}", h.Get)
	mux.HandleFunc("POST /api/commitments/{id}/status", h.Transition)
}

type commitmentRequest struct {
	Title         string     `json:"title"`
	Direction     string     `json:"direction"`
	Importance    int        `json:"importance"`
	Urgency       int        `json:"urgency"`
	DueAt         *time.Time `json:"due_at"`
	ProjectID     *uuid.UUID `json:"project_id"`
	PersonID      *uuid.UUID `json:"person_id"`
	SourceEntryID *uuid.UUID `json:"source_entry_id"`
}

// Create handles POST /api/commitments.
func (h *CommitmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req commitmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Title == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}

	c := &models.Commitment{
		Title:         req.Title,
		Direction:     models.ParseCommitmentDirection(req.Direction),
		Importance:    req.Importance,
		Urgency:       req.Urgency,
		DueAt:         req.DueAt,
		ProjectID:     req.ProjectID,
		PersonID:      req.PersonID,
		SourceEntryID: req.SourceEntryID,
	}

	if err := h.journal.CreateCommitment(r.Context(), c); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, c); err != nil {
		h.logger.Error("Failed to encode commitment response", zap.Error(err))
	}
}

// ListOpen handles GET /api/commitments.
func (h *CommitmentHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	commitments, err := h.journal.ListOpenCommitments(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if commitments == nil {
		commitments = []models.Commitment{}
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{"commitments": commitments}); err != nil {
		h.logger.Error("Failed to encode commitments response", zap.Error(err))
	}
}

// Get handles GET /api/commitments/{id}.
func (h *CommitmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.journal.GetCommitment(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, c); err != nil {
		h.logger.Error("Failed to encode commitment response", zap.Error(err))
	}
}

// Transition handles POST /api/commitments/{id}/status.
func (h *CommitmentHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.CommitmentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.journal.TransitionCommitment(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, c); err != nil {
		h.logger.Error("Failed to encode commitment response", zap.Error(err))
	}
}
