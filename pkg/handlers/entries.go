package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/models"
	"github.com/crewlog/crewlog-engine/pkg/services"
)

// EntryHandler handles journal entry endpoints.
type EntryHandler struct {
	journal services.JournalService
	logger  *zap.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(journal services.JournalService, logger *zap.Logger) *EntryHandler {
	return &EntryHandler{journal: journal, logger: logger.Named("entry_handler")}
}

// RegisterRoutes registers the entry routes on the given mux.
func (h *EntryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/entries", h.Create)
	mux.HandleFunc("GET /api/entries", h.List)
	mux.HandleFunc("GET /api/entries/{id}", h.Get)
	mux.HandleFunc("PUT /api/entries/{id}", h.Update)
	mux.HandleFunc("DELETE /api/entries/{id}", h.Delete)
	mux.HandleFunc("GET /api/decisions/due", h.DecisionsDue)
}

type entryRequest struct {
	Kind       models.EntryKind `json:"kind"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	OccurredAt *time.Time       `json:"occurred_at"`
	Decision   *models.Decision `json:"decision"`
	ProjectID  *uuid.UUID       `json:"project_id"`
	PersonIDs  []uuid.UUID      `json:"person_ids"`
}

// Create handles POST /api/entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	entry := &models.Entry{
		Kind:      req.Kind,
		Title:     req.Title,
		Content:   req.Content,
		Decision:  req.Decision,
		ProjectID: req.ProjectID,
		PersonIDs: req.PersonIDs,
	}
	if req.OccurredAt != nil {
		entry.OccurredAt = *req.OccurredAt
	}

	if err := h.journal.CreateEntry(r.Context(), entry); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, entry); err != nil {
		h.logger.Error("Failed to encode entry response", zap.Error(err))
	}
}

// List handles GET /api/entries.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.ListRecentEntries(r.Context(), queryLimit(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{"entries": entries}); err != nil {
		h.logger.Error("Failed to encode entries response", zap.Error(err))
	}
}

// Get handles GET /api/entries/{id}.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	entry, err := h.journal.GetEntry(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, entry); err != nil {
		h.logger.Error("Failed to encode entry response", zap.Error(err))
	}
}

// Update handles PUT /api/entries/{id}.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	existing, err := h.journal.GetEntry(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	existing.Kind = req.Kind
	existing.Title = req.Title
	existing.Content = req.Content
	existing.Decision = req.Decision
	existing.ProjectID = req.ProjectID
	if req.OccurredAt != nil {
		existing.OccurredAt = *req.OccurredAt
	}

	if err := h.journal.UpdateEntry(r.Context(), existing); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, existing); err != nil {
		h.logger.Error("Failed to encode entry response", zap.Error(err))
	}
}

// DecisionsDue handles GET /api/decisions/due: pending decisions whose
// review date has arrived.
func (h *EntryHandler) DecisionsDue(w http.ResponseWriter, r *http.Request) {
	decisions, err := h.journal.ListDecisionsDueForReview(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if decisions == nil {
		decisions = []models.Entry{}
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{"decisions": decisions}); err != nil {
		h.logger.Error("Failed to encode decisions response", zap.Error(err))
	}
}

// Delete handles DELETE /api/entries/{id}. The delete is soft.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.journal.DeleteEntry(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses a UUID path segment, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryLimit parses the optional ?limit= parameter; zero means default.
func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}
