package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/models"
	"github.com/crewlog/crewlog-engine/pkg/services"
)

// PersonHandler handles people endpoints, including the derived
// relationship metrics.
type PersonHandler struct {
	journal services.JournalService
	logger  *zap.Logger
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(journal services.JournalService, logger *zap.Logger) *PersonHandler {
	return &PersonHandler{journal: journal, logger: logger.Named("person_handler")}
}

// RegisterRoutes registers the people routes on the given mux.
func (h *PersonHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/people", h.Create)
	mux.HandleFunc("GET /api/people", h.List)
	mux.HandleFunc("GET /api/people/{id}", h.Get)
	mux.HandleFunc("PUT /api/people/{id}", h.Update)
	mux.HandleFunc("GET /api/people/{id}/entries", h.Entries)
	mux.HandleFunc("GET /api/people/{id}/metrics", h.Metrics)
}

type personRequest struct {
	Name         string                  `json:"name"`
	Organization string                  `json:"organization"`
	Role         string                  `json:"role"`
	Relationship models.RelationshipType `json:"relationship"`
	Notes        string                  `json:"notes"`
}

// Create handles POST /api/people.
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	p := &models.Person{
		Name:         req.Name,
		Organization: req.Organization,
		Role:         req.Role,
		Relationship: req.Relationship,
		Notes:        req.Notes,
	}

	if err := h.journal.CreatePerson(r.Context(), p); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, p); err != nil {
		h.logger.Error("Failed to encode person response", zap.Error(err))
	}
}

// List handles GET /api/people.
func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.journal.ListPeople(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if people == nil {
		people = []models.Person{}
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{"people": people}); err != nil {
		h.logger.Error("Failed to encode people response", zap.Error(err))
	}
}

// Get handles GET /api/people/{id}.
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.journal.GetPerson(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, p); err != nil {
		h.logger.Error("Failed to encode person response", zap.Error(err))
	}
}

// Update handles PUT /api/people/{id}.
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	existing, err := h.journal.GetPerson(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	existing.Name = req.Name
	existing.Organization = req.Organization
	existing.Role = req.Role
	existing.Relationship = req.Relationship
	existing.Notes = req.Notes

	if err := h.journal.UpdatePerson(r.Context(), existing); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, existing); err != nil {
		h.logger.Error("Failed to encode person response", zap.Error(err))
	}
}

// Entries handles GET /api/people/{id}/entries.
func (h *PersonHandler) Entries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.journal.ListPersonEntries(r.Context(), id, queryLimit(r))
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

// Metrics handles GET /api/people/{id}/metrics.
func (h *PersonHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	metrics, err := h.journal.PersonMetrics(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, metrics); err != nil {
		h.logger.Error("Failed to encode metrics response", zap.Error(err))
	}
}
