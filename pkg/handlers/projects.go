package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/models"
	"github.com/crewlog/crewlog-engine/pkg/services"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	journal services.JournalService
	logger  *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(journal services.JournalService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{journal: journal, logger: logger.Named("project_handler")}
}

// RegisterRoutes registers the project routes on the given mux.
func (h *ProjectHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/projects", h.Create)
	mux.HandleFunc("GET /api/projects", h.List)
	mux.HandleFunc("GET /api/projects/{id}", h.Get)
	mux.HandleFunc("PUT /api/projects/{id}", h.Update)
	mux.HandleFunc("GET /api/projects/{id}/entries", h.Entries)
}

type projectRequest struct {
	Name     string               `json:"name"`
	Type     string               `json:"type"`
	Status   models.ProjectStatus `json:"status"`
	Priority int                  `json:"priority"`
	Notes    string               `json:"notes"`
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	p := &models.Project{
		Name:     req.Name,
		Type:     req.Type,
		Status:   req.Status,
		Priority: req.Priority,
		Notes:    req.Notes,
	}

	if err := h.journal.CreateProject(r.Context(), p); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, p); err != nil {
		h.logger.Error("Failed to encode project response", zap.Error(err))
	}
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.journal.ListProjects(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{"projects": projects}); err != nil {
		h.logger.Error("Failed to encode projects response", zap.Error(err))
	}
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.journal.GetProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, p); err != nil {
		h.logger.Error("Failed to encode project response", zap.Error(err))
	}
}

// Update handles PUT /api/projects/{id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	existing, err := h.journal.GetProject(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	existing.Name = req.Name
	existing.Type = req.Type
	existing.Status = req.Status
	existing.Priority = req.Priority
	existing.Notes = req.Notes

	if err := h.journal.UpdateProject(r.Context(), existing); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, existing); err != nil {
		h.logger.Error("Failed to encode project response", zap.Error(err))
	}
}

// Entries handles GET /api/projects/{id}/entries.
func (h *ProjectHandler) Entries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.journal.ListProjectEntries(r.Context(), id, queryLimit(r))
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
