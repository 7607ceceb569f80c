package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/services"
)

// maxAudioBytes caps voice note uploads at 25 MB, matching the
// transcription endpoint's own limit.
const maxAudioBytes = 25 << 20

// InsightHandler handles the AI-backed endpoints: summaries, prep
// briefings, pattern analysis, follow-up questions, and transcription.
type InsightHandler struct {
	insights services.InsightService
	logger   *zap.Logger
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insights services.InsightService, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{insights: insights, logger: logger.Named("insight_handler")}
}

// RegisterRoutes registers the insight routes on the given mux.
func (h *InsightHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/entries/{id}/summarize", h.SummarizeEntry)
	mux.HandleFunc("GET /api/people/{id}/briefing", h.PersonBriefing)
	mux.HandleFunc("GET /api/projects/{id}/briefing", h.ProjectBriefing)
	mux.HandleFunc("GET /api/insights/decision-patterns", h.DecisionPatterns)
	mux.HandleFunc("POST /api/insights/question", h.SingleQuestion)
	mux.HandleFunc("POST /api/transcriptions", h.Transcribe)
}

// SummarizeEntry handles POST /api/entries/{id}/summarize.
func (h *InsightHandler) SummarizeEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.insights.SummarizeEntry(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode summary response", zap.Error(err))
	}
}

// PersonBriefing handles GET /api/people/{id}/briefing.
func (h *InsightHandler) PersonBriefing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.insights.PersonPrepBriefing(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode briefing response", zap.Error(err))
	}
}

// ProjectBriefing handles GET /api/projects/{id}/briefing.
func (h *InsightHandler) ProjectBriefing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.insights.ProjectPrepBriefing(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode briefing response", zap.Error(err))
	}
}

// DecisionPatterns handles GET /api/insights/decision-patterns.
func (h *InsightHandler) DecisionPatterns(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.insights.AnalyzeDecisionPatterns(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, analysis); err != nil {
		h.logger.Error("Failed to encode analysis response", zap.Error(err))
	}
}

// SingleQuestion handles POST /api/insights/question.
func (h *InsightHandler) SingleQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Topic == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "topic is required")
		return
	}

	question, err := h.insights.SingleQuestion(r.Context(), req.Topic)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"question": question}); err != nil {
		h.logger.Error("Failed to encode question response", zap.Error(err))
	}
}

// Transcribe handles POST /api/transcriptions. The request body is the
// raw audio bytes.
func (h *InsightHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	audio, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAudioBytes))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "failed to read audio body")
		return
	}
	if len(audio) == 0 {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "empty audio body")
		return
	}

	text, err := h.insights.TranscribeAudio(r.Context(), audio)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"text": text}); err != nil {
		h.logger.Error("Failed to encode transcription response", zap.Error(err))
	}
}
