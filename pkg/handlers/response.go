// Package handlers exposes the journal and insight services over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/apperrors"
	"github.com/crewlog/crewlog-engine/pkg/llm"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service-layer errors onto HTTP responses.
// AI failures get distinct codes so clients can route them: a missing
// credential goes to settings, a timeout invites a retry.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		_ = ErrorResponse(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, apperrors.ErrDeleted):
		_ = ErrorResponse(w, http.StatusGone, "deleted", "entry has been deleted")
	case errors.Is(err, apperrors.ErrMissingAnchor):
		_ = ErrorResponse(w, http.StatusBadRequest, "missing_anchor", "commitment must reference a project or a person")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		_ = ErrorResponse(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
	case llm.IsNotConfigured(err):
		_ = ErrorResponse(w, http.StatusConflict, "ai_not_configured", "no AI credential is configured")
	case llm.IsTimeout(err):
		_ = ErrorResponse(w, http.StatusGatewayTimeout, "ai_timeout", "the AI did not respond in time")
	case llm.KindOf(err) != "":
		_ = ErrorResponse(w, http.StatusBadGateway, "ai_error", "the AI request failed")
	default:
		logger.Error("request failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
