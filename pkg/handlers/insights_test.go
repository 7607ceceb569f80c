package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/llm"
	"github.com/crewlog/crewlog-engine/pkg/models"
)

func newInsightMux(insights *mockInsightService) *http.ServeMux {
	mux := http.NewServeMux()
	NewInsightHandler(insights, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestSummarizeEntry_OK(t *testing.T) {
	insights := &mockInsightService{
		SummarizeEntryFunc: func(ctx context.Context, entryID uuid.UUID) (*models.EntrySummaryResult, error) {
			return &models.EntrySummaryResult{
				Summary:          "Launch delayed",
				SuggestedActions: []models.SuggestedCommitment{},
			}, nil
		},
	}
	mux := newInsightMux(insights)

	req := httptest.NewRequest(http.MethodPost, "/api/entries/"+uuid.New().String()+"/summarize", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Launch delayed")
}

func TestSummarizeEntry_NotConfigured(t *testing.T) {
	insights := &mockInsightService{
		SummarizeEntryFunc: func(ctx context.Context, entryID uuid.UUID) (*models.EntrySummaryResult, error) {
			return nil, llm.ErrNotConfigured
		},
	}
	mux := newInsightMux(insights)

	req := httptest.NewRequest(http.MethodPost, "/api/entries/"+uuid.New().String()+"/summarize", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "ai_not_configured")
}

func TestSummarizeEntry_Timeout(t *testing.T) {
	insights := &mockInsightService{
		SummarizeEntryFunc: func(ctx context.Context, entryID uuid.UUID) (*models.EntrySummaryResult, error) {
			return nil, llm.NewTimeoutError(12 * time.Second)
		},
	}
	mux := newInsightMux(insights)

	req := httptest.NewRequest(http.MethodPost, "/api/entries/"+uuid.New().String()+"/summarize", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), "ai_timeout")
}

func TestSummarizeEntry_ServerError(t *testing.T) {
	insights := &mockInsightService{
		SummarizeEntryFunc: func(ctx context.Context, entryID uuid.UUID) (*models.EntrySummaryResult, error) {
			return nil, &llm.Error{Kind: llm.ErrorKindServer, StatusCode: 500, Message: "upstream exploded"}
		},
	}
	mux := newInsightMux(insights)

	req := httptest.NewRequest(http.MethodPost, "/api/entries/"+uuid.New().String()+"/summarize", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "ai_error")
}

func TestSingleQuestion_RequiresTopic(t *testing.T) {
	mux := newInsightMux(&mockInsightService{})

	req := httptest.NewRequest(http.MethodPost, "/api/insights/question", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranscribe_OK(t *testing.T) {
	insights := &mockInsightService{
		TranscribeAudioFunc: func(ctx context.Context, audio []byte) (string, error) {
			assert.Equal(t, []byte{0x01, 0x02, 0x03}, audio)
			return "Met with Dana.", nil
		},
	}
	mux := newInsightMux(insights)

	req := httptest.NewRequest(http.MethodPost, "/api/transcriptions", bytes.NewReader([]byte{0x01, 0x02, 0x03}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Met with Dana.")
}

func TestTranscribe_EmptyBody(t *testing.T) {
	mux := newInsightMux(&mockInsightService{})

	req := httptest.NewRequest(http.MethodPost, "/api/transcriptions", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecisionPatterns_OK(t *testing.T) {
	insights := &mockInsightService{
		AnalyzeDecisionPatternsFunc: func(ctx context.Context) (*models.DecisionPatternAnalysis, error) {
			return &models.DecisionPatternAnalysis{DecisionCount: 2, Insights: []string{}}, nil
		},
	}
	mux := newInsightMux(insights)

	req := httptest.NewRequest(http.MethodGet, "/api/insights/decision-patterns", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"decision_count":2`)
}
