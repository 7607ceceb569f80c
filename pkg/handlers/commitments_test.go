package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/crewlog/crewlog-engine/pkg/apperrors"
	"github.com/crewlog/crewlog-engine/pkg/models"
)

func newCommitmentMux(journal *mockJournalService) *http.ServeMux {
	mux := http.NewServeMux()
	NewCommitmentHandler(journal, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestCreateCommitment_MissingAnchor(t *testing.T) {
	journal := &mockJournalService{
		CreateCommitmentFunc: func(ctx context.Context, c *models.Commitment) error {
			return apperrors.ErrMissingAnchor
		},
	}
	mux := newCommitmentMux(journal)

	req := httptest.NewRequest(http.MethodPost, "/api/commitments",
		strings.NewReader(`{"title": "Floating promise"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_anchor")
}

func TestCreateCommitment_MissingTitle(t *testing.T) {
	mux := newCommitmentMux(&mockJournalService{})

	req := httptest.NewRequest(http.MethodPost, "/api/commitments", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCommitment_UnknownDirectionDefaults(t *testing.T) {
	var created *models.Commitment
	journal := &mockJournalService{
		CreateCommitmentFunc: func(ctx context.Context, c *models.Commitment) error {
			created = c
			return nil
		},
	}
	mux := newCommitmentMux(journal)

	projectID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/commitments",
		strings.NewReader(`{"title": "Send notes", "direction": "someday", "project_id": "`+projectID.String()+`"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.DirectionIOwe, created.Direction)
}

func TestTransitionCommitment_InvalidTransition(t *testing.T) {
	journal := &mockJournalService{
		TransitionCommitmentFunc: func(ctx context.Context, id uuid.UUID, to models.CommitmentStatus) (*models.Commitment, error) {
			return nil, apperrors.ErrInvalidTransition
		},
	}
	mux := newCommitmentMux(journal)

	req := httptest.NewRequest(http.MethodPost, "/api/commitments/"+uuid.New().String()+"/status",
		strings.NewReader(`{"status": "blocked"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_transition")
}

func TestTransitionCommitment_OK(t *testing.T) {
	id := uuid.New()
	journal := &mockJournalService{
		TransitionCommitmentFunc: func(ctx context.Context, got uuid.UUID, to models.CommitmentStatus) (*models.Commitment, error) {
			assert.Equal(t, id, got)
			return &models.Commitment{ID: id, Status: to}, nil
		},
	}
	mux := newCommitmentMux(journal)

	req := httptest.NewRequest(http.MethodPost, "/api/commitments/"+id.String()+"/status",
		strings.NewReader(`{"status": "done"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"done"`)
}
