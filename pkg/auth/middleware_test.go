package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-at-least-32-bytes-long!"

func protectedHandler(t *testing.T, gotSubject *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotSubject = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_RejectsMissingToken(t *testing.T) {
	var subject string
	m := NewMiddleware(testSecret, true, zap.NewNop())
	h := m.Handler(protectedHandler(t, &subject))

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_RejectsGarbageToken(t *testing.T) {
	var subject string
	m := NewMiddleware(testSecret, true, zap.NewNop())
	h := m.Handler(protectedHandler(t, &subject))

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_RejectsWrongSecret(t *testing.T) {
	var subject string
	m := NewMiddleware(testSecret, true, zap.NewNop())
	h := m.Handler(protectedHandler(t, &subject))

	token, err := SignToken("a-completely-different-secret-value", "user-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_RejectsExpiredToken(t *testing.T) {
	var subject string
	m := NewMiddleware(testSecret, true, zap.NewNop())
	h := m.Handler(protectedHandler(t, &subject))

	token, err := SignToken(testSecret, "user-1", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_AcceptsValidToken(t *testing.T) {
	var subject string
	m := NewMiddleware(testSecret, true, zap.NewNop())
	h := m.Handler(protectedHandler(t, &subject))

	token, err := SignToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", subject)
}

func TestMiddleware_HealthIsExempt(t *testing.T) {
	var subject string
	m := NewMiddleware(testSecret, true, zap.NewNop())
	h := m.Handler(protectedHandler(t, &subject))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_DisabledPassesThrough(t *testing.T) {
	var subject string
	m := NewMiddleware("", false, zap.NewNop())
	h := m.Handler(protectedHandler(t, &subject))

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", subject)
}
