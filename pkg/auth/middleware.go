// Package auth provides bearer token authentication for the API.
// Tokens are HMAC-signed JWTs; the subject identifies the journal
// owner and is injected into the request context.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const subjectKey contextKey = "auth_subject"

// exemptPaths are reachable without a token. Health probes cannot
// carry credentials.
var exemptPaths = map[string]bool{
	"/health": true,
	"/ping":   true,
}

// Middleware validates bearer tokens on every request.
type Middleware struct {
	secret  []byte
	enabled bool
	logger  *zap.Logger
}

// NewMiddleware creates the auth middleware. With enabled false every
// request passes through; that mode is for local development only.
func NewMiddleware(secret string, enabled bool, logger *zap.Logger) *Middleware {
	return &Middleware{
		secret:  []byte(secret),
		enabled: enabled,
		logger:  logger.Named("auth"),
	}
}

// Handler wraps next with token validation.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled || exemptPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			unauthorized(w, "missing bearer token")
			return
		}

		subject, err := m.validate(token)
		if err != nil {
			m.logger.Debug("token rejected", zap.Error(err))
			unauthorized(w, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validate parses and verifies the token, returning its subject.
func (m *Middleware) validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	return token.Claims.GetSubject()
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error": "unauthorized", "message": "` + message + `"}`))
}

// SubjectFromContext returns the authenticated subject, or "" when the
// request was not authenticated.
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey).(string)
	return subject
}

// SignToken creates a signed token for the given subject. Used by the
// CLI tooling and tests; the service itself only verifies.
func SignToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
