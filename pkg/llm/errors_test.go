package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds_AreDistinguishable(t *testing.T) {
	envelope := &Error{Kind: ErrorKindEnvelope, Message: "no choices"}
	status := &Error{Kind: ErrorKindStatus, StatusCode: 503}
	server := &Error{Kind: ErrorKindServer, StatusCode: 429, Message: "rate limited"}
	timeout := NewTimeoutError(12 * time.Second)

	assert.Equal(t, ErrorKindEnvelope, KindOf(envelope))
	assert.Equal(t, ErrorKindStatus, KindOf(status))
	assert.Equal(t, ErrorKindServer, KindOf(server))
	assert.Equal(t, ErrorKindTimeout, KindOf(timeout))

	assert.True(t, IsTimeout(timeout))
	assert.False(t, IsTimeout(server))
}

func TestErrorKinds_SurviveWrapping(t *testing.T) {
	inner := &Error{Kind: ErrorKindServer, StatusCode: 500, Message: "upstream exploded"}
	wrapped := fmt.Errorf("summarize entry: %w", inner)

	assert.Equal(t, ErrorKindServer, KindOf(wrapped))
}

func TestErrNotConfigured_DistinctFromTransport(t *testing.T) {
	assert.True(t, IsNotConfigured(ErrNotConfigured))
	assert.True(t, IsNotConfigured(fmt.Errorf("prep briefing: %w", ErrNotConfigured)))

	assert.False(t, IsNotConfigured(&Error{Kind: ErrorKindStatus, StatusCode: 401}))
	assert.Equal(t, ErrorKind(""), KindOf(ErrNotConfigured))
}

func TestError_MessageIncludesStatusCode(t *testing.T) {
	err := &Error{Kind: ErrorKindStatus, StatusCode: 502}
	assert.Contains(t, err.Error(), "502")

	withMsg := &Error{Kind: ErrorKindServer, StatusCode: 400, Message: "model not found"}
	assert.Contains(t, withMsg.Error(), "model not found")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &Error{Kind: ErrorKindStatus, Cause: cause}
	assert.ErrorIs(t, err, cause)
}

func TestWrapContextErr(t *testing.T) {
	if wrapped, ok := wrapContextErr(context.DeadlineExceeded); assert.True(t, ok) {
		assert.Equal(t, ErrorKindTimeout, wrapped.Kind)
	}
	if wrapped, ok := wrapContextErr(context.Canceled); assert.True(t, ok) {
		assert.Equal(t, ErrorKindTimeout, wrapped.Kind)
	}
	_, ok := wrapContextErr(errors.New("other"))
	assert.False(t, ok)
}
