package llm

import (
	"context"
	"time"
)

// Race runs fn against a timer and returns whichever finishes first.
// The loser is cancelled through its context the moment the winner is
// known; its work is abandoned, not awaited. Every AI-backed operation
// goes through Race so the caller is never blocked past the timeout.
//
// When the timer wins, the typed timeout failure is returned within
// [timeout, timeout+epsilon]. When the parent context is cancelled the
// cancellation is surfaced as a timeout-kind failure as well.
func Race[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so the losing goroutine can deliver and exit without a
	// receiver, leaving no lingering work behind.
	done := make(chan outcome, 1)
	go func() {
		value, err := fn(runCtx)
		done <- outcome{value: value, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		return out.value, out.err
	case <-timer.C:
		cancel()
		return zero, NewTimeoutError(timeout)
	case <-ctx.Done():
		cancel()
		return zero, &Error{Kind: ErrorKindTimeout, Message: "cancelled by caller", Cause: ctx.Err()}
	}
}
