package ingest

import (
	"context"
	"errors"
	"net"
	"time"

	"notegraph/internal/contextutil"
)

// maxAttempts is one call plus a single bounded retry.
const maxAttempts = 2

// temporary is implemented by model client errors that know they are retryable.
type temporary interface {
	Temporary() bool
}

// modelServiceError wraps a model client failure, classifying transience.
func modelServiceError(op string, err error) error {
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Kind: KindModelService, Op: op, Err: err, Transient: isTransientCause(err)}
}

func isTransientCause(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t temporary
	if errors.As(err, &t) && t.Temporary() {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// retryable decides whether the single retry is spent on err.
func retryable(err error) bool {
	switch KindOf(err) {
	case KindMalformedResponse:
		return true
	case KindModelService:
		return IsTransient(err)
	default:
		return false
	}
}

// withRetry runs op and, if the failure is retryable and ctx is still alive,
// runs it exactly once more after delay.
func withRetry[T any](ctx context.Context, delay time.Duration, name string, op func(context.Context) (T, error)) (T, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var zero T
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			if attempt > 1 {
				logger.InfoContext(ctx, "model call succeeded after retry", "call", name)
			}
			return v, nil
		}
		lastErr = err

		if attempt == maxAttempts || !retryable(err) || ctx.Err() != nil {
			break
		}

		logger.WarnContext(ctx, "model call failed, retrying once", "call", name, "kind", KindOf(err), "error", err)

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, lastErr
			case <-timer.C:
			}
		}
	}
	return zero, lastErr
}
