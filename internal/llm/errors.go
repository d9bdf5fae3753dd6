package llm

import (
	"fmt"
	"net/http"
)

// StatusError is returned when the model server answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
	// Err is the provider SDK error, when there is one.
	Err error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Temporary reports whether the request is worth repeating: timeouts,
// rate limiting and server-side failures.
func (e *StatusError) Temporary() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout,
		e.StatusCode == http.StatusTooManyRequests,
		e.StatusCode >= 500:
		return true
	default:
		return false
	}
}
