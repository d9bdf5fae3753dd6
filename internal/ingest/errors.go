package ingest

import (
	"errors"
	"fmt"
)

// Kind is a stable error category surfaced to callers.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindModelService      Kind = "model_service"
	KindMalformedResponse Kind = "malformed_model_response"
	KindPersistence       Kind = "persistence"
	KindLinking           Kind = "linking"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrModelService      = &Error{Kind: KindModelService}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrPersistence       = &Error{Kind: KindPersistence}
	ErrLinking           = &Error{Kind: KindLinking}
)

// rawExcerptLen bounds the model output kept on malformed response errors.
const rawExcerptLen = 200

// Error is the pipeline error type. Every error returned by this package
// either is an *Error or wraps one.
type Error struct {
	Kind   Kind
	Op     string // e.g. "vision", "text", "embed", "insert_note"
	Detail string
	// Raw holds an excerpt of the model output for malformed responses.
	Raw string
	// Transient marks failures worth one retry (timeouts, 429, 5xx).
	Transient bool
	Err       error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg += " (" + e.Op + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsTransient reports whether err carries a retryable *Error.
func IsTransient(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Transient
}

// FailedError is the terminal Failed(stage, cause) state of the coordinator.
type FailedError struct {
	Stage Stage
	Err   error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("ingestion failed at %s: %v", e.Stage, e.Err)
}

func (e *FailedError) Unwrap() error { return e.Err }

// StageOf returns the failing stage of err, if it is a *FailedError.
func StageOf(err error) (Stage, bool) {
	var f *FailedError
	if errors.As(err, &f) {
		return f.Stage, true
	}
	return "", false
}

func invalidInput(detail string) error {
	return &Error{Kind: KindInvalidInput, Detail: detail}
}

func malformed(op, detail, raw string, err error) error {
	return &Error{Kind: KindMalformedResponse, Op: op, Detail: detail, Raw: excerpt(raw), Err: err}
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= rawExcerptLen {
		return s
	}
	return string(r[:rawExcerptLen]) + "..."
}
