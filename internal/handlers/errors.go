package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"notegraph/internal/contextutil"
	"notegraph/internal/ingest"
	"notegraph/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Stage   string `json:"stage,omitempty"`
}

// writeJSON writes v with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeServiceError maps service and pipeline errors to status codes and responses.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	resp := ErrorResponse{Error: defaultMsg, Details: err.Error()}
	status := http.StatusInternalServerError

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		resp.Error = "Validation error"
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		resp.Error = "Note not found"
		resp.Details = ""
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		resp.Error = "Forbidden"
		resp.Details = ""
	default:
		if kind := ingest.KindOf(err); kind != "" {
			resp.Kind = string(kind)
			status = statusForKind(kind, ingest.IsTransient(err))
		}
		if stage, ok := ingest.StageOf(err); ok {
			resp.Stage = string(stage)
		}
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed", "status", status, "kind", resp.Kind, "stage", resp.Stage, "error", err)
	} else {
		logger.WarnContext(ctx, "request rejected", "status", status, "kind", resp.Kind, "error", err)
	}

	writeJSON(ctx, w, status, resp)
}

func statusForKind(kind ingest.Kind, transient bool) int {
	switch kind {
	case ingest.KindInvalidInput:
		return http.StatusBadRequest
	case ingest.KindMalformedResponse:
		return http.StatusBadGateway
	case ingest.KindModelService:
		if transient {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
