package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"notegraph/internal/handlers"
	"notegraph/internal/ingest"
	"notegraph/internal/service/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockNoteService(ctrl)
	svc.EXPECT().ListNotes(gomock.Any(), "alice", "").Return([]ingest.Note{}, nil).AnyTimes()
	svc.EXPECT().Stats(gomock.Any(), "alice").Return(nil, errors.New("db closed")).AnyTimes()

	router := NewRouter(&Deps{
		Notes: svc,
		HealthChecks: map[string]handlers.HealthCheck{
			"database": func(context.Context) error { return nil },
		},
		Blobs: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.URL.Path))
		}),
	})

	tests := []struct {
		name       string
		method     string
		path       string
		owner      string
		body       string
		wantStatus int
	}{
		{name: "root", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "list notes", method: http.MethodGet, path: "/api/notes", owner: "alice", wantStatus: http.StatusOK},
		{name: "list notes without owner", method: http.MethodGet, path: "/api/notes", wantStatus: http.StatusUnauthorized},
		{name: "ingest without owner", method: http.MethodPost, path: "/api/notes", body: `{"textContent":"x"}`, wantStatus: http.StatusUnauthorized},
		{name: "analyze invalid body", method: http.MethodPost, path: "/api/analyze", body: "{", wantStatus: http.StatusBadRequest},
		{name: "analyze method not allowed", method: http.MethodGet, path: "/api/analyze", wantStatus: http.StatusMethodNotAllowed},
		{name: "stats error", method: http.MethodGet, path: "/api/stats", owner: "alice", wantStatus: http.StatusInternalServerError},
		{name: "note page without owner", method: http.MethodGet, path: "/notes/n1", wantStatus: http.StatusUnauthorized},
		{name: "blobs", method: http.MethodGet, path: "/blobs/alice/x.jpg", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.owner != "" {
				req.Header.Set(OwnerHeader, tt.owner)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_NoBlobRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := NewRouter(&Deps{Notes: mocks.NewMockNoteService(ctrl)})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blobs/alice/x.jpg", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
