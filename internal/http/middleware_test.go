package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notegraph/internal/contextutil"
)

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggerMiddleware(t *testing.T) {
	buf := captureDefaultLogger(t)

	var capturedCtx context.Context
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedCtx = r.Context()
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	LoggerMiddleware(handler).ServeHTTP(w, req)

	if capturedCtx == nil {
		t.Fatal("LoggerMiddleware() should call next")
	}
	contextutil.LoggerFromContext(capturedCtx).Info("inside")
	if !strings.Contains(buf.String(), "path=/test") {
		t.Errorf("request logger should carry the path, got %q", buf.String())
	}
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		shouldLog  bool
	}{
		{name: "regular request", method: http.MethodPost, path: "/api/notes", statusCode: http.StatusCreated, shouldLog: true},
		{name: "health check skipped", method: http.MethodGet, path: "/api/health", statusCode: http.StatusOK, shouldLog: false},
		{name: "root probe skipped", method: http.MethodGet, path: "/", statusCode: http.StatusOK, shouldLog: false},
		{name: "failing health check logged", method: http.MethodGet, path: "/api/health", statusCode: http.StatusServiceUnavailable, shouldLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureDefaultLogger(t)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			RequestLogger(handler).ServeHTTP(w, req)

			if w.Code != tt.statusCode {
				t.Errorf("RequestLogger() status = %v, want %v", w.Code, tt.statusCode)
			}
			logged := strings.Contains(buf.String(), "request completed")
			if logged != tt.shouldLog {
				t.Errorf("RequestLogger() logged = %v, want %v", logged, tt.shouldLog)
			}
		})
	}
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusNotFound)

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("responseWriter.WriteHeader() statusCode = %v, want %v", rw.statusCode, http.StatusNotFound)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("responseWriter.WriteHeader() underlying status = %v, want %v", w.Code, http.StatusNotFound)
	}
}

func TestCORS(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := CORS(handler)

	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatusCode int
		wantOrigin     string
	}{
		{name: "preflight OPTIONS", method: http.MethodOptions, origin: "http://localhost:3000", wantStatusCode: http.StatusNoContent, wantOrigin: "http://localhost:3000"},
		{name: "request with origin", method: http.MethodPost, origin: "http://localhost:3000", wantStatusCode: http.StatusOK, wantOrigin: "http://localhost:3000"},
		{name: "request without origin", method: http.MethodPost, wantStatusCode: http.StatusOK, wantOrigin: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			middleware.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Errorf("CORS() status = %v, want %v", w.Code, tt.wantStatusCode)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("CORS() origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestCORS_Headers(t *testing.T) {
	middleware := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	headers := map[string]string{
		"Access-Control-Allow-Methods": "GET, POST, PATCH, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization, X-User-ID",
		"Access-Control-Max-Age":       "3600",
	}
	for header, wantValue := range headers {
		if got := w.Header().Get(header); got != wantValue {
			t.Errorf("CORS() header %s = %v, want %v", header, got, wantValue)
		}
	}
}

func TestRequireOwner(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
		wantOwner  string
	}{
		{name: "header", header: "alice", wantStatus: http.StatusOK, wantOwner: "alice"},
		{name: "query parameter", query: "?user=bob", wantStatus: http.StatusOK, wantOwner: "bob"},
		{name: "header wins", header: "alice", query: "?user=bob", wantStatus: http.StatusOK, wantOwner: "alice"},
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "blank header", header: "  ", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var owner string
			handler := RequireOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				owner = contextutil.OwnerFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/notes"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(OwnerHeader, tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("RequireOwner() status = %d, want %d", w.Code, tt.wantStatus)
			}
			if owner != tt.wantOwner {
				t.Errorf("owner = %q, want %q", owner, tt.wantOwner)
			}
		})
	}
}
