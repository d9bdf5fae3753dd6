package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notegraph/internal/handlers"
	"notegraph/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Notes          service.NoteService
	HealthChecks   map[string]handlers.HealthCheck
	Blobs          http.Handler // serves /blobs/*; nil disables the route
	MaxUploadBytes int64
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	notesHandler := handlers.NewNotesHandler(deps.Notes)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.HealthChecks))
		r.Method(http.MethodPost, "/analyze", handlers.NewAnalyzeHandler(deps.Notes, deps.MaxUploadBytes))

		r.Group(func(r chi.Router) {
			r.Use(RequireOwner)
			r.Method(http.MethodPost, "/notes", handlers.NewIngestHandler(deps.Notes, deps.MaxUploadBytes))
			r.Get("/notes", notesHandler.List)
			r.Get("/notes/{id}", notesHandler.Get)
			r.Patch("/notes/{id}", notesHandler.Rename)
			r.Get("/notes/{id}/related", notesHandler.Related)
			r.Get("/graph", notesHandler.Graph)
			r.Get("/stats", notesHandler.Stats)
		})
	})

	r.With(RequireOwner).Method(http.MethodGet, "/notes/{id}", handlers.NewNotePageHandler(deps.Notes))

	if deps.Blobs != nil {
		r.Method(http.MethodGet, "/blobs/*", deps.Blobs)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
