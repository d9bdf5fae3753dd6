package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"notegraph/internal/contextutil"
	"notegraph/internal/service"
)

// NotePageHandler renders a note's transcription as an HTML page.
type NotePageHandler struct {
	notes    service.NoteService
	markdown goldmark.Markdown
	template *template.Template
}

// notePageData holds template data for rendered note pages.
type notePageData struct {
	Title     string
	Summary   string
	Tags      []string
	ImageURL  string
	Status    string
	CreatedAt string
	Content   template.HTML
}

var notePageTemplate = template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    :root { color-scheme: dark; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 860px;
      line-height: 1.6;
      background: #07090f;
      color: #d8e6ff;
    }
    h1 { margin: 0 0 0.5rem; color: #7df9ff; }
    .summary { color: #9fb3d9; font-style: italic; }
    .meta { color: #6b7a99; font-size: 0.9rem; }
    .tag {
      display: inline-block;
      margin-right: 0.4rem;
      padding: 1px 8px;
      border: 1px solid #2d5bff;
      border-radius: 999px;
      font-size: 0.8rem;
    }
    img { max-width: 100%; border-radius: 8px; margin: 1rem 0; }
    article {
      border: 1px solid rgba(125, 249, 255, 0.2);
      border-radius: 12px;
      padding: 1.5rem;
      background: rgba(13, 20, 36, 0.9);
    }
    pre { background: #0b1222; padding: 1rem; overflow-x: auto; border-radius: 8px; }
    a { color: #7df9ff; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="summary">{{.Summary}}</p>
    <p class="meta">{{.CreatedAt}} &middot; linking {{.Status}}</p>
    <p>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</p>
  </header>
  {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
  <article>{{.Content}}</article>
</body>
</html>`))

// NewNotePageHandler creates a new NotePageHandler.
func NewNotePageHandler(notes service.NoteService) *NotePageHandler {
	return &NotePageHandler{
		notes: notes,
		// Raw HTML in transcriptions is escaped; model output is untrusted.
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: notePageTemplate,
	}
}

// ServeHTTP renders GET /notes/{id}.
func (h *NotePageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		http.Error(w, "note id is required", http.StatusBadRequest)
		return
	}

	note, err := h.notes.GetNote(ctx, contextutil.OwnerFromContext(ctx), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			http.Error(w, "note not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			logger.ErrorContext(ctx, "failed to load note", "note_id", id, "error", err)
			http.Error(w, "failed to load note", http.StatusInternalServerError)
		}
		return
	}

	content, err := h.render([]byte(note.Transcription))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "note_id", id, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}

	data := notePageData{
		Title:     note.Title,
		Summary:   note.Summary,
		Tags:      note.Tags,
		ImageURL:  note.ImageURL,
		Status:    string(note.LinkingStatus),
		CreatedAt: note.CreatedAt.Format("2006-01-02 15:04"),
		Content:   template.HTML(content),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, data); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "note_id", id, "error", err)
	}
}

func (h *NotePageHandler) render(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
