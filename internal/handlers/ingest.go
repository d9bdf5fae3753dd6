package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"notegraph/internal/contextutil"
	"notegraph/internal/ingest"
	"notegraph/internal/service"
)

// DefaultMaxUploadBytes bounds request bodies when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// IngestRequest is the JSON body of POST /api/analyze and POST /api/notes.
// ImageBase64 may be raw base64 or a data URI.
type IngestRequest struct {
	ImageBase64 string `json:"imageBase64,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
	TextContent string `json:"textContent,omitempty"`
	ImageName   string `json:"imageName,omitempty"`
}

// AnalyzeResponse is the preview returned by POST /api/analyze.
type AnalyzeResponse struct {
	Title         string    `json:"title"`
	Transcription string    `json:"transcription"`
	Summary       string    `json:"summary"`
	Tags          []string  `json:"tags"`
	Embedding     []float32 `json:"embedding"`
}

// NoteResponse is a note as returned by the API.
type NoteResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Transcription string    `json:"transcription"`
	Summary       string    `json:"summary"`
	Tags          []string  `json:"tags"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	LinkingStatus string    `json:"linkingStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// EdgeResponse is an edge as returned by the API.
type EdgeResponse struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Similarity float64 `json:"similarity"`
}

// IngestResponse is returned by POST /api/notes.
type IngestResponse struct {
	Note        NoteResponse   `json:"note"`
	Embedding   []float32      `json:"embedding"`
	Edges       []EdgeResponse `json:"edges"`
	LinkWarning string         `json:"linkWarning,omitempty"`
}

// IngestHandler handles note ingestion and analysis previews.
type IngestHandler struct {
	notes          service.NoteService
	maxUploadBytes int64
	persist        bool
}

// NewIngestHandler creates the handler for POST /api/notes.
func NewIngestHandler(notes service.NoteService, maxUploadBytes int64) *IngestHandler {
	return newIngestHandler(notes, maxUploadBytes, true)
}

// NewAnalyzeHandler creates the handler for POST /api/analyze. Nothing is persisted.
func NewAnalyzeHandler(notes service.NoteService, maxUploadBytes int64) *IngestHandler {
	return newIngestHandler(notes, maxUploadBytes, false)
}

func newIngestHandler(notes service.NoteService, maxUploadBytes int64, persist bool) *IngestHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &IngestHandler{notes: notes, maxUploadBytes: maxUploadBytes, persist: persist}
}

// ServeHTTP decodes a JSON or multipart body and runs the pipeline.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	req, err := h.decode(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(ctx, w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error:   "Request body too large",
				Details: fmt.Sprintf("limit is %d bytes", h.maxUploadBytes),
			})
			return
		}
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
			Kind:    string(ingest.KindInvalidInput),
		})
		return
	}

	if !h.persist {
		preview, err := h.notes.Analyze(ctx, req)
		if err != nil {
			writeServiceError(ctx, w, err, "Failed to analyze note")
			return
		}
		writeJSON(ctx, w, http.StatusOK, AnalyzeResponse{
			Title:         preview.Analysis.Title,
			Transcription: preview.Analysis.Transcription,
			Summary:       preview.Analysis.Summary,
			Tags:          preview.Analysis.Tags,
			Embedding:     preview.Embedding,
		})
		return
	}

	owner := contextutil.OwnerFromContext(ctx)
	res, err := h.notes.Ingest(ctx, owner, req)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to save note")
		return
	}

	resp := IngestResponse{
		Note:      toNoteResponse(res.Note),
		Embedding: res.Note.Embedding,
		Edges:     toEdgeResponses(res.Edges),
	}
	if res.LinkWarning != nil {
		resp.LinkWarning = res.LinkWarning.Error()
	}
	writeJSON(ctx, w, http.StatusCreated, resp)
}

func (h *IngestHandler) decode(r *http.Request) (ingest.Request, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return h.decodeMultipart(r)
	}

	var body IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return ingest.Request{}, err
	}

	req := ingest.Request{
		MimeType:    body.MimeType,
		TextContent: body.TextContent,
		ImageName:   body.ImageName,
	}
	if body.ImageBase64 != "" {
		data, mimeType, err := decodeImage(body.ImageBase64)
		if err != nil {
			return ingest.Request{}, err
		}
		req.ImageBytes = data
		if req.MimeType == "" {
			req.MimeType = mimeType
		}
	}
	return req, nil
}

func (h *IngestHandler) decodeMultipart(r *http.Request) (ingest.Request, error) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return ingest.Request{}, err
	}

	req := ingest.Request{
		TextContent: r.FormValue("textContent"),
		MimeType:    r.FormValue("mimeType"),
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return ingest.Request{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ingest.Request{}, err
	}
	req.ImageBytes = data
	req.ImageName = header.Filename
	if req.MimeType == "" {
		req.MimeType = header.Header.Get("Content-Type")
	}
	return req, nil
}

// decodeImage accepts raw base64 or a "data:<mime>;base64,<data>" URI.
func decodeImage(s string) ([]byte, string, error) {
	var mimeType string
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return nil, "", errors.New("imageBase64: unsupported data URI")
		}
		mimeType = strings.TrimSuffix(meta, ";base64")
		s = payload
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, "", fmt.Errorf("imageBase64: %w", err)
	}
	return data, mimeType, nil
}

func toNoteResponse(n ingest.Note) NoteResponse {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return NoteResponse{
		ID:            n.ID,
		Title:         n.Title,
		Transcription: n.Transcription,
		Summary:       n.Summary,
		Tags:          tags,
		ImageURL:      n.ImageURL,
		LinkingStatus: string(n.LinkingStatus),
		CreatedAt:     n.CreatedAt,
	}
}

func toEdgeResponses(edges []ingest.Edge) []EdgeResponse {
	out := make([]EdgeResponse, 0, len(edges))
	for _, e := range edges {
		out = append(out, EdgeResponse{Source: e.SourceNoteID, Target: e.TargetNoteID, Similarity: e.Similarity})
	}
	return out
}
