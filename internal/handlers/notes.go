package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"notegraph/internal/contextutil"
	"notegraph/internal/service"
)

// RenameRequest is the body of PATCH /api/notes/{id}.
type RenameRequest struct {
	Title string `json:"title"`
}

// RelatedNoteResponse is a neighbour returned by GET /api/notes/{id}/related.
type RelatedNoteResponse struct {
	Note       NoteResponse `json:"note"`
	Similarity float64      `json:"similarity"`
}

// GraphNodeResponse is a node of GET /api/graph.
type GraphNodeResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Name          string   `json:"name"`
	Tags          []string `json:"tags"`
	LinkingStatus string   `json:"linkingStatus"`
}

// GraphResponse is returned by GET /api/graph.
type GraphResponse struct {
	Nodes []GraphNodeResponse `json:"nodes"`
	Links []EdgeResponse      `json:"links"`
}

// StatsResponse is returned by GET /api/stats.
type StatsResponse struct {
	Notes         int            `json:"notes"`
	Edges         int            `json:"edges"`
	LinkingStatus map[string]int `json:"linkingStatus"`
}

// NotesHandler serves the read and rename endpoints for notes.
type NotesHandler struct {
	notes service.NoteService
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(notes service.NoteService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// List handles GET /api/notes?q=.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notes, err := h.notes.ListNotes(ctx, contextutil.OwnerFromContext(ctx), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to list notes")
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toNoteResponse(n))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /api/notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	note, err := h.notes.GetNote(ctx, contextutil.OwnerFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toNoteResponse(*note))
}

// Rename handles PATCH /api/notes/{id}.
func (h *NotesHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.notes.RenameNote(ctx, contextutil.OwnerFromContext(ctx), chi.URLParam(r, "id"), req.Title)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to rename note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toNoteResponse(*note))
}

// Related handles GET /api/notes/{id}/related.
func (h *NotesHandler) Related(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	related, err := h.notes.RelatedNotes(ctx, contextutil.OwnerFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load related notes")
		return
	}

	resp := make([]RelatedNoteResponse, 0, len(related))
	for _, rel := range related {
		resp = append(resp, RelatedNoteResponse{Note: toNoteResponse(rel.Note), Similarity: rel.Similarity})
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Graph handles GET /api/graph.
func (h *NotesHandler) Graph(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	g, err := h.notes.Graph(ctx, contextutil.OwnerFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load graph")
		return
	}

	resp := GraphResponse{
		Nodes: make([]GraphNodeResponse, 0, len(g.Nodes)),
		Links: make([]EdgeResponse, 0, len(g.Links)),
	}
	for _, n := range g.Nodes {
		tags := n.Tags
		if tags == nil {
			tags = []string{}
		}
		resp.Nodes = append(resp.Nodes, GraphNodeResponse{
			ID:            n.ID,
			Title:         n.Title,
			Name:          n.Label,
			Tags:          tags,
			LinkingStatus: string(n.LinkingStatus),
		})
	}
	for _, l := range g.Links {
		resp.Links = append(resp.Links, EdgeResponse{Source: l.Source, Target: l.Target, Similarity: l.Similarity})
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Stats handles GET /api/stats.
func (h *NotesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.notes.Stats(ctx, contextutil.OwnerFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load stats")
		return
	}

	statuses := make(map[string]int, len(stats.LinkingStatus))
	for status, n := range stats.LinkingStatus {
		statuses[string(status)] = n
	}
	writeJSON(ctx, w, http.StatusOK, StatsResponse{Notes: stats.Notes, Edges: stats.Edges, LinkingStatus: statuses})
}
