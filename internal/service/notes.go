package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_repositories.go -package=mocks notegraph/internal/service NoteRepository,EdgeRepository,Pipeline
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_service.go -package=mocks notegraph/internal/service NoteService

import (
	"context"
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"notegraph/internal/contextutil"
	"notegraph/internal/ingest"
	"notegraph/internal/storage"
)

// graphLabelRunes is how much of a summary a graph node shows.
const graphLabelRunes = 20

// NoteRepository is the read side of the note store.
type NoteRepository interface {
	GetNote(ctx context.Context, id string) (*ingest.Note, error)
	ListNotes(ctx context.Context, owner string) ([]ingest.Note, error)
	UpdateTitle(ctx context.Context, id, title string) error
	CountNotes(ctx context.Context, owner string) (int, error)
	CountByLinkingStatus(ctx context.Context, owner string) (map[ingest.LinkingStatus]int, error)
}

// EdgeRepository is the read side of the edge store.
type EdgeRepository interface {
	ListEdges(ctx context.Context, owner string) ([]ingest.Edge, error)
	ListEdgesFrom(ctx context.Context, noteID string) ([]ingest.Edge, error)
	CountEdges(ctx context.Context, owner string) (int, error)
}

// Pipeline runs note ingestion. *ingest.Coordinator implements it.
type Pipeline interface {
	Ingest(ctx context.Context, owner string, req ingest.Request) (*ingest.Result, error)
	Analyze(ctx context.Context, req ingest.Request) (*ingest.Preview, error)
}

// RelatedNote is a neighbour of a note in the graph.
type RelatedNote struct {
	Note       ingest.Note
	Similarity float64
}

// GraphNode is a note as drawn in the graph view.
type GraphNode struct {
	ID            string
	Title         string
	Label         string
	Tags          []string
	LinkingStatus ingest.LinkingStatus
}

// GraphLink is an edge as drawn in the graph view.
type GraphLink struct {
	Source     string
	Target     string
	Similarity float64
}

// Graph is an owner's whole knowledge graph.
type Graph struct {
	Nodes []GraphNode
	Links []GraphLink
}

// Stats summarizes an owner's notes.
type Stats struct {
	Notes         int
	Edges         int
	LinkingStatus map[ingest.LinkingStatus]int
}

// NoteService is what the HTTP layer needs from the domain.
type NoteService interface {
	// Ingest runs the full pipeline and persists a note.
	Ingest(ctx context.Context, owner string, req ingest.Request) (*ingest.Result, error)
	// Analyze runs analysis and embedding without persisting.
	Analyze(ctx context.Context, req ingest.Request) (*ingest.Preview, error)
	// ListNotes returns the owner's notes, newest first, or best title match
	// first when query is set.
	ListNotes(ctx context.Context, owner, query string) ([]ingest.Note, error)
	GetNote(ctx context.Context, owner, id string) (*ingest.Note, error)
	RenameNote(ctx context.Context, owner, id, title string) (*ingest.Note, error)
	// RelatedNotes returns the notes linked to id in either direction, most similar first.
	RelatedNotes(ctx context.Context, owner, id string) ([]RelatedNote, error)
	Graph(ctx context.Context, owner string) (*Graph, error)
	Stats(ctx context.Context, owner string) (*Stats, error)
}

type noteService struct {
	pipeline Pipeline
	notes    NoteRepository
	edges    EdgeRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(pipeline Pipeline, notes NoteRepository, edges EdgeRepository) NoteService {
	return &noteService{pipeline: pipeline, notes: notes, edges: edges}
}

func (s *noteService) Ingest(ctx context.Context, owner string, req ingest.Request) (*ingest.Result, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, &ValidationError{Field: "owner", Message: "is required"}
	}
	res, err := s.pipeline.Ingest(ctx, owner, req)
	if err != nil {
		return nil, err
	}
	if res.LinkWarning != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "note saved with incomplete links",
			"note_id", res.Note.ID, "linking_status", res.Note.LinkingStatus, "error", res.LinkWarning)
	}
	return res, nil
}

func (s *noteService) Analyze(ctx context.Context, req ingest.Request) (*ingest.Preview, error) {
	return s.pipeline.Analyze(ctx, req)
}

// noteTitles adapts notes to fuzzy.Source.
type noteTitles []ingest.Note

func (n noteTitles) String(i int) string { return n[i].Title }
func (n noteTitles) Len() int            { return len(n) }

func (s *noteService) ListNotes(ctx context.Context, owner, query string) ([]ingest.Note, error) {
	notes, err := s.notes.ListNotes(ctx, owner)
	if err != nil {
		return nil, WrapError(err, "failed to list notes")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return notes, nil
	}

	matches := fuzzy.FindFrom(query, noteTitles(notes))
	filtered := make([]ingest.Note, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, notes[m.Index])
	}
	return filtered, nil
}

func (s *noteService) GetNote(ctx context.Context, owner, id string) (*ingest.Note, error) {
	note, err := s.notes.GetNote(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to load note")
	}
	if note.Owner != owner {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "note requested by another owner", "note_id", id)
		return nil, ErrForbidden
	}
	return note, nil
}

func (s *noteService) RenameNote(ctx context.Context, owner, id, title string) (*ingest.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "cannot be empty"}
	}

	note, err := s.GetNote(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := s.notes.UpdateTitle(ctx, id, title); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, WrapError(err, "failed to rename note")
	}
	note.Title = title
	return note, nil
}

func (s *noteService) RelatedNotes(ctx context.Context, owner, id string) ([]RelatedNote, error) {
	if _, err := s.GetNote(ctx, owner, id); err != nil {
		return nil, err
	}

	outgoing, err := s.edges.ListEdgesFrom(ctx, id)
	if err != nil {
		return nil, WrapError(err, "failed to list edges")
	}
	all, err := s.edges.ListEdges(ctx, owner)
	if err != nil {
		return nil, WrapError(err, "failed to list edges")
	}
	notes, err := s.notes.ListNotes(ctx, owner)
	if err != nil {
		return nil, WrapError(err, "failed to list notes")
	}

	byID := make(map[string]ingest.Note, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
	}

	best := map[string]float64{}
	add := func(other string, sim float64) {
		if prev, ok := best[other]; !ok || sim > prev {
			best[other] = sim
		}
	}
	for _, e := range outgoing {
		add(e.TargetNoteID, e.Similarity)
	}
	for _, e := range all {
		if e.TargetNoteID == id {
			add(e.SourceNoteID, e.Similarity)
		}
	}

	related := make([]RelatedNote, 0, len(best))
	for otherID, sim := range best {
		n, ok := byID[otherID]
		if !ok {
			continue
		}
		related = append(related, RelatedNote{Note: n, Similarity: sim})
	}
	sort.Slice(related, func(i, j int) bool {
		if related[i].Similarity != related[j].Similarity {
			return related[i].Similarity > related[j].Similarity
		}
		return related[i].Note.ID < related[j].Note.ID
	})
	return related, nil
}

func (s *noteService) Graph(ctx context.Context, owner string) (*Graph, error) {
	notes, err := s.notes.ListNotes(ctx, owner)
	if err != nil {
		return nil, WrapError(err, "failed to list notes")
	}
	edges, err := s.edges.ListEdges(ctx, owner)
	if err != nil {
		return nil, WrapError(err, "failed to list edges")
	}

	g := &Graph{
		Nodes: make([]GraphNode, 0, len(notes)),
		Links: make([]GraphLink, 0, len(edges)),
	}
	for _, n := range notes {
		g.Nodes = append(g.Nodes, GraphNode{
			ID:            n.ID,
			Title:         n.Title,
			Label:         graphLabel(n.Summary),
			Tags:          n.Tags,
			LinkingStatus: n.LinkingStatus,
		})
	}
	for _, e := range edges {
		g.Links = append(g.Links, GraphLink{Source: e.SourceNoteID, Target: e.TargetNoteID, Similarity: e.Similarity})
	}
	return g, nil
}

func (s *noteService) Stats(ctx context.Context, owner string) (*Stats, error) {
	notes, err := s.notes.CountNotes(ctx, owner)
	if err != nil {
		return nil, WrapError(err, "failed to count notes")
	}
	edges, err := s.edges.CountEdges(ctx, owner)
	if err != nil {
		return nil, WrapError(err, "failed to count edges")
	}
	statuses, err := s.notes.CountByLinkingStatus(ctx, owner)
	if err != nil {
		return nil, WrapError(err, "failed to count linking status")
	}
	return &Stats{Notes: notes, Edges: edges, LinkingStatus: statuses}, nil
}

func graphLabel(summary string) string {
	if utf8.RuneCountInString(summary) > graphLabelRunes {
		summary = string([]rune(summary)[:graphLabelRunes])
	}
	return summary + "..."
}
