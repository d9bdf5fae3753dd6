package ingest

import (
	"context"

	"notegraph/internal/contextutil"
)

const (
	DefaultMaxResults = 5
	DefaultThreshold  = 0.7
)

// LinkResult is the outcome of a linking attempt.
type LinkResult struct {
	// Edges holds the edges that were derived. When Status is partial not all
	// of them were written; when it is failed none were and Edges is empty.
	Edges  []Edge
	Status LinkingStatus
}

// Linker derives edges from a new note to its nearest existing neighbours.
// Similarity is cosine similarity in [-1, 1].
type Linker struct {
	index      VectorIndex
	edges      EdgeStore
	maxResults int
	threshold  float64
}

// NewLinker creates a linker. Non-positive maxResults falls back to
// DefaultMaxResults.
func NewLinker(index VectorIndex, edges EdgeStore, maxResults int, threshold float64) *Linker {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Linker{index: index, edges: edges, maxResults: maxResults, threshold: threshold}
}

// Link queries neighbours of note within its owner and writes one edge per
// qualifying candidate. The returned error, when non-nil, is a linking error
// and Status tells how much of the work landed. A failed status carries no
// edges.
func (l *Linker) Link(ctx context.Context, note Note) (LinkResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	// The note is already indexed and comes back as its own best match, so
	// one extra slot keeps K edges reachable.
	candidates, err := l.index.FindNeighbors(ctx, NeighborQuery{
		Vector:    note.Embedding,
		Threshold: l.threshold,
		Limit:     l.maxResults + 1,
		Owner:     note.Owner,
	})
	if err != nil {
		return LinkResult{Status: LinkingFailed}, &Error{Kind: KindLinking, Op: "find_neighbors", Err: err}
	}

	edges := l.edgesFor(note, candidates)
	if len(edges) == 0 {
		logger.DebugContext(ctx, "no related notes", "note_id", note.ID, "candidates", len(candidates))
		return LinkResult{Edges: []Edge{}, Status: LinkingLinked}, nil
	}

	written, err := l.edges.InsertEdges(ctx, edges)
	if err != nil {
		logger.WarnContext(ctx, "edge batch incomplete", "note_id", note.ID, "written", written, "total", len(edges), "error", err)
		linkErr := &Error{Kind: KindLinking, Op: "insert_edges", Err: err}
		if written == 0 {
			return LinkResult{Edges: []Edge{}, Status: LinkingFailed}, linkErr
		}
		return LinkResult{Edges: edges, Status: LinkingPartial}, linkErr
	}

	logger.DebugContext(ctx, "linked note", "note_id", note.ID, "edges", written)
	return LinkResult{Edges: edges, Status: LinkingLinked}, nil
}

func (l *Linker) edgesFor(note Note, candidates []Neighbor) []Edge {
	seen := make(map[string]struct{}, len(candidates))
	edges := make([]Edge, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == "" || c.ID == note.ID {
			continue
		}
		if c.Similarity < l.threshold {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		edges = append(edges, Edge{
			Owner:        note.Owner,
			SourceNoteID: note.ID,
			TargetNoteID: c.ID,
			Similarity:   c.Similarity,
		})
		if len(edges) == l.maxResults {
			break
		}
	}
	return edges
}
