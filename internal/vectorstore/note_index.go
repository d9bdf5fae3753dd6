package vectorstore

import (
	"context"
	"fmt"
	"time"

	"notegraph/internal/ingest"
)

// Payload fields stored on every note point.
const (
	OwnerField     = "owner"
	TitleField     = "title"
	CreatedAtField = "created_at"
)

// NoteIndex adapts a VectorStore collection to ingest.VectorIndex.
// Point IDs are note IDs, which are UUIDs.
type NoteIndex struct {
	store      VectorStore
	collection string
}

// NewNoteIndex creates a NoteIndex over collection.
func NewNoteIndex(store VectorStore, collection string) *NoteIndex {
	return &NoteIndex{store: store, collection: collection}
}

// IndexNote upserts the note's embedding with its owner in the payload.
func (n *NoteIndex) IndexNote(ctx context.Context, note ingest.Note) error {
	if note.ID == "" {
		return fmt.Errorf("note has no id")
	}
	return n.store.Upsert(ctx, n.collection, []Point{{
		ID:  note.ID,
		Vec: note.Embedding,
		Meta: map[string]any{
			OwnerField:     note.Owner,
			TitleField:     note.Title,
			CreatedAtField: note.CreatedAt.UTC().Format(time.RFC3339),
		},
	}})
}

// FindNeighbors searches the owner's points above the similarity threshold.
// Qdrant cosine scores are cosine similarity in [-1, 1].
func (n *NoteIndex) FindNeighbors(ctx context.Context, q ingest.NeighborQuery) ([]ingest.Neighbor, error) {
	threshold := float32(q.Threshold)
	results, err := n.store.Search(ctx, n.collection, SearchRequest{
		Query:          q.Vector,
		K:              q.Limit,
		ScoreThreshold: &threshold,
		Filters:        map[string]any{OwnerField: q.Owner},
	})
	if err != nil {
		return nil, err
	}

	neighbors := make([]ingest.Neighbor, 0, len(results))
	for _, r := range results {
		neighbors = append(neighbors, ingest.Neighbor{ID: r.PointID, Similarity: float64(r.Score)})
	}
	return neighbors, nil
}
