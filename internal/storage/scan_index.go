package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"

	"notegraph/internal/ingest"
)

// ScanIndex answers neighbour queries by scanning the owner's stored
// embeddings. It is meant for small single-user databases and tests.
type ScanIndex struct {
	db *sql.DB
}

// NewScanIndex creates a ScanIndex over the notes table.
func NewScanIndex(db *sql.DB) *ScanIndex {
	return &ScanIndex{db: db}
}

// IndexNote is a no-op: the embedding is already in the note row.
func (s *ScanIndex) IndexNote(context.Context, ingest.Note) error { return nil }

// FindNeighbors returns up to q.Limit notes of q.Owner with cosine
// similarity at or above q.Threshold, most similar first.
func (s *ScanIndex) FindNeighbors(ctx context.Context, q ingest.NeighborQuery) ([]ingest.Neighbor, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, embedding FROM notes WHERE owner = ?", q.Owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []ingest.Neighbor
	for rows.Next() {
		var id, embJSON string
		if err := rows.Scan(&id, &embJSON); err != nil {
			return nil, fmt.Errorf("failed to scan embedding: %w", err)
		}
		vec, err := decodeEmbedding(embJSON)
		if err != nil {
			return nil, err
		}
		if len(vec) != len(q.Vector) {
			continue
		}
		if sim := Cosine(q.Vector, vec); sim >= q.Threshold {
			out = append(out, ingest.Neighbor{ID: id, Similarity: sim})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Cosine returns the cosine similarity of a and b, or 0 if either is a zero vector.
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
