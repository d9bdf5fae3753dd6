package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks notegraph/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult is a scored point ID.
type SearchResult struct {
	PointID string
	Score   float32
}

// SearchRequest describes a similarity search.
type SearchRequest struct {
	Query []float32
	K     int
	// ScoreThreshold drops results scoring below it. Nil keeps everything.
	ScoreThreshold *float32
	// Filters are exact-match payload conditions, all of which must hold.
	Filters map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search, best match first.
	Search(ctx context.Context, collection string, req SearchRequest) ([]SearchResult, error)
}
