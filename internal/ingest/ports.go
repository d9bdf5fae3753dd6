package ingest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ports.go -package=mocks notegraph/internal/ingest VisionModel,TextModel,Embedder,NoteStore,VectorIndex,EdgeStore,BlobStore

import "context"

// VisionModel is a multimodal model that reads an inline image.
type VisionModel interface {
	// AnalyzeImage sends prompt plus the image bytes and returns the raw model text.
	AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// TextModel is a text-only completion model.
type TextModel interface {
	// Complete sends prompt and returns the raw model text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder turns a single string into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// NoteStore persists notes.
type NoteStore interface {
	// InsertNote writes a new note, assigning ID and CreatedAt on the passed value.
	InsertNote(ctx context.Context, note *Note) error
	// SetLinkingStatus records the outcome of linking for a note.
	SetLinkingStatus(ctx context.Context, noteID string, status LinkingStatus) error
}

// VectorIndex answers nearest-neighbour queries over note embeddings.
type VectorIndex interface {
	// IndexNote makes the note's vector visible to later queries.
	// Stores that keep the vector in the note row may treat this as a no-op.
	IndexNote(ctx context.Context, note Note) error
	// FindNeighbors returns candidates ordered by descending similarity.
	FindNeighbors(ctx context.Context, q NeighborQuery) ([]Neighbor, error)
}

// EdgeStore persists edges.
type EdgeStore interface {
	// InsertEdges writes edges best-effort and returns how many were written.
	// A non-nil error with a positive count is a partial write.
	InsertEdges(ctx context.Context, edges []Edge) (int, error)
}

// BlobStore is the object storage collaborator for original images.
type BlobStore interface {
	// Put stores data and returns a publicly resolvable URL.
	Put(ctx context.Context, owner, name, mimeType string, data []byte) (string, error)
}
