package ingest

import "time"

// LinkingStatus records how far graph linking got for a note.
type LinkingStatus string

const (
	// LinkingPending is set when the note row is first written.
	LinkingPending LinkingStatus = "pending"
	// LinkingLinked means the neighbour query succeeded and every edge was written.
	// A note with zero qualifying neighbours is also linked.
	LinkingLinked LinkingStatus = "linked"
	// LinkingPartial means some, but not all, edges were written.
	LinkingPartial LinkingStatus = "partial"
	// LinkingFailed means no edge could be derived or written.
	LinkingFailed LinkingStatus = "failed"
)

// Request is the boundary payload of the ingest operation.
// Exactly one of ImageBytes or TextContent is expected to be set.
type Request struct {
	ImageBytes  []byte
	MimeType    string
	TextContent string
	// ImageName is the client-side file name, used only to pick a blob extension.
	ImageName string
}

// Analysis is the normalized output of the Analysis Orchestrator.
type Analysis struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Tags          []string `json:"tags"`
	Transcription string   `json:"transcription"`
}

// Note is a durable knowledge unit.
type Note struct {
	ID            string
	Owner         string
	Title         string
	Transcription string
	Summary       string
	Tags          []string
	Embedding     []float32
	ImageURL      string // empty for text notes
	LinkingStatus LinkingStatus
	CreatedAt     time.Time
}

// Edge is a directed relatedness link from a newly created note to an older one.
type Edge struct {
	Owner        string
	SourceNoteID string
	TargetNoteID string
	Similarity   float64
}

// NeighborQuery is a nearest-neighbour request against the vector index.
type NeighborQuery struct {
	Vector    []float32
	Threshold float64
	Limit     int
	Owner     string
}

// Neighbor is a single candidate returned by the vector index.
type Neighbor struct {
	ID         string
	Similarity float64
}

// Preview is the result of analysis without persistence.
type Preview struct {
	Analysis  Analysis
	Embedding []float32
}

// Result is the outcome of a successful ingestion.
type Result struct {
	Note  Note
	Edges []Edge
	// LinkWarning is set when linking was incomplete; the note is still durable.
	LinkWarning error
}
