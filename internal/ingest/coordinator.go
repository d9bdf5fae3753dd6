package ingest

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"notegraph/internal/contextutil"
)

// Stage is a state of the ingestion state machine.
type Stage string

const (
	StageNormalizing    Stage = "normalizing"
	StageAnalyzing      Stage = "analyzing"
	StageEmbedding      Stage = "embedding"
	StagePersistingNote Stage = "persisting_note"
	StageLinking        Stage = "linking"
	StageDone           Stage = "done"
)

// Observer is notified of every stage the coordinator enters.
type Observer func(ctx context.Context, stage Stage)

// Coordinator sequences the pipeline for a single ingestion request.
// It holds no per-request state and is safe for concurrent use.
type Coordinator struct {
	orchestrator *Orchestrator
	embeddings   *EmbeddingGenerator
	linker       *Linker
	notes        NoteStore
	index        VectorIndex
	blobs        BlobStore
	observer     Observer
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithBlobStore uploads original images alongside analysis.
func WithBlobStore(b BlobStore) CoordinatorOption {
	return func(c *Coordinator) { c.blobs = b }
}

// WithObserver registers a stage transition hook.
func WithObserver(o Observer) CoordinatorOption {
	return func(c *Coordinator) { c.observer = o }
}

// NewCoordinator wires the pipeline components together.
func NewCoordinator(
	orchestrator *Orchestrator,
	embeddings *EmbeddingGenerator,
	linker *Linker,
	notes NoteStore,
	index VectorIndex,
	opts ...CoordinatorOption,
) *Coordinator {
	c := &Coordinator{
		orchestrator: orchestrator,
		embeddings:   embeddings,
		linker:       linker,
		notes:        notes,
		index:        index,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze runs normalization, analysis and embedding without persisting anything.
func (c *Coordinator) Analyze(ctx context.Context, req Request) (*Preview, error) {
	scenario, err := c.normalize(ctx, req)
	if err != nil {
		return nil, err
	}

	c.enter(ctx, StageAnalyzing)
	analysis, err := c.orchestrator.Analyze(ctx, scenario)
	if err != nil {
		return nil, &FailedError{Stage: StageAnalyzing, Err: err}
	}

	c.enter(ctx, StageEmbedding)
	vec, err := c.embeddings.Generate(ctx, analysis)
	if err != nil {
		return nil, &FailedError{Stage: StageEmbedding, Err: err}
	}

	c.enter(ctx, StageDone)
	return &Preview{Analysis: analysis, Embedding: vec}, nil
}

// Ingest runs the full pipeline for owner. On success the note is durable;
// incomplete linking is reported in Result.LinkWarning, not as an error.
func (c *Coordinator) Ingest(ctx context.Context, owner string, req Request) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx).With("owner", owner)
	ctx = contextutil.WithLogger(ctx, logger)
	start := time.Now()

	scenario, err := c.normalize(ctx, req)
	if err != nil {
		return nil, err
	}

	c.enter(ctx, StageAnalyzing)
	var uploads errgroup.Group
	var imageURL string
	if img, ok := scenario.(ImageScenario); ok && c.blobs != nil {
		uploads.Go(func() error {
			url, err := c.blobs.Put(ctx, owner, req.ImageName, img.MimeType, img.Image)
			if err != nil {
				return &Error{Kind: KindPersistence, Op: "upload_image", Err: err}
			}
			imageURL = url
			return nil
		})
	}

	analysis, err := c.orchestrator.Analyze(ctx, scenario)
	if err != nil {
		_ = uploads.Wait()
		return nil, c.fail(ctx, StageAnalyzing, err)
	}

	c.enter(ctx, StageEmbedding)
	vec, err := c.embeddings.Generate(ctx, analysis)
	if err != nil {
		_ = uploads.Wait()
		return nil, c.fail(ctx, StageEmbedding, err)
	}

	c.enter(ctx, StagePersistingNote)
	if err := uploads.Wait(); err != nil {
		return nil, c.fail(ctx, StagePersistingNote, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, c.fail(ctx, StagePersistingNote, &Error{Kind: KindPersistence, Op: "insert_note", Err: err})
	}

	// From here on the note must reach a linking attempt even if the caller goes away.
	detached := context.WithoutCancel(ctx)

	note := Note{
		Owner:         owner,
		Title:         analysis.Title,
		Transcription: analysis.Transcription,
		Summary:       analysis.Summary,
		Tags:          analysis.Tags,
		Embedding:     vec,
		ImageURL:      imageURL,
		LinkingStatus: LinkingPending,
	}
	if err := c.notes.InsertNote(detached, &note); err != nil {
		return nil, c.fail(ctx, StagePersistingNote, &Error{Kind: KindPersistence, Op: "insert_note", Err: err})
	}
	logger = logger.With("note_id", note.ID)
	detached = contextutil.WithLogger(detached, logger)

	c.enter(detached, StageLinking)
	var warnings []error
	if err := c.index.IndexNote(detached, note); err != nil {
		logger.WarnContext(detached, "failed to index note vector", "error", err)
		warnings = append(warnings, &Error{Kind: KindLinking, Op: "index_note", Err: err})
	}

	link, linkErr := c.linker.Link(detached, note)
	if linkErr != nil {
		warnings = append(warnings, linkErr)
	}
	status := link.Status
	if status == LinkingLinked && len(warnings) > 0 {
		status = LinkingPartial
	}
	if err := c.notes.SetLinkingStatus(detached, note.ID, status); err != nil {
		logger.WarnContext(detached, "failed to record linking status", "status", status, "error", err)
	} else {
		note.LinkingStatus = status
	}

	c.enter(detached, StageDone)
	logger.InfoContext(detached, "note ingested",
		"scenario", scenario.Name(),
		"edges", len(link.Edges),
		"linking_status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{Note: note, Edges: link.Edges, LinkWarning: errors.Join(warnings...)}, nil
}

func (c *Coordinator) normalize(ctx context.Context, req Request) (Scenario, error) {
	c.enter(ctx, StageNormalizing)
	scenario, err := Normalize(req)
	if err != nil {
		return nil, c.fail(ctx, StageNormalizing, err)
	}
	return scenario, nil
}

func (c *Coordinator) enter(ctx context.Context, stage Stage) {
	if c.observer != nil {
		c.observer(ctx, stage)
	}
}

func (c *Coordinator) fail(ctx context.Context, stage Stage, err error) error {
	contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "ingestion failed", "stage", stage, "kind", KindOf(err), "error", err)
	return &FailedError{Stage: stage, Err: err}
}
