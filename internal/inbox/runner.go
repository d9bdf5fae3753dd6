package inbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"notegraph/internal/contextutil"
	"notegraph/internal/ingest"
)

// Ingester persists a note for owner.
type Ingester interface {
	Ingest(ctx context.Context, owner string, req ingest.Request) (*ingest.Result, error)
}

// FileResult is the outcome of ingesting one inbox file.
type FileResult struct {
	Path          string `json:"path" yaml:"path"`
	NoteID        string `json:"noteId,omitempty" yaml:"note_id,omitempty"`
	Title         string `json:"title,omitempty" yaml:"title,omitempty"`
	Edges         int    `json:"edges" yaml:"edges"`
	LinkingStatus string `json:"linkingStatus,omitempty" yaml:"linking_status,omitempty"`
	Warning       string `json:"warning,omitempty" yaml:"warning,omitempty"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
	Stage         string `json:"stage,omitempty" yaml:"stage,omitempty"`
	Kind          string `json:"kind,omitempty" yaml:"kind,omitempty"`
	DurationMS    int64  `json:"durationMs" yaml:"duration_ms"`
}

// Failed reports whether the file did not produce a note.
func (r FileResult) Failed() bool { return r.Error != "" }

// Runner ingests inbox files on a bounded worker pool.
type Runner struct {
	ingester Ingester
	owner    string
	workers  int
}

// NewRunner creates a runner. Non-positive workers falls back to one.
func NewRunner(ingester Ingester, owner string, workers int) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{ingester: ingester, owner: owner, workers: workers}
}

// Run ingests every path and returns one result per path, in input order.
// Per-file failures are reported in the results; the error is only set when
// the pool itself cannot be created.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]FileResult, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i] = r.IngestFile(ctx, path)
		})
		if err != nil {
			wg.Done()
			results[i] = FileResult{Path: path, Error: err.Error()}
		}
	}
	wg.Wait()

	return results, nil
}

// IngestFile loads and ingests a single file.
func (r *Runner) IngestFile(ctx context.Context, path string) FileResult {
	logger := contextutil.LoggerFromContext(ctx).With("path", path)
	start := time.Now()
	res := FileResult{Path: path}

	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	req, err := Load(path)
	if err != nil {
		res.Error = err.Error()
		res.Kind = string(ingest.KindInvalidInput)
		logger.WarnContext(ctx, "skipping inbox file", "error", err)
		return res
	}

	out, err := r.ingester.Ingest(contextutil.WithLogger(ctx, logger), r.owner, req)
	res.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		res.Error = err.Error()
		res.Kind = string(ingest.KindOf(err))
		if stage, ok := ingest.StageOf(err); ok {
			res.Stage = string(stage)
		}
		logger.ErrorContext(ctx, "failed to ingest inbox file", "error", err)
		return res
	}

	res.NoteID = out.Note.ID
	res.Title = out.Note.Title
	res.Edges = len(out.Edges)
	res.LinkingStatus = string(out.Note.LinkingStatus)
	if out.LinkWarning != nil {
		res.Warning = out.LinkWarning.Error()
	}
	logger.InfoContext(ctx, "ingested inbox file", "note_id", res.NoteID, "edges", res.Edges)
	return res
}

// Summarize counts successes and failures.
func Summarize(results []FileResult) (ok, failed int, err error) {
	var errs []error
	for _, r := range results {
		if r.Failed() {
			failed++
			errs = append(errs, fmt.Errorf("%s: %s", r.Path, r.Error))
			continue
		}
		ok++
	}
	return ok, failed, errors.Join(errs...)
}
