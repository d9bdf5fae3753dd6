package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notegraph/internal/ingest"
)

// EdgeRepo provides methods for edge operations.
// It implements ingest.EdgeStore.
type EdgeRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewEdgeRepo creates a new EdgeRepo.
func NewEdgeRepo(db *sql.DB) *EdgeRepo {
	return &EdgeRepo{db: db, now: time.Now}
}

// InsertEdges writes edges one row at a time. An edge that already exists
// counts as written. Failures do not stop the batch; they are joined into
// the returned error alongside the number of rows written.
func (r *EdgeRepo) InsertEdges(ctx context.Context, edges []ingest.Edge) (int, error) {
	createdAt := formatTime(r.now())

	var written int
	var errs []error
	for _, e := range edges {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO edges (owner, source_note_id, target_note_id, similarity, created_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (source_note_id, target_note_id) DO NOTHING`,
			e.Owner, e.SourceNoteID, e.TargetNoteID, e.Similarity, createdAt,
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("edge %s -> %s: %w", e.SourceNoteID, e.TargetNoteID, err))
			continue
		}
		written++
	}

	if len(errs) > 0 {
		return written, fmt.Errorf("failed to insert %d of %d edges: %w", len(errs), len(edges), errors.Join(errs...))
	}
	return written, nil
}

// ListEdges returns every edge of the owner.
func (r *EdgeRepo) ListEdges(ctx context.Context, owner string) ([]ingest.Edge, error) {
	return r.query(ctx,
		"SELECT owner, source_note_id, target_note_id, similarity FROM edges WHERE owner = ? ORDER BY id",
		owner,
	)
}

// ListEdgesFrom returns the edges created when noteID was ingested, most similar first.
func (r *EdgeRepo) ListEdgesFrom(ctx context.Context, noteID string) ([]ingest.Edge, error) {
	return r.query(ctx,
		"SELECT owner, source_note_id, target_note_id, similarity FROM edges WHERE source_note_id = ? ORDER BY similarity DESC",
		noteID,
	)
}

// CountEdges returns how many edges the owner has.
func (r *EdgeRepo) CountEdges(ctx context.Context, owner string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM edges WHERE owner = ?", owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count edges: %w", err)
	}
	return n, nil
}

func (r *EdgeRepo) query(ctx context.Context, q string, arg any) ([]ingest.Edge, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	edges := []ingest.Edge{}
	for rows.Next() {
		var e ingest.Edge
		if err := rows.Scan(&e.Owner, &e.SourceNoteID, &e.TargetNoteID, &e.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return edges, nil
}
