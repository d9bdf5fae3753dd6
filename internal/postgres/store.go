package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"notegraph/internal/ingest"
	"notegraph/internal/storage"
)

const noteColumns = "id, owner, title, transcription, summary, tags, embedding, image_url, linking_status, created_at"

// Store implements ingest.NoteStore, ingest.VectorIndex and ingest.EdgeStore,
// plus the read side used by the service layer.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store over pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// InsertNote writes a new note, assigning ID and CreatedAt.
func (s *Store) InsertNote(ctx context.Context, note *ingest.Note) error {
	if len(note.Embedding) == 0 {
		return errors.New("note has no embedding")
	}

	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	status := note.LinkingStatus
	if status == "" {
		status = ingest.LinkingPending
	}

	id := uuid.New().String()
	var createdAt time.Time
	err := s.pool.QueryRow(ctx,
		`INSERT INTO notes (id, owner, title, transcription, summary, tags, embedding, image_url, linking_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		id, note.Owner, note.Title, note.Transcription, note.Summary, tags,
		pgvector.NewVector(note.Embedding), note.ImageURL, string(status),
	).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	note.ID = id
	note.Tags = tags
	note.LinkingStatus = status
	note.CreatedAt = createdAt
	return nil
}

// SetLinkingStatus records the linking outcome of a note.
func (s *Store) SetLinkingStatus(ctx context.Context, noteID string, status ingest.LinkingStatus) error {
	tag, err := s.pool.Exec(ctx, "UPDATE notes SET linking_status = $1 WHERE id = $2", string(status), noteID)
	if err != nil {
		return fmt.Errorf("failed to update linking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// IndexNote is a no-op: the vector lives in the note row.
func (s *Store) IndexNote(context.Context, ingest.Note) error { return nil }

// FindNeighbors returns the owner's notes by cosine similarity, 1 - cosine distance.
func (s *Store) FindNeighbors(ctx context.Context, q ingest.NeighborQuery) ([]ingest.Neighbor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, 1 - (embedding <=> $1) AS similarity
		 FROM notes
		 WHERE owner = $2 AND 1 - (embedding <=> $1) >= $3
		 ORDER BY embedding <=> $1
		 LIMIT $4`,
		pgvector.NewVector(q.Vector), q.Owner, q.Threshold, q.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to match notes: %w", err)
	}

	neighbors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ingest.Neighbor, error) {
		var n ingest.Neighbor
		err := row.Scan(&n.ID, &n.Similarity)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan matches: %w", err)
	}
	return neighbors, nil
}

// InsertEdges sends every edge in one batch. Existing edges count as written.
// The count reflects the statements that succeeded.
func (s *Store) InsertEdges(ctx context.Context, edges []ingest.Edge) (int, error) {
	if len(edges) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range edges {
		batch.Queue(
			`INSERT INTO edges (owner, source_note_id, target_note_id, similarity)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (source_note_id, target_note_id) DO NOTHING`,
			e.Owner, e.SourceNoteID, e.TargetNoteID, e.Similarity,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	var written int
	var errs []error
	for _, e := range edges {
		if _, err := results.Exec(); err != nil {
			errs = append(errs, fmt.Errorf("edge %s -> %s: %w", e.SourceNoteID, e.TargetNoteID, err))
			continue
		}
		written++
	}
	if err := results.Close(); err != nil && len(errs) == 0 {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return written, fmt.Errorf("failed to insert %d of %d edges: %w", len(edges)-written, len(edges), errors.Join(errs...))
	}
	return written, nil
}

// GetNote gets a note by ID. Returns storage.ErrNotFound if not found.
func (s *Store) GetNote(ctx context.Context, id string) (*ingest.Note, error) {
	note, err := scanNote(s.pool.QueryRow(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// ListNotes returns the owner's notes, newest first.
func (s *Store) ListNotes(ctx context.Context, owner string) ([]ingest.Note, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE owner = $1 ORDER BY created_at DESC, id",
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}

	notes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ingest.Note, error) {
		n, err := scanNote(row)
		if err != nil {
			return ingest.Note{}, err
		}
		return *n, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan notes: %w", err)
	}
	if notes == nil {
		notes = []ingest.Note{}
	}
	return notes, nil
}

// UpdateTitle renames a note. Returns storage.ErrNotFound if it does not exist.
func (s *Store) UpdateTitle(ctx context.Context, id, title string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE notes SET title = $1 WHERE id = $2", title, id)
	if err != nil {
		return fmt.Errorf("failed to update title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountNotes returns how many notes the owner has.
func (s *Store) CountNotes(ctx context.Context, owner string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM notes WHERE owner = $1", owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}

// CountByLinkingStatus returns the owner's note count per linking status.
func (s *Store) CountByLinkingStatus(ctx context.Context, owner string) (map[ingest.LinkingStatus]int, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT linking_status, COUNT(*) FROM notes WHERE owner = $1 GROUP BY linking_status",
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count linking status: %w", err)
	}
	defer rows.Close()

	counts := map[ingest.LinkingStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[ingest.LinkingStatus(status)] = n
	}
	return counts, rows.Err()
}

// ListEdges returns every edge of the owner.
func (s *Store) ListEdges(ctx context.Context, owner string) ([]ingest.Edge, error) {
	return s.queryEdges(ctx,
		"SELECT owner, source_note_id, target_note_id, similarity FROM edges WHERE owner = $1 ORDER BY id",
		owner,
	)
}

// ListEdgesFrom returns the edges created when noteID was ingested, most similar first.
func (s *Store) ListEdgesFrom(ctx context.Context, noteID string) ([]ingest.Edge, error) {
	return s.queryEdges(ctx,
		"SELECT owner, source_note_id, target_note_id, similarity FROM edges WHERE source_note_id = $1 ORDER BY similarity DESC",
		noteID,
	)
}

// CountEdges returns how many edges the owner has.
func (s *Store) CountEdges(ctx context.Context, owner string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM edges WHERE owner = $1", owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count edges: %w", err)
	}
	return n, nil
}

func (s *Store) queryEdges(ctx context.Context, q string, arg any) ([]ingest.Edge, error) {
	rows, err := s.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	edges, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ingest.Edge, error) {
		var e ingest.Edge
		err := row.Scan(&e.Owner, &e.SourceNoteID, &e.TargetNoteID, &e.Similarity)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan edges: %w", err)
	}
	if edges == nil {
		edges = []ingest.Edge{}
	}
	return edges, nil
}

func scanNote(row pgx.Row) (*ingest.Note, error) {
	var note ingest.Note
	var vec pgvector.Vector
	var status string

	if err := row.Scan(
		&note.ID, &note.Owner, &note.Title, &note.Transcription, &note.Summary,
		&note.Tags, &vec, &note.ImageURL, &status, &note.CreatedAt,
	); err != nil {
		return nil, err
	}

	if note.Tags == nil {
		note.Tags = []string{}
	}
	note.Embedding = vec.Slice()
	note.LinkingStatus = ingest.LinkingStatus(status)
	return &note, nil
}
