package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notegraph/internal/ingest"
)

const noteColumns = "id, owner, title, transcription, summary, tags, embedding, image_url, linking_status, created_at"

// NoteRepo provides methods for note operations.
// It implements ingest.NoteStore.
type NoteRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db, now: time.Now}
}

// InsertNote writes a new note. It assigns ID and CreatedAt on note.
// A note without an embedding is rejected.
func (r *NoteRepo) InsertNote(ctx context.Context, note *ingest.Note) error {
	if len(note.Embedding) == 0 {
		return errors.New("note has no embedding")
	}

	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := encodeJSON(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	embJSON, err := encodeJSON(note.Embedding)
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}

	status := note.LinkingStatus
	if status == "" {
		status = ingest.LinkingPending
	}

	id := uuid.New().String()
	createdAt := r.now().UTC()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, note.Owner, note.Title, note.Transcription, note.Summary,
		tagsJSON, embJSON, note.ImageURL, string(status), formatTime(createdAt),
	)
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
func (r *NoteRepo) SetLinkingStatus(ctx context.Context, noteID string, status ingest.LinkingStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE notes SET linking_status = ? WHERE id = ?", string(status), noteID)
	if err != nil {
		return fmt.Errorf("failed to update linking status: %w", err)
	}
	return expectOneRow(res)
}

// GetNote gets a note by ID. Returns ErrNotFound if not found.
func (r *NoteRepo) GetNote(ctx context.Context, id string) (*ingest.Note, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = ?", id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// ListNotes returns the owner's notes, newest first.
// Returns an empty slice if the owner has no notes.
func (r *NoteRepo) ListNotes(ctx context.Context, owner string) ([]ingest.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE owner = ? ORDER BY created_at DESC, rowid DESC",
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	notes := []ingest.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notes, nil
}

// UpdateTitle renames a note. Returns ErrNotFound if the note does not exist.
func (r *NoteRepo) UpdateTitle(ctx context.Context, id, title string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE notes SET title = ? WHERE id = ?", title, id)
	if err != nil {
		return fmt.Errorf("failed to update title: %w", err)
	}
	return expectOneRow(res)
}

// CountNotes returns how many notes the owner has.
func (r *NoteRepo) CountNotes(ctx context.Context, owner string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes WHERE owner = ?", owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}

// CountByLinkingStatus returns the owner's note count per linking status.
func (r *NoteRepo) CountByLinkingStatus(ctx context.Context, owner string) (map[ingest.LinkingStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT linking_status, COUNT(*) FROM notes WHERE owner = ? GROUP BY linking_status",
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count linking status: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*ingest.Note, error) {
	var note ingest.Note
	var tagsJSON, embJSON, status, createdAt string

	if err := row.Scan(
		&note.ID, &note.Owner, &note.Title, &note.Transcription, &note.Summary,
		&tagsJSON, &embJSON, &note.ImageURL, &status, &createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	if note.Tags, err = decodeTags(tagsJSON); err != nil {
		return nil, err
	}
	if note.Embedding, err = decodeEmbedding(embJSON); err != nil {
		return nil, err
	}
	if note.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	note.LinkingStatus = ingest.LinkingStatus(status)
	return &note, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
