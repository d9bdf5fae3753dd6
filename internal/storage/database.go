package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database at the given path.
// Foreign keys, WAL and a busy timeout are set on every pooled connection.
func New(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			title TEXT NOT NULL,
			transcription TEXT NOT NULL,
			summary TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			embedding TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			linking_status TEXT NOT NULL DEFAULT 'pending',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_notes_owner_created ON notes (owner, created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS edges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner TEXT NOT NULL,
			source_note_id TEXT NOT NULL,
			target_note_id TEXT NOT NULL,
			similarity REAL NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (source_note_id) REFERENCES notes(id) ON DELETE CASCADE,
			FOREIGN KEY (target_note_id) REFERENCES notes(id) ON DELETE CASCADE,
			UNIQUE (source_note_id, target_note_id),
			CHECK (source_note_id <> target_note_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_edges_owner ON edges (owner);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
