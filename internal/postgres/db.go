// Package postgres stores notes, vectors and edges in one PostgreSQL database
// with the pgvector extension.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// Open connects to databaseURL. The vector extension is created first so the
// pool can register the vector type on every connection.
func Open(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	_, err = conn.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	_ = conn.Close(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector extension: %w", err)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Migrate creates the tables. dimension fixes the size of the embedding column.
// It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive, got %d", dimension)
	}

	schema := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			title TEXT NOT NULL,
			transcription TEXT NOT NULL,
			summary TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			embedding vector(%d) NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			linking_status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, dimension),
		`CREATE INDEX IF NOT EXISTS idx_notes_owner_created ON notes (owner, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_embedding ON notes USING hnsw (embedding vector_cosine_ops)`,
		`CREATE TABLE IF NOT EXISTS edges (
			id BIGSERIAL PRIMARY KEY,
			owner TEXT NOT NULL,
			source_note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			target_note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			similarity DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (source_note_id, target_note_id),
			CHECK (source_note_id <> target_note_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_owner ON edges (owner)`,
	}

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
