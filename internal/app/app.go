// Package app wires configuration into a ready ingestion pipeline and note service.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"notegraph/internal/blobstore"
	"notegraph/internal/config"
	"notegraph/internal/contextutil"
	"notegraph/internal/handlers"
	"notegraph/internal/ingest"
	"notegraph/internal/llm"
	"notegraph/internal/llm/langchain"
	"notegraph/internal/llm/openai"
	"notegraph/internal/postgres"
	"notegraph/internal/service"
	"notegraph/internal/storage"
	"notegraph/internal/vectorstore"
)

// App holds the wired components shared by the API server and the CLI.
type App struct {
	Coordinator  *ingest.Coordinator
	Notes        service.NoteService
	Blobs        *blobstore.Local
	HealthChecks map[string]handlers.HealthCheck

	closers []func() error
}

// stores is what a storage backend provides to the pipeline and the service.
type stores struct {
	notes interface {
		ingest.NoteStore
		service.NoteRepository
	}
	edges interface {
		ingest.EdgeStore
		service.EdgeRepository
	}
	index ingest.VectorIndex
}

// models is what a model provider offers to the pipeline.
type models struct {
	vision   ingest.VisionModel
	text     ingest.TextModel
	embedder ingest.Embedder
}

// New opens the configured backends, runs migrations and wires the pipeline.
// Close releases everything New opened.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{HealthChecks: map[string]handlers.HealthCheck{}}

	st, err := a.openStores(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	m, err := a.openModels(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	blobs, err := blobstore.NewLocal(cfg.BlobDir, cfg.PublicBaseURL)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Blobs = blobs

	embeddingOpts := []ingest.EmbeddingOption{ingest.WithDimension(cfg.EmbeddingDimension)}
	if cfg.EmbeddingMaxTokens > 0 {
		budget, err := llm.NewTokenBudget(llm.DefaultEncoding, cfg.EmbeddingMaxTokens)
		if err != nil {
			slog.WarnContext(ctx, "embedding input will not be truncated", "error", err)
		} else {
			embeddingOpts = append(embeddingOpts, ingest.WithTokenBudget(budget))
		}
	}

	a.Coordinator = ingest.NewCoordinator(
		ingest.NewOrchestrator(m.vision, m.text, cfg.ModelRetryDelay),
		ingest.NewEmbeddingGenerator(m.embedder, cfg.ModelRetryDelay, embeddingOpts...),
		ingest.NewLinker(st.index, st.edges, cfg.LinkMaxResults, cfg.LinkThreshold),
		st.notes,
		st.index,
		ingest.WithBlobStore(blobs),
		ingest.WithObserver(func(ctx context.Context, stage ingest.Stage) {
			contextutil.LoggerFromContext(ctx).DebugContext(ctx, "ingestion stage", "stage", stage)
		}),
	)
	a.Notes = service.NewNoteService(a.Coordinator, st.notes, st.edges)

	return a, nil
}

// Close releases backends in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreBackend == config.StorePostgres {
		pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })

		if err := postgres.Migrate(ctx, pool, cfg.EmbeddingDimension); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "Postgres store ready", "dimension", cfg.EmbeddingDimension)

		a.HealthChecks["database"] = func(ctx context.Context) error { return pool.Ping(ctx) }
		store := postgres.NewStore(pool)
		return &stores{notes: store, edges: store, index: store}, nil
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	if err := storage.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.InfoContext(ctx, "Database initialized", "path", cfg.DBPath)
	a.HealthChecks["database"] = db.PingContext

	index, err := a.openIndex(ctx, cfg, db)
	if err != nil {
		return nil, err
	}
	return &stores{notes: storage.NewNoteRepo(db), edges: storage.NewEdgeRepo(db), index: index}, nil
}

func (a *App) openIndex(ctx context.Context, cfg *config.Config, db *sql.DB) (ingest.VectorIndex, error) {
	if cfg.VectorBackend == config.VectorSQLite {
		slog.InfoContext(ctx, "Using in-database vector scan")
		return storage.NewScanIndex(db), nil
	}

	qdrant, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}
	a.closers = append(a.closers, qdrant.Close)

	if err := qdrant.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingDimension); err != nil {
		return nil, fmt.Errorf("failed to ensure Qdrant collection: %w", err)
	}
	slog.InfoContext(ctx, "Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingDimension)

	a.HealthChecks["vector_index"] = func(ctx context.Context) error {
		exists, err := qdrant.CollectionExists(ctx, cfg.QdrantCollection)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("collection %s does not exist", cfg.QdrantCollection)
		}
		return nil
	}
	return vectorstore.NewNoteIndex(qdrant, cfg.QdrantCollection), nil
}

func (a *App) openModels(ctx context.Context, cfg *config.Config) (*models, error) {
	switch cfg.ModelProvider {
	case config.ProviderOpenAI:
		client, err := openai.NewClient(openai.Config{
			APIKey:         cfg.LLMAPIKey,
			BaseURL:        cfg.LLMBaseURL,
			TextModel:      cfg.LLMModelName,
			VisionModel:    cfg.VisionModelName,
			EmbeddingModel: cfg.EmbeddingModelName,
			Dimensions:     cfg.EmbeddingDimension,
			Timeout:        cfg.ModelTimeout,
		})
		if err != nil {
			return nil, err
		}
		return &models{vision: client, text: client, embedder: client}, nil

	case config.ProviderLangChain:
		chat, err := langchain.NewClient(langchain.Config{
			BaseURL:     cfg.LLMBaseURL,
			Token:       cfg.LLMAPIKey,
			TextModel:   cfg.LLMModelName,
			VisionModel: cfg.VisionModelName,
		})
		if err != nil {
			return nil, err
		}
		embed, err := langchain.NewClient(langchain.Config{
			BaseURL:        cfg.EmbeddingBaseURL,
			Token:          cfg.LLMAPIKey,
			TextModel:      cfg.LLMModelName,
			EmbeddingModel: cfg.EmbeddingModelName,
		})
		if err != nil {
			return nil, err
		}
		return &models{vision: chat, text: chat, embedder: embed}, nil

	default:
		if cfg.PreloadModels {
			loader := llm.NewModelLoader(cfg.LLMBaseURL)
			if err := loader.EnsureLoaded(ctx, cfg.LLMModelName, cfg.VisionModelName); err != nil {
				return nil, fmt.Errorf("failed to preload models: %w", err)
			}
		}
		client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.VisionModelName, cfg.ModelTimeout)
		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingDimension, cfg.ModelTimeout)
		return &models{vision: client, text: client, embedder: embedder}, nil
	}
}
