package ingest

import (
	"context"
	"fmt"
	"time"
)

// TokenBudget trims embedding input to what the embedding model accepts.
type TokenBudget interface {
	Truncate(text string) string
}

// EmbeddingGenerator builds the canonical embedding text and embeds it.
type EmbeddingGenerator struct {
	embedder   Embedder
	retryDelay time.Duration
	budget     TokenBudget
	dimension  int
}

// EmbeddingOption configures an EmbeddingGenerator.
type EmbeddingOption func(*EmbeddingGenerator)

// WithTokenBudget truncates the canonical text before embedding.
func WithTokenBudget(b TokenBudget) EmbeddingOption {
	return func(g *EmbeddingGenerator) { g.budget = b }
}

// WithDimension rejects vectors whose length is not d. Zero disables the check.
func WithDimension(d int) EmbeddingOption {
	return func(g *EmbeddingGenerator) { g.dimension = d }
}

// NewEmbeddingGenerator creates a generator over embedder.
func NewEmbeddingGenerator(embedder Embedder, retryDelay time.Duration, opts ...EmbeddingOption) *EmbeddingGenerator {
	g := &EmbeddingGenerator{embedder: embedder, retryDelay: retryDelay}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanonicalText is the embedding input: title, summary, then the full
// transcription, each labeled, in that order.
func CanonicalText(a Analysis) string {
	return "Title: " + a.Title + "\nSummary: " + a.Summary + "\nContent: " + a.Transcription
}

// Generate embeds the analysis. Any failure is a model service error.
func (g *EmbeddingGenerator) Generate(ctx context.Context, a Analysis) ([]float32, error) {
	text := CanonicalText(a)
	if g.budget != nil {
		text = g.budget.Truncate(text)
	}

	return withRetry(ctx, g.retryDelay, opEmbed, func(ctx context.Context) ([]float32, error) {
		vec, err := g.embedder.Embed(ctx, text)
		if err != nil {
			return nil, modelServiceError(opEmbed, err)
		}
		if len(vec) == 0 {
			return nil, &Error{Kind: KindModelService, Op: opEmbed, Detail: "empty embedding"}
		}
		if g.dimension > 0 && len(vec) != g.dimension {
			return nil, &Error{
				Kind:   KindModelService,
				Op:     opEmbed,
				Detail: fmt.Sprintf("embedding dimension %d, expected %d", len(vec), g.dimension),
			}
		}
		return vec, nil
	})
}
