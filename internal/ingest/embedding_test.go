package ingest_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"notegraph/internal/ingest"
	"notegraph/internal/ingest/mocks"
)

// prefixBudget keeps the first n bytes.
type prefixBudget int

func (b prefixBudget) Truncate(text string) string {
	if len(text) <= int(b) {
		return text
	}
	return text[:b]
}

func TestCanonicalText(t *testing.T) {
	got := ingest.CanonicalText(ingest.Analysis{
		Title:         "Grocery List",
		Summary:       "A short shopping reminder.",
		Tags:          []string{"ignored"},
		Transcription: "Buy milk and eggs",
	})
	assert.Equal(t, "Title: Grocery List\nSummary: A short shopping reminder.\nContent: Buy milk and eggs", got)
}

func TestEmbeddingGenerator_Generate(t *testing.T) {
	analysis := ingest.Analysis{Title: "t", Summary: "s", Transcription: "body"}
	canonical := ingest.CanonicalText(analysis)

	tests := []struct {
		name      string
		opts      []ingest.EmbeddingOption
		setup     func(e *mocks.MockEmbedder)
		want      []float32
		wantError bool
	}{
		{
			name: "success",
			setup: func(e *mocks.MockEmbedder) {
				e.EXPECT().Embed(gomock.Any(), canonical).Return([]float32{0.1, 0.2, 0.3}, nil)
			},
			want: []float32{0.1, 0.2, 0.3},
		},
		{
			name: "token budget truncates input",
			opts: []ingest.EmbeddingOption{ingest.WithTokenBudget(prefixBudget(8))},
			setup: func(e *mocks.MockEmbedder) {
				e.EXPECT().Embed(gomock.Any(), canonical[:8]).Return([]float32{1}, nil)
			},
			want: []float32{1},
		},
		{
			name: "dimension mismatch",
			opts: []ingest.EmbeddingOption{ingest.WithDimension(4)},
			setup: func(e *mocks.MockEmbedder) {
				e.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1, 2, 3}, nil)
			},
			wantError: true,
		},
		{
			name: "empty vector",
			setup: func(e *mocks.MockEmbedder) {
				e.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{}, nil)
			},
			wantError: true,
		},
		{
			name: "transient failure retried",
			setup: func(e *mocks.MockEmbedder) {
				gomock.InOrder(
					e.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, temporaryErr{temporary: true}),
					e.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{0.5}, nil),
				)
			},
			want: []float32{0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			embedder := mocks.NewMockEmbedder(ctrl)
			tt.setup(embedder)

			g := ingest.NewEmbeddingGenerator(embedder, 0, tt.opts...)
			got, err := g.Generate(context.Background(), analysis)
			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, ingest.KindModelService, ingest.KindOf(err))
				assert.True(t, strings.Contains(err.Error(), "embed"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
