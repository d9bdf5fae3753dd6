package ingest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notegraph/internal/ingest"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		req      ingest.Request
		want     ingest.Scenario
		wantKind ingest.Kind
	}{
		{
			name: "image with mime",
			req:  ingest.Request{ImageBytes: []byte{0x89, 'P'}, MimeType: "image/png"},
			want: ingest.ImageScenario{Image: []byte{0x89, 'P'}, MimeType: "image/png"},
		},
		{
			name: "image without mime defaults to jpeg",
			req:  ingest.Request{ImageBytes: []byte{1}},
			want: ingest.ImageScenario{Image: []byte{1}, MimeType: ingest.DefaultImageMimeType},
		},
		{
			name: "image mime is normalized",
			req:  ingest.Request{ImageBytes: []byte{1}, MimeType: " Image/PNG "},
			want: ingest.ImageScenario{Image: []byte{1}, MimeType: "image/png"},
		},
		{
			name:     "non image mime",
			req:      ingest.Request{ImageBytes: []byte{1}, MimeType: "application/pdf"},
			wantKind: ingest.KindInvalidInput,
		},
		{
			name: "image wins over text",
			req:  ingest.Request{ImageBytes: []byte{1}, MimeType: "image/webp", TextContent: "ignored"},
			want: ingest.ImageScenario{Image: []byte{1}, MimeType: "image/webp"},
		},
		{
			name: "text kept verbatim",
			req:  ingest.Request{TextContent: "  Buy milk and eggs\n"},
			want: ingest.TextScenario{Text: "  Buy milk and eggs\n"},
		},
		{
			name:     "whitespace only text",
			req:      ingest.Request{TextContent: " \n\t"},
			wantKind: ingest.KindInvalidInput,
		},
		{
			name:     "nothing",
			req:      ingest.Request{},
			wantKind: ingest.KindInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ingest.Normalize(tt.req)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, ingest.KindOf(err))
				assert.True(t, errors.Is(err, ingest.ErrInvalidInput))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScenarioName(t *testing.T) {
	assert.Equal(t, "image", ingest.ImageScenario{}.Name())
	assert.Equal(t, "text", ingest.TextScenario{}.Name())
}
