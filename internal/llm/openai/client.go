// Package openai adapts the official OpenAI SDK to the pipeline's model capabilities.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"notegraph/internal/llm"
)

const (
	DefaultTextModel      = "gpt-4o-mini"
	DefaultVisionModel    = "gpt-4o-mini"
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// Config holds the provider settings.
type Config struct {
	APIKey         string
	BaseURL        string // optional, for OpenAI-compatible gateways
	TextModel      string
	VisionModel    string
	EmbeddingModel string
	// Dimensions requests a shortened embedding. Zero keeps the model default.
	Dimensions int
	Timeout    time.Duration
}

// Client implements AnalyzeImage, Complete and Embed over the OpenAI API.
type Client struct {
	client         openai.Client
	textModel      string
	visionModel    string
	embeddingModel string
	dimensions     int
}

// NewClient creates a client. The SDK's own retries are disabled; callers
// decide on retries.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key not set")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	c := &Client{
		client:         openai.NewClient(opts...),
		textModel:      orDefault(cfg.TextModel, DefaultTextModel),
		visionModel:    orDefault(cfg.VisionModel, DefaultVisionModel),
		embeddingModel: orDefault(cfg.EmbeddingModel, DefaultEmbeddingModel),
		dimensions:     cfg.Dimensions,
	}
	return c, nil
}

// Complete sends a single user prompt to the text model.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.chat(ctx, c.textModel, openai.UserMessage(prompt))
}

// AnalyzeImage sends prompt plus an inline data-URI image to the vision model.
func (c *Client) AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	msg := openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: llm.DataURI(mimeType, image),
		}),
	})
	return c.chat(ctx, c.visionModel, msg)
}

func (c *Client) chat(ctx context.Context, model string, msg openai.ChatCompletionMessageParamUnion) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{msg},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", classify(err))
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai chat: no completion choices returned")
	}
	return completion.Choices[0].Message.Content, nil
}

// Embed generates the embedding of a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.embeddingModel),
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
	}
	if c.dimensions > 0 {
		params.Dimensions = openai.Int(int64(c.dimensions))
	}

	resp, err := c.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", classify(err))
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings: no embeddings generated")
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// classify maps SDK status errors onto llm.StatusError so retry decisions
// are provider independent.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &llm.StatusError{StatusCode: apiErr.StatusCode, Body: http.StatusText(apiErr.StatusCode), Err: err}
	}
	return err
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
