// Package langchain adapts langchaingo models to the pipeline's model capabilities.
package langchain

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Config holds the endpoint and model names.
type Config struct {
	BaseURL        string
	Token          string
	TextModel      string
	VisionModel    string
	EmbeddingModel string
}

// Client implements AnalyzeImage, Complete and Embed over langchaingo's
// OpenAI-compatible backend.
type Client struct {
	text     llms.Model
	vision   llms.Model
	embedder embeddings.Embedder
}

// NewClient builds one langchaingo model per role.
func NewClient(cfg Config) (*Client, error) {
	token := cfg.Token
	if token == "" {
		// Local OpenAI-compatible servers accept any token.
		token = "none"
	}

	newModel := func(opts ...openai.Option) (*openai.LLM, error) {
		base := []openai.Option{openai.WithToken(token)}
		if cfg.BaseURL != "" {
			base = append(base, openai.WithBaseURL(cfg.BaseURL))
		}
		return openai.New(append(base, opts...)...)
	}

	text, err := newModel(openai.WithModel(cfg.TextModel))
	if err != nil {
		return nil, fmt.Errorf("create text model: %w", err)
	}

	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = cfg.TextModel
	}
	vision, err := newModel(openai.WithModel(visionModel))
	if err != nil {
		return nil, fmt.Errorf("create vision model: %w", err)
	}

	embedClient, err := newModel(openai.WithEmbeddingModel(cfg.EmbeddingModel))
	if err != nil {
		return nil, fmt.Errorf("create embedding model: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(embedClient)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	return &Client{text: text, vision: vision, embedder: embedder}, nil
}

// Complete sends a single user prompt to the text model.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, c.text, llms.TextPart(prompt))
}

// AnalyzeImage sends prompt plus the raw image bytes to the vision model.
func (c *Client) AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	return generate(ctx, c.vision, llms.TextPart(prompt), llms.BinaryPart(mimeType, image))
}

// Embed generates the embedding of a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := c.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("langchain embed: %w", err)
	}
	return vec, nil
}

func generate(ctx context.Context, model llms.Model, parts ...llms.ContentPart) (string, error) {
	content := []llms.MessageContent{
		{Role: llms.ChatMessageTypeHuman, Parts: parts},
	}

	resp, err := model.GenerateContent(ctx, content)
	if err != nil {
		return "", fmt.Errorf("langchain generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("langchain generate: no choices returned")
	}
	return resp.Choices[0].Content, nil
}
