package llm

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tiktoken encoding used for embedding budgets.
const DefaultEncoding = "cl100k_base"

// TokenBudget truncates text to a maximum number of tokens.
type TokenBudget struct {
	encoding  *tiktoken.Tiktoken
	maxTokens int
}

// NewTokenBudget loads the named encoding. The encoding file is fetched on first use.
func NewTokenBudget(encoding string, maxTokens int) (*TokenBudget, error) {
	if maxTokens <= 0 {
		return nil, fmt.Errorf("max tokens must be positive, got %d", maxTokens)
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding: %w", err)
	}
	return &TokenBudget{encoding: enc, maxTokens: maxTokens}, nil
}

// Count returns the number of tokens in text.
func (b *TokenBudget) Count(text string) int {
	return len(b.encoding.Encode(text, nil, nil))
}

// Truncate keeps the leading maxTokens tokens of text.
func (b *TokenBudget) Truncate(text string) string {
	tokens := b.encoding.Encode(text, nil, nil)
	if len(tokens) <= b.maxTokens {
		return text
	}
	return b.encoding.Decode(tokens[:b.maxTokens])
}
