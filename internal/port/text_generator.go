package port

import (
	"context"

	"enrichly/internal/domain"
)

// GenerationResult contains the model's text and what the call cost.
type GenerationResult struct {
	Text  string
	Usage domain.TokenUsage
}

// TextGenerator abstracts LLM-backed text generation.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*GenerationResult, error)
}
