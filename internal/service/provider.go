package service

import (
	"context"

	"shiftiq/internal/llm"
)

// Provider is the capability the pipelines need from the model API.
// *llm.Client satisfies it in production; tests use fakes.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Complete(ctx context.Context, messages []llm.Message, opts llm.CompleteOptions) (string, error)
}
