// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm adapts generative-text and embedding providers to the small
// interfaces the pipeline depends on.
package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned at construction time when a provider that
// needs a credential has none.
var ErrMissingAPIKey = errors.New("a valid API key is required")

// Request is one generative-text invocation.
type Request struct {
	System string
	Prompt string

	// Model overrides the client's default model when non-empty.
	Model string

	Temperature float32

	// MaxTokens caps the completion length. Zero leaves the provider default.
	MaxTokens int
}

// Generator produces a single text completion.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Embedder returns one embedding vector per input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
