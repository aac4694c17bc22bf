// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/doi-curator/pkg/types"
)

// NewGenerator builds the generative-text client selected by cfg.Provider
// (openai when empty). A missing API key is a construction error.
func NewGenerator(ctx context.Context, cfg types.LLMConfig) (Generator, error) {
	switch provider := strings.ToLower(cfg.Provider); provider {
	case "", "openai":
		c, err := NewOpenAIClient(cfg.APIKey, cfg.Model, "", cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "claude", "anthropic":
		c, err := NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, "")
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// NewEmbedder builds the embedding client selected by cfg.Provider
// (openai when empty). Claude has no embedding endpoint.
func NewEmbedder(ctx context.Context, cfg types.EmbeddingConfig) (Embedder, error) {
	switch provider := strings.ToLower(cfg.Provider); provider {
	case "", "openai":
		c, err := NewOpenAIClient(cfg.APIKey, "", cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, "", cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
