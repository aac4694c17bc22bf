// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/doi-curator/internal/crossref"
	"github.com/pdiddy/doi-curator/internal/dandi"
	"github.com/pdiddy/doi-curator/internal/llm"
	"github.com/pdiddy/doi-curator/internal/orcid"
	"github.com/pdiddy/doi-curator/internal/pipeline"
	"github.com/pdiddy/doi-curator/internal/prompt"
	"github.com/pdiddy/doi-curator/internal/secrets"
	"github.com/pdiddy/doi-curator/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "doi-curator"
)

// flagKeys maps persistent flags to their config keys.
var flagKeys = map[string]string{
	"provider":           "llm.provider",
	"model":              "llm.model",
	"api-key":            "llm.api_key",
	"embedding-provider": "embedding.provider",
	"embedding-model":    "embedding.model",
	"prompts":            "prompts_file",
	"workers":            "workers",
	"timeout":            "http.timeout",
	"mailto":             "http.mailto",
	"max-keywords":       "keywords.max_keywords",
}

func bindFlags(fs *pflag.FlagSet) {
	for flag, key := range flagKeys {
		_ = viper.BindPFlag(key, fs.Lookup(flag))
	}
}

func setDefaults() {
	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", defaultUserAgent+"/"+version)
	viper.SetDefault("http.mailto", "")
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.base_url", "")
	viper.SetDefault("llm.study_target_max_tokens", 100)
	viper.SetDefault("embedding.provider", "openai")
	viper.SetDefault("embedding.model", "")
	viper.SetDefault("embedding.api_key", "")
	viper.SetDefault("embedding.base_url", "")
	viper.SetDefault("keywords.mode", "llm")
	viper.SetDefault("keywords.max_keywords", 10)
	viper.SetDefault("keywords.ngram_min", 1)
	viper.SetDefault("keywords.ngram_max", 2)
	viper.SetDefault("keywords.diversity", 0.7)
	viper.SetDefault("keywords.stop_words", []string{})
	viper.SetDefault("workers", 0)
	viper.SetDefault("prompts_file", "")
}

// pipelineConfig reads the merged flag, environment, and file settings.
// API keys fall back to loaded secrets and then provider env variables.
func pipelineConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = defaultTimeout
	}
	cfg.HTTP.Mailto = secrets.Resolve(cfg.HTTP.Mailto, loadedSecrets, secrets.CrossrefMailto)
	cfg.LLM.APIKey = secrets.Resolve(cfg.LLM.APIKey, loadedSecrets, providerKey(cfg.LLM.Provider))
	cfg.Embedding.APIKey = secrets.Resolve(cfg.Embedding.APIKey, loadedSecrets, providerKey(cfg.Embedding.Provider))
	return cfg, nil
}

// providerKey names the secret holding a provider's API key.
func providerKey(provider string) string {
	switch strings.ToLower(provider) {
	case "claude", "anthropic":
		return secrets.AnthropicKey
	case "gemini":
		return secrets.GeminiKey
	}
	return secrets.OpenAIKey
}

// backends selects which model clients a command constructs.
type backends struct {
	generator bool
	embedder  bool
	// optionalEmbedder downgrades an embedder construction failure to a
	// warning.
	optionalEmbedder bool
}

// buildDeps wires the registry gateways and the requested model clients.
// The returned cleanup closes any client that holds a connection.
func buildDeps(ctx context.Context, cfg types.PipelineConfig, b backends, log io.Writer) (pipeline.Deps, func(), error) {
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	deps := pipeline.Deps{
		Bibliographic: &crossref.Client{HTTP: httpClient, Config: cfg.HTTP},
		Datasets:      &dandi.Client{HTTP: httpClient, Config: cfg.HTTP},
		Identity:      &orcid.Client{HTTP: httpClient, Config: cfg.HTTP},
		Config:        cfg,
		Log:           log,
	}

	var closers []io.Closer
	cleanup := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	prompts := prompt.Default()
	if cfg.PromptsFile != "" {
		p, err := prompt.LoadFile(cfg.PromptsFile)
		if err != nil {
			return deps, cleanup, err
		}
		prompts = p
	}
	deps.Prompts = prompts

	if b.generator {
		gen, err := llm.NewGenerator(ctx, cfg.LLM)
		if err != nil {
			return deps, cleanup, fmt.Errorf("creating %s client: %w", cfg.LLM.Provider, err)
		}
		if c, ok := gen.(io.Closer); ok {
			closers = append(closers, c)
		}
		deps.Gen = gen
	}

	if b.embedder || b.optionalEmbedder {
		emb, err := llm.NewEmbedder(ctx, cfg.Embedding)
		switch {
		case err == nil:
			if c, ok := emb.(io.Closer); ok {
				closers = append(closers, c)
			}
			deps.Embedder = emb
		case b.embedder:
			return deps, cleanup, fmt.Errorf("creating %s embedding client: %w", cfg.Embedding.Provider, err)
		default:
			fmt.Fprintf(log, "warning: extractive keywords disabled: %v\n", err)
		}
	}

	return deps, cleanup, nil
}

// newExtraction loads configuration and fetches both records.
func newExtraction(ctx context.Context, doi, datasetID string, b backends) (*pipeline.Extraction, func(), error) {
	noop := func() {}
	cfg, err := pipelineConfig()
	if err != nil {
		return nil, noop, err
	}
	deps, cleanup, err := buildDeps(ctx, cfg, b, os.Stderr)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	x, err := pipeline.New(ctx, deps, doi, datasetID)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	return x, cleanup, nil
}
