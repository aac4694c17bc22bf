// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the registry gateways.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. It bounds every upstream call,
	// including identity registry lookups.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// Mailto is sent to CrossRef for polite pool access (optional).
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto"`
}

// LLMConfig holds settings for the generative-text backend.
type LLMConfig struct {
	// Provider selects the backend: openai, claude, or gemini.
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier (e.g. "gpt-3.5-turbo").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key. Never serialized.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint (optional).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// StudyTargetMaxTokens caps the study-target completion length (default 100).
	StudyTargetMaxTokens int `json:"study_target_max_tokens" yaml:"study_target_max_tokens" mapstructure:"study_target_max_tokens"`
}

// EmbeddingConfig holds settings for the embedding backend used by
// extractive keyword extraction.
type EmbeddingConfig struct {
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`
	Model    string `json:"model" yaml:"model" mapstructure:"model"`
	APIKey   string `json:"-" yaml:"-" mapstructure:"api_key"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// KeywordConfig holds settings for keyword extraction.
type KeywordConfig struct {
	// Mode is the default extraction mode: "llm" or "keybert".
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`

	// MaxKeywords is the target keyword count (default 10).
	MaxKeywords int `json:"max_keywords" yaml:"max_keywords" mapstructure:"max_keywords"`

	// NGramMin and NGramMax bound the phrase length in words for extractive
	// mode (default 1 and 2).
	NGramMin int `json:"ngram_min" yaml:"ngram_min" mapstructure:"ngram_min"`
	NGramMax int `json:"ngram_max" yaml:"ngram_max" mapstructure:"ngram_max"`

	// Diversity is the MMR diversity for extractive mode (default 0.7).
	Diversity float64 `json:"diversity" yaml:"diversity" mapstructure:"diversity"`

	// StopWords are removed from extractive candidates. Empty disables filtering.
	StopWords []string `json:"stop_words,omitempty" yaml:"stop_words,omitempty" mapstructure:"stop_words"`
}

// PipelineConfig groups all settings for one curation run.
type PipelineConfig struct {
	HTTP      HTTPConfig      `json:"http" yaml:"http" mapstructure:"http"`
	LLM       LLMConfig       `json:"llm" yaml:"llm" mapstructure:"llm"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding" mapstructure:"embedding"`
	Keywords  KeywordConfig   `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// Workers bounds the contributor resolution pool (default: NumCPU).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// PromptsFile is an optional TOML file overriding prompt templates.
	PromptsFile string `json:"prompts_file,omitempty" yaml:"prompts_file,omitempty" mapstructure:"prompts_file"`
}
