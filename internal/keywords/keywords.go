// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords extracts a ranked keyword list from a study-target
// sentence, either by asking the generative backend or by ranking
// candidate phrases against the sentence in embedding space.
package keywords

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/doi-curator/internal/llm"
	"github.com/pdiddy/doi-curator/internal/prompt"
	"github.com/pdiddy/doi-curator/pkg/types"
)

// Mode selects the extraction strategy.
type Mode string

const (
	// ModeLLM asks the generative backend for a comma-separated list.
	ModeLLM Mode = "llm"
	// ModeExtractive ranks n-grams of the text by embedding similarity.
	ModeExtractive Mode = "keybert"
)

// Defaults applied when the corresponding config field is zero.
const (
	DefaultMaxKeywords = 10
	DefaultNGramMin    = 1
	DefaultNGramMax    = 2
	DefaultDiversity   = 0.7

	maxNGram = 4
)

// ErrUnknownMode is returned for a mode flag that names no strategy.
var ErrUnknownMode = errors.New("invalid keyword extraction type")

// ParseMode maps a flag value to a Mode. The empty string selects ModeLLM.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLLM:
		return ModeLLM, nil
	case ModeExtractive:
		return ModeExtractive, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// DefaultConfig returns the keyword settings used when none are configured.
func DefaultConfig() types.KeywordConfig {
	return types.KeywordConfig{
		Mode:        string(ModeLLM),
		MaxKeywords: DefaultMaxKeywords,
		NGramMin:    DefaultNGramMin,
		NGramMax:    DefaultNGramMax,
		Diversity:   DefaultDiversity,
	}
}

// Extractor produces keywords in either mode. Gen is required for ModeLLM
// and Embedder for ModeExtractive.
type Extractor struct {
	Gen      llm.Generator
	Embedder llm.Embedder
	Prompts  *prompt.Set

	// Model overrides the generative backend's default model.
	Model string

	// Config holds limits and extractive settings. Diversity is used as
	// given; zero disables MMR.
	Config types.KeywordConfig
}

// Extract returns keywords for studyTarget. An empty study target yields
// no keywords and no backend call.
func (e *Extractor) Extract(ctx context.Context, studyTarget string, mode Mode) ([]string, error) {
	if strings.TrimSpace(studyTarget) == "" {
		return nil, nil
	}
	switch mode {
	case ModeLLM:
		return e.extractLLM(ctx, studyTarget)
	case ModeExtractive:
		return e.extractEmbedding(ctx, studyTarget)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

func (e *Extractor) maxKeywords() int {
	if e.Config.MaxKeywords > 0 {
		return e.Config.MaxKeywords
	}
	return DefaultMaxKeywords
}

func (e *Extractor) extractLLM(ctx context.Context, studyTarget string) ([]string, error) {
	if e.Gen == nil {
		return nil, errors.New("no generative backend configured")
	}
	prompts := e.Prompts
	if prompts == nil {
		prompts = prompt.Default()
	}
	r, err := prompts.Keywords(prompt.KeywordsInput{StudyTarget: studyTarget, Count: e.maxKeywords()})
	if err != nil {
		return nil, err
	}

	out, err := e.Gen.Generate(ctx, llm.Request{
		System:      r.System,
		Prompt:      r.User,
		Model:       e.Model,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("generating keywords: %w", err)
	}
	return SplitList(out), nil
}

// SplitList splits a model's single-row CSV answer on ", ". The result is
// neither padded nor truncated to the requested count.
func SplitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, ", ")
}
