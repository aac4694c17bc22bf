// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package narrative synthesizes the one-sentence study target for a
// dataset from its bibliographic and dataset evidence.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/doi-curator/internal/llm"
	"github.com/pdiddy/doi-curator/internal/prompt"
	"github.com/pdiddy/doi-curator/pkg/types"
)

// DefaultMaxTokens caps the study-target completion.
const DefaultMaxTokens = 100

// ErrMalformedResponse is returned when a combined response cannot be
// parsed into a study target and keyword list.
var ErrMalformedResponse = errors.New("malformed combined response")

// Evidence is the text the synthesizer reasons over. Nil fields are
// absent and render as placeholders.
type Evidence struct {
	Subjects           []string
	DatasetTitle       *string
	DatasetDescription *string
	DOITitle           *string
	DOIAbstract        *string
}

// EvidenceFrom gathers evidence from the two fetched records. Either
// record may be nil.
func EvidenceFrom(bib *types.BibliographicRecord, ds *types.DatasetRecord) Evidence {
	var ev Evidence
	if bib != nil {
		ev.Subjects = bib.Subjects
		ev.DOITitle = bib.Title
		ev.DOIAbstract = bib.Abstract
	}
	if ds != nil {
		ev.DatasetTitle = ds.Name
		ev.DatasetDescription = ds.Description
	}
	return ev
}

// CombinedResult is the parsed output of a combined invocation.
type CombinedResult struct {
	StudyTarget string   `json:"study_target"`
	Keywords    []string `json:"keywords"`
}

// Synthesizer renders prompts and invokes the generative backend.
type Synthesizer struct {
	Gen     llm.Generator
	Prompts *prompt.Set

	// Model overrides the backend's default model when non-empty.
	Model string

	// MaxTokens caps the study-target completion. Zero means DefaultMaxTokens.
	MaxTokens int
}

func (s *Synthesizer) prompts() *prompt.Set {
	if s.Prompts == nil {
		s.Prompts = prompt.Default()
	}
	return s.Prompts
}

// StudyTarget asks the model for a single sentence describing what the
// dataset studies. The model is invoked even when every evidence field
// is absent.
func (s *Synthesizer) StudyTarget(ctx context.Context, ev Evidence) (string, error) {
	r, err := s.prompts().StudyTarget(prompt.StudyTargetInput{
		Expert:             prompt.ExpertClause(ev.Subjects),
		DatasetTitle:       prompt.OrPlaceholder(ev.DatasetTitle, prompt.StudyTargetPlaceholder),
		DatasetDescription: prompt.OrPlaceholder(ev.DatasetDescription, prompt.StudyTargetPlaceholder),
		DOITitle:           prompt.OrPlaceholder(ev.DOITitle, prompt.StudyTargetPlaceholder),
		DOIAbstract:        prompt.OrPlaceholder(ev.DOIAbstract, prompt.StudyTargetPlaceholder),
	})
	if err != nil {
		return "", err
	}

	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	out, err := s.Gen.Generate(ctx, llm.Request{
		System:      r.System,
		Prompt:      r.User,
		Model:       s.Model,
		Temperature: 0,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generating study target: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Combined produces the study target and up to n keywords in one call.
// The response must hold a JSON object with both keys; anything else is
// ErrMalformedResponse and no partial values are returned.
func (s *Synthesizer) Combined(ctx context.Context, ev Evidence, n int) (CombinedResult, error) {
	r, err := s.prompts().Combined(prompt.CombinedInput{
		Subjects:           strings.Join(ev.Subjects, ", "),
		Count:              n,
		DatasetTitle:       prompt.OrPlaceholder(ev.DatasetTitle, prompt.CombinedPlaceholder),
		DatasetDescription: prompt.OrPlaceholder(ev.DatasetDescription, prompt.CombinedPlaceholder),
		DOITitle:           prompt.OrPlaceholder(ev.DOITitle, prompt.CombinedPlaceholder),
		DOIAbstract:        prompt.OrPlaceholder(ev.DOIAbstract, prompt.CombinedPlaceholder),
	})
	if err != nil {
		return CombinedResult{}, err
	}

	out, err := s.Gen.Generate(ctx, llm.Request{
		System:      r.System,
		Prompt:      r.User,
		Model:       s.Model,
		Temperature: 0,
	})
	if err != nil {
		return CombinedResult{}, fmt.Errorf("generating combined response: %w", err)
	}
	return ParseCombined(out)
}

// ParseCombined extracts the outermost JSON object from a model response
// and decodes it. Surrounding prose and markdown fences are ignored.
func ParseCombined(response string) (CombinedResult, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end < start {
		return CombinedResult{}, fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}

	var raw struct {
		StudyTarget *string   `json:"study_target"`
		Keywords    *[]string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return CombinedResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.StudyTarget == nil {
		return CombinedResult{}, fmt.Errorf("%w: missing study_target", ErrMalformedResponse)
	}
	if raw.Keywords == nil {
		return CombinedResult{}, fmt.Errorf("%w: missing keywords", ErrMalformedResponse)
	}
	return CombinedResult{
		StudyTarget: strings.TrimSpace(*raw.StudyTarget),
		Keywords:    *raw.Keywords,
	}, nil
}
