// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doi-curator/internal/llm"
	"github.com/pdiddy/doi-curator/pkg/types"
)

// mockGenerator records requests and replays a canned response.
type mockGenerator struct {
	response string
	err      error
	calls    []llm.Request
}

func (m *mockGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	m.calls = append(m.calls, req)
	return m.response, m.err
}

func str(s string) *string { return &s }

func TestStudyTargetExpertClause(t *testing.T) {
	gen := &mockGenerator{response: "  The study target is to map V1.\n"}
	s := &Synthesizer{Gen: gen}

	got, err := s.StudyTarget(context.Background(), Evidence{
		Subjects:           []string{"neuroscience", "decision-making"},
		DatasetTitle:       str("Mouse V1"),
		DatasetDescription: str("Imaging"),
		DOITitle:           str("Tuning"),
		DOIAbstract:        str("Abstract"),
	})
	require.NoError(t, err)
	assert.Equal(t, "The study target is to map V1.", got)

	require.Len(t, gen.calls, 1)
	req := gen.calls[0]
	assert.Contains(t, req.Prompt, "You are an expert in the following subjects: neuroscience, decision-making")
	assert.Equal(t, float32(0), req.Temperature)
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
	assert.NotEmpty(t, req.System)
}

func TestStudyTargetAllAbsent(t *testing.T) {
	gen := &mockGenerator{response: "The study target is to..."}
	s := &Synthesizer{Gen: gen, MaxTokens: 50, Model: "gpt-4o"}

	_, err := s.StudyTarget(context.Background(), Evidence{})
	require.NoError(t, err)

	require.Len(t, gen.calls, 1)
	req := gen.calls[0]
	assert.Equal(t, 4, strings.Count(req.Prompt, ": None\n"))
	assert.NotContains(t, req.Prompt, "following subjects")
	assert.Equal(t, 50, req.MaxTokens)
	assert.Equal(t, "gpt-4o", req.Model)
}

func TestStudyTargetBackendError(t *testing.T) {
	s := &Synthesizer{Gen: &mockGenerator{err: errors.New("rate limited")}}
	_, err := s.StudyTarget(context.Background(), Evidence{})
	assert.ErrorContains(t, err, "rate limited")
}

func TestEvidenceFrom(t *testing.T) {
	bib := &types.BibliographicRecord{Title: str("T"), Abstract: str("A"), Subjects: []string{"neuro"}}
	ds := &types.DatasetRecord{Name: str("N"), Description: str("D")}

	ev := EvidenceFrom(bib, ds)
	assert.Equal(t, "T", *ev.DOITitle)
	assert.Equal(t, "A", *ev.DOIAbstract)
	assert.Equal(t, "N", *ev.DatasetTitle)
	assert.Equal(t, "D", *ev.DatasetDescription)
	assert.Equal(t, []string{"neuro"}, ev.Subjects)

	assert.Equal(t, Evidence{}, EvidenceFrom(nil, nil))
}

func TestCombined(t *testing.T) {
	gen := &mockGenerator{response: "Here you go:\n```json\n{\"study_target\": \"The study target is to map V1.\", \"keywords\": [\"V1\", \"orientation tuning\"]}\n```"}
	s := &Synthesizer{Gen: gen}

	got, err := s.Combined(context.Background(), Evidence{Subjects: []string{"neuroscience"}}, 5)
	require.NoError(t, err)
	assert.Equal(t, "The study target is to map V1.", got.StudyTarget)
	assert.Equal(t, []string{"V1", "orientation tuning"}, got.Keywords)

	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0].System, "neuroscience expert in neuroscience and")
	assert.Equal(t, 4, strings.Count(gen.calls[0].Prompt, ": NA\n"))
}

func TestCombinedMalformed(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose only", "I could not determine a study target."},
		{"broken json", `{"study_target": "x", "keywords": [}`},
		{"missing keywords", `{"study_target": "x"}`},
		{"missing study target", `{"keywords": ["a"]}`},
		{"wrong types", `{"study_target": 3, "keywords": "a"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &Synthesizer{Gen: &mockGenerator{response: tc.response}}
			got, err := s.Combined(context.Background(), Evidence{}, 10)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Equal(t, CombinedResult{}, got)
		})
	}
}

func TestCombinedBackendError(t *testing.T) {
	s := &Synthesizer{Gen: &mockGenerator{err: errors.New("boom")}}
	_, err := s.Combined(context.Background(), Evidence{}, 10)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedResponse))
}
