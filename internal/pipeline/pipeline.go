// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline correlates a DOI with a dataset record and assembles
// the curation result: contributors, study target, and keywords.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/doi-curator/internal/contributor"
	"github.com/pdiddy/doi-curator/internal/crossref"
	"github.com/pdiddy/doi-curator/internal/dandi"
	"github.com/pdiddy/doi-curator/internal/keywords"
	"github.com/pdiddy/doi-curator/internal/llm"
	"github.com/pdiddy/doi-curator/internal/narrative"
	"github.com/pdiddy/doi-curator/internal/prompt"
	"github.com/pdiddy/doi-curator/pkg/types"
)

var (
	// ErrInvalidInput is returned when the DOI or dataset id is malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a registry has no record for the input.
	ErrNotFound = errors.New("record not found")
)

// BibliographicSource fetches a bibliographic record by DOI.
type BibliographicSource interface {
	Lookup(ctx context.Context, doi string) (*types.BibliographicRecord, error)
}

// DatasetSource fetches a dataset record by id and version.
type DatasetSource interface {
	Lookup(ctx context.Context, id, version string) (*types.DatasetRecord, error)
}

// Deps are the collaborators of an Extraction. Gen is needed for study
// targets and generative keywords; Embedder only for extractive keywords.
type Deps struct {
	Bibliographic BibliographicSource
	Datasets      DatasetSource
	Identity      contributor.IdentityLookup
	Gen           llm.Generator
	Embedder      llm.Embedder
	Prompts       *prompt.Set
	Config        types.PipelineConfig

	// Log receives warnings about degraded fields. Nil discards them.
	Log io.Writer
}

// Extraction holds the fetched records for one DOI and dataset pair. It
// is not safe for concurrent use; create one per request.
type Extraction struct {
	deps      Deps
	doi       string
	datasetID dandi.DatasetID
	bib       *types.BibliographicRecord
	dataset   *types.DatasetRecord

	studyTarget *string
}

// New validates the inputs, then fetches both records. Validation
// happens before any network call. The DOI may carry a doi: prefix or a
// resolver URL.
func New(ctx context.Context, deps Deps, doi, datasetID string) (*Extraction, error) {
	kind, doi := crossref.Classify(doi)
	switch kind {
	case crossref.TypeArxiv:
		return nil, fmt.Errorf("%w: arXiv assigned DOIs are not supported", ErrInvalidInput)
	case crossref.TypeUnknown:
		return nil, fmt.Errorf("%w: DOI %q", ErrInvalidInput, doi)
	}
	id, err := dandi.ParseDatasetID(datasetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bib, err := deps.Bibliographic.Lookup(ctx, doi)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if bib == nil {
		return nil, fmt.Errorf("%w: DOI %s", ErrNotFound, doi)
	}
	ds, err := deps.Datasets.Lookup(ctx, id.ID, id.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if ds == nil {
		return nil, fmt.Errorf("%w: dandiset %s", ErrNotFound, id)
	}

	return &Extraction{deps: deps, doi: doi, datasetID: id, bib: bib, dataset: ds}, nil
}

// DOI returns the trimmed DOI.
func (e *Extraction) DOI() string { return e.doi }

// DatasetID returns the parsed dataset id.
func (e *Extraction) DatasetID() dandi.DatasetID { return e.datasetID }

// Bibliographic returns the fetched bibliographic record.
func (e *Extraction) Bibliographic() *types.BibliographicRecord { return e.bib }

// Dataset returns the fetched dataset record.
func (e *Extraction) Dataset() *types.DatasetRecord { return e.dataset }

func (e *Extraction) warnf(format string, args ...any) {
	if e.deps.Log != nil {
		fmt.Fprintf(e.deps.Log, format, args...)
	}
}

// Contributors resolves the record's authors. Nil when the record lists
// none.
func (e *Extraction) Contributors(ctx context.Context) []types.Contributor {
	r := &contributor.Resolver{
		Lookup:  e.deps.Identity,
		Workers: e.deps.Config.Workers,
		Log:     e.deps.Log,
	}
	return r.Resolve(ctx, e.bib.Authors)
}

func (e *Extraction) synthesizer() *narrative.Synthesizer {
	return &narrative.Synthesizer{
		Gen:       e.deps.Gen,
		Prompts:   e.deps.Prompts,
		Model:     e.deps.Config.LLM.Model,
		MaxTokens: e.deps.Config.LLM.StudyTargetMaxTokens,
	}
}

// StudyTarget returns the synthesized study target, computing it at most
// once per successful call. A backend failure is logged and yields nil.
func (e *Extraction) StudyTarget(ctx context.Context) *string {
	if e.studyTarget != nil {
		return e.studyTarget
	}
	if e.deps.Gen == nil {
		e.warnf("warning: study target unavailable: no generative backend configured\n")
		return nil
	}
	st, err := e.synthesizer().StudyTarget(ctx, narrative.EvidenceFrom(e.bib, e.dataset))
	if err != nil {
		e.warnf("warning: study target unavailable: %v\n", err)
		return nil
	}
	e.studyTarget = &st
	return e.studyTarget
}

// Keywords extracts keywords from override when non-empty, otherwise from
// the study target. An unrecognized mode or any failure is logged and
// yields nil.
func (e *Extraction) Keywords(ctx context.Context, override, mode string) []string {
	m, err := keywords.ParseMode(mode)
	if err != nil {
		e.warnf("warning: %v\n", err)
		return nil
	}

	studyTarget := strings.TrimSpace(override)
	if studyTarget == "" {
		st := e.StudyTarget(ctx)
		if st == nil {
			return nil
		}
		studyTarget = *st
	}

	x := &keywords.Extractor{
		Gen:      e.deps.Gen,
		Embedder: e.deps.Embedder,
		Prompts:  e.deps.Prompts,
		Model:    e.deps.Config.LLM.Model,
		Config:   e.deps.Config.Keywords,
	}
	kws, err := x.Extract(ctx, studyTarget, m)
	if err != nil {
		e.warnf("warning: keywords unavailable: %v\n", err)
		return nil
	}
	return kws
}

// CombinedStudyTarget produces the study target and keywords in a single
// generative call. A malformed response is returned as an error.
func (e *Extraction) CombinedStudyTarget(ctx context.Context) (narrative.CombinedResult, error) {
	if e.deps.Gen == nil {
		return narrative.CombinedResult{}, errors.New("no generative backend configured")
	}
	n := e.deps.Config.Keywords.MaxKeywords
	if n <= 0 {
		n = keywords.DefaultMaxKeywords
	}
	return e.synthesizer().Combined(ctx, narrative.EvidenceFrom(e.bib, e.dataset), n)
}

func (e *Extraction) newResult(ctx context.Context) types.Result {
	return types.Result{
		RunID:        uuid.NewString(),
		DOI:          e.doi,
		DatasetID:    e.datasetID.String(),
		DatasetTitle: e.dataset.Name,
		Contributors: e.Contributors(ctx),
	}
}

// Assemble builds the full result. Fields whose step failed are nil.
func (e *Extraction) Assemble(ctx context.Context, mode string) types.Result {
	res := e.newResult(ctx)
	res.StudyTarget = e.StudyTarget(ctx)
	if res.StudyTarget != nil {
		res.Keywords = e.Keywords(ctx, *res.StudyTarget, mode)
	}
	return res
}

// AssembleCombined builds the result using one combined generative call
// for the study target and keywords.
func (e *Extraction) AssembleCombined(ctx context.Context) (types.Result, error) {
	c, err := e.CombinedStudyTarget(ctx)
	if err != nil {
		return types.Result{}, err
	}
	res := e.newResult(ctx)
	res.StudyTarget = &c.StudyTarget
	res.Keywords = c.Keywords
	return res, nil
}
