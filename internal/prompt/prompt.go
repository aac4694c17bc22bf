// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt holds the prompt templates sent to the generative-text
// backend and renders them from named fields. The built-in wording can be
// replaced per template from a TOML file.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/pelletier/go-toml/v2"
)

// Texts is the raw template source for every prompt. It is also the shape
// of the TOML override file; empty fields keep the built-in text.
type Texts struct {
	Version           string `toml:"version"`
	StudyTargetSystem string `toml:"study_target_system"`
	StudyTargetUser   string `toml:"study_target_user"`
	KeywordsSystem    string `toml:"keywords_system"`
	KeywordsUser      string `toml:"keywords_user"`
	CombinedSystem    string `toml:"combined_system"`
	CombinedUser      string `toml:"combined_user"`
}

// DefaultTexts returns the built-in templates.
func DefaultTexts() Texts {
	return Texts{
		Version:           Version,
		StudyTargetSystem: studyTargetSystem,
		StudyTargetUser:   studyTargetUser,
		KeywordsSystem:    keywordsSystem,
		KeywordsUser:      keywordsUser,
		CombinedSystem:    combinedSystem,
		CombinedUser:      combinedUser,
	}
}

// Set is a parsed, ready-to-render collection of templates.
type Set struct {
	version string
	tmpl    map[string]*template.Template
}

// StudyTargetInput fills the study-target templates.
type StudyTargetInput struct {
	Expert             string
	DatasetTitle       string
	DatasetDescription string
	DOITitle           string
	DOIAbstract        string
}

// KeywordsInput fills the keyword templates.
type KeywordsInput struct {
	StudyTarget string
	Count       int
}

// CombinedInput fills the combined study-target and keyword templates.
type CombinedInput struct {
	Subjects           string
	Count              int
	DatasetTitle       string
	DatasetDescription string
	DOITitle           string
	DOIAbstract        string
}

// Rendered is one system/user prompt pair.
type Rendered struct {
	System string
	User   string
}

// Default returns the built-in Set. It panics only if the built-in
// templates fail to parse, which tests rule out.
func Default() *Set {
	s, err := Parse(DefaultTexts())
	if err != nil {
		panic(err)
	}
	return s
}

// Parse compiles t into a Set.
func Parse(t Texts) (*Set, error) {
	sources := map[string]string{
		"study_target_system": t.StudyTargetSystem,
		"study_target_user":   t.StudyTargetUser,
		"keywords_system":     t.KeywordsSystem,
		"keywords_user":       t.KeywordsUser,
		"combined_system":     t.CombinedSystem,
		"combined_user":       t.CombinedUser,
	}
	s := &Set{version: t.Version, tmpl: make(map[string]*template.Template, len(sources))}
	for name, src := range sources {
		if strings.TrimSpace(src) == "" {
			return nil, fmt.Errorf("prompt %s is empty", name)
		}
		tm, err := template.New(name).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing prompt %s: %w", name, err)
		}
		s.tmpl[name] = tm
	}
	return s, nil
}

// LoadFile reads a TOML override file. Fields left empty keep the
// built-in text; the version defaults to "<builtin>+custom".
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prompts file %s: %w", path, err)
	}
	var over Texts
	if err := toml.Unmarshal(data, &over); err != nil {
		return nil, fmt.Errorf("parsing prompts file %s: %w", path, err)
	}

	t := DefaultTexts()
	t.Version = Version + "+custom"
	merge(&t.Version, over.Version)
	merge(&t.StudyTargetSystem, over.StudyTargetSystem)
	merge(&t.StudyTargetUser, over.StudyTargetUser)
	merge(&t.KeywordsSystem, over.KeywordsSystem)
	merge(&t.KeywordsUser, over.KeywordsUser)
	merge(&t.CombinedSystem, over.CombinedSystem)
	merge(&t.CombinedUser, over.CombinedUser)
	return Parse(t)
}

func merge(dst *string, src string) {
	if strings.TrimSpace(src) != "" {
		*dst = src
	}
}

// Version returns the version label of the templates in s.
func (s *Set) Version() string { return s.version }

// StudyTarget renders the study-target prompt pair.
func (s *Set) StudyTarget(in StudyTargetInput) (Rendered, error) {
	return s.render("study_target", in)
}

// Keywords renders the keyword-extraction prompt pair.
func (s *Set) Keywords(in KeywordsInput) (Rendered, error) {
	return s.render("keywords", in)
}

// Combined renders the combined study-target and keyword prompt pair.
func (s *Set) Combined(in CombinedInput) (Rendered, error) {
	return s.render("combined", in)
}

func (s *Set) render(prefix string, data any) (Rendered, error) {
	sys, err := s.execute(prefix+"_system", data)
	if err != nil {
		return Rendered{}, err
	}
	usr, err := s.execute(prefix+"_user", data)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{System: sys, User: usr}, nil
}

func (s *Set) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl[name].Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

// ExpertClause returns the subject-expertise framing for the study-target
// prompt, or "" when there are no subjects.
func ExpertClause(subjects []string) string {
	if len(subjects) == 0 {
		return ""
	}
	return ExpertClausePrefix + strings.Join(subjects, ", ")
}

// OrPlaceholder returns the value, or placeholder when the value is
// nil or blank. The model never receives an empty substitution.
func OrPlaceholder(v *string, placeholder string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return placeholder
	}
	return *v
}
