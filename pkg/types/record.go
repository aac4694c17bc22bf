// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the doi-curator pipeline:
// the bibliographic and dataset records fetched from upstream registries,
// the resolved contributor model, and the assembled curation result.
package types

// Affiliation is an institutional affiliation attached to a contributor.
type Affiliation struct {
	// ID is the affiliation identifier (often a ROR URL). May be empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is the affiliation display name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RawContributor is one author entry as returned by the bibliographic
// registry. Every field is optional; empty means absent.
type RawContributor struct {
	Family       string        `json:"family,omitempty" yaml:"family,omitempty"`
	Given        string        `json:"given,omitempty" yaml:"given,omitempty"`
	ORCID        string        `json:"ORCID,omitempty" yaml:"orcid,omitempty"`
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	ROR          string        `json:"ROR,omitempty" yaml:"ror,omitempty"`
	Email        string        `json:"email,omitempty" yaml:"email,omitempty"`
	URL          string        `json:"url,omitempty" yaml:"url,omitempty"`
	Role         string        `json:"role,omitempty" yaml:"role,omitempty"`
	Affiliations []Affiliation `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// IsPerson reports whether the entry describes a person. An entry is a
// person if it carries an ORCID, a family name, or a given name; every
// other entry is an organization.
func (r RawContributor) IsPerson() bool {
	return r.ORCID != "" || r.Family != "" || r.Given != ""
}

// BibliographicRecord holds the fields of a DOI lookup used by the pipeline.
type BibliographicRecord struct {
	// DOI is the trimmed DOI the record was fetched for.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the work title, nil when the registry has none.
	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	// Abstract is the plain-text abstract, nil when absent.
	Abstract *string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Subjects lists the registry's subject tags in source order.
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`

	// Authors lists the raw contributor entries in source order.
	Authors []RawContributor `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// DatasetRecord holds the descriptive fields of a dataset version.
type DatasetRecord struct {
	ID          string  `json:"id" yaml:"id"`
	Version     string  `json:"version" yaml:"version"`
	Name        *string `json:"name,omitempty" yaml:"name,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
