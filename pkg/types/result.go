// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Result is the assembled curation record for one DOI and dataset pair.
// Fields whose producing step failed are nil and are propagated as such.
type Result struct {
	// RunID identifies the resolution run that produced this result.
	RunID string `json:"run_id" yaml:"run_id"`

	DOI       string `json:"doi" yaml:"doi"`
	DatasetID string `json:"dandiset_id" yaml:"dandiset_id"`

	// DatasetTitle is the dandiset name, when the record has one.
	DatasetTitle *string `json:"dandiset_title,omitempty" yaml:"dandiset_title,omitempty"`

	Contributors []Contributor `json:"contributors" yaml:"contributors"`
	StudyTarget  *string       `json:"study_target" yaml:"study_target"`
	Keywords     []string      `json:"keywords" yaml:"keywords"`
}
