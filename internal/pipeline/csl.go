// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doi-curator/pkg/types"
)

// CSLItem is a dataset citation in CSL (Citation Style Language) form.
// Field names follow the CSL-YAML schema so the output is consumable by
// Pandoc and reference managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title,omitempty"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Keyword  string    `yaml:"keyword,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
	Note     string    `yaml:"note,omitempty"`
}

// CSLName is a person or organization name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// WriteCSL writes res as a one-item CSL-YAML list.
func WriteCSL(w io.Writer, res types.Result) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode([]CSLItem{ToCSL(res)})
}

// ToCSL converts a result into a dataset citation. The study target
// becomes the abstract and the related publication is noted by DOI.
func ToCSL(res types.Result) CSLItem {
	item := CSLItem{
		ID:      res.DatasetID,
		Type:    "dataset",
		Title:   types.Deref(res.DatasetTitle),
		Keyword: strings.Join(res.Keywords, ", "),
		URL:     "https://dandiarchive.org/dandiset/" + res.DatasetID,
	}
	if res.StudyTarget != nil {
		item.Abstract = *res.StudyTarget
	}
	if res.DOI != "" {
		item.Note = "Related publication: https://doi.org/" + res.DOI
	}

	for _, c := range res.Contributors {
		if c.Name == nil {
			continue
		}
		item.Author = append(item.Author, cslName(c))
	}
	return item
}

// cslName splits a person's "Family, Given" display name. Organizations
// and names without a comma use the literal field.
func cslName(c types.Contributor) CSLName {
	name := *c.Name
	if c.SchemaKey == types.KindPerson.SchemaKey() {
		if family, given, ok := strings.Cut(name, ", "); ok {
			return CSLName{Family: family, Given: given}
		}
	}
	return CSLName{Literal: name}
}
