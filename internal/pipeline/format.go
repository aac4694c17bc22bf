// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doi-curator/pkg/types"
)

// Format selects how a Result is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSL  Format = "csl"
)

// Write renders res to w in the given format.
func Write(w io.Writer, res types.Result, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatCSL:
		return WriteCSL(w, res)
	case FormatText, "":
		_, err := io.WriteString(w, Text(res))
		return err
	}
	return fmt.Errorf("unknown output format %q", f)
}

// Text renders res for a terminal. Contributors without a name are
// omitted here; structured formats keep them.
func Text(res types.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "DOI:       %s\n", res.DOI)
	fmt.Fprintf(&b, "Dandiset:  %s\n", res.DatasetID)
	if res.DatasetTitle != nil {
		fmt.Fprintf(&b, "Title:     %s\n", *res.DatasetTitle)
	}
	if res.RunID != "" {
		fmt.Fprintf(&b, "Run:       %s\n", res.RunID)
	}

	b.WriteString("\nContributors:\n")
	b.WriteString(ContributorsText(res.Contributors))

	b.WriteString("\nStudy target:\n")
	if res.StudyTarget != nil {
		fmt.Fprintf(&b, "  %s\n", *res.StudyTarget)
	} else {
		b.WriteString("  (unavailable)\n")
	}

	b.WriteString("\nKeywords:\n")
	b.WriteString(KeywordsText(res.Keywords))
	return b.String()
}

// ContributorsText renders one line per named contributor.
func ContributorsText(cs []types.Contributor) string {
	var b strings.Builder
	n := 0
	for _, c := range cs {
		if c.Name == nil {
			continue
		}
		n++
		fmt.Fprintf(&b, "  %-12s  %s", c.SchemaKey, *c.Name)
		if c.Identifier != nil {
			fmt.Fprintf(&b, "  [%s]", *c.Identifier)
		}
		if c.Email != nil {
			fmt.Fprintf(&b, "  <%s>", *c.Email)
		}
		if c.URL != nil {
			fmt.Fprintf(&b, "  %s", *c.URL)
		}
		b.WriteString("\n")
	}
	if n == 0 {
		b.WriteString("  (none)\n")
	}
	return b.String()
}

// KeywordsText renders keywords as a numbered list.
func KeywordsText(kws []string) string {
	if kws == nil {
		return "  (unavailable)\n"
	}
	var b strings.Builder
	for i, k := range kws {
		fmt.Fprintf(&b, "  %2d. %s\n", i+1, k)
	}
	return b.String()
}
