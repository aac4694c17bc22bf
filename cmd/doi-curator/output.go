// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doi-curator/internal/pipeline"
)

// outputFormat reads the --json, --yaml, and --csl flags. At most one may
// be set, and --csl only where allowCSL is true.
func outputFormat(cmd *cobra.Command, allowCSL bool) (pipeline.Format, error) {
	format := pipeline.FormatText
	for _, f := range []pipeline.Format{pipeline.FormatJSON, pipeline.FormatYAML, pipeline.FormatCSL} {
		if set, _ := cmd.Flags().GetBool(string(f)); set {
			if format != pipeline.FormatText {
				return "", fmt.Errorf("--%s and --%s are mutually exclusive", format, f)
			}
			format = f
		}
	}
	if format == pipeline.FormatCSL && !allowCSL {
		return "", fmt.Errorf("--csl is only supported by extract")
	}
	return format, nil
}

// writeValue renders a partial result: v for structured formats, text
// otherwise.
func writeValue(w io.Writer, f pipeline.Format, v any, text string) error {
	switch f {
	case pipeline.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case pipeline.FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	_, err := io.WriteString(w, text)
	return err
}
