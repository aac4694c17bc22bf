// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doi-curator/internal/pipeline"
	"github.com/pdiddy/doi-curator/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <doi> <dandiset-id>",
	Short: "Build the full curation result for a DOI and dandiset",
	Long: `Extract fetches the DOI from CrossRef and the dandiset (id/version) from
DANDI, then resolves contributors, synthesizes the study target, and
extracts keywords. Steps that fail are reported on stderr and left empty
in the result.

With --combined the study target and keywords come from a single model
call; an unparseable response is an error.`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("keyword-mode", "", "keyword extraction: llm or keybert (default from config)")
	extractCmd.Flags().Bool("combined", false, "derive study target and keywords in one model call")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd, true)
	if err != nil {
		return err
	}
	combined, _ := cmd.Flags().GetBool("combined")
	mode, _ := cmd.Flags().GetString("keyword-mode")
	if mode == "" {
		mode = viper.GetString("keywords.mode")
	}

	ctx := cmd.Context()
	x, cleanup, err := newExtraction(ctx, args[0], args[1], backends{
		generator: true,
		embedder:  !combined && extractiveMode(mode),
	})
	if err != nil {
		return err
	}
	defer cleanup()

	var res types.Result
	if combined {
		res, err = x.AssembleCombined(ctx)
		if err != nil {
			return err
		}
	} else {
		res = x.Assemble(ctx, mode)
	}
	return pipeline.Write(os.Stdout, res, format)
}
