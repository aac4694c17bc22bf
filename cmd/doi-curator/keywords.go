// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doi-curator/internal/keywords"
	"github.com/pdiddy/doi-curator/internal/pipeline"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords <doi> <dandiset-id>",
	Short: "Extract keywords from the study target",
	Long: `Keywords derives a ranked keyword list from the study target. In llm
mode the generative backend returns a comma-separated list; in keybert mode
candidate phrases of the study target are ranked by embedding similarity.

--study-target supplies the text directly and skips synthesis.`,
	Args: cobra.ExactArgs(2),
	RunE: runKeywords,
}

func init() {
	keywordsCmd.Flags().String("mode", "", "keyword extraction: llm or keybert (default from config)")
	keywordsCmd.Flags().String("study-target", "", "study target text to extract from")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd, false)
	if err != nil {
		return err
	}
	mode, _ := cmd.Flags().GetString("mode")
	if mode == "" {
		mode = viper.GetString("keywords.mode")
	}
	override, _ := cmd.Flags().GetString("study-target")

	extractive := extractiveMode(mode)

	ctx := cmd.Context()
	x, cleanup, err := newExtraction(ctx, args[0], args[1], backends{
		generator: override == "" || !extractive,
		embedder:  extractive,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	kws := x.Keywords(ctx, override, mode)
	if kws == nil {
		return fmt.Errorf("keywords unavailable")
	}
	return writeValue(os.Stdout, format, kws, pipeline.KeywordsText(kws))
}

// extractiveMode reports whether mode selects embedding-based extraction,
// accepting the same spellings the pipeline does.
func extractiveMode(mode string) bool {
	m, err := keywords.ParseMode(mode)
	return err == nil && m == keywords.ModeExtractive
}
