// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doi-curator/internal/pipeline"
)

var contributorsCmd = &cobra.Command{
	Use:   "contributors <doi> <dandiset-id>",
	Short: "Resolve the DOI's authors into person and organization contributors",
	Long: `Contributors classifies each CrossRef author entry as a person or an
organization. Persons are enriched with email and website from their ORCID
profile; lookups run concurrently and a failed lookup leaves only that
entry's contact fields empty.`,
	Args: cobra.ExactArgs(2),
	RunE: runContributors,
}

func init() {
	rootCmd.AddCommand(contributorsCmd)
}

func runContributors(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd, false)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	x, cleanup, err := newExtraction(ctx, args[0], args[1], backends{})
	if err != nil {
		return err
	}
	defer cleanup()

	cs := x.Contributors(ctx)
	return writeValue(os.Stdout, format, cs, pipeline.ContributorsText(cs))
}
