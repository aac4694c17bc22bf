// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doi-curator/internal/prompt"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of doi-curator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("doi-curator %s (prompts %s)\n", version, prompt.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
