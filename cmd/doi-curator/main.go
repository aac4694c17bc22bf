// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doi-curator CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doi-curator/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ and .env at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the doi-curator CLI.
var rootCmd = &cobra.Command{
	Use:   "doi-curator",
	Short: "Populate dataset metadata from a related publication",
	Long: `doi-curator correlates a DOI from CrossRef with a DANDI dandiset and
produces curation metadata: typed contributors enriched from ORCID, a
one-sentence study target, and a ranked keyword list.

Each piece is available as its own subcommand; extract assembles all of
them. serve exposes the same pipeline over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.LoadAll(".secrets/", ".env", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./doi-curator.yaml or ~/.config/doi-curator/doi-curator.yaml)")
	pf.String("provider", "", "generative backend: openai, claude, or gemini")
	pf.String("model", "", "model identifier for the generative backend")
	pf.String("api-key", "", "API key for the generative backend")
	pf.String("embedding-provider", "", "embedding backend for keybert mode: openai or gemini")
	pf.String("embedding-model", "", "embedding model identifier")
	pf.String("prompts", "", "TOML file overriding the prompt templates")
	pf.Int("workers", 0, "concurrent contributor lookups (default: number of CPUs)")
	pf.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	pf.String("mailto", "", "contact address sent to CrossRef")
	pf.Int("max-keywords", 0, "number of keywords to request (default 10)")
	pf.Bool("json", false, "output as JSON")
	pf.Bool("yaml", false, "output as YAML")
	pf.Bool("csl", false, "output a CSL-YAML dataset citation (extract only)")

	bindFlags(pf)
	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doi-curator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doi-curator"))
		}
	}

	viper.SetEnvPrefix("DOI_CURATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
