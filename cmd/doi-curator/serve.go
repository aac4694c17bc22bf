// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doi-curator/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction pipeline over HTTP",
	Long: `Serve starts an HTTP server with GET /health and POST /api/extract.
The extract endpoint accepts {"doi", "dandiset_id", "keyword_mode",
"combined"} and returns the curation result as JSON.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	deps, cleanup, err := buildDeps(cmd.Context(), cfg, backends{generator: true, optionalEmbedder: true}, os.Stderr)
	defer cleanup()
	if err != nil {
		return err
	}

	addr := viper.GetString("server.addr")
	s := server.New(deps, cfg.Keywords.Mode)
	fmt.Fprintf(os.Stderr, "Listening on %s\n", addr)
	return s.SetupRouter().Run(addr)
}
