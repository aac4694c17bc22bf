// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var studyTargetCmd = &cobra.Command{
	Use:   "study-target <doi> <dandiset-id>",
	Short: "Synthesize the one-sentence study target",
	Args:  cobra.ExactArgs(2),
	RunE:  runStudyTarget,
}

func init() {
	rootCmd.AddCommand(studyTargetCmd)
}

func runStudyTarget(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd, false)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	x, cleanup, err := newExtraction(ctx, args[0], args[1], backends{generator: true})
	if err != nil {
		return err
	}
	defer cleanup()

	st := x.StudyTarget(ctx)
	if st == nil {
		return fmt.Errorf("study target unavailable")
	}
	return writeValue(os.Stdout, format, map[string]string{"study_target": *st}, *st+"\n")
}
