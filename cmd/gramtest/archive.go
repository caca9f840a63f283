// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giellalt/gramtest/internal/archive"
)

var archiveCmd = &cobra.Command{
	Use:   "archive PIPESPEC",
	Short: "Build a distributable checker archive",
	Long: `Archive builds a checker archive (.zcheck) from a pipespec: development
pipelines referencing local build paths are stripped, and the remaining
referenced files are zipped alongside the cleaned spec.`,
	Args: cobra.ExactArgs(1),
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().String("out", "", "archive path (default: PIPESPEC with a .zcheck extension)")

	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	specPath := args[0]

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = strings.TrimSuffix(specPath, ".xml") + ".zcheck"
	}

	if err := archive.Build(specPath, out); err != nil {
		return err
	}
	fmt.Println("Wrote", out)
	return nil
}
