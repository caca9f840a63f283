// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/giellalt/gramtest/internal/engine"
	"github.com/giellalt/gramtest/internal/harness"
	"github.com/giellalt/gramtest/internal/report"
	"github.com/giellalt/gramtest/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus TARGET...",
	Short: "Check error-annotated corpus files",
	Long: `Corpus runs every error-annotated XML file under the target paths
through the checker archive and scores the reported errors against the
corpus markup. Targets may be single files or directories to walk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCorpus,
}

func init() {
	corpusCmd.Flags().StringP("archive", "a", "", "checker archive (.zcheck) to run")
	corpusCmd.Flags().Bool("ignore-typos", false, "score as if orthography errors were correct")
	corpusCmd.Flags().Bool("hide-passes", false, "only show failing sentences")
	corpusCmd.Flags().Bool("tolerate-exit-errors", false, "keep engine output when the engine exits non-zero")
	corpusCmd.Flags().Int("chunk-size", 0, "sentences per engine invocation")
	corpusCmd.Flags().Int("workers", 0, "concurrent engine invocations (default: CPU count)")
	corpusCmd.MarkFlagRequired("archive") //nolint:errcheck // flag exists

	rootCmd.AddCommand(corpusCmd)
}

func runCorpus(cmd *cobra.Command, args []string) error {
	archive, _ := cmd.Flags().GetString("archive")
	ignoreTypos, _ := cmd.Flags().GetBool("ignore-typos")
	hidePasses, _ := cmd.Flags().GetBool("hide-passes")

	command := []string{"divvun-checker", "--archive", archive}
	checker := engine.New(command, engine.KindChecker, runConfig(cmd), logger)

	cfg := types.TestConfig{
		Spec:        archive,
		IgnoreTypos: ignoreTypos,
		HidePasses:  hidePasses,
	}
	sink := report.New(viper.GetString("output"), report.NewStyles(viper.GetBool("colour")))
	runner := harness.New(checker, cfg, sink, logger)

	summary, err := runner.RunCorpus(cmd.Context(), args)
	if err != nil {
		return err
	}
	fmt.Print(sink.String())

	if !summary.Passed() {
		return errTestsFailed
	}
	return nil
}
