// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/giellalt/gramtest/internal/history"
	"github.com/giellalt/gramtest/internal/report"
	"github.com/giellalt/gramtest/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history DATABASE",
	Short: "Show recorded test runs",
	Long: `History lists runs recorded with the yaml command's --history flag,
newest first, with their outcome counts and precision/recall where
derivable.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("file", "", "only show runs of this test file")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(types.HistoryConfig{Path: args[0]})
	if err != nil {
		return err
	}
	defer store.Close()

	file, _ := cmd.Flags().GetString("file")
	limit, _ := cmd.Flags().GetInt("limit")

	runs, err := store.Recent(file, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-12s  %7s  %7s  %9s  %7s\n",
		"When", "File", "Variant", "Passes", "Fails", "Precision", "Recall")
	for _, run := range runs {
		precision, recall := "-", "-"
		if stats, ok := report.Derive(run.Counts); ok {
			precision = fmt.Sprintf("%.1f%%", stats.Precision*100)
			recall = fmt.Sprintf("%.1f%%", stats.Recall*100)
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-12s  %7d  %7d  %9s  %7s\n",
			run.When.Local().Format(time.DateTime), run.TestFile, run.Variant,
			run.Counts.Passes(), run.Counts.Fails(), precision, recall)
	}
	return nil
}
