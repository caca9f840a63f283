// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/giellalt/gramtest/internal/comparator"
	"github.com/giellalt/gramtest/internal/engine"
	"github.com/giellalt/gramtest/internal/testfile"
)

var compareCmd = &cobra.Command{
	Use:   "compare DIR",
	Short: "Compare checker and runtime engine output",
	Long: `Compare runs the sentences of every YAML test file in DIR through both
the legacy checker and the runtime engine and reports where their
findings diverge. Documented known differences are suppressed.

The checker archive (.zcheck) and runtime bundle (.drb) are found in
DIR's parent directory unless given explicitly.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().String("zcheck", "", "checker archive (default: first *.zcheck in DIR's parent)")
	compareCmd.Flags().String("drb", "", "runtime bundle (default: first *.drb in DIR's parent)")
	compareCmd.Flags().Bool("tolerate-exit-errors", false, "keep engine output when an engine exits non-zero")
	compareCmd.Flags().Int("chunk-size", 0, "sentences per engine invocation")
	compareCmd.Flags().Int("workers", 0, "concurrent engine invocations (default: CPU count)")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	dir := args[0]

	zcheck, err := bundleFlag(cmd, "zcheck", dir, "*.zcheck")
	if err != nil {
		return err
	}
	drb, err := bundleFlag(cmd, "drb", dir, "*.drb")
	if err != nil {
		return err
	}

	runCfg := runConfig(cmd)
	checker := engine.New([]string{"divvun-checker", "--archive", zcheck},
		engine.KindChecker, runCfg, logger)
	rt := engine.New([]string{"divvun-runtime", "run", "--path", drb},
		engine.KindRuntime, runCfg, logger)
	comp := comparator.New(checker, rt, os.Stdout, logger)

	yamlFiles, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("listing yaml files: %w", err)
	}
	sort.Strings(yamlFiles)
	if len(yamlFiles) == 0 {
		return fmt.Errorf("no yaml files in %s", dir)
	}

	unknown := 0
	for _, yamlFile := range yamlFiles {
		fmt.Printf("Comparing runtime and checker results for %s...\n", yamlFile)

		f, err := testfile.Load(yamlFile)
		if err != nil {
			return err
		}
		paragraphs, err := comparator.Paragraphs(f.Tests)
		if err != nil {
			return err
		}

		tally, err := comp.Compare(cmd.Context(), paragraphs)
		if err != nil {
			return err
		}
		fmt.Printf("%d sentences, %d count mismatches, %d known differences, %d unknown\n",
			tally.Sentences, tally.CountMismatches, tally.Known, tally.Unknown)
		unknown += tally.Unknown + tally.CountMismatches
	}

	if unknown > 0 {
		return errTestsFailed
	}
	return nil
}

// bundleFlag returns the flag value or the first match of pattern in the
// parent of dir.
func bundleFlag(cmd *cobra.Command, name, dir, pattern string) (string, error) {
	if value, _ := cmd.Flags().GetString(name); value != "" {
		return value, nil
	}
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(dir), pattern))
	if err != nil {
		return "", fmt.Errorf("searching for %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s file found next to %s", pattern, dir)
	}
	sort.Strings(matches)
	return matches[0], nil
}
