// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/giellalt/gramtest/internal/engine"
	"github.com/giellalt/gramtest/internal/harness"
	"github.com/giellalt/gramtest/internal/history"
	"github.com/giellalt/gramtest/internal/report"
	"github.com/giellalt/gramtest/internal/testfile"
	"github.com/giellalt/gramtest/pkg/types"
)

var yamlCmd = &cobra.Command{
	Use:   "yaml FILE...",
	Short: "Run YAML test files against a grammar checker",
	Long: `Yaml runs the test sentences of one or more YAML test files through the
checker pipeline named by the file's Config section and scores the
reported errors against the markup.

With --runtime BUNDLE the newer runtime engine is driven instead of
divvun-checker.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runYaml,
}

func init() {
	yamlCmd.Flags().String("spec", "", "override the pipespec path from the test file")
	yamlCmd.Flags().String("variant", "", "override the pipeline variant from the test file")
	yamlCmd.Flags().String("runtime", "", "divvun-runtime bundle to use instead of divvun-checker")
	yamlCmd.Flags().Bool("ignore-typos", false, "score as if orthography errors were correct")
	yamlCmd.Flags().Bool("hide-passes", false, "only show failing sentences")
	yamlCmd.Flags().Bool("move-tests", false, "migrate tests between paired PASS/FAIL files after the run")
	yamlCmd.Flags().Bool("remove-dupes", false, "rewrite test files with duplicate sentences removed")
	yamlCmd.Flags().Bool("tolerate-exit-errors", false, "keep engine output when the engine exits non-zero")
	yamlCmd.Flags().Int("chunk-size", 0, "sentences per engine invocation")
	yamlCmd.Flags().Int("workers", 0, "concurrent engine invocations (default: CPU count)")
	yamlCmd.Flags().String("history", "", "record the run in this SQLite database")

	rootCmd.AddCommand(yamlCmd)
}

func runYaml(cmd *cobra.Command, args []string) error {
	failed := false
	for _, path := range args {
		passed, err := runYamlFile(cmd, path)
		if err != nil {
			return err
		}
		if !passed {
			failed = true
		}
	}
	if failed {
		return errTestsFailed
	}
	return nil
}

func runYamlFile(cmd *cobra.Command, path string) (bool, error) {
	f, err := testfile.Load(path)
	if err != nil {
		return false, err
	}

	if removeDupes, _ := cmd.Flags().GetBool("remove-dupes"); removeDupes {
		dupes, err := testfile.RemoveDupes(f)
		if err != nil {
			return false, err
		}
		if len(dupes) > 0 {
			fmt.Fprintf(os.Stderr, "ERROR: Removed the following dupes in %s\n", path)
			for _, dupe := range dupes {
				fmt.Fprintf(os.Stderr, "\t%s\n", dupe)
			}
			return false, errHardExit
		}
	}

	spec := f.Spec
	if override, _ := cmd.Flags().GetString("spec"); override != "" {
		spec = override
	}
	requested := f.Variants
	if override, _ := cmd.Flags().GetString("variant"); override != "" {
		requested = []string{override}
	}

	checker, variant, err := buildEngine(cmd, spec, requested)
	if err != nil {
		return false, err
	}

	cfg := testRunConfig(cmd, f, spec, variant)
	sink := report.New(viper.GetString("output"), report.NewStyles(viper.GetBool("colour")))
	runner := harness.New(checker, cfg, sink, logger)

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return false, err
	}
	fmt.Print(sink.String())

	if cfg.MoveTests {
		if err := testfile.MigrateTests(f, summary.Outcomes); err != nil {
			return false, err
		}
	}
	if dbPath, _ := cmd.Flags().GetString("history"); dbPath != "" {
		if err := recordRun(dbPath, cfg, checker, summary); err != nil {
			return false, err
		}
	}
	return summary.Passed(), nil
}

// buildEngine resolves the pipeline variant and constructs the engine the
// flags select.
func buildEngine(cmd *cobra.Command, spec string, requested []string) (*engine.Checker, string, error) {
	runCfg := runConfig(cmd)

	if bundle, _ := cmd.Flags().GetString("runtime"); bundle != "" {
		command := []string{"divvun-runtime", "run", "--path", bundle}
		return engine.New(command, engine.KindRuntime, runCfg, logger), "", nil
	}

	variant, err := testfile.ResolveVariant(spec, requested)
	if err != nil {
		return nil, "", err
	}
	command := testfile.CheckerCommand(spec, variant)
	return engine.New(command, engine.KindChecker, runCfg, logger), variant, nil
}

func runConfig(cmd *cobra.Command) types.RunConfig {
	chunkSize, _ := cmd.Flags().GetInt("chunk-size")
	workers, _ := cmd.Flags().GetInt("workers")
	tolerate, _ := cmd.Flags().GetBool("tolerate-exit-errors")
	return types.RunConfig{
		ChunkSize:          chunkSize,
		Workers:            workers,
		TolerateExitErrors: tolerate,
	}
}

func testRunConfig(cmd *cobra.Command, f *testfile.File, spec, variant string) types.TestConfig {
	ignoreTypos, _ := cmd.Flags().GetBool("ignore-typos")
	hidePasses, _ := cmd.Flags().GetBool("hide-passes")
	moveTests, _ := cmd.Flags().GetBool("move-tests")
	bundle, _ := cmd.Flags().GetString("runtime")
	return types.TestConfig{
		Spec:        spec,
		Variant:     variant,
		Tests:       f.Tests,
		TestFile:    f.Path,
		UseRuntime:  bundle != "",
		IgnoreTypos: ignoreTypos,
		HidePasses:  hidePasses,
		MoveTests:   moveTests,
	}
}

func recordRun(dbPath string, cfg types.TestConfig, checker *engine.Checker, summary *harness.Summary) error {
	store, err := history.Open(types.HistoryConfig{Path: dbPath})
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(history.Run{
		TestFile: cfg.TestFile,
		Variant:  cfg.Variant,
		Engine:   string(checker.Kind()),
		Counts:   summary.Counts,
	})
	return err
}
