// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package types

// RunConfig holds settings for invoking a grammar-checker engine over a
// batch of sentences.
type RunConfig struct {
	// ChunkSize is the number of sentences fed to one subprocess call
	// (default 10).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// Workers is the number of concurrent subprocess workers
	// (default: available CPUs).
	Workers int `json:"workers" yaml:"workers"`

	// TolerateExitErrors keeps output from an engine that exits non-zero
	// instead of failing the run.
	TolerateExitErrors bool `json:"tolerate_exit_errors" yaml:"tolerate_exit_errors"`
}

// TestConfig holds a resolved test run: which checker to drive, which
// sentences to test, and how to report.
type TestConfig struct {
	// Spec is the path to the pipespec.xml or .zcheck archive.
	Spec string `json:"spec" yaml:"spec"`

	// Variant names the checker pipeline to use.
	Variant string `json:"variant" yaml:"variant"`

	// Tests are the marked-up test sentences.
	Tests []string `json:"tests" yaml:"tests"`

	// TestFile is the source file the tests came from, for reporting.
	TestFile string `json:"test_file" yaml:"test_file"`

	// UseRuntime selects the runtime engine instead of the checker engine.
	UseRuntime bool `json:"use_runtime" yaml:"use_runtime"`

	// IgnoreTypos drops orthography errors from both sides before
	// classification.
	IgnoreTypos bool `json:"ignore_typos" yaml:"ignore_typos"`

	// HidePasses suppresses passing detail lines in the report.
	HidePasses bool `json:"hide_passes" yaml:"hide_passes"`

	// MoveTests migrates passing sentences out of FAIL files and failing
	// sentences out of PASS files after the run.
	MoveTests bool `json:"move_tests" yaml:"move_tests"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path" yaml:"path"`
}
