// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giellalt/gramtest/internal/engine"
	"github.com/giellalt/gramtest/pkg/types"
)

const corpusXML = `<document xml:lang="se">
  <body>
    <p>dat lea <errorlex>boallu<correct errorinfo="gen">boalu</correct></errorlex> dáppe</p>
    <p xml:lang="nob">dette er ikke samisk</p>
    <p>geahča <errorlang correct="url">http://www.samediggi.fi</errorlang> dás</p>
  </body>
</document>`

func TestRunCorpus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "annotated.xml")
	require.NoError(t, os.WriteFile(path, []byte(corpusXML), 0o644))

	checker := &fakeChecker{
		results: []engine.Result{
			{
				Text: "dat lea boallu dáppe",
				Errors: []types.ErrorSpan{{
					Form: "boallu", Start: 8, End: 14,
					Category: "msyn-case", Suggestions: []string{"boalu"},
				}},
			},
			{Text: "geahča http://www.samediggi.fi dás"},
		},
	}
	sink := &recordSink{}
	runner := New(checker, types.TestConfig{}, sink, nil)

	summary, err := runner.RunCorpus(context.Background(), []string{dir})
	require.NoError(t, err)

	// The xml:lang paragraph is skipped, the URL paragraph is flattened to
	// plain text.
	require.Len(t, summary.Results, 2)
	assert.Equal(t, "dat lea boallu dáppe", summary.Results[0].Uncorrected)
	assert.Equal(t, path, summary.Results[0].Filename)
	assert.Equal(t, "geahča http://www.samediggi.fi dás", summary.Results[1].Uncorrected)
	assert.Equal(t, types.OutcomeCounts{TP: 1, TN: 1}, summary.Counts)
	assert.True(t, summary.Passed())
}

func TestRunCorpusSingleFileTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "annotated.xml")
	require.NoError(t, os.WriteFile(path, []byte(corpusXML), 0o644))

	checker := &fakeChecker{
		results: []engine.Result{{}, {}},
	}
	runner := New(checker, types.TestConfig{}, &recordSink{}, nil)

	summary, err := runner.RunCorpus(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, summary.Results, 2)
}

func TestRunCorpusMissingTarget(t *testing.T) {
	runner := New(&fakeChecker{}, types.TestConfig{}, &recordSink{}, nil)

	_, err := runner.RunCorpus(context.Background(), []string{"/no/such/path"})
	require.Error(t, err)
}
