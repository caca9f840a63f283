// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package harness

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giellalt/gramtest/internal/engine"
	"github.com/giellalt/gramtest/internal/report"
	"github.com/giellalt/gramtest/pkg/types"
)

// fakeChecker serves canned results instead of running a subprocess.
type fakeChecker struct {
	kind    engine.Kind
	results []engine.Result
	err     error
	// recheck maps single-paragraph inputs to their results, for the
	// parenthesis-fix side checks.
	recheck map[string][]types.ErrorSpan
}

func (f *fakeChecker) CheckAll(_ context.Context, paragraphs []string) ([]engine.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeChecker) CheckParagraphs(_ context.Context, paragraphs []string) ([]engine.Result, error) {
	if len(paragraphs) == 1 {
		if spans, ok := f.recheck[paragraphs[0]]; ok {
			return []engine.Result{{Text: paragraphs[0], Errors: spans}}, nil
		}
	}
	return []engine.Result{{}}, nil
}

func (f *fakeChecker) Kind() engine.Kind {
	if f.kind == "" {
		return engine.KindChecker
	}
	return f.kind
}

// recordSink captures hook calls for assertions.
type recordSink struct {
	report.Silent
	titles    []string
	successes []string
	failures  []string
	results   int
	finals    []types.OutcomeCounts
}

func (r *recordSink) Title(_, _ int, testCase string) { r.titles = append(r.titles, testCase) }

func (r *recordSink) Success(_, _ int, outcome string, _, _ types.ErrorSpan, _ string) {
	r.successes = append(r.successes, outcome)
}

func (r *recordSink) Failure(_, _ int, outcome string, _, _ types.ErrorSpan, _ string) {
	r.failures = append(r.failures, outcome)
}

func (r *recordSink) Result(int, types.OutcomeCounts, string) { r.results++ }

func (r *recordSink) Final(counts types.OutcomeCounts) { r.finals = append(r.finals, counts) }

func TestRunPassingSentence(t *testing.T) {
	checker := &fakeChecker{
		results: []engine.Result{{
			Text: "dat lea boallu dáppe",
			Errors: []types.ErrorSpan{{
				Form: "boallu", Start: 8, End: 14,
				Category: "typo", Suggestions: []string{"boalu"},
			}},
		}},
	}
	sink := &recordSink{}
	runner := New(checker, types.TestConfig{
		Tests:    []string{"dat lea {boallu}€{boalu} dáppe"},
		TestFile: "tests.yaml",
	}, sink, nil)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Passed())
	assert.Equal(t, []bool{true}, summary.Outcomes)
	assert.Equal(t, types.OutcomeCounts{TP: 1}, summary.Counts)
	assert.Equal(t, []string{"tp"}, sink.successes)
	assert.Empty(t, sink.failures)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "dat lea boallu dáppe", summary.Results[0].Uncorrected)
	assert.Equal(t, "tests.yaml", summary.Results[0].Filename)
}

func TestRunCleanSentenceIsTrueNegative(t *testing.T) {
	checker := &fakeChecker{
		results: []engine.Result{{Text: "buorre beaivi"}},
	}
	sink := &recordSink{}
	runner := New(checker, types.TestConfig{Tests: []string{"buorre beaivi"}}, sink, nil)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeCounts{TN: 1}, summary.Counts)
	assert.True(t, summary.Passed())
}

func TestRunMissedErrorFails(t *testing.T) {
	checker := &fakeChecker{
		results: []engine.Result{{Text: "dat lea boallu dáppe"}},
	}
	sink := &recordSink{}
	runner := New(checker, types.TestConfig{
		Tests: []string{"dat lea {boallu}€{boalu} dáppe"},
	}, sink, nil)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, summary.Passed())
	assert.Equal(t, types.OutcomeCounts{FN2: 1}, summary.Counts)
	assert.Equal(t, []string{"fn2"}, sink.failures)
}

func TestRunAlteredTextIsHardError(t *testing.T) {
	checker := &fakeChecker{
		results: []engine.Result{{Text: "something else entirely"}},
	}
	runner := New(checker, types.TestConfig{Tests: []string{"buorre beaivi"}}, &recordSink{}, nil)

	_, err := runner.Run(context.Background())

	var altered *AlteredTextError
	require.ErrorAs(t, err, &altered)
	assert.Equal(t, "buorre beaivi", altered.Want)
}

func TestRunResultCountMismatchIsError(t *testing.T) {
	checker := &fakeChecker{results: []engine.Result{}}
	runner := New(checker, types.TestConfig{Tests: []string{"buorre beaivi"}}, &recordSink{}, nil)

	_, err := runner.Run(context.Background())
	require.Error(t, err)
}

func TestRunEngineErrorPropagates(t *testing.T) {
	boom := errors.New("engine exploded")
	checker := &fakeChecker{err: boom}
	runner := New(checker, types.TestConfig{Tests: []string{"buorre beaivi"}}, &recordSink{}, nil)

	_, err := runner.Run(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestRunHidePasses(t *testing.T) {
	checker := &fakeChecker{
		results: []engine.Result{
			{Text: "buorre beaivi"},
			{Text: "dat lea boallu dáppe"},
		},
	}
	sink := &recordSink{}
	runner := New(checker, types.TestConfig{
		Tests:      []string{"buorre beaivi", "dat lea {boallu}€{boalu} dáppe"},
		HidePasses: true,
	}, sink, nil)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, summary.Outcomes)
	// Only the failing sentence gets a frame, and no passes are shown.
	assert.Equal(t, []string{"dat lea boallu dáppe"}, sink.titles)
	assert.Empty(t, sink.successes)
	assert.Equal(t, []string{"fn2"}, sink.failures)
	assert.Equal(t, 1, sink.results)
}

func TestRunIgnoreTypos(t *testing.T) {
	checker := &fakeChecker{
		results: []engine.Result{{
			Text: "coahkis dáppe",
			Errors: []types.ErrorSpan{{
				Form: "coahkis", Start: 0, End: 7,
				Category: "typo", Suggestions: []string{"čoahkis"},
			}},
		}},
	}
	sink := &recordSink{}
	runner := New(checker, types.TestConfig{
		Tests:       []string{"{coahkis}${čoahkis} dáppe"},
		IgnoreTypos: true,
	}, sink, nil)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	// Both the expected orthography error and the reported typo vanish,
	// leaving a synthetic true negative.
	assert.Equal(t, types.OutcomeCounts{TN: 1}, summary.Counts)
	assert.True(t, summary.Passed())
}

func TestRunForeignTextExcluded(t *testing.T) {
	checker := &fakeChecker{
		results: []engine.Result{{
			Text: "dat lea some words",
			Errors: []types.ErrorSpan{{
				Form: "some", Start: 8, End: 12,
				Category: "typo", Suggestions: []string{"soapmásat"},
			}},
		}},
	}
	sink := &recordSink{}
	runner := New(checker, types.TestConfig{
		Tests: []string{"dat lea {some words}∞{sámegillii}"},
	}, sink, nil)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeCounts{TN: 1}, summary.Counts)
}

func TestRunBadMarkupIsError(t *testing.T) {
	checker := &fakeChecker{}
	runner := New(checker, types.TestConfig{Tests: []string{"dangling {brace"}}, &recordSink{}, nil)

	_, err := runner.Run(context.Background())
	require.Error(t, err)
}
