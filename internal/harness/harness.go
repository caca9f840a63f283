// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package harness orchestrates a grammar-checker test run: it extracts
// expected spans from annotated sentences, drives the engine over the
// sentence texts, reconciles the reported spans, classifies outcomes and
// feeds the report sink.
package harness

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/giellalt/gramtest/internal/classify"
	"github.com/giellalt/gramtest/internal/engine"
	"github.com/giellalt/gramtest/internal/fixes"
	"github.com/giellalt/gramtest/internal/markup"
	"github.com/giellalt/gramtest/internal/report"
	"github.com/giellalt/gramtest/pkg/types"
)

// AlteredTextError means the engine echoed different text than it was fed.
// Span offsets are meaningless then, so the run must halt hard instead of
// reporting bogus failures.
type AlteredTextError struct {
	Want string
	Got  string
}

func (e *AlteredTextError) Error() string {
	return fmt.Sprintf("engine altered sentence text: fed %q, got back %q", e.Want, e.Got)
}

// Summary is the outcome of one run.
type Summary struct {
	// Counts aggregates all sentences.
	Counts types.OutcomeCounts
	// Outcomes records, per input sentence in order, whether it passed.
	Outcomes []bool
	// Results keeps the cleaned per-sentence data, for history recording.
	Results []types.SentenceResult
}

// Passed reports whether every sentence passed.
func (s *Summary) Passed() bool {
	for _, ok := range s.Outcomes {
		if !ok {
			return false
		}
	}
	return true
}

// GrammarChecker is the engine surface the harness drives. *engine.Checker
// satisfies it.
type GrammarChecker interface {
	CheckAll(ctx context.Context, paragraphs []string) ([]engine.Result, error)
	CheckParagraphs(ctx context.Context, paragraphs []string) ([]engine.Result, error)
	Kind() engine.Kind
}

// Runner drives one engine over a set of annotated sentences.
type Runner struct {
	checker GrammarChecker
	cfg     types.TestConfig
	sink    report.Sink
	log     *zap.Logger
}

// New builds a Runner. The logger may be nil.
func New(checker GrammarChecker, cfg types.TestConfig, sink report.Sink, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{checker: checker, cfg: cfg, sink: sink, log: log}
}

// item is one annotated sentence with its source file.
type item struct {
	sentence types.AnnotatedSentence
	filename string
}

// Run parses the configured test sentences, checks them and reports. The
// returned Summary is valid only when err is nil.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	items := make([]item, 0, len(r.cfg.Tests))
	for _, test := range r.cfg.Tests {
		para, err := markup.ParseInline(test)
		if err != nil {
			return nil, fmt.Errorf("parsing test %q: %w", test, err)
		}
		items = append(items, item{sentence: markup.Extract(para), filename: r.cfg.TestFile})
	}
	return r.check(ctx, items)
}

// check runs the engine over the items and classifies every sentence.
func (r *Runner) check(ctx context.Context, items []item) (*Summary, error) {
	texts := make([]string, len(items))
	for i, it := range items {
		texts[i] = it.sentence.Sentence
	}

	checked, err := r.checker.CheckAll(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(checked) != len(items) {
		return nil, fmt.Errorf("engine returned %d results for %d sentences", len(checked), len(items))
	}

	summary := &Summary{}
	for i, it := range items {
		result, err := r.cleanSentence(ctx, it, checked[i])
		if err != nil {
			return nil, err
		}
		outcome := classify.Classify(result.Expected, result.Reported)
		r.report(i+1, len(items), result, outcome)

		counts := outcome.Counts()
		summary.Counts.Add(counts)
		summary.Outcomes = append(summary.Outcomes, outcome.Passed())
		summary.Results = append(summary.Results, result)
	}
	r.sink.Final(summary.Counts)
	return summary, nil
}

// cleanSentence reconciles one engine result against its markup.
func (r *Runner) cleanSentence(ctx context.Context, it item, checked engine.Result) (types.SentenceResult, error) {
	if checked.Text != "" && checked.Text != it.sentence.Sentence {
		return types.SentenceResult{}, &AlteredTextError{Want: it.sentence.Sentence, Got: checked.Text}
	}

	recheck := func(part string) ([]types.ErrorSpan, error) {
		results, err := r.checker.CheckParagraphs(ctx, []string{part})
		if err != nil || len(results) == 0 {
			return nil, err
		}
		return results[0].Errors, nil
	}

	var reported []types.ErrorSpan
	if r.checker.Kind() == engine.KindRuntime {
		reported = fixes.ApplyRuntime(checked.Errors, recheck, r.log)
	} else {
		reported = fixes.Apply(checked.Errors, recheck)
	}

	expected, reported := classify.RemoveForeign(it.sentence.Errors, reported)
	if r.cfg.IgnoreTypos {
		expected, reported = classify.RemoveTypos(expected, reported)
	}

	return types.SentenceResult{
		Uncorrected: it.sentence.Sentence,
		Filename:    it.filename,
		Expected:    expected,
		Reported:    reported,
	}, nil
}

// report emits one sentence's hook calls. With HidePasses set, passing
// detail lines vanish and fully passing sentences are silent.
func (r *Runner) report(number, total int, result types.SentenceResult, outcome classify.Outcome) {
	showFrame := !r.cfg.HidePasses || !outcome.Passed()
	if showFrame {
		r.sink.Title(number, total, result.Uncorrected)
	}

	if !r.cfg.HidePasses {
		for _, pair := range outcome.TruePositives {
			r.sink.Success(number, total, "tp", pair.Expected, pair.Reported, result.Filename)
		}
		for _, pair := range outcome.TrueNegatives {
			r.sink.Success(number, total, "tn", pair.Expected, pair.Reported, result.Filename)
		}
	}
	for _, pair := range outcome.FalsePositives1 {
		r.sink.Failure(number, total, "fp1", pair.Expected, pair.Reported, result.Filename)
	}
	for _, span := range outcome.FalsePositives2 {
		r.sink.Failure(number, total, "fp2", types.ErrorSpan{}, span, result.Filename)
	}
	for _, pair := range outcome.FalseNegatives1 {
		r.sink.Failure(number, total, "fn1", pair.Expected, pair.Reported, result.Filename)
	}
	for _, span := range outcome.FalseNegatives2 {
		r.sink.Failure(number, total, "fn2", span, types.ErrorSpan{}, result.Filename)
	}

	if showFrame {
		r.sink.Result(number, outcome.Counts(), result.Uncorrected)
	}
}
