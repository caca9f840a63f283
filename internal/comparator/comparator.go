// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package comparator runs the same sentences through both grammar-checker
// engines and reports where their findings diverge, filtering out the
// documented known-difference categories.
package comparator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/giellalt/gramtest/internal/engine"
	"github.com/giellalt/gramtest/internal/markup"
	"github.com/giellalt/gramtest/pkg/types"
)

// Engine is the checking surface the comparator needs from each engine.
type Engine interface {
	CheckAll(ctx context.Context, paragraphs []string) ([]engine.Result, error)
}

// Tally sums one comparison run.
type Tally struct {
	// Sentences is how many sentences were compared.
	Sentences int
	// CountMismatches counts sentences where the engines found a different
	// number of errors.
	CountMismatches int
	// Known counts span pairs differing only in documented ways.
	Known int
	// Unknown counts span pairs differing in undocumented ways.
	Unknown int
}

// Comparator drives both engines over the same input.
type Comparator struct {
	checker Engine
	runtime Engine
	out     io.Writer
	log     *zap.Logger
}

// New builds a Comparator writing its report to out. The logger may be
// nil.
func New(checker, runtime Engine, out io.Writer, log *zap.Logger) *Comparator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Comparator{checker: checker, runtime: runtime, out: out, log: log}
}

// Paragraphs strips markup from the test sentences and returns the sorted
// unique plain texts.
func Paragraphs(tests []string) ([]string, error) {
	seen := make(map[string]bool, len(tests))
	var out []string
	for _, test := range tests {
		para, err := markup.ParseInline(test)
		if err != nil {
			return nil, fmt.Errorf("parsing test %q: %w", test, err)
		}
		sentence := markup.Extract(para).Sentence
		if sentence == "" || seen[sentence] {
			continue
		}
		seen[sentence] = true
		out = append(out, sentence)
	}
	sort.Strings(out)
	return out, nil
}

// Compare checks the paragraphs with both engines and writes divergences
// to the output. Sentences with differing error counts are dumped whole;
// aligned spans are compared pairwise with known differences suppressed.
func (c *Comparator) Compare(ctx context.Context, paragraphs []string) (*Tally, error) {
	checkerResults, err := c.checker.CheckAll(ctx, paragraphs)
	if err != nil {
		return nil, fmt.Errorf("checker engine: %w", err)
	}
	runtimeResults, err := c.runtime.CheckAll(ctx, paragraphs)
	if err != nil {
		return nil, fmt.Errorf("runtime engine: %w", err)
	}
	if len(checkerResults) != len(paragraphs) || len(runtimeResults) != len(paragraphs) {
		return nil, fmt.Errorf("engines returned %d and %d results for %d sentences",
			len(checkerResults), len(runtimeResults), len(paragraphs))
	}

	tally := &Tally{Sentences: len(paragraphs)}
	for i, paragraph := range paragraphs {
		c.compareSentence(tally, paragraph, checkerResults[i].Errors, runtimeResults[i].Errors)
	}
	return tally, nil
}

func (c *Comparator) compareSentence(tally *Tally, paragraph string, checkerSpans, runtimeSpans []types.ErrorSpan) {
	if len(checkerSpans) != len(runtimeSpans) {
		tally.CountMismatches++
		fmt.Fprintf(c.out, "%s\nDifferent number of errors found!\n", paragraph)
		fmt.Fprintf(c.out, "checker result:\n%s\n", dumpSpans(checkerSpans))
		fmt.Fprintf(c.out, "runtime result:\n%s\n----\n", dumpSpans(runtimeSpans))
		return
	}

	for j, runtimeSpan := range runtimeSpans {
		checkerSpan := checkerSpans[j]
		if checkerSpan.Equal(runtimeSpan) {
			continue
		}
		if isKnownIssue(runtimeSpan, checkerSpan) {
			tally.Known++
			c.log.Debug("known engine difference",
				zap.String("paragraph", paragraph),
				zap.String("form", runtimeSpan.Form))
			continue
		}
		tally.Unknown++
		fmt.Fprintf(c.out, "Mismatch for %s found!\n", paragraph)
		fmt.Fprintf(c.out, "checker result:\n%s\n", dumpSpan(checkerSpan))
		fmt.Fprintf(c.out, "runtime result:\n%s\n----\n", dumpSpan(runtimeSpan))
	}
}

// isKnownIssue reports whether a span pair differs only in a documented
// way: same typo-ness with differing suggestions, or any typo/non-typo
// category crossing.
func isKnownIssue(runtimeSpan, checkerSpan types.ErrorSpan) bool {
	runtimeTypo := runtimeSpan.Category == "typo"
	checkerTypo := checkerSpan.Category == "typo"
	if runtimeTypo != checkerTypo {
		return true
	}
	return !equalSuggestions(runtimeSpan.Suggestions, checkerSpan.Suggestions)
}

func equalSuggestions(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dumpSpan(span types.ErrorSpan) string {
	data, err := json.MarshalIndent(span, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", span)
	}
	return string(data)
}

func dumpSpans(spans []types.ErrorSpan) string {
	if spans == nil {
		spans = []types.ErrorSpan{}
	}
	data, err := json.MarshalIndent(spans, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", spans)
	}
	return string(data)
}
