// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package types defines the shared data model for the grammar test harness:
// error spans, annotated sentences, per-sentence results, and outcome counts.
package types

import "sort"

// ErrorSpan is one error occurrence addressed by rune offsets into a
// sentence. Expected spans come from manual corpus markup; reported spans
// come from a grammar-checker engine. Offsets are half-open: the span
// covers sentence[Start:End] in runes.
type ErrorSpan struct {
	// Form is the substring of the sentence covered by the error.
	Form string `json:"form" yaml:"form"`

	// Start and End are rune offsets, 0 <= Start <= End <= len(sentence).
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`

	// Category is the error-type tag, e.g. "typo", "errorort",
	// "punct-aistton-both". Open vocabulary, compared case-sensitively.
	Category string `json:"category" yaml:"category"`

	// Explanation is a free-text rationale or grammatical tag.
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`

	// Suggestions are proposed corrections in engine order.
	Suggestions []string `json:"suggestions" yaml:"suggestions"`

	// NativeCategory is the category as the engine reported it, before any
	// mapping (e.g. "quotation-marks" before aistton conversion).
	NativeCategory string `json:"native_category,omitempty" yaml:"native_category,omitempty"`
}

// SameRange reports whether two spans cover the same rune range.
func (s ErrorSpan) SameRange(o ErrorSpan) bool {
	return s.Start == o.Start && s.End == o.End
}

// SameLocation reports whether two spans cover the same range and the same
// surface form.
func (s ErrorSpan) SameLocation(o ErrorSpan) bool {
	return s.SameRange(o) && s.Form == o.Form
}

// Equal reports full equality of form, range, category, and suggestions.
// Explanation and NativeCategory are descriptive and excluded.
func (s ErrorSpan) Equal(o ErrorSpan) bool {
	if !s.SameLocation(o) || s.Category != o.Category {
		return false
	}
	if len(s.Suggestions) != len(o.Suggestions) {
		return false
	}
	for i, sug := range s.Suggestions {
		if sug != o.Suggestions[i] {
			return false
		}
	}
	return true
}

// SortByRange orders spans by (start, end) in place.
func SortByRange(spans []ErrorSpan) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
}

// AnnotatedSentence pairs the uncorrected reading of a sentence with its
// expected errors, in left-to-right order.
type AnnotatedSentence struct {
	Sentence string      `json:"sentence" yaml:"sentence"`
	Errors   []ErrorSpan `json:"errors" yaml:"errors"`
}

// SentenceResult is one sentence ready for classification: the expected
// spans from markup and the fixed-up spans one engine reported for it.
type SentenceResult struct {
	Uncorrected string      `json:"uncorrected" yaml:"uncorrected"`
	Filename    string      `json:"filename" yaml:"filename"`
	Expected    []ErrorSpan `json:"expected" yaml:"expected"`
	Reported    []ErrorSpan `json:"reported" yaml:"reported"`
}

// OutcomeCounts accumulates classification outcomes. TP and TN are passes;
// the four failure buckets distinguish wrong corrections (FP1), spurious
// errors (FP2), missing corrections (FN1), and missed errors (FN2).
type OutcomeCounts struct {
	TP  int `json:"tp" yaml:"tp"`
	TN  int `json:"tn" yaml:"tn"`
	FP1 int `json:"fp1" yaml:"fp1"`
	FP2 int `json:"fp2" yaml:"fp2"`
	FN1 int `json:"fn1" yaml:"fn1"`
	FN2 int `json:"fn2" yaml:"fn2"`
}

// Add accumulates o into c.
func (c *OutcomeCounts) Add(o OutcomeCounts) {
	c.TP += o.TP
	c.TN += o.TN
	c.FP1 += o.FP1
	c.FP2 += o.FP2
	c.FN1 += o.FN1
	c.FN2 += o.FN2
}

// Passes returns the number of passing outcomes (tp + tn).
func (c OutcomeCounts) Passes() int { return c.TP + c.TN }

// Fails returns the number of failing outcomes.
func (c OutcomeCounts) Fails() int { return c.FP1 + c.FP2 + c.FN1 + c.FN2 }

// Total returns the number of classified outcomes.
func (c OutcomeCounts) Total() int { return c.Passes() + c.Fails() }

// Passed reports whether a sentence with these counts passed: no failure
// bucket has any entries.
func (c OutcomeCounts) Passed() bool { return c.Fails() == 0 }
