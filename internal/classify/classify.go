// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package classify pairs expected error spans against engine-reported
// spans for one sentence and sorts every pairing and orphan span into one
// of five outcome buckets used for precision/recall scoring.
package classify

import "github.com/giellalt/gramtest/pkg/types"

const (
	foreignCategory = "errorlang"
	orthCategory    = "errorort"
	typoCategory    = "typo"

	// doubleSpaceCategory matches on range alone: the reported form for a
	// doubled space is empty while the markup covers the spaces.
	doubleSpaceCategory = "double-space-before"
)

// Pair is one expected/reported pairing contributing to an outcome bucket.
type Pair struct {
	Expected types.ErrorSpan
	Reported types.ErrorSpan
}

// Outcome holds one sentence's classification. The buckets:
//
//	TruePositives   — right location, a suggested correction matches
//	TrueNegatives   — nothing expected, nothing reported (synthetic pair)
//	FalsePositives1 — right location, only wrong corrections suggested
//	FalsePositives2 — reported at a location nothing was expected at
//	FalseNegatives1 — right location but no correction offered
//	FalseNegatives2 — expected error not reported at all
type Outcome struct {
	TruePositives   []Pair
	TrueNegatives   []Pair
	FalsePositives1 []Pair
	FalsePositives2 []types.ErrorSpan
	FalseNegatives1 []Pair
	FalseNegatives2 []types.ErrorSpan
}

// Counts reduces the outcome to bucket sizes.
func (o Outcome) Counts() types.OutcomeCounts {
	return types.OutcomeCounts{
		TP:  len(o.TruePositives),
		TN:  len(o.TrueNegatives),
		FP1: len(o.FalsePositives1),
		FP2: len(o.FalsePositives2),
		FN1: len(o.FalseNegatives1),
		FN2: len(o.FalseNegatives2),
	}
}

// Passed reports whether the sentence passed: every failure bucket empty.
func (o Outcome) Passed() bool {
	return len(o.FalsePositives1) == 0 && len(o.FalsePositives2) == 0 &&
		len(o.FalseNegatives1) == 0 && len(o.FalseNegatives2) == 0
}

// RemoveForeign drops expected foreign-language spans and any reported
// span falling entirely inside one of their ranges. Foreign-text coverage
// is excluded from scoring.
func RemoveForeign(expected, reported []types.ErrorSpan) ([]types.ErrorSpan, []types.ErrorSpan) {
	var foreign [][2]int
	keptExpected := make([]types.ErrorSpan, 0, len(expected))
	for _, e := range expected {
		if e.Category == foreignCategory {
			foreign = append(foreign, [2]int{e.Start, e.End})
			continue
		}
		keptExpected = append(keptExpected, e)
	}

	keptReported := make([]types.ErrorSpan, 0, len(reported))
	for _, d := range reported {
		inside := false
		for _, r := range foreign {
			if r[0] <= d.Start && d.Start < r[1] && d.End <= r[1] {
				inside = true
				break
			}
		}
		if !inside {
			keptReported = append(keptReported, d)
		}
	}
	return keptExpected, keptReported
}

// RemoveTypos drops expected orthography errors and reported typo spans,
// for runs that pretend typos are correct.
func RemoveTypos(expected, reported []types.ErrorSpan) ([]types.ErrorSpan, []types.ErrorSpan) {
	keptExpected := make([]types.ErrorSpan, 0, len(expected))
	for _, e := range expected {
		if e.Category != orthCategory {
			keptExpected = append(keptExpected, e)
		}
	}
	keptReported := make([]types.ErrorSpan, 0, len(reported))
	for _, d := range reported {
		if d.Category != typoCategory {
			keptReported = append(keptReported, d)
		}
	}
	return keptExpected, keptReported
}

// sameRangeAndError is the matching predicate: a reported span addresses an
// expected span when they cover the same range and surface form. Category
// is not part of the key — a hit at the right place with the wrong category
// still addresses that location. The double-space special case matches on
// range alone.
func sameRangeAndError(e, d types.ErrorSpan) bool {
	if d.Category == doubleSpaceCategory {
		return e.SameRange(d)
	}
	return e.SameLocation(d)
}

// suggestionHit reports whether any expected correction appears among the
// reported suggestions.
func suggestionHit(e, d types.ErrorSpan) bool {
	for _, want := range e.Suggestions {
		for _, have := range d.Suggestions {
			if want == have {
				return true
			}
		}
	}
	return false
}

// Classify partitions expected × reported into outcome buckets. Matched
// pairs land in tp, fp1 or fn1 depending on the reported suggestions;
// reported spans matching nothing land in fp2; expected spans matched by
// nothing land in fn2. An empty-vs-empty sentence yields one synthetic
// true-negative pairing.
func Classify(expected, reported []types.ErrorSpan) Outcome {
	var o Outcome

	if len(expected) == 0 && len(reported) == 0 {
		o.TrueNegatives = []Pair{{}}
		return o
	}

	for _, e := range expected {
		for _, d := range reported {
			if !sameRangeAndError(e, d) {
				continue
			}
			switch {
			case len(d.Suggestions) == 0:
				o.FalseNegatives1 = append(o.FalseNegatives1, Pair{Expected: e, Reported: d})
			case suggestionHit(e, d):
				o.TruePositives = append(o.TruePositives, Pair{Expected: e, Reported: d})
			default:
				o.FalsePositives1 = append(o.FalsePositives1, Pair{Expected: e, Reported: d})
			}
		}
	}

	for _, d := range reported {
		if !anyMatch(expected, d) {
			o.FalsePositives2 = append(o.FalsePositives2, d)
		}
	}
	for _, e := range expected {
		matched := false
		for _, d := range reported {
			if sameRangeAndError(e, d) {
				matched = true
				break
			}
		}
		if !matched {
			o.FalseNegatives2 = append(o.FalseNegatives2, e)
		}
	}
	return o
}

func anyMatch(expected []types.ErrorSpan, d types.ErrorSpan) bool {
	for _, e := range expected {
		if sameRangeAndError(e, d) {
			return true
		}
	}
	return false
}
