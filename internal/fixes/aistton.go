// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package fixes reshapes engine-reported error spans to match the manual
// markup convention so that expected and reported spans can be compared
// span for span. Every stage consumes a span list and returns a new one.
package fixes

import (
	"fmt"

	"github.com/giellalt/gramtest/pkg/types"
)

const (
	aisttonBare  = "punct-aistton"
	aisttonBoth  = "punct-aistton-both"
	aisttonLeft  = "punct-aistton-left"
	aisttonRight = "punct-aistton-right"
)

func isDirectionalAistton(category string) bool {
	return category == aisttonBoth || category == aisttonLeft || category == aisttonRight
}

// RevealHidden corrects errors masked by wrong-quotation-mark spans. The
// engine reports an error inside a quoted phrase with the same range as the
// aistton span around it; the true extent excludes the quote marks
// themselves. The affected side follows the aistton span's direction.
// Must run before SplitAistton, which destroys the original ranges.
func RevealHidden(spans []types.ErrorSpan) []types.ErrorSpan {
	direction := make(map[[2]int]string)
	for _, s := range spans {
		if isDirectionalAistton(s.Category) {
			direction[[2]int{s.Start, s.End}] = s.Category
		}
	}

	out := make([]types.ErrorSpan, 0, len(spans))
	for _, s := range spans {
		dir, hidden := direction[[2]int{s.Start, s.End}]
		if !hidden || isDirectionalAistton(s.Category) {
			out = append(out, s)
			continue
		}
		out = append(out, shrinkHidden(s, dir))
	}
	return out
}

func shrinkHidden(s types.ErrorSpan, direction string) types.ErrorSpan {
	trimLeft := direction != aisttonRight
	trimRight := direction != aisttonLeft

	fixed := s
	fixed.Form = trimEnds(s.Form, trimLeft, trimRight)
	if trimLeft {
		fixed.Start++
	}
	if trimRight {
		fixed.End--
	}
	fixed.Suggestions = make([]string, len(s.Suggestions))
	for i, sug := range s.Suggestions {
		fixed.Suggestions[i] = trimEnds(sug, trimLeft, trimRight)
	}
	return fixed
}

func trimEnds(s string, left, right bool) string {
	runes := []rune(s)
	lo, hi := 0, len(runes)
	if left && lo < hi {
		lo++
	}
	if right && lo < hi {
		hi--
	}
	return string(runes[lo:hi])
}

// SplitAistton rearranges wrong-quotation-mark spans to the manual markup
// convention: the markup annotates each quote mark individually, while the
// engine marks the whole quoted phrase. A "-both" span becomes two
// single-character spans at its endpoints, "-left" and "-right" become one
// single-character span each, and a bare aistton span is dropped since it
// duplicates the directional spans emitted alongside it.
func SplitAistton(spans []types.ErrorSpan) []types.ErrorSpan {
	var out []types.ErrorSpan
	for _, s := range spans {
		switch s.Category {
		case aisttonBare:
			// emitted together with -left and -right; redundant
		case aisttonBoth:
			out = append(out, aisttonEdge(s, true), aisttonEdge(s, false))
		case aisttonLeft:
			out = append(out, aisttonEdge(s, true))
		case aisttonRight:
			out = append(out, aisttonEdge(s, false))
		default:
			out = append(out, s)
		}
	}
	return out
}

// aisttonEdge reduces s to the single-character span at its left or right
// endpoint, with the suggestion reduced to the corresponding end of the
// engine's suggestion text.
func aisttonEdge(s types.ErrorSpan, left bool) types.ErrorSpan {
	edge := s
	runes := []rune(s.Form)
	if left {
		edge.Form = firstRune(s.Form)
		edge.End = s.Start + 1
	} else {
		if len(runes) > 0 {
			edge.Form = string(runes[len(runes)-1])
		}
		edge.Start = s.End - 1
	}

	suggestion := "”"
	if left {
		if len(s.Suggestions) > 0 && s.Suggestions[0] != "" {
			suggestion = firstRune(s.Suggestions[0])
		}
	} else {
		if last := len(s.Suggestions) - 1; last >= 0 && s.Suggestions[last] != "" {
			suggestion = lastRune(s.Suggestions[last])
		}
	}
	edge.Suggestions = []string{suggestion}
	return edge
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return s
}

func lastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[len(runes)-1])
}

// MapQuotationMarks converts the runtime engine's "quotation-marks"
// category to the directional aistton category the checker engine and the
// manual markup use. The direction is read off the first suggestion: a
// replacement quote at both ends means both sides are wrong.
func MapQuotationMarks(s types.ErrorSpan) (types.ErrorSpan, error) {
	if s.Category != "quotation-marks" {
		return s, nil
	}

	first := ""
	if len(s.Suggestions) > 0 {
		first = s.Suggestions[0]
	}
	startsWith := len(first) > 0 && firstRune(first) == "”"
	endsWith := len(first) > 0 && lastRune(first) == "”"

	mapped := s
	mapped.NativeCategory = s.Category
	switch {
	case startsWith && endsWith:
		mapped.Category = aisttonBoth
	case startsWith:
		mapped.Category = aisttonLeft
	case endsWith:
		mapped.Category = aisttonRight
	default:
		return s, fmt.Errorf("cannot infer aistton direction from suggestions %v", s.Suggestions)
	}
	return mapped, nil
}
