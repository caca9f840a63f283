// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package fixes

import (
	"strings"
	"unicode/utf8"

	"github.com/giellalt/gramtest/pkg/types"
)

const noSpaceBeforeParen = "no-space-before-parent-start"

// Recheck runs the single-sentence grammar check on a text fragment. The
// parenthesis fixup uses it to recover errors hidden inside the oversized
// span the engine reports.
type Recheck func(part string) ([]types.ErrorSpan, error)

// FixParenSpacing rewrites "no-space-before-parent-start" spans. The engine
// reports the whole run of text around the parenthesis as one error; the
// markup convention annotates from the parenthesis with the suggestion
// " (". Any other span sharing the oversized range is a duplicate report
// and is dropped. The text on either side of the parenthesis is re-checked
// independently so errors swallowed by the oversized span are recovered;
// recovered spans take the range of the side they came from. The result is
// sorted by range.
//
// A nil recheck skips side-text recovery.
func FixParenSpacing(spans []types.ErrorSpan, recheck Recheck) []types.ErrorSpan {
	var parenSpans []types.ErrorSpan
	for _, s := range spans {
		if s.Category == noSpaceBeforeParen {
			parenSpans = append(parenSpans, s)
		}
	}
	if len(parenSpans) == 0 {
		return spans
	}

	out := spans
	for _, spaceErr := range parenSpans {
		out = fixOneParen(out, spaceErr, recheck)
	}
	types.SortByRange(out)
	return out
}

func fixOneParen(spans []types.ErrorSpan, spaceErr types.ErrorSpan, recheck Recheck) []types.ErrorSpan {
	paren := strings.IndexRune(spaceErr.Form, '(')
	if paren < 0 {
		return spans
	}
	parenRunes := utf8.RuneCountInString(spaceErr.Form[:paren])

	// Drop every span covering the oversized range, the reported span
	// itself included.
	out := make([]types.ErrorSpan, 0, len(spans))
	for _, s := range spans {
		if !s.SameRange(spaceErr) {
			out = append(out, s)
		}
	}

	out = append(out, types.ErrorSpan{
		Form:           spaceErr.Form[paren:],
		Start:          spaceErr.Start + parenRunes,
		End:            spaceErr.End,
		Category:       spaceErr.Category,
		Explanation:    spaceErr.Explanation,
		Suggestions:    []string{" ("},
		NativeCategory: spaceErr.NativeCategory,
	})

	if recheck == nil {
		return out
	}

	before := spaceErr.Form[:paren]
	if before != "" {
		out = addRecovered(out, before, spaceErr.Start, spaceErr.Start+parenRunes, recheck)
	}
	after := spaceErr.Form[paren+1:]
	if after != "" {
		start := spaceErr.Start + parenRunes + 1
		out = addRecovered(out, after, start, start+utf8.RuneCountInString(after), recheck)
	}
	return out
}

// addRecovered re-checks part and appends any distinct errors found,
// assigned to the part's range within the original sentence.
func addRecovered(spans []types.ErrorSpan, part string, start, end int, recheck Recheck) []types.ErrorSpan {
	found, err := recheck(part)
	if err != nil {
		return spans
	}

	for _, f := range found {
		candidate := types.ErrorSpan{
			Form:           f.Form,
			Start:          start,
			End:            end,
			Category:       f.Category,
			Explanation:    f.Explanation,
			Suggestions:    f.Suggestions,
			NativeCategory: f.NativeCategory,
		}
		if !containsIdentical(spans, candidate) {
			spans = append(spans, candidate)
		}
	}
	return spans
}
