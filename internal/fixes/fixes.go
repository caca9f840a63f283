// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package fixes

import (
	"go.uber.org/zap"

	"github.com/giellalt/gramtest/pkg/types"
)

// Apply runs the full reconciliation pipeline over one sentence's reported
// spans: reveal errors hidden by aistton ranges, split aistton spans to the
// markup convention, rewrite parenthesis-spacing spans (re-checking side
// text through recheck when provided), and suppress duplicate locations.
func Apply(spans []types.ErrorSpan, recheck Recheck) []types.ErrorSpan {
	spans = RevealHidden(spans)
	spans = SplitAistton(spans)
	spans = FixParenSpacing(spans, recheck)
	spans = RemoveDuplicates(spans)
	types.SortByRange(spans)
	return spans
}

// ApplyRuntime maps the runtime engine's quotation-marks categories onto
// the aistton family, then runs the same pipeline as Apply. Spans whose
// direction cannot be inferred are kept unmapped and logged; they will
// surface as mismatches rather than abort the sentence.
func ApplyRuntime(spans []types.ErrorSpan, recheck Recheck, log *zap.Logger) []types.ErrorSpan {
	if log == nil {
		log = zap.NewNop()
	}
	mapped := make([]types.ErrorSpan, 0, len(spans))
	for _, s := range spans {
		m, err := MapQuotationMarks(s)
		if err != nil {
			log.Warn("keeping unmappable quotation-marks span",
				zap.String("form", s.Form), zap.Error(err))
		}
		mapped = append(mapped, m)
	}
	return Apply(mapped, recheck)
}
