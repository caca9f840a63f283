// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package report

import "github.com/giellalt/gramtest/pkg/types"

// Stats are the derived quality measures for a run.
type Stats struct {
	Precision float64
	Recall    float64
	F1        float64
}

// Derive computes precision, recall and F1 from outcome counts. It returns
// false when any denominator is zero; callers skip the stats section in
// that case instead of reporting NaN.
func Derive(counts types.OutcomeCounts) (Stats, bool) {
	tp := float64(counts.TP)
	fp := float64(counts.FP1 + counts.FP2)
	fn := float64(counts.FN1 + counts.FN2)

	if tp+fp == 0 || tp+fn == 0 {
		return Stats{}, false
	}
	precision := tp / (tp + fp)
	recall := tp / (tp + fn)
	if precision+recall == 0 {
		return Stats{}, false
	}
	return Stats{
		Precision: precision,
		Recall:    recall,
		F1:        2 * precision * recall / (precision + recall),
	}, true
}
