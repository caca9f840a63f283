// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package fixes

import "github.com/giellalt/gramtest/pkg/types"

// RemoveDuplicates drops one member of every pair of spans that share the
// same (form, start, end) location but differ otherwise, so no location is
// compared twice against the same expected span. Idempotent: a second run
// removes nothing further.
func RemoveDuplicates(spans []types.ErrorSpan) []types.ErrorSpan {
	drop := make([]bool, len(spans))
	claimed := make([]bool, len(spans))

	for i := range spans {
		if claimed[i] {
			continue
		}
		for j := i + 1; j < len(spans); j++ {
			if claimed[j] {
				continue
			}
			if spans[i].SameLocation(spans[j]) && !identical(spans[i], spans[j]) {
				claimed[i], claimed[j] = true, true
				drop[i] = true
				break
			}
		}
	}

	out := make([]types.ErrorSpan, 0, len(spans))
	for i, s := range spans {
		if !drop[i] {
			out = append(out, s)
		}
	}
	return out
}

// identical compares every field, including the descriptive ones Equal
// ignores.
func identical(a, b types.ErrorSpan) bool {
	return a.Equal(b) && a.Explanation == b.Explanation && a.NativeCategory == b.NativeCategory
}

func containsIdentical(spans []types.ErrorSpan, s types.ErrorSpan) bool {
	for _, other := range spans {
		if identical(other, s) {
			return true
		}
	}
	return false
}
