// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorSpanEqual(t *testing.T) {
	base := ErrorSpan{
		Form:        "sjievnnjis",
		Start:       9,
		End:         19,
		Category:    "errorort",
		Suggestions: []string{"sjievnnijis"},
	}

	tests := []struct {
		name  string
		other ErrorSpan
		want  bool
	}{
		{"identical", base, true},
		{"explanation ignored", ErrorSpan{
			Form: "sjievnnjis", Start: 9, End: 19, Category: "errorort",
			Explanation: "conc,vnn-vnnj", Suggestions: []string{"sjievnnijis"},
		}, true},
		{"different range", ErrorSpan{
			Form: "sjievnnjis", Start: 8, End: 18, Category: "errorort",
			Suggestions: []string{"sjievnnijis"},
		}, false},
		{"different category", ErrorSpan{
			Form: "sjievnnjis", Start: 9, End: 19, Category: "typo",
			Suggestions: []string{"sjievnnijis"},
		}, false},
		{"different suggestions", ErrorSpan{
			Form: "sjievnnjis", Start: 9, End: 19, Category: "errorort",
			Suggestions: []string{"sjievdnjis"},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
		})
	}
}

func TestSortByRange(t *testing.T) {
	spans := []ErrorSpan{
		{Form: "c", Start: 10, End: 12},
		{Form: "a", Start: 0, End: 4},
		{Form: "b", Start: 0, End: 2},
	}
	SortByRange(spans)

	assert.Equal(t, "b", spans[0].Form)
	assert.Equal(t, "a", spans[1].Form)
	assert.Equal(t, "c", spans[2].Form)
}

func TestOutcomeCounts(t *testing.T) {
	var total OutcomeCounts
	total.Add(OutcomeCounts{TP: 2, FN2: 1})
	total.Add(OutcomeCounts{TN: 1, FP1: 3})

	assert.Equal(t, 3, total.Passes())
	assert.Equal(t, 4, total.Fails())
	assert.Equal(t, 7, total.Total())
	assert.False(t, total.Passed())
	assert.True(t, OutcomeCounts{TP: 5, TN: 1}.Passed())
}
