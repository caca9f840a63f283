// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giellalt/gramtest/pkg/types"
)

func TestExtractSingleError(t *testing.T) {
	para, err := ParseString(
		`<p>Mun lean <errorort>sjievnnjis<correct errorinfo="conc,vnn-vnnj">sjievnnijis</correct></errorort></p>`)
	require.NoError(t, err)

	got := Extract(para)

	assert.Equal(t, "Mun lean sjievnnjis", got.Sentence)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, types.ErrorSpan{
		Form:           "sjievnnjis",
		Start:          9,
		End:            19,
		Category:       "errorort",
		Explanation:    "conc,vnn-vnnj",
		Suggestions:    []string{"sjievnnijis"},
		NativeCategory: "errorort",
	}, got.Errors[0])
}

func TestExtractSpansMatchText(t *testing.T) {
	para, err := ParseString(
		`<p>a <errorortreal>e1<correct>c1</correct></errorortreal> b <errorort>e2<correct>c2</correct></errorort>.</p>`)
	require.NoError(t, err)

	got := Extract(para)

	assert.Equal(t, "a e1 b e2.", got.Sentence)
	require.Len(t, got.Errors, 2)
	for _, span := range got.Errors {
		assert.Equal(t, span.Form, string([]rune(got.Sentence)[span.Start:span.End]))
	}
	assert.Equal(t, 2, got.Errors[0].Start)
	assert.Equal(t, 4, got.Errors[0].End)
	assert.Equal(t, 7, got.Errors[1].Start)
	assert.Equal(t, 9, got.Errors[1].End)
}

func TestExtractNestedCollectsLeavesOnly(t *testing.T) {
	// The outer errormorphsyn wraps a deeper errorort; only the non-nested
	// inner error is collected, with offsets into the uncorrected text.
	para, err := ParseString(
		`<p>Son <errormorphsyn><errorort>guollá<correct>guolást</correct></errorort> ollu<correct>guolásta ollu</correct></errormorphsyn>.</p>`)
	require.NoError(t, err)

	got := Extract(para)

	assert.Equal(t, "Son guollá ollu.", got.Sentence)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "guollá", got.Errors[0].Form)
	assert.Equal(t, "errorort", got.Errors[0].Category)
	assert.Equal(t, 4, got.Errors[0].Start)
	assert.Equal(t, 10, got.Errors[0].End)
}

func TestExtractMultiByteOffsets(t *testing.T) {
	para, err := ParseString(
		`<p>Čále <errorort>sámegillii<correct>sámegillii.</correct></errorort></p>`)
	require.NoError(t, err)

	got := Extract(para)

	require.Len(t, got.Errors, 1)
	// "Čále " is five runes even though Č is two bytes.
	assert.Equal(t, 5, got.Errors[0].Start)
	assert.Equal(t, 15, got.Errors[0].End)
}

func TestExtractMultipleSuggestions(t *testing.T) {
	para, err := ParseString(
		`<p><error>1]<correct>Ij</correct><correct>ij</correct></error></p>`)
	require.NoError(t, err)

	got := Extract(para)

	require.Len(t, got.Errors, 1)
	assert.Equal(t, []string{"Ij", "ij"}, got.Errors[0].Suggestions)
	assert.Equal(t, "error", got.Errors[0].Category)
	assert.Empty(t, got.Errors[0].Explanation)
}

func TestFlattenElidesNonErrorElements(t *testing.T) {
	para, err := ParseString(
		`<p>Dat <em>lea <errorort>boasttu<correct>boastu</correct></errorort> sátni</em> dás.</p>`)
	require.NoError(t, err)

	Flatten(para)
	got := Extract(para)

	assert.Equal(t, "Dat lea boasttu sátni dás.", got.Sentence)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "boasttu", got.Errors[0].Form)
	assert.Equal(t, 8, got.Errors[0].Start)
}

func TestFlattenURLs(t *testing.T) {
	para, err := ParseString(
		`<p>Geahča <errorlang correct="url">www.divvun.no</errorlang> dás.</p>`)
	require.NoError(t, err)

	FlattenURLs(para)
	got := Extract(para)

	assert.Equal(t, "Geahča www.divvun.no dás.", got.Sentence)
	assert.Empty(t, got.Errors)
}

func TestTailAfterError(t *testing.T) {
	para, err := ParseString(
		`<p><errorort>olmmos<correct>olmmoš</correct></errorort> lea.</p>`)
	require.NoError(t, err)

	got := Extract(para)

	assert.Equal(t, "olmmos lea.", got.Sentence)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, 0, got.Errors[0].Start)
	assert.Equal(t, 6, got.Errors[0].End)
}
