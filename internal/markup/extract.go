// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package markup

import (
	"strings"
	"unicode/utf8"

	"github.com/giellalt/gramtest/pkg/types"
)

const correctTag = "correct"

func isErrorTag(tag string) bool { return strings.HasPrefix(tag, "error") }

// isNonNested reports whether every child of el is a correction, i.e. the
// error carries no deeper error structure of its own.
func isNonNested(el *Element) bool {
	for _, child := range el.Children {
		if child.Tag != correctTag {
			return false
		}
	}
	return true
}

// Extract walks a paragraph element and returns the uncorrected sentence
// text together with its expected error spans. Only non-nested errors are
// collected; an error wrapping deeper errors contributes its descendants
// instead of itself, so the resulting span list is flat and non-overlapping,
// sorted in document order. Offsets are rune offsets into the returned
// sentence.
func Extract(para *Element) types.AnnotatedSentence {
	text, spans := collect(para, 0)
	return types.AnnotatedSentence{
		Sentence: strings.ReplaceAll(text, "\n", " "),
		Errors:   spans,
	}
}

// collect returns el's uncorrected reading including its tail, plus the
// spans of its non-nested error descendants. offset is the rune position of
// el's text in the full sentence.
func collect(el *Element, offset int) (string, []types.ErrorSpan) {
	if isErrorTag(el.Tag) && isNonNested(el) {
		span := types.ErrorSpan{
			Form:           el.Text,
			Start:          offset,
			End:            offset + utf8.RuneCountInString(el.Text),
			Category:       el.Tag,
			Explanation:    explanationOf(el),
			Suggestions:    suggestionsOf(el),
			NativeCategory: el.Tag,
		}
		return el.Text + el.Tail, []types.ErrorSpan{span}
	}

	var b strings.Builder
	pos := offset
	write := func(s string) {
		b.WriteString(s)
		pos += utf8.RuneCountInString(s)
	}

	var spans []types.ErrorSpan
	write(el.Text)
	for _, child := range el.Children {
		if child.Tag == correctTag {
			continue
		}
		childText, childSpans := collect(child, pos)
		write(childText)
		spans = append(spans, childSpans...)
	}
	write(el.Tail)
	return b.String(), spans
}

func explanationOf(el *Element) string {
	if correct := el.Find(correctTag); correct != nil {
		return correct.Attr("errorinfo")
	}
	return ""
}

func suggestionsOf(el *Element) []string {
	var suggestions []string
	for _, correct := range el.FindAll(correctTag) {
		suggestions = append(suggestions, correct.Text)
	}
	return suggestions
}

// Flatten elides every element that is neither an error annotation nor a
// correction, merging its text into the surrounding content in document
// order. Error descendants of elided elements are hoisted into their place.
func Flatten(el *Element) {
	for _, child := range el.Children {
		Flatten(child)
	}

	var kept []*Element
	appendText := func(s string) {
		if s == "" {
			return
		}
		if len(kept) > 0 {
			kept[len(kept)-1].Tail += s
		} else {
			el.Text += s
		}
	}

	children := el.Children
	el.Children = nil
	for _, child := range children {
		if isErrorTag(child.Tag) || child.Tag == correctTag {
			kept = append(kept, child)
			continue
		}
		appendText(child.Text)
		kept = append(kept, child.Children...)
		appendText(child.Tail)
	}
	el.Children = kept
}

// FlattenURLs strips errorlang elements marking URLs, merging their text
// into the surrounding content. URL segments are corpus artifacts, not
// errors.
func FlattenURLs(el *Element) {
	for _, child := range el.Children {
		FlattenURLs(child)
	}

	var kept []*Element
	appendText := func(s string) {
		if s == "" {
			return
		}
		if len(kept) > 0 {
			kept[len(kept)-1].Tail += s
		} else {
			el.Text += s
		}
	}

	children := el.Children
	el.Children = nil
	for _, child := range children {
		if child.Tag == "errorlang" && child.Attr("correct") == "url" {
			appendText(child.Text)
			appendText(child.Tail)
			continue
		}
		kept = append(kept, child)
	}
	el.Children = kept
}
