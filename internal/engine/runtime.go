// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package engine

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/giellalt/gramtest/pkg/types"
)

// ansiEscape matches ESC [ params letter colour sequences, including the
// 24-bit forms like ESC[48;2;R;G;Bm the runtime engine emits.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes terminal colour escape sequences.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// ExtractJSON isolates the JSON object in runtime-engine output by counting
// braces from the first opening brace. Naive bracket search fails on nested
// objects, and the engine wraps the object in colour codes and log noise.
// Returns "{}" when no complete object is present.
func ExtractJSON(output string) string {
	clean := StripANSI(output)

	start := strings.IndexByte(clean, '{')
	if start < 0 {
		return "{}"
	}

	depth := 0
	for i := start; i < len(clean); i++ {
		switch clean[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return clean[start : i+1]
			}
		}
	}
	return "{}"
}

// runtimeResponse is the engine's single response object covering the whole
// multi-sentence input. Error offsets are byte offsets into the UTF-8
// encoding of Text.
type runtimeResponse struct {
	Text   string         `json:"text"`
	Errors []runtimeError `json:"errors"`
}

type runtimeError struct {
	Form        string   `json:"form"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	ErrorID     string   `json:"error_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Suggestions []string `json:"suggestions"`
}

// ParseRuntimeOutput normalizes runtime-engine output into one Result per
// input sentence. Steps: strip ANSI codes, isolate the JSON object, convert
// byte offsets to rune offsets, split the echoed text on newlines and
// assign each error to the sentence whose range contains it, rebasing
// offsets to the sentence start, and map error identifiers to categories by
// stripping the "err-" prefix.
//
// Malformed JSON yields a single empty result rather than an error: one
// sentence's encoding quirk must not abort the batch, and the count
// mismatch surfaces downstream where alignment is enforced.
func ParseRuntimeOutput(output string, log *zap.Logger) []Result {
	if log == nil {
		log = zap.NewNop()
	}

	var resp runtimeResponse
	if err := json.Unmarshal([]byte(ExtractJSON(output)), &resp); err != nil {
		log.Warn("unparsable runtime output, substituting empty result",
			zap.Error(err))
		return []Result{{}}
	}

	type runeSpan struct {
		form        string
		start, end  int
		category    string
		description string
		suggestions []string
		title       string
	}
	spans := make([]runeSpan, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		spans = append(spans, runeSpan{
			form:        e.Form,
			start:       byteToRuneOffset(resp.Text, e.Start),
			end:         byteToRuneOffset(resp.Text, e.End),
			category:    strings.TrimPrefix(e.ErrorID, "err-"),
			description: e.Description,
			suggestions: e.Suggestions,
			title:       e.Title,
		})
	}

	var results []Result
	lineStart := 0
	for _, line := range strings.Split(resp.Text, "\n") {
		lineEnd := lineStart + utf8.RuneCountInString(line)

		result := Result{Text: line}
		for _, s := range spans {
			if s.start >= lineStart && s.end <= lineEnd {
				result.Errors = append(result.Errors, types.ErrorSpan{
					Form:           s.form,
					Start:          s.start - lineStart,
					End:            s.end - lineStart,
					Category:       s.category,
					Explanation:    s.description,
					Suggestions:    s.suggestions,
					NativeCategory: s.title,
				})
			}
		}
		results = append(results, result)

		lineStart = lineEnd + 1 // the newline separator
	}
	return results
}

// byteToRuneOffset converts a byte offset into text to a rune offset.
// Offsets beyond the text clamp to its rune length.
func byteToRuneOffset(text string, byteOff int) int {
	if byteOff < 0 {
		return 0
	}
	if byteOff > len(text) {
		byteOff = len(text)
	}
	return utf8.RuneCountInString(text[:byteOff])
}
