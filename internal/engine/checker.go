// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/giellalt/gramtest/pkg/types"
)

// checkerLine is one line of checker-engine output: the echoed sentence and
// its errors.
type checkerLine struct {
	Text string         `json:"text"`
	Errs []checkerError `json:"errs"`
}

// checkerError is the engine's positional error record:
// [form, start, end, category, description, suggestions, title].
type checkerError struct {
	Form        string
	Start       int
	End         int
	Category    string
	Description string
	Suggestions []string
	Title       string
}

func (e *checkerError) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < 6 {
		return fmt.Errorf("error record has %d fields, want at least 6", len(fields))
	}

	if err := json.Unmarshal(fields[0], &e.Form); err != nil {
		return fmt.Errorf("form: %w", err)
	}
	if err := json.Unmarshal(fields[1], &e.Start); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := json.Unmarshal(fields[2], &e.End); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if err := json.Unmarshal(fields[3], &e.Category); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if err := json.Unmarshal(fields[4], &e.Description); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	if err := json.Unmarshal(fields[5], &e.Suggestions); err != nil {
		return fmt.Errorf("suggestions: %w", err)
	}
	if len(fields) > 6 {
		if err := json.Unmarshal(fields[6], &e.Title); err != nil {
			return fmt.Errorf("title: %w", err)
		}
	}
	return nil
}

func (e checkerError) span() types.ErrorSpan {
	return types.ErrorSpan{
		Form:           e.Form,
		Start:          e.Start,
		End:            e.End,
		Category:       e.Category,
		Explanation:    e.Description,
		Suggestions:    e.Suggestions,
		NativeCategory: e.Title,
	}
}

// ParseCheckerOutput decodes checker-engine output: one JSON object per
// line, one line per submitted sentence, rune offsets. A malformed line is
// a hard error since silently skipping it would break the positional
// pairing with the submitted sentences.
func ParseCheckerOutput(output string) ([]Result, error) {
	var results []Result
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var parsed checkerLine
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			return nil, fmt.Errorf("parsing checker output line %q: %w", firstLine(line), err)
		}
		errors := make([]types.ErrorSpan, 0, len(parsed.Errs))
		for _, e := range parsed.Errs {
			errors = append(errors, e.span())
		}
		results = append(results, Result{Text: parsed.Text, Errors: errors})
	}
	return results, nil
}
