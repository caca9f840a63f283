// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package testfile

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// MigrateTests moves test sentences between paired PASS/FAIL files based
// on outcomes: passing tests leave a FAIL file for its PASS sibling, and
// failing tests leave a PASS file for its FAIL sibling. outcomes[i] is
// whether f.Tests[i] passed. Files named neither PASS nor FAIL are left
// alone.
func MigrateTests(f *File, outcomes []bool) error {
	switch {
	case strings.Contains(f.Path, "FAIL"):
		moved := selectTests(f.Tests, outcomes, true)
		return moveTests(f, moved, strings.Replace(f.Path, "FAIL", "PASS", 1))
	case strings.Contains(f.Path, "PASS"):
		moved := selectTests(f.Tests, outcomes, false)
		return moveTests(f, moved, strings.Replace(f.Path, "PASS", "FAIL", 1))
	}
	return nil
}

func selectTests(tests []string, outcomes []bool, wantPassed bool) []string {
	var out []string
	for i, test := range tests {
		if i < len(outcomes) && outcomes[i] == wantPassed {
			out = append(out, test)
		}
	}
	return out
}

func moveTests(f *File, moved []string, destPath string) error {
	if len(moved) == 0 {
		return nil
	}

	if err := ensureSibling(f, destPath); err != nil {
		return err
	}

	dest, err := os.OpenFile(destPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening sibling test file: %w", err)
	}
	for _, test := range moved {
		quote := `"`
		if strings.Contains(test, `"`) {
			quote = "'"
		}
		fmt.Fprintf(dest, "  - %s%s%s\n", quote, test, quote)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("closing sibling test file: %w", err)
	}

	return removeMovedLines(f.Path, moved)
}

// ensureSibling creates the destination file if missing, copying the
// source's Config section and starting an empty Tests list.
func ensureSibling(f *File, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking sibling test file: %w", err)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("reading test file: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &StructureError{Path: f.Path, Msg: fmt.Sprintf("yaml syntax error: %v", err)}
	}
	delete(doc, "Tests")

	head, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("writing sibling test file: %w", err)
	}
	content := string(head) + "\nTests:\n"
	if err := os.WriteFile(destPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing sibling test file: %w", err)
	}
	return nil
}

func removeMovedLines(path string, moved []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading test file: %w", err)
	}

	var out strings.Builder
	for _, line := range splitKeepEnds(string(data)) {
		trimmed := strings.TrimSpace(line)
		kept := true
		for _, test := range moved {
			if strings.Contains(trimmed, test) {
				kept = false
				break
			}
		}
		if kept {
			out.WriteString(line)
		}
	}
	if err := os.WriteFile(path, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("rewriting test file: %w", err)
	}
	return nil
}
