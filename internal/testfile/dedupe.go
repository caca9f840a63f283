// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package testfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// testLine matches a YAML list entry holding a quoted test sentence.
var testLine = regexp.MustCompile(`^(\s*-\s+)("[^"]+"|'[^']+')`)

// RemoveDupes rewrites the test file so each test sentence appears once,
// keeping the last occurrence. It returns the duplicated sentences; a
// non-empty result means the file was modified and the run should halt
// with a hard error so the fix gets committed.
func RemoveDupes(f *File) ([]string, error) {
	counts := make(map[string]int, len(f.Tests))
	for _, test := range f.Tests {
		counts[test]++
	}

	var dupes []string
	for _, test := range f.Tests {
		if counts[test] > 1 && !contains(dupes, test) {
			dupes = append(dupes, test)
		}
	}
	if len(dupes) == 0 {
		return nil, nil
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading test file: %w", err)
	}

	var out strings.Builder
	for _, line := range splitKeepEnds(string(data)) {
		m := testLine.FindStringSubmatch(strings.TrimRight(line, "\n"))
		if m == nil {
			out.WriteString(line)
			continue
		}
		quoted := m[2]
		test := quoted[1 : len(quoted)-1]
		if counts[test] > 1 {
			counts[test]--
			continue
		}
		out.WriteString(line)
	}

	if err := os.WriteFile(f.Path, []byte(out.String()), 0o644); err != nil {
		return nil, fmt.Errorf("rewriting test file: %w", err)
	}
	return dupes, nil
}

func splitKeepEnds(s string) []string {
	var lines []string
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			if s != "" {
				lines = append(lines, s)
			}
			return lines
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
