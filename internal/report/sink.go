// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"

	"github.com/giellalt/gramtest/pkg/types"
)

// Sink receives the fixed hook points the test runner emits. How much of
// that becomes visible output is each implementation's business.
type Sink interface {
	// Title opens one test case out of total.
	Title(index, total int, testCase string)
	// Success records one passing expected/reported pairing.
	Success(caseNo, total int, outcome string, expected, reported types.ErrorSpan, filename string)
	// Failure records one failing pairing or orphan span.
	Failure(caseNo, total int, outcome string, expected, reported types.ErrorSpan, filename string)
	// Result closes one test case with its counts.
	Result(number int, counts types.OutcomeCounts, testCase string)
	// Final emits the aggregate summary for the whole run.
	Final(counts types.OutcomeCounts)
	// String returns everything rendered so far.
	String() string
}

// base buffers rendered text and carries the styles. All hooks are no-ops
// except Final, so verbosity levels override only what they show.
type base struct {
	buf    strings.Builder
	styles Styles
}

func (b *base) write(s string) { b.buf.WriteString(s) }

func (b *base) String() string { return b.buf.String() }

func (b *base) Title(int, int, string) {}

func (b *base) Success(int, int, string, types.ErrorSpan, types.ErrorSpan, string) {}

func (b *base) Failure(int, int, string, types.ErrorSpan, types.ErrorSpan, string) {}

func (b *base) Result(int, types.OutcomeCounts, string) {}

func (b *base) Final(counts types.OutcomeCounts) {
	b.write(fmt.Sprintf("Total passes: %s, Total fails: %s, Total: %s\n",
		b.styles.Pass.Render(fmt.Sprint(counts.Passes())),
		b.styles.Fail.Render(fmt.Sprint(counts.Fails())),
		b.styles.Title.Render(fmt.Sprint(counts.Total()))))
}

// Normal prints a banner per test case, one line per pairing, per-case and
// final summaries, and the precision block.
type Normal struct {
	base
}

// NewNormal returns the full-detail sink.
func NewNormal(styles Styles) *Normal {
	return &Normal{base: base{styles: styles}}
}

func (n *Normal) Title(index, total int, testCase string) {
	rule := strings.Repeat("-", 10)
	n.write(n.styles.Title.Render(fmt.Sprintf("%s\nTest %d/%d: %s\n%s", rule, index, total, testCase, rule)))
	n.write("\n")
}

func (n *Normal) Success(caseNo, total int, outcome string, expected, reported types.ErrorSpan, filename string) {
	n.writePairing(caseNo, total, n.styles.Pass.Render("PASS "+outcome), expected, reported, filename)
}

func (n *Normal) Failure(caseNo, total int, outcome string, expected, reported types.ErrorSpan, filename string) {
	n.writePairing(caseNo, total, n.styles.Fail.Render("FAIL "+outcome), expected, reported, filename)
}

func (n *Normal) writePairing(caseNo, total int, verdict string, expected, reported types.ErrorSpan, filename string) {
	if filename != "" {
		n.write(filename + "\n")
	}
	n.write(fmt.Sprintf("[%*d/%d][%s] %s:%s (%s) => %s:[%s] (%s)\n",
		len(fmt.Sprint(total)), caseNo, total, verdict,
		expected.Form, strings.Join(expected.Suggestions, ", "), expected.Explanation,
		reported.Form, strings.Join(reported.Suggestions, ", "), reported.Category))
}

func (n *Normal) Result(number int, counts types.OutcomeCounts, _ string) {
	n.write(fmt.Sprintf("Test %d - Passes: %s, Fails: %s, Total: %s\n\n",
		number,
		n.styles.Pass.Render(fmt.Sprint(counts.Passes())),
		n.styles.Fail.Render(fmt.Sprint(counts.Fails())),
		n.styles.Title.Render(fmt.Sprint(counts.Total()))))
}

func (n *Normal) Final(counts types.OutcomeCounts) {
	n.base.Final(counts)
	n.precision(counts)
}

func (n *Normal) precision(counts types.OutcomeCounts) {
	stats, ok := Derive(counts)
	if !ok {
		return
	}
	n.write(fmt.Sprintf("True positive: %s\n", n.styles.Pass.Render(fmt.Sprint(counts.TP))))
	n.write(fmt.Sprintf("True negative: %s\n", n.styles.Pass.Render(fmt.Sprint(counts.TN))))
	n.write(fmt.Sprintf("False positive 1: %s\n", n.styles.Fail.Render(fmt.Sprint(counts.FP1))))
	n.write(fmt.Sprintf("False positive 2: %s\n", n.styles.Fail.Render(fmt.Sprint(counts.FP2))))
	n.write(fmt.Sprintf("False negative 1: %s\n", n.styles.Fail.Render(fmt.Sprint(counts.FN1))))
	n.write(fmt.Sprintf("False negative 2: %s\n", n.styles.Fail.Render(fmt.Sprint(counts.FN2))))
	n.write(fmt.Sprintf("Precision: %.1f%%\n", stats.Precision*100))
	n.write(fmt.Sprintf("Recall: %.1f%%\n", stats.Recall*100))
	n.write(fmt.Sprintf("F₁ score: %.1f%%\n", stats.F1*100))
}

// Compact prints one verdict line per test case plus the final summary.
type Compact struct {
	base
}

// NewCompact returns the one-line-per-case sink.
func NewCompact(styles Styles) *Compact {
	return &Compact{base: base{styles: styles}}
}

func (c *Compact) Result(_ int, counts types.OutcomeCounts, testCase string) {
	out := fmt.Sprintf("%s %d/%d/%d", testCase, counts.Passes(), counts.Fails(), counts.Total())
	if counts.Fails() > 0 {
		c.write(fmt.Sprintf("[%s] %s\n", c.styles.Fail.Render("FAIL"), out))
		return
	}
	c.write(fmt.Sprintf("[%s] %s\n", c.styles.Pass.Render("PASS"), out))
}

// Terse prints a dot per pass, a bang per fail, and a one-word verdict.
type Terse struct {
	base
}

// NewTerse returns the progress-dots sink.
func NewTerse(styles Styles) *Terse {
	return &Terse{base: base{styles: styles}}
}

func (t *Terse) Success(int, int, string, types.ErrorSpan, types.ErrorSpan, string) {
	t.write(t.styles.Pass.Render("."))
}

func (t *Terse) Failure(int, int, string, types.ErrorSpan, types.ErrorSpan, string) {
	t.write(t.styles.Fail.Render("!"))
}

func (t *Terse) Result(int, types.OutcomeCounts, string) {
	t.write("\n")
}

func (t *Terse) Final(counts types.OutcomeCounts) {
	if counts.Fails() > 0 {
		t.write(t.styles.Fail.Render("FAIL") + "\n")
		return
	}
	t.write(t.styles.Pass.Render("PASS") + "\n")
}

// Final prints only "passes/fails/total", for scripting.
type Final struct {
	base
}

// NewFinal returns the summary-only sink.
func NewFinal(styles Styles) *Final {
	return &Final{base: base{styles: styles}}
}

func (f *Final) Final(counts types.OutcomeCounts) {
	f.write(fmt.Sprintf("%d/%d/%d", counts.Passes(), counts.Fails(), counts.Total()))
}

// Silent renders nothing; the exit code is the only signal.
type Silent struct {
	base
}

// NewSilent returns the no-output sink.
func NewSilent() *Silent {
	return &Silent{}
}

func (s *Silent) Final(types.OutcomeCounts) {}

// New maps an output-mode name to a sink. Unknown names get the normal
// sink.
func New(mode string, styles Styles) Sink {
	switch mode {
	case "compact":
		return NewCompact(styles)
	case "terse":
		return NewTerse(styles)
	case "final":
		return NewFinal(styles)
	case "none", "silent":
		return NewSilent()
	default:
		return NewNormal(styles)
	}
}
