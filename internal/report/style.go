// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package report renders classification results at several verbosity
// levels, from per-pairing detail down to a single summary block.
package report

import "github.com/charmbracelet/lipgloss"

// Palette colours for terminal output.
var (
	successColor = lipgloss.Color("2")
	failureColor = lipgloss.Color("1")
	headingColor = lipgloss.Color("6")
	mutedColor   = lipgloss.Color("8")
)

// Styles bundles the text styles used by the sinks. With colour disabled
// every style is the zero style and renders plain text.
type Styles struct {
	Title   lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Muted   lipgloss.Style
	Summary lipgloss.Style
}

// NewStyles returns the report styles, coloured or plain.
func NewStyles(colour bool) Styles {
	if !colour {
		return Styles{}
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true),
		Pass: lipgloss.NewStyle().
			Foreground(successColor),
		Fail: lipgloss.NewStyle().
			Foreground(failureColor).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(mutedColor),
		Summary: lipgloss.NewStyle().
			Bold(true),
	}
}
