// Package theme holds the terminal styles used by CLI output.
package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bounce/internal/requirement"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
	Gold      = lipgloss.Color("#EAB308") // Yellow
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Value = lipgloss.NewStyle().
		Foreground(Text)

	Score = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Pass = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Fail = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Mark renders a pass/fail check mark.
func Mark(ok bool) string {
	if ok {
		return Pass.Render("✓")
	}
	return Fail.Render("✗")
}

// Divider renders a horizontal rule of the given width.
func Divider(width int) string {
	return Label.Render(strings.Repeat("─", width))
}

// Field renders an aligned "key: value" line.
func Field(key, value string) string {
	return Label.Render(fmt.Sprintf("%-14s", key+":")) + " " + Value.Render(value)
}

// Difficulty renders a difficulty score.
func Difficulty(v float64) string {
	return Score.Render(fmt.Sprintf("%.1f", v))
}

// TierStyle returns the accent style for a requirement tier.
func TierStyle(t requirement.Tier) lipgloss.Style {
	c := TextDim
	switch t {
	case requirement.TierBeginner:
		c = Success
	case requirement.TierIntermediate:
		c = Secondary
	case requirement.TierAdvanced:
		c = Primary
	case requirement.TierElite:
		c = Gold
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
