// Package theme holds the palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/encounter"
)

// Palette: dusk-toned, with one hue per mask.
var (
	Primary   = lipgloss.Color("#C084FC") // Lilac
	Secondary = lipgloss.Color("#2DD4BF") // Teal
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#4ADE80")
	Warning   = lipgloss.Color("#FB923C")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E1B2E")
	Border    = lipgloss.Color("#3F3A5A")
)

var maskColors = [encounter.MaskCount]color.Color{
	lipgloss.Color("#60A5FA"), // blue
	lipgloss.Color("#F472B6"), // pink
	lipgloss.Color("#A3E635"), // lime
	lipgloss.Color("#FACC15"), // yellow
}

// MaskColor is the accent for m.
func MaskColor(m encounter.Mask) color.Color {
	if !m.Valid() {
		return TextDim
	}
	return maskColors[m]
}

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Dialogue = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 3)

	Keyword = lipgloss.NewStyle().
		Foreground(Accent).
		Underline(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Struck = lipgloss.NewStyle().
		Foreground(Border).
		Strikethrough(true)
)

// OutcomeStyle colours feedback by result name ("correct", "wrong",
// "timeout", "neutral").
func OutcomeStyle(outcome string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch outcome {
	case "correct":
		return s.Foreground(Success)
	case "neutral":
		return s.Foreground(Accent)
	case "timeout":
		return s.Foreground(Warning)
	default:
		return s.Foreground(Error)
	}
}
