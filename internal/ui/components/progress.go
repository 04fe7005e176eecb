package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/ui/theme"
)

// ProgressBar is a horizontal bar. Low, when positive, switches the fill
// to the warning colour at or below that fraction.
type ProgressBar struct {
	Label   string
	Percent float64
	Caption string
	Width   int
	Low     float64
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = theme.Body.Render(p.Label) + "  "
	}
	caption := ""
	if p.Caption != "" {
		caption = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Caption)
	}

	bar := max(p.Width-lipgloss.Width(out)-lipgloss.Width(caption), 4)
	pct := min(max(p.Percent, 0), 1)
	filled := int(float64(bar)*pct + 0.5)

	var fill color.Color = theme.Secondary
	if p.Low > 0 && pct <= p.Low {
		fill = theme.Warning
	}
	out += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", bar-filled))
	return out + caption
}

// Battery renders health as cells, e.g. "▰▰▰▱▱▱▱ 3/7".
func Battery(health, maxHealth int) string {
	health = min(max(health, 0), maxHealth)
	var fill color.Color = theme.Success
	switch {
	case health <= 1:
		fill = theme.Error
	case health*3 <= maxHealth:
		fill = theme.Warning
	}
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("▰", health)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("▱", maxHealth-health)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %d/%d", health, maxHealth))
}
