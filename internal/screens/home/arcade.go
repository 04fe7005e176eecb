package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/screens/welcome"
	"github.com/abhisek/masquerade/internal/store"
	"github.com/abhisek/masquerade/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections.
// All boxes are rendered at this width so they visually align.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	return min(max(frameWidth-6, 20), 90)
}

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(cw))
}

// renderStatsBar summarises the record and the last game in a bordered box.
func renderStatsBar(totals store.Totals, last *store.LastGame, cw int, compact bool) string {
	winStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	gameStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			gameStyle.Render(fmt.Sprintf("♦%d", totals.Games)),
			winStyle.Render(fmt.Sprintf("★%d", totals.Wins)),
			lastGameText(last, true, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			gameStyle.Render(fmt.Sprintf("♦ %d PARTIES", totals.Games)),
			winStyle.Render(fmt.Sprintf("★ %d SURVIVED", totals.Wins)),
			lastGameText(last, false, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func lastGameText(last *store.LastGame, compact bool, dim lipgloss.Style) string {
	if last == nil {
		if compact {
			return dim.Render("—")
		}
		return dim.Render("NO LAST GAME")
	}
	acc := 0.0
	if last.TotalAnswers > 0 {
		acc = float64(last.CorrectAnswers) / float64(last.TotalAnswers) * 100
	}
	style := lipgloss.NewStyle().Foreground(theme.Error)
	result := "LOST"
	if last.GameWon {
		style = lipgloss.NewStyle().Foreground(theme.Success)
		result = "WON"
	}
	if compact {
		return style.Render(fmt.Sprintf("%.0f%%", acc))
	}
	return style.Render(fmt.Sprintf("LAST: %s %.0f%%", result, acc))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when space is short.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool, compact bool) string {
	base := lipgloss.NewStyle().Width(buttonWidth).Align(lipgloss.Center)
	if !compact {
		base = base.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1)
	}
	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgCard).
		Background(theme.Accent).
		BorderForeground(theme.Accent)
	normalBtn := base.Foreground(theme.Text)
	disabledBtn := base.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

func renderNote(text string, color lipgloss.Style, cw int) string {
	return color.
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderCabinetFrame wraps content in a double-border frame, centred in
// the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).   // account for border chars
		Height(height-2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
