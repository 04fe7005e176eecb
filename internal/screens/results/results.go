// Package results shows how a finished game went.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
	"github.com/abhisek/masquerade/internal/session"
	"github.com/abhisek/masquerade/internal/ui/components"
	"github.com/abhisek/masquerade/internal/ui/layout"
	"github.com/abhisek/masquerade/internal/ui/theme"
)

// ResultsScreen displays the end of a game.
type ResultsScreen struct {
	result    session.Result
	maxHealth int
	replay    func() screen.Screen
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen. replay, when set, builds a fresh game on
// the same seed.
func New(result session.Result, maxHealth int, replay func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{result: result, maxHealth: maxHealth, replay: replay}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	if s.result.Won {
		return "You made it"
	}
	return "Social battery drained"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.replay != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Replay seed"})
	}
	return hints
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.PopToRoot
		case "r", "R":
			if s.replay != nil {
				return s, router.Replace(s.replay())
			}
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	r := s.result
	cw := components.ContentWidth(width)
	center := func(str string) string { return lipgloss.PlaceHorizontal(cw, lipgloss.Center, str) }

	var b strings.Builder

	headline := "The night is over and you're still standing."
	style := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	if !r.Won {
		headline = fmt.Sprintf("You went home early on day %d.", r.Day)
		style = style.Foreground(theme.Error)
	}
	b.WriteString(center(style.Render(headline)))
	b.WriteString("\n\n")

	b.WriteString(center("Battery  " + components.Battery(r.Health, s.maxHealth)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Answers: %d        Right: %d        Accuracy: %.0f%%",
		r.TotalAnswers, r.CorrectAnswers, r.Accuracy()*100)
	b.WriteString(center(theme.Body.Render(stats)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(cw-8, 60)))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Skills")))
	b.WriteString("\n")
	b.WriteString(center(divider))
	b.WriteString("\n\n")
	if len(r.Skills) == 0 {
		b.WriteString(center(theme.Hint.Render("None picked up")))
	}
	for _, label := range r.Skills {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary).Render(label)))
		b.WriteString("\n")
	}
	b.WriteString("\n\n")
	b.WriteString(center(theme.Hint.Render(fmt.Sprintf("seed %d", r.Seed))))

	return layout.Center(strings.TrimRight(b.String(), "\n"), width, height)
}
