// Package seed asks for a root seed so a game can be replayed exactly.
package seed

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
	"github.com/abhisek/masquerade/internal/ui/components"
	"github.com/abhisek/masquerade/internal/ui/layout"
	"github.com/abhisek/masquerade/internal/ui/theme"
)

// maxDigits fits any uint32.
const maxDigits = 10

// SeedScreen reads a seed and starts a game with it.
type SeedScreen struct {
	input components.NumberInput
	start func(seed uint32) screen.Screen
	err   string
}

var _ screen.Screen = (*SeedScreen)(nil)
var _ screen.KeyHintProvider = (*SeedScreen)(nil)

// New creates a SeedScreen. start builds the game for the entered seed.
func New(start func(seed uint32) screen.Screen) *SeedScreen {
	return &SeedScreen{
		input: components.NewNumberInput("e.g. 1234", maxDigits),
		start: start,
	}
}

func (s *SeedScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SeedScreen) Title() string {
	return "Seeded Game"
}

func (s *SeedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "0-9", Description: "Seed"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SeedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		v, err := s.input.Uint32()
		if err != nil {
			s.err = "Enter a whole number between 0 and 4294967295."
			return s, nil
		}
		return s, router.Replace(s.start(v))
	}

	s.err = ""
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SeedScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	lines := []string{
		theme.Title.Width(cw - 6).Render("Pick a seed"),
		theme.Subtitle.Width(cw - 6).Render("The same seed deals the same encounters and skill offers."),
		"",
		s.input.View(),
	}
	if s.err != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.err))
	}
	return layout.Center(components.Card(strings.Join(lines, "\n"), cw), width, height)
}
