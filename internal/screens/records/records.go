// Package records lists past games and aggregate play statistics.
package records

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
	"github.com/abhisek/masquerade/internal/store"
	"github.com/abhisek/masquerade/internal/ui/layout"
	"github.com/abhisek/masquerade/internal/ui/theme"
)

const recentLimit = 50

type recordsLoadedMsg struct {
	Games    []store.GameResult
	Totals   store.Totals
	Outcomes map[string]int
	Picks    map[string]int
	Err      error
}

// RecordsScreen displays past games.
type RecordsScreen struct {
	results  store.ResultRepo
	events   store.EventRepo
	games    []store.GameResult
	totals   store.Totals
	outcomes map[string]int
	picks    map[string]int
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*RecordsScreen)(nil)
var _ screen.KeyHintProvider = (*RecordsScreen)(nil)

// New creates a RecordsScreen. events may be nil.
func New(results store.ResultRepo, events store.EventRepo) *RecordsScreen {
	return &RecordsScreen{
		results:  results,
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *RecordsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		games, err := s.results.Recent(ctx, store.QueryOpts{Limit: recentLimit})
		if err != nil {
			return recordsLoadedMsg{Err: err}
		}
		totals, err := s.results.Totals(ctx)
		if err != nil {
			return recordsLoadedMsg{Err: err}
		}

		msg := recordsLoadedMsg{Games: games, Totals: totals}
		if s.events != nil {
			// Breakdowns are optional; the list still shows without them.
			msg.Outcomes, _ = s.events.OutcomeCounts(ctx)
			msg.Picks, _ = s.events.SkillPicks(ctx)
		}
		return msg
	}
}

func (s *RecordsScreen) Title() string {
	return "Records"
}

func (s *RecordsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RecordsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.games = msg.Games
			s.totals = msg.Totals
			s.outcomes = msg.Outcomes
			s.picks = msg.Picks
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.games)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *RecordsScreen) View(width, height int) string {
	center := func(str string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, str) }
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return dim.Width(width).Align(lipgloss.Center).Render("\n\n  Loading records...")
	}
	if len(s.games) == 0 {
		return dim.Width(width).Align(lipgloss.Center).Italic(true).
			Render("\n\n  No games yet. The party is waiting!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(s.renderTotals()))
	b.WriteString("\n")
	if line := s.renderBreakdown(); line != "" {
		b.WriteString(center(dim.Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, g := range s.games {
		result := "lost"
		if g.Won {
			result = "won "
		}
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s  day %d  %d answers  %.0f%% accuracy",
			prefix, g.CreatedAt.Local().Format("Jan 02 15:04"), result, g.Day, g.TotalAnswers, g.Accuracy()*100)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(center(style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			skills := "no skills"
			if len(g.Skills) > 0 {
				skills = strings.Join(g.Skills, ", ")
			}
			detail := fmt.Sprintf("    seed %d  battery %d  %s", g.Seed, g.Health, skills)
			b.WriteString(center(dim.Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *RecordsScreen) renderTotals() string {
	t := s.totals
	acc := 0.0
	if t.TotalAnswers > 0 {
		acc = float64(t.CorrectAnswers) / float64(t.TotalAnswers) * 100
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(
		fmt.Sprintf("%d games   %d wins   best day %d   %.0f%% accuracy", t.Games, t.Wins, t.BestDay, acc))
}

// renderBreakdown lists outcome counts and the most picked skills.
func (s *RecordsScreen) renderBreakdown() string {
	var parts []string
	for _, o := range []string{"correct", "neutral", "wrong", "timeout"} {
		if n := s.outcomes[o]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", o, n))
		}
	}
	if len(s.picks) > 0 {
		names := make([]string, 0, len(s.picks))
		for k := range s.picks {
			names = append(names, k)
		}
		slices.SortFunc(names, func(a, b string) int {
			if d := s.picks[b] - s.picks[a]; d != 0 {
				return d
			}
			return strings.Compare(a, b)
		})
		parts = append(parts, "favourite skill "+names[0])
	}
	return strings.Join(parts, "  ·  ")
}
