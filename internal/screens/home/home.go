// Package home is the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/rng"
	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
	"github.com/abhisek/masquerade/internal/screens/play"
	"github.com/abhisek/masquerade/internal/screens/records"
	"github.com/abhisek/masquerade/internal/screens/seed"
	"github.com/abhisek/masquerade/internal/store"
	"github.com/abhisek/masquerade/internal/ui/components"
	"github.com/abhisek/masquerade/internal/ui/layout"
	"github.com/abhisek/masquerade/internal/ui/theme"
)

// Deps wires the menu to the game and its history.
type Deps struct {
	Game play.Deps

	// NewSeed draws the seed for an unseeded game. Defaults to rng.NewSeed.
	NewSeed func() (uint32, error)
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	totals     store.Totals
	last       *store.LastGame
	mascot     MascotVariant
	errMsg     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.NewSeed == nil {
		deps.NewSeed = rng.NewSeed
	}
	h := &HomeScreen{deps: deps, disabled: map[int]bool{}}
	h.loadStats()

	st := deps.Game.Store
	h.menuLabels = []string{"NEW GAME", "SEEDED GAME", "RECORDS", "QUIT"}
	items := []components.MenuItem{
		{Label: h.menuLabels[0], Key: "n", Action: h.newGame},
		{Label: h.menuLabels[1], Key: "s", Action: func() tea.Cmd {
			return router.Push(seed.New(h.gameFactory))
		}},
		{Label: h.menuLabels[2], Key: "r", Disabled: st == nil, Action: func() tea.Cmd {
			return router.Push(records.New(st.ResultRepo(), st.EventRepo()))
		}},
		{Label: h.menuLabels[3], Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	for i, it := range items {
		h.disabled[i] = it.Disabled
	}
	h.menu = components.NewMenu(items)
	return h
}

// loadStats reads the record shown above the menu. Failures leave it empty.
func (h *HomeScreen) loadStats() {
	st := h.deps.Game.Store
	if st == nil {
		return
	}
	ctx := context.Background()
	h.totals, _ = st.ResultRepo().Totals(ctx)
	h.last, _ = st.StatsRepo().LastGame(ctx)

	switch {
	case h.last == nil:
		h.mascot = MascotIdle
	case h.last.GameWon:
		h.mascot = MascotProud
	default:
		h.mascot = MascotTired
	}
}

func (h *HomeScreen) gameFactory(s uint32) screen.Screen {
	return play.New(h.deps.Game, s)
}

func (h *HomeScreen) newGame() tea.Cmd {
	s, err := h.deps.NewSeed()
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	return router.Push(h.gameFactory(s))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the record after a game or the records screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.errMsg = ""
	h.loadStats()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height) || width < 90

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}
	sections = append(sections, renderStatsBar(h.totals, h.last, cw, compact))
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled, compact))
	if h.errMsg != "" {
		sections = append(sections, renderNote(h.errMsg, lipgloss.NewStyle().Foreground(theme.Error), cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return renderCabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
