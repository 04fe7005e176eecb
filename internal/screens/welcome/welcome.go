// Package welcome is the launch splash: four masks step onto the stage,
// then the title card holds until a key is pressed or the splash times out.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
	"github.com/abhisek/masquerade/internal/ui/theme"
)

const (
	frameInterval = 100 * time.Millisecond
	maskStagger   = 300 * time.Millisecond
	// titleAt is when the banner joins the masks.
	titleAt = time.Duration(encounter.MaskCount) * maskStagger
	// autoAdvance hands over to home without a key press.
	autoAdvance = 6 * time.Second
)

// faces are drawn in mask order, one per encounter mask.
var faces = [encounter.MaskCount][3]string{
	{"╭─────╮", "│ ^ ^ │", "╰─‿─╯ "},
	{"╭─────╮", "│ • • │", "╰─ ─╯ "},
	{"╭─────╮", "│ ¬ ¬ │", "╰─ ~╯ "},
	{"╭─────╮", "│ ° ° │", "╰─o─╯ "},
}

var sparkles = []string{"✦", "✧", "·"}

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// WelcomeScreen shows the splash before handing over to the home screen.
type WelcomeScreen struct {
	next   func() screen.Screen
	shown  time.Duration
	frames int
	done   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a splash that replaces itself with next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.shown += frameInterval
		w.frames++
		if w.shown >= autoAdvance {
			return w, w.leave()
		}
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// leave swaps in the next screen exactly once.
func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	return router.Replace(w.next())
}

// masksOnStage is how many faces are visible.
func (w *WelcomeScreen) masksOnStage() int {
	return min(int(w.shown/maskStagger)+1, encounter.MaskCount)
}

func (w *WelcomeScreen) View(width, height int) string {
	var rows [3]string
	for i, m := range encounter.AllMasks()[:w.masksOnStage()] {
		style := lipgloss.NewStyle().Foreground(theme.MaskColor(m))
		for r := range rows {
			if i > 0 {
				rows[r] += "   "
			}
			rows[r] += style.Render(faces[m][r])
		}
	}
	stage := strings.Join(rows[:], "\n")

	sections := []string{stage}
	if w.shown >= titleAt {
		spark := lipgloss.NewStyle().Foreground(theme.Accent).
			Render(sparkles[w.frames%len(sparkles)])
		tagline := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("Smile. Nod. Survive the party.")
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			spark+"  "+tagline+"  "+spark,
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
