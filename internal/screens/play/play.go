// Package play is the game screen. It owns one session, feeds it wall
// clock ticks and key presses, and renders what its signals report.
package play

import (
	"fmt"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/history"
	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
	"github.com/abhisek/masquerade/internal/screens/results"
	"github.com/abhisek/masquerade/internal/session"
	"github.com/abhisek/masquerade/internal/signal"
	"github.com/abhisek/masquerade/internal/skills"
	"github.com/abhisek/masquerade/internal/store"
	"github.com/abhisek/masquerade/internal/ui/components"
	"github.com/abhisek/masquerade/internal/ui/layout"
)

// Deps is everything a game needs besides its seed.
type Deps struct {
	Pool    []encounter.Encounter
	Catalog []skills.Definition
	Config  session.Config
	// Store, when set, receives the game history.
	Store  *store.Store
	Logger *log.Logger
}

// Screen runs one game.
type Screen struct {
	deps Deps
	sess *session.Session
	rec  *history.Recorder
	subs signal.Group
	err  error

	picker   components.MaskPicker
	feedback *session.AnswerResult
	fbSeq    int
	fbShown  bool

	dayDone     int
	offers      []skills.Definition
	offerCursor int
	picked      string
	advancing   bool

	userPaused  bool
	quitConfirm bool
	ended       *session.Result

	lastTick time.Time
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.StatusProvider  = (*Screen)(nil)
	_ screen.EscapeHandler   = (*Screen)(nil)
)

// New builds a game for seed. Construction errors are shown on screen.
func New(deps Deps, seed uint32) *Screen {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	s := &Screen{deps: deps}
	s.sess, s.err = session.New(deps.Config, deps.Pool, deps.Catalog, seed, session.WithLogger(deps.Logger))
	return s
}

// Session exposes the running session.
func (s *Screen) Session() *session.Session { return s.sess }

func (s *Screen) Init() tea.Cmd {
	if s.err != nil {
		return nil
	}
	s.connect()
	if st := s.deps.Store; st != nil {
		s.rec = history.Attach(s.sess, st.EventRepo(), st.ResultRepo(), st.StatsRepo(), history.WithLogger(s.deps.Logger))
	}
	if err := s.sess.Start(); err != nil {
		s.err = err
		return nil
	}
	return tick()
}

func (s *Screen) connect() {
	s.subs.Add(s.sess.EncounterChanged.Connect(func(e encounter.Encounter) {
		s.picker = components.NewMaskPicker(e.Options)
		s.dayDone = 0
		s.offers = nil
		s.picked = ""
		s.advancing = false
	}))
	s.subs.Add(s.sess.AnswerResult.Connect(func(a session.AnswerResult) {
		s.feedback = &a
		s.fbShown = false
	}))
	s.subs.Add(s.sess.DayComplete.Connect(func(day int) {
		s.dayDone = day
	}))
	s.subs.Add(s.sess.SkillOffer.Connect(func(offers []skills.Definition) {
		s.offers = offers
		s.offerCursor = 0
	}))
	end := func(r session.Result) { s.ended = &r }
	s.subs.Add(s.sess.GameOver.Connect(end))
	s.subs.Add(s.sess.GameWon.Connect(end))
}

func (s *Screen) teardown() {
	s.subs.DisconnectAll()
	if s.rec != nil {
		s.rec.Detach()
	}
}

func (s *Screen) Title() string {
	if s.sess == nil {
		return "Masquerade"
	}
	p := s.sess.Progress()
	return fmt.Sprintf("Day %d of %d", p.Day, p.TotalDays)
}

func (s *Screen) Status() string {
	if s.sess == nil {
		return ""
	}
	return components.Battery(s.sess.State().Health, s.deps.Config.MaxHealth)
}

func (s *Screen) HandlesEscape() bool { return s.err == nil }

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.err != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quitConfirm:
		return []layout.KeyHint{{Key: "Y", Description: "Leave"}, {Key: "N", Description: "Stay"}}
	case s.sess.Phase() == session.PhaseDayEnd && !s.sess.State().SelectionDone:
		return []layout.KeyHint{{Key: "1-3", Description: "Take skill"}, {Key: "S", Description: "Skip"}}
	case s.userPaused:
		return []layout.KeyHint{{Key: "P", Description: "Resume"}, {Key: "Esc", Description: "Leave"}}
	}
	hints := []layout.KeyHint{{Key: "1-4", Description: "Mask"}, {Key: "↑↓ Enter", Description: "Pick"}}
	if s.sess.Skills().Has(skills.InnerDeduction) && !s.sess.Skills().HintUsed() {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "Hint"})
	}
	return append(hints,
		layout.KeyHint{Key: "P", Description: "Pause"},
		layout.KeyHint{Key: "Ctrl+R", Description: "Restart"},
		layout.KeyHint{Key: "Esc", Description: "Leave"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.err != nil {
		if _, ok := msg.(tea.KeyPressMsg); ok {
			s.teardown()
			return s, router.Pop
		}
		return s, nil
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tickMsg:
		s.onTick(time.Time(msg))
		cmd = tick()
	case feedbackDoneMsg:
		if msg.seq == s.fbSeq {
			s.endFeedback()
		}
	case advanceDayMsg:
		if msg.day == s.sess.State().Day {
			s.feedback = nil
			if err := s.sess.AdvanceDay(); err != nil && s.ended == nil {
				s.err = err
			}
		}
	case tea.KeyPressMsg:
		cmd = s.onKey(msg)
	}
	return s, tea.Batch(cmd, s.settle())
}

func (s *Screen) onTick(now time.Time) {
	if !s.lastTick.IsZero() {
		s.sess.Tick(min(now.Sub(s.lastTick), maxTickDelta))
	}
	s.lastTick = now
}

func (s *Screen) onKey(key tea.KeyPressMsg) tea.Cmd {
	k := key.String()

	if s.quitConfirm {
		switch k {
		case "y", "Y":
			s.teardown()
			return router.Pop
		case "n", "N", "esc":
			s.quitConfirm = false
			s.resume()
		}
		return nil
	}

	switch k {
	case "esc":
		s.quitConfirm = true
		s.sess.Pause()
		return nil
	case "ctrl+r":
		s.userPaused = false
		s.feedback = nil
		s.fbSeq++
		if err := s.sess.Restart(); err != nil {
			s.err = err
		}
		return nil
	case "p", "P":
		s.userPaused = !s.userPaused
		if s.userPaused {
			s.sess.Pause()
		} else {
			s.resume()
		}
		return nil
	}
	if s.userPaused {
		return nil
	}

	if s.sess.Phase() == session.PhaseDayEnd {
		s.onOfferKey(k)
		return nil
	}

	// Any other key cuts the feedback pause short.
	if s.fbShown && s.sess.State().Paused {
		s.endFeedback()
		return nil
	}

	if k == "h" || k == "H" {
		s.picker.Strike(s.sess.UseHint())
		return nil
	}
	var chosen *encounter.Mask
	s.picker, chosen = s.picker.Update(key)
	if chosen != nil {
		s.sess.SelectMask(*chosen)
	}
	return nil
}

func (s *Screen) onOfferKey(k string) {
	if s.sess.State().SelectionDone || len(s.offers) == 0 {
		return
	}
	switch k {
	case "up", "k":
		s.offerCursor = max(s.offerCursor-1, 0)
	case "down", "j":
		s.offerCursor = min(s.offerCursor+1, len(s.offers)-1)
	case "s", "S":
		s.sess.SkipSkillSelection()
		s.picked = "nothing"
	case "enter":
		s.take(s.offerCursor)
	case "1", "2", "3", "4", "5":
		s.take(int(k[0] - '1'))
	}
}

func (s *Screen) take(i int) {
	if i < 0 || i >= len(s.offers) {
		return
	}
	d := s.offers[i]
	if err := s.sess.AcquireSkill(d.Type); err != nil {
		s.deps.Logger.Warn("skill pick rejected", "skill", d.Type, "err", err)
		return
	}
	s.picked = d.Name
}

func (s *Screen) resume() {
	if !s.userPaused && !s.quitConfirm && !(s.fbShown && s.feedback != nil) {
		s.sess.Resume()
	}
}

func (s *Screen) endFeedback() {
	s.fbShown = false
	s.feedback = nil
	s.resume()
}

// settle reacts to whatever the last command did to the session: it
// hands off to results, starts a feedback pause, or schedules the next day.
func (s *Screen) settle() tea.Cmd {
	if s.ended != nil {
		res := *s.ended
		s.teardown()
		deps, seed := s.deps, s.sess.Seed()
		replay := func() screen.Screen { return New(deps, seed) }
		return router.Replace(results.New(res, deps.Config.MaxHealth, replay))
	}

	if err := s.sess.Err(); err != nil {
		s.err = err
		return nil
	}

	st := s.sess.State()
	if s.feedback != nil && !s.fbShown {
		s.fbShown = true
		s.fbSeq++
		if st.Phase == session.PhaseAwait {
			s.sess.Pause()
			seq := s.fbSeq
			return tea.Tick(feedbackPause, func(time.Time) tea.Msg { return feedbackDoneMsg{seq: seq} })
		}
	}

	if st.Phase == session.PhaseDayEnd && !s.advancing {
		if len(s.offers) == 0 && !st.SelectionDone {
			s.sess.NotifySkillSelectionComplete()
			st = s.sess.State()
		}
		if st.SelectionDone {
			s.advancing = true
			day := st.Day
			return tea.Tick(dayEndPause, func(time.Time) tea.Msg { return advanceDayMsg{day: day} })
		}
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
