package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
	"github.com/abhisek/masquerade/internal/screens/home"
	"github.com/abhisek/masquerade/internal/screens/welcome"
	"github.com/abhisek/masquerade/internal/ui/layout"
)

type stubScreen struct {
	escape bool
	got    []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "stub body" }
func (s *stubScreen) Title() string        { return "Stub" }
func (s *stubScreen) Status() string       { return "♥ 3/7" }
func (s *stubScreen) HandlesEscape() bool  { return s.escape }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "X", Description: "Stub"}}
}

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel)
}

func TestNewAppModel_Root(t *testing.T) {
	if _, ok := newAppModel(Options{}).router.Active().(*welcome.WelcomeScreen); !ok {
		t.Error("expected the splash first")
	}
	if _, ok := newAppModel(Options{SkipSplash: true}).router.Active().(*home.HomeScreen); !ok {
		t.Error("expected home when the splash is skipped")
	}
}

func TestStartPushesAboveHome(t *testing.T) {
	stub := &stubScreen{}
	m := newAppModel(Options{Start: func() screen.Screen { return stub }})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatal("start screen should sit above home")
	}
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected a push command")
	}
}

func TestEscapePopsUnlessHandled(t *testing.T) {
	m := sized(newAppModel(Options{SkipSplash: true}))
	stub := &stubScreen{}
	m.router.Push(stub)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Esc should pop an ordinary screen")
	}

	stub.escape = true
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("handled Esc should not pop")
	}
	if len(stub.got) != 1 {
		t.Errorf("screen got %d messages, want the Esc", len(stub.got))
	}
}

func TestViewUsesScreenProviders(t *testing.T) {
	m := sized(newAppModel(Options{SkipSplash: true}))
	m.router.Push(&stubScreen{})

	out := m.render()
	for _, want := range []string{"Stub", "♥ 3/7", "stub body", "Ctrl+C"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	next, _ := newAppModel(Options{SkipSplash: true}).Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(next.(AppModel).render(), "too small") {
		t.Error("expected the min size message")
	}
}
