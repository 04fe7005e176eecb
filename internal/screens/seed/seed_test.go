package seed

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
)

type stubScreen struct{ seed uint32 }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "game" }
func (s *stubScreen) Title() string                           { return "Game" }

func typeText(s *SeedScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestSeedScreen_StartsGame(t *testing.T) {
	var got *stubScreen
	s := New(func(seed uint32) screen.Screen { got = &stubScreen{seed: seed}; return got })

	typeText(s, "4a2")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen != got || got.seed != 42 {
		t.Errorf("started with seed %d, want 42", got.seed)
	}
}

func TestSeedScreen_RejectsEmptyAndOverflow(t *testing.T) {
	calls := 0
	s := New(func(uint32) screen.Screen { calls++; return &stubScreen{} })

	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("empty seed should not start a game")
	}
	if !strings.Contains(s.View(80, 24), "whole number") {
		t.Error("expected an error message")
	}

	typeText(s, "9999999999")
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("seed past uint32 should not start a game")
	}
	if calls != 0 {
		t.Errorf("factory called %d times", calls)
	}
}

func TestSeedScreen_Title(t *testing.T) {
	s := New(nil)
	if s.Title() != "Seeded Game" {
		t.Errorf("Title = %q", s.Title())
	}
}
