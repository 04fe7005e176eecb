package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
	"github.com/abhisek/masquerade/internal/session"
)

func testResult(won bool) session.Result {
	return session.Result{
		Seed:           42,
		Won:            won,
		Day:            2,
		Health:         3,
		TotalAnswers:   8,
		CorrectAnswers: 6,
		Skills:         []string{"Battery x2", "Eloquence"},
	}
}

func TestResultsScreen_Title(t *testing.T) {
	if got := New(testResult(true), 7, nil).Title(); got != "You made it" {
		t.Errorf("Title = %q, want %q", got, "You made it")
	}
	if got := New(testResult(false), 7, nil).Title(); got != "Social battery drained" {
		t.Errorf("Title = %q", got)
	}
}

func TestResultsScreen_Display(t *testing.T) {
	view := New(testResult(false), 7, nil).View(80, 24)
	for _, want := range []string{"day 2", "Accuracy: 75%", "Battery x2", "seed 42"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultsScreen_Navigation_Enter(t *testing.T) {
	s := New(testResult(true), 7, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("Enter should pop to root")
	}
}

func TestResultsScreen_Replay(t *testing.T) {
	built := 0
	replay := func() screen.Screen { built++; return New(testResult(true), 7, nil) }
	s := New(testResult(true), 7, replay)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on r")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("r should replace the screen")
	}
	if built != 1 {
		t.Errorf("replay built %d screens, want 1", built)
	}
}

func TestResultsScreen_NoReplay(t *testing.T) {
	s := New(testResult(true), 7, nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("r without replay should do nothing")
	}
	if n := len(s.KeyHints()); n != 1 {
		t.Errorf("KeyHints length = %d, want 1", n)
	}
}
