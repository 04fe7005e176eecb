package records

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func load(t *testing.T, s *RecordsScreen) {
	t.Helper()
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("screen did not load")
	}
}

func TestRecords_Empty(t *testing.T) {
	st := openStore(t)
	s := New(st.ResultRepo(), st.EventRepo())
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading text before Init completes")
	}
	load(t, s)
	if !strings.Contains(s.View(100, 30), "No games yet") {
		t.Error("expected empty state")
	}
}

func TestRecords_ListsGamesAndTotals(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	games := []store.GameResult{
		{SessionID: "a", Seed: 11, Won: false, Day: 2, Health: 0, TotalAnswers: 6, CorrectAnswers: 3},
		{SessionID: "b", Seed: 22, Won: true, Day: 3, Health: 2, TotalAnswers: 12, CorrectAnswers: 9, Skills: []string{"Battery x2"}},
	}
	for _, g := range games {
		if err := st.ResultRepo().Save(ctx, g); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if err := st.EventRepo().AppendAnswer(ctx, store.AnswerEventData{SessionID: "b", Day: 1, EncounterID: "e", Outcome: "correct"}); err != nil {
		t.Fatalf("append answer: %v", err)
	}
	if err := st.EventRepo().AppendSkill(ctx, store.SkillEventData{SessionID: "b", Day: 1, SkillType: "battery", Stacks: 1}); err != nil {
		t.Fatalf("append skill: %v", err)
	}

	s := New(st.ResultRepo(), st.EventRepo())
	load(t, s)

	view := s.View(120, 30)
	for _, want := range []string{"2 games", "1 wins", "best day 3", "correct 1", "favourite skill battery", "won", "75% accuracy"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// Newest first; expanding shows the seed.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "seed 22") {
		t.Error("expanded row should show its seed")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected moved past the end: %d", s.selected)
	}
}

func TestRecords_EscPops(t *testing.T) {
	st := openStore(t)
	s := New(st.ResultRepo(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Esc should pop")
	}
}
