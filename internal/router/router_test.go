package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masquerade/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPushPop(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	game := &stubScreen{title: "game"}
	r.Update(PushScreenMsg{Screen: game})
	if r.Depth() != 2 || r.Active() != game || !game.initRan {
		t.Fatalf("after push: depth %d active %q", r.Depth(), r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("root popped: depth %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Push(&stubScreen{title: "game"})

	results := &stubScreen{title: "results"}
	r.Update(ReplaceScreenMsg{Screen: results})
	if r.Depth() != 2 || r.View(0, 0) != "results" || !results.initRan {
		t.Fatalf("replace: depth %d view %q", r.Depth(), r.View(0, 0))
	}

	root := &stubScreen{title: "new root"}
	New(home).Replace(root)
	if !root.initRan {
		t.Fatal("replacing the root did not init")
	}
}

func TestPopToRoot(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Push(&stubScreen{title: "a"})
	r.Push(&stubScreen{title: "b"})

	r.Update(PopToRootMsg{})
	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("depth %d", r.Depth())
	}
}

func TestForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	top := &stubScreen{title: "top"}
	r := New(home)
	r.Push(top)

	r.Update("ping")
	if len(top.got) != 1 || len(home.got) != 0 {
		t.Fatalf("top got %d, home got %d", len(top.got), len(home.got))
	}
}

func TestHelpers(t *testing.T) {
	s := &stubScreen{}
	if msg := Push(s)(); msg != (PushScreenMsg{Screen: s}) {
		t.Fatalf("Push = %#v", msg)
	}
	if msg := Replace(s)(); msg != (ReplaceScreenMsg{Screen: s}) {
		t.Fatalf("Replace = %#v", msg)
	}
	if Pop() != (PopScreenMsg{}) || PopToRoot() != (PopToRootMsg{}) {
		t.Fatal("pop helpers")
	}
}

type resumingScreen struct {
	stubScreen
	resumed int
}

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumed++
	return nil
}

func TestPopResumesRevealedScreen(t *testing.T) {
	home := &resumingScreen{stubScreen: stubScreen{title: "home"}}
	r := New(home)

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "game"}})
	r.Update(PopScreenMsg{})
	if home.resumed != 1 {
		t.Errorf("resumed = %d after pop, want 1", home.resumed)
	}

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "a"}})
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "b"}})
	r.Update(PopToRootMsg{})
	if home.resumed != 2 {
		t.Errorf("resumed = %d after pop to root, want 2", home.resumed)
	}
}
