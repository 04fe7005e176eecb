package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masquerade/internal/router"
	"github.com/abhisek/masquerade/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newSplash() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

// play feeds n frames and returns the last command.
func play(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(frameMsg(time.Now()))
	}
	return cmd
}

func isReplace(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
}

func TestMasksStepOnOneByOne(t *testing.T) {
	w, _ := newSplash()
	if got := w.masksOnStage(); got != 1 {
		t.Errorf("start: %d masks, want 1", got)
	}
	play(w, 3)
	if got := w.masksOnStage(); got != 2 {
		t.Errorf("after 300ms: %d masks, want 2", got)
	}
	play(w, 20)
	if got := w.masksOnStage(); got != 4 {
		t.Errorf("masks should stop at 4, got %d", got)
	}
}

func TestTitleCardAppears(t *testing.T) {
	w, _ := newSplash()
	if strings.Contains(w.View(100, 30), "Survive the party") {
		t.Error("tagline should wait for the masks")
	}
	play(w, int(titleAt/frameInterval))
	view := w.View(100, 30)
	if !strings.Contains(view, "Survive the party") {
		t.Error("expected the tagline")
	}
	if !strings.Contains(view, "press any key") {
		t.Error("expected the key hint")
	}
}

func TestKeySkipsSplash(t *testing.T) {
	w, calls := newSplash()
	play(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	isReplace(t, cmd)
	if *calls != 1 {
		t.Errorf("factory called %d times, want 1", *calls)
	}
}

func TestAutoAdvance(t *testing.T) {
	w, calls := newSplash()
	if cmd := play(w, int(autoAdvance/frameInterval)-1); cmd == nil {
		t.Fatal("frames should keep coming before the timeout")
	}
	if *calls != 0 {
		t.Fatal("left the splash early")
	}
	isReplace(t, play(w, 1))
	if *calls != 1 {
		t.Errorf("factory called %d times, want 1", *calls)
	}
}

func TestLeavesOnce(t *testing.T) {
	w, calls := newSplash()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second key should do nothing")
	}
	if cmd := play(w, 100); cmd != nil {
		t.Error("frames after leaving should stop")
	}
	if *calls != 1 {
		t.Errorf("factory called %d times, want 1", *calls)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newSplash()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestRenderBannerFallsBack(t *testing.T) {
	if got := RenderBanner(bannerMinWidth - 1); !strings.Contains(got, bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
	if got := RenderBanner(bannerMinWidth + 10); strings.Contains(got, bannerCompact) {
		t.Error("wide terminals should get the full banner")
	}
}
