// Package router keeps the stack of screens and applies navigation
// messages.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masquerade/internal/screen"
)

// PushScreenMsg pushes Screen and runs its Init.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg drops the top screen. The root is never popped.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen for Screen, e.g. the game for its
// results.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg unwinds to the first screen.
type PopToRootMsg struct{}

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Replace swaps the top screen, the root included.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

func (r *Router) PopToRoot() {
	r.stack = r.stack[:1]
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages or forwards msg to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return r.reveal()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		r.PopToRoot()
		return r.reveal()
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// reveal lets the screen uncovered by a pop refresh itself.
func (r *Router) reveal() tea.Cmd {
	if s, ok := r.Active().(screen.Resumer); ok {
		return s.Resume()
	}
	return nil
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}

// Navigation helpers for screens.

func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

func Pop() tea.Msg { return PopScreenMsg{} }

func PopToRoot() tea.Msg { return PopToRootMsg{} }
