// Package screen defines the contract between the router and each view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masquerade/internal/ui/layout"
)

// Screen is one routed view.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider screens supply their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider screens supply the right-hand header text, e.g. day
// and battery during play.
type StatusProvider interface {
	Status() string
}

// EscapeHandler screens receive Esc themselves instead of the app
// popping them.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Resumer screens are told when a pop uncovers them again.
type Resumer interface {
	Resume() tea.Cmd
}
