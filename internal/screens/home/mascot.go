package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/ui/theme"
)

// MascotVariant selects which mask art to display.
type MascotVariant int

const (
	MascotIdle  MascotVariant = iota // No games yet
	MascotProud                      // Last game won
	MascotTired                      // Last game lost
)

const mascotIdle = ` ╭─────────╮
╱ ╭─╮   ╭─╮ ╲
│ ╰─╯ ▽ ╰─╯ │
╲  ╰─────╯  ╱
 ╲_________╱`

const mascotProud = ` ╭─────────╮  ✦
╱ ★     ★ ╲
│     ▽     │
╲  ╰─────╯  ╱
 ╲_________╱`

const mascotTired = ` ╭─────────╮
╱ ─── ─── ╲  z
│     ▽     │ z
╲   ╭───╮   ╱
 ╲_________╱`

// RenderMascot returns the mask art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotProud:
		art = mascotProud
		fg = theme.Accent
	case MascotTired:
		art = mascotTired
		fg = theme.TextDim
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
