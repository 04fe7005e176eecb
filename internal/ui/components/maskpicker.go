package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/ui/theme"
)

// MaskPicker shows the four replies to an encounter. Number keys choose
// directly; arrows move the cursor and Enter chooses.
type MaskPicker struct {
	Options  [encounter.MaskCount]string
	Cursor   encounter.Mask
	Disabled bool

	struck map[encounter.Mask]bool
}

func NewMaskPicker(options [encounter.MaskCount]string) MaskPicker {
	return MaskPicker{Options: options, struck: map[encounter.Mask]bool{}}
}

// Strike marks masks a hint ruled out. The cursor moves off them.
func (p *MaskPicker) Strike(ms []encounter.Mask) {
	for _, m := range ms {
		p.struck[m] = true
	}
	if p.struck[p.Cursor] {
		p.move(1)
	}
}

func (p MaskPicker) Struck(m encounter.Mask) bool { return p.struck[m] }

func (p *MaskPicker) move(dir int) {
	for i := 1; i <= encounter.MaskCount; i++ {
		m := encounter.Mask((int(p.Cursor) + dir*i + encounter.MaskCount*i) % encounter.MaskCount)
		if !p.struck[m] {
			p.Cursor = m
			return
		}
	}
}

// Update returns the chosen mask, if any. Struck masks stay selectable by
// number; a hint advises, it does not forbid.
func (p MaskPicker) Update(msg tea.Msg) (MaskPicker, *encounter.Mask) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || p.Disabled {
		return p, nil
	}
	switch k := key.String(); k {
	case "up", "k":
		p.move(-1)
	case "down", "j", "tab":
		p.move(1)
	case "enter":
		m := p.Cursor
		return p, &m
	case "1", "2", "3", "4":
		m, _ := encounter.ParseMask(k)
		p.Cursor = m
		return p, &m
	}
	return p, nil
}

func (p MaskPicker) View(width int) string {
	var b strings.Builder
	for _, m := range encounter.AllMasks() {
		badge := lipgloss.NewStyle().Foreground(theme.MaskColor(m)).Bold(true).Render(fmt.Sprintf("[%d]", int(m)+1))
		text := p.Options[m]
		prefix := "  "
		switch {
		case p.struck[m]:
			text = theme.Struck.Render(text)
		case m == p.Cursor && !p.Disabled:
			prefix = "▸ "
			text = theme.Selected.Render(text)
		case p.Disabled:
			text = lipgloss.NewStyle().Foreground(theme.TextDim).Render(text)
		default:
			text = theme.Body.Render(text)
		}
		line := prefix + badge + " " + text
		b.WriteString(lipgloss.NewStyle().Width(width).Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
