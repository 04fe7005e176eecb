package components

import "github.com/abhisek/masquerade/internal/ui/theme"

// ContentWidth clamps the frame width to a readable column.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 70)
}

// Card boxes content at column width cw.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}
