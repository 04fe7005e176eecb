package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ █████╗ ███████╗ ██████╗ ██╗   ██╗███████╗██████╗  █████╗ ██████╗ ███████╗
 ████╗ ████║██╔══██╗██╔════╝██╔═══██╗██║   ██║██╔════╝██╔══██╗██╔══██╗██╔══██╗██╔════╝
 ██╔████╔██║███████║███████╗██║   ██║██║   ██║█████╗  ██████╔╝███████║██║  ██║█████╗
 ██║╚██╔╝██║██╔══██║╚════██║██║▄▄ ██║██║   ██║██╔══╝  ██╔══██╗██╔══██║██║  ██║██╔══╝
 ██║ ╚═╝ ██║██║  ██║███████║╚██████╔╝╚██████╔╝███████╗██║  ██║██║  ██║██████╔╝███████╗
 ╚═╝     ╚═╝╚═╝  ╚═╝╚══════╝ ╚══▀▀═╝  ╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝`

const bannerCompact = "M A S Q U E R A D E"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 88

// RenderBanner returns the title banner in the primary color, or a compact
// fallback when the art does not fit.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
