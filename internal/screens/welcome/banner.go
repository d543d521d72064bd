package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bridgewise/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗ ██╗██████╗  ██████╗ ███████╗
 ██╔══██╗██╔══██╗██║██╔══██╗██╔════╝ ██╔════╝
 ██████╔╝██████╔╝██║██║  ██║██║  ███╗█████╗
 ██╔══██╗██╔══██╗██║██║  ██║██║   ██║██╔══╝
 ██████╔╝██║  ██║██║██████╔╝╚██████╔╝███████╗
 ╚═════╝ ╚═╝  ╚═╝╚═╝╚═════╝  ╚═════╝ ╚══════╝
            W   I   S   E`

const bannerCompact = "B R I D G E W I S E"

// RenderBanner returns the title banner in the primary color, or a compact
// line for terminals narrower than 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
