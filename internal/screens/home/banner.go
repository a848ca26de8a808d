package home

import (
	"charm.land/lipgloss/v2"

	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

const bannerArt = `
██╗  ██╗███████╗ ██████╗    ██╗      █████╗ ██████╗
██║  ██║██╔════╝██╔════╝    ██║     ██╔══██╗██╔══██╗
███████║███████╗██║         ██║     ███████║██████╔╝
██╔══██║╚════██║██║         ██║     ██╔══██║██╔══██╗
██║  ██║███████║╚██████╗    ███████╗██║  ██║██████╔╝
╚═╝  ╚═╝╚══════╝ ╚═════╝    ╚══════╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "H S C   L A B"

// renderBanner returns the banner in the primary color, or the one-line
// form when the art would not fit or the screen is short.
func renderBanner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if compact || width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
