// Package layout draws the frame around every screen: a header with the
// study timer and lab indicator, the screen body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width the header shortens the lab indicator.
	CompactWidth = 100
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a resize request.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// Status is the right-hand side of the header.
type Status struct {
	Elapsed string // study timer, HH:MM:SS
	Stealth bool
}

func (st Status) label(compact bool) string {
	switch {
	case compact && st.Stealth:
		return "STEALTH"
	case compact:
		return "ACTIVE"
	case st.Stealth:
		return "Lab Environment: STEALTH"
	default:
		return "Lab Environment: ACTIVE"
	}
}

// RenderHeader puts the app name on the left, title in the middle and the
// lab status on the right.
func RenderHeader(title string, st Status, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  HSC Lab")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Indicator).Render("● ") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(st.label(width < CompactWidth)+"   ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱ "+st.Elapsed)

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter lays the hints out left to right. Hints that do not fit are
// dropped from the middle so the last one (Quit) always shows.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}

	const sep = "   "
	avail := width - 6
	for len(parts) > 1 && lipgloss.Width(strings.Join(parts, sep)) > avail {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
	}
	return bar("  "+strings.Join(parts, sep), width)
}

// BodyHeight is the number of rows left between header and footer.
func BodyHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderFrame stacks header, body and footer, padding the body to fill the
// terminal.
func RenderFrame(header, body, footer string, width, height int) string {
	body = lipgloss.NewStyle().
		Width(width).
		Height(BodyHeight(header, footer, height)).
		Render(body)
	return header + "\n" + body + "\n" + footer
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
