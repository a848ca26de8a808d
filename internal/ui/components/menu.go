package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

type MenuItem struct {
	Label    string
	Detail   string // dim text after the label
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor that skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(+1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// SetItems replaces the items, keeping the cursor in range.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	m.Selected = max(0, min(m.Selected, len(items)-1))
}

// step moves the cursor to the next enabled item in direction dir. The
// cursor stays put when there is none.
func (m *Menu) step(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(+1)
	case "enter":
		if m.Selected < len(m.Items) {
			if it := m.Items[m.Selected]; it.Action != nil && !it.Disabled {
				return m, it.Action()
			}
		}
	}
	return m, nil
}

// window returns the visible item range for maxRows rows, centred on the
// cursor where possible.
func (m Menu) window(maxRows int) (start, end int) {
	n := len(m.Items)
	if maxRows <= 0 || n <= maxRows {
		return 0, n
	}
	start = max(0, min(m.Selected-maxRows/2, n-maxRows))
	return start, start + maxRows
}

// View renders at most maxRows items. maxRows <= 0 renders everything.
func (m Menu) View(maxRows int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	normal := lipgloss.NewStyle().Foreground(theme.Text)
	cursor := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	start, end := m.window(maxRows)
	var b strings.Builder
	for i := start; i < end; i++ {
		it := m.Items[i]
		switch {
		case it.Disabled:
			b.WriteString(dim.Render("    " + it.Label))
		case i == m.Selected:
			b.WriteString(cursor.Render("  ▸ " + it.Label))
		default:
			b.WriteString(normal.Render("    " + it.Label))
		}
		if it.Detail != "" {
			b.WriteString(dim.Render("  " + it.Detail))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
