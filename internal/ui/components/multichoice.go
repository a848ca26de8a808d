package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

// ChoiceMsg is emitted when the learner picks an option.
type ChoiceMsg struct {
	Index int
}

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice renders four options with a cursor. It only tracks the cursor;
// the quiz session decides what a pick means.
type MultiChoice struct {
	Options  []string
	Cursor   int
	Chosen   int // -1 until revealed
	Correct  int
	Revealed bool
}

// NewMultiChoice creates a selector for options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1}
}

// Reveal marks chosen and correct for colouring.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.Chosen = chosen
	m.Correct = correct
	m.Revealed = true
}

// Update moves the cursor. Enter, a letter a-d or a digit 1-4 emits a
// ChoiceMsg.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter":
		return m, choose(m.Cursor)
	}

	if len(key) == 1 {
		var idx int
		switch c := key[0]; {
		case c >= 'a' && c <= 'd':
			idx = int(c - 'a')
		case c >= '1' && c <= '4':
			idx = int(c - '1')
		default:
			return m, nil
		}
		if idx < len(m.Options) {
			m.Cursor = idx
			return m, choose(idx)
		}
	}
	return m, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: i} }
}

// View renders the options, coloured once revealed.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := lipgloss.NewStyle().Width(width)
		switch {
		case m.Revealed && i == m.Correct:
			style = style.Foreground(theme.Success).Bold(true)
			line += "  ✓"
		case m.Revealed && i == m.Chosen:
			style = style.Foreground(theme.Error).Bold(true)
			line += "  ✗"
		case m.Revealed:
			style = style.Foreground(theme.TextDim)
		case i == m.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		default:
			style = style.Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
