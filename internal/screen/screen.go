// Package screen defines what the router stacks. Each screen renders only
// the body; the app draws the header and footer around it.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zoomerslab/hsclab/internal/ui/layout"
)

type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body into exactly width x height cells.
	View(width, height int) string

	// Title is shown in the header, e.g. "Formula Sheet".
	Title() string
}

// KeyHintProvider replaces the footer's default hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that own a session. The router calls
// Close when the screen leaves the stack or the program quits.
type Closer interface {
	Close()
}

// InputCapturer is implemented by screens with a focused text field. While
// CapturingInput is true the app does not treat printable keys as global
// shortcuts.
type InputCapturer interface {
	CapturingInput() bool
}
