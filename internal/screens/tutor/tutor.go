// Package tutor is the AI tutor dialog: a question box, an optional image
// and the last answer.
package tutor

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/gateway"
	"github.com/zoomerslab/hsclab/internal/screen"
	tt "github.com/zoomerslab/hsclab/internal/tutor"
	"github.com/zoomerslab/hsclab/internal/ui/components"
	"github.com/zoomerslab/hsclab/internal/ui/layout"
	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

type answerMsg struct {
	Result tt.Result
}

const (
	fieldQuery = iota
	fieldImage
)

// Deps are the tutor screen's collaborators. Gateway must not be nil.
type Deps struct {
	Gateway       gateway.Gateway
	MaxImageBytes int64
	Log           zerolog.Logger
}

// TutorScreen hosts one tutor session.
type TutorScreen struct {
	deps     Deps
	session  *tt.Session
	query    components.TextInput
	path     components.TextInput
	field    int
	imageErr string
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)
var _ screen.Closer = (*TutorScreen)(nil)
var _ screen.InputCapturer = (*TutorScreen)(nil)

// New opens an empty tutor dialog.
func New(deps Deps) *TutorScreen {
	s := &TutorScreen{
		deps:    deps,
		session: tt.New(deps.Log),
		query:   components.NewTextInput("Ask", "কী জানতে চাও?", 500, 60),
		path:    components.NewTextInput("Image", "path/to/photo.png", 0, 60),
	}
	return s
}

func (s *TutorScreen) Init() tea.Cmd {
	return s.query.Focus()
}

func (s *TutorScreen) Title() string {
	return "AI Tutor"
}

// CapturingInput is always true; every printable key belongs to a field.
func (s *TutorScreen) CapturingInput() bool {
	return true
}

// Close drops an answer still in flight.
func (s *TutorScreen) Close() {
	s.session.Close()
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Switch field"},
	}
	if _, ok := s.session.Image(); ok {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Remove image"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Close"})
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		if s.session.Apply(msg.Result) && !s.session.Failed() {
			s.query.Reset()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			return s, s.switchField()
		case "ctrl+r":
			s.session.RemoveImage()
			s.imageErr = ""
			return s, nil
		case "enter":
			if s.field == fieldImage {
				s.attach()
				return s, nil
			}
			return s, s.ask()
		}
	}

	var cmd tea.Cmd
	if s.field == fieldImage {
		s.path, cmd = s.path.Update(msg)
		return s, cmd
	}
	s.query, cmd = s.query.Update(msg)
	s.session.SetQuery(s.query.Value())
	return s, cmd
}

func (s *TutorScreen) switchField() tea.Cmd {
	if s.field == fieldQuery {
		s.field = fieldImage
		s.query.Blur()
		return s.path.Focus()
	}
	s.field = fieldQuery
	s.path.Blur()
	return s.query.Focus()
}

func (s *TutorScreen) attach() {
	path := strings.TrimSpace(s.path.Value())
	if path == "" {
		return
	}
	img, err := tt.LoadImage(path, s.deps.MaxImageBytes)
	if err != nil {
		s.imageErr = err.Error()
		return
	}
	s.session.AttachImage(img)
	s.imageErr = ""
	s.path.Reset()
}

func (s *TutorScreen) ask() tea.Cmd {
	ticket, ok := s.session.Ask()
	if !ok {
		return nil
	}
	gw := s.deps.Gateway
	return func() tea.Msg {
		return answerMsg{Result: tt.Fetch(context.Background(), gw, ticket)}
	}
}

func (s *TutorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("AI Study Buddy"))
	b.WriteString("\n\n")
	b.WriteString(s.query.View())
	b.WriteString("\n")
	b.WriteString(s.path.View())
	b.WriteString("\n")

	if img, ok := s.session.Image(); ok {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).
			Render("📎 " + img.Name + " (" + img.MIMEType + ")"))
		b.WriteString("\n")
	}
	if s.imageErr != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(s.imageErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case s.session.Loading():
		b.WriteString(dim.Render("◌ thinking ..."))
	case s.session.Failed():
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(s.session.Response()))
	case s.session.Response() != "":
		b.WriteString(components.Card(
			lipgloss.NewStyle().Foreground(theme.Text).Width(cw-6).Render(s.session.Response()), cw))
	default:
		b.WriteString(dim.Render("Type a question or attach a photo of the problem."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}
