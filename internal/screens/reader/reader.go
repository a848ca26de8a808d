// Package reader shows one catalog resource. Formula sheets without stored
// text are generated on open.
package reader

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/formula"
	"github.com/zoomerslab/hsclab/internal/gateway"
	"github.com/zoomerslab/hsclab/internal/screen"
	"github.com/zoomerslab/hsclab/internal/ui/components"
	"github.com/zoomerslab/hsclab/internal/ui/layout"
	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

type sheetLoadedMsg struct {
	Result formula.Result
}

// ReaderScreen displays a resource.
type ReaderScreen struct {
	resource catalog.Resource
	sheet    *formula.Sheet
	gw       gateway.Gateway
	log      zerolog.Logger
	scroll   int
}

var _ screen.Screen = (*ReaderScreen)(nil)
var _ screen.KeyHintProvider = (*ReaderScreen)(nil)
var _ screen.Closer = (*ReaderScreen)(nil)

// New creates a reader for r. gw may be nil.
func New(r catalog.Resource, gw gateway.Gateway, log zerolog.Logger) *ReaderScreen {
	return &ReaderScreen{
		resource: r,
		sheet:    formula.Open(r),
		gw:       gw,
		log:      log,
	}
}

// generates reports whether this resource is a formula sheet that needs
// its text from the gateway.
func (s *ReaderScreen) generates() bool {
	return s.resource.Info().SubCategory == catalog.SubCategoryFormula &&
		s.sheet.Status() != formula.StatusReady
}

func (s *ReaderScreen) Init() tea.Cmd {
	return s.request()
}

func (s *ReaderScreen) request() tea.Cmd {
	if !s.generates() || s.gw == nil {
		return nil
	}
	ticket, ok := s.sheet.Begin()
	if !ok {
		return nil
	}
	gw := s.gw
	return func() tea.Msg {
		return sheetLoadedMsg{Result: formula.Fetch(context.Background(), gw, ticket)}
	}
}

func (s *ReaderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sheetLoadedMsg:
		if s.sheet.Apply(msg.Result) && msg.Result.Err != nil {
			s.log.Warn().Err(msg.Result.Err).Str("resource_id", s.resource.Info().ID).Msg("formula sheet generation failed")
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		case "r":
			if s.sheet.Retry() {
				return s, s.request()
			}
		}
	}
	return s, nil
}

func (s *ReaderScreen) Title() string {
	return s.resource.Info().Title
}

// Close drops a generation still in flight.
func (s *ReaderScreen) Close() {
	s.sheet.Close()
}

func (s *ReaderScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.sheet.Status() == formula.StatusFailed {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ReaderScreen) View(width, height int) string {
	info := s.resource.Info()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(info.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(placement(info)))
	b.WriteString("\n\n")
	b.WriteString(s.body(info, cw))

	lines := strings.Split(b.String(), "\n")
	offset := min(s.scroll, max(len(lines)-height, 0))
	lines = lines[offset:]
	if len(lines) > height {
		lines = lines[:height]
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func (s *ReaderScreen) body(info catalog.ResourceInfo, cw int) string {
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(cw)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw)

	if info.SubCategory == catalog.SubCategoryFormula {
		switch s.sheet.Status() {
		case formula.StatusPending:
			if s.gw == nil {
				return dim.Render("AI module offline. This sheet has no stored text.")
			}
		case formula.StatusLoading:
			return dim.Render("◌ AI is writing the formula sheet ...")
		case formula.StatusFailed:
			return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Width(cw).Render(s.sheet.Text())
		case formula.StatusReady:
			return components.Card(text.Width(cw-6).Render(s.sheet.Text()), cw)
		}
	}

	var parts []string
	if info.Content != "" {
		parts = append(parts, components.Card(text.Width(cw-6).Render(info.Content), cw))
	} else if info.Description != "" {
		parts = append(parts, text.Render(info.Description))
	}
	if v, ok := s.resource.(catalog.Video); ok && v.VideoID != "" {
		parts = append(parts, dim.Render("▶ https://www.youtube.com/watch?v="+v.VideoID))
	}
	if info.Link != "" {
		parts = append(parts, dim.Render("↗ "+info.Link))
	}
	if len(parts) == 0 {
		parts = append(parts, dim.Render("Nothing to show for this resource."))
	}
	return strings.Join(parts, "\n\n")
}

func placement(info catalog.ResourceInfo) string {
	parts := []string{string(info.Category)}
	if info.Paper != catalog.PaperNone {
		parts = append(parts, fmt.Sprintf("%s Paper", info.Paper))
	}
	if info.Chapter != "" {
		parts = append(parts, info.Chapter)
	}
	parts = append(parts, string(info.SubCategory))
	return strings.Join(parts, " · ")
}
