// Package history shows finished quizzes, newest first.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zoomerslab/hsclab/internal/quiz"
	"github.com/zoomerslab/hsclab/internal/screen"
	"github.com/zoomerslab/hsclab/internal/store"
	"github.com/zoomerslab/hsclab/internal/ui/layout"
	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

const recentLimit = 50

type loadedMsg struct {
	rows []store.QuizAttempt
	err  error
}

type HistoryScreen struct {
	repo    store.AttemptRepo
	rows    []store.QuizAttempt
	cursor  int
	open    int // index of the expanded row, -1 for none
	loaded  bool
	loadErr error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.AttemptRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, open: -1}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		rows, err := repo.Recent(context.Background(), recentLimit)
		return loadedMsg{rows: rows, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.rows, s.loadErr = msg.rows, msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = max(0, s.cursor-1)
		case "down", "j":
			s.cursor = max(0, min(s.cursor+1, len(s.rows)-1))
		case "enter":
			if s.open == s.cursor {
				s.open = -1
			} else {
				s.open = s.cursor
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if text, c := s.status(); text != "" {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(c).Render("\n\n" + text)
	}

	// One line per row plus one for the open row's details.
	visible := max(1, height-2)
	start := 0
	if s.cursor >= visible {
		start = s.cursor - visible + 1
	}

	lines := []string{""}
	for i := start; i < len(s.rows) && len(lines) <= visible; i++ {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, s.row(i)))
		if i == s.open {
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, detailLine(s.rows[i])))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *HistoryScreen) status() (string, color.Color) {
	switch {
	case s.loadErr != nil:
		return "Error: " + s.loadErr.Error(), theme.Error
	case !s.loaded:
		return "Loading history...", theme.TextDim
	case len(s.rows) == 0:
		return "No quizzes finished yet.", theme.TextDim
	}
	return "", nil
}

func (s *HistoryScreen) row(i int) string {
	a := s.rows[i]
	marker, style := "  ", lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.cursor {
		marker, style = "> ", style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(fmt.Sprintf("%s%s  %-32s  %2d/%-2d  %3.0f%%",
		marker, a.FinishedAt.Local().Format("Jan 02 15:04"), truncate(a.Title, 32),
		a.Score, a.QuestionCount, a.Accuracy()*100))
}

func detailLine(a store.QuizAttempt) string {
	grade := quiz.Grade(a.Accuracy())
	c := theme.Secondary
	if grade == "EXCELLENT" {
		c = theme.Success
	}
	return lipgloss.NewStyle().Foreground(c).Render("    " + details(a) + "  " + grade)
}

// details names where the quiz came from, e.g.
// "Physics · 1st Paper · Vector".
func details(a store.QuizAttempt) string {
	var parts []string
	for _, p := range []string{a.Subject, paperLabel(a.Paper), a.Chapter} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if a.MasterBank {
		parts = append(parts, "Master Bank")
	}
	if len(parts) == 0 {
		return "Quiz " + a.QuizID
	}
	return strings.Join(parts, " · ")
}

func paperLabel(p string) string {
	if p == "" {
		return ""
	}
	return p + " Paper"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
