package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/zoomerslab/hsclab/internal/quiz"
	"github.com/zoomerslab/hsclab/internal/ui/components"
	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.session.Phase() {
	case qz.PhaseLoading:
		return renderLoading(width, height, s.session.Quiz().Chapter)
	case qz.PhaseError:
		return renderError(width, height, s.session.Err())
	case qz.PhaseResult:
		return s.renderResult(width, height)
	case qz.PhaseClosed:
		return ""
	default:
		return s.renderQuestion(width)
	}
}

func renderLoading(width, height int, chapter string) string {
	text := "AI is generating board-standard MCQs"
	if chapter != "" {
		text += "\nChapter: " + chapter
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render("◌ " + text + " ...")
}

func renderError(width, height int, err error) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(qz.LoadFailedMessage))
	if err != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(components.ActionButton("Close", true, 16))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

func (s *QuizScreen) renderQuestion(width int) string {
	q, ok := s.session.Current()
	if !ok {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.session.Quiz().Title)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %.0f%%",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.session.Score(),
			s.session.Accuracy()*100,
		))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n  ")
	b.WriteString(components.NewProgressBar("Q", s.session.Index()+1, s.session.QuestionCount(), cw).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Text) +
		"\n\n" + s.choice.View(cw)

	if s.session.Answered() {
		sel, _ := s.session.Selected()
		verdict := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("সঠিক উত্তর!")
		if sel != q.CorrectAnswer {
			verdict = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("ভুল উত্তর")
		}
		body += "\n" + verdict
		if q.Explanation != "" {
			body += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw).Render(q.Explanation)
		}
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(body, cw)))
	return b.String()
}

func (s *QuizScreen) renderResult(width, height int) string {
	sum, _ := s.session.Summary()
	cw := components.ContentWidth(width)

	gradeColor := theme.Primary
	if sum.Grade == "EXCELLENT" {
		gradeColor = theme.Success
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("QUIZ COMPLETE"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(sum.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Score: %d / %d", sum.Score, sum.QuestionCount)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Accuracy: %.0f%%", sum.Accuracy*100)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(gradeColor).Bold(true).Render(sum.Grade))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		components.ActionButton("Restart", s.resultButton == 0, 14),
		"  ",
		components.ActionButton("Close", s.resultButton == 1, 14),
	))
	if s.saveErr != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("History not saved: " + s.saveErr))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
