package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/selection"
	"github.com/zoomerslab/hsclab/internal/ui/components"
	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

func (h *HomeScreen) View(width, height int) string {
	compact := height < 28
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderBanner(cw, compact))
	sections = append(sections, components.Card(h.renderFilters(), cw))

	used := lipgloss.Height(strings.Join(sections, "\n\n")) + 6
	rows := height - used - 2
	if rows < 3 {
		rows = 3
	}
	sections = append(sections, h.renderResults(cw, rows))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) renderFilters() string {
	paper := "—"
	if h.sel.PaperSelectable() {
		paper = string(h.sel.Paper()) + " Paper"
	}
	chapter := "—"
	if _, ok := h.sel.Subject().Subject(); ok {
		chapter = h.sel.Chapter()
	}

	lines := []string{
		h.facetLine(rowSubject, "Subject", displaySubject(h.sel.Subject())),
		h.facetLine(rowPaper, "Paper", paper),
		h.facetLine(rowChapter, "Chapter", chapter),
		h.facetLine(rowType, "Type", string(h.sel.SubCategory())),
		h.search.View(),
	}
	return strings.Join(lines, "\n")
}

func (h *HomeScreen) facetLine(row int, label, value string) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(9)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)

	switch {
	case !h.rowEnabled(row):
		valueStyle = valueStyle.Foreground(theme.TextDim)
	case h.focus == row:
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
		valueStyle = valueStyle.Foreground(theme.Primary).Bold(true)
		value = "‹ " + value + " ›"
	}
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func displaySubject(f selection.SubjectFilter) string {
	if s, ok := f.Subject(); ok {
		return string(s)
	}
	return "All subjects"
}

func (h *HomeScreen) renderResults(cw, rows int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%s · %d found", h.sel.SubCategory(), h.count))

	if h.count == 0 {
		hint := "Nothing here yet. Try another chapter or clear the search."
		if h.sel.SubCategory() == catalog.SubCategoryQuiz && !h.sel.MasterBankAvailable() {
			hint = "Pick a subject and chapter to unlock the AI Master Bank."
		}
		return heading + "\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw).Render(hint)
	}

	list := h.results.View(rows)
	if h.focus != rowResults {
		list = lipgloss.NewStyle().Faint(true).Render(list)
	}
	return heading + "\n\n" + list
}
