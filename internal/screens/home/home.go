// Package home is the catalog browser: subject, paper, chapter and type
// facets, a search box and the matching results.
package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/gateway"
	"github.com/zoomerslab/hsclab/internal/router"
	"github.com/zoomerslab/hsclab/internal/screen"
	"github.com/zoomerslab/hsclab/internal/screens/history"
	"github.com/zoomerslab/hsclab/internal/screens/placeholder"
	quizscreen "github.com/zoomerslab/hsclab/internal/screens/quiz"
	"github.com/zoomerslab/hsclab/internal/screens/reader"
	tutorscreen "github.com/zoomerslab/hsclab/internal/screens/tutor"
	"github.com/zoomerslab/hsclab/internal/selection"
	"github.com/zoomerslab/hsclab/internal/store"
	"github.com/zoomerslab/hsclab/internal/ui/components"
	"github.com/zoomerslab/hsclab/internal/ui/layout"
)

// Focus rows, top to bottom.
const (
	rowSubject = iota
	rowPaper
	rowChapter
	rowType
	rowSearch
	rowResults
	rowCount
)

// Deps are everything the browser hands to the screens it opens. Gateway
// and Attempts may be nil.
type Deps struct {
	Catalog       selection.Catalog
	Gateway       gateway.Gateway
	Attempts      store.AttemptRepo
	HistorySize   int
	BatchSize     int
	MaxImageBytes int64
	Log           zerolog.Logger
}

// HomeScreen is the root screen of the application.
type HomeScreen struct {
	deps    Deps
	sel     *selection.State
	focus   int
	search  components.TextInput
	results components.Menu
	count   int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.InputCapturer = (*HomeScreen)(nil)

// New creates a new HomeScreen with the default selection.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{
		deps:   deps,
		sel:    selection.New(),
		focus:  rowResults,
		search: components.NewTextInput("Search", "title or tag", 64, 40),
	}
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Browse"
}

// CapturingInput reports whether the search box has the keyboard.
func (h *HomeScreen) CapturingInput() bool {
	return h.search.Focused()
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Results"},
			{Key: "Esc", Description: "Done"},
		}
	}
	hints := []layout.KeyHint{{Key: "Tab", Description: "Focus"}}
	if h.focus == rowResults {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Open"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	}
	return append(hints,
		layout.KeyHint{Key: "/", Description: "Search"},
		layout.KeyHint{Key: "A", Description: "AI Tutor"},
		layout.KeyHint{Key: "H", Description: "History"},
		layout.KeyHint{Key: "Ctrl+T", Description: "Stealth"},
	)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if h.search.Focused() {
		if ok {
			switch kmsg.String() {
			case "enter", "tab", "down", "esc":
				h.search.Blur()
				h.focus = rowResults
				return h, nil
			case "shift+tab", "up":
				h.search.Blur()
				h.focus = rowType
				return h, nil
			}
		}
		var cmd tea.Cmd
		h.search, cmd = h.search.Update(msg)
		if h.search.Value() != h.sel.Search() {
			h.sel.SetSearch(h.search.Value())
			h.refresh()
		}
		return h, cmd
	}
	if !ok {
		return h, nil
	}

	switch kmsg.String() {
	case "tab":
		return h, h.moveFocus(1)
	case "shift+tab":
		return h, h.moveFocus(-1)
	case "/":
		return h, h.focusSearch()
	case "a":
		return h, h.openTutor()
	case "h":
		return h, h.openHistory()
	}

	if h.focus == rowResults {
		if kmsg.String() == "up" && h.results.Selected == 0 {
			return h, h.moveFocus(-1)
		}
		var cmd tea.Cmd
		h.results, cmd = h.results.Update(msg)
		return h, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		return h, h.moveFocus(-1)
	case "down", "j", "enter":
		return h, h.moveFocus(1)
	case "left":
		h.cycle(-1)
	case "right":
		h.cycle(1)
	}
	return h, nil
}

// rowEnabled reports whether a focus row applies under the current filter.
func (h *HomeScreen) rowEnabled(row int) bool {
	switch row {
	case rowPaper:
		return h.sel.PaperSelectable()
	case rowChapter:
		_, ok := h.sel.Subject().Subject()
		return ok
	}
	return true
}

// moveFocus steps to the next enabled row. Landing on the search row
// focuses the input.
func (h *HomeScreen) moveFocus(delta int) tea.Cmd {
	row := h.focus
	for range rowCount {
		row = (row + delta + rowCount) % rowCount
		if h.rowEnabled(row) {
			break
		}
	}
	if row == rowSearch {
		return h.focusSearch()
	}
	h.focus = row
	return nil
}

func (h *HomeScreen) focusSearch() tea.Cmd {
	h.focus = rowSearch
	return h.search.Focus()
}

// cycle steps the focused facet forward or back, wrapping around.
func (h *HomeScreen) cycle(delta int) {
	switch h.focus {
	case rowSubject:
		opts := selection.SubjectFilters()
		h.sel.SelectSubject(opts[step(indexOf(opts, h.sel.Subject()), delta, len(opts))])
	case rowPaper:
		opts := catalog.Papers
		h.sel.SelectPaper(opts[step(indexOf(opts, h.sel.Paper()), delta, len(opts))])
	case rowChapter:
		opts := selection.ChapterList(h.deps.Catalog, h.sel.Subject(), h.sel.Paper())
		if len(opts) == 0 {
			return
		}
		h.sel.SelectChapter(h.deps.Catalog, opts[step(indexOf(opts, h.sel.Chapter()), delta, len(opts))])
	case rowType:
		opts := catalog.SubCategories
		h.sel.SelectSubCategory(opts[step(indexOf(opts, h.sel.SubCategory()), delta, len(opts))])
	default:
		return
	}
	h.refresh()
}

func indexOf[T comparable](opts []T, v T) int {
	for i, o := range opts {
		if o == v {
			return i
		}
	}
	return 0
}

func step(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

// refresh rebuilds the result list from the current selection.
func (h *HomeScreen) refresh() {
	var items []components.MenuItem

	if q, ok := h.sel.MasterBankQuiz(); ok && h.sel.MasterBankAvailable() {
		items = append(items, components.MenuItem{
			Label:  "★ " + q.Title,
			Detail: "AI generated",
			Action: h.openQuiz(q),
		})
	}
	for _, q := range selection.FilterQuizzes(h.deps.Catalog, h.sel) {
		items = append(items, components.MenuItem{
			Label:  q.Title,
			Detail: fmt.Sprintf("%d Q · %s", len(q.Questions), q.Difficulty),
			Action: h.openQuiz(q),
		})
	}
	for _, r := range selection.FilterResources(h.deps.Catalog, h.sel) {
		items = append(items, components.MenuItem{
			Label:  r.Info().Title,
			Detail: resourceDetail(r),
			Action: h.openResource(r),
		})
	}

	h.count = len(items)
	h.results = components.NewMenu(items)
}

func resourceDetail(r catalog.Resource) string {
	info := r.Info()
	kind := string(info.SubCategory)
	if _, ok := r.(catalog.Video); ok {
		kind += " · video"
	}
	if info.Chapter != "" {
		return info.Chapter + " · " + kind
	}
	return string(info.Category) + " · " + kind
}

func (h *HomeScreen) openQuiz(q catalog.Quiz) func() tea.Cmd {
	return func() tea.Cmd {
		s := quizscreen.New(q, quizscreen.Deps{
			Gateway:     h.deps.Gateway,
			Attempts:    h.deps.Attempts,
			HistorySize: h.deps.HistorySize,
			BatchSize:   h.deps.BatchSize,
			Log:         h.deps.Log,
		})
		return push(s)
	}
}

func (h *HomeScreen) openResource(r catalog.Resource) func() tea.Cmd {
	return func() tea.Cmd {
		return push(reader.New(r, h.deps.Gateway, h.deps.Log))
	}
}

func (h *HomeScreen) openTutor() tea.Cmd {
	if h.deps.Gateway == nil {
		return push(placeholder.New("AI Tutor", placeholder.OfflineMessage))
	}
	return push(tutorscreen.New(tutorscreen.Deps{
		Gateway:       h.deps.Gateway,
		MaxImageBytes: h.deps.MaxImageBytes,
		Log:           h.deps.Log,
	}))
}

func (h *HomeScreen) openHistory() tea.Cmd {
	if h.deps.Attempts == nil {
		return push(placeholder.New("History", "History needs the local database."))
	}
	return push(history.New(h.deps.Attempts))
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}
