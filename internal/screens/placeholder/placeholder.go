package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zoomerslab/hsclab/internal/screen"
	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

// OfflineMessage is shown when an AI feature is opened without a provider.
const OfflineMessage = "AI module offline.\n\nSet GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY\nor OPENROUTER_API_KEY and restart hsclab."

// PlaceholderScreen shows a fixed message in place of a feature that cannot
// run.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ " + p.title + " ╌╌\n\n" + p.message)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
