package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is one complete set of UI colors.
type Palette struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
	Indicator color.Color // lab status dot in the header
}

// StandardPalette is the neon lab look.
var StandardPalette = Palette{
	Name:      "standard",
	Primary:   lipgloss.Color("#00F3FF"), // Neon Cyan
	Secondary: lipgloss.Color("#14B8A6"), // Teal
	Accent:    lipgloss.Color("#F97316"), // Orange
	Success:   lipgloss.Color("#22C55E"), // Green
	Error:     lipgloss.Color("#F43F5E"), // Rose
	Text:      lipgloss.Color("#F8FAFC"), // White
	TextDim:   lipgloss.Color("#94A3B8"), // Slate
	BgDark:    lipgloss.Color("#000000"),
	BgCard:    lipgloss.Color("#0F172A"), // Deep Navy
	Border:    lipgloss.Color("#1E3A4C"),
	Indicator: lipgloss.Color("#22C55E"),
}

// StealthPalette trades the neon for muted purples.
var StealthPalette = Palette{
	Name:      "stealth",
	Primary:   lipgloss.Color("#A78BFA"), // Soft Violet
	Secondary: lipgloss.Color("#6D28D9"),
	Accent:    lipgloss.Color("#C4B5FD"),
	Success:   lipgloss.Color("#86EFAC"),
	Error:     lipgloss.Color("#FDA4AF"),
	Text:      lipgloss.Color("#D4D4D8"),
	TextDim:   lipgloss.Color("#71717A"),
	BgDark:    lipgloss.Color("#09090B"),
	BgCard:    lipgloss.Color("#18181B"),
	Border:    lipgloss.Color("#3F3F46"),
	Indicator: lipgloss.Color("#A855F7"),
}

// Active colors. Reassigned by Apply.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
	Indicator color.Color

	current Palette
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

func init() {
	Apply(StandardPalette)
}

// Current returns the palette last passed to Apply.
func Current() Palette {
	return current
}

// Apply switches every color and style to p. Call it from the Bubble Tea
// goroutine only; views read these vars without locking.
func Apply(p Palette) {
	current = p

	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	BgDark = p.BgDark
	BgCard = p.BgCard
	Border = p.Border
	Indicator = p.Indicator

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
