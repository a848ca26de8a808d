// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/config"
	"github.com/zoomerslab/hsclab/internal/gateway"
	"github.com/zoomerslab/hsclab/internal/prefs"
	"github.com/zoomerslab/hsclab/internal/router"
	"github.com/zoomerslab/hsclab/internal/screen"
	"github.com/zoomerslab/hsclab/internal/screens/home"
	"github.com/zoomerslab/hsclab/internal/store"
	"github.com/zoomerslab/hsclab/internal/studytimer"
	"github.com/zoomerslab/hsclab/internal/ui/layout"
	"github.com/zoomerslab/hsclab/internal/ui/theme"
)

// Options holds the dependencies for the TUI. Gateway nil means the AI
// features run offline; Store nil disables history and preferences.
type Options struct {
	Catalog *catalog.Store
	Gateway gateway.Gateway
	Store   *store.Store
	Config  *config.Config
	Log     zerolog.Logger
}

type displayModeSavedMsg struct {
	Err error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
	timer  studytimer.Timer
	mode   prefs.DisplayMode
	prefs  store.PreferenceRepo
	log    zerolog.Logger
}

// newAppModel creates an AppModel with the catalog browser as root screen.
func newAppModel(opts Options, mode prefs.DisplayMode) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	deps := home.Deps{
		Catalog:       opts.Catalog,
		Gateway:       opts.Gateway,
		HistorySize:   cfg.AttemptHistory,
		BatchSize:     cfg.QuizBatchSize,
		MaxImageBytes: cfg.MaxImageBytes,
		Log:           opts.Log,
	}
	var prefRepo store.PreferenceRepo
	if opts.Store != nil {
		deps.Attempts = opts.Store.AttemptRepo()
		prefRepo = opts.Store.PreferenceRepo()
	}

	return AppModel{
		router: router.New(home.New(deps)),
		mode:   mode,
		prefs:  prefRepo,
		log:    opts.Log,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(studytimer.Cmd(), m.router.Active().Init())
}

// capturingInput reports whether the active screen owns printable keys.
func (m AppModel) capturingInput() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case studytimer.TickMsg:
		m.timer.Tick()
		return m, studytimer.Cmd()

	case displayModeSavedMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("could not save display mode")
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "ctrl+t":
			cmd := m.toggleDisplayMode()
			return m, cmd
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		case "q":
			if m.router.Depth() == 1 && !m.capturingInput() {
				m.router.CloseAll()
				return m, tea.Quit
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// toggleDisplayMode switches palettes immediately and saves the choice in
// the background.
func (m *AppModel) toggleDisplayMode() tea.Cmd {
	m.mode = m.mode.Toggled()
	theme.Apply(paletteFor(m.mode))
	m.log.Debug().Str("mode", string(m.mode)).Msg("display mode toggled")

	repo, mode := m.prefs, m.mode
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		return displayModeSavedMsg{Err: prefs.SaveDisplayMode(context.Background(), repo, mode)}
	}
}

func paletteFor(mode prefs.DisplayMode) theme.Palette {
	if mode == prefs.Stealth {
		return theme.StealthPalette
	}
	return theme.StandardPalette
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the whole frame for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, layout.Status{
		Elapsed: m.timer.String(),
		Stealth: m.mode == prefs.Stealth,
	}, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.BodyHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run loads the saved display mode and runs the TUI until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	mode := prefs.Standard
	if opts.Store != nil {
		var err error
		mode, err = prefs.LoadDisplayMode(ctx, opts.Store.PreferenceRepo())
		if err != nil {
			opts.Log.Warn().Err(err).Msg("using standard display mode")
		}
	}
	theme.Apply(paletteFor(mode))

	p := tea.NewProgram(newAppModel(opts, mode), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
