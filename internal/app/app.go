package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/uplift/internal/api"
	"github.com/abhisek/uplift/internal/router"
	"github.com/abhisek/uplift/internal/screen"
	"github.com/abhisek/uplift/internal/screens/assessment"
	"github.com/abhisek/uplift/internal/screens/events"
	"github.com/abhisek/uplift/internal/screens/gate"
	"github.com/abhisek/uplift/internal/screens/home"
	"github.com/abhisek/uplift/internal/screens/login"
	"github.com/abhisek/uplift/internal/screens/mood"
	"github.com/abhisek/uplift/internal/screens/planner"
	"github.com/abhisek/uplift/internal/screens/profile"
	"github.com/abhisek/uplift/internal/session"
	"github.com/abhisek/uplift/internal/ui/layout"
)

// StartScreen selects a screen to open on instead of the
// session-derived default. Ignored while signed out, and while the
// assessment is still owed (except StartAssessment itself).
type StartScreen int

const (
	StartAuto StartScreen = iota
	StartAssessment
	StartMood
	StartEvents
	StartPlanner
	StartProfile
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Session *session.Store
	Client  *api.Client
	Start   StartScreen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel starting on whichever screen the
// session state calls for: login, the first-time assessment, or home.
// A StartScreen request is stacked on top of home so esc leads back.
func newAppModel(opts Options) AppModel {
	m := AppModel{
		opts:   opts,
		router: router.New(initialScreen(opts)),
	}
	if s := startScreen(opts); s != nil {
		// The screen's Init command is re-issued by AppModel.Init.
		m.router.Push(s)
	}
	return m
}

func initialScreen(opts Options) screen.Screen {
	switch {
	case !opts.Session.Authenticated():
		return login.New(opts.Session, opts.Client)
	case opts.Session.NeedsAssessment() || opts.Start == StartAssessment:
		return assessment.New(opts.Session, opts.Client)
	default:
		return home.New(opts.Session, opts.Client)
	}
}

func startScreen(opts Options) screen.Screen {
	if !opts.Session.Authenticated() || opts.Session.NeedsAssessment() {
		return nil
	}
	switch opts.Start {
	case StartMood:
		return mood.New(opts.Client)
	case StartEvents:
		return events.New(opts.Client)
	case StartPlanner:
		return planner.New(opts.Session, opts.Client)
	case StartProfile:
		return profile.New(opts.Session, opts.Client)
	}
	return nil
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case gate.SignedInMsg:
		var next screen.Screen
		if m.opts.Session.NeedsAssessment() {
			next = assessment.New(m.opts.Session, m.opts.Client)
		} else {
			next = home.New(m.opts.Session, m.opts.Client)
		}
		return m, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case gate.AssessmentDoneMsg:
		next := home.New(m.opts.Session, m.opts.Client)
		return m, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case gate.SignedOutMsg:
		next := login.New(m.opts.Session, m.opts.Client)
		return m, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.WantsEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	userName := ""
	if user := m.opts.Session.CurrentUser(); user != nil {
		userName = user.Name
	}

	header := layout.RenderHeader(title, userName, m.width)

	var footerHints []layout.KeyHint
	if h, ok := active.(screen.KeyHintProvider); ok {
		footerHints = h.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
