package home

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/uplift/internal/api"
	"github.com/abhisek/uplift/internal/router"
	"github.com/abhisek/uplift/internal/screen"
	"github.com/abhisek/uplift/internal/screens/events"
	"github.com/abhisek/uplift/internal/screens/mood"
	"github.com/abhisek/uplift/internal/screens/planner"
	"github.com/abhisek/uplift/internal/screens/profile"
	"github.com/abhisek/uplift/internal/session"
	"github.com/abhisek/uplift/internal/ui/components"
	"github.com/abhisek/uplift/internal/ui/theme"
)

// Screen is the main menu, shown once the user is signed in and has
// completed the assessment.
type Screen struct {
	sess   *session.Store
	client *api.Client

	menu  components.Menu
	quote *api.QuoteResponse
}

var _ screen.Screen = (*Screen)(nil)

// New creates the home screen.
func New(sess *session.Store, client *api.Client) *Screen {
	items := []components.MenuItem{
		{Label: "MOOD CHECK", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: mood.New(client)}
			}
		}},
		{Label: "EVENTS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: events.New(client)}
			}
		}},
		{Label: "STUDY PLANNER", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: planner.New(sess, client)}
			}
		}},
		{Label: "PROFILE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: profile.New(sess, client)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &Screen{
		sess:   sess,
		client: client,
		menu:   components.NewMenu(items),
	}
}

type quoteMsg struct {
	Quote *api.QuoteResponse
	Err   error
}

func (s *Screen) Init() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		quote, err := client.DailyQuote(context.Background())
		return quoteMsg{Quote: quote, Err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quoteMsg:
		// A missing quote is cosmetic; the menu works without it.
		if msg.Err == nil {
			s.quote = msg.Quote
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	greeting := "Hey there"
	if user := s.sess.CurrentUser(); user != nil && user.Name != "" {
		greeting = "Hey " + user.Name
	}

	var sections []string
	sections = append(sections, theme.Title.Render(greeting+", how are you feeling today?"))

	if s.quote != nil && s.quote.Quote != "" {
		quoteCard := theme.Card.Width(min(width-8, 64)).Render(
			theme.Body.Render("“"+s.quote.Quote+"”") + "\n" +
				theme.Hint.Render("matched to your mood: "+s.quote.Mood))
		sections = append(sections, quoteCard)
	}

	sections = append(sections, s.menu.View())

	content := ""
	for i, sec := range sections {
		if i > 0 {
			content += "\n\n"
		}
		content += sec
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(content)
}

func (s *Screen) Title() string {
	return "Home"
}
