package events

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/uplift/internal/api"
	"github.com/abhisek/uplift/internal/screen"
	"github.com/abhisek/uplift/internal/ui/layout"
	"github.com/abhisek/uplift/internal/ui/theme"
)

// Screen lists campus events, shows details, and handles participation
// and voucher download.
type Screen struct {
	client *api.Client

	events      []api.Event
	recommended bool
	cursor      int
	loading     bool
	errText     string
	info        string

	detail *api.Event
}

var _ screen.Screen = (*Screen)(nil)

// New creates the events screen showing the full event list.
func New(client *api.Client) *Screen {
	return &Screen{client: client, loading: true}
}

type listMsg struct {
	Events      []api.Event
	Recommended bool
	Err         error
}

type detailMsg struct {
	Event *api.Event
	Err   error
}

type participateMsg struct {
	Event *api.Event
	Err   error
}

type voucherMsg struct {
	Path string
	Err  error
}

func (s *Screen) fetchListCmd(recommended bool) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		ctx := context.Background()
		if recommended {
			resp, err := client.RecommendedEvents(ctx)
			if err != nil {
				return listMsg{Recommended: true, Err: err}
			}
			return listMsg{Events: resp.Recommendations, Recommended: true}
		}
		events, err := client.Events(ctx)
		return listMsg{Events: events, Err: err}
	}
}

func (s *Screen) fetchDetailCmd(eventID string) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		event, err := client.EventDetails(context.Background(), eventID)
		return detailMsg{Event: event, Err: err}
	}
}

func (s *Screen) participateCmd(eventID string) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		event, err := client.Participate(context.Background(), eventID)
		return participateMsg{Event: event, Err: err}
	}
}

func (s *Screen) voucherCmd(eventID, title string) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		data, err := client.DownloadVoucher(context.Background(), eventID)
		if err != nil {
			return voucherMsg{Err: err}
		}
		dir, err := os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		path := filepath.Join(dir, fmt.Sprintf("uplift-voucher-%s.pdf", eventID))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return voucherMsg{Err: fmt.Errorf("save voucher for %q: %w", title, err)}
		}
		return voucherMsg{Path: path}
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.fetchListCmd(false)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listMsg:
		s.loading = false
		if msg.Err != nil {
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.errText = ""
		s.events = msg.Events
		s.recommended = msg.Recommended
		if s.cursor >= len(s.events) {
			s.cursor = 0
		}
		return s, nil

	case detailMsg:
		s.loading = false
		if msg.Err != nil {
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.errText = ""
		s.detail = msg.Event
		return s, nil

	case participateMsg:
		s.loading = false
		if msg.Err != nil {
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.errText = ""
		s.detail = msg.Event
		s.info = "You're in! See you there."
		return s, nil

	case voucherMsg:
		s.loading = false
		if msg.Err != nil {
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.errText = ""
		s.info = "Voucher saved to " + msg.Path
		return s, nil

	case tea.KeyMsg:
		if s.detail != nil {
			return s.updateDetail(msg)
		}
		return s.updateList(msg)
	}

	return s, nil
}

func (s *Screen) updateList(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.events)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(s.events) {
			s.loading = true
			s.info = ""
			return s, s.fetchDetailCmd(s.events[s.cursor].ID)
		}
	case "r":
		s.loading = true
		s.info = ""
		return s, s.fetchListCmd(!s.recommended)
	}
	return s, nil
}

func (s *Screen) updateDetail(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.detail = nil
		s.info = ""
		s.errText = ""
	case "p":
		s.loading = true
		s.info = ""
		return s, s.participateCmd(s.detail.ID)
	case "v":
		s.loading = true
		s.info = ""
		return s, s.voucherCmd(s.detail.ID, s.detail.Title)
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.detail != nil {
		return s.viewDetail(width)
	}
	return s.viewList(width, height)
}

func (s *Screen) viewList(width, height int) string {
	heading := "Upcoming events"
	if s.recommended {
		heading = "Recommended for your mood"
	}
	body := theme.Title.Render(heading) + "\n\n"

	switch {
	case s.loading:
		body += theme.Hint.Render("Loading events...")
	case s.errText != "":
		body += theme.Negative.Render(s.errText)
	case len(s.events) == 0:
		body += theme.Body.Render("Nothing scheduled right now.")
	default:
		for i, e := range s.events {
			line := fmt.Sprintf("%s  %s (%s)", e.Date, e.Title, e.Location)
			if i == s.cursor {
				body += theme.Selected.Render("  ▸ "+line) + "\n"
			} else {
				body += theme.Unselected.Render("    "+line) + "\n"
			}
		}
	}

	if s.info != "" {
		body += "\n" + theme.Positive.Render(s.info)
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}

func (s *Screen) viewDetail(width int) string {
	e := s.detail

	spots := e.Capacity - len(e.Participants)
	if spots < 0 {
		spots = 0
	}

	body := theme.Title.Render(e.Title) + "\n\n" +
		theme.Body.Render(e.Description) + "\n\n" +
		theme.Body.Render("When:  "+e.Date) + "\n" +
		theme.Body.Render("Where: "+e.Location) + "\n" +
		theme.Body.Render(fmt.Sprintf("Spots: %d of %d left", spots, e.Capacity))

	switch {
	case s.loading:
		body += "\n\n" + theme.Hint.Render("Working...")
	case s.errText != "":
		body += "\n\n" + theme.Negative.Render(s.errText)
	case s.info != "":
		body += "\n\n" + theme.Positive.Render(s.info)
	}

	card := theme.Card.Width(min(width-8, 64)).Render(body)
	return lipgloss.NewStyle().Padding(1, 4).Render(card)
}

func (s *Screen) Title() string {
	if s.detail != nil {
		return "Event"
	}
	return "Events"
}

// WantsEsc implements screen.EscHandler: esc leaves the detail view
// before it navigates back.
func (s *Screen) WantsEsc() bool {
	return s.detail != nil
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	if s.detail != nil {
		return []layout.KeyHint{
			{Key: "P", Description: "Participate"},
			{Key: "V", Description: "Voucher"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "R", Description: "Recommended"},
		{Key: "Esc", Description: "Back"},
	}
}
