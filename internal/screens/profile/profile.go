package profile

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/uplift/internal/api"
	"github.com/abhisek/uplift/internal/screen"
	"github.com/abhisek/uplift/internal/screens/gate"
	"github.com/abhisek/uplift/internal/session"
	"github.com/abhisek/uplift/internal/ui/components"
	"github.com/abhisek/uplift/internal/ui/layout"
	"github.com/abhisek/uplift/internal/ui/theme"
)

// Screen shows the signed-in profile, supports editing it, and hosts
// the sign-out action.
type Screen struct {
	sess   *session.Store
	client *api.Client

	details *api.UserDetails
	loading bool
	errText string
	info    string

	editing bool
	inputs  []components.TextInput
	focus   int
}

var _ screen.Screen = (*Screen)(nil)

// New creates the profile screen.
func New(sess *session.Store, client *api.Client) *Screen {
	return &Screen{sess: sess, client: client, loading: true}
}

type detailsMsg struct {
	Details *api.UserDetails
	Err     error
}

type savedMsg struct {
	Name  string
	Email string
	Err   error
}

type signedOutMsg struct{ Err error }

func (s *Screen) fetchCmd() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		details, err := client.UserDetails(context.Background())
		return detailsMsg{Details: details, Err: err}
	}
}

func (s *Screen) saveCmd(name, email string) tea.Cmd {
	client := s.client
	sess := s.sess
	return func() tea.Msg {
		ctx := context.Background()
		err := client.UpdateProfile(ctx, api.ProfileUpdate{Name: name, Email: email})
		if err != nil {
			return savedMsg{Err: err}
		}

		user := session.User{Name: name, Email: email}
		if cached := sess.CurrentUser(); cached != nil {
			user.ID = cached.ID
		}
		if err := sess.UpdateUser(ctx, user); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Name: name, Email: email}
	}
}

func (s *Screen) signOutCmd() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		return signedOutMsg{Err: sess.SignOut(context.Background())}
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.fetchCmd()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case detailsMsg:
		s.loading = false
		if msg.Err != nil {
			s.errText = friendlyError(msg.Err)
			return s, nil
		}
		s.errText = ""
		s.details = msg.Details
		return s, nil

	case savedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errText = friendlyError(msg.Err)
			return s, nil
		}
		s.errText = ""
		s.editing = false
		s.info = "Profile updated."
		if s.details != nil {
			s.details.Name = msg.Name
			s.details.Email = msg.Email
		}
		return s, nil

	case signedOutMsg:
		if msg.Err != nil {
			s.errText = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return gate.SignedOutMsg{} }

	case tea.KeyMsg:
		if s.editing {
			return s.updateEditing(msg)
		}
		switch msg.String() {
		case "e":
			if s.details == nil {
				return s, nil
			}
			s.editing = true
			s.info = ""
			s.focus = 0
			name := components.NewTextInput("Name", s.details.Name, false)
			name.Model.SetValue(s.details.Name)
			email := components.NewTextInput("Email", s.details.Email, false)
			email.Model.SetValue(s.details.Email)
			s.inputs = []components.TextInput{name, email}
			return s, s.inputs[0].Focus()
		case "ctrl+x":
			s.loading = true
			return s, s.signOutCmd()
		}
	}

	return s, nil
}

func (s *Screen) updateEditing(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "tab", "shift+tab":
		s.inputs[s.focus].Blur()
		s.focus = (s.focus + 1) % len(s.inputs)
		return s, s.inputs[s.focus].Focus()
	case "enter":
		if s.focus < len(s.inputs)-1 {
			s.inputs[s.focus].Blur()
			s.focus++
			return s, s.inputs[s.focus].Focus()
		}
		s.loading = true
		return s, s.saveCmd(s.inputs[0].Value(), s.inputs[1].Value())
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Your session has expired. Sign out and back in."
	case errors.Is(err, api.ErrEmailTaken):
		return "That email is already in use."
	}
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return "Name and a valid email are required."
	}
	return err.Error()
}

func (s *Screen) View(width, height int) string {
	if s.editing {
		var body string
		for i := range s.inputs {
			body += s.inputs[i].View() + "\n\n"
		}
		if s.loading {
			body += theme.Hint.Render("Saving...")
		} else if s.errText != "" {
			body += theme.Negative.Render(s.errText)
		}
		card := theme.Card.Width(min(width-8, 56)).Render(
			theme.Title.Render("Edit profile") + "\n\n" + body)
		return lipgloss.NewStyle().Padding(1, 4).Render(card)
	}

	var body string
	switch {
	case s.loading:
		body = theme.Hint.Render("Loading your profile...")
	case s.errText != "":
		body = theme.Negative.Render(s.errText)
	case s.details != nil:
		body = theme.Body.Render("Name:  "+s.details.Name) + "\n" +
			theme.Body.Render("Email: "+s.details.Email) + "\n" +
			theme.Hint.Render(fmt.Sprintf("ID:    %s", s.details.UserID))
	}

	if s.info != "" {
		body += "\n\n" + theme.Positive.Render(s.info)
	}

	card := theme.Card.Width(min(width-8, 56)).Render(
		theme.Title.Render("Your profile") + "\n\n" + body)
	return lipgloss.NewStyle().Padding(1, 4).Render(card)
}

func (s *Screen) Title() string {
	return "Profile"
}

// WantsEsc implements screen.EscHandler: esc cancels editing before it
// navigates back.
func (s *Screen) WantsEsc() bool {
	return s.editing
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "E", Description: "Edit"},
		{Key: "Ctrl+X", Description: "Sign out"},
		{Key: "Esc", Description: "Back"},
	}
}
