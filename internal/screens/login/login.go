package login

import (
	"context"
	"errors"

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

type mode int

const (
	modeSignIn mode = iota
	modeSignUp
	modeForgotEmail
	modeForgotCode
	modeForgotPassword
)

// Screen handles sign-in, account creation and the password reset flow.
type Screen struct {
	sess   *session.Store
	client *api.Client

	mode   mode
	inputs []components.TextInput
	focus  int

	resetUserID string
	busy        bool
	info        string
	errText     string
}

var _ screen.Screen = (*Screen)(nil)

// New creates the login screen in sign-in mode.
func New(sess *session.Store, client *api.Client) *Screen {
	s := &Screen{sess: sess, client: client}
	s.setMode(modeSignIn)
	return s
}

func (s *Screen) setMode(m mode) {
	s.mode = m
	s.focus = 0
	s.errText = ""

	switch m {
	case modeSignIn:
		s.inputs = []components.TextInput{
			components.NewTextInput("Email", "you@university.edu", false),
			components.NewTextInput("Password", "at least 8 characters", true),
		}
	case modeSignUp:
		s.inputs = []components.TextInput{
			components.NewTextInput("Name", "Your name", false),
			components.NewTextInput("Email", "you@university.edu", false),
			components.NewTextInput("Password", "at least 8 characters", true),
		}
	case modeForgotEmail:
		s.inputs = []components.TextInput{
			components.NewTextInput("Email", "you@university.edu", false),
		}
	case modeForgotCode:
		s.inputs = []components.TextInput{
			components.NewTextInput("Reset code", "code from your email", false),
		}
	case modeForgotPassword:
		s.inputs = []components.TextInput{
			components.NewTextInput("New password", "at least 8 characters", true),
		}
	}
}

func (s *Screen) Init() tea.Cmd {
	if len(s.inputs) == 0 {
		return nil
	}
	return s.inputs[0].Focus()
}

type signInDoneMsg struct{ Err error }

type signUpDoneMsg struct{ Err error }

type forgotDoneMsg struct {
	UserID string
	Err    error
}

type verifyDoneMsg struct{ Err error }

type resetDoneMsg struct{ Err error }

func (s *Screen) signInCmd(email, password string) tea.Cmd {
	client := s.client
	sess := s.sess
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := client.Login(ctx, api.Credentials{Email: email, Password: password})
		if err != nil {
			return signInDoneMsg{Err: err}
		}
		user := session.User{ID: resp.UserID, Email: email}
		if err := sess.SignIn(ctx, resp.AccessToken, user); err != nil {
			return signInDoneMsg{Err: err}
		}
		// Enrich the cached user with the backend profile; the session is
		// already valid if this fails.
		if details, err := client.UserDetails(ctx); err == nil {
			user.Name = details.Name
			_ = sess.UpdateUser(ctx, user)
		}
		return signInDoneMsg{}
	}
}

func (s *Screen) signUpCmd(name, email, password string) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		_, err := client.SignUp(context.Background(), api.SignUpRequest{
			Name:     name,
			Email:    email,
			Password: password,
		})
		return signUpDoneMsg{Err: err}
	}
}

func (s *Screen) forgotCmd(email string) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		resp, err := client.ForgotPassword(context.Background(), email)
		if err != nil {
			return forgotDoneMsg{Err: err}
		}
		return forgotDoneMsg{UserID: resp.UserID}
	}
}

func (s *Screen) verifyCmd(code string) tea.Cmd {
	client := s.client
	userID := s.resetUserID
	return func() tea.Msg {
		return verifyDoneMsg{Err: client.VerifyResetCode(context.Background(), userID, code)}
	}
}

func (s *Screen) resetCmd(password string) tea.Cmd {
	client := s.client
	userID := s.resetUserID
	return func() tea.Msg {
		return resetDoneMsg{Err: client.ResetPassword(context.Background(), userID, password)}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signInDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errText = friendlyError(msg.Err)
			return s, nil
		}
		return s, func() tea.Msg { return gate.SignedInMsg{} }

	case signUpDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errText = friendlyError(msg.Err)
			return s, nil
		}
		s.setMode(modeSignIn)
		s.info = "Account created. Sign in to continue."
		return s, s.Init()

	case forgotDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errText = friendlyError(msg.Err)
			return s, nil
		}
		s.resetUserID = msg.UserID
		s.setMode(modeForgotCode)
		s.info = "Check your email for the reset code."
		return s, s.Init()

	case verifyDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errText = friendlyError(msg.Err)
			return s, nil
		}
		s.setMode(modeForgotPassword)
		s.info = "Code accepted. Choose a new password."
		return s, s.Init()

	case resetDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errText = friendlyError(msg.Err)
			return s, nil
		}
		s.setMode(modeSignIn)
		s.info = "Password updated. Sign in with your new password."
		return s, s.Init()

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return s, s.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
		case "enter":
			return s.submit()
		case "ctrl+u":
			if s.mode == modeSignIn {
				s.setMode(modeSignUp)
			} else {
				s.setMode(modeSignIn)
			}
			s.info = ""
			return s, s.Init()
		case "ctrl+f":
			s.setMode(modeForgotEmail)
			s.info = ""
			return s, s.Init()
		}

		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *Screen) cycleFocus(backwards bool) tea.Cmd {
	s.inputs[s.focus].Blur()
	if backwards {
		s.focus = (s.focus - 1 + len(s.inputs)) % len(s.inputs)
	} else {
		s.focus = (s.focus + 1) % len(s.inputs)
	}
	return s.inputs[s.focus].Focus()
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	// Enter on any field but the last moves focus forward instead.
	if s.focus < len(s.inputs)-1 {
		return s, s.cycleFocus(false)
	}

	s.errText = ""
	s.info = ""
	s.busy = true

	switch s.mode {
	case modeSignIn:
		return s, s.signInCmd(s.inputs[0].Value(), s.inputs[1].Value())
	case modeSignUp:
		return s, s.signUpCmd(s.inputs[0].Value(), s.inputs[1].Value(), s.inputs[2].Value())
	case modeForgotEmail:
		return s, s.forgotCmd(s.inputs[0].Value())
	case modeForgotCode:
		return s, s.verifyCmd(s.inputs[0].Value())
	case modeForgotPassword:
		return s, s.resetCmd(s.inputs[0].Value())
	}
	s.busy = false
	return s, nil
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Wrong email or password."
	case errors.Is(err, api.ErrEmailTaken):
		return "That email is already in use."
	}
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return "Check your details: email must be valid and the password at least 8 characters."
	}
	return err.Error()
}

func (s *Screen) View(width, height int) string {
	title := theme.Title.Render(s.heading())

	var body string
	for i := range s.inputs {
		body += s.inputs[i].View() + "\n\n"
	}

	if s.busy {
		body += theme.Hint.Render("Working...")
	} else if s.errText != "" {
		body += theme.Negative.Render(s.errText)
	} else if s.info != "" {
		body += theme.Positive.Render(s.info)
	}

	card := theme.Card.Width(min(width-8, 56)).Render(title + "\n\n" + body)
	return lipgloss.NewStyle().Padding(1, 4).Render(card)
}

func (s *Screen) heading() string {
	switch s.mode {
	case modeSignUp:
		return "Create your account"
	case modeForgotEmail, modeForgotCode, modeForgotPassword:
		return "Reset your password"
	}
	return "Welcome back"
}

func (s *Screen) Title() string {
	return "Sign in"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
	}
	if s.mode == modeSignIn {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+U", Description: "Sign up"})
		hints = append(hints, layout.KeyHint{Key: "Ctrl+F", Description: "Forgot password"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+U", Description: "Sign in"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}
