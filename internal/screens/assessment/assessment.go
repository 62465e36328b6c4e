package assessment

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/uplift/internal/assessment"
	"github.com/abhisek/uplift/internal/screen"
	"github.com/abhisek/uplift/internal/screens/gate"
	"github.com/abhisek/uplift/internal/session"
	"github.com/abhisek/uplift/internal/ui/components"
	"github.com/abhisek/uplift/internal/ui/layout"
	"github.com/abhisek/uplift/internal/ui/theme"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseSubmitting
	phaseResult
	phaseFailed
)

// Screen runs the first-time motivation assessment: one question at a
// time, score on confirm, submit the classification when finished.
type Screen struct {
	run    *assessment.Run
	sess   *session.Store
	sub    assessment.Submitter
	picker components.AnswerPicker

	phase    phase
	userType string
	posted   bool
	hint     string
	err      error
}

var _ screen.Screen = (*Screen)(nil)

// New starts a fresh run over the standard question catalog.
func New(sess *session.Store, sub assessment.Submitter) *Screen {
	run, _ := assessment.NewRun(assessment.Catalog())
	s := &Screen{
		run:  run,
		sess: sess,
		sub:  sub,
	}
	s.picker = s.newPicker()
	return s
}

func (s *Screen) newPicker() components.AnswerPicker {
	q := s.run.Question()
	options := make([]string, 0, len(q.Answers))
	for _, a := range q.Answers {
		options = append(options, a.Text)
	}
	return components.NewAnswerPicker(q.Text, options)
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

// submittedMsg reports the outcome of recording the result. Posted means
// the classification reached the backend, even if the local save failed.
type submittedMsg struct {
	UserType string
	Posted   bool
	Err      error
}

func (s *Screen) submitCmd() tea.Cmd {
	run := s.run
	sess := s.sess
	sub := s.sub
	posted := s.posted
	return func() tea.Msg {
		ctx := context.Background()
		userType, err := run.Classify()
		if err != nil {
			return submittedMsg{Err: err}
		}
		// A retry after a local save failure must not post the
		// classification upstream a second time.
		if !posted {
			if err := run.Submit(ctx, sub); err != nil {
				return submittedMsg{UserType: userType, Err: err}
			}
		}
		if err := sess.SaveAssessmentResult(ctx, run.TotalScore(), userType); err != nil {
			return submittedMsg{UserType: userType, Posted: true, Err: err}
		}
		if err := sess.MarkAssessmentCompleted(ctx); err != nil {
			return submittedMsg{UserType: userType, Posted: true, Err: err}
		}
		return submittedMsg{UserType: userType, Posted: true}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		s.userType = msg.UserType
		if msg.Posted {
			s.posted = true
		}
		if msg.Err != nil {
			s.err = msg.Err
			s.phase = phaseFailed
			return s, nil
		}
		s.err = nil
		s.phase = phaseResult
		return s, nil

	case tea.KeyMsg:
		switch s.phase {
		case phaseAnswering:
			return s.updateAnswering(msg)
		case phaseFailed:
			if msg.String() == "r" {
				s.phase = phaseSubmitting
				return s, s.submitCmd()
			}
		case phaseResult:
			if msg.String() == "enter" {
				return s, func() tea.Msg { return gate.AssessmentDoneMsg{} }
			}
		}
	}

	return s, nil
}

func (s *Screen) updateAnswering(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		if !s.picker.HasChoice() {
			s.hint = "Pick an answer with space first"
			return s, nil
		}
		if err := s.run.SelectAnswer(s.picker.Chosen); err != nil {
			s.hint = err.Error()
			return s, nil
		}
		finished, err := s.run.Advance()
		if err != nil {
			s.hint = err.Error()
			return s, nil
		}
		s.hint = ""
		if finished {
			s.phase = phaseSubmitting
			return s, s.submitCmd()
		}
		s.picker = s.newPicker()
		return s, nil
	}

	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)
	if s.picker.HasChoice() {
		s.hint = ""
	}
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseSubmitting:
		return theme.Body.Render("\n  Submitting your result...")
	case phaseResult:
		return s.viewResult(width)
	case phaseFailed:
		return s.viewFailed(width)
	}
	return s.viewQuestion(width)
}

func (s *Screen) viewQuestion(width int) string {
	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.run.Current()+1, s.run.Count()),
		float64(s.run.Current())/float64(s.run.Count()),
		false,
		min(width-8, 60),
	)

	body := progress.View() + "\n\n" + s.picker.View()
	if s.hint != "" {
		body += "\n" + theme.Hint.Render("  "+s.hint)
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}

func (s *Screen) viewResult(width int) string {
	title := theme.Title.Render("Assessment complete")
	score := theme.Body.Render(fmt.Sprintf("Score: %d / %d", s.run.TotalScore(), s.run.MaxScore()))
	verdict := theme.Positive.Render("You are: " + s.userType)
	button := components.NewButton("Continue", true, nil).View()

	card := theme.Card.Render(title + "\n\n" + score + "\n" + verdict + "\n\n" + button)
	return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(card)
}

func (s *Screen) viewFailed(width int) string {
	title := theme.Negative.Render("Could not submit your result")
	detail := theme.Body.Render(fmt.Sprintf("Your answers are kept. (%v)", s.err))
	button := components.NewButton("Retry (r)", true, nil).View()

	card := theme.Card.Render(title + "\n\n" + detail + "\n\n" + button)
	return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(card)
}

func (s *Screen) Title() string {
	return "Assessment"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Space", Description: "Pick"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}
