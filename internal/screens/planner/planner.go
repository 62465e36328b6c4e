package planner

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/uplift/internal/api"
	"github.com/abhisek/uplift/internal/assessment"
	"github.com/abhisek/uplift/internal/mood"
	"github.com/abhisek/uplift/internal/screen"
	"github.com/abhisek/uplift/internal/session"
	"github.com/abhisek/uplift/internal/studyplan"
	"github.com/abhisek/uplift/internal/ui/components"
	"github.com/abhisek/uplift/internal/ui/layout"
	"github.com/abhisek/uplift/internal/ui/theme"
)

const examDateLayout = "2006-01-02"

// Screen generates a study plan for the user's classification, current
// mood and exam date, then tracks which sections are done.
type Screen struct {
	sess   *session.Store
	client *api.Client

	dateInput components.TextInput
	busy      bool
	errText   string

	plan     *studyplan.Plan
	sections []studyplan.Section
	tracker  *studyplan.TaskTracker
	cursor   int
}

var _ screen.Screen = (*Screen)(nil)

// New creates the study planner screen.
func New(sess *session.Store, client *api.Client) *Screen {
	return &Screen{
		sess:      sess,
		client:    client,
		dateInput: components.NewTextInput("Exam date", examDateLayout, false),
		tracker:   studyplan.NewTaskTracker(),
	}
}

type planMsg struct {
	Plan *studyplan.Plan
	Err  error
}

func (s *Screen) generateCmd(examDate string) tea.Cmd {
	sess := s.sess
	client := s.client
	return func() tea.Msg {
		ctx := context.Background()

		_, userType, ok, err := sess.AssessmentResult(ctx)
		if err != nil {
			return planMsg{Err: err}
		}
		if !ok {
			userType = assessment.TypeNormalPace
		}

		emotion := mood.Neutral
		if stats, err := client.EmotionStats(ctx); err == nil {
			if dominant := mood.Dominant(stats); dominant != "" {
				emotion = dominant
			}
		}

		resp, err := client.GenerateStudyPlan(ctx, api.StudyPlanRequest{
			UserType: userType,
			Emotion:  emotion,
			ExamDate: examDate,
		})
		if err != nil {
			return planMsg{Err: err}
		}
		return planMsg{Plan: &studyplan.Plan{Plan: resp.Plan, Prompt: resp.Prompt}}
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.dateInput.Focus()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planMsg:
		s.busy = false
		if msg.Err != nil {
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.errText = ""
		s.plan = msg.Plan
		s.sections = msg.Plan.Sections()
		s.tracker = studyplan.NewTaskTracker()
		s.cursor = 0
		return s, nil

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if s.plan == nil {
			return s.updateDateEntry(msg)
		}
		return s.updatePlan(msg)
	}

	return s, nil
}

func (s *Screen) updateDateEntry(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		date := s.dateInput.Value()
		if _, err := time.Parse(examDateLayout, date); err != nil {
			s.errText = "Enter the exam date as " + examDateLayout
			return s, nil
		}
		s.errText = ""
		s.busy = true
		return s, s.generateCmd(date)
	}

	var cmd tea.Cmd
	s.dateInput, cmd = s.dateInput.Update(msg)
	return s, cmd
}

func (s *Screen) updatePlan(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.sections)-1 {
			s.cursor++
		}
	case "space", " ":
		if s.cursor < len(s.sections) {
			s.tracker.Toggle(s.sections[s.cursor].Title)
		}
	case "n":
		// Start over with a new exam date.
		s.plan = nil
		s.sections = nil
		s.dateInput = components.NewTextInput("Exam date", examDateLayout, false)
		return s, s.dateInput.Focus()
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.plan == nil {
		return s.viewDateEntry(width)
	}
	return s.viewPlan(width)
}

func (s *Screen) viewDateEntry(width int) string {
	body := theme.Title.Render("Plan your studying") + "\n\n" +
		s.dateInput.View() + "\n\n"

	switch {
	case s.busy:
		body += theme.Hint.Render("Generating your plan...")
	case s.errText != "":
		body += theme.Negative.Render(s.errText)
	default:
		body += theme.Hint.Render("When is your exam?")
	}

	card := theme.Card.Width(min(width-8, 56)).Render(body)
	return lipgloss.NewStyle().Padding(1, 4).Render(card)
}

func (s *Screen) viewPlan(width int) string {
	done := s.tracker.Count()
	percent := 0.0
	if len(s.sections) > 0 {
		percent = float64(done) / float64(len(s.sections))
	}
	progress := components.NewProgressBar(
		fmt.Sprintf("Done %d of %d", done, len(s.sections)),
		percent,
		true,
		min(width-8, 56),
	)

	body := progress.View() + "\n\n"

	if len(s.sections) == 0 {
		// Unstructured plan text; show it as-is.
		body += theme.Body.Render(s.plan.Plan)
	}

	for i, sec := range s.sections {
		check := "[ ]"
		if s.tracker.Completed(sec.Title) {
			check = "[x]"
		}

		line := fmt.Sprintf("%s %s", check, sec.Title)
		if i == s.cursor {
			body += theme.Selected.Render("  ▸ "+line) + "\n"
			body += theme.Body.Render("      "+sec.Content) + "\n"
		} else {
			body += theme.Unselected.Render("    "+line) + "\n"
		}
	}

	if s.errText != "" {
		body += "\n" + theme.Negative.Render(s.errText)
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}

func (s *Screen) Title() string {
	return "Study planner"
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	if s.plan == nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle done"},
		{Key: "N", Description: "New plan"},
		{Key: "Esc", Description: "Back"},
	}
}
