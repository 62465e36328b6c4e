package mood

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/uplift/internal/api"
	"github.com/abhisek/uplift/internal/mood"
	"github.com/abhisek/uplift/internal/screen"
	"github.com/abhisek/uplift/internal/ui/components"
	"github.com/abhisek/uplift/internal/ui/layout"
	"github.com/abhisek/uplift/internal/ui/theme"
)

// Screen shows the detected-mood history and lets the user run a new
// detection from a photo on disk.
type Screen struct {
	client *api.Client

	stats     *api.EmotionStats
	timeRange mood.TimeRange
	loading   bool
	errText   string

	detecting bool
	pathInput components.TextInput
	detected  string
}

var _ screen.Screen = (*Screen)(nil)

// New creates the mood screen.
func New(client *api.Client) *Screen {
	return &Screen{
		client:    client,
		timeRange: mood.Week,
		loading:   true,
	}
}

type statsMsg struct {
	Stats *api.EmotionStats
	Err   error
}

type detectMsg struct {
	Emotion string
	Err     error
}

func (s *Screen) fetchStatsCmd() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		stats, err := client.EmotionStats(context.Background())
		return statsMsg{Stats: stats, Err: err}
	}
}

func (s *Screen) detectCmd(path string) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		image, err := os.ReadFile(path)
		if err != nil {
			return detectMsg{Err: fmt.Errorf("read photo: %w", err)}
		}
		resp, err := client.DetectEmotion(context.Background(), filepath.Base(path), image)
		if err != nil {
			return detectMsg{Err: err}
		}
		return detectMsg{Emotion: resp.Emotion}
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.fetchStatsCmd()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		s.loading = false
		if msg.Err != nil {
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.errText = ""
		s.stats = msg.Stats
		return s, nil

	case detectMsg:
		s.loading = false
		if msg.Err != nil {
			s.errText = msg.Err.Error()
			return s, nil
		}
		s.errText = ""
		s.detected = msg.Emotion
		// Refresh the chart; the new detection counts immediately.
		s.loading = true
		return s, s.fetchStatsCmd()

	case tea.KeyMsg:
		if s.detecting {
			switch msg.String() {
			case "enter":
				s.detecting = false
				s.loading = true
				return s, s.detectCmd(s.pathInput.Value())
			case "esc":
				s.detecting = false
				return s, nil
			}
			var cmd tea.Cmd
			s.pathInput, cmd = s.pathInput.Update(msg)
			return s, cmd
		}

		switch msg.String() {
		case "t":
			if s.timeRange == mood.Week {
				s.timeRange = mood.Month
			} else {
				s.timeRange = mood.Week
			}
		case "d":
			s.detecting = true
			s.pathInput = components.NewTextInput("Photo path", "~/selfie.jpg", false)
			return s, s.pathInput.Focus()
		}
	}

	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.detecting {
		card := theme.Card.Width(min(width-8, 56)).Render(
			theme.Title.Render("Detect your mood") + "\n\n" +
				s.pathInput.View() + "\n\n" +
				theme.Hint.Render("Enter to upload, esc to cancel"))
		return lipgloss.NewStyle().Padding(1, 4).Render(card)
	}

	var body string

	if s.detected != "" {
		body += theme.Positive.Render("Detected mood: "+s.detected) + "\n\n"
	}

	switch {
	case s.loading:
		body += theme.Hint.Render("Loading your mood history...")
	case s.errText != "":
		body += theme.Negative.Render(s.errText)
	case s.stats == nil || s.stats.TotalEmotions == 0:
		body += theme.Body.Render("No detections yet. Press d to upload a photo.")
	default:
		body += s.viewChart(width)
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(body)
}

func (s *Screen) viewChart(width int) string {
	entries := mood.FilterRange(mood.Entries(s.stats), s.timeRange, time.Now())

	counts := make(map[string]int)
	total := 0
	for _, e := range entries {
		counts[e.Emotion] += e.Count
		total += e.Count
	}

	header := theme.Body.Render(fmt.Sprintf("Last %d days: %d detections", s.timeRange.Days(), total))
	if dominant := mood.Dominant(s.stats); dominant != "" {
		header += "\n" + theme.Body.Render("Most frequent overall: ") + theme.Selected.Render(dominant)
	}

	barWidth := min(width-8, 48)
	var bars string
	for _, m := range mood.All() {
		count := counts[m]
		percent := 0.0
		if total > 0 {
			percent = float64(count) / float64(total)
		}
		bar := components.NewProgressBar(fmt.Sprintf("%-8s %3d", m, count), percent, false, barWidth)
		bars += bar.View() + "\n"
	}

	return header + "\n\n" + bars
}

func (s *Screen) Title() string {
	return "Mood"
}

// WantsEsc implements screen.EscHandler: esc cancels path entry before
// it navigates back.
func (s *Screen) WantsEsc() bool {
	return s.detecting
}

// KeyHints implements screen.KeyHintProvider.
func (s *Screen) KeyHints() []layout.KeyHint {
	if s.detecting {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Upload"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "D", Description: "Detect"},
		{Key: "T", Description: "Week/Month"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
