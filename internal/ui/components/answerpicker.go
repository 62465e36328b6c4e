package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/uplift/internal/ui/theme"
)

// AnswerPicker is a selector for assessment answers. Unlike a quiz
// choice there is no right or wrong option, only a picked one; the
// pick can be changed until the question is advanced past.
type AnswerPicker struct {
	Prompt      string
	Options     []string
	Highlighted int
	Chosen      int
}

// NewAnswerPicker creates a picker with nothing chosen yet.
func NewAnswerPicker(prompt string, options []string) AnswerPicker {
	return AnswerPicker{
		Prompt:      prompt,
		Options:     options,
		Highlighted: 0,
		Chosen:      -1,
	}
}

// Init returns nil.
func (p AnswerPicker) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys. Space picks the highlighted option,
// overwriting any earlier pick.
func (p AnswerPicker) Update(msg tea.Msg) (AnswerPicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Highlighted > 0 {
			p.Highlighted--
		}
	case "down", "j":
		if p.Highlighted < len(p.Options)-1 {
			p.Highlighted++
		}
	case "space", " ":
		p.Chosen = p.Highlighted
	}

	return p, nil
}

// HasChoice reports whether an option has been picked.
func (p AnswerPicker) HasChoice() bool {
	return p.Chosen >= 0
}

// View renders the picker.
func (p AnswerPicker) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Prompt) + "\n\n"

	for i, opt := range p.Options {
		marker := "( )"
		if i == p.Chosen {
			marker = "(●)"
		}

		prefix := "  "
		if i == p.Highlighted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s  %s", prefix, marker, opt)

		switch {
		case i == p.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line) + "\n"
		case i == p.Highlighted:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
