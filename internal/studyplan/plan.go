package studyplan

import "strings"

// Plan is a generated study plan: free text from the backend plus the
// prompt that produced it.
type Plan struct {
	Plan   string
	Prompt string
}

// Section is one day (or block) of a plan, split out for display.
type Section struct {
	Title   string
	Content string
}

// Sections splits the plan text into titled sections. Blocks are separated
// by blank lines; within a block the first "Title: content" colon splits
// title from body. Blocks without a title are skipped.
func (p Plan) Sections() []Section {
	var sections []Section
	for _, block := range strings.Split(p.Plan, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		parts := strings.Split(block, ": ")
		if len(parts) < 2 {
			continue
		}

		sections = append(sections, Section{
			Title:   strings.TrimSpace(parts[0]),
			Content: strings.TrimSpace(strings.Join(parts[1:], ": ")),
		})
	}
	return sections
}
