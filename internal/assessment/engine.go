package assessment

import (
	"context"
	"errors"
	"fmt"
)

const noSelection = -1

var (
	// ErrNoSelection is returned by Advance when no answer has been
	// selected for the current question. Advancing never scores zero
	// silently.
	ErrNoSelection = errors.New("no answer selected")

	// ErrFinished is returned by SelectAnswer after the run has finished.
	ErrFinished = errors.New("assessment already finished")

	// ErrNotFinished is returned by Submit before the last question has
	// been answered.
	ErrNotFinished = errors.New("assessment not finished")

	// ErrEmptyCatalog is returned by NewRun when given no questions.
	ErrEmptyCatalog = errors.New("empty question catalog")
)

// Submitter persists a finished assessment upstream.
type Submitter interface {
	SubmitAssessment(ctx context.Context, userType string) error
}

// Run drives a single pass through the questionnaire. Answers are chosen
// with SelectAnswer and only scored when confirmed via Advance; each run is
// fresh and is discarded once the result has been recorded.
type Run struct {
	questions []Question
	maxScore  int

	current    int
	selected   int
	totalScore int
	finished   bool
}

// NewRun starts a run over the given catalog.
func NewRun(questions []Question) (*Run, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Run{
		questions: questions,
		maxScore:  MaxScore(questions),
		selected:  noSelection,
	}, nil
}

// Current returns the index of the question being answered.
func (r *Run) Current() int { return r.current }

// Question returns the question being answered.
func (r *Run) Question() Question { return r.questions[r.current] }

// Count returns the number of questions in the run.
func (r *Run) Count() int { return len(r.questions) }

// Selected returns the selected answer index for the current question,
// or -1 when none is selected.
func (r *Run) Selected() int { return r.selected }

// TotalScore returns the accumulated score of confirmed answers.
func (r *Run) TotalScore() int { return r.totalScore }

// MaxScore returns the highest reachable total for this run.
func (r *Run) MaxScore() int { return r.maxScore }

// Finished reports whether the last question has been confirmed.
func (r *Run) Finished() bool { return r.finished }

// SelectAnswer records the chosen answer index for the current question.
// Repeated calls overwrite the previous choice; nothing is scored until
// Advance confirms it.
func (r *Run) SelectAnswer(index int) error {
	if r.finished {
		return ErrFinished
	}
	if index < 0 || index >= len(r.Question().Answers) {
		return fmt.Errorf("answer index %d out of range [0,%d)", index, len(r.Question().Answers))
	}
	r.selected = index
	return nil
}

// Advance confirms the selected answer, adds its score to the total, and
// moves to the next question. On the last question it marks the run
// finished instead; the caller then submits the result. Advancing without
// a selection is a contract violation and changes no state. Calling
// Advance after the run has finished is a no-op.
func (r *Run) Advance() (finished bool, err error) {
	if r.finished {
		return true, nil
	}
	if r.selected == noSelection {
		return false, ErrNoSelection
	}

	r.totalScore += r.Question().Answers[r.selected].Score

	if r.current == len(r.questions)-1 {
		r.finished = true
		return true, nil
	}

	r.current++
	r.selected = noSelection
	return false, nil
}

// Classify returns the user type for the run's current total.
func (r *Run) Classify() (string, error) {
	return Classify(r.totalScore, r.maxScore)
}

// Submit sends the classification to the submitter. It requires a finished
// run. A failed submission leaves the run untouched — Finished stays true
// and the classification remains queryable — so the caller may retry
// without replaying the quiz.
func (r *Run) Submit(ctx context.Context, sub Submitter) error {
	if !r.finished {
		return ErrNotFinished
	}
	userType, err := r.Classify()
	if err != nil {
		return err
	}
	if err := sub.SubmitAssessment(ctx, userType); err != nil {
		return fmt.Errorf("submit assessment: %w", err)
	}
	return nil
}
