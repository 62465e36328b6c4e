package assessment

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeSubmitter implements Submitter for tests.
type fakeSubmitter struct {
	calls    []string
	failWith error
}

func (f *fakeSubmitter) SubmitAssessment(_ context.Context, userType string) error {
	f.calls = append(f.calls, userType)
	return f.failWith
}

func newTestRun(t *testing.T) *Run {
	t.Helper()
	r, err := NewRun(Catalog())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	return r
}

// answerAll selects the answer at index on every question and advances
// through the whole run.
func answerAll(t *testing.T, r *Run, index int) {
	t.Helper()
	for i := 0; i < r.Count(); i++ {
		if err := r.SelectAnswer(index); err != nil {
			t.Fatalf("SelectAnswer(q%d): %v", i, err)
		}
		if _, err := r.Advance(); err != nil {
			t.Fatalf("Advance(q%d): %v", i, err)
		}
	}
}

func TestCatalogShape(t *testing.T) {
	qs := Catalog()
	if len(qs) != 10 {
		t.Fatalf("len(Catalog()) = %d, want 10", len(qs))
	}
	for i, q := range qs {
		if len(q.Answers) != 4 {
			t.Errorf("question %d has %d answers, want 4", i, len(q.Answers))
		}
		wantScores := []int{1, 3, 5, 10}
		for j, a := range q.Answers {
			if a.Score != wantScores[j] {
				t.Errorf("question %d answer %d score = %d, want %d", i, j, a.Score, wantScores[j])
			}
		}
	}
	if got := MaxScore(qs); got != 100 {
		t.Errorf("MaxScore = %d, want 100", got)
	}
}

func TestNewRunEmptyCatalog(t *testing.T) {
	if _, err := NewRun(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("err = %v, want ErrEmptyCatalog", err)
	}
}

func TestAdvanceWithoutSelectionRejected(t *testing.T) {
	r := newTestRun(t)

	_, err := r.Advance()
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
	if r.Current() != 0 {
		t.Errorf("Current = %d, rejected advance must not move", r.Current())
	}
	if r.TotalScore() != 0 {
		t.Errorf("TotalScore = %d, rejected advance must not score", r.TotalScore())
	}
}

func TestSelectAnswerBounds(t *testing.T) {
	r := newTestRun(t)

	if err := r.SelectAnswer(-1); err == nil {
		t.Error("expected error for index -1")
	}
	if err := r.SelectAnswer(4); err == nil {
		t.Error("expected error for index past the answer list")
	}
	if err := r.SelectAnswer(3); err != nil {
		t.Errorf("SelectAnswer(3): %v", err)
	}
}

func TestReselectionOverwrites(t *testing.T) {
	r := newTestRun(t)

	if err := r.SelectAnswer(3); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := r.SelectAnswer(0); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if _, err := r.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	// Only the last selection (score 1) counts.
	if r.TotalScore() != 1 {
		t.Errorf("TotalScore = %d, want 1", r.TotalScore())
	}
}

func TestScoringHappensOnAdvanceOnly(t *testing.T) {
	r := newTestRun(t)

	if err := r.SelectAnswer(3); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if r.TotalScore() != 0 {
		t.Errorf("TotalScore = %d before Advance, want 0", r.TotalScore())
	}
	if _, err := r.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if r.TotalScore() != 10 {
		t.Errorf("TotalScore = %d after Advance, want 10", r.TotalScore())
	}
	if r.Selected() != -1 {
		t.Errorf("Selected = %d after Advance, want reset to -1", r.Selected())
	}
}

func TestTotalIsSumOfSelectedScores(t *testing.T) {
	r := newTestRun(t)

	picks := []int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1}
	want := 0
	for i, p := range picks {
		want += r.Question().Answers[p].Score
		if err := r.SelectAnswer(p); err != nil {
			t.Fatalf("SelectAnswer(q%d): %v", i, err)
		}
		if _, err := r.Advance(); err != nil {
			t.Fatalf("Advance(q%d): %v", i, err)
		}
	}

	if r.TotalScore() != want {
		t.Errorf("TotalScore = %d, want %d", r.TotalScore(), want)
	}
	if !r.Finished() {
		t.Error("run should be finished after ten answers")
	}
}

func TestFullRunTopAnswers(t *testing.T) {
	r := newTestRun(t)
	answerAll(t, r, 3)

	if r.TotalScore() != 100 {
		t.Errorf("TotalScore = %d, want 100", r.TotalScore())
	}
	got, err := r.Classify()
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != TypeHardWorking {
		t.Errorf("Classify = %q, want %q", got, TypeHardWorking)
	}
}

func TestFullRunBottomAnswers(t *testing.T) {
	r := newTestRun(t)
	answerAll(t, r, 0)

	if r.TotalScore() != 10 {
		t.Errorf("TotalScore = %d, want 10", r.TotalScore())
	}
	got, err := r.Classify()
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != TypeUnmotivated {
		t.Errorf("Classify = %q, want %q", got, TypeUnmotivated)
	}
}

func TestFinishedRunIsFrozen(t *testing.T) {
	r := newTestRun(t)
	answerAll(t, r, 2)

	last := r.Current()
	score := r.TotalScore()

	finished, err := r.Advance()
	if err != nil {
		t.Fatalf("Advance after finish: %v", err)
	}
	if !finished {
		t.Error("Advance after finish should report finished")
	}
	if r.Current() != last || r.TotalScore() != score {
		t.Error("state must not change after the run has finished")
	}
	if err := r.SelectAnswer(0); !errors.Is(err, ErrFinished) {
		t.Errorf("SelectAnswer after finish = %v, want ErrFinished", err)
	}
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, TypeHardWorking},
		{80, TypeHardWorking},
		{79, TypeNormalPace},
		{60, TypeNormalPace},
		{59, TypeLazy},
		{40, TypeLazy},
		{39, TypeUnmotivated},
		{10, TypeUnmotivated},
		{0, TypeUnmotivated},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score_%d", tt.score), func(t *testing.T) {
			got, err := Classify(tt.score, 100)
			if err != nil {
				t.Fatalf("Classify(%d, 100): %v", tt.score, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%d, 100) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestClassifyInvalidInput(t *testing.T) {
	if _, err := Classify(50, 0); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("zero max: err = %v, want ErrInvalidScore", err)
	}
	if _, err := Classify(50, -10); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("negative max: err = %v, want ErrInvalidScore", err)
	}
	if _, err := Classify(-1, 100); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("negative total: err = %v, want ErrInvalidScore", err)
	}
}

func TestSubmitRequiresFinishedRun(t *testing.T) {
	r := newTestRun(t)
	sub := &fakeSubmitter{}

	if err := r.Submit(context.Background(), sub); !errors.Is(err, ErrNotFinished) {
		t.Errorf("err = %v, want ErrNotFinished", err)
	}
	if len(sub.calls) != 0 {
		t.Error("nothing should be submitted before the run finishes")
	}
}

func TestSubmitSendsClassification(t *testing.T) {
	r := newTestRun(t)
	answerAll(t, r, 3)
	sub := &fakeSubmitter{}

	if err := r.Submit(context.Background(), sub); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(sub.calls) != 1 || sub.calls[0] != TypeHardWorking {
		t.Errorf("submitted %v, want [%q]", sub.calls, TypeHardWorking)
	}
}

func TestFailedSubmitKeepsStateRetryable(t *testing.T) {
	r := newTestRun(t)
	answerAll(t, r, 1)

	boom := errors.New("backend down")
	sub := &fakeSubmitter{failWith: boom}

	err := r.Submit(context.Background(), sub)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped backend error", err)
	}
	if !r.Finished() {
		t.Error("Finished must stay true after a failed submit")
	}
	if r.TotalScore() != 30 {
		t.Errorf("TotalScore = %d, want 30", r.TotalScore())
	}

	// Retry succeeds without replaying the quiz.
	sub.failWith = nil
	if err := r.Submit(context.Background(), sub); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if len(sub.calls) != 2 {
		t.Errorf("calls = %d, want 2", len(sub.calls))
	}
}
