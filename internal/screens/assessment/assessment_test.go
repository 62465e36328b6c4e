package assessment

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/uplift/internal/assessment"
	"github.com/abhisek/uplift/internal/screens/gate"
	"github.com/abhisek/uplift/internal/session"
)

// mapKV implements session.KV for tests. setErr, when non-nil, makes
// every write fail.
type mapKV struct {
	data   map[string]string
	setErr error
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string]string)}
}

func (m *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mapKV) Remove(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// fakeSubmitter records submissions and can be told to fail.
type fakeSubmitter struct {
	calls    int
	userType string
	err      error
}

func (f *fakeSubmitter) SubmitAssessment(_ context.Context, userType string) error {
	f.calls++
	f.userType = userType
	return f.err
}

func newTestScreen(t *testing.T, sub assessment.Submitter) (*Screen, *session.Store) {
	t.Helper()
	s, sess, _ := newTestScreenKV(t, sub)
	return s, sess
}

func newTestScreenKV(t *testing.T, sub assessment.Submitter) (*Screen, *session.Store, *mapKV) {
	t.Helper()
	ctx := context.Background()
	kv := newMapKV()
	sess, err := session.New(ctx, kv)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	user := session.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	if err := sess.SignIn(ctx, "tok-1", user); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	return New(sess, sub), sess, kv
}

func pressSpace(s *Screen) {
	s.Update(tea.KeyPressMsg{Code: tea.KeySpace})
}

func pressEnter(s *Screen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

// answerAll picks the first answer for every question and returns the
// command produced by confirming the last one.
func answerAll(s *Screen) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < s.run.Count(); i++ {
		pressSpace(s)
		cmd = pressEnter(s)
	}
	return cmd
}

func TestConfirmWithoutPickShowsHint(t *testing.T) {
	s, _ := newTestScreen(t, &fakeSubmitter{})

	cmd := pressEnter(s)
	if cmd != nil {
		t.Error("confirm without a pick should produce no command")
	}
	if s.hint == "" {
		t.Error("confirm without a pick should set a hint")
	}
	if s.run.Current() != 0 {
		t.Errorf("Current = %d, want 0 (no state change)", s.run.Current())
	}
}

func TestPickingClearsHint(t *testing.T) {
	s, _ := newTestScreen(t, &fakeSubmitter{})

	pressEnter(s)
	if s.hint == "" {
		t.Fatal("expected a hint")
	}
	pressSpace(s)
	if s.hint != "" {
		t.Error("picking an answer should clear the hint")
	}
}

func TestFullRunSubmitsAndMarksSession(t *testing.T) {
	sub := &fakeSubmitter{}
	s, sess := newTestScreen(t, sub)

	cmd := answerAll(s)
	if cmd == nil {
		t.Fatal("confirming the last answer should produce a submit command")
	}
	if s.phase != phaseSubmitting {
		t.Fatalf("phase = %d, want submitting", s.phase)
	}

	s.Update(cmd())

	if s.phase != phaseResult {
		t.Fatalf("phase = %d, want result", s.phase)
	}
	if sub.calls != 1 {
		t.Errorf("submitter calls = %d, want 1", sub.calls)
	}
	if sub.userType != s.userType {
		t.Errorf("submitted %q, shown %q", sub.userType, s.userType)
	}

	ctx := context.Background()
	if sess.NeedsAssessment() {
		t.Error("session should no longer need the assessment")
	}
	score, msg, ok, err := sess.AssessmentResult(ctx)
	if err != nil || !ok {
		t.Fatalf("AssessmentResult = ok=%v err=%v, want stored result", ok, err)
	}
	if score != s.run.TotalScore() || msg != s.userType {
		t.Errorf("stored (%d, %q), want (%d, %q)", score, msg, s.run.TotalScore(), s.userType)
	}
}

func TestResultAcknowledgeEmitsDone(t *testing.T) {
	s, _ := newTestScreen(t, &fakeSubmitter{})

	cmd := answerAll(s)
	s.Update(cmd())

	doneCmd := pressEnter(s)
	if doneCmd == nil {
		t.Fatal("enter on the result should produce a command")
	}
	if _, ok := doneCmd().(gate.AssessmentDoneMsg); !ok {
		t.Errorf("expected gate.AssessmentDoneMsg, got %T", doneCmd())
	}
}

func TestFailedSubmitIsRetryable(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("backend down")}
	s, sess := newTestScreen(t, sub)

	cmd := answerAll(s)
	s.Update(cmd())

	if s.phase != phaseFailed {
		t.Fatalf("phase = %d, want failed", s.phase)
	}
	if !s.run.Finished() {
		t.Error("run should stay finished after a failed submit")
	}
	if sess.NeedsAssessment() != true {
		t.Error("failed submit must not mark the assessment completed")
	}

	// Retry after the backend recovers.
	sub.err = nil
	_, retryCmd := s.Update(tea.KeyPressMsg{Code: 'r'})
	if retryCmd == nil {
		t.Fatal("r should retry the submission")
	}
	s.Update(retryCmd())

	if s.phase != phaseResult {
		t.Fatalf("phase after retry = %d, want result", s.phase)
	}
	if sub.calls != 2 {
		t.Errorf("submitter calls = %d, want 2", sub.calls)
	}
	if sess.NeedsAssessment() {
		t.Error("session should be marked completed after the retry")
	}
}

func TestRetryAfterLocalSaveFailureDoesNotRepost(t *testing.T) {
	sub := &fakeSubmitter{}
	s, sess, kv := newTestScreenKV(t, sub)

	// The backend accepts the result but the local save fails.
	kv.setErr = errors.New("disk full")
	cmd := answerAll(s)
	s.Update(cmd())

	if s.phase != phaseFailed {
		t.Fatalf("phase = %d, want failed", s.phase)
	}
	if sub.calls != 1 {
		t.Fatalf("submitter calls = %d, want 1", sub.calls)
	}

	// Storage recovers; the retry must only redo the local bookkeeping.
	kv.setErr = nil
	_, retryCmd := s.Update(tea.KeyPressMsg{Code: 'r'})
	if retryCmd == nil {
		t.Fatal("r should retry")
	}
	s.Update(retryCmd())

	if s.phase != phaseResult {
		t.Fatalf("phase after retry = %d, want result", s.phase)
	}
	if sub.calls != 1 {
		t.Errorf("submitter calls = %d, want 1 (no second upstream post)", sub.calls)
	}
	if sess.NeedsAssessment() {
		t.Error("session should be marked completed after the retry")
	}
}

func TestScoringMatchesCatalog(t *testing.T) {
	sub := &fakeSubmitter{}
	s, _ := newTestScreen(t, sub)

	want := 0
	for _, q := range assessment.Catalog() {
		want += q.Answers[0].Score
	}

	cmd := answerAll(s)
	s.Update(cmd())

	if s.run.TotalScore() != want {
		t.Errorf("TotalScore = %d, want %d (first answer of every question)", s.run.TotalScore(), want)
	}
}
