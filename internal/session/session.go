package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Store keys in the local KV store.
const (
	tokenKey         = "auth_token"
	googleTokenKey   = "google_id_token"
	userKey          = "current_user"
	googleProfileKey = "google_profile"

	assessmentPrefix = "assessment/"
)

var (
	// ErrNotAuthenticated is returned when a token is required but neither
	// the backend token nor the Google token is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrEmptyToken is returned when SignIn is called without an access token.
	ErrEmptyToken = errors.New("empty access token")
)

// User is the cached profile of the signed-in user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AssessmentStatus records a user's mood-assessment outcome, keyed by email
// so it survives sign-out on a shared device.
type AssessmentStatus struct {
	Completed bool   `json:"completed"`
	Score     int    `json:"score"`
	Message   string `json:"message"`
}

// KV is the persistence contract the session store depends on.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store is the single source of truth for authentication state: whether a
// user is signed in, who they are, and whether they still owe the
// first-time mood assessment.
type Store struct {
	kv KV

	authenticated   bool
	currentUser     *User
	needsAssessment bool
}

// New creates a Store and derives its initial state from the KV store:
// token presence decides authentication, and the cached user (if any)
// decides whether an assessment is pending.
func New(ctx context.Context, kv KV) (*Store, error) {
	s := &Store{kv: kv}
	if err := s.CheckStatus(ctx); err != nil {
		return nil, fmt.Errorf("derive session state: %w", err)
	}
	return s, nil
}

// Authenticated reports whether a session token exists.
func (s *Store) Authenticated() bool { return s.authenticated }

// CurrentUser returns the cached user, or nil when signed out.
func (s *Store) CurrentUser() *User { return s.currentUser }

// NeedsAssessment reports whether the current user still owes the
// first-time mood assessment. Only meaningful while authenticated.
func (s *Store) NeedsAssessment() bool { return s.needsAssessment }

// SignIn persists the backend access token and the user record, then
// recomputes the assessment flag for the user's email.
func (s *Store) SignIn(ctx context.Context, accessToken string, user User) error {
	if accessToken == "" {
		return ErrEmptyToken
	}

	if err := s.kv.Set(ctx, tokenKey, accessToken); err != nil {
		return err
	}
	if err := s.saveUser(ctx, user); err != nil {
		return err
	}

	s.authenticated = true
	return s.refreshAssessmentFlag(ctx, user.Email)
}

// SignInWithGoogle persists the Google ID token alongside any backend
// access token issued for it, then records the user like SignIn.
func (s *Store) SignInWithGoogle(ctx context.Context, idToken, accessToken string, user User) error {
	if idToken == "" {
		return ErrEmptyToken
	}

	if err := s.kv.Set(ctx, googleTokenKey, idToken); err != nil {
		return err
	}
	if accessToken != "" {
		if err := s.kv.Set(ctx, tokenKey, accessToken); err != nil {
			return err
		}
	}
	if err := s.saveUser(ctx, user); err != nil {
		return err
	}

	s.authenticated = true
	return s.refreshAssessmentFlag(ctx, user.Email)
}

// UpdateUser replaces the cached user record without touching tokens.
// Used after a profile edit. Returns ErrNotAuthenticated when signed out.
func (s *Store) UpdateUser(ctx context.Context, user User) error {
	if !s.authenticated {
		return ErrNotAuthenticated
	}
	if err := s.saveUser(ctx, user); err != nil {
		return err
	}
	return s.refreshAssessmentFlag(ctx, user.Email)
}

// SignOut clears every persisted session key and resets in-memory state.
// Idempotent. Assessment status records are kept; they are per-email, not
// per-session.
func (s *Store) SignOut(ctx context.Context) error {
	for _, key := range []string{tokenKey, googleTokenKey, userKey, googleProfileKey} {
		if err := s.kv.Remove(ctx, key); err != nil {
			return err
		}
	}
	s.authenticated = false
	s.currentUser = nil
	s.needsAssessment = false
	return nil
}

// CheckStatus re-derives the authentication state from whichever token is
// present (backend first, then Google) and refreshes the assessment flag
// for the cached user.
func (s *Store) CheckStatus(ctx context.Context) error {
	hasToken, err := s.hasAnyToken(ctx)
	if err != nil {
		return err
	}
	s.authenticated = hasToken
	if !hasToken {
		s.currentUser = nil
		s.needsAssessment = false
		return nil
	}

	if s.currentUser == nil {
		if err := s.loadUser(ctx); err != nil {
			return err
		}
	}
	if s.currentUser != nil {
		return s.refreshAssessmentFlag(ctx, s.currentUser.Email)
	}
	return nil
}

// MarkAssessmentCompleted records the per-email completed flag and clears
// NeedsAssessment. No-op when no user is signed in. Idempotent.
func (s *Store) MarkAssessmentCompleted(ctx context.Context) error {
	if s.currentUser == nil {
		return nil
	}
	status, err := s.assessmentStatus(ctx, s.currentUser.Email)
	if err != nil {
		return err
	}
	status.Completed = true
	if err := s.saveAssessmentStatus(ctx, s.currentUser.Email, status); err != nil {
		return err
	}
	s.needsAssessment = false
	return nil
}

// SaveAssessmentResult caches the score and classification message for the
// current user's email. No-op when no user is signed in.
func (s *Store) SaveAssessmentResult(ctx context.Context, score int, message string) error {
	if s.currentUser == nil {
		return nil
	}
	status, err := s.assessmentStatus(ctx, s.currentUser.Email)
	if err != nil {
		return err
	}
	status.Score = score
	status.Message = message
	return s.saveAssessmentStatus(ctx, s.currentUser.Email, status)
}

// AssessmentResult returns the cached score and message for the current
// user. The bool is false when no user is signed in or no message has been
// recorded yet.
func (s *Store) AssessmentResult(ctx context.Context) (int, string, bool, error) {
	if s.currentUser == nil {
		return 0, "", false, nil
	}
	status, err := s.assessmentStatus(ctx, s.currentUser.Email)
	if err != nil {
		return 0, "", false, err
	}
	if status.Message == "" {
		return 0, "", false, nil
	}
	return status.Score, status.Message, true, nil
}

// Token returns the backend access token if present, else the Google ID
// token. Returns ErrNotAuthenticated when neither exists.
func (s *Store) Token(ctx context.Context) (string, error) {
	if tok, ok, err := s.kv.Get(ctx, tokenKey); err != nil {
		return "", err
	} else if ok {
		return tok, nil
	}
	if tok, ok, err := s.kv.Get(ctx, googleTokenKey); err != nil {
		return "", err
	} else if ok {
		return tok, nil
	}
	return "", ErrNotAuthenticated
}

func (s *Store) hasAnyToken(ctx context.Context) (bool, error) {
	for _, key := range []string{tokenKey, googleTokenKey} {
		if _, ok, err := s.kv.Get(ctx, key); err != nil {
			return false, err
		} else if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) saveUser(ctx context.Context, user User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, userKey, string(raw)); err != nil {
		return err
	}
	s.currentUser = &user
	return nil
}

func (s *Store) loadUser(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, userKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return fmt.Errorf("decode cached user: %w", err)
	}
	s.currentUser = &user
	return nil
}

func (s *Store) refreshAssessmentFlag(ctx context.Context, email string) error {
	status, err := s.assessmentStatus(ctx, email)
	if err != nil {
		return err
	}
	s.needsAssessment = !status.Completed
	return nil
}

func (s *Store) assessmentStatus(ctx context.Context, email string) (AssessmentStatus, error) {
	var status AssessmentStatus
	raw, ok, err := s.kv.Get(ctx, assessmentPrefix+email)
	if err != nil {
		return status, err
	}
	if !ok {
		return status, nil
	}
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return status, fmt.Errorf("decode assessment status: %w", err)
	}
	return status, nil
}

func (s *Store) saveAssessmentStatus(ctx context.Context, email string, status AssessmentStatus) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode assessment status: %w", err)
	}
	return s.kv.Set(ctx, assessmentPrefix+email, string(raw))
}
