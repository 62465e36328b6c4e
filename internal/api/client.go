package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TokenSource supplies the bearer credential for authenticated calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config holds API client configuration.
type Config struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string

	// Timeout is the maximum duration for a single request. Default: 30s.
	Timeout time.Duration
}

// DefaultConfig returns a Config from the environment: UPLIFT_API overrides
// the backend URL.
func DefaultConfig() Config {
	base := os.Getenv("UPLIFT_API")
	if base == "" {
		base = "http://localhost:3000"
	}
	return Config{
		BaseURL: strings.TrimRight(base, "/"),
		Timeout: 30 * time.Second,
	}
}

// Client is a typed HTTP client for the wellness backend. All requests are
// plain request/response; failures surface as typed errors and are never
// retried here — retry is the caller's decision.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	validate *validator.Validate
}

// New creates a Client. tokens may be nil for a client that only performs
// unauthenticated calls.
func New(cfg Config, tokens TokenSource) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, creds Credentials) (*SignInResponse, error) {
	if err := c.validate.Struct(creds); err != nil {
		return nil, &ValidationError{Err: err}
	}
	var out SignInResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", creds, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp creates an account and returns the new user record.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, &ValidationError{Err: err}
	}
	var out User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", req, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleSignIn exchanges a Google ID token for backend tokens.
func (c *Client) GoogleSignIn(ctx context.Context, idToken string) (*SignInResponse, error) {
	body := map[string]string{"idToken": idToken}
	var out SignInResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/google-signin", body, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserID resolves an email to its user ID.
func (c *Client) UserID(ctx context.Context, email string) (*UserIDResponse, error) {
	path := "/auth/get-user-id?email=" + url.QueryEscape(email)
	var out UserIDResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword asks the backend to email a reset code.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResponse, error) {
	body := map[string]string{"email": email}
	var out ForgotPasswordResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", body, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyResetCode checks the emailed reset code for a user.
func (c *Client) VerifyResetCode(ctx context.Context, userID, resetCode string) error {
	body := map[string]string{"resetCode": resetCode}
	return c.doJSON(ctx, http.MethodPost, "/auth/verify-code/"+url.PathEscape(userID), body, false, nil)
}

// ResetPassword sets a new password after code verification.
func (c *Client) ResetPassword(ctx context.Context, userID, newPassword string) error {
	body := map[string]string{"newPassword": newPassword}
	return c.doJSON(ctx, http.MethodPost, "/auth/reset-password/"+url.PathEscape(userID), body, false, nil)
}

// UserDetails fetches the authenticated user's profile.
func (c *Client) UserDetails(ctx context.Context) (*UserDetails, error) {
	var out UserDetails
	if err := c.doJSON(ctx, http.MethodGet, "/auth/user-details", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if err := c.validate.Struct(update); err != nil {
		return &ValidationError{Err: err}
	}
	return c.doJSON(ctx, http.MethodPatch, "/auth/edit-profile", update, true, nil)
}

// SubmitAssessment records the mood assessment classification upstream.
// Implements assessment.Submitter.
func (c *Client) SubmitAssessment(ctx context.Context, userType string) error {
	sub := AssessmentSubmission{UserType: userType}
	if err := c.validate.Struct(sub); err != nil {
		return &ValidationError{Err: err}
	}
	return c.doJSON(ctx, http.MethodPost, "/auth/submit-assessment", sub, true, nil)
}

// GenerateStudyPlan asks the backend for a study plan.
func (c *Client) GenerateStudyPlan(ctx context.Context, req StudyPlanRequest) (*StudyPlanResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, &ValidationError{Err: err}
	}
	var out StudyPlanResponse
	if err := c.doJSON(ctx, http.MethodPost, "/study-plan", req, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs a JSON request. body may be nil; out may be nil for
// calls where only the status matters. 2xx statuses are success.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, auth bool, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if err := c.attachBearer(ctx, req); err != nil {
			return err
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &DecodeError{Err: err}
		}
	}
	return nil
}

// attachBearer sets the Authorization header. Missing tokens surface as
// ErrUnauthorized before any request is sent.
func (c *Client) attachBearer(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return ErrUnauthorized
	}
	token, err := c.tokens.Token(ctx)
	if err != nil || token == "" {
		return ErrUnauthorized
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// statusError maps a failed response to a typed error.
func (c *Client) statusError(status int, data []byte) error {
	if status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if status == http.StatusBadRequest && strings.Contains(string(data), "Email already in use") {
		return ErrEmailTaken
	}

	var er ErrorResponse
	if err := json.Unmarshal(data, &er); err == nil && er.Message != "" {
		return &ServerError{Status: status, Message: er.Message}
	}
	return &ServerError{Status: status}
}
