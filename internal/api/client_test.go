package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens implements TokenSource for tests.
type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(_ context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL}, tokens)
}

func TestLoginSuccess(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice@example.com", creds.Email)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SignInResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			UserID:       "u1",
		})
	})
	c := newTestClient(t, handler, nil)

	resp, err := c.Login(context.Background(), Credentials{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-1", resp.AccessToken)
	assert.Equal(t, "u1", resp.UserID)
}

func TestGoogleSignInExchangesIDToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/google-signin", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "google-id-1", body["idToken"])

		json.NewEncoder(w).Encode(SignInResponse{
			AccessToken: "access-g1",
			UserID:      "u1",
		})
	})
	c := newTestClient(t, handler, nil)

	resp, err := c.GoogleSignIn(context.Background(), "google-id-1")
	require.NoError(t, err)
	assert.Equal(t, "access-g1", resp.AccessToken)
	assert.Equal(t, "u1", resp.UserID)
}

func TestLoginRejectsInvalidCredentialsLocally(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	c := newTestClient(t, handler, nil)

	_, err := c.Login(context.Background(), Credentials{Email: "not-an-email", Password: "short"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, called, "invalid requests must not reach the backend")
}

func TestLoginUnauthorized(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := newTestClient(t, handler, nil)

	_, err := c.Login(context.Background(), Credentials{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSignUpEmailTaken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Email already in use","error":"Bad Request","statusCode":400}`))
	})
	c := newTestClient(t, handler, nil)

	_, err := c.SignUp(context.Background(), SignUpRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestServerErrorCarriesMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"something broke","error":"Internal","statusCode":500}`))
	})
	c := newTestClient(t, handler, nil)

	_, err := c.Login(context.Background(), Credentials{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.Status)
	assert.Equal(t, "something broke", serr.Message)
}

func TestSubmitAssessmentAttachesBearer(t *testing.T) {
	var gotAuth string
	var gotBody AssessmentSubmission
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/submit-assessment", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	})
	c := newTestClient(t, handler, staticTokens{token: "tok-1"})

	err := c.SubmitAssessment(context.Background(), "Hard working")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "Hard working", gotBody.UserType)
}

func TestAuthenticatedCallWithoutToken(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	c := newTestClient(t, handler, staticTokens{err: errors.New("no token")})

	err := c.SubmitAssessment(context.Background(), "Lazy")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called, "unauthenticated requests must fail before sending")
}

func TestUserDetails(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(UserDetails{UserID: "u1", Name: "Alice", Email: "alice@example.com"})
	})
	c := newTestClient(t, handler, staticTokens{token: "tok-1"})

	details, err := c.UserDetails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", details.Name)
}

func TestEventsDecoding(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"e1","title":"Yoga","description":"Morning yoga","date":"2026-09-01T10:00:00.000Z","location":"Gym","capacity":20,"participants":["u1"],"imageUrl":"http://x/y.jpg"}]`))
	})
	c := newTestClient(t, handler, nil)

	events, err := c.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "Yoga", events[0].Title)
	assert.Equal(t, 20, events[0].Capacity)
}

func TestDetectEmotionMultipart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emotion/detect", r.URL.Path)
		require.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "selfie.jpg", header.Filename)

		json.NewEncoder(w).Encode(EmotionResponse{Emotion: "happy", UserID: "u1"})
	})
	c := newTestClient(t, handler, staticTokens{token: "tok-1"})

	resp, err := c.DetectEmotion(context.Background(), "selfie.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "happy", resp.Emotion)
}

func TestDownloadVoucher(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events/e1/voucher", r.URL.Path)
		w.Write(pdf)
	})
	c := newTestClient(t, handler, staticTokens{token: "tok-1"})

	data, err := c.DownloadVoucher(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
}

func TestGenerateStudyPlan(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req StudyPlanRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Normal pace", req.UserType)
		assert.Equal(t, "happy", req.Emotion)

		json.NewEncoder(w).Encode(StudyPlanResponse{
			Plan:   "Day 1: Review notes\n\nDay 2: Practice problems",
			Prompt: "generate a plan",
		})
	})
	c := newTestClient(t, handler, staticTokens{token: "tok-1"})

	plan, err := c.GenerateStudyPlan(context.Background(), StudyPlanRequest{
		UserType: "Normal pace",
		Emotion:  "happy",
		ExamDate: "2026-09-15",
	})
	require.NoError(t, err)
	assert.Contains(t, plan.Plan, "Day 1")
}

func TestDecodeErrorOnMalformedBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})
	c := newTestClient(t, handler, nil)

	_, err := c.Login(context.Background(), Credentials{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	var derr *DecodeError
	assert.ErrorAs(t, err, &derr)
}
