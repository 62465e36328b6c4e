package api

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignUpRequest is the account creation request body.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInResponse is returned by login and google-signin.
type SignInResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}

// User is the backend user record.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Version *int   `json:"__v,omitempty"`
}

// ErrorResponse is the backend's error payload.
type ErrorResponse struct {
	Message    string `json:"message"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// ForgotPasswordResponse acknowledges a reset-code email.
type ForgotPasswordResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// UserIDResponse resolves an email to a user ID.
type UserIDResponse struct {
	UserID string `json:"userId"`
}

// UserDetails is the authenticated profile lookup response.
type UserDetails struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ProfileUpdate is the edit-profile request body. Image is a base64-encoded
// JPEG, empty to leave the avatar unchanged.
type ProfileUpdate struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Image string `json:"image"`
}

// AssessmentSubmission records a finished mood assessment upstream.
type AssessmentSubmission struct {
	UserType string `json:"userType" validate:"required"`
}

// EmotionResponse is the photo-based emotion detection result.
type EmotionResponse struct {
	Emotion string `json:"emotion"`
	UserID  string `json:"userId"`
}

// EmotionStats aggregates detected emotions per day.
type EmotionStats struct {
	EmotionsByDate map[string]map[string]int `json:"emotionsByDate"`
	TotalEmotions  int                       `json:"totalEmotions"`
	DateRange      DateRange                 `json:"dateRange"`
}

// DateRange bounds an EmotionStats window.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Event is a campus event. Dates stay as backend-formatted strings.
type Event struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Date         string   `json:"date"`
	Location     string   `json:"location"`
	Capacity     int      `json:"capacity"`
	Participants []string `json:"participants"`
	ImageURL     string   `json:"imageUrl"`
	UpdatedAt    *string  `json:"updatedAt,omitempty"`
	CreatedAt    *string  `json:"createdAt,omitempty"`
}

// QuoteResponse is the daily motivational quote.
type QuoteResponse struct {
	Quote     string `json:"quote"`
	Mood      string `json:"mood"`
	CreatedAt string `json:"createdAt"`
}

// RecommendationsResponse lists mood-matched events.
type RecommendationsResponse struct {
	Recommendations []Event `json:"recommendations"`
	Mood            string  `json:"mood"`
	CreatedAt       string  `json:"createdAt"`
}

// StudyPlanRequest asks the backend to generate a plan for the user's
// classification, current mood and exam date.
type StudyPlanRequest struct {
	UserType string `json:"userType" validate:"required"`
	Emotion  string `json:"emotion" validate:"required"`
	ExamDate string `json:"examDate" validate:"required"`
}

// StudyPlanResponse carries the generated plan text and the prompt that
// produced it.
type StudyPlanResponse struct {
	Plan   string `json:"plan"`
	Prompt string `json:"prompt"`
}
