package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates a missing or rejected bearer credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmailTaken indicates sign-up was rejected because the email is
	// already registered.
	ErrEmailTaken = errors.New("email already in use")
)

// ServerError carries a backend error payload for non-2xx responses.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// DecodeError indicates the backend returned a body that does not match
// the expected response record.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError indicates a request record failed local validation
// before it was sent.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
