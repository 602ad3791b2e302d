package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingFields is returned when a required form field is empty.
	ErrMissingFields = errors.New("missing fields")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username exists")
	// ErrInvalidCredentials is returned for any failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPostNotFound is returned when a post id does not resolve.
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound is returned when a username does not resolve.
	ErrUserNotFound = errors.New("user not found")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors rendered as plain
// error pages. Messages stay generic; there are no structured codes.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "not found")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
