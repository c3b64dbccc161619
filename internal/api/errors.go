package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels matched by *Error through errors.Is.
var (
	// ErrUnauthorized is a 401: the token is missing, expired or revoked.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is a 403: the signed-in role may not do this.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is a 404.
	ErrNotFound = errors.New("not found")
	// ErrValidation is a 422 rejection of the request body.
	ErrValidation = errors.New("validation failed")
	// ErrNetwork is a request that never produced a usable response.
	ErrNetwork = errors.New("network error")
)

const networkErrorMessage = "network error occurred"

// Error is a failed API call. Status is the HTTP status, or 0 when the
// request failed before a usable response arrived. Data is the decoded
// error body, if any.
type Error struct {
	Status  int
	Message string
	Data    any
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets callers test for the sentinels above.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrValidation:
		return e.Status == http.StatusUnprocessableEntity
	case ErrNetwork:
		return e.Status == 0
	}
	return false
}

func networkError(err error) *Error {
	return &Error{Message: networkErrorMessage, Err: err}
}
