package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// StatusCode resolves the HTTP status for an error. Wrapped Exceptions keep
// their code; anything else is treated as an internal failure.
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing text for an error, hiding internal detail
// behind a generic message for non-Exception failures.
func Message(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
