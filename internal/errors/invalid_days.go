package errors

import "net/http"

var ErrInvalidDays = &Exception{
	Message:    "days must be between 1 and 365",
	StatusCode: http.StatusBadRequest,
}
