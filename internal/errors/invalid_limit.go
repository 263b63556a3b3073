package errors

import "net/http"

var ErrInvalidLimit = &Exception{
	Message:    "limit must be between 1 and 50",
	StatusCode: http.StatusBadRequest,
}
