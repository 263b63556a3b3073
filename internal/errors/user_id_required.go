package errors

import "net/http"

var ErrUserIDRequired = &Exception{
	Message:    "user id is required",
	StatusCode: http.StatusBadRequest,
}
