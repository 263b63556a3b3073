package errors

import "net/http"

var ErrTaskNotShared = &Exception{
	Message:    "task is not currently shared",
	StatusCode: http.StatusConflict,
}
