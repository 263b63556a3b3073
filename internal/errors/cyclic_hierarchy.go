package errors

import "net/http"

var ErrCyclicHierarchy = &Exception{
	Message:    "milestone hierarchy contains a cycle",
	StatusCode: http.StatusInternalServerError,
}
