package errors

import "net/http"

var ErrMilestoneNotFound = &Exception{
	Message:    "milestone not found",
	StatusCode: http.StatusNotFound,
}
