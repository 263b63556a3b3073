package validators

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"plan-tracker.com/plan-tracker/internal/constants"
	dto "plan-tracker.com/plan-tracker/internal/data_models"
	"plan-tracker.com/plan-tracker/internal/services"
)

// Unknown statuses are rejected here, at the boundary, so the aggregation
// code downstream only ever sees the closed enum.

func ValidateCreateMilestoneRequest(r *dto.CreateMilestoneRequest) (services.CreateMilestoneParams, error) {
	var params services.CreateMilestoneParams

	if r.Title == "" {
		return params, echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	params.Title = r.Title
	params.Description = r.Description
	params.ParentID = r.ParentID

	if r.Status != "" {
		status, err := constants.ParseMilestoneStatus(r.Status)
		if err != nil {
			return params, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		params.Status = status
	}

	deadline, err := parseDeadline(r.Deadline)
	if err != nil {
		return params, err
	}
	params.Deadline = deadline

	return params, nil
}

func ValidateUpdateMilestoneRequest(r *dto.UpdateMilestoneRequest) (services.UpdateMilestoneParams, error) {
	var params services.UpdateMilestoneParams

	if r.Title != nil && *r.Title == "" {
		return params, echo.NewHTTPError(http.StatusBadRequest, "title must not be empty")
	}
	params.Title = r.Title
	params.Description = r.Description
	params.ParentID = r.ParentID

	if r.Status != nil {
		status, err := constants.ParseMilestoneStatus(*r.Status)
		if err != nil {
			return params, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		params.Status = &status
	}

	deadline, err := parseDeadline(r.Deadline)
	if err != nil {
		return params, err
	}
	params.Deadline = deadline

	return params, nil
}

func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	deadline, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "deadline must be an RFC 3339 timestamp")
	}
	return &deadline, nil
}
