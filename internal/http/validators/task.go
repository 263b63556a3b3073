package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "plan-tracker.com/plan-tracker/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	return nil
}
