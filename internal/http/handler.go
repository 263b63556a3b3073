package http

import (
	"github.com/labstack/echo/v4"

	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	"plan-tracker.com/plan-tracker/internal/services"
)

type Handler struct {
	userService      *services.UserService
	taskService      *services.TaskService
	milestoneService *services.MilestoneService
	analyticsService *services.AnalyticsService
}

func NewHandler(
	userService *services.UserService,
	taskService *services.TaskService,
	milestoneService *services.MilestoneService,
	analyticsService *services.AnalyticsService,
) *Handler {
	return &Handler{
		userService:      userService,
		taskService:      taskService,
		milestoneService: milestoneService,
		analyticsService: analyticsService,
	}
}

// httpError maps a service error to its HTTP shape via the Exception type.
func httpError(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), apperrors.Message(err))
}
