package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "plan-tracker.com/plan-tracker/internal/data_models"
	middleware "plan-tracker.com/plan-tracker/internal/http/middlewares"
	"plan-tracker.com/plan-tracker/internal/http/validators"
)

func (h *Handler) CreateMilestone(c echo.Context) error {
	var req dto.CreateMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	params, err := validators.ValidateCreateMilestoneRequest(&req)
	if err != nil {
		return err
	}

	milestone, err := h.milestoneService.CreateMilestone(c.Request().Context(), middleware.UserID(c), c.Param("id"), params)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, milestone)
}

func (h *Handler) UpdateMilestone(c echo.Context) error {
	var req dto.UpdateMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	params, err := validators.ValidateUpdateMilestoneRequest(&req)
	if err != nil {
		return err
	}

	milestone, err := h.milestoneService.UpdateMilestone(c.Request().Context(), middleware.UserID(c), c.Param("id"), params)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, milestone)
}

func (h *Handler) DeleteMilestone(c echo.Context) error {
	if err := h.milestoneService.DeleteMilestone(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "milestone deleted"})
}
