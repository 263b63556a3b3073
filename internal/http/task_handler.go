package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "plan-tracker.com/plan-tracker/internal/data_models"
	middleware "plan-tracker.com/plan-tracker/internal/http/middlewares"
	"plan-tracker.com/plan-tracker/internal/http/validators"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), middleware.UserID(c), req.Title, req.Description)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "task deleted"})
}

func (h *Handler) GenerateShareLink(c echo.Context) error {
	result, err := h.taskService.GenerateShareLink(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) UpdateShareLink(c echo.Context) error {
	var req dto.UpdateShareLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.taskService.UpdateShareLink(c.Request().Context(), c.Param("id"), middleware.UserID(c), req.RegenerateLink)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteShareLink(c echo.Context) error {
	result, err := h.taskService.DeleteShareLink(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetSharedTask(c echo.Context) error {
	task, err := h.taskService.GetByShareableLink(c.Request().Context(), c.Param("link"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CloneTask(c echo.Context) error {
	task, err := h.taskService.CloneTask(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}
