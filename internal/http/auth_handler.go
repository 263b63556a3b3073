package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "plan-tracker.com/plan-tracker/internal/data_models"
	"plan-tracker.com/plan-tracker/internal/http/validators"
)

func (h *Handler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	user, err := h.userService.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	pair, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (h *Handler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
	}

	pair, err := h.userService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, pair)
}

func (h *Handler) Logout(c echo.Context) error {
	var req dto.LogoutRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
	}

	if err := h.userService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}
