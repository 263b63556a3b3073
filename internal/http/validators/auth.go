package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "plan-tracker.com/plan-tracker/internal/data_models"
)

const minPasswordLength = 8

func ValidateRegisterRequest(r *dto.RegisterRequest) error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}
	if r.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(r.Password) < minPasswordLength {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	return nil
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if r.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}
