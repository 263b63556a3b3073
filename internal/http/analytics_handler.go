package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	middleware "plan-tracker.com/plan-tracker/internal/http/middlewares"
)

const (
	defaultTrendDays = 30
	defaultFeedLimit = 10
)

func (h *Handler) DashboardStats(c echo.Context) error {
	stats, err := h.analyticsService.DashboardStats(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) CompletionTrends(c echo.Context) error {
	days, err := queryInt(c, "days", defaultTrendDays)
	if err != nil {
		return err
	}

	trends, err := h.analyticsService.CompletionTrends(c.Request().Context(), middleware.UserID(c), days)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, trends)
}

func (h *Handler) StatusDistribution(c echo.Context) error {
	distribution, err := h.analyticsService.StatusDistribution(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, distribution)
}

func (h *Handler) ActivityFeed(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultFeedLimit)
	if err != nil {
		return err
	}

	feed, err := h.analyticsService.ActivityFeed(c.Request().Context(), middleware.UserID(c), limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, feed)
}

func queryInt(c echo.Context, name string, defaultVal int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultVal, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return value, nil
}
