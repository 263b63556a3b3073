package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"

	middleware "plan-tracker.com/plan-tracker/internal/http/middlewares"
)

type RouteConfig struct {
	JWTSecret          []byte
	RateLimitPerMinute int
	SharedRateLimit    int
	Redis              rueidis.Client
	SharedRateKey      string
}

func Register(e *echo.Echo, h *Handler, cfg RouteConfig) {
	e.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/refresh", h.Refresh)

	// Public share lookup gets its own, tighter Redis-backed limiter since it
	// requires no authentication.
	e.GET("/tasks/shared/:link", h.GetSharedTask,
		middleware.RedisRateLimiter(cfg.Redis, cfg.SharedRateKey, cfg.SharedRateLimit, time.Minute))

	authed := e.Group("", middleware.JWTAuth(cfg.JWTSecret))

	authed.POST("/auth/logout", h.Logout)

	authed.POST("/tasks", h.CreateTask)
	authed.GET("/tasks", h.ListTasks)
	authed.GET("/tasks/:id", h.GetTask)
	authed.PUT("/tasks/:id", h.UpdateTask)
	authed.DELETE("/tasks/:id", h.DeleteTask)

	authed.POST("/tasks/:id/share", h.GenerateShareLink)
	authed.PUT("/tasks/:id/share", h.UpdateShareLink)
	authed.DELETE("/tasks/:id/share", h.DeleteShareLink)
	authed.POST("/tasks/shared/:id/clone", h.CloneTask)

	authed.POST("/tasks/:id/milestones", h.CreateMilestone)
	authed.PUT("/milestones/:id", h.UpdateMilestone)
	authed.DELETE("/milestones/:id", h.DeleteMilestone)

	authed.GET("/analytics/dashboard", h.DashboardStats)
	authed.GET("/analytics/trends", h.CompletionTrends)
	authed.GET("/analytics/status-distribution", h.StatusDistribution)
	authed.GET("/analytics/activity", h.ActivityFeed)
}
