package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"plan-tracker.com/plan-tracker/internal/auth"
	config "plan-tracker.com/plan-tracker/internal/configs"
	httpapi "plan-tracker.com/plan-tracker/internal/http"
	repository "plan-tracker.com/plan-tracker/internal/repositories"
	"plan-tracker.com/plan-tracker/internal/services"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long:  "Starts the plan tracker HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {

		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		database := config.NewDatabase(cfg.DatabaseDSN)

		userRepo := repository.NewUserRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		milestoneRepo := repository.NewMilestoneRepository(database)

		tokenStore := auth.NewRedisTokenStore(redisClient, cfg.RefreshTokenKeyPrefix)

		userService := services.NewUserService(
			userRepo,
			tokenStore,
			[]byte(cfg.JWTSecret),
			cfg.AccessTokenValidity,
			cfg.RefreshTokenValidity,
		)
		taskService := services.NewTaskService(taskRepo)
		milestoneService := services.NewMilestoneService(taskRepo, milestoneRepo)
		analyticsService := services.NewAnalyticsService(taskRepo)

		e := echo.New()

		handler := httpapi.NewHandler(userService, taskService, milestoneService, analyticsService)
		httpapi.Register(e, handler, httpapi.RouteConfig{
			JWTSecret:          []byte(cfg.JWTSecret),
			RateLimitPerMinute: cfg.RateLimit,
			SharedRateLimit:    cfg.SharedLinkRateLimit,
			Redis:              redisClient,
			SharedRateKey:      cfg.SharedLinkRateKey,
		})

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
