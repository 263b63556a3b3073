package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
)

// RedisRateLimiter is a fixed-window per-IP limiter backed by Redis, used on
// the unauthenticated shared-link route where abuse is cheapest. The counter
// key expires with the window; a Redis failure lets the request through
// rather than taking the public endpoint down.
func RedisRateLimiter(client rueidis.Client, keyPrefix string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := keyPrefix + ":" + c.RealIP()

			count, err := client.Do(ctx, client.B().Incr().Key(key).Build()).AsInt64()
			if err != nil {
				return next(c)
			}

			if count == 1 {
				_ = client.Do(ctx, client.B().Expire().Key(key).Seconds(int64(window.Seconds())).Build()).Error()
			}

			if count > int64(limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
