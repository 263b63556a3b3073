package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"plan-tracker.com/plan-tracker/internal/auth"
)

const UserIDKey = "userID"

// JWTAuth validates the bearer token and stashes the user id on the request
// context for handlers to read via middleware.UserID(c).
func JWTAuth(secretKey []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := auth.GetUserIDFromToken(token, secretKey)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}
