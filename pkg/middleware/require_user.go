package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireUser rejects anonymous callers with 401. It must run after
// Identity.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UserID(c) == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "user id required"})
			}
			return next(c)
		}
	}
}
