package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	userKey    = "uid"
	userCookie = "MUSAFIR_UID"
	userHeader = "X-User-Id"
)

// Identity picks the caller's user id from the X-User-Id header, the
// MUSAFIR_UID cookie or a ?uid= query (which also sets the cookie). There
// is no verification: callers without an id are anonymous.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(userHeader)
			if raw == "" {
				if ck, err := c.Cookie(userCookie); err == nil {
					raw = ck.Value
				}
			}
			if raw == "" {
				if q := c.QueryParam("uid"); q != "" {
					raw = q
					c.SetCookie(&http.Cookie{Name: userCookie, Value: q, Path: "/"})
				}
			}
			if id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64); err == nil && id > 0 {
				uid := uint(id)
				c.Set(userKey, &uid)
			}
			return next(c)
		}
	}
}

// UserID returns the id set by Identity, nil for anonymous callers.
func UserID(c echo.Context) *uint {
	uid, _ := c.Get(userKey).(*uint)
	return uid
}

// SetUser remembers id for later requests of this client.
func SetUser(c echo.Context, id uint) {
	c.SetCookie(&http.Cookie{Name: userCookie, Value: strconv.FormatUint(uint64(id), 10), Path: "/", HttpOnly: true})
	c.Set(userKey, &id)
}

func ClearUser(c echo.Context) {
	c.SetCookie(&http.Cookie{Name: userCookie, Value: "", Path: "/", MaxAge: -1})
	c.Set(userKey, nil)
}
