package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"community/internal/model"
	"community/internal/service"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

const userContextKey = "user"

// LoadUser resolves the session cookie on every request and stores the
// user, if any, in the request context. Anonymous requests pass through.
func LoadUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				user, _ := authService.CurrentUser(c.Request().Context(), cookie.Value)
				if user != nil {
					c.Set(userContextKey, user)
				}
			}
			return next(c)
		}
	}
}

// RequireUser redirects anonymous requests to the login page.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

// CurrentUser returns the user loaded for this request, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
