package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"community/internal/auth"
	apperrors "community/internal/errors"
	"community/internal/middleware"
	"community/internal/render"
	"community/internal/service"
)

// AuthHandler serves the register, login and logout pages.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterForm represents the registration form fields.
type RegisterForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginForm represents the login form fields.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, string(render.PageRegister), echo.Map{
		"User": middleware.CurrentUser(c),
	})
}

// Register creates an account and redirects to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return h.registerError(c, apperrors.ErrMissingFields.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), form.Username, form.Password); err != nil {
		switch err {
		case apperrors.ErrMissingFields, apperrors.ErrUsernameTaken:
			return h.registerError(c, err.Error())
		default:
			return err
		}
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) registerError(c echo.Context, msg string) error {
	return c.Render(http.StatusBadRequest, string(render.PageRegister), echo.Map{
		"User":  middleware.CurrentUser(c),
		"Error": msg,
	})
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, string(render.PageLogin), echo.Map{
		"User": middleware.CurrentUser(c),
	})
}

// Login authenticates, sets the session cookie and redirects home. Any
// failure renders the same generic rejection.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return h.loginError(c)
	}

	token, _, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if err == apperrors.ErrInvalidCredentials {
			return h.loginError(c)
		}
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) loginError(c echo.Context) error {
	return c.Render(http.StatusBadRequest, string(render.PageLogin), echo.Map{
		"User":  middleware.CurrentUser(c),
		"Error": apperrors.ErrInvalidCredentials.Error(),
	})
}

// Logout destroys the session, clears the cookie and redirects home.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}
