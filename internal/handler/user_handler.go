package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"community/internal/middleware"
	"community/internal/render"
	"community/internal/service"
)

// UserHandler serves public profile pages.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile renders a user's public profile and their posts.
func (h *UserHandler) Profile(c echo.Context) error {
	profile, posts, err := h.userService.GetProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, string(render.PageProfile), echo.Map{
		"User":    middleware.CurrentUser(c),
		"Profile": profile,
		"Posts":   posts,
	})
}
