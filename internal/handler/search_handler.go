package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"community/internal/middleware"
	"community/internal/render"
	"community/internal/service"
)

// SearchHandler serves the substring search page.
type SearchHandler struct {
	postService service.PostService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(postService service.PostService) *SearchHandler {
	return &SearchHandler{postService: postService}
}

// Search renders matches for ?q=; an empty query renders an empty page.
func (h *SearchHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))

	results, err := h.postService.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, string(render.PageSearch), echo.Map{
		"User":    middleware.CurrentUser(c),
		"Query":   query,
		"Results": results,
	})
}
