package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "community/internal/errors"
	"community/internal/middleware"
	"community/internal/render"
	"community/internal/service"
)

// PostHandler serves the listing, post creation, post detail, comment
// and like pages.
type PostHandler struct {
	postService    service.PostService
	commentService service.CommentService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService, commentService service.CommentService) *PostHandler {
	return &PostHandler{postService: postService, commentService: commentService}
}

// PostForm represents the new-post form fields. Nothing is required;
// overlong titles are truncated, not rejected.
type PostForm struct {
	Title string `form:"title"`
	Body  string `form:"body"`
}

// CommentForm represents the comment form fields.
type CommentForm struct {
	Comment string `form:"comment"`
}

// Index renders the paginated post listing.
func (h *PostHandler) Index(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			page = parsed
		}
	}

	posts, totalPages, err := h.postService.ListPage(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, string(render.PageIndex), echo.Map{
		"User":       middleware.CurrentUser(c),
		"Posts":      posts,
		"Page":       page,
		"TotalPages": totalPages,
	})
}

// NewPostPage renders the post creation form.
func (h *PostHandler) NewPostPage(c echo.Context) error {
	return c.Render(http.StatusOK, string(render.PagePostNew), echo.Map{
		"User": middleware.CurrentUser(c),
	})
}

// CreatePost stores a new post with an optional image and redirects home.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var form PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	var image *multipart.FileHeader
	if fh, err := c.FormFile("image"); err == nil {
		image = fh
	}

	if _, err := h.postService.Create(c.Request().Context(), user.ID, form.Title, form.Body, image); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// ViewPost renders a post with its comments and like counts.
func (h *PostHandler) ViewPost(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListForPost(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, string(render.PagePostView), echo.Map{
		"User":     middleware.CurrentUser(c),
		"Post":     post,
		"Comments": comments,
	})
}

// AddComment stores a comment and redirects back to the post.
func (h *PostHandler) AddComment(c echo.Context) error {
	user := middleware.CurrentUser(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}
	if _, err := h.postService.Get(c.Request().Context(), id); err != nil {
		return err
	}

	var form CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	if _, err := h.commentService.Add(c.Request().Context(), id, user.ID, form.Comment); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

// LikeComment records a like, once, and redirects back to the post.
func (h *PostHandler) LikeComment(c echo.Context) error {
	user := middleware.CurrentUser(c)

	postID, err := parseID(c.Param("id"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}
	commentID, err := parseID(c.Param("cid"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}

	if err := h.commentService.Like(c.Request().Context(), commentID, user.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", postID))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
