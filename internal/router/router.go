package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"community/internal/config"
	apperrors "community/internal/errors"
	"community/internal/handler"
	"community/internal/middleware"
	"community/internal/render"
	"community/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	userHandler *handler.UserHandler,
	searchHandler *handler.SearchHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.LoadUser(authService))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.HTTPErrorHandler = newHTTPErrorHandler()

	// Uploads live under the static root by default; a separate upload
	// dir still gets served below /static/uploads. Echo contains both
	// routes within their roots.
	e.Static("/static/uploads", cfg.UploadDir)
	e.Static("/static", cfg.StaticDir)

	e.GET("/", postHandler.Index)

	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	e.GET("/post/new", postHandler.NewPostPage, middleware.RequireUser)
	e.POST("/post/new", postHandler.CreatePost, middleware.RequireUser)
	e.GET("/post/:id", postHandler.ViewPost)
	e.POST("/post/:id", postHandler.AddComment, middleware.RequireUser)
	e.GET("/post/:id/like_comment/:cid", postHandler.LikeComment, middleware.RequireUser)

	e.GET("/user/:username", userHandler.Profile)
	e.GET("/search", searchHandler.Search)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// newHTTPErrorHandler renders domain and framework errors as plain
// error pages.
func newHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		} else {
			mapped := apperrors.MapErrorToHTTP(err)
			status, msg = mapped.StatusCode, mapped.Message
		}

		if status >= http.StatusInternalServerError {
			c.Logger().Error(err)
		}
		if rerr := c.Render(status, string(render.PageError), echo.Map{
			"Status":  status,
			"Message": msg,
		}); rerr != nil {
			c.Logger().Error(rerr)
			_ = c.String(status, msg)
		}
	}
}
