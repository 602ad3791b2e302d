package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"community/internal/auth"
	"community/internal/config"
	"community/internal/db"
	"community/internal/handler"
	"community/internal/render"
	"community/internal/repository"
	"community/internal/router"
	"community/internal/service"
	"community/internal/upload"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if !db.SchemaReady(gormDB) {
		log.Fatalf("database schema missing in %s, run cmd/initdb first", cfg.DBPath)
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	e.Renderer = renderer

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	postService := service.NewPostService(postRepo, uploads)
	commentService := service.NewCommentService(commentRepo)
	userService := service.NewUserService(userRepo, postRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService, commentService)
	userHandler := handler.NewUserHandler(userService)
	searchHandler := handler.NewSearchHandler(postService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		postHandler,
		userHandler,
		searchHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
