package main

import (
	"context"
	"log"

	"community/internal/auth"
	"community/internal/config"
	"community/internal/db"
	apperrors "community/internal/errors"
	"community/internal/repository"
	"community/internal/service"
	"community/internal/upload"
)

// Demo-content seeder: a couple of users, posts and comments so a fresh
// install has something on the front page.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if !db.SchemaReady(gormDB) {
		log.Fatalf("database schema missing in %s, run cmd/initdb first", cfg.DBPath)
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload dir: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	postService := service.NewPostService(postRepo, uploads)
	commentService := service.NewCommentService(commentRepo)

	ctx := context.Background()

	seedUsers := []struct {
		username string
		password string
	}{
		{"alice", "alice-password"},
		{"bob", "bob-password"},
	}
	for _, su := range seedUsers {
		if _, err := authService.Register(ctx, su.username, su.password); err != nil {
			if err == apperrors.ErrUsernameTaken {
				log.Printf("user %s already exists, skipping", su.username)
				continue
			}
			log.Fatalf("Failed to seed user %s: %v", su.username, err)
		}
		log.Printf("created user %s", su.username)
	}

	alice, err := userRepo.FindByUsername(ctx, "alice")
	if err != nil {
		log.Fatalf("Failed to load seeded user: %v", err)
	}
	bob, err := userRepo.FindByUsername(ctx, "bob")
	if err != nil {
		log.Fatalf("Failed to load seeded user: %v", err)
	}

	welcome, err := postService.Create(ctx, alice.ID, "Welcome to the forum", "Introduce yourself below.", nil)
	if err != nil {
		log.Fatalf("Failed to seed post: %v", err)
	}
	if _, err := postService.Create(ctx, bob.ID, "Forum tips", "Use the search box to find older posts.", nil); err != nil {
		log.Fatalf("Failed to seed post: %v", err)
	}

	comment, err := commentService.Add(ctx, welcome.ID, bob.ID, "Hi, I'm Bob.")
	if err != nil {
		log.Fatalf("Failed to seed comment: %v", err)
	}
	if err := commentService.Like(ctx, comment.ID, alice.ID); err != nil {
		log.Fatalf("Failed to seed like: %v", err)
	}

	log.Println("Seed completed")
}
