package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "community/internal/errors"
	"community/internal/model"
	"community/internal/repository"
)

// UserService exposes public profile lookups.
type UserService interface {
	GetProfile(ctx context.Context, username string) (*model.User, []model.Post, error)
}

type userService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) UserService {
	return &userService{userRepo: userRepo, postRepo: postRepo}
}

// GetProfile returns a user and their posts, newest first.
func (s *userService) GetProfile(ctx context.Context, username string) (*model.User, []model.Post, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	posts, err := s.postRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list user posts: %w", err)
	}
	return user, posts, nil
}
