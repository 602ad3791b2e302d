package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"community/internal/auth"
	apperrors "community/internal/errors"
	"community/internal/model"
	"community/internal/repository"
)

// AuthService handles registration, login and session resolution.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register creates a new user with a hashed password. The username is
// trimmed; both fields are required and the username must be unused.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	encoded, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Password: encoded,
		Bio:      "",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and opens a session. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if !auth.VerifyPassword(user.Password, password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	tokenID, token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	if err := s.sessionStore.StoreSession(ctx, tokenID, user.ID, auth.SessionExpiry); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	return token, user, nil
}

// Logout destroys the server-side session. An unparseable token is a
// no-op; the cookie is cleared either way.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	return s.sessionStore.DeleteSession(ctx, claims.ID)
}

// CurrentUser resolves a session token to its user. A missing, invalid
// or revoked token, or a user id that no longer resolves, yields nil.
func (s *authService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, nil
	}
	userID, err := s.sessionStore.GetSession(ctx, claims.ID)
	if err != nil || userID != claims.UserID {
		return nil, nil
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil
	}
	return user, nil
}
