package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "community/internal/errors"
	"community/internal/model"
	"community/internal/repository"
	"community/internal/upload"
)

const (
	// PageSize is the number of posts per listing page.
	PageSize = 5
	// maxTitleLen is the length posts titles are truncated to, not
	// rejected at.
	maxTitleLen = 200
	// searchLimit caps search results.
	searchLimit = 50
)

// PostService handles post listing, creation, lookup and search.
type PostService interface {
	ListPage(ctx context.Context, page int) (posts []repository.PostWithAuthor, totalPages int, err error)
	Create(ctx context.Context, userID uint, title, body string, image *multipart.FileHeader) (*model.Post, error)
	Get(ctx context.Context, id uint) (*repository.PostWithAuthor, error)
	Search(ctx context.Context, query string) ([]repository.PostWithAuthor, error)
}

type postService struct {
	postRepo repository.PostRepository
	uploads  *upload.Store
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, uploads *upload.Store) PostService {
	return &postService{postRepo: postRepo, uploads: uploads}
}

// ListPage returns one page of posts, newest first, and the total page
// count. Pages past the end are not clamped; they return an empty slice.
func (s *postService) ListPage(ctx context.Context, page int) ([]repository.PostWithAuthor, int, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	totalPages := int((total + PageSize - 1) / PageSize)

	offset := (page - 1) * PageSize
	posts, err := s.postRepo.ListPage(ctx, PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, totalPages, nil
}

// Create stores a new post. Overlong titles are truncated rather than
// rejected; an image with a disallowed extension is dropped silently and
// the post is saved without one.
func (s *postService) Create(ctx context.Context, userID uint, title, body string, image *multipart.FileHeader) (*model.Post, error) {
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen])
	}

	post := &model.Post{
		UserID:  userID,
		Title:   title,
		Body:    body,
		Created: time.Now().Unix(),
	}

	if image != nil {
		name, ok, err := s.uploads.Save(image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		if ok {
			post.Image = &name
		}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Get returns a post with its author username.
func (s *postService) Get(ctx context.Context, id uint) (*repository.PostWithAuthor, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

// Search returns up to 50 posts containing the query in title or body,
// newest first. An empty query returns an empty result without touching
// storage.
func (s *postService) Search(ctx context.Context, query string) ([]repository.PostWithAuthor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []repository.PostWithAuthor{}, nil
	}
	posts, err := s.postRepo.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return posts, nil
}
