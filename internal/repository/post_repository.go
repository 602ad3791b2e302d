package repository

import (
	"context"

	"gorm.io/gorm"

	"community/internal/model"
)

// PostWithAuthor is a post row joined with its author's username.
type PostWithAuthor struct {
	ID       uint
	UserID   uint
	Title    string
	Body     string
	Created  int64
	Image    *string
	Username string
}

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*PostWithAuthor, error)
	Count(ctx context.Context) (int64, error)
	ListPage(ctx context.Context, limit, offset int) ([]PostWithAuthor, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Post, error)
	Search(ctx context.Context, query string, limit int) ([]PostWithAuthor, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*PostWithAuthor, error) {
	var row PostWithAuthor
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.user_id, posts.title, posts.body, posts.created, posts.image, users.username").
		Joins("JOIN users ON posts.user_id = users.id").
		Where("posts.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postRepository) ListPage(ctx context.Context, limit, offset int) ([]PostWithAuthor, error) {
	var rows []PostWithAuthor
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.user_id, posts.title, posts.body, posts.created, posts.image, users.username").
		Joins("JOIN users ON posts.user_id = users.id").
		Order("posts.created DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Search matches posts whose title or body contains the query as a
// substring. Wildcards in the query are deliberately left unescaped, so
// % and _ behave as SQL LIKE wildcards, as in the original forum.
func (r *postRepository) Search(ctx context.Context, query string, limit int) ([]PostWithAuthor, error) {
	pattern := "%" + query + "%"
	var rows []PostWithAuthor
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.user_id, posts.title, posts.body, posts.created, posts.image, users.username").
		Joins("JOIN users ON posts.user_id = users.id").
		Where("posts.title LIKE ? OR posts.body LIKE ?", pattern, pattern).
		Order("posts.created DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
