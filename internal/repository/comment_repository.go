package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"community/internal/model"
)

// CommentWithAuthor is a comment row joined with its author's username
// and the number of likes it has received.
type CommentWithAuthor struct {
	ID        uint
	PostID    uint
	UserID    uint
	Body      string
	Created   int64
	Username  string
	LikeCount int64
}

// CommentRepository defines comment and comment-like persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]CommentWithAuthor, error)
	HasLike(ctx context.Context, commentID, userID uint) (bool, error)
	CreateLike(ctx context.Context, like *model.CommentLike) error
	CountLikes(ctx context.Context, commentID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository builds a GORM-backed repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]CommentWithAuthor, error) {
	var rows []CommentWithAuthor
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.post_id, comments.user_id, comments.body, comments.created, users.username, " +
			"(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS like_count").
		Joins("JOIN users ON comments.user_id = users.id").
		Where("comments.post_id = ?", postID).
		Order("comments.created ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *commentRepository) HasLike(ctx context.Context, commentID, userID uint) (bool, error) {
	var like model.CommentLike
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Take(&like).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (r *commentRepository) CreateLike(ctx context.Context, like *model.CommentLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *commentRepository) CountLikes(ctx context.Context, commentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
