package service

import (
	"context"
	"fmt"
	"time"

	"community/internal/model"
	"community/internal/repository"
)

// CommentService handles comments and comment likes.
type CommentService interface {
	Add(ctx context.Context, postID, userID uint, body string) (*model.Comment, error)
	ListForPost(ctx context.Context, postID uint) ([]repository.CommentWithAuthor, error)
	Like(ctx context.Context, commentID, userID uint) error
	CountLikes(ctx context.Context, commentID uint) (int64, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

// Add stores a new comment on a post.
func (s *commentService) Add(ctx context.Context, postID, userID uint, body string) (*model.Comment, error) {
	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Body:    body,
		Created: time.Now().Unix(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListForPost returns a post's comments oldest first, with author
// usernames and like counts.
func (s *commentService) ListForPost(ctx context.Context, postID uint) ([]repository.CommentWithAuthor, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Like records a like, once. Liking an already-liked comment is a no-op.
// The check-then-insert pair is not atomic; two racing likes by the same
// user could both pass the check. Accepted at this scale.
func (s *commentService) Like(ctx context.Context, commentID, userID uint) error {
	exists, err := s.commentRepo.HasLike(ctx, commentID, userID)
	if err != nil {
		return fmt.Errorf("check like: %w", err)
	}
	if exists {
		return nil
	}
	like := &model.CommentLike{CommentID: commentID, UserID: userID}
	if err := s.commentRepo.CreateLike(ctx, like); err != nil {
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

// CountLikes returns the number of likes on a comment.
func (s *commentService) CountLikes(ctx context.Context, commentID uint) (int64, error) {
	return s.commentRepo.CountLikes(ctx, commentID)
}
