package model

// CommentLike marks that a user liked a comment. At most one row exists
// per (comment, user) pair; the repository checks before inserting rather
// than relying on a uniqueness constraint.
type CommentLike struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CommentID uint `json:"comment_id" gorm:"index;not null"`
	UserID    uint `json:"user_id" gorm:"index;not null"`
}
