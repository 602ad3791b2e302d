package model

// Comment represents a comment on a post.
type Comment struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	PostID  uint   `json:"post_id" gorm:"index;not null"`
	UserID  uint   `json:"user_id" gorm:"index;not null"`
	Body    string `json:"body"`
	Created int64  `json:"created"` // unix timestamp
}
