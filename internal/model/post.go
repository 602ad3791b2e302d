package model

// Post represents a forum post. Posts are never edited or deleted.
type Post struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	UserID  uint    `json:"user_id" gorm:"index;not null"`
	Title   string  `json:"title" gorm:"size:200"`
	Body    string  `json:"body"`
	Created int64   `json:"created" gorm:"index"` // unix timestamp
	Image   *string `json:"image"`                // uploaded filename, nil when absent
}
