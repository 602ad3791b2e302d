package model

// User represents a registered forum member.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Password string `json:"-" gorm:"size:255;not null"` // salt:hash encoded, never expose
	Bio      string `json:"bio" gorm:"default:''"`
}
