package model

import "time"

// User represents a registered author/reader in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:254;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsBlocked    bool      `json:"-" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Recipes []Recipe `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// Subscription is a directed follower -> author relationship.
// A user follows an author at most once; self-follows are rejected
// by the subscription service before any insert.
type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_subscription_pair"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index;uniqueIndex:idx_subscription_pair"`
	CreatedAt time.Time `json:"created_at"`

	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
