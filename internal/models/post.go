package models

import (
	"time"
)

// Post is a user post with its likes and comments. Name and avatar are
// denormalized from the author at creation time and not kept in sync with
// later profile edits.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Likes     []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// Like marks that a user liked a post. The unique (user_id, post_id) index
// enforces at most one like per user per post at the store level.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Comment is a single comment on a post, with the commenter's name and avatar
// denormalized at comment time.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	UserID    uint      `gorm:"index;not null" json:"user"`
	PostID    uint      `gorm:"index;not null" json:"-"`
	CreatedAt time.Time `json:"date"`
}
