package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  string    `gorm:"not null;index" json:"category"`
	Tags      []string  `gorm:"serializer:json" json:"tags"`
	Likes     int       `gorm:"default:0" json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Derived per requesting user, never persisted
	IsLiked bool `gorm:"-" json:"isLiked"`
}

// PostLike records one like per (user, post). The Likes counter on Post is
// kept in step inside the same transaction as the relation row.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_post_like" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_user_post_like" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
