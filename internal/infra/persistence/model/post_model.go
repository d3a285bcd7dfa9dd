package model

import (
	"time"

	"github.com/google/uuid"
)

// PostModel mirrors the 'posts' table.
type PostModel struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	OwnerID     uuid.UUID
	Description string
	ImageKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Comments []CommentModel `gorm:"foreignKey:PostID"`
	Likes    []LikeModel    `gorm:"foreignKey:PostID"`
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}

// CommentModel mirrors the 'post_comments' table.
type CommentModel struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	PostID    uuid.UUID
	OwnerID   uuid.UUID
	Text      string
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "post_comments"
}

// LikeModel mirrors the 'post_likes' table.
type LikeModel struct {
	PostID    uuid.UUID `gorm:"primaryKey"`
	AccountID uuid.UUID `gorm:"primaryKey"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LikeModel) TableName() string {
	return "post_likes"
}
