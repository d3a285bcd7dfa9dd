// Package model holds the GORM persistence models. Schema is owned by the goose migrations.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table.
type AccountModel struct {
	ID           uuid.UUID `gorm:"primaryKey"`
	Username     string
	Email        string
	PasswordHash string
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// SessionModel mirrors the 'session_tokens' table.
type SessionModel struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	AccountID uuid.UUID
	TokenHash string
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "session_tokens"
}

// FollowEdgeModel mirrors the 'follow_edges' table. One row is both sides of the edge.
type FollowEdgeModel struct {
	FollowerID uuid.UUID `gorm:"primaryKey"`
	FolloweeID uuid.UUID `gorm:"primaryKey"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (FollowEdgeModel) TableName() string {
	return "follow_edges"
}
