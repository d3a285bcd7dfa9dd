package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one entry of an account's active-token set.
// Only the SHA-256 digest of the issued token is kept.
type Session struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	CreatedAt time.Time
}
