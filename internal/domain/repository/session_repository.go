package repository

import (
	"context"

	"circle/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionRepository manages the active-token set of an account.
type SessionRepository interface {
	// Create appends a session to the account's set.
	Create(ctx context.Context, session *entity.Session) error

	// Exists reports whether the digest is in the account's set.
	Exists(ctx context.Context, accountID uuid.UUID, tokenHash string) (bool, error)

	// DeleteByHash removes exactly one session. Missing sessions are not an error.
	DeleteByHash(ctx context.Context, accountID uuid.UUID, tokenHash string) error

	// DeleteByAccount clears the account's whole set.
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error

	// ListByAccount returns the set ordered by issue time.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Session, error)
}
