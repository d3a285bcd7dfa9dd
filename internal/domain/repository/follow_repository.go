package repository

import (
	"context"

	"github.com/google/uuid"
)

// FollowRepository stores follow edges. One row holds both the follows and the followers side.
type FollowRepository interface {
	// Create inserts the edge follower -> followee and reports whether a new row was written.
	Create(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	// Delete removes the edge if present.
	Delete(ctx context.Context, followerID, followeeID uuid.UUID) error

	// FindFollowees lists the accounts followerID follows.
	FindFollowees(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)

	// FindFollowers lists the accounts following followeeID.
	FindFollowers(ctx context.Context, followeeID uuid.UUID) ([]uuid.UUID, error)

	// DeleteByAccount removes every edge where the account is either side.
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}
