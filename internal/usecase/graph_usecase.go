package usecase

import (
	"context"

	"github.com/google/uuid"
)

// GraphUsecase maintains follow edges. Both sides of an edge change together.
type GraphUsecase interface {
	// Follow is idempotent; the target must exist.
	Follow(ctx context.Context, selfID, targetID uuid.UUID) error

	// Unfollow succeeds when no edge exists.
	Unfollow(ctx context.Context, selfID, targetID uuid.UUID) error

	// FollowQRCode renders a PNG that lets others follow accountID.
	FollowQRCode(ctx context.Context, accountID uuid.UUID) ([]byte, error)

	// FollowByQRCode follows the account encoded in a scanned payload.
	FollowByQRCode(ctx context.Context, selfID uuid.UUID, payload string) error
}
