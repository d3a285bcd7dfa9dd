package usecase

import (
	"context"

	"circle/internal/domain/entity"

	"github.com/google/uuid"
)

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// SessionUsecase manages the active-token set of each account.
type SessionUsecase interface {
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// IssueToken signs a token for the account and adds it to the active set.
	IssueToken(ctx context.Context, accountID uuid.UUID) (string, error)

	// ValidateToken resolves a token to its account. The token must still be in the active set.
	ValidateToken(ctx context.Context, token string) (*entity.Account, error)

	// RevokeOne removes exactly the given token. Revoking an absent token succeeds.
	RevokeOne(ctx context.Context, accountID uuid.UUID, token string) error

	// RevokeAll clears the active set.
	RevokeAll(ctx context.Context, accountID uuid.UUID) error

	ListSessions(ctx context.Context, accountID uuid.UUID) ([]*entity.Session, error)
}
