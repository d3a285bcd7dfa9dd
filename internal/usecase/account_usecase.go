package usecase

import (
	"context"

	"circle/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AccountUsecase covers account identity, credentials and the profile image.
type AccountUsecase interface {
	// Register creates the account and issues its first session token.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Authenticate checks email and password and fails uniformly on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*entity.Account, error)

	// ChangeCredential applies username, email and password changes; other keys are rejected.
	ChangeCredential(ctx context.Context, accountID uuid.UUID, fields map[string]any) (*entity.Account, error)

	// GetProfile returns the public profile and owned posts.
	GetProfile(ctx context.Context, accountID uuid.UUID) (*ProfileOutput, error)

	// Search matches usernames case-insensitively and leaves out the caller.
	Search(ctx context.Context, callerID uuid.UUID, query string) ([]*entity.Account, error)

	SetAvatar(ctx context.Context, accountID uuid.UUID, filename string, data []byte) error
	RemoveAvatar(ctx context.Context, accountID uuid.UUID) error
	GetAvatar(ctx context.Context, accountID uuid.UUID) (*MediaOutput, error)
}
