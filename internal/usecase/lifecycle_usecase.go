package usecase

import (
	"context"

	"github.com/google/uuid"
)

// LifecycleUsecase coordinates account removal across aggregates.
type LifecycleUsecase interface {
	// DeleteAccount removes the account with its posts, its comments and likes everywhere,
	// its follow edges and its sessions in one transaction.
	DeleteAccount(ctx context.Context, accountID uuid.UUID) error
}
