// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"circle/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateEmail is returned when an insert or update collides with an existing email.
	ErrDuplicateEmail = errors.New("email already exists")
)

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	// Create persists a new account.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID loads an account together with its follows, followers and post ids.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail loads an account by its normalised email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Update writes username, email, password hash and avatar key.
	Update(ctx context.Context, account *entity.Account) error

	// SearchByUsername returns accounts whose username contains query, ignoring case.
	SearchByUsername(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]*entity.Account, error)

	// Delete removes the account row only.
	Delete(ctx context.Context, id uuid.UUID) error
}
