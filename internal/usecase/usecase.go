// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"circle/internal/domain/entity"
)

// --- Shared Output DTOs ---

// AuthOutput is returned by registration and login. Token is shown to the caller once.
type AuthOutput struct {
	Account *entity.Account
	Token   string
}

// ProfileOutput is a public profile with the account's posts, newest first.
type ProfileOutput struct {
	Account *entity.Account
	Posts   []*entity.Post
}

// MediaOutput is an image blob ready to be served.
type MediaOutput struct {
	Data        []byte
	ContentType string
}
