package usecase

import (
	"context"

	"circle/internal/domain/entity"

	"github.com/google/uuid"
)

// FeedUsecase assembles post lists by walking the follow graph.
type FeedUsecase interface {
	// Feed returns posts of every followed account, newest first.
	Feed(ctx context.Context, accountID uuid.UUID) ([]*entity.Post, error)

	// OwnPosts returns the caller's posts, newest first.
	OwnPosts(ctx context.Context, accountID uuid.UUID) ([]*entity.Post, error)
}
