package usecase

import (
	"context"

	"circle/internal/domain/entity"

	"github.com/google/uuid"
)

// CreatePostInput defines the caller-supplied part of a new post.
type CreatePostInput struct {
	Description string
}

// PostUsecase owns posts with their comments and likes.
// Writes are owner-scoped; a post the caller does not own is reported as not found.
type PostUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreatePostInput) (*entity.Post, error)
	Update(ctx context.Context, postID, ownerID uuid.UUID, fields map[string]any) (*entity.Post, error)
	Delete(ctx context.Context, postID, ownerID uuid.UUID) (*entity.Post, error)
	GetByID(ctx context.Context, postID uuid.UUID) (*entity.Post, error)

	// Like and Unlike keep set semantics and are idempotent.
	Like(ctx context.Context, postID, accountID uuid.UUID) (*entity.Post, error)
	Unlike(ctx context.Context, postID, accountID uuid.UUID) (*entity.Post, error)

	AddComment(ctx context.Context, postID, accountID uuid.UUID, text string) (*entity.Post, error)

	SetImage(ctx context.Context, postID, ownerID uuid.UUID, filename string, data []byte) (*entity.Post, error)
	RemoveImage(ctx context.Context, postID, ownerID uuid.UUID) (*entity.Post, error)
	GetImage(ctx context.Context, postID uuid.UUID) (*MediaOutput, error)
}
