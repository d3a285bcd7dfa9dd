package repository

import (
	"context"
	"errors"

	"circle/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPostNotFound is returned when no post matches the lookup.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the persistence operations for posts and their comments and likes.
type PostRepository interface {
	// Create persists a new post.
	Create(ctx context.Context, post *entity.Post) error

	// FindByID loads a post with its comments and likes.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)

	// FindByIDAndOwner loads a post only if ownerID owns it.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error)

	// FindByOwner lists an account's posts, newest first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Post, error)

	// FindFeed lists posts owned by every account followerID follows, newest first.
	FindFeed(ctx context.Context, followerID uuid.UUID) ([]*entity.Post, error)

	// Update writes description and image key.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes the post together with its comments and likes.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddLike inserts a like and reports whether a new row was written.
	AddLike(ctx context.Context, postID, accountID uuid.UUID) (bool, error)

	// RemoveLike deletes a like if present.
	RemoveLike(ctx context.Context, postID, accountID uuid.UUID) error

	// AddComment appends a comment.
	AddComment(ctx context.Context, comment *entity.Comment) error

	// DeleteCommentsByOwner removes every comment the account wrote on any post.
	DeleteCommentsByOwner(ctx context.Context, ownerID uuid.UUID) error

	// DeleteLikesByAccount removes every like the account gave on any post.
	DeleteLikesByAccount(ctx context.Context, accountID uuid.UUID) error

	// DeleteByOwner removes the account's posts with their comments and likes.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
