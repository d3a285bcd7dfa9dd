package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Post is a piece of content owned by exactly one account.
// Comments and likes belong to the post and are not addressable on their own.
type Post struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID // Immutable after creation.
	Description string
	ImageKey    string      // Media key of the attached image, empty when none.
	Comments    []Comment   // Insertion order.
	Likes       []uuid.UUID // Set of account ids.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment is a text entry on a post.
type Comment struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	OwnerID   uuid.UUID
	Text      string
	CreatedAt time.Time
}

// IsOwnedBy reports whether accountID owns the post.
func (p *Post) IsOwnedBy(accountID uuid.UUID) bool {
	return p.OwnerID == accountID
}

// IsLikedBy reports whether accountID is in the like set.
func (p *Post) IsLikedBy(accountID uuid.UUID) bool {
	return slices.Contains(p.Likes, accountID)
}

// HasImage reports whether an image is attached to the post.
func (p *Post) HasImage() bool {
	return p.ImageKey != ""
}
