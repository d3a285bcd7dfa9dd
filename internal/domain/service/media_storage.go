package service

import (
	"context"
	"errors"
)

// ErrMediaNotFound is returned when no blob is stored under a key.
var ErrMediaNotFound = errors.New("media not found")

// MediaStorage stores opaque image blobs by key.
type MediaStorage interface {
	// Put writes data under key, replacing any previous blob.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get returns the blob and its content type.
	Get(ctx context.Context, key string) ([]byte, string, error)

	// Delete removes the blob. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
