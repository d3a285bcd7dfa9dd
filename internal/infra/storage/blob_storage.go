// Package storage keeps avatar and post images in a gocloud.dev bucket.
package storage

import (
	"context"
	"log/slog"

	"circle/config"
	"circle/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers selected by the media.bucketUrl scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const defaultBucketURL = "mem://"

// BlobStorage implements service.MediaStorage on a gocloud.dev bucket.
type BlobStorage struct {
	bucket *blob.Bucket
}

// Params holds dependencies for MediaStorage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the bucket named by media.bucketUrl and closes it on shutdown.
func New(params Params) (service.MediaStorage, error) {
	bucketURL := defaultBucketURL
	if params.Config.Media != nil && params.Config.Media.BucketURL != "" {
		bucketURL = params.Config.Media.BucketURL
	}

	storage, err := Open(params.Ctx, bucketURL)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Media bucket opened", slog.String("url", bucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return storage.Close()
		},
	})

	return storage, nil
}

// Open opens a bucket by URL, e.g. mem://, file:///var/lib/circle, gs://bucket or s3://bucket.
func Open(ctx context.Context, bucketURL string) (*BlobStorage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	return &BlobStorage{bucket: bucket}, nil
}

func (s *BlobStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType})

	return errors.Wrapf(err, "failed to write blob %s", key)
}

func (s *BlobStorage) Get(ctx context.Context, key string) ([]byte, string, error) {
	attrs, err := s.bucket.Attributes(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", service.ErrMediaNotFound
		}

		return nil, "", errors.Wrapf(err, "failed to stat blob %s", key)
	}

	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", service.ErrMediaNotFound
		}

		return nil, "", errors.Wrapf(err, "failed to read blob %s", key)
	}

	return data, attrs.ContentType, nil
}

func (s *BlobStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete blob %s", key)
	}

	return nil
}

// Close releases the bucket.
func (s *BlobStorage) Close() error {
	return errors.WithStack(s.bucket.Close())
}
