// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	deliverycontext "circle/internal/delivery/context"
	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/domain/repository"
	"circle/internal/domain/service"
	"circle/internal/usecase"
	"circle/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// newID returns a time-ordered UUIDv7.
func newID() (uuid.UUID, error) {
	id, err := uuid.NewV7()

	return id, errors.Wrap(err, "failed to generate id")
}

// issueSession signs a token and stores its digest in the account's session set.
func issueSession(ctx context.Context, tokens service.TokenService, sessions repository.SessionRepository, accountID uuid.UUID) (string, error) {
	token, err := tokens.GenerateToken(accountID)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate token")
	}

	sessionID, err := newID()
	if err != nil {
		return "", err
	}

	session := &entity.Session{
		ID:        sessionID,
		AccountID: accountID,
		TokenHash: tokens.HashToken(token),
	}
	if err := sessions.Create(ctx, session); err != nil {
		return "", errors.Wrap(err, "failed to store session")
	}

	return token, nil
}

// publishEvent sends a domain event after commit. Failures are logged and never surface to the caller.
func publishEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, eventType string, accountID, subjectID uuid.UUID) {
	if publisher == nil {
		return
	}

	event := &service.DomainEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    ksuid.New().String(),
		Type:       eventType,
		AccountID:  accountID.String(),
		OccurredAt: time.Now().UTC(),
	}
	if subjectID != uuid.Nil {
		event.SubjectID = subjectID.String()
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish domain event",
			slog.String("type", eventType),
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
		)
	}
}

// validateImage accepts jpg, jpeg and png uploads by extension and by sniffed content.
// It returns the canonical extension and content type.
func validateImage(filename string, data []byte, maxSize int64) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		return "", "", domainerrors.ErrInvalidImage.WithDetails("unsupported file extension: " + ext)
	}

	if len(data) == 0 {
		return "", "", domainerrors.ErrInvalidImage.WithDetails("image is empty")
	}

	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", "", domainerrors.ErrInvalidImage.WithDetails("image exceeds " + util.FormatBytes(maxSize))
	}

	if detected := mimetype.Detect(data); !detected.Is(contentType) {
		return "", "", domainerrors.ErrInvalidImage.WithDetails("content does not match extension: " + detected.String())
	}

	if ext == ".jpeg" {
		ext = ".jpg"
	}

	return ext, contentType, nil
}

// mediaKey builds the bucket key for an owner's image.
func mediaKey(prefix string, ownerID uuid.UUID, ext string) string {
	return prefix + "/" + ownerID.String() + ext
}

// deleteMedia removes blobs best-effort; a leftover blob is logged, not returned.
func deleteMedia(ctx context.Context, storage service.MediaStorage, logger *slog.Logger, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := storage.Delete(ctx, key); err != nil {
			logger.Warn("Failed to delete media", slog.String("key", key), slog.Any("error", err))
		}
	}
}

// readMedia loads a blob and maps a missing key to MEDIA_NOT_FOUND.
func readMedia(ctx context.Context, storage service.MediaStorage, key string) (*usecase.MediaOutput, error) {
	if key == "" {
		return nil, domainerrors.ErrMediaNotFound
	}

	data, contentType, err := storage.Get(ctx, key)
	if errors.Is(err, service.ErrMediaNotFound) {
		return nil, domainerrors.ErrMediaNotFound
	}
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to read media")
	}

	return &usecase.MediaOutput{Data: data, ContentType: contentType}, nil
}

// stringField reads a string value from an update map.
func stringField(fields map[string]any, key string) (string, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return "", false, nil
	}

	value, ok := raw.(string)
	if !ok {
		return "", true, domainerrors.ErrValidationFailed.WithDetails(key + " must be a string")
	}

	return value, true, nil
}

// checkAllowedFields rejects any key outside allowed.
func checkAllowedFields(fields map[string]any, allowed ...string) error {
	for key := range fields {
		if !slices.Contains(allowed, key) {
			return domainerrors.ErrInvalidUpdateField.WithDetails(key)
		}
	}

	return nil
}
