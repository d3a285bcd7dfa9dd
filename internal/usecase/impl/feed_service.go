package impl

import (
	"context"
	"log/slog"

	deliverycontext "circle/internal/delivery/context"
	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/domain/repository"
	"circle/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// feedService implements the FeedUsecase interface.
type feedService struct {
	postRepo repository.PostRepository
	logger   *slog.Logger
}

// FeedServiceParams holds dependencies for FeedService, injected by Fx.
type FeedServiceParams struct {
	fx.In

	PostRepo repository.PostRepository
	Logger   *slog.Logger
}

// NewFeedService is the constructor for feedService.
func NewFeedService(params FeedServiceParams) usecase.FeedUsecase {
	return &feedService{
		postRepo: params.PostRepo,
		logger:   params.Logger,
	}
}

// Feed does not include the caller's own posts.
func (srv *feedService) Feed(ctx context.Context, accountID uuid.UUID) ([]*entity.Post, error) {
	posts, err := srv.postRepo.FindFeed(ctx, accountID)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("Failed to assemble feed",
			slog.String("accountID", accountID.String()),
			slog.Any("error", err),
		)

		return nil, domainerrors.NewInternalError(err, "failed to load feed")
	}

	return posts, nil
}

func (srv *feedService) OwnPosts(ctx context.Context, accountID uuid.UUID) ([]*entity.Post, error) {
	posts, err := srv.postRepo.FindByOwner(ctx, accountID)
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to load posts")
	}

	return posts, nil
}
