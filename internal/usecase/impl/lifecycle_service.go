package impl

import (
	"context"
	"log/slog"

	deliverycontext "circle/internal/delivery/context"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/domain/repository"
	"circle/internal/domain/service"
	"circle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// lifecycleService implements the LifecycleUsecase interface.
type lifecycleService struct {
	txManager repository.TransactionManager
	storage   service.MediaStorage
	publisher service.EventPublisher
	logger    *slog.Logger
}

// LifecycleServiceParams holds dependencies for LifecycleService, injected by Fx.
type LifecycleServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Storage   service.MediaStorage
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewLifecycleService is the constructor for lifecycleService.
func NewLifecycleService(params LifecycleServiceParams) usecase.LifecycleUsecase {
	return &lifecycleService{
		txManager: params.TxManager,
		storage:   params.Storage,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *lifecycleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// DeleteAccount removes everything the account owns or references. Either every step
// commits or none does; blobs and the event follow the commit.
func (srv *lifecycleService) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	var mediaKeys []string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		postRepo := repoFactory.PostRepo()

		account, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			return translateAccountErr(err)
		}

		posts, err := postRepo.FindByOwner(ctx, accountID)
		if err != nil {
			return errors.Wrap(err, "failed to load owned posts")
		}

		mediaKeys = append(mediaKeys, account.AvatarKey)
		for _, post := range posts {
			mediaKeys = append(mediaKeys, post.ImageKey)
		}

		if err := postRepo.DeleteCommentsByOwner(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete authored comments")
		}
		if err := postRepo.DeleteLikesByAccount(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete likes")
		}
		if err := postRepo.DeleteByOwner(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete owned posts")
		}
		if err := repoFactory.FollowRepo().DeleteByAccount(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete follow edges")
		}
		if err := repoFactory.SessionRepo().DeleteByAccount(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete sessions")
		}
		if err := accountRepo.Delete(ctx, accountID); err != nil {
			return errors.Wrap(translateAccountErr(err), "failed to delete account")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		srv.log(ctx).Error("Account deletion rolled back", slog.String("accountID", accountID.String()), slog.Any("error", err))

		return domainerrors.NewInternalError(err, "failed to delete account")
	}

	deleteMedia(ctx, srv.storage, srv.log(ctx), mediaKeys...)

	srv.log(ctx).Info("Account deleted", slog.String("accountID", accountID.String()))
	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventAccountDeleted, accountID, uuid.Nil)

	return nil
}
