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

// graphService implements the GraphUsecase interface.
type graphService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	followRepo  repository.FollowRepository
	qrService   service.QRCodeService
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// GraphServiceParams holds dependencies for GraphService, injected by Fx.
type GraphServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	FollowRepo  repository.FollowRepository
	QRService   service.QRCodeService
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewGraphService is the constructor for graphService.
func NewGraphService(params GraphServiceParams) usecase.GraphUsecase {
	return &graphService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		followRepo:  params.FollowRepo,
		qrService:   params.QRService,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *graphService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Follow stores one edge; it shows up as a follow of selfID and a follower of targetID.
func (srv *graphService) Follow(ctx context.Context, selfID, targetID uuid.UUID) error {
	if selfID == targetID {
		return domainerrors.ErrCannotFollowSelf
	}

	var created bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		target, err := repoFactory.AccountRepo().FindByID(ctx, targetID)
		if err != nil {
			return translateAccountErr(err)
		}
		if target.IsFollowedBy(selfID) {
			return nil
		}

		created, err = repoFactory.FollowRepo().Create(ctx, selfID, targetID)
		if err != nil {
			return translateAccountErr(errors.Wrap(err, "failed to create follow edge"))
		}

		return nil
	})
	if err != nil {
		return domainerrors.AsInternal(err, "failed to follow account")
	}

	if created {
		srv.log(ctx).Info("Account followed",
			slog.String("followerID", selfID.String()),
			slog.String("followeeID", targetID.String()),
		)
		publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventAccountFollowed, selfID, targetID)
	}

	return nil
}

// Unfollow is a no-op when selfID does not follow targetID.
func (srv *graphService) Unfollow(ctx context.Context, selfID, targetID uuid.UUID) error {
	self, err := srv.accountRepo.FindByID(ctx, selfID)
	if err != nil {
		return domainerrors.AsInternal(translateAccountErr(err), "failed to load account")
	}
	if !self.IsFollowing(targetID) {
		return nil
	}

	if err := srv.followRepo.Delete(ctx, selfID, targetID); err != nil {
		return domainerrors.NewInternalError(err, "failed to unfollow account")
	}

	srv.log(ctx).Info("Account unfollowed",
		slog.String("followerID", selfID.String()),
		slog.String("followeeID", targetID.String()),
	)

	return nil
}

func (srv *graphService) FollowQRCode(ctx context.Context, accountID uuid.UUID) ([]byte, error) {
	if _, err := srv.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, domainerrors.AsInternal(translateAccountErr(err), "failed to load account")
	}

	png, err := srv.qrService.GenerateFollowQR(accountID)
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to render QR code")
	}

	return png, nil
}

func (srv *graphService) FollowByQRCode(ctx context.Context, selfID uuid.UUID, payload string) error {
	targetID, err := srv.qrService.ParseFollowQR(payload)
	if err != nil {
		return domainerrors.ErrInvalidQRCode.WithDetails(err.Error())
	}

	return srv.Follow(ctx, selfID, targetID)
}
