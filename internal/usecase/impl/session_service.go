package impl

import (
	"context"
	"log/slog"

	deliverycontext "circle/internal/delivery/context"
	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/domain/repository"
	"circle/internal/domain/service"
	"circle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	sessionRepo  repository.SessionRepository
	accounts     usecase.AccountUsecase
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	SessionRepo  repository.SessionRepository
	Accounts     usecase.AccountUsecase
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		sessionRepo:  params.SessionRepo,
		accounts:     params.Accounts,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login authenticates and adds a fresh token to the active set. Existing tokens stay valid.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	account, err := srv.accounts.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := srv.IssueToken(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account logged in", slog.String("accountID", account.ID.String()))

	return &usecase.AuthOutput{Account: account, Token: token}, nil
}

func (srv *sessionService) IssueToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	var token string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		token, err = issueSession(ctx, srv.tokenService, repoFactory.SessionRepo(), accountID)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		return err
	})
	if err != nil {
		return "", domainerrors.AsInternal(err, "failed to issue token")
	}

	return token, nil
}

// ValidateToken rejects a token that fails verification, names an unknown account,
// or is no longer in the account's active set.
func (srv *sessionService) ValidateToken(ctx context.Context, token string) (*entity.Account, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		srv.log(ctx).Debug("Token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthorized
	}

	account, err := srv.accountRepo.FindByID(ctx, claims.AccountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrUnauthorized
	}
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to load account")
	}

	active, err := srv.sessionRepo.Exists(ctx, account.ID, srv.tokenService.HashToken(token))
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to check session")
	}
	if !active {
		srv.log(ctx).Debug("Token rejected: revoked", slog.String("accountID", account.ID.String()))

		return nil, domainerrors.ErrUnauthorized
	}

	return account, nil
}

func (srv *sessionService) RevokeOne(ctx context.Context, accountID uuid.UUID, token string) error {
	if err := srv.sessionRepo.DeleteByHash(ctx, accountID, srv.tokenService.HashToken(token)); err != nil {
		return domainerrors.NewInternalError(err, "failed to revoke token")
	}

	srv.log(ctx).Info("Session revoked", slog.String("accountID", accountID.String()))

	return nil
}

func (srv *sessionService) RevokeAll(ctx context.Context, accountID uuid.UUID) error {
	if err := srv.sessionRepo.DeleteByAccount(ctx, accountID); err != nil {
		return domainerrors.NewInternalError(err, "failed to revoke tokens")
	}

	srv.log(ctx).Info("All sessions revoked", slog.String("accountID", accountID.String()))

	return nil
}

func (srv *sessionService) ListSessions(ctx context.Context, accountID uuid.UUID) ([]*entity.Session, error) {
	sessions, err := srv.sessionRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to list sessions")
	}

	return sessions, nil
}
