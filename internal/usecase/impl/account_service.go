package impl

import (
	"context"
	"log/slog"
	"strings"

	"circle/config"
	deliverycontext "circle/internal/delivery/context"
	"circle/internal/domain/constants"
	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/domain/repository"
	"circle/internal/domain/service"
	"circle/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	fieldUsername = "username"
	fieldEmail    = "email"
	fieldPassword = "password"
)

var passwordRuleDetails = "password must be at least 6 characters and must not contain \"password\""

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	postRepo     repository.PostRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	storage      service.MediaStorage
	publisher    service.EventPublisher
	validate     *validator.Validate
	maxResults   int
	maxImageSize int64
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	PostRepo     repository.PostRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Storage      service.MediaStorage
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	maxResults := 0
	if params.Config.Search != nil {
		maxResults = params.Config.Search.MaxResults
	}

	var maxImageSize int64
	if params.Config.Media != nil {
		maxImageSize = params.Config.Media.MaxImageSize
	}

	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		postRepo:     params.PostRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		storage:      params.Storage,
		publisher:    params.Publisher,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		maxResults:   maxResults,
		maxImageSize: maxImageSize,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the account and its first session in one transaction.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	username := entity.NormalizeUsername(input.Username)
	if username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username is required")
	}

	email, err := srv.normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	password := entity.NormalizePassword(input.Password)
	if !entity.PasswordAcceptable(password) {
		return nil, domainerrors.ErrValidationFailed.WithDetails(passwordRuleDetails)
	}

	hashedPassword, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	accountID, err := newID()
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to register account")
	}

	account := &entity.Account{
		ID:           accountID,
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Follows:      []uuid.UUID{},
		Followers:    []uuid.UUID{},
		Posts:        []uuid.UUID{},
	}

	var token string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AccountRepo().Create(ctx, account); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailAlreadyInUse
			}

			return errors.Wrap(err, "failed to create account")
		}

		token, err = issueSession(ctx, srv.tokenService, repoFactory.SessionRepo(), account.ID)

		return err
	})
	if err != nil {
		if !domainerrors.IsClientError(err) {
			srv.log(ctx).Error("Failed to register account", slog.String("email", email), slog.Any("error", err))
		}

		return nil, domainerrors.AsInternal(err, "failed to register account")
	}

	srv.log(ctx).Info("Account registered", slog.String("accountID", account.ID.String()))
	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventAccountRegistered, account.ID, uuid.Nil)

	return &usecase.AuthOutput{Account: account, Token: token}, nil
}

// Authenticate returns the same error for an unknown email and a wrong password.
func (srv *accountService) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Debug("Login rejected: unknown email")

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to load account")
	}

	if !srv.hasher.Check(entity.NormalizePassword(password), account.PasswordHash) {
		srv.log(ctx).Debug("Login rejected: password mismatch", slog.String("accountID", account.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return account, nil
}

// ChangeCredential validates every field before writing, hashes a new password once
// and issues a single update.
func (srv *accountService) ChangeCredential(ctx context.Context, accountID uuid.UUID, fields map[string]any) (*entity.Account, error) {
	if err := checkAllowedFields(fields, fieldUsername, fieldEmail, fieldPassword); err != nil {
		return nil, err
	}

	username, hasUsername, err := stringField(fields, fieldUsername)
	if err != nil {
		return nil, err
	}
	if hasUsername {
		username = entity.NormalizeUsername(username)
		if username == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("username is required")
		}
	}

	email, hasEmail, err := stringField(fields, fieldEmail)
	if err != nil {
		return nil, err
	}
	if hasEmail {
		if email, err = srv.normalizeEmail(email); err != nil {
			return nil, err
		}
	}

	password, hasPassword, err := stringField(fields, fieldPassword)
	if err != nil {
		return nil, err
	}

	var passwordHash string
	if hasPassword {
		password = entity.NormalizePassword(password)
		if !entity.PasswordAcceptable(password) {
			return nil, domainerrors.ErrValidationFailed.WithDetails(passwordRuleDetails)
		}
		if passwordHash, err = srv.hasher.Hash(password); err != nil {
			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
	}

	var account *entity.Account
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		found, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			return translateAccountErr(err)
		}

		if hasUsername {
			found.Username = username
		}
		if hasEmail {
			found.Email = email
		}
		if hasPassword {
			found.PasswordHash = passwordHash
		}

		if len(fields) > 0 {
			if err := accountRepo.Update(ctx, found); err != nil {
				if errors.Is(err, repository.ErrDuplicateEmail) {
					return domainerrors.ErrEmailAlreadyInUse
				}

				return errors.Wrap(err, "failed to update account")
			}
		}
		account = found

		return nil
	})
	if err != nil {
		return nil, domainerrors.AsInternal(err, "failed to change credential")
	}

	srv.log(ctx).Info("Account updated", slog.String("accountID", accountID.String()), slog.Bool("passwordChanged", hasPassword))

	return account, nil
}

// GetProfile returns the account and its posts.
func (srv *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*usecase.ProfileOutput, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, domainerrors.AsInternal(translateAccountErr(err), "failed to load profile")
	}

	posts, err := srv.postRepo.FindByOwner(ctx, accountID)
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to load profile posts")
	}

	return &usecase.ProfileOutput{Account: account, Posts: posts}, nil
}

// Search returns an empty list for a blank query.
func (srv *accountService) Search(ctx context.Context, callerID uuid.UUID, query string) ([]*entity.Account, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*entity.Account{}, nil
	}

	accounts, err := srv.accountRepo.SearchByUsername(ctx, query, callerID, srv.maxResults)
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to search accounts")
	}

	return accounts, nil
}

// SetAvatar stores the image and records its key on the account.
func (srv *accountService) SetAvatar(ctx context.Context, accountID uuid.UUID, filename string, data []byte) error {
	ext, contentType, err := validateImage(filename, data, srv.maxImageSize)
	if err != nil {
		return err
	}

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return domainerrors.AsInternal(translateAccountErr(err), "failed to load account")
	}

	key := mediaKey(constants.MediaPrefixAvatar, accountID, ext)
	if err := srv.storage.Put(ctx, key, data, contentType); err != nil {
		return domainerrors.NewInternalError(err, "failed to store avatar")
	}

	previous := account.AvatarKey
	account.AvatarKey = key
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return domainerrors.AsInternal(translateAccountErr(err), "failed to save avatar")
	}

	if previous != key {
		deleteMedia(ctx, srv.storage, srv.log(ctx), previous)
	}

	return nil
}

// RemoveAvatar clears the avatar; an account without one is left as is.
func (srv *accountService) RemoveAvatar(ctx context.Context, accountID uuid.UUID) error {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return domainerrors.AsInternal(translateAccountErr(err), "failed to load account")
	}

	if !account.HasAvatar() {
		return nil
	}

	key := account.AvatarKey
	account.AvatarKey = ""
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return domainerrors.AsInternal(translateAccountErr(err), "failed to remove avatar")
	}

	deleteMedia(ctx, srv.storage, srv.log(ctx), key)

	return nil
}

// GetAvatar is a public read.
func (srv *accountService) GetAvatar(ctx context.Context, accountID uuid.UUID) (*usecase.MediaOutput, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, domainerrors.AsInternal(translateAccountErr(err), "failed to load account")
	}

	return readMedia(ctx, srv.storage, account.AvatarKey)
}

func (srv *accountService) normalizeEmail(raw string) (string, error) {
	email := entity.NormalizeEmail(raw)
	if err := srv.validate.Var(email, "required,email"); err != nil {
		return "", domainerrors.ErrValidationFailed.WithDetails("email is invalid")
	}

	return email, nil
}

// translateAccountErr maps repository lookups to ACCOUNT_NOT_FOUND.
func translateAccountErr(err error) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return domainerrors.ErrAccountNotFound
	}

	return err
}
