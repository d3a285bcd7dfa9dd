package persistence

import (
	"context"
	"strings"

	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/domain/repository"
	"circle/internal/infra/persistence/model"
	"circle/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements repository.AccountRepository using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByID loads an account and materialises its follows, followers and posts.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return repo.withRelations(ctx, &accountM)
}

// FindByEmail loads an account by its normalised email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return repo.withRelations(ctx, &accountM)
}

// Update writes the mutable account columns.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"username":      account.Username,
			"email":         account.Email,
			"password_hash": account.PasswordHash,
			"avatar_key":    account.AvatarKey,
			"updated_at":    repo.db.NowFunc(),
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// SearchByUsername matches a case-insensitive substring of the username.
// Results carry no graph relations.
func (repo *accountRepository) SearchByUsername(ctx context.Context, query string, excludeID uuid.UUID, limit int) ([]*entity.Account, error) {
	pattern := "%" + util.EscapeLike(strings.ToLower(query)) + "%"

	var accountMs []model.AccountModel
	err := repo.db.WithContext(ctx).
		Where(`LOWER(username) LIKE ? ESCAPE '\'`, pattern).
		Where("id <> ?", excludeID).
		Order("username ASC, id ASC").
		Limit(limit).
		Find(&accountMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountMs))
	for i := range accountMs {
		accounts = append(accounts, toAccountDomain(&accountMs[i]))
	}

	return accounts, nil
}

// Delete removes the account row.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AccountModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func (repo *accountRepository) withRelations(ctx context.Context, accountM *model.AccountModel) (*entity.Account, error) {
	account := toAccountDomain(accountM)
	db := repo.db.WithContext(ctx)

	follows := NewFollowRepository(repo.db)

	var err error
	if account.Follows, err = follows.FindFollowees(ctx, account.ID); err != nil {
		return nil, errors.Wrap(err, "failed to load follows")
	}
	if account.Followers, err = follows.FindFollowers(ctx, account.ID); err != nil {
		return nil, errors.Wrap(err, "failed to load followers")
	}

	if err = db.Model(&model.PostModel{}).
		Where("owner_id = ?", account.ID).
		Order("created_at ASC, id ASC").
		Pluck("id", &account.Posts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load post index")
	}

	return account, nil
}

// --- Mapper Functions ---

func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		AvatarKey:    data.AvatarKey,
		Follows:      []uuid.UUID{},
		Followers:    []uuid.UUID{},
		Posts:        []uuid.UUID{},
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		AvatarKey:    data.AvatarKey,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
