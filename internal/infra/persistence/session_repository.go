package persistence

import (
	"context"

	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/domain/repository"
	"circle/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := &model.SessionModel{
		ID:        session.ID,
		AccountID: session.AccountID,
		TokenHash: session.TokenHash,
		CreatedAt: session.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

func (repo *sessionRepository) Exists(ctx context.Context, accountID uuid.UUID, tokenHash string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("account_id = ? AND token_hash = ?", accountID, tokenHash).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to look up session")
	}

	return count > 0, nil
}

func (repo *sessionRepository) DeleteByHash(ctx context.Context, accountID uuid.UUID, tokenHash string) error {
	err := repo.db.WithContext(ctx).
		Where("account_id = ? AND token_hash = ?", accountID, tokenHash).
		Delete(&model.SessionModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session")
	}

	return nil
}

func (repo *sessionRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.SessionModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete sessions")
	}

	return nil
}

func (repo *sessionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Session, error) {
	var sessionMs []model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC, id ASC").
		Find(&sessionMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	sessions := make([]*entity.Session, 0, len(sessionMs))
	for _, s := range sessionMs {
		sessions = append(sessions, &entity.Session{
			ID:        s.ID,
			AccountID: s.AccountID,
			TokenHash: s.TokenHash,
			CreatedAt: s.CreatedAt,
		})
	}

	return sessions, nil
}
