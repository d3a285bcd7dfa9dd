package persistence

import (
	"context"

	domainerrors "circle/internal/domain/errors"
	"circle/internal/domain/repository"
	"circle/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository is the constructor for followRepository.
func NewFollowRepository(db *gorm.DB) repository.FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge; a concurrent duplicate is absorbed by ON CONFLICT DO NOTHING.
func (repo *followRepository) Create(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.FollowEdgeModel{FollowerID: followerID, FolloweeID: followeeID})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return false, repository.ErrAccountNotFound
		}

		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to create follow edge")
	}

	return result.RowsAffected > 0, nil
}

func (repo *followRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.FollowEdgeModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete follow edge")
	}

	return nil
}

func (repo *followRepository) FindFollowees(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := repo.db.WithContext(ctx).
		Model(&model.FollowEdgeModel{}).
		Where("follower_id = ?", followerID).
		Order("created_at ASC, followee_id ASC").
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list followees")
	}

	return ids, nil
}

func (repo *followRepository) FindFollowers(ctx context.Context, followeeID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := repo.db.WithContext(ctx).
		Model(&model.FollowEdgeModel{}).
		Where("followee_id = ?", followeeID).
		Order("created_at ASC, follower_id ASC").
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list followers")
	}

	return ids, nil
}

func (repo *followRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("follower_id = ? OR followee_id = ?", accountID, accountID).
		Delete(&model.FollowEdgeModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete follow edges")
	}

	return nil
}
