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
	"gorm.io/gorm/clause"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

// withChildren preloads comments in insertion order and likes.
func (repo *postRepository) withChildren(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, account_id ASC")
		})
}

func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := &model.PostModel{
		ID:          post.ID,
		OwnerID:     post.OwnerID,
		Description: post.Description,
		ImageKey:    post.ImageKey,
	}

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(postM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	post.CreatedAt = postM.CreatedAt
	post.UpdatedAt = postM.UpdatedAt
	if post.Comments == nil {
		post.Comments = []entity.Comment{}
	}
	if post.Likes == nil {
		post.Likes = []uuid.UUID{}
	}

	return nil
}

func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var postM model.PostModel
	if err := repo.withChildren(ctx).Where("id = ?", id).First(&postM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post by id")
	}

	return toPostDomain(&postM), nil
}

// FindByIDAndOwner checks existence and ownership in one lookup.
func (repo *postRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Post, error) {
	var postM model.PostModel
	if err := repo.withChildren(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&postM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post by id and owner")
	}

	return toPostDomain(&postM), nil
}

func (repo *postRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Post, error) {
	var postMs []model.PostModel
	err := repo.withChildren(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&postMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts by owner")
	}

	return toPostsDomain(postMs), nil
}

// FindFeed resolves the followees with a subquery so the feed is one round trip plus preloads.
func (repo *postRepository) FindFeed(ctx context.Context, followerID uuid.UUID) ([]*entity.Post, error) {
	followees := repo.db.WithContext(ctx).
		Model(&model.FollowEdgeModel{}).
		Select("followee_id").
		Where("follower_id = ?", followerID)

	var postMs []model.PostModel
	err := repo.withChildren(ctx).
		Where("owner_id IN (?)", followees).
		Order("created_at DESC, id DESC").
		Find(&postMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to assemble feed")
	}

	return toPostsDomain(postMs), nil
}

func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"description": post.Description,
			"image_key":   post.ImageKey,
			"updated_at":  repo.db.NowFunc(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

func (repo *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("post_id = ?", id).Delete(&model.CommentModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete post comments")
	}
	if err := db.Where("post_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete post likes")
	}

	result := db.Where("id = ?", id).Delete(&model.PostModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// AddLike inserts the like; the composite key keeps the like set free of duplicates.
func (repo *postRepository) AddLike(ctx context.Context, postID, accountID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.LikeModel{PostID: postID, AccountID: accountID})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return false, repository.ErrPostNotFound
		}

		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to add like")
	}

	return result.RowsAffected > 0, nil
}

func (repo *postRepository) RemoveLike(ctx context.Context, postID, accountID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("post_id = ? AND account_id = ?", postID, accountID).
		Delete(&model.LikeModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove like")
	}

	return nil
}

func (repo *postRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	commentM := &model.CommentModel{
		ID:      comment.ID,
		PostID:  comment.PostID,
		OwnerID: comment.OwnerID,
		Text:    comment.Text,
	}

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPostNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add comment")
	}
	comment.CreatedAt = commentM.CreatedAt

	return nil
}

func (repo *postRepository) DeleteCommentsByOwner(ctx context.Context, ownerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.CommentModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete comments by owner")
	}

	return nil
}

func (repo *postRepository) DeleteLikesByAccount(ctx context.Context, accountID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.LikeModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete likes by account")
	}

	return nil
}

// DeleteByOwner removes children of the owner's posts before the posts themselves.
func (repo *postRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	db := repo.db.WithContext(ctx)
	owned := db.Model(&model.PostModel{}).Select("id").Where("owner_id = ?", ownerID)

	if err := db.Where("post_id IN (?)", owned).Delete(&model.CommentModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete comments on owned posts")
	}
	if err := db.Where("post_id IN (?)", owned).Delete(&model.LikeModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete likes on owned posts")
	}
	if err := db.Where("owner_id = ?", ownerID).Delete(&model.PostModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete owned posts")
	}

	return nil
}

// --- Mapper Functions ---

func toPostsDomain(postMs []model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, 0, len(postMs))
	for i := range postMs {
		posts = append(posts, toPostDomain(&postMs[i]))
	}

	return posts
}

func toPostDomain(data *model.PostModel) *entity.Post {
	comments := make([]entity.Comment, 0, len(data.Comments))
	for _, c := range data.Comments {
		comments = append(comments, entity.Comment{
			ID:        c.ID,
			PostID:    c.PostID,
			OwnerID:   c.OwnerID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}

	likes := make([]uuid.UUID, 0, len(data.Likes))
	for _, l := range data.Likes {
		likes = append(likes, l.AccountID)
	}

	return &entity.Post{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Description: data.Description,
		ImageKey:    data.ImageKey,
		Comments:    comments,
		Likes:       likes,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
