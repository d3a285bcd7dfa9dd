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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const fieldDescription = "description"

// postService implements the PostUsecase interface.
type postService struct {
	txManager    repository.TransactionManager
	postRepo     repository.PostRepository
	storage      service.MediaStorage
	publisher    service.EventPublisher
	maxImageSize int64
	logger       *slog.Logger
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	PostRepo  repository.PostRepository
	Storage   service.MediaStorage
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	var maxImageSize int64
	if params.Config.Media != nil {
		maxImageSize = params.Config.Media.MaxImageSize
	}

	return &postService{
		txManager:    params.TxManager,
		postRepo:     params.PostRepo,
		storage:      params.Storage,
		publisher:    params.Publisher,
		maxImageSize: maxImageSize,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *postService) Create(ctx context.Context, ownerID uuid.UUID, input usecase.CreatePostInput) (*entity.Post, error) {
	postID, err := newID()
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to create post")
	}

	post := &entity.Post{
		ID:          postID,
		OwnerID:     ownerID,
		Description: strings.TrimSpace(input.Description),
		Comments:    []entity.Comment{},
		Likes:       []uuid.UUID{},
	}

	if err := srv.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, domainerrors.NewInternalError(err, "failed to create post")
	}

	srv.log(ctx).Info("Post created", slog.String("postID", post.ID.String()), slog.String("ownerID", ownerID.String()))
	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventPostCreated, ownerID, post.ID)

	return post, nil
}

// Update accepts the description only.
func (srv *postService) Update(ctx context.Context, postID, ownerID uuid.UUID, fields map[string]any) (*entity.Post, error) {
	if err := checkAllowedFields(fields, fieldDescription); err != nil {
		return nil, err
	}

	description, hasDescription, err := stringField(fields, fieldDescription)
	if err != nil {
		return nil, err
	}

	post, err := srv.ownedPost(ctx, postID, ownerID)
	if err != nil {
		return nil, err
	}

	if !hasDescription {
		return post, nil
	}

	post.Description = strings.TrimSpace(description)
	if err := srv.postRepo.Update(ctx, post); err != nil {
		return nil, domainerrors.AsInternal(translatePostErr(err), "failed to update post")
	}

	return post, nil
}

// Delete removes the post with its comments and likes. The image blob goes after commit.
func (srv *postService) Delete(ctx context.Context, postID, ownerID uuid.UUID) (*entity.Post, error) {
	var post *entity.Post
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		found, err := postRepo.FindByIDAndOwner(ctx, postID, ownerID)
		if err != nil {
			return translatePostErr(err)
		}

		if err := postRepo.Delete(ctx, found.ID); err != nil {
			return translatePostErr(err)
		}
		post = found

		return nil
	})
	if err != nil {
		return nil, domainerrors.AsInternal(err, "failed to delete post")
	}

	deleteMedia(ctx, srv.storage, srv.log(ctx), post.ImageKey)
	srv.log(ctx).Info("Post deleted", slog.String("postID", postID.String()))

	return post, nil
}

func (srv *postService) GetByID(ctx context.Context, postID uuid.UUID) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, domainerrors.AsInternal(translatePostErr(err), "failed to load post")
	}

	return post, nil
}

func (srv *postService) Like(ctx context.Context, postID, accountID uuid.UUID) (*entity.Post, error) {
	if _, err := srv.postRepo.AddLike(ctx, postID, accountID); err != nil {
		return nil, domainerrors.AsInternal(translatePostErr(err), "failed to like post")
	}

	return srv.GetByID(ctx, postID)
}

// Unlike reports NotFound only when the post itself is missing.
func (srv *postService) Unlike(ctx context.Context, postID, accountID uuid.UUID) (*entity.Post, error) {
	if _, err := srv.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := srv.postRepo.RemoveLike(ctx, postID, accountID); err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to unlike post")
	}

	return srv.GetByID(ctx, postID)
}

func (srv *postService) AddComment(ctx context.Context, postID, accountID uuid.UUID, text string) (*entity.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("comment text is required")
	}

	commentID, err := newID()
	if err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to add comment")
	}

	comment := &entity.Comment{
		ID:      commentID,
		PostID:  postID,
		OwnerID: accountID,
		Text:    text,
	}
	if err := srv.postRepo.AddComment(ctx, comment); err != nil {
		return nil, domainerrors.AsInternal(translatePostErr(err), "failed to add comment")
	}

	return srv.GetByID(ctx, postID)
}

func (srv *postService) SetImage(ctx context.Context, postID, ownerID uuid.UUID, filename string, data []byte) (*entity.Post, error) {
	ext, contentType, err := validateImage(filename, data, srv.maxImageSize)
	if err != nil {
		return nil, err
	}

	post, err := srv.ownedPost(ctx, postID, ownerID)
	if err != nil {
		return nil, err
	}

	key := mediaKey(constants.MediaPrefixPost, post.ID, ext)
	if err := srv.storage.Put(ctx, key, data, contentType); err != nil {
		return nil, domainerrors.NewInternalError(err, "failed to store post image")
	}

	previous := post.ImageKey
	post.ImageKey = key
	if err := srv.postRepo.Update(ctx, post); err != nil {
		return nil, domainerrors.AsInternal(translatePostErr(err), "failed to save post image")
	}

	if previous != key {
		deleteMedia(ctx, srv.storage, srv.log(ctx), previous)
	}

	return post, nil
}

func (srv *postService) RemoveImage(ctx context.Context, postID, ownerID uuid.UUID) (*entity.Post, error) {
	post, err := srv.ownedPost(ctx, postID, ownerID)
	if err != nil {
		return nil, err
	}

	if !post.HasImage() {
		return post, nil
	}

	key := post.ImageKey
	post.ImageKey = ""
	if err := srv.postRepo.Update(ctx, post); err != nil {
		return nil, domainerrors.AsInternal(translatePostErr(err), "failed to remove post image")
	}

	deleteMedia(ctx, srv.storage, srv.log(ctx), key)

	return post, nil
}

func (srv *postService) GetImage(ctx context.Context, postID uuid.UUID) (*usecase.MediaOutput, error) {
	post, err := srv.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return readMedia(ctx, srv.storage, post.ImageKey)
}

// ownedPost looks the post up by id and owner together; a foreign post reads as missing.
func (srv *postService) ownedPost(ctx context.Context, postID, ownerID uuid.UUID) (*entity.Post, error) {
	post, err := srv.postRepo.FindByIDAndOwner(ctx, postID, ownerID)
	if err != nil {
		return nil, domainerrors.AsInternal(translatePostErr(err), "failed to load post")
	}

	return post, nil
}

// translatePostErr maps repository lookups to POST_NOT_FOUND.
func translatePostErr(err error) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return domainerrors.ErrPostNotFound
	}

	return err
}
