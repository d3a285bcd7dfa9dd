package impl

import (
	"context"
	"testing"

	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/domain/repository"
	"circle/internal/domain/service"
	"circle/internal/infra/auth"
	mockRepo "circle/internal/mocks/repository"
	mockSvc "circle/internal/mocks/service"
	"circle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// onExecute runs the transaction body against a factory prepared by setup.
func onExecute(t *testing.T, txManager *mockRepo.MockTransactionManager, setup func(factory *mockRepo.MockRepositoryFactory)) {
	t.Helper()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			setup(factory)

			return fn(factory)
		})
}

func TestLifecycleService_DeleteAccount_RollsBackOnFailure(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	storage := mockSvc.NewMockMediaStorage(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	srv := NewLifecycleService(LifecycleServiceParams{
		TxManager: txManager,
		Storage:   storage,
		Publisher: publisher,
		Logger:    newDiscardLogger(),
	})

	ctx := context.Background()
	accountID := uuid.New()
	dbError := errors.New("disk I/O error")

	onExecute(t, txManager, func(factory *mockRepo.MockRepositoryFactory) {
		accountRepo := mockRepo.NewMockAccountRepository(t)
		postRepo := mockRepo.NewMockPostRepository(t)
		factory.EXPECT().AccountRepo().Return(accountRepo)
		factory.EXPECT().PostRepo().Return(postRepo)

		accountRepo.EXPECT().FindByID(ctx, accountID).Return(&entity.Account{ID: accountID, AvatarKey: "avatars/a.png"}, nil)
		postRepo.EXPECT().FindByOwner(ctx, accountID).Return([]*entity.Post{}, nil)
		postRepo.EXPECT().DeleteCommentsByOwner(ctx, accountID).Return(nil)
		postRepo.EXPECT().DeleteLikesByAccount(ctx, accountID).Return(dbError)
	})

	err := srv.DeleteAccount(ctx, accountID)

	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	assert.ErrorIs(t, err, dbError)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestGraphService_Follow_PersistenceFailure(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	srv := NewGraphService(GraphServiceParams{
		TxManager: txManager,
		Publisher: publisher,
		Logger:    newDiscardLogger(),
	})

	ctx := context.Background()
	selfID, targetID := uuid.New(), uuid.New()

	onExecute(t, txManager, func(factory *mockRepo.MockRepositoryFactory) {
		accountRepo := mockRepo.NewMockAccountRepository(t)
		followRepo := mockRepo.NewMockFollowRepository(t)
		factory.EXPECT().AccountRepo().Return(accountRepo)
		factory.EXPECT().FollowRepo().Return(followRepo)

		accountRepo.EXPECT().FindByID(ctx, targetID).Return(&entity.Account{ID: targetID}, nil)
		followRepo.EXPECT().Create(ctx, selfID, targetID).Return(false, errors.New("connection reset"))
	})

	err := srv.Follow(ctx, selfID, targetID)

	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestGraphService_Follow_PublishFailureIsNotReturned(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	srv := NewGraphService(GraphServiceParams{
		TxManager: txManager,
		Publisher: publisher,
		Logger:    newDiscardLogger(),
	})

	ctx := context.Background()
	selfID, targetID := uuid.New(), uuid.New()

	onExecute(t, txManager, func(factory *mockRepo.MockRepositoryFactory) {
		accountRepo := mockRepo.NewMockAccountRepository(t)
		followRepo := mockRepo.NewMockFollowRepository(t)
		factory.EXPECT().AccountRepo().Return(accountRepo)
		factory.EXPECT().FollowRepo().Return(followRepo)

		accountRepo.EXPECT().FindByID(ctx, targetID).Return(&entity.Account{ID: targetID}, nil)
		followRepo.EXPECT().Create(ctx, selfID, targetID).Return(true, nil)
	})
	publisher.EXPECT().
		Publish(ctx, mock.MatchedBy(func(event *service.DomainEvent) bool {
			return event.Type == service.EventAccountFollowed &&
				event.AccountID == selfID.String() &&
				event.SubjectID == targetID.String()
		})).
		Return(errors.New("broker unavailable"))

	assert.NoError(t, srv.Follow(ctx, selfID, targetID))
}

func TestAccountService_Register_TokenFailure(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	tokens := mockSvc.NewMockTokenService(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	cfg := newTestConfig()
	srv := NewAccountService(AccountServiceParams{
		TxManager:    txManager,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Publisher:    publisher,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})

	ctx := context.Background()

	onExecute(t, txManager, func(factory *mockRepo.MockRepositoryFactory) {
		accountRepo := mockRepo.NewMockAccountRepository(t)
		factory.EXPECT().AccountRepo().Return(accountRepo)
		factory.EXPECT().SessionRepo().Return(mockRepo.NewMockSessionRepository(t))
		accountRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)
	})
	tokens.EXPECT().GenerateToken(mock.AnythingOfType("uuid.UUID")).Return("", errors.New("signing failed"))

	out, err := srv.Register(ctx, usecase.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "secret1"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSessionService_ValidateToken_StoreFailure(t *testing.T) {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	sessionRepo := mockRepo.NewMockSessionRepository(t)
	tokens := mockSvc.NewMockTokenService(t)
	srv := NewSessionService(SessionServiceParams{
		AccountRepo:  accountRepo,
		SessionRepo:  sessionRepo,
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	})

	ctx := context.Background()
	accountID := uuid.New()

	tokens.EXPECT().ValidateToken("token").Return(&service.Claims{AccountID: accountID}, nil)
	tokens.EXPECT().HashToken("token").Return("digest")
	accountRepo.EXPECT().FindByID(ctx, accountID).Return(&entity.Account{ID: accountID}, nil)
	sessionRepo.EXPECT().Exists(ctx, accountID, "digest").Return(false, errors.New("database is locked"))

	account, err := srv.ValidateToken(ctx, "token")

	assert.Nil(t, account)
	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	assert.NotErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestPostService_Delete_KeepsImageOnFailure(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	storage := mockSvc.NewMockMediaStorage(t)
	srv := NewPostService(PostServiceParams{
		TxManager: txManager,
		Storage:   storage,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	ctx := context.Background()
	postID, ownerID := uuid.New(), uuid.New()

	onExecute(t, txManager, func(factory *mockRepo.MockRepositoryFactory) {
		postRepo := mockRepo.NewMockPostRepository(t)
		factory.EXPECT().PostRepo().Return(postRepo)

		postRepo.EXPECT().FindByIDAndOwner(ctx, postID, ownerID).Return(&entity.Post{ID: postID, OwnerID: ownerID, ImageKey: "posts/p.png"}, nil)
		postRepo.EXPECT().Delete(ctx, postID).Return(errors.New("constraint failed"))
	})

	post, err := srv.Delete(ctx, postID, ownerID)

	assert.Nil(t, post)
	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
