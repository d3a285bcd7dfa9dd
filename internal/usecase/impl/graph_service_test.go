package impl

import (
	"context"
	"testing"

	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"
	mockRepo "circle/internal/mocks/repository"
	mockSvc "circle/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGraphService_FollowUnfollow(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice", "alice@x.com")
	bob := app.register(t, "bob", "bob@x.com")

	require.NoError(t, app.graph.Follow(ctx, alice.Account.ID, bob.Account.ID))
	require.NoError(t, app.graph.Follow(ctx, alice.Account.ID, bob.Account.ID))

	aliceProfile, err := app.accounts.GetProfile(ctx, alice.Account.ID)
	require.NoError(t, err)
	bobProfile, err := app.accounts.GetProfile(ctx, bob.Account.ID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{bob.Account.ID}, aliceProfile.Account.Follows)
	assert.Equal(t, []uuid.UUID{alice.Account.ID}, bobProfile.Account.Followers)
	assert.Empty(t, aliceProfile.Account.Followers)
	assert.Equal(t, []string{"account.registered", "account.registered", "account.followed"}, app.publisher.types())

	require.NoError(t, app.graph.Unfollow(ctx, alice.Account.ID, bob.Account.ID))
	require.NoError(t, app.graph.Unfollow(ctx, alice.Account.ID, bob.Account.ID))

	aliceProfile, err = app.accounts.GetProfile(ctx, alice.Account.ID)
	require.NoError(t, err)
	bobProfile, err = app.accounts.GetProfile(ctx, bob.Account.ID)
	require.NoError(t, err)

	assert.Empty(t, aliceProfile.Account.Follows)
	assert.Empty(t, bobProfile.Account.Followers)
}

func TestGraphService_Follow_Rejections(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice", "alice@x.com")

	err := app.graph.Follow(ctx, alice.Account.ID, alice.Account.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCannotFollowSelf)

	err = app.graph.Follow(ctx, alice.Account.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)

	profile, err := app.accounts.GetProfile(ctx, alice.Account.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Account.Follows)
}

func TestGraphService_FollowByQRCode(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice", "alice@x.com")
	bob := app.register(t, "bob", "bob@x.com")

	png, err := app.graph.FollowQRCode(ctx, bob.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	_, err = app.graph.FollowQRCode(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)

	payload := `{"account_id":"` + bob.Account.ID.String() + `","type":"follow"}`
	require.NoError(t, app.graph.FollowByQRCode(ctx, alice.Account.ID, payload))

	profile, err := app.accounts.GetProfile(ctx, alice.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob.Account.ID}, profile.Account.Follows)

	err = app.graph.FollowByQRCode(ctx, alice.Account.ID, "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQRCode)
}

func TestGraphService_Follow_AlreadyFollowingSkipsInsert(t *testing.T) {
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
		factory.EXPECT().AccountRepo().Return(accountRepo)

		accountRepo.EXPECT().FindByID(ctx, targetID).Return(&entity.Account{ID: targetID, Followers: []uuid.UUID{selfID}}, nil)
	})

	require.NoError(t, srv.Follow(ctx, selfID, targetID))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestGraphService_Unfollow(t *testing.T) {
	ctx := context.Background()
	selfID, targetID := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		follows    []uuid.UUID
		wantDelete bool
	}{
		{name: "following", follows: []uuid.UUID{targetID}, wantDelete: true},
		{name: "not following", follows: []uuid.UUID{}, wantDelete: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := mockRepo.NewMockAccountRepository(t)
			followRepo := mockRepo.NewMockFollowRepository(t)
			srv := NewGraphService(GraphServiceParams{
				AccountRepo: accountRepo,
				FollowRepo:  followRepo,
				Logger:      newDiscardLogger(),
			})

			accountRepo.EXPECT().FindByID(ctx, selfID).Return(&entity.Account{ID: selfID, Follows: tt.follows}, nil)
			if tt.wantDelete {
				followRepo.EXPECT().Delete(ctx, selfID, targetID).Return(nil)
			}

			require.NoError(t, srv.Unfollow(ctx, selfID, targetID))
			if !tt.wantDelete {
				followRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
