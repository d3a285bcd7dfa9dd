package persistence_test

import (
	"context"
	"testing"

	"circle/internal/domain/entity"
	"circle/internal/domain/repository"
	"circle/internal/infra/persistence"
	"circle/internal/infra/persistence/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createAccount(t *testing.T, db *gorm.DB, username, email string) *entity.Account {
	t.Helper()

	account := &entity.Account{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, persistence.NewAccountRepository(db).Create(context.Background(), account))

	return account
}

func createPost(t *testing.T, db *gorm.DB, ownerID uuid.UUID, description string) *entity.Post {
	t.Helper()

	post := &entity.Post{ID: uuid.Must(uuid.NewV7()), OwnerID: ownerID, Description: description}
	require.NoError(t, persistence.NewPostRepository(db).Create(context.Background(), post))

	return post
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	repo := persistence.NewAccountRepository(db)

	alice := createAccount(t, db, "alice", "alice@x.com")

	found, err := repo.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)
	assert.Equal(t, "alice", found.Username)
	assert.Empty(t, found.Follows)
	assert.NotNil(t, found.Follows)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	repo := persistence.NewAccountRepository(db)

	createAccount(t, db, "alice", "alice@x.com")

	err := repo.Create(ctx, &entity.Account{ID: uuid.Must(uuid.NewV7()), Username: "other", Email: "alice@x.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	bob := createAccount(t, db, "bob", "bob@x.com")
	bob.Email = "alice@x.com"
	assert.ErrorIs(t, repo.Update(ctx, bob), repository.ErrDuplicateEmail)
}

func TestAccountRepository_Update(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	repo := persistence.NewAccountRepository(db)

	alice := createAccount(t, db, "alice", "alice@x.com")
	alice.Username = "alice2"
	alice.AvatarKey = "avatars/a.png"
	require.NoError(t, repo.Update(ctx, alice))

	found, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", found.Username)
	assert.True(t, found.HasAvatar())

	assert.ErrorIs(t, repo.Update(ctx, &entity.Account{ID: uuid.New(), Email: "ghost@x.com"}), repository.ErrAccountNotFound)
}

func TestAccountRepository_SearchByUsername(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	repo := persistence.NewAccountRepository(db)

	alice := createAccount(t, db, "Alice", "alice@x.com")
	createAccount(t, db, "malice", "malice@x.com")
	createAccount(t, db, "bob", "bob@x.com")
	createAccount(t, db, "al_ex", "alex@x.com")

	results, err := repo.SearchByUsername(ctx, "ALI", uuid.Nil, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Alice", results[0].Username)
	assert.Equal(t, "malice", results[1].Username)

	results, err = repo.SearchByUsername(ctx, "ali", alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "malice", results[0].Username)

	results, err = repo.SearchByUsername(ctx, "_", uuid.Nil, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "al_ex", results[0].Username)

	results, err = repo.SearchByUsername(ctx, "a", uuid.Nil, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestFollowRepository_EdgeIsSymmetric(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	follows := persistence.NewFollowRepository(db)
	accounts := persistence.NewAccountRepository(db)

	alice := createAccount(t, db, "alice", "alice@x.com")
	bob := createAccount(t, db, "bob", "bob@x.com")

	created, err := follows.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = follows.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	a, err := accounts.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	b, err := accounts.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob.ID}, a.Follows)
	assert.Equal(t, []uuid.UUID{alice.ID}, b.Followers)
	assert.Empty(t, a.Followers)

	require.NoError(t, follows.Delete(ctx, alice.ID, bob.ID))
	require.NoError(t, follows.Delete(ctx, alice.ID, bob.ID))

	followees, err := follows.FindFollowees(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, followees)
	followers, err := follows.FindFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)

	_, err = follows.Create(ctx, alice.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestPostRepository_LikesAndComments(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	posts := persistence.NewPostRepository(db)

	alice := createAccount(t, db, "alice", "alice@x.com")
	bob := createAccount(t, db, "bob", "bob@x.com")
	post := createPost(t, db, bob.ID, "hello")

	added, err := posts.AddLike(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = posts.AddLike(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, added)

	for _, text := range []string{"first", "second"} {
		require.NoError(t, posts.AddComment(ctx, &entity.Comment{ID: uuid.Must(uuid.NewV7()), PostID: post.ID, OwnerID: alice.ID, Text: text}))
	}

	found, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{alice.ID}, found.Likes)
	require.Len(t, found.Comments, 2)
	assert.Equal(t, "first", found.Comments[0].Text)
	assert.Equal(t, "second", found.Comments[1].Text)

	require.NoError(t, posts.RemoveLike(ctx, post.ID, alice.ID))
	found, err = posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Likes)

	_, err = posts.AddLike(ctx, uuid.New(), alice.ID)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestPostRepository_OwnerScopedLookup(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	posts := persistence.NewPostRepository(db)

	alice := createAccount(t, db, "alice", "alice@x.com")
	bob := createAccount(t, db, "bob", "bob@x.com")
	post := createPost(t, db, bob.ID, "hello")

	_, err := posts.FindByIDAndOwner(ctx, post.ID, alice.ID)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)

	found, err := posts.FindByIDAndOwner(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Description)
}

func TestPostRepository_FeedFollowsGraph(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	posts := persistence.NewPostRepository(db)
	follows := persistence.NewFollowRepository(db)

	alice := createAccount(t, db, "alice", "alice@x.com")
	bob := createAccount(t, db, "bob", "bob@x.com")
	carol := createAccount(t, db, "carol", "carol@x.com")

	first := createPost(t, db, bob.ID, "first")
	second := createPost(t, db, carol.ID, "second")
	createPost(t, db, alice.ID, "own")

	feed, err := posts.FindFeed(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)

	_, err = follows.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = follows.Create(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	feed, err = posts.FindFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, second.ID, feed[0].ID)
	assert.Equal(t, first.ID, feed[1].ID)
}

func TestPostRepository_DeleteByOwnerRemovesChildren(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	posts := persistence.NewPostRepository(db)

	alice := createAccount(t, db, "alice", "alice@x.com")
	bob := createAccount(t, db, "bob", "bob@x.com")
	bobPost := createPost(t, db, bob.ID, "bob's")
	alicePost := createPost(t, db, alice.ID, "alice's")

	_, err := posts.AddLike(ctx, bobPost.ID, alice.ID)
	require.NoError(t, err)
	require.NoError(t, posts.AddComment(ctx, &entity.Comment{ID: uuid.Must(uuid.NewV7()), PostID: bobPost.ID, OwnerID: alice.ID, Text: "hi"}))
	require.NoError(t, posts.AddComment(ctx, &entity.Comment{ID: uuid.Must(uuid.NewV7()), PostID: alicePost.ID, OwnerID: bob.ID, Text: "yo"}))

	require.NoError(t, posts.DeleteByOwner(ctx, bob.ID))

	_, err = posts.FindByID(ctx, bobPost.ID)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)

	remaining, err := posts.FindByID(ctx, alicePost.ID)
	require.NoError(t, err)
	assert.Len(t, remaining.Comments, 1)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	sessions := persistence.NewSessionRepository(db)

	alice := createAccount(t, db, "alice", "alice@x.com")
	for _, hash := range []string{"h1", "h2"} {
		require.NoError(t, sessions.Create(ctx, &entity.Session{ID: uuid.Must(uuid.NewV7()), AccountID: alice.ID, TokenHash: hash}))
	}

	exists, err := sessions.Exists(ctx, alice.ID, "h1")
	require.NoError(t, err)
	assert.True(t, exists)

	list, err := sessions.ListByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "h1", list[0].TokenHash)

	require.NoError(t, sessions.DeleteByHash(ctx, alice.ID, "h1"))
	exists, err = sessions.Exists(ctx, alice.ID, "h1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, sessions.DeleteByAccount(ctx, alice.ID))
	list, err = sessions.ListByAccount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	txManager := persistence.NewTransactionManager(db)

	alice := createAccount(t, db, "alice", "alice@x.com")
	bob := createAccount(t, db, "bob", "bob@x.com")

	boom := assert.AnError
	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if _, err := factory.FollowRepo().Create(ctx, alice.ID, bob.ID); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	followees, err := persistence.NewFollowRepository(db).FindFollowees(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, followees)
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	txManager := persistence.NewTransactionManager(db)

	alice := createAccount(t, db, "alice", "alice@x.com")

	assert.Panics(t, func() {
		_ = txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
			if err := factory.SessionRepo().Create(ctx, &entity.Session{ID: uuid.Must(uuid.NewV7()), AccountID: alice.ID, TokenHash: "h"}); err != nil {
				return err
			}
			panic("boom")
		})
	})

	exists, err := persistence.NewSessionRepository(db).Exists(ctx, alice.ID, "h")
	require.NoError(t, err)
	assert.False(t, exists)
}
