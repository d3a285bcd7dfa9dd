package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"circle/config"
	"circle/internal/domain/service"
	"circle/internal/infra/auth"
	"circle/internal/infra/persistence"
	"circle/internal/infra/persistence/testdb"
	"circle/internal/infra/qrcode"
	"circle/internal/infra/storage"
	"circle/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	pngImage  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegImage = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth:   &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Search: &config.SearchConfig{MaxResults: 20},
		Media:  &config.MediaConfig{BucketURL: "mem://", MaxImageSize: 1 << 20},
	}
	cfg.SecretKey.Session = "test-session-secret"

	return cfg
}

// recordingPublisher keeps every published event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *service.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}

	return types
}

// testApp wires every service on a migrated SQLite database and an in-memory bucket.
type testApp struct {
	db        *gorm.DB
	storage   service.MediaStorage
	publisher *recordingPublisher
	tokens    service.TokenService

	accounts  usecase.AccountUsecase
	sessions  usecase.SessionUsecase
	graph     usecase.GraphUsecase
	posts     usecase.PostUsecase
	feed      usecase.FeedUsecase
	lifecycle usecase.LifecycleUsecase
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := newTestConfig()
	logger := newDiscardLogger()
	db := testdb.New(t)

	bucket, err := storage.Open(context.Background(), cfg.Media.BucketURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bucket.Close() })

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	txManager := persistence.NewTransactionManager(db)
	accountRepo := persistence.NewAccountRepository(db)
	sessionRepo := persistence.NewSessionRepository(db)
	followRepo := persistence.NewFollowRepository(db)
	postRepo := persistence.NewPostRepository(db)
	publisher := &recordingPublisher{}

	accounts := NewAccountService(AccountServiceParams{
		TxManager:    txManager,
		AccountRepo:  accountRepo,
		PostRepo:     postRepo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Storage:      bucket,
		Publisher:    publisher,
		Config:       cfg,
		Logger:       logger,
	})

	return &testApp{
		db:        db,
		storage:   bucket,
		publisher: publisher,
		tokens:    tokens,
		accounts:  accounts,
		sessions: NewSessionService(SessionServiceParams{
			TxManager:    txManager,
			AccountRepo:  accountRepo,
			SessionRepo:  sessionRepo,
			Accounts:     accounts,
			TokenService: tokens,
			Logger:       logger,
		}),
		graph: NewGraphService(GraphServiceParams{
			TxManager:   txManager,
			AccountRepo: accountRepo,
			FollowRepo:  followRepo,
			QRService:   qrcode.NewFromConfig(cfg),
			Publisher:   publisher,
			Logger:      logger,
		}),
		posts: NewPostService(PostServiceParams{
			TxManager: txManager,
			PostRepo:  postRepo,
			Storage:   bucket,
			Publisher: publisher,
			Config:    cfg,
			Logger:    logger,
		}),
		feed: NewFeedService(FeedServiceParams{
			PostRepo: postRepo,
			Logger:   logger,
		}),
		lifecycle: NewLifecycleService(LifecycleServiceParams{
			TxManager: txManager,
			Storage:   bucket,
			Publisher: publisher,
			Logger:    logger,
		}),
	}
}

func (app *testApp) register(t *testing.T, username, email string) *usecase.AuthOutput {
	t.Helper()

	out, err := app.accounts.Register(context.Background(), usecase.RegisterInput{
		Username: username,
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)

	return out
}
