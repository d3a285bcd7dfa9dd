package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"circle/config"
	"circle/internal/delivery/api/middleware"
	"circle/internal/delivery/api/router"
	"circle/internal/delivery/api/router/handler"
	"circle/internal/infra/auth"
	"circle/internal/infra/persistence"
	"circle/internal/infra/persistence/testdb"
	"circle/internal/infra/pubsub"
	"circle/internal/infra/qrcode"
	"circle/internal/infra/storage"
	"circle/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"
)

var pngImage = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testServer struct {
	t    *testing.T
	echo *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Auth:   &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Search: &config.SearchConfig{MaxResults: 20},
		Media:  &config.MediaConfig{BucketURL: "mem://", MaxImageSize: 1 << 20},
	}
	cfg.SecretKey.Session = "api-test-secret"
	cfg.HTTP.MaxRequestBodySize = "12MB"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
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
	publisher := pubsub.NewNoopPublisher(logger)

	accounts := impl.NewAccountService(impl.AccountServiceParams{
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
	sessions := impl.NewSessionService(impl.SessionServiceParams{
		TxManager:    txManager,
		AccountRepo:  accountRepo,
		SessionRepo:  sessionRepo,
		Accounts:     accounts,
		TokenService: tokens,
		Logger:       logger,
	})
	graph := impl.NewGraphService(impl.GraphServiceParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		FollowRepo:  followRepo,
		QRService:   qrcode.NewFromConfig(cfg),
		Publisher:   publisher,
		Logger:      logger,
	})
	posts := impl.NewPostService(impl.PostServiceParams{
		TxManager: txManager,
		PostRepo:  postRepo,
		Storage:   bucket,
		Publisher: publisher,
		Config:    cfg,
		Logger:    logger,
	})
	feed := impl.NewFeedService(impl.FeedServiceParams{PostRepo: postRepo, Logger: logger})
	lifecycle := impl.NewLifecycleService(impl.LifecycleServiceParams{
		TxManager: txManager,
		Storage:   bucket,
		Publisher: publisher,
		Logger:    logger,
	})

	srv, err := NewServer(ServerParams{
		Lc:     fxtest.NewLifecycle(t),
		Cfg:    cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			AccountHandler: handler.NewAccountHandler(handler.AccountHandlerParams{
				AccountUC:   accounts,
				SessionUC:   sessions,
				LifecycleUC: lifecycle,
			}),
			GraphHandler: handler.NewGraphHandler(handler.GraphHandlerParams{
				GraphUC:   graph,
				AccountUC: accounts,
			}),
			PostHandler: handler.NewPostHandler(handler.PostHandlerParams{
				PostUC: posts,
				FeedUC: feed,
			}),
			AuthMiddleware: middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{Sessions: sessions}),
		},
	})
	require.NoError(t, err)

	apiSrv, ok := srv.(*apiServer)
	require.True(t, ok)

	return &testServer{t: t, echo: apiSrv.server}
}

func (s *testServer) do(method, path, token string, body any) (int, *envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	return s.send(req, token)
}

func (s *testServer) upload(path, token, field, filename string, data []byte) (int, *envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(s.t, err)
	_, err = part.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())

	return s.send(req, token)
}

func (s *testServer) send(req *http.Request, token string) (int, *envelope) {
	s.t.Helper()

	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	out := &envelope{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), out))
	}

	return rec.Code, out
}

func (s *testServer) raw(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func decode[T any](t *testing.T, env *envelope) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))

	return out
}

func (s *testServer) register(username, email string) handler.AuthResponse {
	s.t.Helper()

	status, env := s.do(http.MethodPost, "/api/v1/users", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(s.t, http.StatusCreated, status)

	return decode[handler.AuthResponse](s.t, env)
}

func TestServer_HealthCheck(t *testing.T) {
	srv := newTestServer(t)

	status, env := srv.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, env.Meta.RequestID)

	rec := srv.raw("/health/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	status, env = srv.do(http.MethodGet, "/api/v1/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestServer_RegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	alice := srv.register("alice", "Alice@X.com")
	assert.NotEmpty(t, alice.Token)
	assert.Equal(t, "alice@x.com", alice.User.Email)

	t.Run("weak password rejected", func(t *testing.T) {
		status, env := srv.do(http.MethodPost, "/api/v1/users", "", map[string]string{
			"username": "mallory",
			"email":    "m@x.com",
			"password": "mypassword123",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	})

	t.Run("missing field rejected", func(t *testing.T) {
		status, env := srv.do(http.MethodPost, "/api/v1/users", "", map[string]string{"username": "x"})
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	})

	t.Run("login failures are uniform", func(t *testing.T) {
		for _, body := range []map[string]string{
			{"email": "alice@x.com", "password": "wrong-secret"},
			{"email": "nobody@x.com", "password": "secret1"},
		} {
			status, env := srv.do(http.MethodPost, "/api/v1/users/login", "", body)
			assert.Equal(t, http.StatusUnauthorized, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
		}
	})

	t.Run("login issues a second token", func(t *testing.T) {
		status, env := srv.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{
			"email":    "alice@x.com",
			"password": "secret1",
		})
		require.Equal(t, http.StatusOK, status)
		login := decode[handler.AuthResponse](t, env)
		assert.NotEqual(t, alice.Token, login.Token)

		status, env = srv.do(http.MethodGet, "/api/v1/users/me/sessions", login.Token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]handler.SessionResponse](t, env), 2)
	})
}

func TestServer_SessionRevocation(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.register("alice", "alice@x.com")

	status, _ := srv.do(http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = srv.do(http.MethodGet, "/api/v1/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = srv.do(http.MethodGet, "/api/v1/users/me", alice.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = srv.do(http.MethodPost, "/api/v1/users/logout", alice.Token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env := srv.do(http.MethodGet, "/api/v1/users/me", alice.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestServer_FollowFeedAndDelete(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.register("alice", "alice@x.com")
	bob := srv.register("bob", "bob@x.com")

	status, env := srv.do(http.MethodPost, "/api/v1/users/follow", alice.Token, map[string]string{"userId": bob.User.ID.String()})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, decode[handler.AccountResponse](t, env).Follows, bob.User.ID)

	status, env = srv.do(http.MethodPost, "/api/v1/users/follow", alice.Token, map[string]string{"userId": alice.User.ID.String()})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CANNOT_FOLLOW_SELF", env.Error.Code)

	status, env = srv.do(http.MethodPost, "/api/v1/posts", bob.Token, map[string]string{"description": "hello"})
	require.Equal(t, http.StatusCreated, status)
	post := decode[handler.PostResponse](t, env)

	status, env = srv.do(http.MethodGet, "/api/v1/posts", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	feed := decode[[]handler.PostResponse](t, env)
	require.Len(t, feed, 1)
	assert.Equal(t, post.ID, feed[0].ID)

	status, env = srv.do(http.MethodPatch, "/api/v1/posts/"+post.ID.String(), alice.Token, map[string]string{"description": "mine"})
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "POST_NOT_FOUND", env.Error.Code)

	status, env = srv.do(http.MethodPatch, "/api/v1/posts/"+post.ID.String(), bob.Token, map[string]string{"owner": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_UPDATE_FIELD", env.Error.Code)

	status, env = srv.do(http.MethodPost, "/api/v1/posts/"+post.ID.String()+"/like", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []uuid.UUID{alice.User.ID}, decode[handler.PostResponse](t, env).Likes)

	status, env = srv.do(http.MethodPost, "/api/v1/posts/"+post.ID.String()+"/comments", alice.Token, map[string]string{"text": "nice"})
	require.Equal(t, http.StatusCreated, status)
	assert.Len(t, decode[handler.PostResponse](t, env).Comments, 1)

	status, _ = srv.do(http.MethodDelete, "/api/v1/users/me", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = srv.do(http.MethodGet, "/api/v1/posts/"+post.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = srv.do(http.MethodGet, "/api/v1/users/me", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[handler.ProfileResponse](t, env)
	assert.Empty(t, me.User.Follows)

	status, env = srv.do(http.MethodGet, "/api/v1/posts", alice.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]handler.PostResponse](t, env))

	status, _ = srv.do(http.MethodGet, "/api/v1/users/me", bob.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_AvatarAndPublicProfile(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.register("alice", "alice@x.com")

	status, env := srv.upload("/api/v1/users/me/avatar", alice.Token, "avatar", "me.gif", []byte("GIF89a"))
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_IMAGE", env.Error.Code)

	status, _ = srv.upload("/api/v1/users/me/avatar", alice.Token, "avatar", "me.png", pngImage)
	require.Equal(t, http.StatusNoContent, status)

	rec := srv.raw("/api/v1/users/" + alice.User.ID.String() + "/avatar")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, pngImage, rec.Body.Bytes())

	status, env = srv.do(http.MethodGet, "/api/v1/users/"+alice.User.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, status)
	profile := decode[handler.ProfileResponse](t, env)
	assert.True(t, profile.User.HasAvatar)
	assert.Empty(t, profile.Posts)

	status, _ = srv.do(http.MethodGet, "/api/v1/users/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_Search(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.register("alice", "alice@x.com")
	srv.register("Alicia", "alicia@x.com")
	srv.register("bob", "bob@x.com")

	status, env := srv.do(http.MethodPost, "/api/v1/users/search", alice.Token, map[string]string{"username": "ALI"})
	require.Equal(t, http.StatusOK, status)
	found := decode[[]handler.AccountResponse](t, env)
	require.Len(t, found, 1)
	assert.Equal(t, "Alicia", found[0].Username)

	status, env = srv.do(http.MethodPost, "/api/v1/users/search", alice.Token, map[string]string{"username": "  "})
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]handler.AccountResponse](t, env))
}
