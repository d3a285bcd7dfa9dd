package auth

import (
	"testing"
	"time"

	"circle/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: ttl}}
	cfg.SecretKey.Session = "test_session_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(0))
	require.NoError(t, err)

	accountID := uuid.New()
	token, err := tokenService.GenerateToken(accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.NotEmpty(t, claims.ID)
	assert.Nil(t, claims.ExpiresAt)
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(0))
	require.NoError(t, err)

	accountID := uuid.New()
	first, err := tokenService.GenerateToken(accountID)
	require.NoError(t, err)
	second, err := tokenService.GenerateToken(accountID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, tokenService.HashToken(first), tokenService.HashToken(second))
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(0))
	require.NoError(t, err)

	claims, err := tokenService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ForeignSecret(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(0))
	require.NoError(t, err)

	other := newTestConfig(0)
	other.SecretKey.Session = "another_secret_key_that_is_long_enough"
	forger, err := NewJWTService(other)
	require.NoError(t, err)

	forged, err := forger.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(forged)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(time.Minute))
	require.NoError(t, err)

	svc, ok := tokenService.(*jwtService)
	require.True(t, ok)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := tokenService.GenerateToken(uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = tokenService.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_NonUUIDSubject(t *testing.T) {
	cfg := newTestConfig(0)
	tokenService, err := NewJWTService(cfg)
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"})
	signed, err := token.SignedString([]byte(cfg.SecretKey.Session))
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(signed)
	assert.Error(t, err)
}

func TestJWTService_HashTokenIsStable(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(0))
	require.NoError(t, err)

	assert.Equal(t, tokenService.HashToken("abc"), tokenService.HashToken("abc"))
	assert.Len(t, tokenService.HashToken("abc"), 64)
}
