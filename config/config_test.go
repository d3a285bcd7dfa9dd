package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: circle
  log:
    level: debug
http:
  port: 8080
database:
  driver: sqlite
  migrate: true
secretKey:
  session: from-file
auth:
  bcryptCost: 4
  tokenTtl: 24h
`

func TestLoadWithEnv_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfigYAML), 0o600))
	t.Chdir(dir)

	t.Setenv("SECRETKEY_SESSION", "from-env")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "circle", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "from-env", cfg.SecretKey.Session)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.True(t, cfg.Database.Migrate)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, "24h0m0s", cfg.Auth.TokenTTL.String())
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.NotNil(t, cfg.SQLite)
	assert.Equal(t, defaultSQLitePath, cfg.SQLite.Path)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, defaultMaxSearchResults, cfg.Search.MaxResults)
	assert.Equal(t, defaultMediaBucketURL, cfg.Media.BucketURL)
	assert.Equal(t, int64(defaultMaxImageSize), cfg.Media.MaxImageSize)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: DriverPostgres},
		Search:   &SearchConfig{MaxResults: 5},
		Media:    &MediaConfig{BucketURL: "file:///tmp/media", MaxImageSize: 1024},
	}

	applyDefaults(cfg)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Nil(t, cfg.SQLite)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "file:///tmp/media", cfg.Media.BucketURL)
	assert.Equal(t, int64(1024), cfg.Media.MaxImageSize)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CIRCLE_DOTENV_PROBE=loaded\n"), 0o600))
	t.Setenv("CIRCLE_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("CIRCLE_DOTENV_PROBE"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("CIRCLE_DOTENV_PROBE"))

	require.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))
}
