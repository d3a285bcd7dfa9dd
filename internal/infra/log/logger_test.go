package logs

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"circle/config"
	"circle/internal/domain/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "warn"

	logger, err := New(Params{Config: cfg})
	require.NoError(t, err)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))

	cfg.Env.Log.Level = "nope"
	_, err = New(Params{Config: cfg})
	assert.Error(t, err)
}

func TestNewLogger_Format(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		pretty   bool
		wantJSON bool
	}{
		{name: "json by default", env: "local", wantJSON: true},
		{name: "pretty text locally", env: "local", pretty: true},
		{name: "production stays json", env: constants.EnvProduction, pretty: true, wantJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Env.Env = tt.env
			cfg.Env.ServiceName = "circle"
			cfg.Env.Log.Pretty = tt.pretty

			var buf bytes.Buffer
			logger, err := newLogger(cfg, &buf)
			require.NoError(t, err)
			logger.Info("hello")

			assert.Equal(t, tt.wantJSON, strings.HasPrefix(buf.String(), "{"))
			assert.Contains(t, buf.String(), "circle")
		})
	}
}
