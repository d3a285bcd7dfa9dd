package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"circle/config"
	deliverycontext "circle/internal/delivery/context"
	domainerrors "circle/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		keepSent bool
	}{
		{name: "client id reused", header: "abc-123", keepSent: true},
		{name: "missing id generated", header: ""},
		{name: "id with spaces replaced", header: "bad id"},
		{name: "overlong id replaced", header: strings.Repeat("x", maxClientRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			handler := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Process(func(c echo.Context) error {
				seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())

				return nil
			})
			require.NoError(t, handler(c))

			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
			assert.Equal(t, seen, deliverycontext.GetRequestID(c))
			if tt.keepSent {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
			}
		})
	}
}

func TestLoggerMiddleware_Handle(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		err     error
		wantLog string
	}{
		{name: "success quiet without debug", debug: false},
		{name: "success logged in debug", debug: true, wantLog: "level=INFO"},
		{name: "client error logged as warn in debug", debug: true, err: domainerrors.ErrPostNotFound, wantLog: "status=404"},
		{name: "server error always logged", debug: false, err: domainerrors.ErrInternalError, wantLog: "level=ERROR"},
		{name: "echo error status", debug: true, err: echo.NewHTTPError(http.StatusMethodNotAllowed), wantLog: "status=405"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug

			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/posts", nil), httptest.NewRecorder())

			handler := NewLoggerMiddleware(logger, cfg).Handle(func(c echo.Context) error {
				if tt.err != nil {
					return tt.err
				}

				return c.NoContent(http.StatusOK)
			})
			err := handler(c)
			assert.ErrorIs(t, err, tt.err)

			if tt.wantLog == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.wantLog)
			assert.Contains(t, buf.String(), "uri=/posts")
		})
	}
}
