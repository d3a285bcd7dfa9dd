// Package context carries request-scoped values from the HTTP layer down to the usecases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type scopeKey int

const (
	requestIDKey scopeKey = iota
	loggerKey
	accountIDKey
)

const (
	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = echo.HeaderXRequestID

	echoRequestIDKey = "request_id"
)

// GetRequestID returns the request ID stored on c, falling back to the response header.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoRequestIDKey).(string); ok && id != "" {
		return id
	}

	return c.Response().Header().Get(HeaderXRequestID)
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

// GetRequestIDFromContext returns the request ID, or "" outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback outside a request.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithAccount records the authenticated account and tags the request logger with it.
func WithAccount(ctx context.Context, accountID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, accountIDKey, accountID)
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("account_id", accountID.String())))
	}

	return ctx
}

// GetAccountIDFromContext returns the authenticated account, if any.
func GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDKey).(uuid.UUID)

	return id, ok
}
