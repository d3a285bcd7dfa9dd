// Package middleware holds the echo middleware of the API server.
package middleware

import (
	"strings"

	deliverycontext "circle/internal/delivery/context"
	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	contextKeyAccount = "account"
	contextKeyToken   = "token"

	bearerPrefix = "Bearer "
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Sessions usecase.SessionUsecase
}

// AuthMiddleware resolves bearer tokens against the active session set.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{sessions: params.Sessions}
}

// Authenticate rejects the request unless it carries a token that is still active.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, bearerPrefix)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return domainerrors.ErrUnauthorized
		}

		account, err := m.sessions.ValidateToken(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(contextKeyAccount, account)
		c.Set(contextKeyToken, token)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithAccount(c.Request().Context(), account.ID)))

		return next(c)
	}
}

// GetAccount returns the authenticated account set by Authenticate.
func GetAccount(c echo.Context) (*entity.Account, bool) {
	account, ok := c.Get(contextKeyAccount).(*entity.Account)

	return account, ok && account != nil
}

// GetAccountID returns the id of the authenticated account.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	account, ok := GetAccount(c)
	if !ok {
		return uuid.Nil, false
	}

	return account.ID, true
}

// GetToken returns the bearer token the request was authenticated with.
func GetToken(c echo.Context) (string, bool) {
	token, ok := c.Get(contextKeyToken).(string)

	return token, ok && token != ""
}
