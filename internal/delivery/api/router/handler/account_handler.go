package handler

import (
	"net/http"
	"time"

	"circle/internal/delivery/api/middleware"
	"circle/internal/delivery/api/response"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC   usecase.AccountUsecase
	SessionUC   usecase.SessionUsecase
	LifecycleUC usecase.LifecycleUsecase
}

// AccountHandler serves registration, sessions, profiles and avatars.
type AccountHandler struct {
	accountUC   usecase.AccountUsecase
	sessionUC   usecase.SessionUsecase
	lifecycleUC usecase.LifecycleUsecase
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC:   params.AccountUC,
		sessionUC:   params.SessionUC,
		lifecycleUC: params.LifecycleUC,
	}
}

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SearchRequest represents the request body for a username search
type SearchRequest struct {
	Username string `json:"username"`
}

// SessionResponse describes one active session. The token itself is never listed.
type SessionResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Register creates an account and returns it with its first token.
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	output, err := h.accountUC.Register(c.Request().Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, &AuthResponse{
		User:  toAccountResponse(output.Account),
		Token: output.Token,
	})
}

func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	output, err := h.sessionUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, &AuthResponse{
		User:  toAccountResponse(output.Account),
		Token: output.Token,
	})
}

// Logout revokes the token the request was made with.
func (h *AccountHandler) Logout(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	token, hasToken := middleware.GetToken(c)
	if !ok || !hasToken {
		return domainerrors.ErrUnauthorized
	}

	if err := h.sessionUC.RevokeOne(c.Request().Context(), accountID, token); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// LogoutAll revokes every token of the account.
func (h *AccountHandler) LogoutAll(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	if err := h.sessionUC.RevokeAll(c.Request().Context(), accountID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) ListSessions(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	sessions, err := h.sessionUC.ListSessions(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	out := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, SessionResponse{
			ID:        session.ID,
			CreatedAt: session.CreatedAt,
		})
	}

	return response.Success(c, http.StatusOK, out)
}

// Me returns the caller's profile with their posts.
func (h *AccountHandler) Me(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	return h.writeProfile(c, accountID)
}

// Profile returns another account's profile with their posts.
func (h *AccountHandler) Profile(c echo.Context) error {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	return h.writeProfile(c, accountID)
}

func (h *AccountHandler) writeProfile(c echo.Context, accountID uuid.UUID) error {
	profile, err := h.accountUC.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, &ProfileResponse{
		User:  toAccountResponse(profile.Account),
		Posts: toPostResponses(profile.Posts),
	})
}

// UpdateMe applies username, email and password changes.
func (h *AccountHandler) UpdateMe(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	fields, err := bindFields(c)
	if err != nil {
		return err
	}

	account, err := h.accountUC.ChangeCredential(c.Request().Context(), accountID, fields)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account))
}

// DeleteMe removes the account and everything it owns.
func (h *AccountHandler) DeleteMe(c echo.Context) error {
	account, ok := middleware.GetAccount(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	if err := h.lifecycleUC.DeleteAccount(c.Request().Context(), account.ID); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) Search(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req SearchRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	accounts, err := h.accountUC.Search(c.Request().Context(), accountID, req.Username)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toAccountResponses(accounts))
}

// UploadAvatar stores the multipart field "avatar".
func (h *AccountHandler) UploadAvatar(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	filename, data, err := readUpload(c, "avatar")
	if err != nil {
		return err
	}

	if err := h.accountUC.SetAvatar(c.Request().Context(), accountID, filename, data); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) DeleteAvatar(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	if err := h.accountUC.RemoveAvatar(c.Request().Context(), accountID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) GetAvatar(c echo.Context) error {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	media, err := h.accountUC.GetAvatar(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return response.Image(c, media.ContentType, media.Data)
}
