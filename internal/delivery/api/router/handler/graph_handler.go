package handler

import (
	"context"
	"net/http"

	"circle/internal/delivery/api/middleware"
	"circle/internal/delivery/api/response"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// GraphHandlerParams holds dependencies for GraphHandler, injected by Fx.
type GraphHandlerParams struct {
	fx.In

	GraphUC   usecase.GraphUsecase
	AccountUC usecase.AccountUsecase
}

// GraphHandler serves follow edges and follow QR codes.
type GraphHandler struct {
	graphUC   usecase.GraphUsecase
	accountUC usecase.AccountUsecase
}

// NewGraphHandler is the constructor for GraphHandler
func NewGraphHandler(params GraphHandlerParams) *GraphHandler {
	return &GraphHandler{
		graphUC:   params.GraphUC,
		accountUC: params.AccountUC,
	}
}

// FollowRequest names the account to follow or unfollow.
type FollowRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// FollowQRRequest carries a scanned QR payload.
type FollowQRRequest struct {
	Payload string `json:"payload" validate:"required"`
}

func (h *GraphHandler) Follow(c echo.Context) error {
	return h.changeEdge(c, h.graphUC.Follow)
}

// Unfollow succeeds even when the caller did not follow the target.
func (h *GraphHandler) Unfollow(c echo.Context) error {
	return h.changeEdge(c, h.graphUC.Unfollow)
}

type edgeChange func(ctx context.Context, selfID, targetID uuid.UUID) error

func (h *GraphHandler) changeEdge(c echo.Context, change edgeChange) error {
	selfID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req FollowRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid userId")
	}

	if err := change(c.Request().Context(), selfID, targetID); err != nil {
		return err
	}

	return h.writeSelf(c, selfID)
}

// FollowQRCode renders the caller's follow QR code as PNG.
func (h *GraphHandler) FollowQRCode(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	png, err := h.graphUC.FollowQRCode(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return response.PNG(c, png)
}

// FollowByQRCode follows the account encoded in a scanned payload.
func (h *GraphHandler) FollowByQRCode(c echo.Context) error {
	selfID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req FollowQRRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	if err := h.graphUC.FollowByQRCode(c.Request().Context(), selfID, req.Payload); err != nil {
		return err
	}

	return h.writeSelf(c, selfID)
}

// writeSelf responds with the caller's refreshed account.
func (h *GraphHandler) writeSelf(c echo.Context, selfID uuid.UUID) error {
	profile, err := h.accountUC.GetProfile(c.Request().Context(), selfID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toAccountResponse(profile.Account))
}
