package handler

import (
	"net/http"

	"circle/internal/delivery/api/middleware"
	"circle/internal/delivery/api/response"
	domainerrors "circle/internal/domain/errors"
	"circle/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PostHandlerParams holds dependencies for PostHandler, injected by Fx.
type PostHandlerParams struct {
	fx.In

	PostUC usecase.PostUsecase
	FeedUC usecase.FeedUsecase
}

// PostHandler serves posts, their comments, likes and images, and the feed.
type PostHandler struct {
	postUC usecase.PostUsecase
	feedUC usecase.FeedUsecase
}

// NewPostHandler is the constructor for PostHandler
func NewPostHandler(params PostHandlerParams) *PostHandler {
	return &PostHandler{
		postUC: params.PostUC,
		feedUC: params.FeedUC,
	}
}

// CreatePostRequest represents the request body for a new post
type CreatePostRequest struct {
	Description string `json:"description"`
}

// CommentRequest represents the request body for a new comment
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *PostHandler) Create(c echo.Context) error {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req CreatePostRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	post, err := h.postUC.Create(c.Request().Context(), ownerID, usecase.CreatePostInput{
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toPostResponse(post))
}

// Feed returns posts of followed accounts, newest first.
func (h *PostHandler) Feed(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	posts, err := h.feedUC.Feed(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPostResponses(posts))
}

// OwnPosts returns the caller's posts, newest first.
func (h *PostHandler) OwnPosts(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	posts, err := h.feedUC.OwnPosts(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPostResponses(posts))
}

func (h *PostHandler) Get(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postUC.GetByID(c.Request().Context(), postID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

// Update changes the description of a post the caller owns.
func (h *PostHandler) Update(c echo.Context) error {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	fields, err := bindFields(c)
	if err != nil {
		return err
	}

	post, err := h.postUC.Update(c.Request().Context(), postID, ownerID, fields)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) Delete(c echo.Context) error {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postUC.Delete(c.Request().Context(), postID, ownerID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) Like(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postUC.Like(c.Request().Context(), postID, accountID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) Unlike(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postUC.Unlike(c.Request().Context(), postID, accountID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) AddComment(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	post, err := h.postUC.AddComment(c.Request().Context(), postID, accountID, req.Text)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toPostResponse(post))
}

// UploadImage attaches the multipart field "image" to a post the caller owns.
func (h *PostHandler) UploadImage(c echo.Context) error {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	filename, data, err := readUpload(c, "image")
	if err != nil {
		return err
	}

	post, err := h.postUC.SetImage(c.Request().Context(), postID, ownerID, filename, data)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) DeleteImage(c echo.Context) error {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postUC.RemoveImage(c.Request().Context(), postID, ownerID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) GetImage(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	media, err := h.postUC.GetImage(c.Request().Context(), postID)
	if err != nil {
		return err
	}

	return response.Image(c, media.ContentType, media.Data)
}
