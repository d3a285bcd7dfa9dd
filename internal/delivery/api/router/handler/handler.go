// Package handler contains the HTTP handlers of the API server.
package handler

import (
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"circle/internal/delivery/api/response"
	"circle/internal/delivery/api/validator"
	"circle/internal/domain/entity"
	domainerrors "circle/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountResponse is the public view of an account. Credentials never leave the server.
type AccountResponse struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	HasAvatar bool        `json:"has_avatar"`
	Follows   []uuid.UUID `json:"follows"`
	Followers []uuid.UUID `json:"followers"`
	Posts     []uuid.UUID `json:"posts"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CommentResponse is one comment of a post.
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// PostResponse is the public view of a post with its comments and likes.
type PostResponse struct {
	ID          uuid.UUID         `json:"id"`
	OwnerID     uuid.UUID         `json:"owner_id"`
	Description string            `json:"description"`
	HasImage    bool              `json:"has_image"`
	Comments    []CommentResponse `json:"comments"`
	Likes       []uuid.UUID       `json:"likes"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	User  *AccountResponse `json:"user"`
	Token string           `json:"token"`
}

// ProfileResponse is an account with its posts.
type ProfileResponse struct {
	User  *AccountResponse `json:"user"`
	Posts []*PostResponse  `json:"posts"`
}

func toAccountResponse(account *entity.Account) *AccountResponse {
	return &AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		HasAvatar: account.HasAvatar(),
		Follows:   nonNilIDs(account.Follows),
		Followers: nonNilIDs(account.Followers),
		Posts:     nonNilIDs(account.Posts),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func toAccountResponses(accounts []*entity.Account) []*AccountResponse {
	out := make([]*AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, toAccountResponse(account))
	}

	return out
}

func toPostResponse(post *entity.Post) *PostResponse {
	comments := make([]CommentResponse, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, CommentResponse{
			ID:        comment.ID,
			OwnerID:   comment.OwnerID,
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}

	return &PostResponse{
		ID:          post.ID,
		OwnerID:     post.OwnerID,
		Description: post.Description,
		HasImage:    post.HasImage(),
		Comments:    comments,
		Likes:       nonNilIDs(post.Likes),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func toPostResponses(posts []*entity.Post) []*PostResponse {
	out := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostResponse(post))
	}

	return out
}

func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}

	return ids
}

// bindRequest binds and validates req, reporting failures as VALIDATION_FAILED.
func bindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid request body")
	}

	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(describeFieldErrors(err))
	}

	return nil
}

// bindFields decodes a JSON object body into an update map. Path parameters stay out of it.
func bindFields(c echo.Context) (map[string]any, error) {
	fields := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("request body must be a JSON object")
	}

	return fields, nil
}

func describeFieldErrors(err error) string {
	fields := validator.FieldErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}

	parts := make([]string, 0, len(fields))
	for field, tag := range fields {
		parts = append(parts, field+": "+tag)
	}
	sort.Strings(parts)

	return strings.Join(parts, ", ")
}

// parseIDParam reads a UUID path parameter.
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name)
	}

	return id, nil
}

// readUpload returns the name and content of a multipart file field.
func readUpload(c echo.Context, field string) (string, []byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil, domainerrors.ErrInvalidImage.WithDetails("missing form file " + field)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to read upload")
	}

	return fileHeader.Filename, data, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
