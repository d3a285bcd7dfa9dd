package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information.
// The copy still matches the original through errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches copies produced by WithDetails against the predefined error.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.httpCode == other.httpCode && e.errorCode == other.errorCode
}

// Predefined error types
var (
	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	ErrEmailAlreadyInUse = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_ALREADY_IN_USE",
		"此電子郵件已被註冊",
		"",
	)

	ErrInvalidUpdateField = NewBaseError(
		http.StatusBadRequest,
		"INVALID_UPDATE_FIELD",
		"包含不可修改的欄位",
		"",
	)

	ErrInvalidImage = NewBaseError(
		http.StatusBadRequest,
		"INVALID_IMAGE",
		"請上傳 jpg、jpeg 或 png 圖片",
		"",
	)

	ErrCannotFollowSelf = NewBaseError(
		http.StatusBadRequest,
		"CANNOT_FOLLOW_SELF",
		"無法追蹤自己",
		"",
	)

	ErrInvalidQRCode = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QR_CODE",
		"無效的 QR Code",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"無法登入",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"請先登入",
		"",
	)

	// Lookup errors
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"找不到該使用者",
		"",
	)

	ErrPostNotFound = NewBaseError(
		http.StatusNotFound,
		"POST_NOT_FOUND",
		"找不到該貼文",
		"",
	)

	ErrMediaNotFound = NewBaseError(
		http.StatusNotFound,
		"MEDIA_NOT_FOUND",
		"找不到該圖片",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"密碼處理錯誤",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"存取被拒絕",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"找不到該資源",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "資料庫執行失敗"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// InternalError reports a failed multi-step operation. Nothing of the operation was applied.
type InternalError struct {
	cause   error
	details string
}

// NewInternalError wraps cause as an INTERNAL_ERROR.
func NewInternalError(cause error, details string) AppError {
	return &InternalError{
		cause:   cause,
		details: details,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	return errors.Wrap(e.cause, e.details).Error()
}

// Unwrap exposes the cause.
func (e *InternalError) Unwrap() error {
	return e.cause
}

// Is lets callers match against ErrInternalError.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternalError
}

// HTTPCode returns the HTTP status code
func (e *InternalError) HTTPCode() int {
	return ErrInternalError.HTTPCode()
}

// ErrorCode returns the business error code
func (e *InternalError) ErrorCode() string {
	return ErrInternalError.ErrorCode()
}

// Message returns the user-friendly error message
func (e *InternalError) Message() string {
	return ErrInternalError.Message()
}

// Details returns detailed error information
func (e *InternalError) Details() string {
	return e.details
}

// IsClientError reports whether err carries an AppError with a 4xx status.
func IsClientError(err error) bool {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.HTTPCode() >= http.StatusBadRequest && appErr.HTTPCode() < http.StatusInternalServerError
}

// AsInternal keeps client errors as they are and turns everything else into an InternalError.
func AsInternal(err error, details string) error {
	if err == nil || IsClientError(err) {
		return err
	}

	return NewInternalError(err, details)
}
