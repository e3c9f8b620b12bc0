package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeConfigMissing     = "CONFIG_MISSING"
	ErrCodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	ErrCodeImportFailed      = "IMPORT_FAILED"
	ErrCodeStorage           = "STORAGE_ERROR"
	ErrCodeSyncInProgress    = "SYNC_IN_PROGRESS"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "IMPORT_FAILED")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code && t.Message == ""
}

// Sentinels for errors.Is checks by code.
var (
	ErrConfigMissing     = &AppError{Code: ErrCodeConfigMissing}
	ErrSourceUnavailable = &AppError{Code: ErrCodeSourceUnavailable}
	ErrImportFailed      = &AppError{Code: ErrCodeImportFailed}
	ErrStorage           = &AppError{Code: ErrCodeStorage}
	ErrSyncInProgress    = &AppError{Code: ErrCodeSyncInProgress}
	ErrNotFound          = &AppError{Code: ErrCodeNotFound}
)

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewConfigMissingError reports a required configuration key that is unset.
func NewConfigMissingError(key string) *AppError {
	return &AppError{
		Code:    ErrCodeConfigMissing,
		Message: key + " not configured",
		Status:  http.StatusInternalServerError,
	}
}

// NewSourceUnavailableError reports a failed call to the game-hosting service.
func NewSourceUnavailableError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeSourceUnavailable,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewImportFailedError carries the analysis service's error payload as Message.
func NewImportFailedError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeImportFailed,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

// NewStorageError wraps a failure reading or writing persisted state.
func NewStorageError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeStorage,
		Message: "storage " + op + " failed",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewSyncInProgressError is returned when another sync holds the lock.
func NewSyncInProgressError() *AppError {
	return &AppError{
		Code:    ErrCodeSyncInProgress,
		Message: "sync already in progress",
		Status:  http.StatusConflict,
	}
}

// PublicMessage is the text exposed to API clients: the message plus the
// wrapped cause for server-side failures that have one.
func (e *AppError) PublicMessage() string {
	if e.Err != nil && e.Code != ErrCodeInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}
