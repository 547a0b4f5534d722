// Package apperror provides structured error handling for the console API.
// Every error surfaced to the console is an AppError so the browser can render
// a consistent notice from {code, message, details}.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal           = "INTERNAL_ERROR"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"

	// Local validation errors (400), raised before any backend call
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidQuantity  = "INVALID_QUANTITY"
	CodeTooLarge         = "ATTACHMENT_TOO_LARGE"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	CodeDuplicateProduct = "DUPLICATE_PRODUCT"

	// Business rule violations (422)
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeRemoteRejected    = "REMOTE_REJECTED"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Duplicate console submissions (409)
	CodeIdempotency = "IDEMPOTENCY_CONFLICT"
)

// GenericRemoteMessage is shown when the backend rejects a request without a usable message.
const GenericRemoteMessage = "The request could not be completed. Please try again."

// AppError is the standard error type.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field, line, bound, sizes)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidQuantity reports a quantity outside its allowed bounds.
// bound names the violated constraint, e.g. "exceeds ordered".
func NewInvalidQuantity(bound string) *AppError {
	return &AppError{
		Code:       CodeInvalidQuantity,
		Message:    fmt.Sprintf("invalid quantity: %s", bound),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"bound": bound},
	}
}

// NewTooLarge reports an attachment whose decoded size exceeds the ceiling.
func NewTooLarge(sizeBytes, maxBytes int64) *AppError {
	return &AppError{
		Code:       CodeTooLarge,
		Message:    fmt.Sprintf("attachment is %.2f MB, limit is %.2f MB", megabytes(sizeBytes), megabytes(maxBytes)),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"sizeBytes": sizeBytes, "maxBytes": maxBytes},
	}
}

// NewUnsupportedMedia reports an attachment of a MIME type that is not accepted.
func NewUnsupportedMedia(mime string, allowed []string) *AppError {
	return &AppError{
		Code:       CodeUnsupportedMedia,
		Message:    fmt.Sprintf("unsupported file type %q", mime),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"mime": mime, "allowed": allowed},
	}
}

// NewDuplicateProduct reports a product selected in more than one stock-in row.
func NewDuplicateProduct(productID string, row int) *AppError {
	return &AppError{
		Code:       CodeDuplicateProduct,
		Message:    "product is already selected in another row",
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"productId": productID, "row": row},
	}
}

// NewInvalidStatus creates an error for an action not allowed in the current status (422).
func NewInvalidStatus(entity, status, action string) *AppError {
	return &AppError{
		Code:       CodeInvalidStatus,
		Message:    fmt.Sprintf("%s in status %q does not allow %s", entity, status, action),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"entity": entity, "status": status, "action": action},
	}
}

// NewInsufficientStock creates a stock shortage error
func NewInsufficientStock(productID string, requested, available float64) *AppError {
	return &AppError{
		Code:       CodeInsufficientStock,
		Message:    "Insufficient stock",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"productId": productID,
			"requested": requested,
			"available": available,
		},
	}
}

// NewRemoteRejected wraps a business-rule rejection returned by the inventory backend.
// message is the backend's own message, passed through verbatim when present.
func NewRemoteRejected(status int, message string) *AppError {
	if message == "" {
		message = GenericRemoteMessage
	}
	httpStatus := status
	if httpStatus < 400 || httpStatus >= 500 {
		httpStatus = http.StatusBadGateway
	}
	return &AppError{
		Code:       CodeRemoteRejected,
		Message:    message,
		HTTPStatus: httpStatus,
		Details:    map[string]any{"backendStatus": status},
	}
}

// NewBackendUnavailable reports a transport failure talking to the backend.
func NewBackendUnavailable(err error) *AppError {
	return &AppError{
		Code:       CodeBackendUnavailable,
		Message:    "Inventory service is unavailable. Please try again later.",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewIdempotencyConflict creates error when the same submission is still in progress
func NewIdempotencyConflict(key string) *AppError {
	return &AppError{
		Code:       CodeIdempotency,
		Message:    "Operation already in progress or completed",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"idempotency_key": key},
	}
}

// NewIdempotencyMismatch is returned when an idempotency key is reused for a different request body.
func NewIdempotencyMismatch(key string) *AppError {
	return &AppError{
		Code:       CodeIdempotency,
		Message:    "Idempotency key mismatch",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"idempotency_key": key},
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

func megabytes(b int64) float64 {
	return float64(b) / (1024 * 1024)
}
