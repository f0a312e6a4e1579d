package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so callers can branch without parsing messages.
type Kind string

const (
	KindInternal     Kind = "internal"
	KindNotFound     Kind = "not_found"
	KindBadRequest   Kind = "bad_request"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"

	// Cart mutation rejections
	KindOutOfStock        Kind = "out_of_stock"
	KindStockLimitReached Kind = "stock_limit_reached"
	KindInsufficientStock Kind = "insufficient_stock"

	// Checkout preconditions
	KindEmptyCart            Kind = "empty_cart"
	KindWorkerRequired       Kind = "worker_required"
	KindInsufficientPayment  Kind = "insufficient_payment"
	KindAlreadySubmitting    Kind = "already_submitting"
	KindCheckoutNotInitiated Kind = "checkout_not_initiated"
	KindConfirmationMismatch Kind = "confirmation_mismatch"

	KindCommitFailed Kind = "commit_failed"
	KindUpstream     Kind = "upstream_unavailable"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind, so
// errors.Is(err, ErrOutOfStock) works for any out-of-stock error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Kind == "" {
		return e == t
	}
	return e.Kind == t.Kind
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrValidation     = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindValidation, Message: "Validation failed"}

	ErrOutOfStock        = &AppError{Code: http.StatusConflict, Kind: KindOutOfStock, Message: "Item is out of stock"}
	ErrStockLimitReached = &AppError{Code: http.StatusConflict, Kind: KindStockLimitReached, Message: "Stock limit reached"}
	ErrInsufficientStock = &AppError{Code: http.StatusConflict, Kind: KindInsufficientStock, Message: "Insufficient stock"}

	ErrEmptyCart            = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindEmptyCart, Message: "Cart is empty"}
	ErrWorkerRequired       = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindWorkerRequired, Message: "Please select a worker before completing the sale"}
	ErrInsufficientPayment  = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInsufficientPayment, Message: "Insufficient payment"}
	ErrAlreadySubmitting    = &AppError{Code: http.StatusConflict, Kind: KindAlreadySubmitting, Message: "A sale is already being submitted for this session"}
	ErrCheckoutNotInitiated = &AppError{Code: http.StatusConflict, Kind: KindCheckoutNotInitiated, Message: "Checkout has not been initiated"}
	ErrConfirmationMismatch = &AppError{Code: http.StatusConflict, Kind: KindConfirmationMismatch, Message: "Confirmation token does not match the pending checkout"}

	ErrCommitFailed = &AppError{Code: http.StatusBadGateway, Kind: KindCommitFailed, Message: "Sale commit failed"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewOutOfStockError reports an add against an item with no stock.
func NewOutOfStockError(name string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindOutOfStock,
		Message: fmt.Sprintf("%s is out of stock", name),
	}
}

// NewStockLimitError reports that the cart already holds every unit in stock.
func NewStockLimitError(name string, stock int) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindStockLimitReached,
		Message: fmt.Sprintf("Cannot add more %s: only %d in stock", name, stock),
	}
}

// NewInsufficientStockError reports a requested quantity above available stock.
func NewInsufficientStockError(name string, requested, stock int) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("Cannot set %s to %d: only %d in stock", name, requested, stock),
	}
}

// NewInsufficientPaymentError reports a received amount below the sale total.
func NewInsufficientPaymentError(received, total string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInsufficientPayment,
		Message: fmt.Sprintf("Received amount %s is less than total %s", received, total),
	}
}

// NewCommitFailedError wraps the persistence collaborator's error. The cause
// is part of the message so the operator sees it verbatim.
func NewCommitFailedError(cause error) *AppError {
	msg := "Sale commit failed"
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindCommitFailed,
		Message: msg,
		Err:     cause,
	}
}

// NewUpstreamError reports a failed read from the persistence collaborator.
func NewUpstreamError(operation string, cause error) *AppError {
	msg := "Failed to " + operation
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindUpstream,
		Message: msg,
		Err:     cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
		Err:     err,
	}
}
