// Package errors provides the error vocabulary of the POS API.
// Every failure produced by the services and repositories is an *AppError
// carrying one of the codes below. Mapping a code to a transport status is
// the job of the HTTP layer; nothing in this package knows about HTTP.
package errors

import (
	stderrors "errors"
	"sort"
)

// Error codes.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnknownProduct     = "UNKNOWN_PRODUCT"
	CodeIntegrityConflict  = "INTEGRITY_CONFLICT"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidTaxCategory = "INVALID_TAX_CATEGORY"
	CodeAmountOverflow     = "AMOUNT_OVERFLOW"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError represents a structured application error with an error code,
// a client-safe message, optional structured details and an optional
// internal cause that is logged but never returned to clients.
type AppError struct {
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
	Internal error          `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an *AppError with the same code, so that
// errors.Is(err, ErrNotFound) holds for any NOT_FOUND error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Details:  sentinel.Details,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Details:  sentinel.Details,
		Internal: sentinel.Internal,
	}
}

// WithDetails creates a new AppError with the given details attached.
func WithDetails(sentinel *AppError, details map[string]any) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Details:  details,
		Internal: sentinel.Internal,
	}
}

// CodeOf returns the code of the first *AppError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// UnknownProduct builds an UNKNOWN_PRODUCT error naming the missing product ids.
// The ids are reported in ascending order.
func UnknownProduct(missing []uint) *AppError {
	ids := append([]uint(nil), missing...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &AppError{
		Code:    CodeUnknownProduct,
		Message: ErrUnknownProduct.Message,
		Details: map[string]any{"field": "prd_id", "missing_ids": ids},
	}
}

// MissingProductIDs extracts the ids carried by an UNKNOWN_PRODUCT error.
func MissingProductIDs(err error) []uint {
	var appErr *AppError
	if !stderrors.As(err, &appErr) || appErr.Code != CodeUnknownProduct {
		return nil
	}
	ids, _ := appErr.Details["missing_ids"].([]uint)
	return ids
}

// Core taxonomy.
var (
	ErrValidation         = &AppError{Code: CodeValidation, Message: "Invalid input"}
	ErrUnknownProduct     = &AppError{Code: CodeUnknownProduct, Message: "One or more referenced products do not exist"}
	ErrIntegrityConflict  = &AppError{Code: CodeIntegrityConflict, Message: "The trade conflicts with stored data"}
	ErrStorageUnavailable = &AppError{Code: CodeStorageUnavailable, Message: "Storage is temporarily unavailable"}
	ErrNotFound           = &AppError{Code: CodeNotFound, Message: "Resource not found"}
)

// Lookup misses.
var (
	ErrProductNotFound = &AppError{Code: CodeNotFound, Message: "Product not found"}
	ErrTradeNotFound   = &AppError{Code: CodeNotFound, Message: "Trade not found"}
)

// Tax computation errors.
var (
	ErrInvalidTaxCategory = &AppError{Code: CodeInvalidTaxCategory, Message: "Unsupported tax category"}
	ErrAmountOverflow     = &AppError{Code: CodeAmountOverflow, Message: "Amount exceeds the representable range"}
)

// Transport errors.
var (
	ErrUnauthorized   = &AppError{Code: CodeUnauthorized, Message: "Authentication required"}
	ErrRateLimited    = &AppError{Code: CodeRateLimited, Message: "Too many requests"}
	ErrInternalServer = &AppError{Code: CodeInternal, Message: "An internal error occurred"}
)
