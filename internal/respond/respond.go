// Package respond writes the JSON error envelope shared by handlers and
// middleware, and owns the mapping from error codes to HTTP status.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "posapi/internal/errors"
	"posapi/internal/logger"
)

var statusByCode = map[string]int{
	apperrors.CodeValidation:         http.StatusBadRequest,
	apperrors.CodeUnknownProduct:     http.StatusBadRequest,
	apperrors.CodeInvalidTaxCategory: http.StatusBadRequest,
	apperrors.CodeAmountOverflow:     http.StatusBadRequest,
	apperrors.CodeNotFound:           http.StatusNotFound,
	apperrors.CodeIntegrityConflict:  http.StatusConflict,
	apperrors.CodeUnauthorized:       http.StatusUnauthorized,
	apperrors.CodeRateLimited:        http.StatusTooManyRequests,
	apperrors.CodeStorageUnavailable: http.StatusServiceUnavailable,
}

// Status returns the HTTP status for an error code. Unknown codes map to 500.
func Status(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrorDetail is the inner error object of an error response.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error         ErrorDetail `json:"error"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// Error writes err as a JSON error response and aborts the chain. AppErrors
// keep their code, message and details; anything else is logged and reported
// as a generic internal error.
func Error(c *gin.Context, err error) {
	ctx := c.Request.Context()
	log := logger.From(ctx)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		log.Errorw("app error",
			"code", appErr.Code,
			"message", appErr.Message,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	c.AbortWithStatusJSON(Status(appErr.Code), ErrorResponse{
		Error: ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
		CorrelationID: logger.CorrelationID(ctx),
	})
}
