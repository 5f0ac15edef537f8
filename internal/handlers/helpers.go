package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "posapi/internal/errors"
	"posapi/internal/respond"
	appvalidator "posapi/internal/validator"
)

// parsePathID parses a positive uint path parameter.
// Returns ErrValidation if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrValidation, "Invalid "+param)
	}
	return uint(id), nil
}

// bindingError turns a gin binding failure into a VALIDATION_ERROR with the
// failing fields attached.
func bindingError(err error) error {
	fields, summary := appvalidator.Describe(err)
	appErr := apperrors.WithMessage(apperrors.ErrValidation, summary)
	if len(fields) > 0 {
		appErr = apperrors.WithDetails(appErr, map[string]any{"fields": fields})
	}
	return appErr
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	respond.Error(c, err)
}
