// Package repository implements the storage ports of the services package
// on top of GORM.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "posapi/internal/errors"
)

// classify maps a driver error onto the error vocabulary. Constraint
// violations become INTEGRITY_CONFLICT; every other failure, including
// cancellation and deadline expiry, becomes STORAGE_UNAVAILABLE.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if isConstraintViolation(err) {
		return apperrors.Wrap(apperrors.ErrIntegrityConflict, fmt.Errorf("%s: %w", op, err))
	}
	return apperrors.Wrap(apperrors.ErrStorageUnavailable, fmt.Errorf("%s: %w", op, err))
}

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	// SQLSTATE class 23: integrity constraint violation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}

	return false
}
