package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "posapi/internal/errors"
	"posapi/internal/testutil"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"duplicate_key", gorm.ErrDuplicatedKey, apperrors.CodeIntegrityConflict},
		{"foreign_key", fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated), apperrors.CodeIntegrityConflict},
		{"check_constraint", gorm.ErrCheckConstraintViolated, apperrors.CodeIntegrityConflict},
		{"pg_unique", &pgconn.PgError{Code: "23505"}, apperrors.CodeIntegrityConflict},
		{"pg_not_null", &pgconn.PgError{Code: "23502"}, apperrors.CodeIntegrityConflict},
		{"pg_connection", &pgconn.PgError{Code: "08006"}, apperrors.CodeStorageUnavailable},
		{"sqlite_constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, apperrors.CodeIntegrityConflict},
		{"sqlite_busy", sqlite3.Error{Code: sqlite3.ErrBusy}, apperrors.CodeStorageUnavailable},
		{"deadline", context.DeadlineExceeded, apperrors.CodeStorageUnavailable},
		{"other", errors.New("connection refused"), apperrors.CodeStorageUnavailable},
		{"app_error_kept", apperrors.ErrTradeNotFound, apperrors.CodeNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.AssertAppError(t, classify(tc.err, "op"), tc.want)
		})
	}

	t.Run("nil", func(t *testing.T) {
		if err := classify(nil, "op"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("keeps_cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := classify(cause, "find products")
		if !errors.Is(err, cause) {
			t.Error("expected the driver error to stay reachable")
		}
	})
}
