package services

import (
	"context"
	"strings"
	"testing"

	"posapi/internal/logger"
	"posapi/internal/models"
	"posapi/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("records_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		svc.Log(context.Background(), "E001", "REGISTER_TRADE", "trade", 42, "10.0.0.8",
			map[string]any{"total_amt": 660})

		var entry models.AuditLog
		if err := db.First(&entry).Error; err != nil {
			t.Fatalf("expected an audit entry: %v", err)
		}
		if entry.Actor != "E001" || entry.ResourceID != 42 || entry.IPAddress != "10.0.0.8" {
			t.Errorf("unexpected entry %+v", entry)
		}
		if !strings.Contains(entry.Changes, `"total_amt":660`) {
			t.Errorf("unexpected changes %q", entry.Changes)
		}
		if entry.ID == "" {
			t.Error("expected a generated id")
		}
	})

	t.Run("written_after_cancel", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		ctx, cancel := context.WithCancel(logger.WithCorrelationID(context.Background(), "corr-1"))
		cancel()
		svc.Log(ctx, "E001", "REGISTER_TRADE", "trade", 1, "", nil)

		if n := testutil.CountRows(t, db, &models.AuditLog{}); n != 1 {
			t.Errorf("expected 1 entry, got %d", n)
		}
	})

	t.Run("failure_is_swallowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)

		svc.Log(context.Background(), "E001", "REGISTER_TRADE", "trade", 1, "", nil)
	})
}
