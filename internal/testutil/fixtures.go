package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"folio/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestStockSnapshot stores a snapshot with a unique symbol in the
// Technology sector, recorded now.
func CreateTestStockSnapshot(t *testing.T, db *gorm.DB) *models.StockSnapshot {
	t.Helper()
	return CreateTestStockSnapshotAt(t, db, fmt.Sprintf("TST%d", nextID()), "Technology", 100, time.Now().UTC())
}

// CreateTestStockSnapshotAt stores a snapshot for the given symbol, sector,
// price and timestamp.
func CreateTestStockSnapshotAt(t *testing.T, db *gorm.DB, symbol, sector string, cmp float64, recordedAt time.Time) *models.StockSnapshot {
	t.Helper()

	pe := 20.0
	snap := &models.StockSnapshot{
		Symbol:      symbol,
		CompanyName: fmt.Sprintf("%s Holdings", symbol),
		Exchange:    "NSE",
		Sector:      sector,
		CMP:         cmp,
		PERatio:     &pe,
		Earnings:    cmp / pe,
		RecordedAt:  recordedAt,
	}
	if err := db.Create(snap).Error; err != nil {
		t.Fatalf("failed to create test stock snapshot: %v", err)
	}
	return snap
}
