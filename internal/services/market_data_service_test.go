package services

import (
	"math"
	"testing"
	"time"

	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/portfolio"
	"folio/internal/testutil"
)

func snapshotInput(symbol string, cmp float64, at time.Time) StockSnapshotInput {
	pe := 22.0
	return StockSnapshotInput{
		Symbol:      symbol,
		CompanyName: symbol + " Ltd",
		Exchange:    "NSE",
		Sector:      "Technology",
		CMP:         cmp,
		PERatio:     &pe,
		Earnings:    cmp / pe,
		RecordedAt:  at,
	}
}

var baseTime = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func TestRecordSnapshots(t *testing.T) {
	t.Run("stores_new_snapshots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		count, err := svc.RecordSnapshots([]StockSnapshotInput{
			snapshotInput("tcs", 3500, baseTime),
			snapshotInput("INFY", 1500, baseTime),
		})
		testutil.AssertNoError(t, err)

		if count != 2 {
			t.Errorf("expected 2 snapshots recorded, got %d", count)
		}

		var stored []models.StockSnapshot
		db.Order("symbol ASC").Find(&stored)
		if len(stored) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(stored))
		}
		if stored[1].Symbol != "TCS" {
			t.Errorf("expected normalized symbol TCS, got %s", stored[1].Symbol)
		}
	})

	t.Run("skips_duplicates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		_, err := svc.RecordSnapshots([]StockSnapshotInput{snapshotInput("TCS", 3500, baseTime)})
		testutil.AssertNoError(t, err)

		count, err := svc.RecordSnapshots([]StockSnapshotInput{
			snapshotInput("TCS", 3500, baseTime),
			snapshotInput("TCS", 3550, baseTime.Add(time.Hour)),
		})
		testutil.AssertNoError(t, err)

		if count != 1 {
			t.Errorf("expected 1 new snapshot, got %d", count)
		}
	})

	t.Run("empty_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		_, err := svc.RecordSnapshots(nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_batch_with_negative_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		_, err := svc.RecordSnapshots([]StockSnapshotInput{
			snapshotInput("TCS", 3500, baseTime),
			snapshotInput("BAD", -1, baseTime),
		})
		testutil.AssertAppError(t, err, "INVALID_MARKET_PRICE")

		var count int64
		db.Model(&models.StockSnapshot{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no rows after rejected batch, got %d", count)
		}
	})

	t.Run("rejects_nan_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		_, err := svc.RecordSnapshots([]StockSnapshotInput{snapshotInput("BAD", math.NaN(), baseTime)})
		testutil.AssertAppError(t, err, "INVALID_MARKET_PRICE")
	})

	t.Run("zero_price_is_valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		count, err := svc.RecordSnapshots([]StockSnapshotInput{snapshotInput("HALTED", 0, baseTime)})
		testutil.AssertNoError(t, err)
		if count != 1 {
			t.Errorf("expected 1 snapshot, got %d", count)
		}
	})

	t.Run("unknown_exchange", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		tax := portfolio.NewTaxonomy("", nil, []string{"NSE", "BSE"})
		svc := NewMarketDataService(db, tax)

		in := snapshotInput("AAPL", 190, baseTime)
		in.Exchange = "NASDAQ"
		_, err := svc.RecordSnapshots([]StockSnapshotInput{in})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_recorded_at", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		_, err := svc.RecordSnapshots([]StockSnapshotInput{snapshotInput("TCS", 3500, time.Time{})})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetLatestSnapshot(t *testing.T) {
	t.Run("returns_most_recent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3400, baseTime)
		testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3600, baseTime.Add(2*time.Hour))
		testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3500, baseTime.Add(time.Hour))

		snap, err := svc.GetLatestSnapshot("tcs")
		testutil.AssertNoError(t, err)

		if snap.CMP != 3600 {
			t.Errorf("expected latest cmp 3600, got %f", snap.CMP)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		_, err := svc.GetLatestSnapshot("NOPE")
		testutil.AssertAppError(t, err, "STOCK_NOT_FOUND")
	})
}

func TestGetLatestSnapshots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMarketDataService(db, nil)

	testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3400, baseTime)
	testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3600, baseTime.Add(time.Hour))
	testutil.CreateTestStockSnapshotAt(t, db, "HDFCBANK", "Financials", 1650, baseTime)

	latest, err := svc.GetLatestSnapshots([]string{"tcs", "TCS", "hdfcbank", "MISSING", ""})
	testutil.AssertNoError(t, err)

	if len(latest) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(latest))
	}
	if latest["TCS"].CMP != 3600 {
		t.Errorf("expected TCS cmp 3600, got %f", latest["TCS"].CMP)
	}
	if latest["HDFCBANK"].Sector != "Financials" {
		t.Errorf("expected HDFCBANK sector Financials, got %s", latest["HDFCBANK"].Sector)
	}
	if _, ok := latest["MISSING"]; ok {
		t.Error("expected MISSING to be absent")
	}
}

func TestListLatestSnapshots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMarketDataService(db, nil)

	testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3400, baseTime)
	testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3600, baseTime.Add(time.Hour))
	testutil.CreateTestStockSnapshotAt(t, db, "INFY", "Technology", 1500, baseTime)
	testutil.CreateTestStockSnapshotAt(t, db, "ITC", "", 450, baseTime)

	result, err := svc.ListLatestSnapshots(pagination.PageRequest{Page: 1, PageSize: 2})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Errorf("expected 3 distinct symbols, got %d", result.TotalItems)
	}
	if len(result.Data) != 2 {
		t.Fatalf("expected 2 items on first page, got %d", len(result.Data))
	}
	if result.Data[0].Symbol != "INFY" || result.Data[1].Symbol != "ITC" {
		t.Errorf("expected INFY, ITC ordering, got %s, %s", result.Data[0].Symbol, result.Data[1].Symbol)
	}

	second, err := svc.ListLatestSnapshots(pagination.PageRequest{Page: 2, PageSize: 2})
	testutil.AssertNoError(t, err)
	if len(second.Data) != 1 || second.Data[0].CMP != 3600 {
		t.Errorf("expected latest TCS snapshot on page 2, got %+v", second.Data)
	}
}

func TestGetSnapshotHistory(t *testing.T) {
	t.Run("filters_by_range_newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		for i := 0; i < 5; i++ {
			testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3400+float64(i), baseTime.AddDate(0, 0, i))
		}

		result, err := svc.GetSnapshotHistory("tcs", baseTime.AddDate(0, 0, 1), baseTime.AddDate(0, 0, 3), pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Fatalf("expected 3 snapshots in range, got %d", result.TotalItems)
		}
		if result.Data[0].CMP != 3403 {
			t.Errorf("expected newest first (3403), got %f", result.Data[0].CMP)
		}
	})

	t.Run("inverted_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		_, err := svc.GetSnapshotHistory("TCS", baseTime, baseTime.Add(-time.Hour), pagination.PageRequest{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestPruneSnapshots(t *testing.T) {
	t.Run("keeps_latest_per_symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3400, baseTime)
		testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3500, baseTime.AddDate(0, 0, 1))
		testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3600, baseTime.AddDate(0, 0, 10))
		// Only snapshot for INFY, older than the cutoff: must survive.
		testutil.CreateTestStockSnapshotAt(t, db, "INFY", "Technology", 1500, baseTime)

		deleted, err := svc.PruneSnapshots(baseTime.AddDate(0, 0, 5))
		testutil.AssertNoError(t, err)

		if deleted != 2 {
			t.Errorf("expected 2 snapshots pruned, got %d", deleted)
		}

		var remaining int64
		db.Model(&models.StockSnapshot{}).Count(&remaining)
		if remaining != 2 {
			t.Errorf("expected 2 snapshots remaining, got %d", remaining)
		}

		infy, err := svc.GetLatestSnapshot("INFY")
		testutil.AssertNoError(t, err)
		if infy.CMP != 1500 {
			t.Errorf("expected INFY to be kept, got cmp %f", infy.CMP)
		}
	})

	t.Run("nothing_to_prune", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMarketDataService(db, nil)

		testutil.CreateTestStockSnapshotAt(t, db, "TCS", "Technology", 3400, baseTime)

		deleted, err := svc.PruneSnapshots(baseTime.Add(-time.Hour))
		testutil.AssertNoError(t, err)
		if deleted != 0 {
			t.Errorf("expected nothing pruned, got %d", deleted)
		}
	})
}
