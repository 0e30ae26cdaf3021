package models

import (
	"testing"
	"time"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := map[string]string{
		"aapl":       "AAPL",
		"  tcs.ns  ": "TCS.NS",
		"BRK-B":      "BRK-B",
		"":           "",
	}
	for in, want := range tests {
		if got := NormalizeSymbol(in); got != want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStockSnapshot_ToStock(t *testing.T) {
	pe := 27.5
	recorded := time.Date(2026, 4, 30, 10, 0, 0, 0, time.UTC)
	snap := &StockSnapshot{
		Symbol:      "TCS",
		CompanyName: "Tata Consultancy Services",
		Exchange:    "NSE",
		Sector:      "Technology",
		CMP:         3512.4,
		PERatio:     &pe,
		Earnings:    128.1,
		RecordedAt:  recorded,
	}

	stock := snap.ToStock()
	if stock.Symbol != "TCS" || stock.CMP != 3512.4 || stock.Sector != "Technology" {
		t.Errorf("unexpected stock: %+v", stock)
	}
	if stock.PERatio == nil || *stock.PERatio != 27.5 {
		t.Errorf("expected pe_ratio 27.5, got %v", stock.PERatio)
	}
	if stock.LastUpdated == nil || !stock.LastUpdated.Equal(recorded) {
		t.Errorf("expected last_updated %v, got %v", recorded, stock.LastUpdated)
	}
}
