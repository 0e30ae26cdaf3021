package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"folio/internal/portfolio"
)

// StockSnapshot is one market data record for a symbol as delivered by the
// price feed. Snapshots are append-only: a refresh inserts a new row and the
// latest RecordedAt wins.
type StockSnapshot struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol      string    `gorm:"not null;uniqueIndex:uq_stock_snapshots_symbol_recorded" json:"symbol"`
	CompanyName string    `gorm:"not null" json:"company_name"`
	Exchange    string    `gorm:"not null" json:"exchange"`
	Sector      string    `json:"sector"`
	Industry    string    `json:"industry,omitempty"`
	CMP         float64   `gorm:"column:cmp;not null" json:"cmp"`
	PERatio     *float64  `gorm:"column:pe_ratio" json:"pe_ratio,omitempty"`
	Earnings    float64   `gorm:"not null;default:0" json:"earnings"`
	MarketCap   *float64  `json:"market_cap,omitempty"`
	High52Week  *float64  `gorm:"column:high_52_week" json:"high_52_week,omitempty"`
	Low52Week   *float64  `gorm:"column:low_52_week" json:"low_52_week,omitempty"`
	RecordedAt  time.Time `gorm:"not null;uniqueIndex:uq_stock_snapshots_symbol_recorded" json:"recorded_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate normalizes the symbol and assigns a UUIDv7.
func (s *StockSnapshot) BeforeCreate(tx *gorm.DB) error {
	s.Symbol = NormalizeSymbol(s.Symbol)
	if s.ID == "" {
		id, err := newID()
		if err != nil {
			return err
		}
		s.ID = id
	}
	return nil
}

// ToStock converts the snapshot into the aggregation engine's Stock value.
func (s *StockSnapshot) ToStock() portfolio.Stock {
	recordedAt := s.RecordedAt
	return portfolio.Stock{
		Symbol:      s.Symbol,
		CompanyName: s.CompanyName,
		Exchange:    s.Exchange,
		Sector:      s.Sector,
		Industry:    s.Industry,
		CMP:         s.CMP,
		PERatio:     s.PERatio,
		Earnings:    s.Earnings,
		MarketCap:   s.MarketCap,
		High52Week:  s.High52Week,
		Low52Week:   s.Low52Week,
		LastUpdated: &recordedAt,
	}
}

// NormalizeSymbol returns the canonical, case-insensitive form of a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
