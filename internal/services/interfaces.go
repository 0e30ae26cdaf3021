package services

import (
	"time"

	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/portfolio"
)

// StockSnapshotInput is one market data record received from the price feed.
type StockSnapshotInput struct {
	Symbol      string
	CompanyName string
	Exchange    string
	Sector      string
	Industry    string
	CMP         float64
	PERatio     *float64
	Earnings    float64
	MarketCap   *float64
	High52Week  *float64
	Low52Week   *float64
	RecordedAt  time.Time
}

// MarketDataServicer defines the contract for the stock snapshot store.
type MarketDataServicer interface {
	RecordSnapshots(inputs []StockSnapshotInput) (int, error)
	GetLatestSnapshot(symbol string) (*models.StockSnapshot, error)
	GetLatestSnapshots(symbols []string) (map[string]models.StockSnapshot, error)
	ListLatestSnapshots(page pagination.PageRequest) (*pagination.PageResponse[models.StockSnapshot], error)
	GetSnapshotHistory(symbol string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.StockSnapshot], error)
	PruneSnapshots(before time.Time) (int64, error)
}

// HoldingInput is a position submitted for aggregation. When Stock is nil the
// latest stored snapshot for Symbol is used.
type HoldingInput struct {
	Symbol        string
	Stock         *portfolio.Stock
	PurchasePrice float64
	Quantity      float64
	AveragePrice  *float64
	PurchaseDate  *time.Time
}

// PortfolioServicer defines the contract for portfolio aggregation.
type PortfolioServicer interface {
	Aggregate(holdings []HoldingInput) (*portfolio.Portfolio, error)
}
