package portfolio

import "time"

// Stock is a point-in-time market snapshot of a listed security. It is
// replaced wholesale on refresh, never patched field by field.
type Stock struct {
	Symbol      string     `json:"symbol"`
	CompanyName string     `json:"company_name"`
	Exchange    string     `json:"exchange"`
	Sector      string     `json:"sector"`
	Industry    string     `json:"industry,omitempty"`
	CMP         float64    `json:"cmp"`
	PERatio     *float64   `json:"pe_ratio,omitempty"`
	Earnings    float64    `json:"earnings"`
	MarketCap   *float64   `json:"market_cap,omitempty"`
	High52Week  *float64   `json:"high_52_week,omitempty"`
	Low52Week   *float64   `json:"low_52_week,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// Holding is one position fed to the aggregator: a stock snapshot plus the
// purchase lot data.
type Holding struct {
	Stock         Stock
	PurchasePrice float64
	Quantity      float64
	AveragePrice  *float64
	PurchaseDate  *time.Time
}

// CostBasis returns the per-share price used for invested capital: the
// average price when present, the purchase price otherwise.
func (h Holding) CostBasis() float64 {
	if h.AveragePrice != nil {
		return *h.AveragePrice
	}
	return h.PurchasePrice
}

// Row is a holding together with its derived financial metrics. The derived
// fields are only ever produced by Aggregate.
type Row struct {
	Stock         Stock      `json:"stock"`
	PurchasePrice float64    `json:"purchase_price"`
	Quantity      float64    `json:"quantity"`
	AveragePrice  *float64   `json:"average_price,omitempty"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`

	Investment      float64 `json:"investment"`
	PresentValue    float64 `json:"present_value"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
}

// SectorSummary aggregates every row sharing a sector label.
type SectorSummary struct {
	Sector            string   `json:"sector"`
	Stocks            []string `json:"stocks"`
	StockCount        int      `json:"stock_count"`
	TotalInvestment   float64  `json:"total_investment"`
	TotalPresentValue float64  `json:"total_present_value"`
	TotalGainLoss     float64  `json:"total_gain_loss"`
	GainLossPercent   float64  `json:"gain_loss_percent"`
	PortfolioWeight   float64  `json:"portfolio_weight"`
	AveragePERatio    float64  `json:"average_pe_ratio"`
}

// Portfolio is the root aggregate returned by Aggregate.
//
// LastUpdated is the only field that may differ between two aggregations of
// identical input when no holding carries a Stock.LastUpdated.
type Portfolio struct {
	Rows                 []Row           `json:"rows"`
	SectorSummaries      []SectorSummary `json:"sector_summaries"`
	TotalInvestment      float64         `json:"total_investment"`
	TotalPresentValue    float64         `json:"total_present_value"`
	TotalGainLoss        float64         `json:"total_gain_loss"`
	TotalGainLossPercent float64         `json:"total_gain_loss_percent"`
	LastUpdated          time.Time       `json:"last_updated"`
}
