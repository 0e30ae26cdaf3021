package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/pagination"
	"folio/internal/services"
)

// StockHandler serves stored market data and accepts price feed uploads.
type StockHandler struct {
	marketDataService services.MarketDataServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(marketDataService services.MarketDataServicer) *StockHandler {
	return &StockHandler{marketDataService: marketDataService}
}

// RecordSnapshotsRequest represents the request payload for bulk snapshot recording.
type RecordSnapshotsRequest struct {
	Stocks []SnapshotEntry `json:"stocks" binding:"required,min=1,dive"`
}

// SnapshotEntry represents a single stock snapshot in a bulk request.
type SnapshotEntry struct {
	Symbol      string    `json:"symbol" binding:"required,symbol"`
	CompanyName string    `json:"company_name" binding:"required,max=200"`
	Exchange    string    `json:"exchange" binding:"required,max=32"`
	Sector      string    `json:"sector" binding:"max=100"`
	Industry    string    `json:"industry,omitempty" binding:"max=100"`
	CMP         float64   `json:"cmp" binding:"finite"`
	PERatio     *float64  `json:"pe_ratio,omitempty"`
	Earnings    float64   `json:"earnings"`
	MarketCap   *float64  `json:"market_cap,omitempty"`
	High52Week  *float64  `json:"high_52_week,omitempty"`
	Low52Week   *float64  `json:"low_52_week,omitempty"`
	RecordedAt  time.Time `json:"recorded_at" binding:"required"`
}

// RecordSnapshots handles bulk snapshot recording from the price feed.
// @Summary     Record stock snapshots
// @Description Bulk record market snapshots (pipeline endpoint). Snapshots already stored for the same symbol and timestamp are skipped.
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body RecordSnapshotsRequest true "Snapshot entries"
// @Success     200 {object} map[string]int "Snapshots recorded count"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/stocks [post]
func (h *StockHandler) RecordSnapshots(c *gin.Context) {
	var req RecordSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inputs := make([]services.StockSnapshotInput, len(req.Stocks))
	for i, s := range req.Stocks {
		inputs[i] = services.StockSnapshotInput{
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
			RecordedAt:  s.RecordedAt,
		}
	}

	count, err := h.marketDataService.RecordSnapshots(inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots_recorded": count})
}

// ListStocks handles listing the latest snapshot of every stock.
// @Summary     List stocks
// @Description Get a paginated list of the latest snapshot per symbol, ordered by symbol
// @Tags        stocks
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.StockSnapshot] "Paginated stocks"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks [get]
func (h *StockHandler) ListStocks(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.marketDataService.ListLatestSnapshots(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStock handles retrieving the latest snapshot for a symbol.
// @Summary     Get stock
// @Description Get the latest market snapshot for a symbol
// @Tags        stocks
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} map[string]models.StockSnapshot "Stock snapshot"
// @Failure     400 {object} ErrorResponse "Invalid symbol"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Router      /stocks/{symbol} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	symbol, err := parseSymbolParam(c, "symbol")
	if err != nil {
		respondWithError(c, err)
		return
	}

	snap, err := h.marketDataService.GetLatestSnapshot(symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": snap})
}

// GetStockHistory handles retrieving snapshot history for a symbol.
// @Summary     Get stock history
// @Description Get market snapshots for a symbol within a date range, newest first (paginated)
// @Tags        stocks
// @Produce     json
// @Param       symbol    path  string true  "Ticker symbol"
// @Param       from_date query string true  "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string true  "End date (RFC3339 or YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.StockSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /stocks/{symbol}/history [get]
func (h *StockHandler) GetStockHistory(c *gin.Context) {
	symbol, err := parseSymbolParam(c, "symbol")
	if err != nil {
		respondWithError(c, err)
		return
	}

	fromStr := c.Query("from_date")
	if fromStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date is required"))
		return
	}
	from, err := parseFlexibleTime(fromStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	toStr := c.Query("to_date")
	if toStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date is required"))
		return
	}
	to, err := parseFlexibleTime(toStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.marketDataService.GetSnapshotHistory(symbol, from, to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
