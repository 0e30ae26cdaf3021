package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/portfolio"
	"folio/internal/services"
)

// PortfolioHandler handles portfolio aggregation requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// AggregateRequest represents the request payload for portfolio aggregation.
type AggregateRequest struct {
	Holdings []HoldingRequest `json:"holdings" binding:"required,dive"`
}

// HoldingRequest is one position. Either Symbol or Stock must be set; a
// holding with only Symbol is priced from the latest stored snapshot.
type HoldingRequest struct {
	Symbol        string        `json:"symbol,omitempty" binding:"omitempty,symbol"`
	Stock         *StockRequest `json:"stock,omitempty"`
	PurchasePrice float64       `json:"purchase_price" binding:"finite"`
	Quantity      float64       `json:"quantity" binding:"finite"`
	AveragePrice  *float64      `json:"average_price,omitempty" binding:"omitempty,finite"`
	PurchaseDate  *string       `json:"purchase_date,omitempty"`
}

// StockRequest is an inline market snapshot supplied with a holding.
type StockRequest struct {
	Symbol      string   `json:"symbol" binding:"omitempty,symbol"`
	CompanyName string   `json:"company_name" binding:"max=200"`
	Exchange    string   `json:"exchange" binding:"max=32"`
	Sector      string   `json:"sector" binding:"max=100"`
	Industry    string   `json:"industry,omitempty" binding:"max=100"`
	CMP         float64  `json:"cmp" binding:"finite"`
	PERatio     *float64 `json:"pe_ratio,omitempty"`
	Earnings    float64  `json:"earnings"`
	MarketCap   *float64 `json:"market_cap,omitempty"`
	High52Week  *float64 `json:"high_52_week,omitempty"`
	Low52Week   *float64 `json:"low_52_week,omitempty"`
	LastUpdated *string  `json:"last_updated,omitempty"`
}

// Aggregate handles building a portfolio view from a list of holdings.
// @Summary     Aggregate portfolio
// @Description Compute per-holding metrics, sector summaries and totals. One invalid holding rejects the whole request.
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       request body AggregateRequest true "Holdings"
// @Success     200 {object} map[string]portfolio.Portfolio "Aggregated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid holding"
// @Failure     404 {object} ErrorResponse "Unknown symbol"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/aggregate [post]
func (h *PortfolioHandler) Aggregate(c *gin.Context) {
	var req AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inputs := make([]services.HoldingInput, len(req.Holdings))
	for i := range req.Holdings {
		in, err := toHoldingInput(&req.Holdings[i])
		if err != nil {
			respondWithError(c, err)
			return
		}
		inputs[i] = in
	}

	p, err := h.portfolioService.Aggregate(inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": p})
}

func toHoldingInput(req *HoldingRequest) (services.HoldingInput, error) {
	purchaseDate, err := parseOptionalTime("purchase_date", req.PurchaseDate)
	if err != nil {
		return services.HoldingInput{}, err
	}

	in := services.HoldingInput{
		Symbol:        req.Symbol,
		PurchasePrice: req.PurchasePrice,
		Quantity:      req.Quantity,
		AveragePrice:  req.AveragePrice,
		PurchaseDate:  purchaseDate,
	}

	if req.Stock != nil {
		lastUpdated, err := parseOptionalTime("last_updated", req.Stock.LastUpdated)
		if err != nil {
			return services.HoldingInput{}, err
		}
		in.Stock = &portfolio.Stock{
			Symbol:      req.Stock.Symbol,
			CompanyName: req.Stock.CompanyName,
			Exchange:    req.Stock.Exchange,
			Sector:      req.Stock.Sector,
			Industry:    req.Stock.Industry,
			CMP:         req.Stock.CMP,
			PERatio:     req.Stock.PERatio,
			Earnings:    req.Stock.Earnings,
			MarketCap:   req.Stock.MarketCap,
			High52Week:  req.Stock.High52Week,
			Low52Week:   req.Stock.Low52Week,
			LastUpdated: lastUpdated,
		}
	}

	return in, nil
}
