package services

import (
	"fmt"
	"strings"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/models"
	"folio/internal/portfolio"
)

// portfolioService resolves holdings against stored market data and runs the
// aggregation engine over them.
type portfolioService struct {
	marketData MarketDataServicer
	aggregator *portfolio.Aggregator
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(marketData MarketDataServicer, aggregator *portfolio.Aggregator) PortfolioServicer {
	if aggregator == nil {
		aggregator = portfolio.NewAggregator()
	}
	return &portfolioService{marketData: marketData, aggregator: aggregator}
}

// Aggregate builds a Portfolio from the given holdings. Holdings without an
// inline stock snapshot are resolved to the latest stored snapshot in a single
// lookup; one unresolved symbol rejects the whole batch.
func (s *portfolioService) Aggregate(inputs []HoldingInput) (*portfolio.Portfolio, error) {
	var lookup []string
	for i := range inputs {
		if inputs[i].Stock != nil {
			continue
		}
		if strings.TrimSpace(inputs[i].Symbol) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("holding %d: symbol or stock is required", i))
		}
		lookup = append(lookup, inputs[i].Symbol)
	}

	var snapshots map[string]models.StockSnapshot
	if len(lookup) > 0 {
		if s.marketData == nil {
			return nil, apperrors.WithMessage(apperrors.ErrStockNotFound, "No market data source is configured")
		}
		var err error
		snapshots, err = s.marketData.GetLatestSnapshots(lookup)
		if err != nil {
			return nil, err
		}
	}

	holdings := make([]portfolio.Holding, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]

		var stock portfolio.Stock
		if in.Stock != nil {
			stock = *in.Stock
			if strings.TrimSpace(stock.Symbol) == "" {
				stock.Symbol = in.Symbol
			}
		} else {
			snap, ok := snapshots[models.NormalizeSymbol(in.Symbol)]
			if !ok {
				return nil, apperrors.WithMessage(apperrors.ErrStockNotFound,
					fmt.Sprintf("holding %d: no market data for %s", i, models.NormalizeSymbol(in.Symbol)))
			}
			stock = snap.ToStock()
		}

		holdings = append(holdings, portfolio.Holding{
			Stock:         stock,
			PurchasePrice: in.PurchasePrice,
			Quantity:      in.Quantity,
			AveragePrice:  in.AveragePrice,
			PurchaseDate:  in.PurchaseDate,
		})
	}

	p, err := s.aggregator.Aggregate(holdings)
	if err != nil {
		return nil, err
	}

	logger.Get().Debugw("portfolio aggregated",
		"rows", len(p.Rows),
		"sectors", len(p.SectorSummaries),
		"resolved_from_market_data", len(lookup),
		"total_present_value", p.TotalPresentValue,
	)
	return p, nil
}
