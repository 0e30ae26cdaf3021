// Package portfolio implements the portfolio aggregation engine: it turns a
// list of holdings into per-row metrics, per-sector summaries and
// portfolio-wide totals.
//
// The engine is a pure computation. It performs no I/O and no logging, and an
// Aggregator may be shared between goroutines.
package portfolio

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	apperrors "folio/internal/errors"
)

// Aggregator computes Portfolio values. It carries only immutable
// configuration.
type Aggregator struct {
	taxonomy *Taxonomy
	now      func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithTaxonomy sets the sector taxonomy used for grouping.
func WithTaxonomy(t *Taxonomy) Option {
	return func(a *Aggregator) {
		if t != nil {
			a.taxonomy = t
		}
	}
}

// WithClock overrides the clock used for LastUpdated when no holding
// supplies its own timestamp.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator creates an Aggregator. Without options it accepts every
// sector label and groups blank ones under DefaultOtherSector.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		taxonomy: NewTaxonomy("", nil, nil),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate validates holdings and derives a fresh Portfolio from them.
// A single invalid holding rejects the whole batch and no Portfolio is
// returned. Rows keep the input order.
func (a *Aggregator) Aggregate(holdings []Holding) (*Portfolio, error) {
	for i := range holdings {
		if err := validateHolding(i, &holdings[i]); err != nil {
			return nil, err
		}
	}

	p := &Portfolio{
		Rows:            make([]Row, 0, len(holdings)),
		SectorSummaries: []SectorSummary{},
	}

	var lastUpdated time.Time
	for i := range holdings {
		row := newRow(&holdings[i])
		p.Rows = append(p.Rows, row)

		p.TotalInvestment += row.Investment
		p.TotalPresentValue += row.PresentValue
		p.TotalGainLoss += row.GainLoss

		if ts := row.Stock.LastUpdated; ts != nil && ts.After(lastUpdated) {
			lastUpdated = *ts
		}
	}
	p.TotalGainLossPercent = percentOf(p.TotalGainLoss, p.TotalInvestment)

	if !isFinite(p.TotalInvestment) || !isFinite(p.TotalPresentValue) || !isFinite(p.TotalGainLossPercent) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidQuantity,
			"portfolio totals exceed the representable range")
	}

	p.SectorSummaries = a.summarizeSectors(p.Rows, p.TotalPresentValue)
	for i := range p.SectorSummaries {
		if s := &p.SectorSummaries[i]; !isFinite(s.GainLossPercent) || !isFinite(s.PortfolioWeight) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidQuantity,
				fmt.Sprintf("sector %s: totals exceed the representable range", s.Sector))
		}
	}

	if lastUpdated.IsZero() {
		lastUpdated = a.now()
	}
	p.LastUpdated = lastUpdated

	return p, nil
}

func validateHolding(i int, h *Holding) error {
	symbol := strings.TrimSpace(h.Stock.Symbol)
	if symbol == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("holding %d: symbol is required", i))
	}
	if !isFinite(h.Quantity) || h.Quantity <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidQuantity,
			fmt.Sprintf("holding %d (%s): quantity must be greater than zero", i, symbol))
	}
	if !isFinite(h.PurchasePrice) || h.PurchasePrice <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidPurchasePrice,
			fmt.Sprintf("holding %d (%s): purchase price must be greater than zero", i, symbol))
	}
	if h.AveragePrice != nil && (!isFinite(*h.AveragePrice) || *h.AveragePrice <= 0) {
		return apperrors.WithMessage(apperrors.ErrInvalidPurchasePrice,
			fmt.Sprintf("holding %d (%s): average price must be greater than zero", i, symbol))
	}
	if !isFinite(h.Stock.CMP) || h.Stock.CMP < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidMarketPrice,
			fmt.Sprintf("holding %d (%s): current market price must be non-negative", i, symbol))
	}
	investment, presentValue, gainLoss := rowValues(h)
	if !isFinite(investment) || !isFinite(presentValue) || !isFinite(percentOf(gainLoss, investment)) {
		return apperrors.WithMessage(apperrors.ErrInvalidQuantity,
			fmt.Sprintf("holding %d (%s): quantity times price exceeds the representable range", i, symbol))
	}
	return nil
}

func rowValues(h *Holding) (investment, presentValue, gainLoss float64) {
	investment = h.CostBasis() * h.Quantity
	presentValue = h.Stock.CMP * h.Quantity
	return investment, presentValue, presentValue - investment
}

// newRow copies every pointer out of h so the Row shares no memory with
// the caller's input.
func newRow(h *Holding) Row {
	investment, presentValue, gainLoss := rowValues(h)

	stock := h.Stock
	stock.PERatio = clone(stock.PERatio)
	stock.MarketCap = clone(stock.MarketCap)
	stock.High52Week = clone(stock.High52Week)
	stock.Low52Week = clone(stock.Low52Week)
	stock.LastUpdated = clone(stock.LastUpdated)

	return Row{
		Stock:           stock,
		PurchasePrice:   h.PurchasePrice,
		Quantity:        h.Quantity,
		AveragePrice:    clone(h.AveragePrice),
		PurchaseDate:    clone(h.PurchaseDate),
		Investment:      investment,
		PresentValue:    presentValue,
		GainLoss:        gainLoss,
		GainLossPercent: percentOf(gainLoss, investment),
	}
}

// sectorAccumulator collects one sector's members while rows are scanned.
type sectorAccumulator struct {
	summary SectorSummary
	seen    map[string]struct{}
	peSum   float64
	peCount int
}

func (a *Aggregator) summarizeSectors(rows []Row, portfolioValue float64) []SectorSummary {
	var order []string
	acc := make(map[string]*sectorAccumulator)

	for i := range rows {
		row := &rows[i]
		sector := a.taxonomy.SectorFor(row.Stock.Sector)

		s, ok := acc[sector]
		if !ok {
			s = &sectorAccumulator{
				summary: SectorSummary{Sector: sector, Stocks: []string{}},
				seen:    make(map[string]struct{}),
			}
			acc[sector] = s
			order = append(order, sector)
		}

		s.summary.TotalInvestment += row.Investment
		s.summary.TotalPresentValue += row.PresentValue
		s.summary.TotalGainLoss += row.GainLoss

		symbol := strings.TrimSpace(row.Stock.Symbol)
		key := strings.ToUpper(symbol)
		if _, dup := s.seen[key]; dup {
			continue
		}
		s.seen[key] = struct{}{}
		s.summary.Stocks = append(s.summary.Stocks, symbol)
		if pe := row.Stock.PERatio; pe != nil && isFinite(*pe) {
			s.peSum += *pe
			s.peCount++
		}
	}

	summaries := make([]SectorSummary, 0, len(order))
	for _, sector := range order {
		s := acc[sector]
		sum := s.summary
		sum.StockCount = len(sum.Stocks)
		sum.GainLossPercent = percentOf(sum.TotalGainLoss, sum.TotalInvestment)
		sum.PortfolioWeight = percentOf(sum.TotalPresentValue, portfolioValue)
		if s.peCount > 0 {
			sum.AveragePERatio = s.peSum / float64(s.peCount)
		}
		summaries = append(summaries, sum)
	}

	slices.SortStableFunc(summaries, func(x, y SectorSummary) int {
		if c := cmp.Compare(y.TotalPresentValue, x.TotalPresentValue); c != 0 {
			return c
		}
		return strings.Compare(x.Sector, y.Sector)
	})
	return summaries
}

// percentOf returns part/whole*100, or 0 when whole is 0.
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
