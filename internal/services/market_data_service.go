package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/portfolio"
)

// marketDataService stores and serves stock snapshots from the price feed.
type marketDataService struct {
	db       *gorm.DB
	taxonomy *portfolio.Taxonomy
}

// NewMarketDataService creates a new MarketDataServicer. A nil taxonomy
// accepts every exchange label.
func NewMarketDataService(db *gorm.DB, taxonomy *portfolio.Taxonomy) MarketDataServicer {
	if taxonomy == nil {
		taxonomy = portfolio.NewTaxonomy("", nil, nil)
	}
	return &marketDataService{db: db, taxonomy: taxonomy}
}

// RecordSnapshots validates the whole batch, then inserts every snapshot,
// skipping ones already stored for the same symbol and timestamp. It returns
// the number of new rows.
func (s *marketDataService) RecordSnapshots(inputs []StockSnapshotInput) (int, error) {
	if len(inputs) == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Stocks array is empty")
	}
	for i := range inputs {
		if err := s.validateSnapshot(i, &inputs[i]); err != nil {
			return 0, err
		}
	}

	count := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range inputs {
			in := &inputs[i]
			snap := models.StockSnapshot{
				Symbol:      models.NormalizeSymbol(in.Symbol),
				CompanyName: strings.TrimSpace(in.CompanyName),
				Exchange:    strings.TrimSpace(in.Exchange),
				Sector:      strings.TrimSpace(in.Sector),
				Industry:    strings.TrimSpace(in.Industry),
				CMP:         in.CMP,
				PERatio:     in.PERatio,
				Earnings:    in.Earnings,
				MarketCap:   in.MarketCap,
				High52Week:  in.High52Week,
				Low52Week:   in.Low52Week,
				RecordedAt:  in.RecordedAt,
			}
			result := tx.Where("symbol = ? AND recorded_at = ?", snap.Symbol, snap.RecordedAt).
				FirstOrCreate(&snap)
			if result.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
			}
			if result.RowsAffected > 0 {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *marketDataService) validateSnapshot(i int, in *StockSnapshotInput) error {
	symbol := models.NormalizeSymbol(in.Symbol)
	if symbol == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("stock %d: symbol is required", i))
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("stock %d (%s): company name is required", i, symbol))
	}
	if !s.taxonomy.KnownExchange(in.Exchange) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("stock %d (%s): unknown exchange %q", i, symbol, in.Exchange))
	}
	if math.IsNaN(in.CMP) || math.IsInf(in.CMP, 0) || in.CMP < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidMarketPrice, fmt.Sprintf("stock %d (%s): cmp must be a finite, non-negative number", i, symbol))
	}
	if in.RecordedAt.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("stock %d (%s): recorded_at is required", i, symbol))
	}
	return nil
}

// GetLatestSnapshot returns the most recent snapshot for a symbol.
func (s *marketDataService) GetLatestSnapshot(symbol string) (*models.StockSnapshot, error) {
	var snap models.StockSnapshot
	if err := s.db.Where("symbol = ?", models.NormalizeSymbol(symbol)).
		Order("recorded_at DESC").First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snap, nil
}

// GetLatestSnapshots returns the most recent snapshot for each symbol, keyed by
// normalized symbol. Symbols without any snapshot are absent from the map.
func (s *marketDataService) GetLatestSnapshots(symbols []string) (map[string]models.StockSnapshot, error) {
	wanted := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		sym = models.NormalizeSymbol(sym)
		if _, ok := seen[sym]; ok || sym == "" {
			continue
		}
		seen[sym] = struct{}{}
		wanted = append(wanted, sym)
	}
	if len(wanted) == 0 {
		return map[string]models.StockSnapshot{}, nil
	}

	var snaps []models.StockSnapshot
	if err := s.db.Where("symbol IN ?", wanted).
		Order("symbol ASC").Order("recorded_at DESC").
		Find(&snaps).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make(map[string]models.StockSnapshot, len(wanted))
	for i := range snaps {
		if _, ok := result[snaps[i].Symbol]; !ok {
			result[snaps[i].Symbol] = snaps[i]
		}
	}
	return result, nil
}

// ListLatestSnapshots returns a paginated list of the latest snapshot per
// symbol, ordered by symbol.
func (s *marketDataService) ListLatestSnapshots(page pagination.PageRequest) (*pagination.PageResponse[models.StockSnapshot], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.StockSnapshot{}).Distinct("symbol").Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var symbols []string
	if err := s.db.Model(&models.StockSnapshot{}).Distinct("symbol").Order("symbol ASC").
		Scopes(pagination.Paginate(page)).Pluck("symbol", &symbols).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	latest, err := s.GetLatestSnapshots(symbols)
	if err != nil {
		return nil, err
	}

	snaps := make([]models.StockSnapshot, 0, len(symbols))
	for _, sym := range symbols {
		if snap, ok := latest[sym]; ok {
			snaps = append(snaps, snap)
		}
	}

	result := pagination.NewPageResponse(snaps, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSnapshotHistory returns paginated snapshots for a symbol within a date
// range, newest first.
func (s *marketDataService) GetSnapshotHistory(
	symbol string,
	from, to time.Time,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.StockSnapshot], error) {
	if to.Before(from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date must not be before from_date")
	}
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.StockSnapshot{}).
		Where("symbol = ? AND recorded_at >= ? AND recorded_at <= ?", models.NormalizeSymbol(symbol), from, to)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snaps []models.StockSnapshot
	if err := base.Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&snaps).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snaps, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// PruneSnapshots deletes snapshots recorded before the cutoff. The latest
// snapshot of every symbol is always kept so holdings can still be resolved.
func (s *marketDataService) PruneSnapshots(before time.Time) (int64, error) {
	var stale []models.StockSnapshot
	if err := s.db.Select("id", "symbol").Where("recorded_at < ?", before).Find(&stale).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	symbols := make([]string, 0, len(stale))
	for i := range stale {
		symbols = append(symbols, stale[i].Symbol)
	}
	latest, err := s.GetLatestSnapshots(symbols)
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(stale))
	for i := range stale {
		if keep, ok := latest[stale[i].Symbol]; ok && keep.ID == stale[i].ID {
			continue
		}
		ids = append(ids, stale[i].ID)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := s.db.Where("id IN ?", ids).Delete(&models.StockSnapshot{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}
