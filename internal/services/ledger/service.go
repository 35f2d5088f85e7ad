// Package ledger implements the realized-trade ledger and the sync engine
// that keeps holdings quantities consistent with recorded sales.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/interfaces"
	"github.com/rferreira/patrimo/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerService = (*Service)(nil)

// Service implements LedgerService.
type Service struct {
	storage interfaces.StorageManager
	bus     interfaces.ChangePublisher
	logger  *common.Logger
}

// NewService creates a new ledger service.
func NewService(storage interfaces.StorageManager, bus interfaces.ChangePublisher, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		bus:     bus,
		logger:  logger,
	}
}

// GetLedger returns the current ledger document.
func (s *Service) GetLedger(ctx context.Context) (*models.TradeLedger, error) {
	return s.storage.LedgerStorage().Get(ctx)
}

// persist writes the holdings snapshot first and the ledger last, so a write
// failure in between never records a trade whose deduction was lost.
func (s *Service) persist(ctx context.Context, data *models.HoldingsData, ledger *models.TradeLedger) error {
	if err := s.storage.HoldingsStorage().Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save holdings: %w", err)
	}
	if err := s.storage.LedgerStorage().Save(ctx, ledger); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

// persistRemoval is the inverse ordering: the ledger (with the record gone)
// is written before the holdings re-credit. A failure in between loses the
// rollback, but never leaves a removed trade that could be rolled back twice
// and push holdings above their pre-trade quantities.
func (s *Service) persistRemoval(ctx context.Context, data *models.HoldingsData, ledger *models.TradeLedger) error {
	if err := s.storage.LedgerStorage().Save(ctx, ledger); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	if err := s.storage.HoldingsStorage().Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save holdings: %w", err)
	}
	return nil
}

// Upsert records a realized trade and deducts it from holdings. A non-empty
// editingID replaces that record in place: its prior deduction is rolled back
// before the new values are validated against availability and applied.
func (s *Service) Upsert(ctx context.Context, input models.TradeInput, editingID string) (*models.RealizedTrade, error) {
	input = normalizeInput(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	data, err := s.storage.HoldingsStorage().Get(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.GetLedger(ctx)
	if err != nil {
		return nil, err
	}

	var current *models.RealizedTrade
	idx := -1
	if editingID != "" {
		idx = ledger.FindTrade(editingID)
		if idx < 0 {
			return nil, fmt.Errorf("trade '%s': %w", editingID, ErrTradeNotFound)
		}
		current = &ledger.Trades[idx]
	}

	if err := checkAvailability(data, current, input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trade := models.RealizedTrade{
		ID:          uuid.NewString(),
		Date:        input.Date,
		AssetClass:  models.AssetClass(input.AssetClass),
		Ticker:      input.Ticker,
		Qty:         input.Qty,
		AvgBuyPrice: input.AvgBuyPrice,
		SellPrice:   input.SellPrice,
		Fees:        input.Fees,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if current != nil {
		rollbackTrade(data, *current)
		trade.ID = current.ID
		trade.CreatedAt = current.CreatedAt
	}
	applyTrade(data, trade)

	if idx >= 0 {
		ledger.Trades[idx] = trade
	} else {
		ledger.Trades = append(ledger.Trades, trade)
	}

	if err := s.persist(ctx, data, ledger); err != nil {
		return nil, err
	}
	s.bus.Publish("ledger")
	s.logger.Info().
		Str("id", trade.ID).
		Str("ticker", trade.Ticker).
		Str("class", string(trade.AssetClass)).
		Float64("qty", trade.Qty).
		Bool("edit", current != nil).
		Msg("Trade recorded")
	return &trade, nil
}

// Remove rolls the trade's portfolio effect back, then deletes the record.
func (s *Service) Remove(ctx context.Context, id string) error {
	data, err := s.storage.HoldingsStorage().Get(ctx)
	if err != nil {
		return err
	}
	ledger, err := s.GetLedger(ctx)
	if err != nil {
		return err
	}

	idx := ledger.FindTrade(id)
	if idx < 0 {
		return fmt.Errorf("trade '%s': %w", id, ErrTradeNotFound)
	}
	trade := ledger.Trades[idx]

	rollbackTrade(data, trade)
	ledger.Trades = append(ledger.Trades[:idx], ledger.Trades[idx+1:]...)

	if err := s.persistRemoval(ctx, data, ledger); err != nil {
		return err
	}
	s.bus.Publish("ledger")
	s.logger.Info().Str("id", id).Str("ticker", trade.Ticker).Msg("Trade removed")
	return nil
}

// ClearAll rolls back every trade in ledger order, then empties the ledger.
// Settings survive the wipe.
func (s *Service) ClearAll(ctx context.Context) error {
	data, err := s.storage.HoldingsStorage().Get(ctx)
	if err != nil {
		return err
	}
	ledger, err := s.GetLedger(ctx)
	if err != nil {
		return err
	}

	count := len(ledger.Trades)
	for _, trade := range ledger.Trades {
		rollbackTrade(data, trade)
	}
	ledger.Trades = []models.RealizedTrade{}

	if err := s.persistRemoval(ctx, data, ledger); err != nil {
		return err
	}
	s.bus.Publish("ledger")
	s.logger.Info().Int("count", count).Msg("Ledger cleared, holdings restored")
	return nil
}

// Totals aggregates the trades matching the year/class filters at the
// configured tax rate.
func (s *Service) Totals(ctx context.Context, year, class string) (models.TradeTotals, error) {
	ledger, err := s.GetLedger(ctx)
	if err != nil {
		return models.TradeTotals{}, err
	}
	filtered := ledger.Filter(year, class)
	return models.AggregateTrades(filtered, ledger.Settings.TaxRatePct), nil
}

// UpdateSettings replaces the persisted view settings. Empty filters fall back
// to "all"; a negative tax rate is rejected.
func (s *Service) UpdateSettings(ctx context.Context, settings models.LedgerSettings) error {
	if settings.TaxRatePct < 0 {
		return &ValidationError{Field: "tax_rate_pct", Reason: "must be >= 0"}
	}
	settings.YearFilter = strings.TrimSpace(settings.YearFilter)
	if settings.YearFilter == "" {
		settings.YearFilter = models.FilterAll
	}
	settings.ClassFilter = strings.ToLower(strings.TrimSpace(settings.ClassFilter))
	if settings.ClassFilter == "" {
		settings.ClassFilter = models.FilterAll
	}

	ledger, err := s.GetLedger(ctx)
	if err != nil {
		return err
	}
	ledger.Settings = settings
	if err := s.storage.LedgerStorage().Save(ctx, ledger); err != nil {
		return err
	}
	s.bus.Publish("settings")
	return nil
}
