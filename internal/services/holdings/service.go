// Package holdings provides the holdings-snapshot service: collection CRUD,
// the cash balance, and the aggregate calculators.
package holdings

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/interfaces"
	"github.com/rferreira/patrimo/internal/models"
)

// Compile-time interface check
var _ interfaces.HoldingsService = (*Service)(nil)

// Service implements HoldingsService.
type Service struct {
	storage interfaces.StorageManager
	bus     interfaces.ChangePublisher
	logger  *common.Logger
}

// NewService creates a new holdings service.
func NewService(storage interfaces.StorageManager, bus interfaces.ChangePublisher, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		bus:     bus,
		logger:  logger,
	}
}

// GetSnapshot returns the current holdings snapshot.
func (s *Service) GetSnapshot(ctx context.Context) (*models.HoldingsData, error) {
	return s.storage.HoldingsStorage().Get(ctx)
}

// save persists the snapshot and notifies listeners.
func (s *Service) save(ctx context.Context, data *models.HoldingsData, source string) error {
	if err := s.storage.HoldingsStorage().Save(ctx, data); err != nil {
		return err
	}
	s.bus.Publish(source)
	return nil
}

// --- Stocks ---

// UpsertStock inserts or updates a stock position. Tickers are unique and
// stored uppercase; an insert colliding with another record's ticker is
// rejected.
func (s *Service) UpsertStock(ctx context.Context, stock models.HoldingStock) (*models.HoldingStock, error) {
	stock.Ticker = strings.ToUpper(strings.TrimSpace(stock.Ticker))
	if stock.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if stock.Qty <= 0 {
		return nil, fmt.Errorf("qty must be > 0")
	}
	if stock.AvgBuyPrice <= 0 || stock.CurrentPrice <= 0 {
		return nil, fmt.Errorf("avg buy price and current price must be > 0")
	}

	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if existing := data.FindStock(stock.Ticker); existing != nil && existing.ID != stock.ID {
		return nil, fmt.Errorf("ticker %s already held", stock.Ticker)
	}

	if stock.ID != "" {
		idx := -1
		for i := range data.Stocks {
			if data.Stocks[i].ID == stock.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("stock '%s' not found", stock.ID)
		}
		data.Stocks[idx] = stock
	} else {
		stock.ID = uuid.NewString()
		data.Stocks = append(data.Stocks, stock)
	}

	if err := s.save(ctx, data, "holdings"); err != nil {
		return nil, err
	}
	s.logger.Info().Str("ticker", stock.Ticker).Float64("qty", stock.Qty).Msg("Stock saved")
	return &stock, nil
}

// DeleteStock removes a stock and cascades to its dividend records.
func (s *Service) DeleteStock(ctx context.Context, id string) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}

	var removed *models.HoldingStock
	for i := range data.Stocks {
		if data.Stocks[i].ID == id {
			stock := data.Stocks[i]
			removed = &stock
			data.Stocks = append(data.Stocks[:i], data.Stocks[i+1:]...)
			break
		}
	}
	if removed == nil {
		return fmt.Errorf("stock '%s' not found", id)
	}

	// Cascade: dividend records referencing the removed ticker go with it.
	kept := data.Dividends[:0]
	for _, d := range data.Dividends {
		if d.Ticker != removed.Ticker {
			kept = append(kept, d)
		}
	}
	data.Dividends = kept

	if err := s.save(ctx, data, "holdings"); err != nil {
		return err
	}
	s.logger.Info().Str("ticker", removed.Ticker).Msg("Stock deleted")
	return nil
}

// WipeStocks removes all stocks and, with them, all dividend records.
func (s *Service) WipeStocks(ctx context.Context) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	data.Stocks = []models.HoldingStock{}
	data.Dividends = []models.DividendRecord{}
	if err := s.save(ctx, data, "holdings"); err != nil {
		return err
	}
	s.logger.Info().Msg("All stocks and dividends wiped")
	return nil
}

// --- Dividends ---

// UpsertDividend inserts or updates a dividend record. The ticker must
// reference a held stock; a second record for the same ticker updates the
// first instead of duplicating it.
func (s *Service) UpsertDividend(ctx context.Context, div models.DividendRecord) (*models.DividendRecord, error) {
	div.Ticker = strings.ToUpper(strings.TrimSpace(div.Ticker))
	if div.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if div.PerShareAnnual <= 0 {
		return nil, fmt.Errorf("per-share annual dividend must be > 0")
	}
	if !models.ValidDividendSchedule(div.PaymentsPerYear) {
		return nil, fmt.Errorf("payments per year must be 1, 2, 4 or 12")
	}

	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if data.FindStock(div.Ticker) == nil {
		return nil, fmt.Errorf("ticker %s not held in stocks", div.Ticker)
	}

	idx := -1
	if div.ID != "" {
		for i := range data.Dividends {
			if data.Dividends[i].ID == div.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("dividend record '%s' not found", div.ID)
		}
	} else {
		for i := range data.Dividends {
			if data.Dividends[i].Ticker == div.Ticker {
				idx = i
				div.ID = data.Dividends[i].ID
				break
			}
		}
	}

	if idx >= 0 {
		data.Dividends[idx] = div
	} else {
		div.ID = uuid.NewString()
		data.Dividends = append(data.Dividends, div)
	}

	if err := s.save(ctx, data, "holdings"); err != nil {
		return nil, err
	}
	s.logger.Info().Str("ticker", div.Ticker).Float64("per_share", div.PerShareAnnual).Msg("Dividend saved")
	return &div, nil
}

// DeleteDividend removes a dividend record.
func (s *Service) DeleteDividend(ctx context.Context, id string) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	for i := range data.Dividends {
		if data.Dividends[i].ID == id {
			data.Dividends = append(data.Dividends[:i], data.Dividends[i+1:]...)
			return s.save(ctx, data, "holdings")
		}
	}
	return fmt.Errorf("dividend record '%s' not found", id)
}

// WipeDividends removes all dividend records.
func (s *Service) WipeDividends(ctx context.Context) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	data.Dividends = []models.DividendRecord{}
	return s.save(ctx, data, "holdings")
}

// --- Crypto ---

// UpsertCrypto inserts or updates a crypto position.
func (s *Service) UpsertCrypto(ctx context.Context, crypto models.HoldingCrypto) (*models.HoldingCrypto, error) {
	crypto.Coin = strings.ToUpper(strings.TrimSpace(crypto.Coin))
	if crypto.Coin == "" {
		return nil, fmt.Errorf("coin is required")
	}
	if crypto.InvestedAmount <= 0 {
		return nil, fmt.Errorf("invested amount must be > 0")
	}
	if crypto.Qty <= 0 {
		return nil, fmt.Errorf("qty must be > 0")
	}
	if crypto.CurrentPrice <= 0 {
		return nil, fmt.Errorf("current price must be > 0")
	}

	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if existing := data.FindCrypto(crypto.Coin); existing != nil && existing.ID != crypto.ID {
		return nil, fmt.Errorf("coin %s already held", crypto.Coin)
	}

	if crypto.ID != "" {
		idx := -1
		for i := range data.Crypto {
			if data.Crypto[i].ID == crypto.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("crypto '%s' not found", crypto.ID)
		}
		data.Crypto[idx] = crypto
	} else {
		crypto.ID = uuid.NewString()
		data.Crypto = append(data.Crypto, crypto)
	}

	if err := s.save(ctx, data, "holdings"); err != nil {
		return nil, err
	}
	s.logger.Info().Str("coin", crypto.Coin).Float64("qty", crypto.Qty).Msg("Crypto saved")
	return &crypto, nil
}

// DeleteCrypto removes a crypto position.
func (s *Service) DeleteCrypto(ctx context.Context, id string) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	for i := range data.Crypto {
		if data.Crypto[i].ID == id {
			data.Crypto = append(data.Crypto[:i], data.Crypto[i+1:]...)
			return s.save(ctx, data, "holdings")
		}
	}
	return fmt.Errorf("crypto '%s' not found", id)
}

// WipeCrypto removes all crypto positions.
func (s *Service) WipeCrypto(ctx context.Context) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	data.Crypto = []models.HoldingCrypto{}
	return s.save(ctx, data, "holdings")
}

// --- P2P loans ---

// UpsertP2PLoan inserts or updates a peer-to-peer loan.
func (s *Service) UpsertP2PLoan(ctx context.Context, loan models.HoldingP2PLoan) (*models.HoldingP2PLoan, error) {
	loan.Platform = strings.TrimSpace(loan.Platform)
	loan.Project = strings.TrimSpace(loan.Project)
	if loan.Platform == "" {
		return nil, fmt.Errorf("platform is required")
	}
	if loan.Project == "" {
		return nil, fmt.Errorf("project is required")
	}
	if loan.Amount <= 0 {
		return nil, fmt.Errorf("amount must be > 0")
	}
	if loan.AnnualRatePct <= 0 {
		return nil, fmt.Errorf("annual rate must be > 0")
	}

	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if loan.ID != "" {
		idx := -1
		for i := range data.P2P {
			if data.P2P[i].ID == loan.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("p2p loan '%s' not found", loan.ID)
		}
		data.P2P[idx] = loan
	} else {
		loan.ID = uuid.NewString()
		data.P2P = append(data.P2P, loan)
	}

	if err := s.save(ctx, data, "holdings"); err != nil {
		return nil, err
	}
	s.logger.Info().Str("platform", loan.Platform).Str("project", loan.Project).Msg("P2P loan saved")
	return &loan, nil
}

// DeleteP2PLoan removes a loan.
func (s *Service) DeleteP2PLoan(ctx context.Context, id string) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	for i := range data.P2P {
		if data.P2P[i].ID == id {
			data.P2P = append(data.P2P[:i], data.P2P[i+1:]...)
			return s.save(ctx, data, "holdings")
		}
	}
	return fmt.Errorf("p2p loan '%s' not found", id)
}

// WipeP2PLoans removes all loans.
func (s *Service) WipeP2PLoans(ctx context.Context) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	data.P2P = []models.HoldingP2PLoan{}
	return s.save(ctx, data, "holdings")
}

// --- Parked funds ---

// UpsertFund inserts or updates a parked fund. Unknown frequencies are
// coerced to annual.
func (s *Service) UpsertFund(ctx context.Context, fund models.HoldingParkedFund) (*models.HoldingParkedFund, error) {
	fund.Platform = strings.TrimSpace(fund.Platform)
	if fund.Platform == "" {
		return nil, fmt.Errorf("platform is required")
	}
	if fund.Amount <= 0 {
		return nil, fmt.Errorf("amount must be > 0")
	}
	if fund.RatePct <= 0 {
		return nil, fmt.Errorf("rate must be > 0")
	}
	if fund.Frequency != models.PayoutMonthly {
		fund.Frequency = models.PayoutAnnual
	}

	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if fund.ID != "" {
		idx := -1
		for i := range data.Funds {
			if data.Funds[i].ID == fund.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("fund '%s' not found", fund.ID)
		}
		data.Funds[idx] = fund
	} else {
		fund.ID = uuid.NewString()
		data.Funds = append(data.Funds, fund)
	}

	if err := s.save(ctx, data, "holdings"); err != nil {
		return nil, err
	}
	s.logger.Info().Str("platform", fund.Platform).Float64("amount", fund.Amount).Msg("Parked fund saved")
	return &fund, nil
}

// DeleteFund removes a parked fund.
func (s *Service) DeleteFund(ctx context.Context, id string) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	for i := range data.Funds {
		if data.Funds[i].ID == id {
			data.Funds = append(data.Funds[:i], data.Funds[i+1:]...)
			return s.save(ctx, data, "holdings")
		}
	}
	return fmt.Errorf("fund '%s' not found", id)
}

// WipeFunds removes all parked funds.
func (s *Service) WipeFunds(ctx context.Context) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	data.Funds = []models.HoldingParkedFund{}
	return s.save(ctx, data, "holdings")
}

// --- Cash ---

// SetCashBalance replaces the parked cash balance.
func (s *Service) SetCashBalance(ctx context.Context, amount float64) error {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	data.CashBalance = common.SafeNumber(amount)
	if err := s.save(ctx, data, "holdings"); err != nil {
		return err
	}
	s.logger.Info().Float64("balance", data.CashBalance).Msg("Cash balance updated")
	return nil
}
