package interfaces

import (
	"context"

	"github.com/rferreira/patrimo/internal/models"
)

// ChangePublisher broadcasts data-change notifications to registered
// listeners. Implemented by events.Bus.
type ChangePublisher interface {
	Publish(source string)
}

// HoldingsService owns the holdings snapshot: collection CRUD and the
// aggregate calculators.
type HoldingsService interface {
	GetSnapshot(ctx context.Context) (*models.HoldingsData, error)

	UpsertStock(ctx context.Context, stock models.HoldingStock) (*models.HoldingStock, error)
	DeleteStock(ctx context.Context, id string) error
	WipeStocks(ctx context.Context) error

	UpsertDividend(ctx context.Context, div models.DividendRecord) (*models.DividendRecord, error)
	DeleteDividend(ctx context.Context, id string) error
	WipeDividends(ctx context.Context) error

	UpsertCrypto(ctx context.Context, crypto models.HoldingCrypto) (*models.HoldingCrypto, error)
	DeleteCrypto(ctx context.Context, id string) error
	WipeCrypto(ctx context.Context) error

	UpsertP2PLoan(ctx context.Context, loan models.HoldingP2PLoan) (*models.HoldingP2PLoan, error)
	DeleteP2PLoan(ctx context.Context, id string) error
	WipeP2PLoans(ctx context.Context) error

	UpsertFund(ctx context.Context, fund models.HoldingParkedFund) (*models.HoldingParkedFund, error)
	DeleteFund(ctx context.Context, id string) error
	WipeFunds(ctx context.Context) error

	SetCashBalance(ctx context.Context, amount float64) error

	NetWorth(ctx context.Context) (*models.NetWorthSummary, error)
}

// LedgerService owns the realized-trade ledger and keeps holdings quantities
// in sync with it.
type LedgerService interface {
	GetLedger(ctx context.Context) (*models.TradeLedger, error)

	// Upsert validates input, checks quantity availability, and applies the
	// trade to holdings. A non-empty editingID makes this an edit: the prior
	// record is rolled back before the new values are applied, and the record
	// is replaced in place.
	Upsert(ctx context.Context, input models.TradeInput, editingID string) (*models.RealizedTrade, error)

	// Remove rolls the trade's portfolio effect back, then deletes the record.
	Remove(ctx context.Context, id string) error

	// ClearAll rolls back every trade in current order, then empties the ledger.
	ClearAll(ctx context.Context) error

	// Totals aggregates the trades matching the year/class filters.
	Totals(ctx context.Context, year, class string) (models.TradeTotals, error)

	UpdateSettings(ctx context.Context, settings models.LedgerSettings) error
}

// ReportService renders charts and AI summaries from computed aggregates.
type ReportService interface {
	RenderAllocationChart(ctx context.Context) (string, error)
	RenderRecurringIncomeChart(ctx context.Context) (string, error)
	Advise(ctx context.Context) (string, error)
}

// AdviceClient generates natural-language content (Gemini).
type AdviceClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
