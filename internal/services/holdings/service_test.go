package holdings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/events"
	"github.com/rferreira/patrimo/internal/interfaces"
	"github.com/rferreira/patrimo/internal/models"
	"github.com/rferreira/patrimo/internal/storage"
)

func newTestService(t *testing.T) (*Service, interfaces.StorageManager) {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	logger := common.NewSilentLogger()

	mgr, err := storage.NewManager(logger, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	bus := events.NewBus(logger)
	return NewService(mgr, bus, logger), mgr
}

func TestUpsertStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	stock, err := svc.UpsertStock(ctx, models.HoldingStock{
		Ticker: " aapl ", Qty: 10, AvgBuyPrice: 100, CurrentPrice: 110,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, stock.ID)
	assert.Equal(t, "AAPL", stock.Ticker)

	// Update in place by id.
	stock.CurrentPrice = 120
	updated, err := svc.UpsertStock(ctx, *stock)
	require.NoError(t, err)
	assert.Equal(t, stock.ID, updated.ID)

	data, err := svc.GetSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, data.Stocks, 1)
	assert.Equal(t, 120.0, data.Stocks[0].CurrentPrice)
}

func TestUpsertStockRejectsDuplicateTicker(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpsertStock(ctx, models.HoldingStock{Ticker: "AAPL", Qty: 10, AvgBuyPrice: 100, CurrentPrice: 110})
	require.NoError(t, err)

	_, err = svc.UpsertStock(ctx, models.HoldingStock{Ticker: "aapl", Qty: 5, AvgBuyPrice: 90, CurrentPrice: 110})
	require.Error(t, err)
}

func TestUpsertStockValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []models.HoldingStock{
		{Qty: 10, AvgBuyPrice: 100, CurrentPrice: 110},                  // no ticker
		{Ticker: "AAPL", AvgBuyPrice: 100, CurrentPrice: 110},           // no qty
		{Ticker: "AAPL", Qty: 10, CurrentPrice: 110},                    // no buy price
		{Ticker: "AAPL", Qty: 10, AvgBuyPrice: 100},                     // no current price
		{Ticker: "AAPL", Qty: -1, AvgBuyPrice: 100, CurrentPrice: 110},  // negative qty
	}
	for _, c := range cases {
		_, err := svc.UpsertStock(ctx, c)
		assert.Error(t, err)
	}
}

func TestDeleteStockCascadesDividends(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	stock, err := svc.UpsertStock(ctx, models.HoldingStock{Ticker: "AAPL", Qty: 10, AvgBuyPrice: 100, CurrentPrice: 110})
	require.NoError(t, err)
	other, err := svc.UpsertStock(ctx, models.HoldingStock{Ticker: "MSFT", Qty: 5, AvgBuyPrice: 200, CurrentPrice: 210})
	require.NoError(t, err)

	_, err = svc.UpsertDividend(ctx, models.DividendRecord{Ticker: "AAPL", PerShareAnnual: 4, PaymentsPerYear: 4})
	require.NoError(t, err)
	_, err = svc.UpsertDividend(ctx, models.DividendRecord{Ticker: "MSFT", PerShareAnnual: 3, PaymentsPerYear: 4})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStock(ctx, stock.ID))

	data, err := svc.GetSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, data.Stocks, 1)
	assert.Equal(t, other.ID, data.Stocks[0].ID)
	require.Len(t, data.Dividends, 1)
	assert.Equal(t, "MSFT", data.Dividends[0].Ticker)
}

func TestUpsertDividendRequiresHeldTicker(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpsertDividend(ctx, models.DividendRecord{Ticker: "AAPL", PerShareAnnual: 4, PaymentsPerYear: 4})
	require.Error(t, err)
}

func TestUpsertDividendDeduplicatesByTicker(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpsertStock(ctx, models.HoldingStock{Ticker: "AAPL", Qty: 10, AvgBuyPrice: 100, CurrentPrice: 110})
	require.NoError(t, err)

	first, err := svc.UpsertDividend(ctx, models.DividendRecord{Ticker: "AAPL", PerShareAnnual: 4, PaymentsPerYear: 4})
	require.NoError(t, err)
	second, err := svc.UpsertDividend(ctx, models.DividendRecord{Ticker: "AAPL", PerShareAnnual: 5, PaymentsPerYear: 12})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	data, err := svc.GetSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, data.Dividends, 1)
	assert.Equal(t, 5.0, data.Dividends[0].PerShareAnnual)
}

func TestUpsertDividendRejectsBadSchedule(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpsertStock(ctx, models.HoldingStock{Ticker: "AAPL", Qty: 10, AvgBuyPrice: 100, CurrentPrice: 110})
	require.NoError(t, err)

	_, err = svc.UpsertDividend(ctx, models.DividendRecord{Ticker: "AAPL", PerShareAnnual: 4, PaymentsPerYear: 3})
	require.Error(t, err)
}

func TestUpsertCrypto(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.UpsertCrypto(ctx, models.HoldingCrypto{
		Coin: "btc", InvestedAmount: 5000, Qty: 0.5, CurrentPrice: 12000,
	})
	require.NoError(t, err)
	assert.Equal(t, "BTC", c.Coin)

	_, err = svc.UpsertCrypto(ctx, models.HoldingCrypto{Coin: "BTC", InvestedAmount: 1, Qty: 1, CurrentPrice: 1})
	require.Error(t, err, "duplicate coin")
}

func TestUpsertFundCoercesFrequency(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	f, err := svc.UpsertFund(ctx, models.HoldingParkedFund{
		Platform: "Bank", Amount: 1000, RatePct: 3, Frequency: "weekly",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PayoutAnnual, f.Frequency)

	f, err = svc.UpsertFund(ctx, models.HoldingParkedFund{
		Platform: "Bank2", Amount: 1000, RatePct: 1.54, Frequency: models.PayoutMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PayoutMonthly, f.Frequency)
}

func TestUpsertP2PLoanValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpsertP2PLoan(ctx, models.HoldingP2PLoan{Project: "Solar", Amount: 500, AnnualRatePct: 10})
	require.Error(t, err, "missing platform")

	loan, err := svc.UpsertP2PLoan(ctx, models.HoldingP2PLoan{
		Platform: "Lendy", Project: "Solar", Amount: 500, AnnualRatePct: 10, Years: 2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loan.ID)
}

func TestWipes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpsertStock(ctx, models.HoldingStock{Ticker: "AAPL", Qty: 10, AvgBuyPrice: 100, CurrentPrice: 110})
	require.NoError(t, err)
	_, err = svc.UpsertDividend(ctx, models.DividendRecord{Ticker: "AAPL", PerShareAnnual: 4, PaymentsPerYear: 4})
	require.NoError(t, err)
	_, err = svc.UpsertCrypto(ctx, models.HoldingCrypto{Coin: "BTC", InvestedAmount: 5000, Qty: 0.5, CurrentPrice: 12000})
	require.NoError(t, err)

	require.NoError(t, svc.WipeStocks(ctx))
	require.NoError(t, svc.WipeCrypto(ctx))

	data, err := svc.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, data.Stocks)
	assert.Empty(t, data.Dividends, "wiping stocks clears dividends too")
	assert.Empty(t, data.Crypto)
}

func TestSetCashBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetCashBalance(ctx, 2500.50))
	data, err := svc.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2500.50, data.CashBalance)
}

func TestChangeEventsPublished(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	logger := common.NewSilentLogger()

	mgr, err := storage.NewManager(logger, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	bus := events.NewBus(logger)
	var got []models.ChangeEvent
	unsubscribe := bus.Subscribe(func(ev models.ChangeEvent) {
		got = append(got, ev)
	})
	defer unsubscribe()

	svc := NewService(mgr, bus, logger)
	_, err = svc.UpsertStock(context.Background(), models.HoldingStock{
		Ticker: "AAPL", Qty: 10, AvgBuyPrice: 100, CurrentPrice: 110,
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "holdings", got[0].Source)
}
