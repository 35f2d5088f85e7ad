package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/events"
	"github.com/rferreira/patrimo/internal/models"
	"github.com/rferreira/patrimo/internal/services/holdings"
	"github.com/rferreira/patrimo/internal/services/ledger"
	"github.com/rferreira/patrimo/internal/storage"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	logger := common.NewSilentLogger()

	mgr, err := storage.NewManager(logger, cfg)
	require.NoError(t, err)

	bus := events.NewBus(logger)
	a := &App{
		Config:          cfg,
		Logger:          logger,
		Storage:         mgr,
		Bus:             bus,
		HoldingsService: holdings.NewService(mgr, bus, logger),
		LedgerService:   ledger.NewService(mgr, bus, logger),
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestApp(t)
	ctx := context.Background()

	_, err := src.HoldingsService.UpsertStock(ctx, models.HoldingStock{
		Ticker: "AAPL", Qty: 10, AvgBuyPrice: 100, CurrentPrice: 110,
	})
	require.NoError(t, err)
	_, err = src.LedgerService.Upsert(ctx, models.TradeInput{
		Date: "2025-03-10", AssetClass: "stocks", Ticker: "AAPL",
		Qty: 4, AvgBuyPrice: 100, SellPrice: 120,
	}, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	n, err := src.Export(ctx, path)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	dst := newTestApp(t)
	require.NoError(t, dst.Import(ctx, path))

	data, err := dst.Storage.HoldingsStorage().Get(ctx)
	require.NoError(t, err)
	require.Len(t, data.Stocks, 1)
	assert.Equal(t, 6.0, data.Stocks[0].Qty) // post-trade quantity travels as-is

	ledgerData, err := dst.Storage.LedgerStorage().Get(ctx)
	require.NoError(t, err)
	assert.Len(t, ledgerData.Trades, 1)
}

func TestImportReplacesWholesale(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.HoldingsService.UpsertStock(ctx, models.HoldingStock{
		Ticker: "MSFT", Qty: 5, AvgBuyPrice: 200, CurrentPrice: 210,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"holdings":{"stocks":[{"id":"x","ticker":"AAPL","qty":1,"avg_buy_price":1,"current_price":1}]}}`), 0644))
	require.NoError(t, a.Import(ctx, path))

	data, err := a.Storage.HoldingsStorage().Get(ctx)
	require.NoError(t, err)
	require.Len(t, data.Stocks, 1)
	assert.Equal(t, "AAPL", data.Stocks[0].Ticker, "import replaces, never merges")
}

func TestImportRejectsWrongShape(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "bad.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"something":"else"}`), 0644))
	require.Error(t, a.Import(context.Background(), path))

	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0644))
	require.Error(t, a.Import(context.Background(), path))
}

func TestWipeAll(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.LoadDemoData(ctx))
	require.NoError(t, a.LedgerService.UpdateSettings(ctx, models.LedgerSettings{TaxRatePct: 19}))

	require.NoError(t, a.WipeAll(ctx))

	data, err := a.Storage.HoldingsStorage().Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, data.Stocks)
	assert.Empty(t, data.Crypto)
	assert.Equal(t, 0.0, data.CashBalance)

	ledgerData, err := a.Storage.LedgerStorage().Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledgerData.Trades)
	assert.Equal(t, 28.0, ledgerData.Settings.TaxRatePct, "wipe resets settings too")
}

func TestLoadDemoDataGuard(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.LoadDemoData(ctx))

	data, err := a.Storage.HoldingsStorage().Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, data.Stocks)

	// A second load over real data is refused.
	err = a.LoadDemoData(ctx)
	require.Error(t, err)
}
