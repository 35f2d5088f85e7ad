package app

import (
	"context"
	"fmt"

	"github.com/rferreira/patrimo/internal/models"
)

// LoadDemoData replaces both stores with a small illustrative dataset. It
// refuses to run when either store already holds data, so a stray command
// cannot wipe a real portfolio.
func (a *App) LoadDemoData(ctx context.Context) error {
	holdingsData, err := a.Storage.HoldingsStorage().Get(ctx)
	if err != nil {
		return err
	}
	ledgerData, err := a.Storage.LedgerStorage().Get(ctx)
	if err != nil {
		return err
	}
	if len(holdingsData.Stocks)+len(holdingsData.Crypto)+len(holdingsData.P2P)+len(holdingsData.Funds) > 0 ||
		len(ledgerData.Trades) > 0 {
		return fmt.Errorf("refusing to load demo data over existing portfolio")
	}

	demo := demoHoldings()
	if err := a.Storage.HoldingsStorage().Save(ctx, demo); err != nil {
		return fmt.Errorf("failed to save demo holdings: %w", err)
	}

	ledgerData.Trades = demoTrades()
	if err := a.Storage.LedgerStorage().Save(ctx, ledgerData); err != nil {
		return fmt.Errorf("failed to save demo ledger: %w", err)
	}

	a.Bus.Publish("demo")
	a.Logger.Info().Msg("Demo dataset loaded")
	return nil
}

func demoHoldings() *models.HoldingsData {
	data := models.DefaultHoldingsData()
	data.CashBalance = 1250
	data.Stocks = []models.HoldingStock{
		{ID: "demo-s1", Ticker: "AAPL", Qty: 12, AvgBuyPrice: 165.40, CurrentPrice: 214.20},
		{ID: "demo-s2", Ticker: "VWCE", Qty: 40, AvgBuyPrice: 98.10, CurrentPrice: 121.75},
	}
	data.Dividends = []models.DividendRecord{
		{ID: "demo-d1", Ticker: "AAPL", PerShareAnnual: 1.00, PaymentsPerYear: 4},
		{ID: "demo-d2", Ticker: "VWCE", PerShareAnnual: 2.40, PaymentsPerYear: 2},
	}
	data.Crypto = []models.HoldingCrypto{
		{ID: "demo-c1", Coin: "BTC", InvestedAmount: 3000, Qty: 0.055, CurrentPrice: 64000},
		{ID: "demo-c2", Coin: "ETH", InvestedAmount: 1200, Qty: 0.5, CurrentPrice: 3100},
	}
	data.P2P = []models.HoldingP2PLoan{
		{ID: "demo-p1", Platform: "Raize", Project: "Padaria Central", Amount: 500,
			AnnualRatePct: 7.5, StartDate: "2025-02-01", EndDate: "2027-02-01"},
		{ID: "demo-p2", Platform: "Raize", Project: "Oficina Silva", Amount: 300,
			AnnualRatePct: 6.0, Years: 1.5},
	}
	data.Funds = []models.HoldingParkedFund{
		{ID: "demo-f1", Platform: "Trade Republic", Amount: 4000, RatePct: 2.75, Frequency: models.PayoutAnnual},
		{ID: "demo-f2", Platform: "Lightyear", Amount: 1500, RatePct: 0.22, Frequency: models.PayoutMonthly},
	}
	return data
}

func demoTrades() []models.RealizedTrade {
	return []models.RealizedTrade{
		{ID: "demo-t1", Date: "2025-05-14", AssetClass: models.AssetClassStocks, Ticker: "NVDA",
			Qty: 3, AvgBuyPrice: 410, SellPrice: 520, Fees: 2},
		{ID: "demo-t2", Date: "2025-11-03", AssetClass: models.AssetClassCrypto, Ticker: "SOL",
			Qty: 4, AvgBuyPrice: 120, SellPrice: 95, Fees: 1.5},
		{ID: "demo-t3", Date: "2026-01-22", AssetClass: models.AssetClassOther, Ticker: "WATCH",
			Qty: 1, AvgBuyPrice: 800, SellPrice: 950},
	}
}
