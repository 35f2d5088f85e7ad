package holdings

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rferreira/patrimo/internal/finance"
	"github.com/rferreira/patrimo/internal/models"
)

// ComputeStocksSummary totals the stock positions.
func ComputeStocksSummary(data *models.HoldingsData) models.AssetSummary {
	var sum models.AssetSummary
	for _, s := range data.Stocks {
		sum.Invested += s.Qty * s.AvgBuyPrice
		sum.Current += s.Qty * s.CurrentPrice
	}
	sum.Profit = sum.Current - sum.Invested
	if sum.Invested > 0 {
		sum.ProfitPct = sum.Profit / sum.Invested * 100
	}
	return sum
}

// ComputeCryptoSummary totals the crypto positions. Invested is the recorded
// invested amount, not qty times an average price.
func ComputeCryptoSummary(data *models.HoldingsData) models.AssetSummary {
	var sum models.AssetSummary
	for _, c := range data.Crypto {
		sum.Invested += c.InvestedAmount
		sum.Current += c.Qty * c.CurrentPrice
	}
	sum.Profit = sum.Current - sum.Invested
	if sum.Invested > 0 {
		sum.ProfitPct = sum.Profit / sum.Invested * 100
	}
	return sum
}

// ComputeP2PSummary projects every loan with simple interest over its resolved
// term. AvgPct is the plain mean of per-loan percentages, not value-weighted.
func ComputeP2PSummary(data *models.HoldingsData) models.P2PSummary {
	var sum models.P2PSummary
	var pctSum float64
	for _, l := range data.P2P {
		years := finance.ResolveTermYears(l.StartDate, l.EndDate, l.Years)
		proj := finance.SimpleInterestProjection(l.Amount, l.AnnualRatePct, years)
		sum.Invested += l.Amount
		sum.FinalValue += proj.FinalValue
		sum.Profit += proj.Profit
		sum.ProfitPerYear += proj.ProfitPerYear
		pctSum += proj.ProfitPct
	}
	if n := len(data.P2P); n > 0 {
		sum.AvgPct = pctSum / float64(n)
	}
	return sum
}

// ComputeFundsSummary projects parked-fund income at each fund's effective
// annual rate. The average rate is weighted by parked amount.
func ComputeFundsSummary(data *models.HoldingsData) models.FundsSummary {
	var sum models.FundsSummary
	for _, f := range data.Funds {
		annualPct := finance.CompoundAnnualRatePct(f.RatePct, f.Frequency)
		sum.Total += f.Amount
		sum.YearProfit += f.Amount * annualPct / 100
	}
	sum.MonthProfit = sum.YearProfit / 12
	sum.DayProfit = sum.YearProfit / finance.DaysPerYear
	if sum.Total > 0 {
		sum.AvgRatePct = sum.YearProfit / sum.Total * 100
	}
	return sum
}

// ComputeDividendsSummary joins each dividend record against the live stock
// quantity for its ticker. A record whose ticker is no longer held contributes
// nothing.
func ComputeDividendsSummary(data *models.HoldingsData) models.DividendsSummary {
	var sum models.DividendsSummary
	for _, d := range data.Dividends {
		qty := 0.0
		if s := data.FindStock(d.Ticker); s != nil {
			qty = s.Qty
		}
		rr := finance.DividendRunRate(qty, d.PerShareAnnual)
		sum.Year += rr.Year
		sum.Month += rr.Month
		sum.Day += rr.Day
	}
	return sum
}

// ComputeNetWorth rolls every collection up into the top-level summary.
// Parked funds and cash count toward net worth but not toward the invested
// base used for the profit percentage.
func ComputeNetWorth(data *models.HoldingsData) *models.NetWorthSummary {
	nw := &models.NetWorthSummary{
		Stocks:    ComputeStocksSummary(data),
		Crypto:    ComputeCryptoSummary(data),
		P2P:       ComputeP2PSummary(data),
		Funds:     ComputeFundsSummary(data),
		Dividends: ComputeDividendsSummary(data),
	}

	nw.TotalInvested = nw.Stocks.Invested + nw.Crypto.Invested + nw.P2P.Invested
	nw.CurrentAssets = nw.Stocks.Current + nw.Crypto.Current + nw.P2P.FinalValue
	nw.TotalProfit = nw.CurrentAssets - nw.TotalInvested
	if nw.TotalInvested > 0 {
		nw.TotalProfitPct = nw.TotalProfit / nw.TotalInvested * 100
	}

	nw.CashBalance = data.CashBalance
	nw.NetWorth = nw.CurrentAssets + nw.Funds.Total + data.CashBalance

	nw.RecurringYear = nw.Dividends.Year + nw.P2P.ProfitPerYear + nw.Funds.YearProfit
	nw.RecurringMonth = nw.RecurringYear / 12
	nw.RecurringDay = nw.RecurringYear / finance.DaysPerYear

	return nw
}

// NetWorth computes the full summary from the current snapshot and joins in
// the realized P&L published by the trade ledger.
func (s *Service) NetWorth(ctx context.Context) (*models.NetWorthSummary, error) {
	data, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	nw := ComputeNetWorth(data)

	ledger, err := s.storage.LedgerStorage().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trade ledger: %w", err)
	}
	currentYear := strconv.Itoa(time.Now().Year())
	for _, t := range ledger.Trades {
		derived := models.ComputeTradeDerived(t, ledger.Settings.TaxRatePct)
		nw.RealizedProfitTotal += derived.Profit
		if t.Year() == currentYear {
			nw.RealizedProfitYTD += derived.Profit
		}
	}

	return nw, nil
}
