package models

// AssetSummary holds invested/current/profit figures for stocks or crypto.
type AssetSummary struct {
	Invested  float64 `json:"invested"`
	Current   float64 `json:"current"`
	Profit    float64 `json:"profit"`
	ProfitPct float64 `json:"profit_pct"`
}

// P2PSummary aggregates peer-to-peer loan positions. AvgPct is the simple mean
// of per-row percentages. ProfitPerYear is the rate-only run-rate, independent
// of each loan's actual term.
type P2PSummary struct {
	Invested      float64 `json:"invested"`
	FinalValue    float64 `json:"final_value"`
	Profit        float64 `json:"profit"`
	AvgPct        float64 `json:"avg_pct"`
	ProfitPerYear float64 `json:"profit_per_year"`
}

// FundsSummary aggregates parked funds. AvgRatePct is weighted by amount.
type FundsSummary struct {
	Total       float64 `json:"total"`
	YearProfit  float64 `json:"year_profit"`
	MonthProfit float64 `json:"month_profit"`
	DayProfit   float64 `json:"day_profit"`
	AvgRatePct  float64 `json:"avg_rate_pct"`
}

// DividendsSummary is the projected dividend income, derived live from each
// referenced stock's current quantity.
type DividendsSummary struct {
	Year  float64 `json:"year"`
	Month float64 `json:"month"`
	Day   float64 `json:"day"`
}

// NetWorthSummary is the top-level aggregate over every holdings collection,
// plus realized P&L published from the trade ledger.
type NetWorthSummary struct {
	Stocks    AssetSummary     `json:"stocks"`
	Crypto    AssetSummary     `json:"crypto"`
	P2P       P2PSummary       `json:"p2p"`
	Funds     FundsSummary     `json:"funds"`
	Dividends DividendsSummary `json:"dividends"`

	TotalInvested  float64 `json:"total_invested"`
	CurrentAssets  float64 `json:"current_assets"`
	TotalProfit    float64 `json:"total_profit"`
	TotalProfitPct float64 `json:"total_profit_pct"`
	CashBalance    float64 `json:"cash_balance"`
	NetWorth       float64 `json:"net_worth"`

	// Recurring income run-rate: dividends + P2P + parked funds, annualized.
	RecurringYear  float64 `json:"recurring_year"`
	RecurringMonth float64 `json:"recurring_month"`
	RecurringDay   float64 `json:"recurring_day"`

	// Realized P&L published from the trade ledger.
	RealizedProfitTotal float64 `json:"realized_profit_total"`
	RealizedProfitYTD   float64 `json:"realized_profit_ytd"`
}
