package models

import (
	"sort"
	"strings"
	"time"
)

// AssetClass categorizes what a realized trade sold.
type AssetClass string

const (
	AssetClassStocks AssetClass = "stocks"
	AssetClassCrypto AssetClass = "crypto"
	AssetClassOther  AssetClass = "other"
)

// ValidAssetClass returns true if c is a recognised asset class.
func ValidAssetClass(c AssetClass) bool {
	switch c {
	case AssetClassStocks, AssetClassCrypto, AssetClassOther:
		return true
	default:
		return false
	}
}

// Tracked reports whether trades of this class move holdings quantities.
// Only stocks and crypto are portfolio-tracked; "other" leaves holdings alone.
func (c AssetClass) Tracked() bool {
	return c == AssetClassStocks || c == AssetClassCrypto
}

// FilterAll is the unfiltered default for both the year and class dimensions.
const FilterAll = "all"

// RealizedTrade records a completed sale. AvgBuyPrice is the cost basis per
// unit at the time of sale; Fees are added to the invested amount.
type RealizedTrade struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"` // yyyy-mm-dd
	AssetClass  AssetClass `json:"asset_class"`
	Ticker      string     `json:"ticker"`
	Qty         float64    `json:"qty"`
	AvgBuyPrice float64    `json:"avg_buy_price"`
	SellPrice   float64    `json:"sell_price"`
	Fees        float64    `json:"fees"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Year returns the calendar year of the trade, derived from the date's
// leading 4 characters. Empty when the date is too short.
func (t RealizedTrade) Year() string {
	if len(t.Date) < 4 {
		return ""
	}
	return t.Date[:4]
}

// TradeDerived holds the per-trade P&L figures computed from a trade.
type TradeDerived struct {
	Invested  float64 `json:"invested"`
	Received  float64 `json:"received"`
	Profit    float64 `json:"profit"`
	ProfitPct float64 `json:"profit_pct"`
	Taxable   float64 `json:"taxable"`
	Tax       float64 `json:"tax"`
	Net       float64 `json:"net"`
}

// ComputeTradeDerived derives P&L and the flat-rate tax estimate for a trade.
// invested = qty×avgBuy + fees; received = qty×sell; taxable = max(0, profit).
func ComputeTradeDerived(t RealizedTrade, taxRatePct float64) TradeDerived {
	invested := t.Qty*t.AvgBuyPrice + t.Fees
	received := t.Qty * t.SellPrice
	profit := received - invested

	profitPct := 0.0
	if invested > 0 {
		profitPct = profit / invested * 100
	}

	taxable := profit
	if taxable < 0 {
		taxable = 0
	}
	tax := taxable * taxRatePct / 100

	return TradeDerived{
		Invested:  invested,
		Received:  received,
		Profit:    profit,
		ProfitPct: profitPct,
		Taxable:   taxable,
		Tax:       tax,
		Net:       profit - tax,
	}
}

// TradeTotals aggregates derived figures across a filtered set of trades.
// ProfitPct is Σprofit/Σinvested, not a mean of per-row percentages.
type TradeTotals struct {
	Invested  float64 `json:"invested"`
	Received  float64 `json:"received"`
	Profit    float64 `json:"profit"`
	ProfitPct float64 `json:"profit_pct"`
	Tax       float64 `json:"tax"`
	Net       float64 `json:"net"`
	Count     int     `json:"count"`
}

// AggregateTrades sums derived figures over trades at the given tax rate.
func AggregateTrades(trades []RealizedTrade, taxRatePct float64) TradeTotals {
	totals := TradeTotals{Count: len(trades)}
	for _, t := range trades {
		d := ComputeTradeDerived(t, taxRatePct)
		totals.Invested += d.Invested
		totals.Received += d.Received
		totals.Profit += d.Profit
		totals.Tax += d.Tax
		totals.Net += d.Net
	}
	if totals.Invested > 0 {
		totals.ProfitPct = totals.Profit / totals.Invested * 100
	}
	return totals
}

// LedgerSettings are the persisted ledger view preferences.
type LedgerSettings struct {
	ShowTax     bool    `json:"show_tax"`
	TaxRatePct  float64 `json:"tax_rate_pct"`
	YearFilter  string  `json:"year_filter"`
	ClassFilter string  `json:"class_filter"`
}

// DefaultLedgerSettings returns the documented settings defaults.
func DefaultLedgerSettings() LedgerSettings {
	return LedgerSettings{
		ShowTax:     true,
		TaxRatePct:  28,
		YearFilter:  FilterAll,
		ClassFilter: FilterAll,
	}
}

// TradeLedger is the whole-snapshot ledger document: every realized trade plus
// the view settings, persisted as one blob.
type TradeLedger struct {
	Trades   []RealizedTrade `json:"trades"`
	Settings LedgerSettings  `json:"settings"`
}

// DefaultTradeLedger returns the documented empty-default ledger.
func DefaultTradeLedger() *TradeLedger {
	return &TradeLedger{
		Trades:   []RealizedTrade{},
		Settings: DefaultLedgerSettings(),
	}
}

// Normalize replaces a nil trade slice and zeroed settings with defaults.
func (l *TradeLedger) Normalize() {
	if l.Trades == nil {
		l.Trades = []RealizedTrade{}
	}
	if l.Settings.YearFilter == "" {
		l.Settings.YearFilter = FilterAll
	}
	if l.Settings.ClassFilter == "" {
		l.Settings.ClassFilter = FilterAll
	}
	if l.Settings.TaxRatePct == 0 {
		l.Settings.TaxRatePct = 28
	}
}

// FindTrade returns the index of the trade with the given id, or -1.
func (l *TradeLedger) FindTrade(id string) int {
	for i := range l.Trades {
		if l.Trades[i].ID == id {
			return i
		}
	}
	return -1
}

// Filter returns the trades matching a year and asset-class filter. FilterAll
// ("all") leaves the corresponding dimension unfiltered.
func (l *TradeLedger) Filter(year, class string) []RealizedTrade {
	class = strings.ToLower(strings.TrimSpace(class))
	out := make([]RealizedTrade, 0, len(l.Trades))
	for _, t := range l.Trades {
		if year != FilterAll && year != "" && t.Year() != year {
			continue
		}
		if class != FilterAll && class != "" && string(t.AssetClass) != class {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Years returns the distinct trade years, newest first.
func (l *TradeLedger) Years() []string {
	seen := map[string]bool{}
	var years []string
	for _, t := range l.Trades {
		y := t.Year()
		if y == "" || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}
