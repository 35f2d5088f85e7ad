// Package models defines data structures for patrimo
package models

import (
	"strings"
	"time"
)

// PayoutFrequency is how often a parked fund pays interest.
type PayoutFrequency string

const (
	PayoutAnnual  PayoutFrequency = "annual"
	PayoutMonthly PayoutFrequency = "monthly"
)

// ValidPayoutFrequency returns true if f is a recognised payout frequency.
func ValidPayoutFrequency(f PayoutFrequency) bool {
	return f == PayoutAnnual || f == PayoutMonthly
}

// validDividendSchedules lists accepted payments-per-year values.
var validDividendSchedules = map[int]bool{1: true, 2: true, 4: true, 12: true}

// ValidDividendSchedule returns true if n is an accepted payments-per-year value.
func ValidDividendSchedule(n int) bool {
	return validDividendSchedules[n]
}

// HoldingStock represents a stock or ETF position.
type HoldingStock struct {
	ID           string  `json:"id"`
	Ticker       string  `json:"ticker"` // unique, uppercase
	Qty          float64 `json:"qty"`
	AvgBuyPrice  float64 `json:"avg_buy_price"`
	CurrentPrice float64 `json:"current_price"`
}

// HoldingCrypto represents a crypto position. InvestedAmount is the cost basis
// entered by the user, independent of qty × price.
type HoldingCrypto struct {
	ID             string  `json:"id"`
	Coin           string  `json:"coin"` // unique, uppercase
	InvestedAmount float64 `json:"invested_amount"`
	Qty            float64 `json:"qty"`
	CurrentPrice   float64 `json:"current_price"`
}

// HoldingP2PLoan represents a peer-to-peer loan position. Term length resolves
// as: calendar span between StartDate/EndDate when both parse and end > start,
// else Years, else 1.
type HoldingP2PLoan struct {
	ID            string  `json:"id"`
	Platform      string  `json:"platform"`
	Project       string  `json:"project"`
	Amount        float64 `json:"amount"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	StartDate     string  `json:"start_date,omitempty"` // yyyy-mm-dd
	EndDate       string  `json:"end_date,omitempty"`   // yyyy-mm-dd
	Years         float64 `json:"years,omitempty"`
}

// HoldingParkedFund represents cash parked at interest.
type HoldingParkedFund struct {
	ID        string          `json:"id"`
	Platform  string          `json:"platform"`
	Amount    float64         `json:"amount"`
	RatePct   float64         `json:"rate_pct"`
	Frequency PayoutFrequency `json:"frequency"`
}

// DividendRecord links an annual per-share dividend to a held stock. The
// received amount is always derived from the referenced stock's live quantity,
// never stored.
type DividendRecord struct {
	ID              string  `json:"id"`
	Ticker          string  `json:"ticker"`
	PerShareAnnual  float64 `json:"per_share_annual"`
	PaymentsPerYear int     `json:"payments_per_year"` // 1, 2, 4 or 12
}

// HoldingsMeta carries snapshot metadata.
type HoldingsMeta struct {
	LastUpdated time.Time `json:"last_updated"`
}

// HoldingsData is the whole-snapshot holdings document. It is read, mutated in
// memory, and written back as one blob on every change.
type HoldingsData struct {
	Meta        HoldingsMeta        `json:"meta"`
	CashBalance float64             `json:"cash_balance"`
	Stocks      []HoldingStock      `json:"stocks"`
	Dividends   []DividendRecord    `json:"dividends"`
	Crypto      []HoldingCrypto     `json:"crypto"`
	P2P         []HoldingP2PLoan    `json:"p2p"`
	Funds       []HoldingParkedFund `json:"funds"`
}

// DefaultHoldingsData returns the documented empty-default snapshot.
func DefaultHoldingsData() *HoldingsData {
	return &HoldingsData{
		Stocks:    []HoldingStock{},
		Dividends: []DividendRecord{},
		Crypto:    []HoldingCrypto{},
		P2P:       []HoldingP2PLoan{},
		Funds:     []HoldingParkedFund{},
	}
}

// Normalize replaces nil collections with empty slices so serialized output is
// stable regardless of how the snapshot was produced.
func (d *HoldingsData) Normalize() {
	if d.Stocks == nil {
		d.Stocks = []HoldingStock{}
	}
	if d.Dividends == nil {
		d.Dividends = []DividendRecord{}
	}
	if d.Crypto == nil {
		d.Crypto = []HoldingCrypto{}
	}
	if d.P2P == nil {
		d.P2P = []HoldingP2PLoan{}
	}
	if d.Funds == nil {
		d.Funds = []HoldingParkedFund{}
	}
}

// FindStock returns a pointer into the snapshot for the given ticker, or nil.
// Ticker comparison is case-insensitive; stored tickers are uppercase.
func (d *HoldingsData) FindStock(ticker string) *HoldingStock {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	for i := range d.Stocks {
		if d.Stocks[i].Ticker == t {
			return &d.Stocks[i]
		}
	}
	return nil
}

// FindCrypto returns a pointer into the snapshot for the given coin, or nil.
func (d *HoldingsData) FindCrypto(coin string) *HoldingCrypto {
	c := strings.ToUpper(strings.TrimSpace(coin))
	for i := range d.Crypto {
		if d.Crypto[i].Coin == c {
			return &d.Crypto[i]
		}
	}
	return nil
}

// AdjustStockQty adds delta to a stock's quantity, clamping the result at
// zero. Negative holdings are clamped, not rejected. Returns false when the
// ticker is not held.
func (d *HoldingsData) AdjustStockQty(ticker string, delta float64) bool {
	stock := d.FindStock(ticker)
	if stock == nil {
		return false
	}
	stock.Qty += delta
	if stock.Qty < 0 {
		stock.Qty = 0
	}
	return true
}

// AdjustCryptoPosition adds deltas to a coin's quantity and invested amount,
// clamping both at zero. Returns false when the coin is not held.
func (d *HoldingsData) AdjustCryptoPosition(coin string, qtyDelta, investedDelta float64) bool {
	crypto := d.FindCrypto(coin)
	if crypto == nil {
		return false
	}
	crypto.Qty += qtyDelta
	if crypto.Qty < 0 {
		crypto.Qty = 0
	}
	crypto.InvestedAmount += investedDelta
	if crypto.InvestedAmount < 0 {
		crypto.InvestedAmount = 0
	}
	return true
}
