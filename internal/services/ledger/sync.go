package ledger

import (
	"strings"
	"time"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/models"
)

const dateLayout = "2006-01-02"

// normalizeInput trims and uppercases the identifying fields and scrubs the
// numeric ones.
func normalizeInput(input models.TradeInput) models.TradeInput {
	input.Date = strings.TrimSpace(input.Date)
	input.AssetClass = strings.ToLower(strings.TrimSpace(input.AssetClass))
	input.Ticker = strings.ToUpper(strings.TrimSpace(input.Ticker))
	input.Notes = strings.TrimSpace(input.Notes)
	input.Qty = common.SafeNumber(input.Qty)
	input.AvgBuyPrice = common.SafeNumber(input.AvgBuyPrice)
	input.SellPrice = common.SafeNumber(input.SellPrice)
	input.Fees = common.SafeNumber(input.Fees)
	return input
}

// validateInput rejects a trade input before anything is touched.
func validateInput(input models.TradeInput) error {
	if input.Date == "" {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be yyyy-mm-dd"}
	}
	if !models.ValidAssetClass(models.AssetClass(input.AssetClass)) {
		return &ValidationError{Field: "asset_class", Reason: "must be stocks, crypto or other"}
	}
	if input.Ticker == "" {
		return &ValidationError{Field: "ticker", Reason: "is required"}
	}
	if input.Qty <= 0 {
		return &ValidationError{Field: "qty", Reason: "must be > 0"}
	}
	if input.AvgBuyPrice <= 0 {
		return &ValidationError{Field: "avg_buy_price", Reason: "must be > 0"}
	}
	if input.SellPrice <= 0 {
		return &ValidationError{Field: "sell_price", Reason: "must be > 0"}
	}
	if input.Fees < 0 {
		return &ValidationError{Field: "fees", Reason: "must be >= 0"}
	}
	return nil
}

// heldQty returns the currently held quantity for a tracked trade's ticker,
// and whether the position exists at all.
func heldQty(data *models.HoldingsData, class models.AssetClass, ticker string) (float64, bool) {
	switch class {
	case models.AssetClassStocks:
		if s := data.FindStock(ticker); s != nil {
			return s.Qty, true
		}
	case models.AssetClassCrypto:
		if c := data.FindCrypto(ticker); c != nil {
			return c.Qty, true
		}
	}
	return 0, false
}

// checkAvailability verifies the portfolio holds enough of the ticker to cover
// the sale. When editing, the quantity of the prior record is treated as
// available again if it targets the same ticker and class, since it will be
// rolled back before the new values apply.
func checkAvailability(data *models.HoldingsData, current *models.RealizedTrade, input models.TradeInput) error {
	class := models.AssetClass(input.AssetClass)
	if !class.Tracked() {
		return nil
	}

	held, found := heldQty(data, class, input.Ticker)
	if !found {
		return ErrTickerNotFound
	}

	available := held
	if current != nil && current.AssetClass == class && current.Ticker == input.Ticker {
		available += current.Qty
	}

	if input.Qty > available {
		return &InsufficientQuantityError{
			Ticker:    input.Ticker,
			Requested: input.Qty,
			Available: available,
		}
	}
	return nil
}

// applyTrade deducts a recorded sale from the holdings snapshot. Stock sales
// reduce quantity; crypto sales also reduce the invested amount at the
// recorded cost basis. Quantities floor at zero. Untracked classes and
// positions that no longer exist are left alone.
func applyTrade(data *models.HoldingsData, trade models.RealizedTrade) {
	switch trade.AssetClass {
	case models.AssetClassStocks:
		data.AdjustStockQty(trade.Ticker, -trade.Qty)
	case models.AssetClassCrypto:
		data.AdjustCryptoPosition(trade.Ticker, -trade.Qty, -(trade.Qty * trade.AvgBuyPrice))
	}
}

// rollbackTrade re-credits a trade's deduction. The increments are the exact
// inverse of applyTrade; for crypto the invested amount comes back at the
// trade's recorded cost basis, which is an approximation when the position's
// average price has since moved.
func rollbackTrade(data *models.HoldingsData, trade models.RealizedTrade) {
	switch trade.AssetClass {
	case models.AssetClassStocks:
		data.AdjustStockQty(trade.Ticker, trade.Qty)
	case models.AssetClassCrypto:
		data.AdjustCryptoPosition(trade.Ticker, trade.Qty, trade.Qty*trade.AvgBuyPrice)
	}
}
