package models

// TradeInput is the raw user input for creating or editing a realized trade.
// Numeric fields arrive already coerced (zero when unparseable); validation
// rejects what the coercion hides.
type TradeInput struct {
	Date        string  `json:"date"`
	AssetClass  string  `json:"asset_class"`
	Ticker      string  `json:"ticker"`
	Qty         float64 `json:"qty"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
	SellPrice   float64 `json:"sell_price"`
	Fees        float64 `json:"fees"`
	Notes       string  `json:"notes"`
}
