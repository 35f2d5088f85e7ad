package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rferreira/patrimo/internal/models"
)

// renderAllocationChart renders a PNG bar chart of current value per asset
// bucket. Returns raw PNG bytes.
func renderAllocationChart(nw *models.NetWorthSummary) ([]byte, error) {
	bars := []chart.Value{
		{Label: "Stocks", Value: nw.Stocks.Current, Style: barStyle("2563eb")},  // blue-600
		{Label: "Crypto", Value: nw.Crypto.Current, Style: barStyle("f59e0b")},  // amber-500
		{Label: "P2P", Value: nw.P2P.FinalValue, Style: barStyle("16a34a")},     // green-600
		{Label: "Funds", Value: nw.Funds.Total, Style: barStyle("9333ea")},      // purple-600
		{Label: "Cash", Value: nw.CashBalance, Style: barStyle("9ca3af")},       // gray-400
	}

	total := 0.0
	for _, b := range bars {
		total += b.Value
	}
	if total <= 0 {
		return nil, fmt.Errorf("nothing to chart: all buckets are empty")
	}

	graph := chart.BarChart{
		Title:    "Asset Allocation",
		Width:    720,
		Height:   400,
		BarWidth: 90,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// renderRecurringIncomeChart renders a PNG bar chart of the annual recurring
// income streams.
func renderRecurringIncomeChart(nw *models.NetWorthSummary) ([]byte, error) {
	bars := []chart.Value{
		{Label: "Dividends", Value: nw.Dividends.Year, Style: barStyle("2563eb")},
		{Label: "P2P", Value: nw.P2P.ProfitPerYear, Style: barStyle("16a34a")},
		{Label: "Funds", Value: nw.Funds.YearProfit, Style: barStyle("9333ea")},
	}

	total := 0.0
	for _, b := range bars {
		total += b.Value
	}
	if total <= 0 {
		return nil, fmt.Errorf("nothing to chart: no recurring income")
	}

	graph := chart.BarChart{
		Title:    "Recurring Income / Year",
		Width:    600,
		Height:   400,
		BarWidth: 110,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func barStyle(hex string) chart.Style {
	return chart.Style{
		FillColor:   drawing.ColorFromHex(hex),
		StrokeColor: drawing.ColorFromHex(hex),
		StrokeWidth: 0,
	}
}
