// Package finance implements the projection formulas behind the holdings
// aggregates: simple-interest P2P loans, compound-rate parked funds, and
// dividend run-rates.
package finance

import (
	"math"
	"time"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/models"
)

// DaysPerYear is the fixed year divisor used for day-level run-rates and
// date-span term resolution. Not calendar-aware.
const DaysPerYear = 365.25

const dateLayout = "2006-01-02"

// Projection is the result of a simple-interest projection.
type Projection struct {
	Profit        float64 `json:"profit"`
	FinalValue    float64 `json:"final_value"`
	ProfitPct     float64 `json:"profit_pct"`
	ProfitPerYear float64 `json:"profit_per_year"` // rate-only, year-normalized run-rate
}

// RunRate annualizes a recurring income stream.
type RunRate struct {
	Year  float64 `json:"year"`
	Month float64 `json:"month"`
	Day   float64 `json:"day"`
}

// ResolveTermYears resolves a loan's term length: the calendar span between
// start and end when both parse and end is after start, else the explicit
// years value, else 1.
func ResolveTermYears(startDate, endDate string, explicitYears float64) float64 {
	if startDate != "" && endDate != "" {
		start, errS := time.Parse(dateLayout, startDate)
		end, errE := time.Parse(dateLayout, endDate)
		if errS == nil && errE == nil && end.After(start) {
			return end.Sub(start).Hours() / 24 / DaysPerYear
		}
	}
	years := common.SafeNumber(explicitYears)
	if years <= 0 {
		return 1
	}
	return years
}

// SimpleInterestProjection projects linear interest on principal only.
// profit = principal × rate × years; ProfitPerYear drops the term so it can
// feed run-rate aggregates regardless of the loan's actual length.
func SimpleInterestProjection(principal, annualRatePct, years float64) Projection {
	principal = common.SafeNumber(principal)
	rate := common.SafeNumber(annualRatePct) / 100
	years = common.SafeNumber(years)

	profit := principal * rate * years
	pct := 0.0
	if principal > 0 {
		pct = profit / principal * 100
	}

	return Projection{
		Profit:        profit,
		FinalValue:    principal + profit,
		ProfitPct:     pct,
		ProfitPerYear: principal * rate,
	}
}

// CompoundAnnualRatePct converts a fund's quoted rate to an effective annual
// percentage. A monthly rate compounds: (1+r)^12 − 1. An annual rate is
// returned as-is.
func CompoundAnnualRatePct(ratePct float64, frequency models.PayoutFrequency) float64 {
	r := common.SafeNumber(ratePct) / 100
	if frequency == models.PayoutMonthly {
		return (math.Pow(1+r, 12) - 1) * 100
	}
	return r * 100
}

// DividendRunRate projects annual dividend income for a position of qty shares
// paying perShareAnnual each.
func DividendRunRate(qty, perShareAnnual float64) RunRate {
	year := common.SafeNumber(qty) * common.SafeNumber(perShareAnnual)
	return RunRate{
		Year:  year,
		Month: year / 12,
		Day:   year / DaysPerYear,
	}
}
