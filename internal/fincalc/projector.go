package fincalc

import "akfinance/internal/core"

const (
	// Compound accrues interest on the balance including the month's
	// contribution: balance = (balance + contribution) * (1 + rate).
	Compound GrowthMode = "compound"

	// Simple accrues interest on the balance only; the month's
	// contribution is added separately and earns nothing that month.
	Simple GrowthMode = "simple"
)

// GrowthMode selects how monthly interest is accrued in ProjectGrowth.
type GrowthMode string

// Valid reports whether the mode is one of the two known modes.
func (m GrowthMode) Valid() bool {
	return m == Compound || m == Simple
}

// Projection is the result of a compounding simulation: yearly snapshots
// plus the final aggregates the investment screen displays.
type Projection struct {
	FinalBalance     float64                 `json:"finalBalance"`
	TotalContributed float64                 `json:"totalContributed"`
	Profit           float64                 `json:"profit"`
	ProfitPercent    float64                 `json:"profitPercent"`
	Yearly           []core.YearlyProjection `json:"yearly"`
}

// ProjectGrowth simulates monthly contributions growing for years under
// the given annual percentage rate, emitting one snapshot per year.
//
// The simulation carries raw float64 values; no rounding is applied here,
// rounding happens only when formatting for display. ProfitPercent is
// defined as 0 when nothing was contributed, which also covers the
// all-zero-input run.
func ProjectGrowth(initial, monthly, annualRate float64, years int, mode GrowthMode) Projection {
	monthlyRate := annualRate / 100 / 12

	balance := initial
	yearly := make([]core.YearlyProjection, 0, years)
	for y := 1; y <= years; y++ {
		for m := 0; m < 12; m++ {
			if mode == Compound {
				balance = (balance + monthly) * (1 + monthlyRate)
			} else {
				balance = balance + monthly + balance*monthlyRate
			}
		}
		contributed := initial + monthly*12*float64(y)
		yearly = append(yearly, core.YearlyProjection{
			Year:             y,
			EndingBalance:    balance,
			TotalContributed: contributed,
			Profit:           balance - contributed,
		})
	}

	contributed := initial + monthly*12*float64(years)
	profit := balance - contributed
	profitPercent := 0.0
	if contributed != 0 {
		profitPercent = profit / contributed * 100
	}
	return Projection{
		FinalBalance:     balance,
		TotalContributed: contributed,
		Profit:           profit,
		ProfitPercent:    profitPercent,
		Yearly:           yearly,
	}
}
