package fincalc

import (
	"math"

	"akfinance/internal/core"
)

// Schedule is a full amortization schedule plus the aggregates the
// calculator screens display.
type Schedule struct {
	Payment       float64                `json:"payment"`
	TotalPaid     float64                `json:"totalPaid"`
	TotalInterest float64                `json:"totalInterest"`
	Rows          []core.AmortizationRow `json:"rows"`
}

// BuildSchedule produces the month-by-month schedule for a loan of
// principal at annualRate percent per year over months periods.
//
// The annual percentage is converted to a monthly decimal rate
// (annualRate/100/12). The stored remaining balance is clamped to zero so
// floating-point drift on the final period never shows up as a small
// negative remainder. Deterministic: same inputs, same schedule.
func BuildSchedule(principal, annualRate float64, months int) Schedule {
	monthlyRate := annualRate / 100 / 12
	payment := PeriodicPayment(monthlyRate, months, principal)

	rows := make([]core.AmortizationRow, 0, months)
	balance := principal
	for m := 1; m <= months; m++ {
		interest, principalPortion := DecomposePeriod(monthlyRate, balance, payment)
		balance -= principalPortion
		rows = append(rows, core.AmortizationRow{
			Period:           m,
			Payment:          payment,
			PrincipalPortion: principalPortion,
			InterestPortion:  interest,
			RemainingBalance: math.Max(0, balance),
		})
	}

	totalPaid := payment * float64(months)
	return Schedule{
		Payment:       payment,
		TotalPaid:     totalPaid,
		TotalInterest: totalPaid - principal,
		Rows:          rows,
	}
}
