// Package fincalc implements the financial calculator engine: annuity
// math, amortization schedules, and compounding projections.
//
// All functions are pure and total for the valid input domain. Validation
// is the caller's responsibility (see internal/services); out-of-domain
// input produces nonsensical float results rather than panics.
package fincalc

import "math"

// PeriodicPayment computes the fixed payment that amortizes principal over
// periods at the given periodic decimal rate (the standard annuity
// formula). A zero rate degenerates to a straight-line split, which also
// avoids the zero denominator in the general formula.
//
// Callers must enforce periods >= 1.
func PeriodicPayment(periodicRate float64, periods int, principal float64) float64 {
	if periodicRate == 0 {
		return principal / float64(periods)
	}
	factor := math.Pow(1+periodicRate, float64(periods))
	return principal * periodicRate * factor / (factor - 1)
}

// DecomposePeriod splits a payment into its interest and principal
// portions for the period starting at remainingBalance.
//
// The principal portion may come out negative when the payment does not
// even cover the interest due; that is a valid computed result, not an
// error.
func DecomposePeriod(periodicRate, remainingBalance, payment float64) (interest, principal float64) {
	interest = remainingBalance * periodicRate
	principal = payment - interest
	return interest, principal
}
