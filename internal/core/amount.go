// Package core defines the shared domain types of the calculator and
// ledger services.
//
// This file contains helpers for parsing and rounding monetary amounts.
// All amounts are float64 values in the base currency unit; rounding is a
// presentation concern, never applied inside the calculators themselves.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a decimal string to a non-negative amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for empty input, signs, non-numeric text, or
// non-finite results. Zero is a valid amount here: balance-sheet rows may
// be created empty and filled in later.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !IsFinite(v) || v < 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseSignedAmount parses like ParseAmount but also accepts a leading
// minus, for balances that may start in overdraft.
func ParseSignedAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	v, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
