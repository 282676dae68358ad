// Package core provides the cost-manager domain model: cost records,
// exchange-rate tables and currency conversion.
//
// All conversions pivot on USD: an amount is divided by the source rate to
// obtain its USD equivalent, then multiplied by the target rate. Results are
// rounded to 2 decimal places, half away from zero.
package core

import (
	"fmt"
	"math"
)

// RateTable maps each supported currency code to its value relative to USD.
// A valid table contains all four supported codes and has USD pinned to
// exactly 1.
type RateTable map[Currency]float64

// ValidationError reports a rate table that fails the shape contract, or a
// conversion attempted with a currency absent from the table.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validate checks that all supported currencies are present with numeric
// rates and that the USD base rate equals exactly 1. The first missing code
// is reported in SupportedCurrencies order.
func (rt RateTable) Validate() error {
	for _, cur := range SupportedCurrencies {
		if _, ok := rt[cur]; !ok {
			return &ValidationError{Msg: fmt.Sprintf("missing currency %s", cur)}
		}
	}
	if rt[USD] != 1 {
		return &ValidationError{Msg: "invalid base rate"}
	}
	return nil
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Convert converts amount from one currency to another using the given rate
// table. Same-currency conversion is an exact passthrough with no rounding.
// Both codes must be present in the table; the Rate Fetcher guarantees this
// for tables it returns, so a missing code is a precondition violation.
func Convert(amount float64, from, to Currency, rates RateTable) (float64, error) {
	if from == to {
		return amount, nil
	}

	fromRate, ok := rates[from]
	if !ok {
		return 0, &ValidationError{Msg: fmt.Sprintf("missing currency %s", from)}
	}
	toRate, ok := rates[to]
	if !ok {
		return 0, &ValidationError{Msg: fmt.Sprintf("missing currency %s", to)}
	}

	inUSD := amount / fromRate
	return Round2(inUSD * toRate), nil
}
