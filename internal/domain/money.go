package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// IsValidPrice reports whether a repository price is usable for charging:
// finite and strictly positive. A zero unit amount is not a constructible
// charge at the payment provider, so zero fails too.
func IsValidPrice(price float64) bool {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return false
	}
	return price > 0
}

// MinorUnits converts a major-unit decimal amount (e.g. 39.98) to the
// gateway's integer minor-unit representation (e.g. 3998), rounding
// half-to-even. Conversion happens only at the gateway boundary; all
// accumulation upstream stays in decimals.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).RoundBank(0).IntPart()
}
