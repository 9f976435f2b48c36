// Package currencyutils provides the decimal parsing, rounding and formatting
// used for market-cap amounts and exchange rates.
package currencyutils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode selects how ties are resolved when rounding an amount.
type RoundingMode string

const (
	// RoundHalfEven rounds ties to the nearest even digit (banker's rounding).
	RoundHalfEven RoundingMode = "half_even"
	// RoundHalfUp rounds ties away from zero.
	RoundHalfUp RoundingMode = "half_up"
)

// ParseRoundingMode validates a rounding mode name. An empty name selects
// RoundHalfEven.
func ParseRoundingMode(name string) (RoundingMode, error) {
	switch RoundingMode(strings.ToLower(strings.TrimSpace(name))) {
	case "", RoundHalfEven:
		return RoundHalfEven, nil
	case RoundHalfUp:
		return RoundHalfUp, nil
	default:
		return "", fmt.Errorf("unknown rounding mode '%s' (must be '%s' or '%s')", name, RoundHalfEven, RoundHalfUp)
	}
}

// Magnitude bounds, in powers of ten, of the amounts accepted by ParseAmount.
// They follow the finite float64 range.
const (
	maxMagnitude = 308
	minMagnitude = -324
)

// ParseAmount parses a plain decimal number such as "390.934", "-1.5" or "1e3".
// Surrounding whitespace is ignored. Empty strings, thousands separators and
// currency symbols are rejected, as are amounts too large for a float64.
// Non-zero amounts smaller than the smallest float64 parse as zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(amountStr)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	if amount.IsZero() {
		return decimal.Zero, nil
	}
	// Position of the leading digit, read from the exponent so that a short
	// literal like "1e50000000" is never expanded.
	digits := len(new(big.Int).Abs(amount.Coefficient()).Text(10))
	magnitude := int64(amount.Exponent()) + int64(digits) - 1
	switch {
	case magnitude > maxMagnitude:
		return decimal.Zero, fmt.Errorf("amount '%s' is out of range", amountStr)
	case magnitude < minMagnitude:
		return decimal.Zero, nil
	}
	return amount, nil
}

// Round rounds amount to the given number of decimal places using mode.
func Round(amount decimal.Decimal, places int32, mode RoundingMode) decimal.Decimal {
	if mode == RoundHalfUp {
		return amount.Round(places)
	}
	return amount.RoundBank(places)
}

// Convert multiplies amount by rate and rounds the product.
func Convert(amount, rate decimal.Decimal, places int32, mode RoundingMode) decimal.Decimal {
	return Round(amount.Mul(rate), places, mode)
}

// FormatAmount renders an amount with the fewest digits that represent it,
// always keeping at least one fractional digit: 80 -> "80.0", 0.5 -> "0.5".
func FormatAmount(amount decimal.Decimal) string {
	s := amount.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
