// Package unit converts between human-readable asset amounts and the
// fixed-point smallest-unit int64 representation the ledger stores.
// All ledger arithmetic stays in int64; decimals appear only at the edges
// (API input, notification payloads).
package unit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Parse converts a display amount string ("0.5") into smallest units
// given the asset's decimal places (8 for BTC-like assets).
// Rejects negative amounts and amounts with more precision than the asset
// supports.
func Parse(s string, decimals int32) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}

	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %q exceeds %d decimal places", s, decimals)
	}
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %q overflows smallest-unit range", s)
	}
	return scaled.IntPart(), nil
}

// Format renders a smallest-unit amount as a display string.
func Format(amount int64, decimals int32) string {
	return decimal.New(amount, -decimals).String()
}
