// Package core provides money parsing and formatting utilities.
//
// Amounts are signed decimals in currency units: positive values are
// credits and negative values are debits.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a decimal string to a signed amount.
//
// It accepts an optional sign and both dot (12.34) and comma (12,34)
// decimal separators. The result is rounded half away from zero to cents.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34
//	ParseAmount("-12,34") -> -12.34
//	ParseAmount("1.005")  -> 1.01
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ",")+strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d.Round(2), nil
}

// FormatCurrency renders an amount as US dollars, e.g. "$1,234.56" or "-$12.00".
func FormatCurrency(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}
