package calculator

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount the way the activity feed shows it: "R$ 12.50".
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// ParseAmount accepts "12.50" and "12,50".
func ParseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
