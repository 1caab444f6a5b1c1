package models

import "strings"

// DefaultCurrency is used when no currency code is supplied.
const DefaultCurrency = "USD"

// NormalizeCurrency trims and upper-cases a currency code. ok is false
// unless the result is exactly three characters ("usd " -> "USD", true).
func NormalizeCurrency(s string) (code string, ok bool) {
	code = strings.ToUpper(strings.TrimSpace(s))
	return code, len(code) == 3
}
