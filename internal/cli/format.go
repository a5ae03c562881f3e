// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats an amount with two decimals, thousands separators and
// a currency code. Non-finite values render as "n/a".
func FormatMoney(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}

	s := formatGrouped(v, 2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatUnitCost formats a per-unit amount, keeping four decimals for
// values below one so fractions of a cent stay visible.
func FormatUnitCost(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}

	decimals := 2
	if math.Abs(v) < 1 {
		decimals = 4
	}
	s := formatGrouped(v, decimals)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatPercent formats a rate, e.g. 18 -> "18%", 12.5 -> "12.5%".
func FormatPercent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// FormatQuantity formats a plain number without trailing zeros.
// e.g., 0.2 -> "0.2", 1500 -> "1,500"
func FormatQuantity(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return FormatNumber(int64(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

func formatGrouped(v float64, decimals int) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', decimals, 64)
	whole, frac, _ := strings.Cut(s, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fmt.Sprintf("%.*f", decimals, v)
	}

	out := FormatNumber(n)
	if frac != "" {
		out += "." + frac
	}
	if v < 0 && strings.Trim(s, "0.") != "" {
		out = "-" + out
	}
	return out
}
