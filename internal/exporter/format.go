package exporter

import (
	"fmt"
)

// formatFloat formats an hours value with exactly 2 decimal places so that
// 9.5 appears as 9.50 in every output format.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an integer value for tabular output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatBool formats a boolean value for tabular output
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// orDash substitutes a dash for empty display values
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
