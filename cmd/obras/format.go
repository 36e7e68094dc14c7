package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// formatMonto renders a nullable money amount, "N/A" when absent.
func formatMonto(d decimal.NullDecimal) string {
	if !d.Valid {
		return "N/A"
	}
	return "$" + d.Decimal.StringFixed(2)
}

// formatFecha renders a nullable date, "-" when absent.
func formatFecha(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

// formatEntero renders a nullable integer, "-" when absent.
func formatEntero(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}
