package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMonto(t *testing.T) {
	if got := formatMonto(decimal.NullDecimal{}); got != "N/A" {
		t.Errorf("formatMonto(nulo) = %q, want N/A", got)
	}
	d := decimal.NewNullDecimal(decimal.RequireFromString("1234567.89"))
	if got := formatMonto(d); got != "$1234567.89" {
		t.Errorf("formatMonto() = %q, want $1234567.89", got)
	}
	entero := decimal.NewNullDecimal(decimal.RequireFromString("500000"))
	if got := formatMonto(entero); got != "$500000.00" {
		t.Errorf("formatMonto() = %q, want $500000.00", got)
	}
}

func TestFormatFecha(t *testing.T) {
	if got := formatFecha(nil); got != "-" {
		t.Errorf("formatFecha(nil) = %q, want -", got)
	}
	f := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	if got := formatFecha(&f); got != "2024-05-20" {
		t.Errorf("formatFecha() = %q", got)
	}
}

func TestFormatEntero(t *testing.T) {
	if got := formatEntero(nil); got != "-" {
		t.Errorf("formatEntero(nil) = %q, want -", got)
	}
	n := 18
	if got := formatEntero(&n); got != "18" {
		t.Errorf("formatEntero() = %q, want 18", got)
	}
}
