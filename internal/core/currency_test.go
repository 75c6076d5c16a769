package core

import (
	"errors"
	"testing"
)

func TestSupportedCurrencies(t *testing.T) {
	list := SupportedCurrencies()
	if len(list) < 20 {
		t.Fatalf("expected at least 20 supported currencies, got %d", len(list))
	}
	seen := make(map[string]bool)
	for _, c := range list {
		if seen[c.Code] {
			t.Fatalf("duplicate currency code %q", c.Code)
		}
		seen[c.Code] = true
		if c.Symbol == "" {
			t.Fatalf("currency %q has no symbol", c.Code)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		cents int64
		code  string
		want  string
	}{
		{123450, "EUR", "€1,234.50"},
		{123450, "USD", "$1,234.50"},
		{5000, "GBP", "£50.00"},
		{123450, "JPY", "¥1,235"}, // zero-decimal, half-up
		{123450, "SEK", "1,234.50 kr"},
		{-4550, "USD", "-$45.50"},
		{0, "USD", "$0.00"},
		{100000000, "USD", "$1,000,000.00"},
	}
	for _, tc := range cases {
		got, err := FormatAmount(tc.cents, tc.code)
		if err != nil {
			t.Fatalf("FormatAmount(%d, %s) error: %v", tc.cents, tc.code, err)
		}
		if got != tc.want {
			t.Fatalf("FormatAmount(%d, %s) = %q, want %q", tc.cents, tc.code, got, tc.want)
		}
	}
}

func TestFormatAmountUnsupported(t *testing.T) {
	_, err := FormatAmount(100, "XXX")
	if !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
}

func TestLookupCurrencyNormalizesCode(t *testing.T) {
	c, err := LookupCurrency(" eur ")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if c.Code != "EUR" {
		t.Fatalf("expected EUR, got %q", c.Code)
	}
}
