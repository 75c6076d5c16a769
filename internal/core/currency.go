package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency describes how one supported currency is displayed. Formatting is
// presentation only: stored and aggregated amounts stay in base-currency
// cents regardless of the selected display currency.
type Currency struct {
	Code     string `json:"code"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	Suffix   bool   `json:"symbol_after"` // symbol rendered after the amount
}

// Fixed currency table, loaded once at startup and queried read-only.
// The grouping/decimal convention ("1,234.50") is uniform across the table;
// only symbol, position and fractional digits vary per code.
var currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar", Decimals: 2},
	{Code: "EUR", Symbol: "€", Name: "Euro", Decimals: 2},
	{Code: "GBP", Symbol: "£", Name: "British Pound", Decimals: 2},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", Decimals: 0},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan", Decimals: 2},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee", Decimals: 2},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", Decimals: 2},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", Decimals: 2},
	{Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar", Decimals: 2},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc", Decimals: 2, Suffix: true},
	{Code: "SEK", Symbol: "kr", Name: "Swedish Krona", Decimals: 2, Suffix: true},
	{Code: "NOK", Symbol: "kr", Name: "Norwegian Krone", Decimals: 2, Suffix: true},
	{Code: "DKK", Symbol: "kr", Name: "Danish Krone", Decimals: 2, Suffix: true},
	{Code: "PLN", Symbol: "zł", Name: "Polish Zloty", Decimals: 2, Suffix: true},
	{Code: "CZK", Symbol: "Kč", Name: "Czech Koruna", Decimals: 2, Suffix: true},
	{Code: "HUF", Symbol: "Ft", Name: "Hungarian Forint", Decimals: 0, Suffix: true},
	{Code: "RUB", Symbol: "₽", Name: "Russian Ruble", Decimals: 2, Suffix: true},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira", Decimals: 2},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real", Decimals: 2},
	{Code: "MXN", Symbol: "$", Name: "Mexican Peso", Decimals: 2},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won", Decimals: 0},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", Decimals: 2},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar", Decimals: 2},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand", Decimals: 2},
	{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham", Decimals: 2, Suffix: true},
}

var currencyIndex = func() map[string]Currency {
	idx := make(map[string]Currency, len(currencies))
	for _, c := range currencies {
		idx[c.Code] = c
	}
	return idx
}()

// SupportedCurrencies returns the full currency table in canonical order.
// The returned slice is a copy.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// LookupCurrency returns the currency metadata for code.
func LookupCurrency(code string) (Currency, error) {
	c, ok := currencyIndex[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return c, nil
}

// IsSupportedCurrency reports whether code is in the supported set.
func IsSupportedCurrency(code string) bool {
	_, err := LookupCurrency(code)
	return err == nil
}

// FormatAmount renders cents as a display string for the given currency
// code, e.g. FormatAmount(123450, "EUR") -> "€1,234.50". Callers validate
// settings up front, so an unknown code here is a programming error
// surfaced as ErrUnsupportedCurrency rather than a user-facing failure.
func FormatAmount(cents int64, code string) (string, error) {
	c, err := LookupCurrency(code)
	if err != nil {
		return "", err
	}
	return formatWith(cents, c), nil
}

func formatWith(cents int64, c Currency) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	var body string
	switch c.Decimals {
	case 0:
		// Half-up to whole units
		body = groupThousands((cents + 50) / 100)
	default:
		body = groupThousands(cents/100) + "." + fmt.Sprintf("%02d", cents%100)
	}

	var out string
	if c.Suffix {
		out = body + " " + c.Symbol
	} else {
		out = c.Symbol + body
	}
	if neg {
		return "-" + out
	}
	return out
}

// groupThousands inserts comma separators into a non-negative integer.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
