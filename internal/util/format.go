package util //nolint:revive // package name util hosts shared display helpers used by the CLI and front door

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the storefront's pricing currency.
const DefaultCurrency = "VND"

var (
	viPrinter = message.NewPrinter(language.Vietnamese)
	enPrinter = message.NewPrinter(language.AmericanEnglish)
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatPrice renders an amount the way the storefront shows prices:
// Vietnamese grouping and a trailing dong sign for VND, US grouping with a
// leading symbol (or the ISO code) for everything else.
func FormatPrice(price float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if currency == DefaultCurrency {
		return viPrinter.Sprintf("%.0f", price) + " ₫"
	}

	neg := price < 0
	if neg {
		price = -price
	}
	amount := enPrinter.Sprintf("%.2f", price)
	if currency == "JPY" {
		amount = enPrinter.Sprintf("%.0f", price)
	}
	var out string
	if sym, ok := currencySymbols[currency]; ok {
		out = sym + amount
	} else {
		out = currency + " " + amount
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatNumber groups thousands with commas.
func FormatNumber(n int64) string {
	return enPrinter.Sprintf("%d", n)
}

// FormatPercentage renders value with the given number of decimals and a percent sign.
func FormatPercentage(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// TruncateText shortens text to maxLength runes and appends "..." when cut.
func TruncateText(text string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}
