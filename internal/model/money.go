package model

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ParseCents converts decimal string amounts (dollars) to cents (int64).
// Use for platform fields carried in major currency units (e.g., "19.99").
// Handles edge cases: empty strings, missing decimals, large values.
// Examples: "19.99" → 1999, "1234.56" → 123456, "" → 0
func ParseCents(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	// math.Round handles both positive and negative numbers correctly
	return int64(math.Round(f * 100))
}

// ParseMinorUnits converts string amounts already in minor units to int64.
// Product JSON carries variant prices this way ("1999" = 1999 cents).
// Examples: "1999" → 1999, "" → 0
func ParseMinorUnits(s string) int64 {
	if s == "" {
		return 0
	}
	// Parse as float to handle potential decimal values, then truncate
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

// FormatMinorUnits renders an amount in minor currency units (cents) as a
// localized display string, e.g. 1999 → "$19.99" for USD/en.
//
// Formatting never fails: if the currency code or locale can't be resolved,
// falls back to fixed two-decimal division ("19.99"). Shopfront prices are
// always carried as int64 minor units internally; this is the only place
// they become display strings.
func FormatMinorUnits(amount int64, currencyCode, locale string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return FormatFixed(amount)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(float64(amount)/100)))
}

// FormatFixed converts minor units to a plain two-decimal string with no
// currency symbol. Used as the formatting fallback and in log output.
// Examples: 1999 → "19.99", 2500 → "25.00", -500 → "-5.00"
func FormatFixed(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
