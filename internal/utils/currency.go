package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var SupportedCurrencies = map[string]Currency{
	"INR": {Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	"BRL": {Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
}

// Multi-character symbols come first so "R$" is not left as "R".
// "â‚¹" is the rupee sign as it appears after a UTF-8/Latin-1 round-trip.
var moneyCleaner = strings.NewReplacer(
	"â‚¹", "",
	"R$", "",
	"C$", "",
	"A$", "",
	"₹", "",
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	",", "",
)

// ParseMoney turns a stored money value into a float. Strings may carry a
// currency glyph and thousands separators. Anything absent, empty or
// unparseable is 0; ParseMoney never fails.
func ParseMoney(v interface{}) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		f = parseMoneyString(t)
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case primitive.Decimal128:
		f = parseMoneyString(t.String())
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseMoneyString(s string) float64 {
	cleaned := strings.TrimSpace(moneyCleaner.Replace(s))
	if cleaned == "" {
		return 0
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// Round rounds half away from zero to the given number of places.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// RoundMoney rounds to 2 decimal places.
func RoundMoney(v float64) float64 {
	return Round(v, 2)
}

// FormatMoney renders an amount for display, e.g. "₹1200" or "₹12.5".
func FormatMoney(amount float64, symbol string) string {
	return symbol + decimal.NewFromFloat(amount).Round(2).String()
}

// GrowthPercent is (current - previous) / previous * 100 with one decimal.
// It is "0" when there is no previous value to compare against.
func GrowthPercent(current, previous int) string {
	if previous <= 0 {
		return "0"
	}

	return decimal.NewFromInt(int64(current - previous)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(previous))).
		StringFixed(1)
}

func GetCurrencySymbol(currencyCode string) string {
	currency, exists := SupportedCurrencies[strings.ToUpper(currencyCode)]
	if !exists {
		return SupportedCurrencies["INR"].Symbol
	}
	return currency.Symbol
}
