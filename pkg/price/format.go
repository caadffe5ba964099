// Package price formats monetary amounts for display.
package price

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

const (
	// DefaultFallback is shown when no price is available.
	DefaultFallback = "Fiyat bilgisi bulunmamaktadır"
	// DefaultSymbol is the Turkish lira sign.
	DefaultSymbol = "₺"
)

type separators struct {
	group   string
	decimal string
}

var (
	turkish = separators{group: ".", decimal: ","}
	english = separators{group: ",", decimal: "."}
)

type options struct {
	fallback string
	symbol   string
	sep      separators
}

// Option customizes Format.
type Option func(*options)

// WithFallback sets the string returned for missing or non-finite prices.
func WithFallback(s string) Option {
	return func(o *options) { o.fallback = s }
}

// WithSymbol sets the currency symbol appended after the number.
// An empty symbol yields a bare number.
func WithSymbol(s string) Option {
	return func(o *options) { o.symbol = s }
}

// WithLocale selects separators from a BCP 47 tag. Unparseable tags and
// languages other than English keep the Turkish separators.
func WithLocale(tag string) Option {
	return func(o *options) {
		t, err := language.Parse(tag)
		if err != nil {
			return
		}
		if base, _ := t.Base(); base.String() == "en" {
			o.sep = english
		}
	}
}

// Format renders v with two fraction digits and locale grouping,
// e.g. 11347.1516 -> "11.347,15 ₺". NaN and infinities return the fallback.
func Format(v float64, opts ...Option) string {
	o := options{fallback: DefaultFallback, symbol: DefaultSymbol, sep: turkish}
	for _, opt := range opts {
		opt(&o)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return o.fallback
	}

	fixed := decimal.NewFromFloat(v).StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	out := group(intPart, o.sep.group) + o.sep.decimal + frac
	if neg && strings.Trim(out, "0"+o.sep.group+o.sep.decimal) != "" {
		out = "-" + out
	}
	if o.symbol != "" {
		out += " " + o.symbol
	}
	return out
}

// FormatPtr is Format for nullable values; nil returns the fallback.
func FormatPtr(v *float64, opts ...Option) string {
	if v == nil {
		return Format(math.NaN(), opts...)
	}
	return Format(*v, opts...)
}

func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
