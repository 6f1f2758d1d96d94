// Package pricing renders prices and volumes for display.
package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "ru-RU"

// Locale carries the separators used by FormatMoney.
type Locale struct {
	Tag     language.Tag
	Group   string
	Decimal string
}

// Languages grouping with a no-break space and a decimal comma.
var spaceComma = map[string]bool{
	"ru": true, "uk": true, "be": true, "kk": true, "uz": true,
	"fr": true, "pl": true, "cs": true, "sk": true, "fi": true, "sv": true, "nb": true,
}

// Languages grouping with a dot and a decimal comma.
var dotComma = map[string]bool{
	"de": true, "es": true, "it": true, "pt": true, "nl": true, "id": true, "tr": true, "da": true,
}

// ParseLocale resolves a BCP 47 tag ("ru-RU", "en", "de-AT") to separators.
// Unknown languages fall back to English conventions.
func ParseLocale(tag string) (Locale, error) {
	if strings.TrimSpace(tag) == "" {
		tag = DefaultLocale
	}
	t, err := language.Parse(tag)
	if err != nil {
		return Locale{}, fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	base, _ := t.Base()

	switch lang := base.String(); {
	case spaceComma[lang]:
		return Locale{Tag: t, Group: "\u00a0", Decimal: ","}, nil
	case dotComma[lang]:
		return Locale{Tag: t, Group: ".", Decimal: ","}, nil
	default:
		return Locale{Tag: t, Group: ",", Decimal: "."}, nil
	}
}

// Formatter formats numbers for one locale. It holds no mutable state.
type Formatter struct {
	locale Locale
}

// NewFormatter creates a formatter for the given locale tag.
func NewFormatter(tag string) (*Formatter, error) {
	loc, err := ParseLocale(tag)
	if err != nil {
		return nil, err
	}
	return &Formatter{locale: loc}, nil
}

// Locale returns the resolved locale.
func (f *Formatter) Locale() Locale {
	return f.locale
}

// FormatMoney renders n with two decimals and thousands grouping,
// e.g. "1 234,50" for ru.
func (f *Formatter) FormatMoney(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "n/a"
	}
	return f.localize(decimal.NewFromFloat(n).StringFixed(2))
}

// MaxPriceDecimals bounds FormatPrice for values carrying float noise.
const MaxPriceDecimals = 8

// FormatPrice renders n like FormatMoney but keeps the decimals a sub-cent
// price needs: 0.0075 is "0,0075" for ru, not "0,01".
func (f *Formatter) FormatPrice(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "n/a"
	}
	return f.localize(PlainPrice(n))
}

// PlainPrice renders n with a dot decimal, no grouping, and between two and
// MaxPriceDecimals decimals.
func PlainPrice(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "n/a"
	}
	d := decimal.NewFromFloat(n)
	places := int32(2)
	if exp := -d.Exponent(); exp > places {
		places = min(exp, MaxPriceDecimals)
	}
	s := d.StringFixed(places)
	for strings.HasSuffix(s, "0") && len(s)-strings.Index(s, ".") > 3 {
		s = s[:len(s)-1]
	}
	return s
}

// localize swaps in the locale separators of a plain "-1234.50" string.
func (f *Formatter) localize(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + group(intPart, f.locale.Group) + f.locale.Decimal + frac
}

// FormatVolume renders n compactly: "1.50M", "12.30K", "500".
// It is locale independent.
func (f *Formatter) FormatVolume(n float64) string {
	return FormatVolume(n)
}

// FormatVolume collapses n to a K or M suffix with two decimals from 1,000
// and 1,000,000 upwards. Below 1,000 it keeps at most two decimals.
func FormatVolume(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "n/a"
	}
	d := decimal.NewFromFloat(n)
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		return d.Div(decimal.NewFromInt(1_000_000)).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000)):
		return d.Div(decimal.NewFromInt(1_000)).StringFixed(2) + "K"
	default:
		return d.Round(2).String()
	}
}

// group inserts sep every three digits from the right.
func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
