package ticket

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount sanitizes a number typed into an order form.
// Spaces (including no-break spaces) are dropped and a comma is accepted as the
// decimal separator. When both separators appear, the last one is the decimal
// separator and the other is treated as grouping.
func ParseAmount(raw string) (decimal.Decimal, Reason) {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t', '\'':
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return decimal.Zero, ReasonInvalidInput
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return decimal.Zero, ReasonInvalidInput
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, ReasonInvalidInput
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ReasonInvalidInput
	}
	return d, ReasonNone
}
