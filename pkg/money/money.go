// Package money provides rounding, rate-conversion, and formatting helpers
// shared by every calculator. All amounts are decimal.Decimal; helpers never
// mutate their arguments.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// RoundCents rounds a monetary amount to 2 decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundTo rounds to an arbitrary number of decimal places. Percentage outputs
// use 1-4 places depending on the calculator.
func RoundTo(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// Fraction converts a percentage (6.7) to a fraction (0.067).
func Fraction(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// MonthlyRate converts an annual percentage rate to a monthly fraction,
// e.g. 6.7 -> 0.067/12.
func MonthlyRate(annualPct decimal.Decimal) decimal.Decimal {
	return annualPct.Div(hundred).Div(twelve)
}

// PeriodRate converts an annual percentage rate to a per-period fraction for
// the given number of compounding periods per year.
func PeriodRate(annualPct decimal.Decimal, periodsPerYear int) decimal.Decimal {
	return annualPct.Div(hundred).Div(decimal.NewFromInt(int64(periodsPerYear)))
}

// RatioPct returns part/whole expressed as a percentage, or zero when the
// whole is not positive.
func RatioPct(part, whole decimal.Decimal) decimal.Decimal {
	if whole.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// ClampZero returns zero when d is negative, otherwise d. Balances and
// taxable amounts are clamped rather than allowed to go negative.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}

// FormatWhole renders an amount rounded to whole units with thousands
// grouping and a currency symbol, e.g. "$48,475". Used for bracket labels.
func FormatWhole(d decimal.Decimal, symbol string) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
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
