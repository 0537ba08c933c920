package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/policy"
	"github.com/finwise/finance-calculators/pkg/money"
)

// ApplyBrackets runs a taxable amount through a progressive bracket table.
// Each band's tax is rounded to cents before it is added to the total, so the
// returned total always equals the sum of the per-band figures in the
// breakdown. Bands above the taxable amount are omitted.
func ApplyBrackets(taxable decimal.Decimal, table policy.BracketTable, symbol string) (decimal.Decimal, []domain.BracketApplication) {
	total := decimal.Zero
	applied := make([]domain.BracketApplication, 0, len(table))
	lower := decimal.Zero

	for _, band := range table {
		if taxable.LessThanOrEqual(lower) {
			break
		}
		upper := band.Upper
		if band.Unbounded || taxable.LessThan(upper) {
			upper = taxable
		}
		bandTax := money.RoundCents(upper.Sub(lower).Mul(band.Rate))
		total = total.Add(bandTax)

		label := money.FormatWhole(lower, symbol) + " – "
		if band.Unbounded {
			label += "∞"
		} else {
			label += money.FormatWhole(band.Upper, symbol)
		}
		applied = append(applied, domain.BracketApplication{
			Bracket: label,
			Rate:    money.RoundTo(band.Rate.Mul(decimal.NewFromInt(100)), 1),
			Tax:     bandTax,
		})
		if band.Unbounded {
			break
		}
		lower = band.Upper
	}
	return total, applied
}

// MarginalRatePct returns, as a percentage, the rate of the band the taxable
// amount falls in. Zero taxable income sits in the first band.
func MarginalRatePct(taxable decimal.Decimal, table policy.BracketTable) decimal.Decimal {
	for _, band := range table {
		if band.Unbounded || taxable.LessThanOrEqual(band.Upper) {
			return band.Rate.Mul(decimal.NewFromInt(100))
		}
	}
	return decimal.Zero
}

// slabRate looks up a flat rate by income slab. Unlike progressive brackets
// the whole amount attracts the single rate of the slab it falls in (used for
// the Indian surcharge).
func slabRate(amount decimal.Decimal, table policy.BracketTable) decimal.Decimal {
	for _, band := range table {
		if band.Unbounded || amount.LessThanOrEqual(band.Upper) {
			return band.Rate
		}
	}
	return decimal.Zero
}
