package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/policy"
	"github.com/finwise/finance-calculators/pkg/money"
)

// ukTaxPolicy implements the 2025/26 UK treatment: income tax with a tapered
// personal allowance, employee and self-employed National Insurance, and CGT
// with the annual exempt amount.
type ukTaxPolicy struct {
	uk *policy.UKPolicy
}

// personalAllowance tapers £1 for every £2 of income above the taper start.
func (u *ukTaxPolicy) personalAllowance(income decimal.Decimal) decimal.Decimal {
	pa := u.uk.PersonalAllowance
	if income.GreaterThan(u.uk.TaperStart) {
		taper := income.Sub(u.uk.TaperStart).Div(decimal.NewFromInt(2))
		pa = money.ClampZero(pa.Sub(taper))
	}
	return pa
}

func (u *ukTaxPolicy) TakeHome(gross decimal.Decimal, opt TaxOptions) *TakeHomeResult {
	taxable := money.ClampZero(gross.Sub(u.personalAllowance(gross)))
	incomeTax, applied := ApplyBrackets(taxable, u.uk.Brackets, "£")

	ni := decimal.Zero
	emp := u.uk.NIEmployee
	if gross.GreaterThan(emp.LowerEarningsLimit) {
		ni = decimal.Min(gross, emp.UpperEarningsLimit).Sub(emp.LowerEarningsLimit).Mul(emp.RateMain)
		if gross.GreaterThan(emp.UpperEarningsLimit) {
			ni = ni.Add(gross.Sub(emp.UpperEarningsLimit).Mul(emp.RateUpper))
		}
	}

	totalTax := incomeTax.Add(ni)
	return &TakeHomeResult{
		GrossAnnual:    money.RoundCents(gross),
		TotalTax:       money.RoundCents(totalTax),
		EffectiveRate:  effectiveRatePct(totalTax, gross),
		MarginalRate:   money.RoundTo(MarginalRatePct(taxable, u.uk.Brackets), 1),
		TakeHomeAnnual: money.RoundCents(gross.Sub(totalTax)),
		Breakdown: map[string]decimal.Decimal{
			"income_tax":         money.RoundCents(incomeTax),
			"national_insurance": money.RoundCents(ni),
		},
		BracketsApplied: applied,
	}
}

func (u *ukTaxPolicy) Freelance(gross, expenses decimal.Decimal, opt TaxOptions) *FreelanceResult {
	netProfit := gross.Sub(expenses)
	ni := u.uk.NISelfEmployed

	class2 := decimal.Zero
	if netProfit.GreaterThan(ni.Class4Lower) {
		class2 = ni.Class2Annual
	}

	class4 := decimal.Zero
	if netProfit.GreaterThan(ni.Class4Lower) {
		class4 = decimal.Min(netProfit, ni.Class4Upper).Sub(ni.Class4Lower).Mul(ni.Class4RateMain)
	}
	if netProfit.GreaterThan(ni.Class4Upper) {
		class4 = class4.Add(netProfit.Sub(ni.Class4Upper).Mul(ni.Class4RateUpper))
	}

	taxable := money.ClampZero(netProfit.Sub(u.personalAllowance(netProfit)))
	incomeTax, _ := ApplyBrackets(taxable, u.uk.Brackets, "£")

	totalTax := incomeTax.Add(class2).Add(class4)
	class2Out := money.RoundCents(class2)
	class4Out := money.RoundCents(class4)
	return &FreelanceResult{
		NetProfit:         money.RoundCents(netProfit),
		TaxableIncome:     money.RoundCents(taxable),
		IncomeTax:         money.RoundCents(incomeTax),
		SelfEmploymentTax: money.RoundCents(class2.Add(class4)),
		UKClass2NIC:       &class2Out,
		UKClass4NIC:       &class4Out,
		TotalTax:          money.RoundCents(totalTax),
		EffectiveRate:     effectiveRatePct(totalTax, gross),
		TakeHome:          money.RoundCents(netProfit.Sub(totalTax)),
		// Two payments on account rather than quarterly estimates.
		QuarterlyEstimate: money.RoundCents(totalTax.Div(decimal.NewFromInt(2))),
		QuarterlyDueDates: []string{"January 31", "July 31"},
	}
}

func (u *ukTaxPolicy) CapitalGains(in CapitalGainsInput) *CapitalGainsResult {
	cgt := u.uk.CGT
	taxableGain := money.ClampZero(in.Gain.Sub(cgt.AnnualExempt))
	isHigher := in.AnnualIncome.GreaterThan(cgt.HigherRateThreshold)
	rate := cgt.BasicRate
	band := "basic"
	if isHigher {
		rate = cgt.HigherRate
		band = "higher"
	}
	tax := taxableGain.Mul(rate)

	ratePct := rate.Mul(decimal.NewFromInt(100))
	return &CapitalGainsResult{
		Gain:           money.RoundCents(in.Gain),
		IsLongTerm:     true,
		TaxRate:        money.RoundTo(ratePct, 1),
		TaxOwed:        money.RoundCents(tax),
		NetProceeds:    money.RoundCents(in.Gain.Sub(tax)),
		Classification: "CGT",
		RegimeNotes: fmt.Sprintf("UK annual exempt amount %s deducted. Rate: %s%% (%s rate).",
			money.FormatWhole(cgt.AnnualExempt, "£"), ratePct.Round(0), band),
		Breakdown: map[string]decimal.Decimal{
			"gross_gain":   money.RoundCents(in.Gain),
			"exemption":    money.RoundCents(decimal.Min(in.Gain, cgt.AnnualExempt)),
			"taxable_gain": money.RoundCents(taxableGain),
			"tax":          money.RoundCents(tax),
		},
	}
}
