package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/policy"
	"github.com/finwise/finance-calculators/pkg/money"
)

// indiaTaxPolicy implements the FY 2025-26 Indian treatment: new/old regime
// slabs with the section 87A rebate, surcharge on tax by income slab, 4%
// cess, and per-asset-class capital gains.
type indiaTaxPolicy struct {
	in *policy.IndiaPolicy
}

func (ip *indiaTaxPolicy) regime(name string) *policy.IndiaRegime {
	if name == "old" {
		return &ip.in.OldRegime
	}
	return &ip.in.NewRegime
}

// incomeTax computes slab tax, surcharge, and cess on taxable income. income
// is the pre-deduction figure used to pick the surcharge slab.
func (ip *indiaTaxPolicy) incomeTax(regime *policy.IndiaRegime, taxable, income decimal.Decimal) (baseTax, surcharge, cess decimal.Decimal, applied []domain.BracketApplication) {
	baseTax, applied = ApplyBrackets(taxable, regime.Brackets, "₹")
	if taxable.LessThanOrEqual(regime.Rebate87ALimit) {
		baseTax = decimal.Zero
	}
	surcharge = money.RoundCents(baseTax.Mul(slabRate(income, ip.in.Surcharge)))
	cess = baseTax.Add(surcharge).Mul(regime.CessRate)
	return baseTax, surcharge, cess, applied
}

func (ip *indiaTaxPolicy) TakeHome(gross decimal.Decimal, opt TaxOptions) *TakeHomeResult {
	regime := ip.regime(opt.Regime)
	taxable := money.ClampZero(gross.Sub(regime.StandardDeduction))
	baseTax, surcharge, cess, applied := ip.incomeTax(regime, taxable, gross)

	totalTax := baseTax.Add(surcharge).Add(cess)
	return &TakeHomeResult{
		GrossAnnual:    money.RoundCents(gross),
		TotalTax:       money.RoundCents(totalTax),
		EffectiveRate:  effectiveRatePct(totalTax, gross),
		MarginalRate:   money.RoundTo(MarginalRatePct(taxable, regime.Brackets), 1),
		TakeHomeAnnual: money.RoundCents(gross.Sub(totalTax)),
		Breakdown: map[string]decimal.Decimal{
			"income_tax": money.RoundCents(baseTax),
			"surcharge":  money.RoundCents(surcharge),
			"cess":       money.RoundCents(cess),
		},
		BracketsApplied: applied,
	}
}

func (ip *indiaTaxPolicy) Freelance(gross, expenses decimal.Decimal, opt TaxOptions) *FreelanceResult {
	var netProfit decimal.Decimal
	if opt.Presumptive {
		// Section 44ADA: half of gross receipts deemed profit.
		netProfit = gross.Mul(decimal.NewFromFloat(0.50))
	} else {
		netProfit = gross.Sub(expenses)
	}

	regime := &ip.in.NewRegime
	taxable := money.ClampZero(netProfit.Sub(regime.StandardDeduction))
	baseTax, surcharge, cess, _ := ip.incomeTax(regime, taxable, netProfit)
	totalTax := baseTax.Add(surcharge).Add(cess)

	// Cumulative advance-tax milestones: 15%, 45%, 75%, 100%.
	schedule := []AdvanceTaxInstallment{
		{Due: "June 15", Pct: 15, Amount: money.RoundCents(totalTax.Mul(decimal.NewFromFloat(0.15)))},
		{Due: "September 15", Pct: 45, Amount: money.RoundCents(totalTax.Mul(decimal.NewFromFloat(0.30)))},
		{Due: "December 15", Pct: 75, Amount: money.RoundCents(totalTax.Mul(decimal.NewFromFloat(0.30)))},
		{Due: "March 15", Pct: 100, Amount: money.RoundCents(totalTax.Mul(decimal.NewFromFloat(0.25)))},
	}
	dueDates := make([]string, len(schedule))
	for i, inst := range schedule {
		dueDates[i] = inst.Due
	}

	presumptive := opt.Presumptive
	return &FreelanceResult{
		NetProfit:          money.RoundCents(netProfit),
		TaxableIncome:      money.RoundCents(taxable),
		IncomeTax:          money.RoundCents(baseTax),
		SelfEmploymentTax:  decimal.Zero,
		TotalTax:           money.RoundCents(totalTax),
		EffectiveRate:      effectiveRatePct(totalTax, gross),
		TakeHome:           money.RoundCents(netProfit.Sub(totalTax)),
		QuarterlyEstimate:  money.RoundCents(totalTax.Div(decimal.NewFromInt(4))),
		QuarterlyDueDates:  dueDates,
		AdvanceTaxSchedule: schedule,
		PresumptiveUsed:    &presumptive,
	}
}

func (ip *indiaTaxPolicy) CapitalGains(in CapitalGainsInput) *CapitalGainsResult {
	cgt := ip.in.CGT

	var isLT bool
	var exempt, taxable, rate decimal.Decimal
	var label string
	if in.AssetType == "equity" {
		isLT = in.HoldingMonths.GreaterThanOrEqual(decimal.NewFromInt(int64(cgt.EquityHoldingMonths)))
		if isLT {
			exempt = cgt.EquityLTCGExemption
			taxable = money.ClampZero(in.Gain.Sub(exempt))
			rate = cgt.EquityLTCGRate
			label = "LTCG"
		} else {
			taxable = in.Gain
			rate = cgt.EquitySTCGRate
			label = "STCG"
		}
	} else {
		// Property and other assets share the property holding threshold;
		// short-term gains approximate the top slab rate.
		isLT = in.HoldingMonths.GreaterThanOrEqual(decimal.NewFromInt(int64(cgt.PropertyHoldingMonths)))
		taxable = in.Gain
		if isLT {
			rate = cgt.PropertyLTCGRate
			label = "LTCG"
		} else {
			rate = decimal.NewFromFloat(0.30)
			label = "STCG"
		}
	}

	tax := taxable.Mul(rate)
	cess := tax.Mul(ip.in.NewRegime.CessRate)
	total := tax.Add(cess)

	notes := fmt.Sprintf("India %s on %s. 4%% cess included.", label, in.AssetType)
	if in.AssetType == "equity" && isLT {
		notes += " ₹1.25L exemption applied for equity LTCG."
	}
	return &CapitalGainsResult{
		Gain:           money.RoundCents(in.Gain),
		IsLongTerm:     isLT,
		TaxRate:        money.RoundTo(rate.Mul(decimal.NewFromInt(100)), 1),
		TaxOwed:        money.RoundCents(total),
		NetProceeds:    money.RoundCents(in.Gain.Sub(total)),
		Classification: label,
		RegimeNotes:    notes,
		Breakdown: map[string]decimal.Decimal{
			"gross_gain":   money.RoundCents(in.Gain),
			"exemption":    money.RoundCents(exempt),
			"taxable_gain": money.RoundCents(taxable),
			"base_tax":     money.RoundCents(tax),
			"cess":         money.RoundCents(cess),
			"total_tax":    money.RoundCents(total),
		},
	}
}
