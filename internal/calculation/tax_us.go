package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/policy"
	"github.com/finwise/finance-calculators/pkg/money"
)

// usTaxPolicy implements the simplified 2025 US federal treatment: progressive
// federal brackets after the standard deduction, FICA, flat effective state
// rates, self-employment tax, and the STCG/LTCG/NIIT capital-gains regime.
type usTaxPolicy struct {
	us *policy.USPolicy
}

func (u *usTaxPolicy) brackets(filing string) policy.BracketTable {
	if t, ok := u.us.Brackets[filing]; ok {
		return t
	}
	return u.us.Brackets["single"]
}

func (u *usTaxPolicy) standardDeduction(filing string) decimal.Decimal {
	if d, ok := u.us.StandardDeduction[filing]; ok {
		return d
	}
	return u.us.StandardDeduction["single"]
}

func (u *usTaxPolicy) stateRate(state string) decimal.Decimal {
	if r, ok := u.us.StateTax[state]; ok {
		return r
	}
	return u.us.StateTax["other"]
}

func (u *usTaxPolicy) TakeHome(gross decimal.Decimal, opt TaxOptions) *TakeHomeResult {
	table := u.brackets(opt.FilingStatus)
	taxable := money.ClampZero(gross.Sub(u.standardDeduction(opt.FilingStatus)))
	fedTax, applied := ApplyBrackets(taxable, table, "$")

	fica := u.us.FICA
	ssTax := decimal.Min(gross, fica.SSWageBase).Mul(fica.SSRate)
	medTax := gross.Mul(fica.MedicareRate)
	addMedThreshold, ok := fica.AdditionalMedicareThreshold[opt.FilingStatus]
	if !ok {
		addMedThreshold = fica.AdditionalMedicareThreshold["single"]
	}
	addMed := money.ClampZero(gross.Sub(addMedThreshold)).Mul(fica.AdditionalMedicareRate)

	stateTax := gross.Mul(u.stateRate(opt.State))

	totalTax := fedTax.Add(ssTax).Add(medTax).Add(addMed).Add(stateTax)
	return &TakeHomeResult{
		GrossAnnual:    money.RoundCents(gross),
		TotalTax:       money.RoundCents(totalTax),
		EffectiveRate:  effectiveRatePct(totalTax, gross),
		MarginalRate:   money.RoundTo(MarginalRatePct(taxable, table), 1),
		TakeHomeAnnual: money.RoundCents(gross.Sub(totalTax)),
		Breakdown: map[string]decimal.Decimal{
			"federal_tax":     money.RoundCents(fedTax),
			"state_tax":       money.RoundCents(stateTax),
			"social_security": money.RoundCents(ssTax),
			"medicare":        money.RoundCents(medTax.Add(addMed)),
		},
		BracketsApplied: applied,
	}
}

func (u *usTaxPolicy) Freelance(gross, expenses decimal.Decimal, opt TaxOptions) *FreelanceResult {
	netProfit := gross.Sub(expenses)

	// SE tax: 15.3% on 92.35% of net profit, half deductible against income tax.
	seBase := netProfit.Mul(decimal.NewFromFloat(0.9235))
	seTax := seBase.Mul(decimal.NewFromFloat(0.153))
	seDeduct := seTax.Div(decimal.NewFromInt(2))

	taxable := money.ClampZero(netProfit.Sub(seDeduct).Sub(u.standardDeduction(opt.FilingStatus)))
	incomeTax, _ := ApplyBrackets(taxable, u.brackets(opt.FilingStatus), "$")
	stateTax := netProfit.Mul(u.stateRate(opt.State))

	totalTax := incomeTax.Add(seTax).Add(stateTax)
	seDeductOut := money.RoundCents(seDeduct)
	stateTaxOut := money.RoundCents(stateTax)
	return &FreelanceResult{
		NetProfit:         money.RoundCents(netProfit),
		TaxableIncome:     money.RoundCents(taxable),
		IncomeTax:         money.RoundCents(incomeTax),
		SelfEmploymentTax: money.RoundCents(seTax),
		SETaxDeduction:    &seDeductOut,
		StateTax:          &stateTaxOut,
		TotalTax:          money.RoundCents(totalTax),
		EffectiveRate:     effectiveRatePct(totalTax, gross),
		TakeHome:          money.RoundCents(netProfit.Sub(totalTax)),
		QuarterlyEstimate: money.RoundCents(totalTax.Div(decimal.NewFromInt(4))),
		QuarterlyDueDates: []string{"April 15", "June 16", "September 15", "January 15 (next yr)"},
	}
}

func (u *usTaxPolicy) CapitalGains(in CapitalGainsInput) *CapitalGainsResult {
	isLongTerm := in.HoldingMonths.GreaterThanOrEqual(decimal.NewFromInt(int64(u.us.LTCGHoldingMonths)))

	var gainTax, rate decimal.Decimal
	var label string
	if isLongTerm {
		ltcg, ok := u.us.LTCGBrackets[in.FilingStatus]
		if !ok {
			ltcg = u.us.LTCGBrackets["single"]
		}
		// LTCG rate is picked by the filer's ordinary income slab.
		r := slabRate(in.AnnualIncome, ltcg)
		gainTax = in.Gain.Mul(r)
		rate = r.Mul(decimal.NewFromInt(100))
		label = "LTCG"
	} else {
		// Short-term gains stack on top of ordinary income; the gain's tax is
		// the marginal difference.
		table := u.brackets(in.FilingStatus)
		withGain, _ := ApplyBrackets(in.AnnualIncome.Add(in.Gain), table, "$")
		withoutGain, _ := ApplyBrackets(in.AnnualIncome, table, "$")
		gainTax = withGain.Sub(withoutGain)
		rate = money.RatioPct(gainTax, in.Gain)
		label = "STCG"
	}

	niitThreshold, ok := u.us.NIITThreshold[in.FilingStatus]
	if !ok {
		niitThreshold = u.us.NIITThreshold["single"]
	}
	niitBase := decimal.Min(money.ClampZero(in.AnnualIncome.Add(in.Gain).Sub(niitThreshold)), in.Gain)
	niit := niitBase.Mul(u.us.NIITRate)
	totalTax := gainTax.Add(niit)

	notes := "STCG (taxed as ordinary income)"
	if isLongTerm {
		notes = "LTCG"
	}
	return &CapitalGainsResult{
		Gain:           money.RoundCents(in.Gain),
		IsLongTerm:     isLongTerm,
		TaxRate:        money.RoundTo(rate, 1),
		TaxOwed:        money.RoundCents(totalTax),
		NetProceeds:    money.RoundCents(in.Gain.Sub(totalTax)),
		Classification: label,
		RegimeNotes:    fmt.Sprintf("%s. NIIT: %s", notes, money.FormatWhole(niit, "$")),
		Breakdown: map[string]decimal.Decimal{
			"gross_gain":        money.RoundCents(in.Gain),
			"exemption":         decimal.Zero,
			"taxable_gain":      money.RoundCents(in.Gain),
			"capital_gains_tax": money.RoundCents(gainTax),
			"niit":              money.RoundCents(niit),
			"total_tax":         money.RoundCents(totalTax),
		},
	}
}
