package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/request"
	"github.com/finwise/finance-calculators/pkg/money"
)

var compoundFreq = map[string]int{
	"annually":  1,
	"semi":      2,
	"quarterly": 4,
	"monthly":   12,
	"daily":     365,
}

// CompoundYearRow is one year of a compounding projection.
type CompoundYearRow struct {
	Year        int             `json:"year"`
	Balance     decimal.Decimal `json:"balance"`
	Contributed decimal.Decimal `json:"contributed"`
	Interest    decimal.Decimal `json:"interest"`
}

// CompoundInterestResult is the compound-growth projection with its yearly
// breakdown and the effective APY of the chosen compounding frequency.
type CompoundInterestResult struct {
	FinalBalance     decimal.Decimal   `json:"final_balance"`
	TotalContributed decimal.Decimal   `json:"total_contributed"`
	TotalInterest    decimal.Decimal   `json:"total_interest"`
	EffectiveAPY     decimal.Decimal   `json:"effective_apy"`
	YearlyBreakdown  []CompoundYearRow `json:"yearly_breakdown"`
}

// CompoundInterest handles the investment/compound-interest request. Growth
// is applied before the period's contribution.
func (e *Engine) CompoundInterest(p request.Params) (*CompoundInterestResult, error) {
	principal, err := p.FloatDefault("principal", 0)
	if err != nil {
		return nil, err
	}
	monthlyAdd, err := p.FloatDefault("monthly_addition", 0)
	if err != nil {
		return nil, err
	}
	annualRate, err := p.Float("annual_rate")
	if err != nil {
		return nil, err
	}
	years, err := p.Int("years")
	if err != nil {
		return nil, err
	}

	n, ok := compoundFreq[p.String("compound_freq", "monthly")]
	if !ok {
		n = 12
	}
	rPerPeriod := money.PeriodRate(annualRate, n)
	one := decimal.NewFromInt(1)
	periodAdd := monthlyAdd.Mul(decimal.NewFromInt(12)).Div(decimal.NewFromInt(int64(n)))
	annualAdd := monthlyAdd.Mul(decimal.NewFromInt(12))

	balance := principal
	contributed := principal
	yearly := make([]CompoundYearRow, 0, years)
	for yr := 1; yr <= years; yr++ {
		for i := 0; i < n; i++ {
			balance = balance.Mul(one.Add(rPerPeriod)).Add(periodAdd)
		}
		contributed = contributed.Add(annualAdd)
		yearly = append(yearly, CompoundYearRow{
			Year:        yr,
			Balance:     money.RoundCents(balance),
			Contributed: money.RoundCents(contributed),
			Interest:    money.RoundCents(balance.Sub(contributed)),
		})
	}

	apy := one.Add(rPerPeriod).Pow(decimal.NewFromInt(int64(n))).Sub(one)
	return &CompoundInterestResult{
		FinalBalance:     money.RoundCents(balance),
		TotalContributed: money.RoundCents(contributed),
		TotalInterest:    money.RoundCents(balance.Sub(contributed)),
		EffectiveAPY:     money.RoundTo(apy.Mul(decimal.NewFromInt(100)), 4),
		YearlyBreakdown:  yearly,
	}, nil
}

// PensionYearRow is one year of the retirement-account projection, in both
// nominal and inflation-adjusted terms.
type PensionYearRow struct {
	Year        int             `json:"year"`
	Age         int             `json:"age"`
	Balance     decimal.Decimal `json:"balance"`
	RealBalance decimal.Decimal `json:"real_balance"`
}

// PensionPlanResult is the 401(k)/pension projection.
type PensionPlanResult struct {
	YearsToRetirement          int              `json:"years_to_retirement"`
	AnnualEmployeeContribution decimal.Decimal  `json:"annual_employee_contribution"`
	AnnualEmployerContribution decimal.Decimal  `json:"annual_employer_contribution"`
	TotalAnnualContribution    decimal.Decimal  `json:"total_annual_contribution"`
	IRSLimitWarning            bool             `json:"irs_limit_warning"`
	ProjectedBalance           decimal.Decimal  `json:"projected_balance"`
	ProjectedBalanceReal       decimal.Decimal  `json:"projected_balance_real"`
	MonthlyIncome4Pct          decimal.Decimal  `json:"monthly_income_4pct"`
	MonthlyIncomeReal          decimal.Decimal  `json:"monthly_income_real"`
	YearlyGrowth               []PensionYearRow `json:"yearly_growth"`
}

// PensionPlan handles the investment/401k-pension request. The employer
// match applies to the employee's contribution rate up to the match limit.
func (e *Engine) PensionPlan(p request.Params) (*PensionPlanResult, error) {
	currentAge, err := p.Int("current_age")
	if err != nil {
		return nil, err
	}
	retirementAge, err := p.IntDefault("retirement_age", 65)
	if err != nil {
		return nil, err
	}
	currentBalance, err := p.FloatDefault("current_balance", 0)
	if err != nil {
		return nil, err
	}
	annualSalary, err := p.Float("annual_salary")
	if err != nil {
		return nil, err
	}
	contributionPct, err := p.FloatDefault("contribution_pct", 10)
	if err != nil {
		return nil, err
	}
	employerMatchPct, err := p.FloatDefault("employer_match_pct", 3)
	if err != nil {
		return nil, err
	}
	employerMatchLimit, err := p.FloatDefault("employer_match_limit", 6)
	if err != nil {
		return nil, err
	}
	expectedReturn, err := p.FloatDefault("expected_return", 7)
	if err != nil {
		return nil, err
	}
	inflationRate, err := p.FloatDefault("inflation_rate", 2.5)
	if err != nil {
		return nil, err
	}

	if retirementAge <= currentAge {
		return nil, domain.NewValidationError("retirement_age", "must be greater than current age")
	}
	years := retirementAge - currentAge
	limit := e.Policies.Investment.Employee401kLimit

	desired := annualSalary.Mul(money.Fraction(contributionPct))
	annualEmployee := decimal.Min(desired, limit)
	matchBase := decimal.Min(desired, annualSalary.Mul(money.Fraction(employerMatchLimit)))
	annualEmployer := decimal.Zero
	if contributionPct.GreaterThan(decimal.Zero) {
		annualEmployer = matchBase.Mul(employerMatchPct).Div(contributionPct)
	}
	annualTotal := annualEmployee.Add(annualEmployer)

	one := decimal.NewFromInt(1)
	monthlyReturn := money.MonthlyRate(expectedReturn)
	monthlyInflation := money.MonthlyRate(inflationRate)
	monthlyTotal := annualTotal.Div(decimal.NewFromInt(12))

	balance := currentBalance
	realBalance := currentBalance
	yearly := make([]PensionYearRow, 0, years)
	for yr := 1; yr <= years; yr++ {
		for m := 0; m < 12; m++ {
			balance = balance.Mul(one.Add(monthlyReturn)).Add(monthlyTotal)
			realBalance = realBalance.Mul(one.Add(monthlyReturn).Sub(monthlyInflation)).Add(monthlyTotal)
		}
		yearly = append(yearly, PensionYearRow{
			Year:        yr,
			Age:         currentAge + yr,
			Balance:     money.RoundCents(balance),
			RealBalance: money.RoundCents(realBalance),
		})
	}

	swr := decimal.NewFromFloat(0.04)
	twelve := decimal.NewFromInt(12)
	return &PensionPlanResult{
		YearsToRetirement:          years,
		AnnualEmployeeContribution: money.RoundCents(annualEmployee),
		AnnualEmployerContribution: money.RoundCents(annualEmployer),
		TotalAnnualContribution:    money.RoundCents(annualTotal),
		IRSLimitWarning:            desired.GreaterThan(limit),
		ProjectedBalance:           money.RoundCents(balance),
		ProjectedBalanceReal:       money.RoundCents(realBalance),
		MonthlyIncome4Pct:          money.RoundCents(balance.Mul(swr).Div(twelve)),
		MonthlyIncomeReal:          money.RoundCents(realBalance.Mul(swr).Div(twelve)),
		YearlyGrowth:               yearly,
	}, nil
}

// SIPYearRow is one year of a systematic investment plan.
type SIPYearRow struct {
	Year     int             `json:"year"`
	Invested decimal.Decimal `json:"invested"`
	Value    decimal.Decimal `json:"value"`
	Returns  decimal.Decimal `json:"returns"`
}

// SIPResult is the systematic-investment-plan projection.
type SIPResult struct {
	TotalInvested     decimal.Decimal `json:"total_invested"`
	EstimatedReturns  decimal.Decimal `json:"estimated_returns"`
	FinalAmount       decimal.Decimal `json:"final_amount"`
	AbsoluteReturnPct decimal.Decimal `json:"absolute_return_pct"`
	WealthRatio       decimal.Decimal `json:"wealth_ratio"`
	YearlyBreakdown   []SIPYearRow    `json:"yearly_breakdown"`
}

// SIP handles the investment/sip request. Contributions are made at the
// start of each month and the installment steps up after every year.
func (e *Engine) SIP(p request.Params) (*SIPResult, error) {
	monthlyInvestment, err := p.Float("monthly_investment")
	if err != nil {
		return nil, err
	}
	annualReturn, err := p.FloatDefault("annual_return", 12)
	if err != nil {
		return nil, err
	}
	years, err := p.Int("years")
	if err != nil {
		return nil, err
	}
	stepUpPct, err := p.FloatDefault("step_up_pct", 0)
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	rMonthly := money.MonthlyRate(annualReturn)
	stepUp := one.Add(money.Fraction(stepUpPct))

	sipAmount := monthlyInvestment
	totalInvested := decimal.Zero
	balance := decimal.Zero
	yearly := make([]SIPYearRow, 0, years)
	for yr := 1; yr <= years; yr++ {
		for m := 0; m < 12; m++ {
			balance = balance.Add(sipAmount).Mul(one.Add(rMonthly))
			totalInvested = totalInvested.Add(sipAmount)
		}
		sipAmount = sipAmount.Mul(stepUp)
		yearly = append(yearly, SIPYearRow{
			Year:     yr,
			Invested: money.RoundCents(totalInvested),
			Value:    money.RoundCents(balance),
			Returns:  money.RoundCents(balance.Sub(totalInvested)),
		})
	}

	absoluteReturn := decimal.Zero
	wealthRatio := decimal.Zero
	if totalInvested.GreaterThan(decimal.Zero) {
		wealthRatio = balance.Div(totalInvested)
		absoluteReturn = wealthRatio.Sub(one).Mul(decimal.NewFromInt(100))
	}
	return &SIPResult{
		TotalInvested:     money.RoundCents(totalInvested),
		EstimatedReturns:  money.RoundCents(balance.Sub(totalInvested)),
		FinalAmount:       money.RoundCents(balance),
		AbsoluteReturnPct: money.RoundCents(absoluteReturn),
		WealthRatio:       money.RoundCents(wealthRatio),
		YearlyBreakdown:   yearly,
	}, nil
}

// FIREYearRow is one year of the financial-independence projection. The
// target inflates alongside the balance.
type FIREYearRow struct {
	Year       int             `json:"year"`
	Age        int             `json:"age"`
	Balance    decimal.Decimal `json:"balance"`
	FIRETarget decimal.Decimal `json:"fire_target"`
}

// FIREResult is the financial-independence projection. YearsToFIRE and
// FIREAge are nil when the target is not reached within the projection
// horizon; DidNotConverge is set in that case.
type FIREResult struct {
	FIRENumber         decimal.Decimal `json:"fire_number"`
	YearsToFIRE        *int            `json:"years_to_fire"`
	FIREAge            *int            `json:"fire_age"`
	CurrentProgressPct decimal.Decimal `json:"current_progress_pct"`
	MonthlyExpenses    decimal.Decimal `json:"monthly_expenses"`
	DidNotConverge     bool            `json:"did_not_converge"`
	YearlyProjection   []FIREYearRow   `json:"yearly_projection"`
}

// FIRE handles the investment/fire request. The target is annual expenses
// divided by the safe withdrawal rate, inflated monthly; the projection runs
// until the balance crosses the target or the goal-seek horizon is exhausted.
func (e *Engine) FIRE(p request.Params) (*FIREResult, error) {
	currentAge, err := p.Int("current_age")
	if err != nil {
		return nil, err
	}
	annualExpenses, err := p.Float("annual_expenses")
	if err != nil {
		return nil, err
	}
	currentSavings, err := p.FloatDefault("current_savings", 0)
	if err != nil {
		return nil, err
	}
	annualSavings, err := p.FloatDefault("annual_savings", 0)
	if err != nil {
		return nil, err
	}
	expectedReturn, err := p.FloatDefault("expected_return", 7)
	if err != nil {
		return nil, err
	}
	swr, err := p.FloatDefault("safe_withdrawal_rate", e.Policies.Investment.FIRESafeWithdrawalRate.InexactFloat64())
	if err != nil {
		return nil, err
	}
	inflationRate, err := p.FloatDefault("inflation_rate", 2.5)
	if err != nil {
		return nil, err
	}
	if swr.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("safe_withdrawal_rate", "must be greater than zero")
	}

	fireNumber := annualExpenses.Div(money.Fraction(swr))
	progress := money.RatioPct(currentSavings, fireNumber)

	one := decimal.NewFromInt(1)
	monthlyReturn := money.MonthlyRate(expectedReturn)
	monthlyInflation := money.MonthlyRate(inflationRate)
	monthlySavings := annualSavings.Div(decimal.NewFromInt(12))

	balance := currentSavings
	target := fireNumber
	var yearsToFIRE, fireAge *int
	yearly := make([]FIREYearRow, 0, e.Caps.GoalSeekMaxYears)
	for yr := 1; yr <= e.Caps.GoalSeekMaxYears; yr++ {
		for m := 0; m < 12; m++ {
			balance = balance.Add(balance.Mul(monthlyReturn)).Add(monthlySavings)
			target = target.Mul(one.Add(monthlyInflation))
		}
		yearly = append(yearly, FIREYearRow{
			Year:       yr,
			Age:        currentAge + yr,
			Balance:    money.RoundCents(balance),
			FIRETarget: money.RoundCents(target),
		})
		if balance.GreaterThanOrEqual(target) {
			y := yr
			a := currentAge + yr
			yearsToFIRE, fireAge = &y, &a
			break
		}
	}
	if yearsToFIRE == nil {
		e.Logger.Warnf("fire projection did not reach target within %d years", e.Caps.GoalSeekMaxYears)
	}

	return &FIREResult{
		FIRENumber:         fireNumber.Round(0),
		YearsToFIRE:        yearsToFIRE,
		FIREAge:            fireAge,
		CurrentProgressPct: money.RoundTo(progress, 1),
		MonthlyExpenses:    money.RoundCents(annualExpenses.Div(decimal.NewFromInt(12))),
		DidNotConverge:     yearsToFIRE == nil,
		YearlyProjection:   yearly,
	}, nil
}
