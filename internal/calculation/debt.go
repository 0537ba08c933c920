package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/request"
	"github.com/finwise/finance-calculators/pkg/money"
)

// StudentLoanResult compares the current student loan against a refinance
// offer and estimates the income-driven repayment alternative.
type StudentLoanResult struct {
	CurrentMonthly         decimal.Decimal `json:"current_monthly"`
	NewMonthly             decimal.Decimal `json:"new_monthly"`
	MonthlySavings         decimal.Decimal `json:"monthly_savings"`
	TotalInterestCurrent   decimal.Decimal `json:"total_interest_current"`
	TotalInterestNew       decimal.Decimal `json:"total_interest_new"`
	LifetimeSavings        decimal.Decimal `json:"lifetime_savings"`
	BreakevenMonths        *int            `json:"breakeven_months"`
	IDRMonthly             decimal.Decimal `json:"idr_monthly"`
	FederalBenefitsWarning string          `json:"federal_benefits_warning"`
}

// StudentLoanRefinance handles the debt/student-loan request. Federal loan
// types fall back to the published preset rate when no current rate is given.
func (e *Engine) StudentLoanRefinance(p request.Params) (*StudentLoanResult, error) {
	balance, err := p.Float("loan_balance")
	if err != nil {
		return nil, err
	}
	newRate, err := p.Float("new_rate")
	if err != nil {
		return nil, err
	}
	loanType := p.String("loan_type", "custom")

	var currentRate decimal.Decimal
	preset, federal := e.Policies.StudentLoanRates[loanType]
	if federal && !p.Has("current_rate") {
		currentRate = preset
	} else {
		currentRate, err = p.Float("current_rate")
		if err != nil {
			return nil, err
		}
	}
	currentTermYears, err := p.FloatDefault("current_term_years", 10)
	if err != nil {
		return nil, err
	}
	newTermYears, err := p.FloatDefault("new_term_years", 10)
	if err != nil {
		return nil, err
	}
	income, err := p.FloatDefault("income", 60000)
	if err != nil {
		return nil, err
	}

	currentMonths := int(currentTermYears.Mul(decimal.NewFromInt(12)).IntPart())
	newMonths := int(newTermYears.Mul(decimal.NewFromInt(12)).IntPart())

	currentPmt, err := MonthlyPayment(domain.LoanTerms{Principal: balance, AnnualRatePct: currentRate, TermMonths: currentMonths})
	if err != nil {
		return nil, err
	}
	newPmt, err := MonthlyPayment(domain.LoanTerms{Principal: balance, AnnualRatePct: newRate, TermMonths: newMonths})
	if err != nil {
		return nil, err
	}

	totalInterestCurrent := currentPmt.Mul(decimal.NewFromInt(int64(currentMonths))).Sub(balance)
	totalInterestNew := newPmt.Mul(decimal.NewFromInt(int64(newMonths))).Sub(balance)

	// IDR estimate: 10% of discretionary income, income above ~150% FPL.
	discretionary := money.ClampZero(income.Sub(decimal.NewFromInt(22000)))
	idrMonthly := discretionary.Mul(decimal.NewFromFloat(0.10)).Div(decimal.NewFromInt(12))

	warning := ""
	if federal {
		warning = "⚠ Refinancing federal loans with a private lender forfeits income-driven repayment options, Public Service Loan Forgiveness (PSLF), and federal forbearance protections."
	}

	return &StudentLoanResult{
		CurrentMonthly:         money.RoundCents(currentPmt),
		NewMonthly:             money.RoundCents(newPmt),
		MonthlySavings:         money.RoundCents(currentPmt.Sub(newPmt)),
		TotalInterestCurrent:   money.RoundCents(totalInterestCurrent),
		TotalInterestNew:       money.RoundCents(totalInterestNew),
		LifetimeSavings:        money.RoundCents(totalInterestCurrent.Sub(totalInterestNew)),
		BreakevenMonths:        nil, // no closing costs on student loans
		IDRMonthly:             money.RoundCents(idrMonthly),
		FederalBenefitsWarning: warning,
	}, nil
}

// PayoffOutcome summarizes a payoff simulation pass.
type PayoffOutcome struct {
	MonthsToPayoff int             `json:"months_to_payoff"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
}

// PayoffWithExtra extends the minimum-payment outcome with the savings
// attributable to the extra payment.
type PayoffWithExtra struct {
	PayoffOutcome
	InterestSaved decimal.Decimal `json:"interest_saved"`
	MonthsSaved   int             `json:"months_saved"`
}

// CreditCardPayoffResult contrasts minimum-only payments with an extra
// monthly payment.
type CreditCardPayoffResult struct {
	MinimumOnly     PayoffOutcome            `json:"minimum_only"`
	WithExtra       PayoffWithExtra          `json:"with_extra"`
	MonthlySchedule []domain.AmortizationRow `json:"monthly_schedule"`
}

// payoffSim simulates revolving-debt payoff month by month. The minimum
// payment is the larger of minPct of the balance and minFloor; the final
// payment is capped at balance plus interest. The simulation fails with a
// NonConvergenceError if the balance has not cleared within the cap.
func (e *Engine) payoffSim(balance, monthlyRate, minPct, minFloor, extra decimal.Decimal) (PayoffOutcome, []domain.AmortizationRow, error) {
	epsilon := decimal.NewFromFloat(0.01)
	totalInterest := decimal.Zero
	totalPaid := decimal.Zero
	var schedule []domain.AmortizationRow

	b := balance
	months := 0
	for b.GreaterThan(epsilon) {
		if months >= e.Caps.PayoffMaxMonths {
			return PayoffOutcome{}, nil, &domain.NonConvergenceError{Simulation: "credit card payoff", Cap: e.Caps.PayoffMaxMonths}
		}
		months++
		interest := b.Mul(monthlyRate)
		minPmt := decimal.Max(b.Mul(money.Fraction(minPct)), minFloor)
		payment := decimal.Min(minPmt.Add(extra), b.Add(interest))
		principal := payment.Sub(interest)
		b = money.ClampZero(b.Sub(principal))
		totalInterest = totalInterest.Add(interest)
		totalPaid = totalPaid.Add(payment)
		if months <= e.Caps.ScheduleMaxRows {
			schedule = append(schedule, domain.AmortizationRow{
				Month:     months,
				Payment:   money.RoundCents(payment),
				Principal: money.RoundCents(principal),
				Interest:  money.RoundCents(interest),
				Balance:   money.RoundCents(b),
			})
		}
	}
	return PayoffOutcome{
		MonthsToPayoff: months,
		TotalInterest:  money.RoundCents(totalInterest),
		TotalPaid:      money.RoundCents(totalPaid),
	}, schedule, nil
}

// CreditCardPayoff handles the debt/credit-card request.
func (e *Engine) CreditCardPayoff(p request.Params) (*CreditCardPayoffResult, error) {
	balance, err := p.Float("balance")
	if err != nil {
		return nil, err
	}
	apr, err := p.FloatDefault("apr", e.Policies.CreditCardAvgAPR.InexactFloat64())
	if err != nil {
		return nil, err
	}
	minPct, err := p.FloatDefault("minimum_pct", 2)
	if err != nil {
		return nil, err
	}
	minFloor, err := p.FloatDefault("minimum_floor", 25)
	if err != nil {
		return nil, err
	}
	extra, err := p.FloatDefault("extra_payment", 0)
	if err != nil {
		return nil, err
	}

	monthlyRate := money.MonthlyRate(apr)
	minimumOnly, _, err := e.payoffSim(balance, monthlyRate, minPct, minFloor, decimal.Zero)
	if err != nil {
		return nil, err
	}
	withExtra, schedule, err := e.payoffSim(balance, monthlyRate, minPct, minFloor, extra)
	if err != nil {
		return nil, err
	}

	e.Logger.Debugf("credit card payoff: balance=%s months_min=%d months_extra=%d",
		balance, minimumOnly.MonthsToPayoff, withExtra.MonthsToPayoff)
	return &CreditCardPayoffResult{
		MinimumOnly: minimumOnly,
		WithExtra: PayoffWithExtra{
			PayoffOutcome: withExtra,
			InterestSaved: minimumOnly.TotalInterest.Sub(withExtra.TotalInterest),
			MonthsSaved:   minimumOnly.MonthsToPayoff - withExtra.MonthsToPayoff,
		},
		MonthlySchedule: schedule,
	}, nil
}

// AutoLoanSide is the financing half of the loan-vs-lease comparison.
type AutoLoanSide struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	EquityAtEnd    decimal.Decimal `json:"equity_at_end"`
}

// AutoLeaseSide is the leasing half of the comparison.
type AutoLeaseSide struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	ResidualValue  decimal.Decimal `json:"residual_value"`
	EquivAPR       decimal.Decimal `json:"equiv_apr"`
	BuyoutOption   decimal.Decimal `json:"buyout_option"`
}

// AutoComparison is the verdict over the lease term.
type AutoComparison struct {
	CheaperOption  string          `json:"cheaper_option"`
	Difference     decimal.Decimal `json:"difference"`
	Recommendation string          `json:"recommendation"`
}

// AutoLoanVsLeaseResult is the full loan-vs-lease breakdown.
type AutoLoanVsLeaseResult struct {
	Loan       AutoLoanSide   `json:"loan"`
	Lease      AutoLeaseSide  `json:"lease"`
	Comparison AutoComparison `json:"comparison"`
}

// AutoLoanVsLease handles the debt/auto-loan request. Lease pricing uses the
// standard depreciation-plus-finance-charge formula; the money factor times
// 2400 approximates the APR.
func (e *Engine) AutoLoanVsLease(p request.Params) (*AutoLoanVsLeaseResult, error) {
	vehiclePrice, err := p.Float("vehicle_price")
	if err != nil {
		return nil, err
	}
	downPayment, err := p.FloatDefault("down_payment", 0)
	if err != nil {
		return nil, err
	}
	loanRate, err := p.FloatDefault("loan_rate", 7.0)
	if err != nil {
		return nil, err
	}
	loanTermMonths, err := p.IntDefault("loan_term_months", 60)
	if err != nil {
		return nil, err
	}
	residualPct, err := p.FloatDefault("residual_value_pct", 55)
	if err != nil {
		return nil, err
	}
	moneyFactor, err := p.FloatDefault("money_factor", 0.00125)
	if err != nil {
		return nil, err
	}
	leaseTermMonths, err := p.IntDefault("lease_term_months", 36)
	if err != nil {
		return nil, err
	}
	tradeIn, err := p.FloatDefault("trade_in_value", 0)
	if err != nil {
		return nil, err
	}
	salesTaxRate, err := p.FloatDefault("sales_tax_rate", 8.0)
	if err != nil {
		return nil, err
	}
	if leaseTermMonths <= 0 {
		return nil, domain.NewValidationError("lease_term_months", "must be greater than zero")
	}

	capCost := vehiclePrice.Sub(downPayment).Sub(tradeIn)
	taxAmount := vehiclePrice.Mul(money.Fraction(salesTaxRate))
	loanAmount := capCost.Add(taxAmount)
	loanMonthly, err := MonthlyPayment(domain.LoanTerms{Principal: loanAmount, AnnualRatePct: loanRate, TermMonths: loanTermMonths})
	if err != nil {
		return nil, err
	}
	loanMonths := decimal.NewFromInt(int64(loanTermMonths))
	loanTotal := loanMonthly.Mul(loanMonths).Add(downPayment)
	loanInterest := loanMonthly.Mul(loanMonths).Sub(loanAmount)
	residualValue := vehiclePrice.Mul(money.Fraction(residualPct))

	leaseMonths := decimal.NewFromInt(int64(leaseTermMonths))
	depreciationMo := capCost.Sub(residualValue).Div(leaseMonths)
	financeCharge := capCost.Add(residualValue).Mul(moneyFactor)
	leaseMonthly := depreciationMo.Add(financeCharge)
	leaseTotal := leaseMonthly.Mul(leaseMonths).Add(downPayment)
	aprEquiv := moneyFactor.Mul(decimal.NewFromInt(2400))

	// Compare both options over the lease term.
	loanMonthlySame, err := MonthlyPayment(domain.LoanTerms{Principal: loanAmount, AnnualRatePct: loanRate, TermMonths: leaseTermMonths})
	if err != nil {
		return nil, err
	}
	loanTotalSame := loanMonthlySame.Mul(leaseMonths).Add(downPayment)
	diff := loanTotalSame.Sub(leaseTotal)

	var cheaper, rec string
	if diff.GreaterThan(decimal.Zero) {
		cheaper = "LEASE"
		rec = fmt.Sprintf("Leasing saves ~%s over %d months, but you build no equity.",
			money.FormatWhole(diff, "$"), leaseTermMonths)
	} else {
		cheaper = "LOAN"
		rec = fmt.Sprintf("Buying saves ~%s over %d months and you own the vehicle.",
			money.FormatWhole(diff.Neg(), "$"), leaseTermMonths)
	}

	return &AutoLoanVsLeaseResult{
		Loan: AutoLoanSide{
			MonthlyPayment: money.RoundCents(loanMonthly),
			TotalPaid:      money.RoundCents(loanTotal),
			TotalInterest:  money.RoundCents(loanInterest),
			EquityAtEnd:    money.RoundCents(residualValue),
		},
		Lease: AutoLeaseSide{
			MonthlyPayment: money.RoundCents(leaseMonthly),
			TotalPaid:      money.RoundCents(leaseTotal),
			ResidualValue:  money.RoundCents(residualValue),
			EquivAPR:       money.RoundCents(aprEquiv),
			BuyoutOption:   money.RoundCents(residualValue),
		},
		Comparison: AutoComparison{
			CheaperOption:  cheaper,
			Difference:     money.RoundCents(diff.Abs()),
			Recommendation: rec,
		},
	}, nil
}

// ApprovalFactors grades the three main underwriting inputs.
type ApprovalFactors struct {
	CreditScore string `json:"credit_score"`
	DTI         string `json:"dti"`
	Income      string `json:"income"`
}

// PersonalLoanResult is the eligibility estimate with the APR range implied
// by the applicant's credit score.
type PersonalLoanResult struct {
	Eligibility          string          `json:"eligibility"`
	EstimatedAPRLow      decimal.Decimal `json:"estimated_apr_low"`
	EstimatedAPRHigh     decimal.Decimal `json:"estimated_apr_high"`
	EstimatedMonthlyLow  decimal.Decimal `json:"estimated_monthly_low"`
	EstimatedMonthlyHigh decimal.Decimal `json:"estimated_monthly_high"`
	DTIRatio             decimal.Decimal `json:"dti_ratio"`
	CreditTier           string          `json:"credit_tier"`
	ApprovalFactors      ApprovalFactors `json:"approval_factors"`
}

func (e *Engine) creditTier(score int) string {
	for _, tier := range e.Policies.CreditScoreTiers {
		if score >= tier.MinScore {
			return tier.Label
		}
	}
	return "Very Poor"
}

func (e *Engine) aprRange(score int) (decimal.Decimal, decimal.Decimal) {
	for _, tier := range e.Policies.PersonalLoanAPR {
		if score >= tier.MinScore && score <= tier.MaxScore {
			return tier.APRLow, tier.APRHigh
		}
	}
	worst := decimal.NewFromFloat(36.0)
	return worst, worst
}

// PersonalLoanEligibility handles the debt/personal-loan request. The DTI
// check prices the prospective loan at a rough 20% APR before the
// score-based APR range is known.
func (e *Engine) PersonalLoanEligibility(p request.Params) (*PersonalLoanResult, error) {
	loanAmount, err := p.Float("loan_amount")
	if err != nil {
		return nil, err
	}
	annualIncome, err := p.Float("annual_income")
	if err != nil {
		return nil, err
	}
	creditScore, err := p.Int("credit_score")
	if err != nil {
		return nil, err
	}
	monthlyDebts, err := p.FloatDefault("monthly_debts", 0)
	if err != nil {
		return nil, err
	}
	termYears, err := p.IntDefault("term_years", 3)
	if err != nil {
		return nil, err
	}
	termMonths := termYears * 12

	monthlyIncome := annualIncome.Div(decimal.NewFromInt(12))
	roughMonthly, err := MonthlyPayment(domain.LoanTerms{Principal: loanAmount, AnnualRatePct: decimal.NewFromInt(20), TermMonths: termMonths})
	if err != nil {
		return nil, err
	}
	dti := decimal.NewFromInt(100)
	if monthlyIncome.GreaterThan(decimal.Zero) {
		dti = money.RatioPct(monthlyDebts.Add(roughMonthly), monthlyIncome)
	}

	aprLow, aprHigh := e.aprRange(creditScore)
	monthlyLow, err := MonthlyPayment(domain.LoanTerms{Principal: loanAmount, AnnualRatePct: aprLow, TermMonths: termMonths})
	if err != nil {
		return nil, err
	}
	monthlyHigh, err := MonthlyPayment(domain.LoanTerms{Principal: loanAmount, AnnualRatePct: aprHigh, TermMonths: termMonths})
	if err != nil {
		return nil, err
	}

	eligibility := "UNLIKELY"
	switch {
	case creditScore >= 680 && dti.LessThan(decimal.NewFromInt(36)):
		eligibility = "LIKELY"
	case creditScore >= 580 && dti.LessThan(decimal.NewFromInt(50)):
		eligibility = "POSSIBLE"
	}

	creditFactor := "Weak"
	if creditScore >= 720 {
		creditFactor = "Strong"
	} else if creditScore >= 650 {
		creditFactor = "Adequate"
	}
	dtiFactor := "High"
	if dti.LessThan(decimal.NewFromInt(28)) {
		dtiFactor = "Good"
	} else if dti.LessThan(decimal.NewFromInt(36)) {
		dtiFactor = "Adequate"
	}
	incomeFactor := "Low"
	if annualIncome.GreaterThanOrEqual(decimal.NewFromInt(40000)) {
		incomeFactor = "Good"
	} else if annualIncome.GreaterThanOrEqual(decimal.NewFromInt(20000)) {
		incomeFactor = "Adequate"
	}

	return &PersonalLoanResult{
		Eligibility:          eligibility,
		EstimatedAPRLow:      aprLow,
		EstimatedAPRHigh:     aprHigh,
		EstimatedMonthlyLow:  money.RoundCents(monthlyLow),
		EstimatedMonthlyHigh: money.RoundCents(monthlyHigh),
		DTIRatio:             money.RoundTo(dti, 1),
		CreditTier:           e.creditTier(creditScore),
		ApprovalFactors: ApprovalFactors{
			CreditScore: creditFactor,
			DTI:         dtiFactor,
			Income:      incomeFactor,
		},
	}, nil
}
