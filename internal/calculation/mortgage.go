package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/request"
	"github.com/finwise/finance-calculators/pkg/money"
)

// MortgageRepaymentResult is the full repayment picture for a fixed-rate loan.
type MortgageRepaymentResult struct {
	MonthlyPayment    decimal.Decimal          `json:"monthly_payment"`
	TotalPaid         decimal.Decimal          `json:"total_paid"`
	TotalInterest     decimal.Decimal          `json:"total_interest"`
	EffectiveRate     decimal.Decimal          `json:"effective_rate"`
	AmortizationTable []domain.AmortizationRow `json:"amortization_table"`
	SummaryByYear     []domain.YearlySummary   `json:"summary_by_year"`
}

// MortgageRepayment handles the mortgage/repayment request.
func (e *Engine) MortgageRepayment(p request.Params) (*MortgageRepaymentResult, error) {
	principal, err := p.FloatRange("principal", 1_000, 100_000_000)
	if err != nil {
		return nil, err
	}
	annualRate, err := p.FloatRange("annual_rate", 0, 30)
	if err != nil {
		return nil, err
	}
	termYears, err := p.FloatRange("term_years", 1, 40)
	if err != nil {
		return nil, err
	}

	terms := domain.LoanTerms{
		Principal:    principal,
		AnnualRatePct: annualRate,
		TermMonths:   int(termYears.Mul(decimal.NewFromInt(12)).IntPart()),
	}
	payment, err := MonthlyPayment(terms)
	if err != nil {
		return nil, err
	}

	totalPaid := payment.Mul(decimal.NewFromInt(int64(terms.TermMonths)))
	schedule := AmortizationSchedule(terms, payment, 0)
	yearly := YearlyRollup(schedule)

	table := schedule
	if e.Caps.ScheduleMaxRows > 0 && len(table) > e.Caps.ScheduleMaxRows {
		table = table[:e.Caps.ScheduleMaxRows]
	}

	e.Logger.Debugf("mortgage repayment: principal=%s rate=%s months=%d payment=%s",
		principal, annualRate, terms.TermMonths, payment.Round(2))
	return &MortgageRepaymentResult{
		MonthlyPayment:    money.RoundCents(payment),
		TotalPaid:         money.RoundCents(totalPaid),
		TotalInterest:     money.RoundCents(totalPaid.Sub(principal)),
		EffectiveRate:     annualRate,
		AmortizationTable: table,
		SummaryByYear:     yearly,
	}, nil
}

// RentVsBuyYear is one year of the ownership-vs-renting comparison.
type RentVsBuyYear struct {
	Year               int             `json:"year"`
	BuyNetWorth        decimal.Decimal `json:"buy_net_worth"`
	RentNetWorth       decimal.Decimal `json:"rent_net_worth"`
	CumulativeBuyCost  decimal.Decimal `json:"cumulative_buy_cost"`
	CumulativeRentCost decimal.Decimal `json:"cumulative_rent_cost"`
}

// RentVsBuyResult compares buyer equity against a renter's invested portfolio.
type RentVsBuyResult struct {
	BreakevenYear         *int            `json:"breakeven_year"`
	BuyNetWorthAtHorizon  decimal.Decimal `json:"buy_net_worth_at_horizon"`
	RentNetWorthAtHorizon decimal.Decimal `json:"rent_net_worth_at_horizon"`
	Recommendation        string          `json:"recommendation"`
	YearlyComparison      []RentVsBuyYear `json:"yearly_comparison"`
}

// RentVsBuy handles the mortgage/rent-vs-buy request. The buyer's net worth
// is home equity; the renter starts with the down payment invested and adds
// any monthly amount saved versus the mortgage payment.
func (e *Engine) RentVsBuy(p request.Params) (*RentVsBuyResult, error) {
	homePrice, err := p.Float("home_price")
	if err != nil {
		return nil, err
	}
	monthlyRent, err := p.Float("monthly_rent")
	if err != nil {
		return nil, err
	}
	downPct, err := p.FloatDefault("down_payment_pct", 20)
	if err != nil {
		return nil, err
	}
	mortgageRate, err := p.FloatDefault("mortgage_rate", 6.7)
	if err != nil {
		return nil, err
	}
	termYears, err := p.IntDefault("term_years", 30)
	if err != nil {
		return nil, err
	}
	homeGrowth, err := p.FloatDefault("annual_home_growth", 4)
	if err != nil {
		return nil, err
	}
	rentIncrease, err := p.FloatDefault("annual_rent_increase", 3)
	if err != nil {
		return nil, err
	}
	investReturn, err := p.FloatDefault("investment_return", 7)
	if err != nil {
		return nil, err
	}
	propTaxRate, err := p.FloatDefault("property_tax_rate", 1.2)
	if err != nil {
		return nil, err
	}
	maintenancePct, err := p.FloatDefault("maintenance_pct", 1)
	if err != nil {
		return nil, err
	}
	insuranceMonthly, err := p.FloatDefault("insurance_monthly", 150)
	if err != nil {
		return nil, err
	}
	years, err := p.IntDefault("years", 10)
	if err != nil {
		return nil, err
	}
	if years > e.Caps.ComparisonMaxYears {
		years = e.Caps.ComparisonMaxYears
	}

	downPayment := homePrice.Mul(money.Fraction(downPct))
	loan := homePrice.Sub(downPayment)
	terms := domain.LoanTerms{Principal: loan, AnnualRatePct: mortgageRate, TermMonths: termYears * 12}
	monthlyPmt, err := MonthlyPayment(terms)
	if err != nil {
		return nil, err
	}
	schedule := AmortizationSchedule(terms, monthlyPmt, 0)

	one := decimal.NewFromInt(1)
	twelve := decimal.NewFromInt(12)
	monthlyInvestRet := money.MonthlyRate(investReturn)
	homeGrowthFactor := one.Add(money.Fraction(homeGrowth))
	rentGrowthFactor := one.Add(money.Fraction(rentIncrease))

	// Fixed annual carrying costs are based on the purchase price.
	propTaxAnnual := homePrice.Mul(money.Fraction(propTaxRate))
	maintenanceAnnual := homePrice.Mul(money.Fraction(maintenancePct))
	insuranceAnnual := insuranceMonthly.Mul(twelve)

	renterPortfolio := downPayment
	homeValue := homePrice
	rent := monthlyRent
	cumulativeBuyCost := downPayment
	cumulativeRentCost := decimal.Zero
	balanceEnd := loan
	var breakevenYear *int

	yearly := make([]RentVsBuyYear, 0, years)
	for yr := 1; yr <= years; yr++ {
		start := (yr - 1) * 12
		end := yr * 12
		if start > len(schedule) {
			start = len(schedule)
		}
		if end > len(schedule) {
			end = len(schedule)
		}
		interestPaidYr := decimal.Zero
		for _, row := range schedule[start:end] {
			interestPaidYr = interestPaidYr.Add(row.Interest)
		}
		if end > start {
			balanceEnd = schedule[end-1].Balance
		}

		homeValue = homeValue.Mul(homeGrowthFactor)
		buyerEquity := homeValue.Sub(balanceEnd)

		buyAnnualCost := interestPaidYr.Add(propTaxAnnual).Add(maintenanceAnnual).Add(insuranceAnnual)
		cumulativeBuyCost = cumulativeBuyCost.Add(buyAnnualCost)

		rentAnnual := rent.Mul(twelve)
		cumulativeRentCost = cumulativeRentCost.Add(rentAnnual)
		rent = rent.Mul(rentGrowthFactor)

		// The renter invests whatever the mortgage payment would have cost
		// above the rent, month by month.
		monthlyDiff := monthlyPmt.Sub(rentAnnual.Div(twelve))
		for m := 0; m < 12; m++ {
			renterPortfolio = renterPortfolio.Mul(one.Add(monthlyInvestRet))
			if monthlyDiff.GreaterThan(decimal.Zero) {
				renterPortfolio = renterPortfolio.Add(monthlyDiff)
			}
		}

		buyNet := money.RoundCents(buyerEquity)
		rentNet := money.RoundCents(renterPortfolio)
		if breakevenYear == nil && buyNet.GreaterThanOrEqual(rentNet) {
			y := yr
			breakevenYear = &y
		}
		yearly = append(yearly, RentVsBuyYear{
			Year:               yr,
			BuyNetWorth:        buyNet,
			RentNetWorth:       rentNet,
			CumulativeBuyCost:  money.RoundCents(cumulativeBuyCost),
			CumulativeRentCost: money.RoundCents(cumulativeRentCost),
		})
	}

	last := yearly[len(yearly)-1]
	diff := last.BuyNetWorth.Sub(last.RentNetWorth)
	threshold := decimal.NewFromInt(5000)
	rec := "NEUTRAL"
	switch {
	case diff.GreaterThan(threshold):
		rec = "BUY"
	case diff.LessThan(threshold.Neg()):
		rec = "RENT"
	}

	return &RentVsBuyResult{
		BreakevenYear:         breakevenYear,
		BuyNetWorthAtHorizon:  last.BuyNetWorth,
		RentNetWorthAtHorizon: last.RentNetWorth,
		Recommendation:        rec,
		YearlyComparison:      yearly,
	}, nil
}

// RefinanceResult compares the current loan against a refinanced one.
type RefinanceResult struct {
	CurrentMonthly       decimal.Decimal `json:"current_monthly"`
	NewMonthly           decimal.Decimal `json:"new_monthly"`
	MonthlySavings       decimal.Decimal `json:"monthly_savings"`
	BreakevenMonths      *int            `json:"breakeven_months"`
	TotalInterestCurrent decimal.Decimal `json:"total_interest_current"`
	TotalInterestNew     decimal.Decimal `json:"total_interest_new"`
	NetSavings           decimal.Decimal `json:"net_savings"`
	Recommendation       string          `json:"recommendation"`
}

// Refinance handles the mortgage/refinance request.
func (e *Engine) Refinance(p request.Params) (*RefinanceResult, error) {
	balance, err := p.Float("current_balance")
	if err != nil {
		return nil, err
	}
	currentRate, err := p.Float("current_rate")
	if err != nil {
		return nil, err
	}
	newRate, err := p.Float("new_rate")
	if err != nil {
		return nil, err
	}
	currentRemainingYears, err := p.FloatDefault("current_remaining_years", 25)
	if err != nil {
		return nil, err
	}
	newTermYears, err := p.FloatDefault("new_term_years", 30)
	if err != nil {
		return nil, err
	}
	closingCosts, err := p.FloatDefault("closing_costs", 4000)
	if err != nil {
		return nil, err
	}

	currentMonths := int(currentRemainingYears.Mul(decimal.NewFromInt(12)).IntPart())
	newMonths := int(newTermYears.Mul(decimal.NewFromInt(12)).IntPart())

	currentPmt, err := MonthlyPayment(domain.LoanTerms{Principal: balance, AnnualRatePct: currentRate, TermMonths: currentMonths})
	if err != nil {
		return nil, err
	}
	newPmt, err := MonthlyPayment(domain.LoanTerms{Principal: balance, AnnualRatePct: newRate, TermMonths: newMonths})
	if err != nil {
		return nil, err
	}

	monthlySavings := currentPmt.Sub(newPmt)
	var breakevenMonths *int
	if monthlySavings.GreaterThan(decimal.Zero) {
		m := int(closingCosts.Div(monthlySavings).IntPart())
		breakevenMonths = &m
	}

	totalInterestCurrent := currentPmt.Mul(decimal.NewFromInt(int64(currentMonths))).Sub(balance)
	totalInterestNew := newPmt.Mul(decimal.NewFromInt(int64(newMonths))).Sub(balance)
	netSavings := totalInterestCurrent.Sub(totalInterestNew).Sub(closingCosts)

	rec := "STAY"
	if monthlySavings.GreaterThan(decimal.Zero) && breakevenMonths != nil && *breakevenMonths > 0 && *breakevenMonths < currentMonths {
		rec = "REFINANCE"
	}

	return &RefinanceResult{
		CurrentMonthly:       money.RoundCents(currentPmt),
		NewMonthly:           money.RoundCents(newPmt),
		MonthlySavings:       money.RoundCents(monthlySavings),
		BreakevenMonths:      breakevenMonths,
		TotalInterestCurrent: money.RoundCents(totalInterestCurrent),
		TotalInterestNew:     money.RoundCents(totalInterestNew),
		NetSavings:           money.RoundCents(netSavings),
		Recommendation:       rec,
	}, nil
}

// AffordabilityResult is the 28/36-rule affordability estimate.
type AffordabilityResult struct {
	MaxHomePrice28 decimal.Decimal `json:"max_home_price_28pct"`
	MaxHomePrice36 decimal.Decimal `json:"max_home_price_36pct"`
	MaxHomePrice   decimal.Decimal `json:"max_home_price"`
	MaxMonthlyPITI decimal.Decimal `json:"max_monthly_piti"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	CurrentDTI     decimal.Decimal `json:"current_dti"`
	DTIStatus      string          `json:"dti_status"`
}

// affordabilitySeedPrice seeds the property-tax estimate for the first
// solver pass; the second pass replaces it with the implied price.
var affordabilitySeedPrice = decimal.NewFromInt(250000)

// Affordability handles the mortgage/affordability request using the 28%
// front-end and 36% back-end debt-to-income rules. Each rule is solved in two
// passes: the first pass prices property tax off a seed value, the second off
// the price the first pass implied.
func (e *Engine) Affordability(p request.Params) (*AffordabilityResult, error) {
	grossAnnual, err := p.Float("gross_annual_income")
	if err != nil {
		return nil, err
	}
	monthlyDebts, err := p.FloatDefault("monthly_debts", 0)
	if err != nil {
		return nil, err
	}
	downPayment, err := p.FloatDefault("down_payment", 0)
	if err != nil {
		return nil, err
	}
	annualRate, err := p.FloatDefault("annual_rate", 6.7)
	if err != nil {
		return nil, err
	}
	termYears, err := p.IntDefault("term_years", 30)
	if err != nil {
		return nil, err
	}
	propTaxRate, err := p.FloatDefault("property_tax_rate", 1.2)
	if err != nil {
		return nil, err
	}
	insuranceMo, err := p.FloatDefault("insurance_monthly", 150)
	if err != nil {
		return nil, err
	}
	hoaMo, err := p.FloatDefault("hoa_monthly", 0)
	if err != nil {
		return nil, err
	}

	twelve := decimal.NewFromInt(12)
	monthlyIncome := grossAnnual.Div(twelve)
	termMonths := termYears * 12
	r := money.MonthlyRate(annualRate)
	monthlyTaxRate := money.Fraction(propTaxRate).Div(twelve)

	var factor decimal.Decimal
	solvable := r.GreaterThan(decimal.Zero) && termMonths > 0
	if solvable {
		growth := decimal.NewFromInt(1).Add(r).Pow(decimal.NewFromInt(int64(termMonths)))
		factor = r.Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	}

	// solve runs the two-pass principal solver for a monthly budget that must
	// cover principal+interest, property tax, insurance, and HOA.
	solve := func(budget decimal.Decimal) decimal.Decimal {
		pi := budget.Sub(monthlyTaxRate.Mul(affordabilitySeedPrice)).Sub(insuranceMo).Sub(hoaMo)
		loan := pi.Div(factor)
		price := loan.Add(downPayment)
		actualTax := price.Mul(monthlyTaxRate)
		pi = budget.Sub(actualTax).Sub(insuranceMo).Sub(hoaMo)
		return money.ClampZero(pi.Div(factor).Add(downPayment))
	}

	maxPrice28 := decimal.Zero
	maxPrice36 := decimal.Zero
	if solvable {
		maxPrice28 = solve(monthlyIncome.Mul(decimal.NewFromFloat(0.28)))
		budget36 := monthlyIncome.Mul(decimal.NewFromFloat(0.36)).Sub(monthlyDebts)
		pi36 := budget36.Sub(monthlyTaxRate.Mul(affordabilitySeedPrice)).Sub(insuranceMo).Sub(hoaMo)
		if pi36.GreaterThan(decimal.Zero) {
			maxPrice36 = solve(budget36)
		}
	}

	maxPrice := decimal.Min(maxPrice28, maxPrice36)
	maxLoan := money.ClampZero(maxPrice.Sub(downPayment))
	maxPITI := decimal.Zero
	if termMonths > 0 {
		pmt, err := MonthlyPayment(domain.LoanTerms{Principal: maxLoan, AnnualRatePct: annualRate, TermMonths: termMonths})
		if err != nil {
			return nil, err
		}
		maxPITI = pmt.Add(maxPrice.Mul(monthlyTaxRate)).Add(insuranceMo).Add(hoaMo)
	}

	currentDTI := money.RatioPct(monthlyDebts, monthlyIncome)
	dtiStatus := "HIGH"
	switch {
	case currentDTI.LessThan(decimal.NewFromInt(28)):
		dtiStatus = "GOOD"
	case currentDTI.LessThan(decimal.NewFromInt(36)):
		dtiStatus = "CAUTION"
	}

	return &AffordabilityResult{
		MaxHomePrice28: maxPrice28.Round(0),
		MaxHomePrice36: maxPrice36.Round(0),
		MaxHomePrice:   maxPrice.Round(0),
		MaxMonthlyPITI: money.RoundCents(maxPITI),
		MonthlyIncome:  money.RoundCents(monthlyIncome),
		CurrentDTI:     money.RoundTo(currentDTI, 1),
		DTIStatus:      dtiStatus,
	}, nil
}
