package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/pkg/money"
)

// MonthlyPayment computes the fixed payment that amortizes a loan over its
// term. A zero rate degenerates to straight-line principal division.
func MonthlyPayment(terms domain.LoanTerms) (decimal.Decimal, error) {
	if terms.TermMonths <= 0 {
		return decimal.Zero, domain.NewValidationError("term_months", "must be greater than zero")
	}
	months := decimal.NewFromInt(int64(terms.TermMonths))
	r := money.MonthlyRate(terms.AnnualRatePct)
	if r.IsZero() {
		return terms.Principal.Div(months), nil
	}
	// P * r * (1+r)^n / ((1+r)^n - 1)
	growth := decimal.NewFromInt(1).Add(r).Pow(months)
	payment := terms.Principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	return payment, nil
}

// AmortizationSchedule produces the month-by-month split of each payment into
// interest and principal. The running balance is carried at full precision;
// only the returned rows are rounded. maxRows truncates the output without
// affecting the totals a caller derives from the terms (0 means no limit).
func AmortizationSchedule(terms domain.LoanTerms, payment decimal.Decimal, maxRows int) []domain.AmortizationRow {
	r := money.MonthlyRate(terms.AnnualRatePct)
	balance := terms.Principal
	rows := terms.TermMonths
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}

	schedule := make([]domain.AmortizationRow, 0, rows)
	for m := 1; m <= rows; m++ {
		interest := balance.Mul(r)
		principal := payment.Sub(interest)
		balance = money.ClampZero(balance.Sub(principal))
		schedule = append(schedule, domain.AmortizationRow{
			Month:     m,
			Payment:   money.RoundCents(payment),
			Principal: money.RoundCents(principal),
			Interest:  money.RoundCents(interest),
			Balance:   money.RoundCents(balance),
		})
	}
	return schedule
}

// YearlyRollup aggregates an amortization schedule into calendar-year totals.
// Sums are taken over the rounded row values so yearly figures reconcile with
// the table a caller sees.
func YearlyRollup(schedule []domain.AmortizationRow) []domain.YearlySummary {
	summaries := make([]domain.YearlySummary, 0, (len(schedule)+11)/12)
	for start := 0; start < len(schedule); start += 12 {
		end := start + 12
		if end > len(schedule) {
			end = len(schedule)
		}
		principal := decimal.Zero
		interest := decimal.Zero
		for _, row := range schedule[start:end] {
			principal = principal.Add(row.Principal)
			interest = interest.Add(row.Interest)
		}
		summaries = append(summaries, domain.YearlySummary{
			Year:          start/12 + 1,
			PrincipalPaid: principal,
			InterestPaid:  interest,
			Balance:       schedule[end-1].Balance,
		})
	}
	return summaries
}
