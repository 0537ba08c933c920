package domain

import "github.com/shopspring/decimal"

// LoanTerms is the immutable input to the annuity engine. A zero rate is a
// valid degenerate case (straight-line repayment).
type LoanTerms struct {
	Principal     decimal.Decimal
	AnnualRatePct decimal.Decimal
	TermMonths    int
}

// AmortizationRow is one month of a fixed-payment amortization schedule.
// Rows are produced in strict month order; Balance is non-increasing and
// clamped at zero on the final row.
type AmortizationRow struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// YearlySummary groups 12 consecutive schedule rows (the last group may be
// short) into principal/interest totals and the year-end balance.
type YearlySummary struct {
	Year          int             `json:"year"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	Balance       decimal.Decimal `json:"balance"`
}
