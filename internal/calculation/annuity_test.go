package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/finance-calculators/internal/domain"
)

func terms(principal float64, rate float64, months int) domain.LoanTerms {
	return domain.LoanTerms{
		Principal:     decimal.NewFromFloat(principal),
		AnnualRatePct: decimal.NewFromFloat(rate),
		TermMonths:    months,
	}
}

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		terms     domain.LoanTerms
		want      float64
		tolerance float64
	}{
		{"30yr fixed", terms(300000, 6.7, 360), 1935.85, 1.0},
		{"15yr fixed", terms(200000, 5.0, 180), 1581.59, 1.0},
		{"interest free", terms(120000, 0, 120), 1000.00, 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthlyPayment(tt.terms)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.InexactFloat64(), tt.tolerance)
		})
	}
}

func TestMonthlyPaymentRejectsZeroTerm(t *testing.T) {
	_, err := MonthlyPayment(terms(1000, 5, 0))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "term_months", verr.Field)
}

func TestAmortizationScheduleRetiresBalance(t *testing.T) {
	tm := terms(300000, 6.7, 360)
	payment, err := MonthlyPayment(tm)
	require.NoError(t, err)

	schedule := AmortizationSchedule(tm, payment, 0)
	require.Len(t, schedule, 360)

	final := schedule[len(schedule)-1].Balance
	assert.True(t, final.LessThan(decimal.NewFromInt(1)),
		"final balance should be near zero, got %s", final)

	for i, row := range schedule {
		assert.Equal(t, i+1, row.Month)
		if i > 0 {
			assert.True(t, row.Balance.LessThanOrEqual(schedule[i-1].Balance),
				"balance must not increase at month %d", row.Month)
		}
	}
}

func TestAmortizationScheduleMaxRows(t *testing.T) {
	tm := terms(300000, 6.7, 480)
	payment, err := MonthlyPayment(tm)
	require.NoError(t, err)

	schedule := AmortizationSchedule(tm, payment, 360)
	assert.Len(t, schedule, 360)
}

func TestYearlyRollupReconcilesWithSchedule(t *testing.T) {
	tm := terms(100000, 6.0, 120)
	payment, err := MonthlyPayment(tm)
	require.NoError(t, err)

	schedule := AmortizationSchedule(tm, payment, 0)
	yearly := YearlyRollup(schedule)
	require.Len(t, yearly, 10)

	for yi, y := range yearly {
		assert.Equal(t, yi+1, y.Year)
		principal := decimal.Zero
		interest := decimal.Zero
		for _, row := range schedule[yi*12 : (yi+1)*12] {
			principal = principal.Add(row.Principal)
			interest = interest.Add(row.Interest)
		}
		assert.True(t, y.PrincipalPaid.Equal(principal), "year %d principal", y.Year)
		assert.True(t, y.InterestPaid.Equal(interest), "year %d interest", y.Year)
		assert.True(t, y.Balance.Equal(schedule[(yi+1)*12-1].Balance), "year %d balance", y.Year)
	}
}
