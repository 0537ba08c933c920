package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/request"
)

func TestStudentLoanRefinance(t *testing.T) {
	engine := NewEngine()
	result, err := engine.StudentLoanRefinance(request.Params{
		"loan_balance": 40000,
		"current_rate": 7.0,
		"new_rate":     4.5,
		"income":       70000,
	})
	require.NoError(t, err)

	assert.True(t, result.MonthlySavings.GreaterThan(decimal.Zero))
	assert.True(t, result.LifetimeSavings.GreaterThan(decimal.Zero))
	assert.Nil(t, result.BreakevenMonths)
	// IDR: 10% of (70,000 - 22,000) over 12 months.
	assert.True(t, result.IDRMonthly.Equal(dec(400)))
	assert.Empty(t, result.FederalBenefitsWarning, "custom loans carry no federal warning")
}

func TestStudentLoanPresetRateAndWarning(t *testing.T) {
	engine := NewEngine()
	result, err := engine.StudentLoanRefinance(request.Params{
		"loan_balance": 40000,
		"loan_type":    "grad",
		"new_rate":     5.0,
	})
	require.NoError(t, err)

	// The 8.08% grad preset applies when no current rate is supplied.
	assert.True(t, result.MonthlySavings.GreaterThan(decimal.Zero))
	assert.NotEmpty(t, result.FederalBenefitsWarning)

	// An explicit current rate overrides the preset.
	override, err := engine.StudentLoanRefinance(request.Params{
		"loan_balance": 40000,
		"loan_type":    "grad",
		"current_rate": 5.0,
		"new_rate":     5.0,
	})
	require.NoError(t, err)
	assert.True(t, override.MonthlySavings.IsZero())
}

func TestCreditCardPayoff(t *testing.T) {
	engine := NewEngine()
	result, err := engine.CreditCardPayoff(request.Params{
		"balance":       5000,
		"apr":           18,
		"extra_payment": 200,
	})
	require.NoError(t, err)

	assert.Greater(t, result.MinimumOnly.MonthsToPayoff, result.WithExtra.MonthsToPayoff)
	assert.True(t, result.WithExtra.InterestSaved.GreaterThan(decimal.Zero))
	assert.Equal(t, result.MinimumOnly.MonthsToPayoff-result.WithExtra.MonthsToPayoff, result.WithExtra.MonthsSaved)
	assert.NotEmpty(t, result.MonthlySchedule)
	assert.True(t, result.MonthlySchedule[len(result.MonthlySchedule)-1].Balance.LessThanOrEqual(dec(0.01)))
}

func TestCreditCardPayoffNonConvergence(t *testing.T) {
	engine := NewEngine()
	// A token minimum payment on a large balance never outruns the interest.
	_, err := engine.CreditCardPayoff(request.Params{
		"balance":       100000,
		"apr":           30,
		"minimum_pct":   0.1,
		"minimum_floor": 1,
	})
	var nerr *domain.NonConvergenceError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, 600, nerr.Cap)
}

func TestCreditCardScheduleRowCap(t *testing.T) {
	engine := NewEngine()
	// Minimum-only on a large balance runs past the schedule row cap but
	// still retires within the payoff cap.
	result, err := engine.CreditCardPayoff(request.Params{
		"balance": 10000,
		"apr":     18,
	})
	require.NoError(t, err)
	assert.Len(t, result.MonthlySchedule, 360)
	assert.Greater(t, result.MinimumOnly.MonthsToPayoff, 360)
	assert.LessOrEqual(t, result.MinimumOnly.MonthsToPayoff, 600)
	assert.Equal(t, 0, result.WithExtra.MonthsSaved)
}

func TestAutoLoanVsLease(t *testing.T) {
	engine := NewEngine()
	result, err := engine.AutoLoanVsLease(request.Params{
		"vehicle_price": 40000,
		"down_payment":  4000,
		"money_factor":  0.00125,
	})
	require.NoError(t, err)

	// Money factor times 2400 approximates the APR.
	assert.True(t, result.Lease.EquivAPR.Equal(dec(3.00)))
	assert.True(t, result.Lease.ResidualValue.Equal(dec(22000)), "residual %s", result.Lease.ResidualValue)
	assert.True(t, result.Lease.BuyoutOption.Equal(result.Lease.ResidualValue))
	assert.True(t, result.Loan.MonthlyPayment.GreaterThan(result.Lease.MonthlyPayment))
	assert.Contains(t, []string{"LEASE", "LOAN"}, result.Comparison.CheaperOption)
	assert.True(t, result.Comparison.Difference.GreaterThanOrEqual(decimal.Zero))
}

func TestPersonalLoanEligibility(t *testing.T) {
	engine := NewEngine()
	tests := []struct {
		name        string
		score       int
		income      float64
		debts       float64
		eligibility string
		tier        string
	}{
		{"prime borrower", 760, 90000, 200, "LIKELY", "Excellent"},
		{"fair credit", 650, 50000, 500, "POSSIBLE", "Fair"},
		{"thin file", 520, 25000, 800, "UNLIKELY", "Very Poor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.PersonalLoanEligibility(request.Params{
				"loan_amount":   15000,
				"annual_income": tt.income,
				"monthly_debts": tt.debts,
				"credit_score":  tt.score,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.eligibility, result.Eligibility)
			assert.Equal(t, tt.tier, result.CreditTier)
			assert.True(t, result.EstimatedAPRLow.LessThanOrEqual(result.EstimatedAPRHigh))
			assert.True(t, result.EstimatedMonthlyLow.LessThanOrEqual(result.EstimatedMonthlyHigh))
		})
	}
}

func TestPersonalLoanAPRBands(t *testing.T) {
	engine := NewEngine()
	low, hi := engine.aprRange(800)
	assert.True(t, low.Equal(dec(7.5)))
	assert.True(t, hi.Equal(dec(12.0)))

	low, hi = engine.aprRange(100) // below every tier
	assert.True(t, low.Equal(dec(36.0)))
	assert.True(t, hi.Equal(dec(36.0)))
}
