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

func TestMortgageRepayment(t *testing.T) {
	engine := NewEngine()
	result, err := engine.MortgageRepayment(request.Params{
		"principal":   300000,
		"annual_rate": 6.7,
		"term_years":  30,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1935.85, result.MonthlyPayment.InexactFloat64(), 1.0)
	assert.True(t, result.TotalPaid.Sub(result.TotalInterest).Equal(decimal.NewFromInt(300000)))
	assert.True(t, result.EffectiveRate.Equal(dec(6.7)))
	assert.Len(t, result.AmortizationTable, 360)
	assert.Len(t, result.SummaryByYear, 30)

	final := result.SummaryByYear[29].Balance
	assert.True(t, final.LessThan(decimal.NewFromInt(1)), "final balance %s", final)
}

func TestMortgageRepaymentCapsTableNotSummary(t *testing.T) {
	engine := NewEngine()
	result, err := engine.MortgageRepayment(request.Params{
		"principal":   300000,
		"annual_rate": 6.0,
		"term_years":  40,
	})
	require.NoError(t, err)

	assert.Len(t, result.AmortizationTable, 360, "table is capped")
	assert.Len(t, result.SummaryByYear, 40, "summary still covers the full term")
}

func TestMortgageRepaymentValidation(t *testing.T) {
	engine := NewEngine()
	tests := []struct {
		name   string
		params request.Params
		field  string
	}{
		{"missing principal", request.Params{"annual_rate": 5, "term_years": 30}, "principal"},
		{"principal too small", request.Params{"principal": 500, "annual_rate": 5, "term_years": 30}, "principal"},
		{"rate too high", request.Params{"principal": 100000, "annual_rate": 45, "term_years": 30}, "annual_rate"},
		{"term too long", request.Params{"principal": 100000, "annual_rate": 5, "term_years": 50}, "term_years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.MortgageRepayment(tt.params)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRentVsBuyDeterministic(t *testing.T) {
	engine := NewEngine()
	params := request.Params{
		"home_price":   500000,
		"monthly_rent": 2000,
		"years":        10,
	}
	a, err := engine.RentVsBuy(params)
	require.NoError(t, err)
	b, err := engine.RentVsBuy(params)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a.YearlyComparison, 10)
}

func TestRentVsBuyBreakevenIsFirstCrossing(t *testing.T) {
	engine := NewEngine()
	result, err := engine.RentVsBuy(request.Params{
		"home_price":         400000,
		"monthly_rent":       1500,
		"annual_home_growth": 6,
		"investment_return":  4,
		"years":              20,
	})
	require.NoError(t, err)

	if result.BreakevenYear != nil {
		yr := *result.BreakevenYear
		row := result.YearlyComparison[yr-1]
		assert.True(t, row.BuyNetWorth.GreaterThanOrEqual(row.RentNetWorth))
		for _, prior := range result.YearlyComparison[:yr-1] {
			assert.True(t, prior.BuyNetWorth.LessThan(prior.RentNetWorth),
				"year %d should precede the breakeven crossing", prior.Year)
		}
	}
}

func TestRentVsBuyHorizonCap(t *testing.T) {
	engine := NewEngine()
	result, err := engine.RentVsBuy(request.Params{
		"home_price":   500000,
		"monthly_rent": 2000,
		"years":        45,
	})
	require.NoError(t, err)
	assert.Len(t, result.YearlyComparison, 30)
}

func TestRentVsBuyRecommendation(t *testing.T) {
	engine := NewEngine()
	// Strong home growth and weak investment returns favor buying.
	buy, err := engine.RentVsBuy(request.Params{
		"home_price":         400000,
		"monthly_rent":       1200,
		"annual_home_growth": 8,
		"investment_return":  2,
		"years":              15,
	})
	require.NoError(t, err)
	assert.Equal(t, "BUY", buy.Recommendation)

	// Flat home values and strong investment returns favor renting.
	rent, err := engine.RentVsBuy(request.Params{
		"home_price":         600000,
		"monthly_rent":       1500,
		"annual_home_growth": 0,
		"investment_return":  10,
		"years":              15,
	})
	require.NoError(t, err)
	assert.Equal(t, "RENT", rent.Recommendation)
}

func TestRefinance(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Refinance(request.Params{
		"current_balance":         250000,
		"current_rate":            7.5,
		"current_remaining_years": 25,
		"new_rate":                5.5,
		"new_term_years":          25,
		"closing_costs":           4000,
	})
	require.NoError(t, err)

	assert.True(t, result.MonthlySavings.GreaterThan(decimal.Zero))
	require.NotNil(t, result.BreakevenMonths)
	assert.Equal(t, "REFINANCE", result.Recommendation)
	assert.True(t, result.NetSavings.GreaterThan(decimal.Zero))
}

func TestRefinanceStayWhenRateRises(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Refinance(request.Params{
		"current_balance": 250000,
		"current_rate":    5.0,
		"new_rate":        7.0,
	})
	require.NoError(t, err)

	assert.True(t, result.MonthlySavings.LessThan(decimal.Zero))
	assert.Nil(t, result.BreakevenMonths)
	assert.Equal(t, "STAY", result.Recommendation)
}

func TestAffordability(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Affordability(request.Params{
		"gross_annual_income": 120000,
		"monthly_debts":       500,
		"down_payment":        60000,
	})
	require.NoError(t, err)

	assert.True(t, result.MaxHomePrice.GreaterThan(decimal.Zero))
	assert.True(t, result.MaxHomePrice.LessThanOrEqual(result.MaxHomePrice28))
	assert.True(t, result.MaxHomePrice.LessThanOrEqual(result.MaxHomePrice36))
	assert.True(t, result.MonthlyIncome.Equal(dec(10000)))
	assert.True(t, result.CurrentDTI.Equal(dec(5)))
	assert.Equal(t, "GOOD", result.DTIStatus)
}

func TestAffordabilityDTIStatuses(t *testing.T) {
	engine := NewEngine()
	tests := []struct {
		debts  float64
		status string
	}{
		{1000, "GOOD"},     // 10% DTI
		{3000, "CAUTION"},  // 30% DTI
		{4000, "HIGH"},     // 40% DTI
	}
	for _, tt := range tests {
		result, err := engine.Affordability(request.Params{
			"gross_annual_income": 120000,
			"monthly_debts":       tt.debts,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.status, result.DTIStatus, "debts %v", tt.debts)
	}
}

func TestAffordabilityZeroRate(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Affordability(request.Params{
		"gross_annual_income": 120000,
		"annual_rate":         0,
	})
	require.NoError(t, err)
	assert.True(t, result.MaxHomePrice.IsZero())
}
