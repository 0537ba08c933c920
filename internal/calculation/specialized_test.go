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

func TestInflationUS(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Inflation(request.Params{
		"amount":     100,
		"start_year": 2000,
		"end_year":   2024,
		"region":     "US",
	})
	require.NoError(t, err)

	assert.True(t, result.AdjustedAmount.GreaterThan(result.OriginalAmount))
	assert.True(t, result.CumulativeInflationPct.GreaterThan(decimal.Zero))
	assert.True(t, result.AvgAnnualRate.GreaterThan(decimal.Zero))
	assert.True(t, result.PurchasingPowerLost.GreaterThan(decimal.Zero))
	assert.True(t, result.PurchasingPowerLost.LessThan(result.OriginalAmount))

	require.NotEmpty(t, result.YearlyValues)
	first := result.YearlyValues[0]
	last := result.YearlyValues[len(result.YearlyValues)-1]
	assert.Equal(t, 2000, first.Year)
	assert.True(t, first.Value.Equal(dec(100)))
	assert.Equal(t, 2024, last.Year)
	assert.True(t, last.Value.Equal(result.AdjustedAmount))
}

func TestInflationRegionCaseInsensitive(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Inflation(request.Params{
		"amount":     100,
		"start_year": 2010,
		"region":     "in",
	})
	require.NoError(t, err)
	assert.True(t, result.AdjustedAmount.GreaterThan(dec(100)))
}

func TestInflationUnknownRegion(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Inflation(request.Params{"amount": 100, "start_year": 2000, "region": "JP"})
	var oerr *domain.UnsupportedOptionError
	require.True(t, errors.As(err, &oerr))
	assert.Equal(t, "region", oerr.Option)
	assert.Contains(t, oerr.Supported, "EU")
}

func TestInflationYearValidation(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Inflation(request.Params{"amount": 100, "start_year": 1800})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Reason, "year range")

	_, err = engine.Inflation(request.Params{"amount": 100, "start_year": 2020, "end_year": 2020})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Reason, "before end year")
}

func TestRuleOf72RateToYears(t *testing.T) {
	engine := NewEngine()
	result, err := engine.RuleOf72(request.Params{"value": 8})
	require.NoError(t, err)

	assert.True(t, result.Rule72["years"].Equal(dec(9)))
	assert.True(t, result.Rule114["years"].Equal(dec(14.25)))
	assert.True(t, result.Rule144["years"].Equal(dec(18)))
	// ln 2 / ln 1.08
	assert.True(t, result.Exact.Double.Equal(dec(9.006)), "exact double %s", result.Exact.Double)
	require.NotNil(t, result.RatePct)
	assert.True(t, result.RatePct.Equal(dec(8)))
	assert.Nil(t, result.Years)
	assert.Contains(t, result.Description, "doubles in")
}

func TestRuleOf72YearsToRate(t *testing.T) {
	engine := NewEngine()
	result, err := engine.RuleOf72(request.Params{"value": 10, "mode": "years_to_rate"})
	require.NoError(t, err)

	assert.True(t, result.Rule72["rate"].Equal(dec(7.2)))
	// 2^(1/10) - 1
	assert.True(t, result.Exact.Double.Equal(dec(7.177)), "exact rate %s", result.Exact.Double)
	require.NotNil(t, result.Years)
	assert.Nil(t, result.RatePct)
}

func TestRuleOf72RejectsNonPositive(t *testing.T) {
	engine := NewEngine()
	_, err := engine.RuleOf72(request.Params{"value": 0})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "value", verr.Field)
}

func TestLatteFactor(t *testing.T) {
	engine := NewEngine()
	result, err := engine.LatteFactor(request.Params{
		"daily_expense": 5,
		"annual_return": 7,
		"years":         10,
	})
	require.NoError(t, err)

	assert.True(t, result.MonthlyExpense.Equal(dec(152.20)))
	assert.True(t, result.AnnualExpense.Equal(dec(1825)))
	assert.True(t, result.TotalInvested.Equal(dec(18264.00)), "total %s", result.TotalInvested)
	assert.True(t, result.InvestedValueNominal.GreaterThan(result.TotalInvested))
	assert.True(t, result.InvestedValueReal.LessThan(result.InvestedValueNominal))
	assert.True(t, result.InvestmentGain.Equal(result.InvestedValueNominal.Sub(result.TotalInvested)))

	require.Len(t, result.YearlyProjection, 10)
	assert.Equal(t, 1, result.YearlyProjection[0].Year)
	assert.True(t, result.YearlyProjection[9].Invested.Equal(result.InvestedValueNominal))
}
