// Package integration drives full calculator requests through the engine and
// the JSON envelope, the way the CLI does.
package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/finance-calculators/internal/calculation"
	"github.com/finwise/finance-calculators/internal/output"
	"github.com/finwise/finance-calculators/internal/request"
)

// roundTrip runs one request and decodes the rendered envelope back into a
// generic map, mimicking what an API consumer sees.
func roundTrip(t *testing.T, name string, params request.Params) map[string]any {
	t.Helper()
	engine := calculation.NewEngine()
	result, err := engine.Calculate(name, params)
	require.NoError(t, err, "calculator %s", name)

	rendered, err := output.Marshal(output.Success(result))
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rendered, &envelope))
	require.Equal(t, true, envelope["ok"])
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "data is %T", envelope["data"])
	return data
}

func TestMortgageRepaymentRoundTrip(t *testing.T) {
	data := roundTrip(t, "mortgage/repayment", request.Params{
		"principal":   300000,
		"annual_rate": 6.7,
		"term_years":  30,
	})

	payment, ok := data["monthly_payment"].(float64)
	require.True(t, ok, "monthly_payment is %T", data["monthly_payment"])
	assert.InDelta(t, 1935.85, payment, 1.0)

	table, ok := data["amortization_table"].([]any)
	require.True(t, ok)
	assert.Len(t, table, 360)
	first := table[0].(map[string]any)
	assert.Equal(t, float64(1), first["month"])

	summary, ok := data["summary_by_year"].([]any)
	require.True(t, ok)
	assert.Len(t, summary, 30)
}

func TestTakeHomePayRoundTrip(t *testing.T) {
	data := roundTrip(t, "tax/take-home-pay", request.Params{
		"gross_income":  80000,
		"country":       "US",
		"filing_status": "single",
		"state":         "other",
		"pay_frequency": "monthly",
	})

	assert.InDelta(t, 19334.00, data["total_tax"].(float64), 0.01)
	assert.InDelta(t, 5055.50, data["take_home_per_period"].(float64), 0.01)

	breakdown := data["breakdown"].(map[string]any)
	sum := 0.0
	for _, v := range breakdown {
		sum += v.(float64)
	}
	assert.InDelta(t, data["total_tax"].(float64), sum, 0.05)
}

func TestBudgetRoundTrip(t *testing.T) {
	data := roundTrip(t, "budget", request.Params{
		"inc_primary":    6000,
		"housing_rent":   1800,
		"food_groceries": 600,
		"food_dining":    400,
		"sav_retirement": 1200,
		"debt_student":   300,
	})

	methods := data["methods"].(map[string]any)
	for _, key := range []string{"50_30_20", "80_20", "zero_based", "60_solution", "envelope", "reverse"} {
		assert.Contains(t, methods, key)
	}
	health := data["health"].(map[string]any)
	assert.Equal(t, "excellent", health["savings_rate_status"])
	assert.Equal(t, "caution", health["housing_ratio_status"])
}

func TestValidationErrorEnvelope(t *testing.T) {
	engine := calculation.NewEngine()
	_, err := engine.Calculate("investment/fire", request.Params{
		"current_age":          30,
		"annual_expenses":      40000,
		"safe_withdrawal_rate": 0,
	})
	require.Error(t, err)

	rendered, merr := output.Marshal(output.Failure(err))
	require.NoError(t, merr)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rendered, &envelope))
	assert.Equal(t, false, envelope["ok"])
	assert.NotEmpty(t, envelope["error"])
	assert.Nil(t, envelope["data"])
}

func TestCalculatorsAllRespondToDefaults(t *testing.T) {
	// Every calculator with a fully-defaulted parameter set must produce a
	// marshalable result.
	engine := calculation.NewEngine()
	runs := []struct {
		name   string
		params request.Params
	}{
		{"mortgage/rent-vs-buy", request.Params{"home_price": 450000, "monthly_rent": 2200}},
		{"mortgage/refinance", request.Params{"current_balance": 250000, "current_rate": 7.5, "new_rate": 6.0, "closing_costs": 5000}},
		{"investment/compound-interest", request.Params{"principal": 10000, "annual_rate": 6, "years": 10}},
		{"investment/sip", request.Params{"monthly_investment": 500, "annual_return": 12, "years": 10}},
		{"debt/credit-card", request.Params{"balance": 3000, "apr": 18, "extra_payment": 100}},
		{"specialized/latte-factor", request.Params{}},
		{"specialized/rule-of-72", request.Params{"value": 6}},
	}
	for _, run := range runs {
		result, err := engine.Calculate(run.name, run.params)
		require.NoError(t, err, run.name)
		_, err = output.Marshal(output.Success(result))
		require.NoError(t, err, run.name)
	}
}
