package calculation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/request"
)

func TestCalculateDispatch(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Calculate("mortgage/repayment", request.Params{
		"principal":   300000,
		"annual_rate": 6.7,
		"term_years":  30,
	})
	require.NoError(t, err)
	_, ok := result.(*MortgageRepaymentResult)
	assert.True(t, ok, "dispatch returned %T", result)
}

func TestCalculateUnknownName(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Calculate("mortgage/teaser", request.Params{})
	var oerr *domain.UnsupportedOptionError
	require.True(t, errors.As(err, &oerr))
	assert.Equal(t, "calculator", oerr.Option)
	assert.Equal(t, Calculators(), oerr.Supported)
}

func TestCalculatorsList(t *testing.T) {
	names := Calculators()
	assert.Len(t, names, 19)
	seen := map[string]bool{}
	for _, name := range names {
		assert.False(t, seen[name], "duplicate calculator %s", name)
		seen[name] = true
	}
	assert.True(t, seen["budget"])
	assert.True(t, seen["tax/take-home-pay"])
}

func TestCalculateEveryNameDispatches(t *testing.T) {
	engine := NewEngine()
	// Missing required parameters must surface as validation errors, never as
	// an unknown-calculator error.
	for _, name := range Calculators() {
		_, err := engine.Calculate(name, request.Params{})
		var oerr *domain.UnsupportedOptionError
		if errors.As(err, &oerr) {
			assert.NotEqual(t, "calculator", oerr.Option, "%s did not dispatch", name)
		}
	}
}

func TestSetLoggerNilRestoresNop(t *testing.T) {
	engine := NewEngine()
	engine.SetLogger(nil)
	require.NotNil(t, engine.Logger)
	engine.Logger.Debugf("no-op %d", 1)
}
