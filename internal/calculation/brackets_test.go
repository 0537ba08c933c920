package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/finance-calculators/internal/policy"
)

func TestApplyBracketsUSScenario(t *testing.T) {
	table := policy.Default().US.Brackets["single"]

	// 80,000 gross less the 15,000 standard deduction.
	total, applied := ApplyBrackets(decimal.NewFromInt(65000), table, "$")

	assert.True(t, total.Equal(decimal.NewFromFloat(9214.00)), "got %s", total)
	require.Len(t, applied, 3)

	assert.Equal(t, "$0 – $11,925", applied[0].Bracket)
	assert.True(t, applied[0].Tax.Equal(decimal.NewFromFloat(1192.50)))
	assert.Equal(t, "$11,925 – $48,475", applied[1].Bracket)
	assert.True(t, applied[1].Tax.Equal(decimal.NewFromFloat(4386.00)))
	assert.True(t, applied[2].Tax.Equal(decimal.NewFromFloat(3635.50)))
	assert.True(t, applied[2].Rate.Equal(decimal.NewFromInt(22)))
}

func TestApplyBracketsTotalEqualsBandSum(t *testing.T) {
	table := policy.Default().US.Brackets["single"]
	for _, taxable := range []int64{0, 1, 11925, 48475, 65000, 250000, 1000000} {
		total, applied := ApplyBrackets(decimal.NewFromInt(taxable), table, "$")
		sum := decimal.Zero
		for _, band := range applied {
			sum = sum.Add(band.Tax)
		}
		assert.True(t, total.Equal(sum), "taxable %d: total %s != band sum %s", taxable, total, sum)
	}
}

func TestApplyBracketsTopBandLabel(t *testing.T) {
	table := policy.Default().US.Brackets["single"]
	_, applied := ApplyBrackets(decimal.NewFromInt(1000000), table, "$")
	require.Len(t, applied, 7)
	assert.Equal(t, "$626,350 – ∞", applied[6].Bracket)
}

func TestApplyBracketsZeroTaxable(t *testing.T) {
	table := policy.Default().US.Brackets["single"]
	total, applied := ApplyBrackets(decimal.Zero, table, "$")
	assert.True(t, total.IsZero())
	assert.Empty(t, applied)
}

func TestMarginalRatePct(t *testing.T) {
	table := policy.Default().US.Brackets["single"]
	tests := []struct {
		taxable int64
		want    float64
	}{
		{0, 10},
		{11925, 10},
		{11926, 12},
		{65000, 22},
		{700000, 37},
	}
	for _, tt := range tests {
		got := MarginalRatePct(decimal.NewFromInt(tt.taxable), table)
		assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)), "taxable %d: got %s", tt.taxable, got)
	}
}

func TestSlabRatePicksWholeSlab(t *testing.T) {
	surcharge := policy.Default().India.Surcharge
	assert.True(t, slabRate(decimal.NewFromInt(4000000), surcharge).IsZero())
	assert.True(t, slabRate(decimal.NewFromInt(6000000), surcharge).Equal(decimal.NewFromFloat(0.10)))
	assert.True(t, slabRate(decimal.NewFromInt(60000000), surcharge).Equal(decimal.NewFromFloat(0.25)))
}
