package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyRate(t *testing.T) {
	r := MonthlyRate(decimal.NewFromFloat(6.0))
	assert.True(t, r.Equal(decimal.NewFromFloat(0.005)), "6%% annual should be 0.5%% monthly, got %s", r)
}

func TestRatioPct(t *testing.T) {
	tests := []struct {
		name  string
		part  decimal.Decimal
		whole decimal.Decimal
		want  decimal.Decimal
	}{
		{"half", decimal.NewFromInt(50), decimal.NewFromInt(100), decimal.NewFromInt(50)},
		{"zero whole", decimal.NewFromInt(50), decimal.Zero, decimal.Zero},
		{"negative whole", decimal.NewFromInt(50), decimal.NewFromInt(-1), decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RatioPct(tt.part, tt.whole)
			assert.True(t, got.Equal(tt.want), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestClampZero(t *testing.T) {
	assert.True(t, ClampZero(decimal.NewFromFloat(-0.004)).IsZero())
	assert.True(t, ClampZero(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}

func TestFormatWhole(t *testing.T) {
	tests := []struct {
		in     float64
		symbol string
		want   string
	}{
		{0, "$", "$0"},
		{999, "$", "$999"},
		{11925, "$", "$11,925"},
		{48475, "₹", "₹48,475"},
		{1000000, "£", "£1,000,000"},
		{125140.4, "£", "£125,140"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWhole(decimal.NewFromFloat(tt.in), tt.symbol))
	}
}
