package calculation

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/request"
	"github.com/finwise/finance-calculators/pkg/money"
)

// InflationYearValue is one point of the purchasing-power trajectory.
type InflationYearValue struct {
	Year     int             `json:"year"`
	Value    decimal.Decimal `json:"value"`
	CPIIndex decimal.Decimal `json:"cpi_index"`
}

// InflationResult adjusts an amount between two years using a CPI series.
type InflationResult struct {
	OriginalAmount         decimal.Decimal      `json:"original_amount"`
	AdjustedAmount         decimal.Decimal      `json:"adjusted_amount"`
	CumulativeInflationPct decimal.Decimal      `json:"cumulative_inflation_pct"`
	AvgAnnualRate          decimal.Decimal      `json:"avg_annual_rate"`
	PurchasingPowerLost    decimal.Decimal      `json:"purchasing_power_lost"`
	YearlyValues           []InflationYearValue `json:"yearly_values"`
}

// Inflation handles the specialized/inflation request.
func (e *Engine) Inflation(p request.Params) (*InflationResult, error) {
	amount, err := p.FloatDefault("amount", 100)
	if err != nil {
		return nil, err
	}
	startYear, err := p.Int("start_year")
	if err != nil {
		return nil, err
	}
	region := strings.ToUpper(p.String("region", "US"))
	series, ok := e.Policies.CPI[region]
	if !ok {
		return nil, &domain.UnsupportedOptionError{Option: "region", Value: region, Supported: []string{"US", "EU", "IN"}}
	}
	endYear, err := p.IntDefault("end_year", series.MaxYear)
	if err != nil {
		return nil, err
	}

	startCPI, okStart := series.Index[startYear]
	endCPI, okEnd := series.Index[endYear]
	if !okStart || !okEnd {
		return nil, domain.NewValidationError("start_year",
			fmt.Sprintf("year range for %s: %d – %d", region, series.MinYear, series.MaxYear))
	}
	if startYear >= endYear {
		return nil, domain.NewValidationError("start_year", "must be before end year")
	}

	ratio := endCPI.Div(startCPI)
	adjusted := amount.Mul(ratio)
	cumInflation := ratio.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	powerLost := amount.Sub(amount.Mul(startCPI).Div(endCPI))

	// Geometric mean over the span needs a fractional exponent, which is
	// outside decimal's integer Pow; the float detour is fine at 3dp.
	span := endYear - startYear
	avgAnnual := (math.Pow(ratio.InexactFloat64(), 1/float64(span)) - 1) * 100

	yearly := make([]InflationYearValue, 0, span+1)
	for yr := startYear; yr <= endYear; yr++ {
		cpi, ok := series.Index[yr]
		if !ok {
			continue
		}
		yearly = append(yearly, InflationYearValue{
			Year:     yr,
			Value:    money.RoundCents(amount.Mul(cpi).Div(startCPI)),
			CPIIndex: money.RoundTo(cpi, 1),
		})
	}

	return &InflationResult{
		OriginalAmount:         money.RoundCents(amount),
		AdjustedAmount:         money.RoundCents(adjusted),
		CumulativeInflationPct: money.RoundCents(cumInflation),
		AvgAnnualRate:          money.RoundTo(decimal.NewFromFloat(avgAnnual), 3),
		PurchasingPowerLost:    money.RoundCents(powerLost),
		YearlyValues:           yearly,
	}, nil
}

// DoublingExact holds the logarithm-exact counterparts to the rules of
// thumb.
type DoublingExact struct {
	Double decimal.Decimal `json:"double"`
	Triple decimal.Decimal `json:"triple"`
	Quad   decimal.Decimal `json:"quad"`
}

// RuleOf72Result holds the 72/114/144 rules of thumb and their exact
// solutions. Depending on the mode the rule values are keyed "years" (from a
// rate) or "rate" (from a year count), and either RatePct or Years echoes
// the input.
type RuleOf72Result struct {
	Rule72      map[string]decimal.Decimal `json:"rule_72"`
	Rule114     map[string]decimal.Decimal `json:"rule_114"`
	Rule144     map[string]decimal.Decimal `json:"rule_144"`
	Exact       DoublingExact              `json:"exact"`
	Description string                     `json:"description"`
	RatePct     *decimal.Decimal           `json:"rate_pct,omitempty"`
	Years       *decimal.Decimal           `json:"years,omitempty"`
}

// RuleOf72 handles the specialized/rule-of-72 request in either direction:
// rate_to_years or years_to_rate.
func (e *Engine) RuleOf72(p request.Params) (*RuleOf72Result, error) {
	value, err := p.Float("value")
	if err != nil {
		return nil, err
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("value", "must be positive")
	}
	mode := p.String("mode", "rate_to_years")

	rule72 := decimal.NewFromInt(72).Div(value)
	rule114 := decimal.NewFromInt(114).Div(value)
	rule144 := decimal.NewFromInt(144).Div(value)

	// The exact solutions need logarithms and fractional powers, so they run
	// through float64.
	v := value.InexactFloat64()
	var exact DoublingExact
	var desc, ruleKey string
	result := &RuleOf72Result{}
	if mode == "rate_to_years" {
		ruleKey = "years"
		lnGrowth := math.Log(1 + v/100)
		exact = DoublingExact{
			Double: decimal.NewFromFloat(math.Log(2) / lnGrowth).Round(3),
			Triple: decimal.NewFromFloat(math.Log(3) / lnGrowth).Round(3),
			Quad:   decimal.NewFromFloat(math.Log(4) / lnGrowth).Round(3),
		}
		desc = fmt.Sprintf("At %s%% annual return, money doubles in ~%s years.", value, rule72.Round(1))
		result.RatePct = &value
	} else {
		ruleKey = "rate"
		exact = DoublingExact{
			Double: decimal.NewFromFloat((math.Pow(2, 1/v) - 1) * 100).Round(3),
			Triple: decimal.NewFromFloat((math.Pow(3, 1/v) - 1) * 100).Round(3),
			Quad:   decimal.NewFromFloat((math.Pow(4, 1/v) - 1) * 100).Round(3),
		}
		desc = fmt.Sprintf("To double money in %s years, you need ~%s%% annual return.", value, rule72.Round(2))
		result.Years = &value
	}

	result.Rule72 = map[string]decimal.Decimal{ruleKey: money.RoundCents(rule72)}
	result.Rule114 = map[string]decimal.Decimal{ruleKey: money.RoundCents(rule114)}
	result.Rule144 = map[string]decimal.Decimal{ruleKey: money.RoundCents(rule144)}
	result.Exact = exact
	result.Description = desc
	return result, nil
}

// LatteYearRow is one year of redirected-spending growth.
type LatteYearRow struct {
	Year      int             `json:"year"`
	Saved     decimal.Decimal `json:"saved"`
	Invested  decimal.Decimal `json:"invested"`
	RealValue decimal.Decimal `json:"real_value"`
}

// LatteFactorResult shows what a small recurring expense would grow to if
// invested instead.
type LatteFactorResult struct {
	DailyExpense         decimal.Decimal `json:"daily_expense"`
	MonthlyExpense       decimal.Decimal `json:"monthly_expense"`
	AnnualExpense        decimal.Decimal `json:"annual_expense"`
	InvestedValueNominal decimal.Decimal `json:"invested_value_nominal"`
	InvestedValueReal    decimal.Decimal `json:"invested_value_real"`
	TotalInvested        decimal.Decimal `json:"total_invested"`
	InvestmentGain       decimal.Decimal `json:"investment_gain"`
	YearlyProjection     []LatteYearRow  `json:"yearly_projection"`
}

// LatteFactor handles the specialized/latte-factor request. The monthly
// amount uses the 30.44 average days per month.
func (e *Engine) LatteFactor(p request.Params) (*LatteFactorResult, error) {
	dailyExpense, err := p.FloatDefault("daily_expense", 5)
	if err != nil {
		return nil, err
	}
	annualReturn, err := p.FloatDefault("annual_return", 7)
	if err != nil {
		return nil, err
	}
	years, err := p.IntDefault("years", 30)
	if err != nil {
		return nil, err
	}
	inflationRate, err := p.FloatDefault("inflation_rate", 2.5)
	if err != nil {
		return nil, err
	}

	monthlyExpense := dailyExpense.Mul(decimal.NewFromFloat(30.44))
	annualExpense := dailyExpense.Mul(decimal.NewFromInt(365))

	one := decimal.NewFromInt(1)
	monthlyReturn := money.MonthlyRate(annualReturn)
	monthlyInflation := money.MonthlyRate(inflationRate)

	balance := decimal.Zero
	realBalance := decimal.Zero
	totalSaved := decimal.Zero
	yearly := make([]LatteYearRow, 0, years)
	for yr := 1; yr <= years; yr++ {
		for m := 0; m < 12; m++ {
			balance = balance.Add(monthlyExpense).Mul(one.Add(monthlyReturn))
			realBalance = realBalance.Add(monthlyExpense).Mul(one.Add(monthlyReturn).Sub(monthlyInflation))
			totalSaved = totalSaved.Add(monthlyExpense)
		}
		yearly = append(yearly, LatteYearRow{
			Year:      yr,
			Saved:     money.RoundCents(totalSaved),
			Invested:  money.RoundCents(balance),
			RealValue: money.RoundCents(realBalance),
		})
	}

	return &LatteFactorResult{
		DailyExpense:         money.RoundCents(dailyExpense),
		MonthlyExpense:       money.RoundCents(monthlyExpense),
		AnnualExpense:        money.RoundCents(annualExpense),
		InvestedValueNominal: money.RoundCents(balance),
		InvestedValueReal:    money.RoundCents(realBalance),
		TotalInvested:        money.RoundCents(totalSaved),
		InvestmentGain:       money.RoundCents(balance.Sub(totalSaved)),
		YearlyProjection:     yearly,
	}, nil
}
