package calculation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/request"
	"github.com/finwise/finance-calculators/pkg/money"
)

// TaxOptions carries the jurisdiction-specific knobs a tax calculation may
// use. Each TaxPolicy reads only the fields that apply to it.
type TaxOptions struct {
	FilingStatus string // US: single, mfj, hoh
	State        string // US: state key, "other" fallback
	Regime       string // India: "new" or "old"
	Presumptive  bool   // India freelance: section 44ADA scheme
}

// CapitalGainsInput describes a single asset disposal.
type CapitalGainsInput struct {
	Gain          decimal.Decimal
	AnnualIncome  decimal.Decimal
	HoldingMonths decimal.Decimal
	AssetType     string
	FilingStatus  string
}

// TakeHomeResult is the salary take-home breakdown. The breakdown keys vary
// by jurisdiction.
type TakeHomeResult struct {
	GrossAnnual       decimal.Decimal             `json:"gross_annual"`
	TotalTax          decimal.Decimal             `json:"total_tax"`
	EffectiveRate     decimal.Decimal             `json:"effective_rate"`
	MarginalRate      decimal.Decimal             `json:"marginal_rate"`
	TakeHomeAnnual    decimal.Decimal             `json:"take_home_annual"`
	Breakdown         map[string]decimal.Decimal  `json:"breakdown"`
	BracketsApplied   []domain.BracketApplication `json:"tax_brackets_applied"`
	TakeHomePerPeriod decimal.Decimal             `json:"take_home_per_period"`
}

// AdvanceTaxInstallment is one cumulative advance-tax due date (India).
type AdvanceTaxInstallment struct {
	Due    string          `json:"due"`
	Pct    int             `json:"pct"`
	Amount decimal.Decimal `json:"amount"`
}

// FreelanceResult is the self-employment tax estimate. Country-specific
// fields are nil for other jurisdictions.
type FreelanceResult struct {
	NetProfit          decimal.Decimal         `json:"net_profit"`
	TaxableIncome      decimal.Decimal         `json:"taxable_income"`
	IncomeTax          decimal.Decimal         `json:"income_tax"`
	SelfEmploymentTax  decimal.Decimal         `json:"self_employment_tax"`
	SETaxDeduction     *decimal.Decimal        `json:"se_tax_deduction,omitempty"`
	StateTax           *decimal.Decimal        `json:"state_tax,omitempty"`
	UKClass2NIC        *decimal.Decimal        `json:"uk_class2_nic,omitempty"`
	UKClass4NIC        *decimal.Decimal        `json:"uk_class4_nic,omitempty"`
	TotalTax           decimal.Decimal         `json:"total_tax"`
	EffectiveRate      decimal.Decimal         `json:"effective_rate"`
	TakeHome           decimal.Decimal         `json:"take_home"`
	QuarterlyEstimate  decimal.Decimal         `json:"quarterly_estimate"`
	QuarterlyDueDates  []string                `json:"quarterly_due_dates"`
	AdvanceTaxSchedule []AdvanceTaxInstallment `json:"india_advance_tax_schedule,omitempty"`
	PresumptiveUsed    *bool                   `json:"presumptive_scheme_used,omitempty"`
}

// CapitalGainsResult classifies a disposal and prices its tax.
type CapitalGainsResult struct {
	Gain           decimal.Decimal            `json:"gain"`
	IsLongTerm     bool                       `json:"is_long_term"`
	TaxRate        decimal.Decimal            `json:"tax_rate"`
	TaxOwed        decimal.Decimal            `json:"tax_owed"`
	NetProceeds    decimal.Decimal            `json:"net_proceeds"`
	Classification string                     `json:"classification"`
	RegimeNotes    string                     `json:"regime_notes"`
	Breakdown      map[string]decimal.Decimal `json:"breakdown"`
}

// TaxPolicy is one jurisdiction's complete tax treatment. Implementations
// are stateless views over the engine's policy set and are safe for
// concurrent use.
type TaxPolicy interface {
	// TakeHome computes annual take-home pay for employment income.
	TakeHome(gross decimal.Decimal, opt TaxOptions) *TakeHomeResult
	// Freelance estimates tax on self-employment income, including the
	// jurisdiction's prepayment schedule.
	Freelance(gross, expenses decimal.Decimal, opt TaxOptions) *FreelanceResult
	// CapitalGains classifies and taxes a single asset disposal.
	CapitalGains(in CapitalGainsInput) *CapitalGainsResult
}

// TakeHomePay handles the tax/take-home-pay request.
func (e *Engine) TakeHomePay(p request.Params) (*TakeHomeResult, error) {
	gross, err := p.Float("gross_income")
	if err != nil {
		return nil, err
	}
	country := strings.ToUpper(p.String("country", "US"))
	opt := TaxOptions{
		FilingStatus: strings.ToLower(p.String("filing_status", "single")),
		State:        p.String("state", "other"),
		Regime:       p.String("regime", "new"),
	}
	tp, err := e.taxPolicy(country)
	if err != nil {
		return nil, err
	}

	result := tp.TakeHome(gross, opt)

	divisor := decimal.NewFromInt(1)
	switch p.String("pay_frequency", "annual") {
	case "monthly":
		divisor = decimal.NewFromInt(12)
	case "biweekly":
		divisor = decimal.NewFromInt(26)
	}
	result.TakeHomePerPeriod = money.RoundCents(result.TakeHomeAnnual.Div(divisor))

	e.Logger.Debugf("take-home: country=%s gross=%s total_tax=%s", country, gross, result.TotalTax)
	return result, nil
}

// FreelanceTax handles the tax/freelance request.
func (e *Engine) FreelanceTax(p request.Params) (*FreelanceResult, error) {
	gross, err := p.Float("gross_revenue")
	if err != nil {
		return nil, err
	}
	expenses, err := p.FloatDefault("business_expenses", 0)
	if err != nil {
		return nil, err
	}
	country := strings.ToUpper(p.String("country", "US"))
	opt := TaxOptions{
		FilingStatus: strings.ToLower(p.String("filing_status", "single")),
		State:        p.String("state", "other"),
		Presumptive:  p.Bool("presumptive_scheme", false),
	}
	tp, err := e.taxPolicy(country)
	if err != nil {
		return nil, err
	}
	return tp.Freelance(gross, expenses, opt), nil
}

// CapitalGains handles the tax/capital-gains request.
func (e *Engine) CapitalGains(p request.Params) (*CapitalGainsResult, error) {
	purchase, err := p.Float("purchase_price")
	if err != nil {
		return nil, err
	}
	sale, err := p.Float("sale_price")
	if err != nil {
		return nil, err
	}
	holding, err := p.FloatDefault("holding_months", 13)
	if err != nil {
		return nil, err
	}
	income, err := p.FloatDefault("annual_income", 75000)
	if err != nil {
		return nil, err
	}
	country := strings.ToUpper(p.String("country", "US"))
	tp, err := e.taxPolicy(country)
	if err != nil {
		return nil, err
	}
	return tp.CapitalGains(CapitalGainsInput{
		Gain:          sale.Sub(purchase),
		AnnualIncome:  income,
		HoldingMonths: holding,
		AssetType:     p.String("asset_type", "equity"),
		FilingStatus:  strings.ToLower(p.String("filing_status", "single")),
	}), nil
}

func effectiveRatePct(totalTax, gross decimal.Decimal) decimal.Decimal {
	return money.RoundCents(money.RatioPct(totalTax, gross))
}
