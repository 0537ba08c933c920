// Package policy holds the jurisdiction parameter sets that drive the
// calculators: tax brackets, deductions, payroll-tax rates, capital-gains
// regimes, CPI series, and loan-rate presets. A Set is built once at startup
// and is read-only afterwards; concurrent reads are safe.
package policy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Band is one progressive bracket: amounts up to Upper are taxed at Rate.
// The final band of every table is unbounded.
type Band struct {
	Upper     decimal.Decimal
	Unbounded bool
	Rate      decimal.Decimal
}

// BracketTable is an ordered sequence of bands partitioning [0, inf) with no
// gaps or overlaps.
type BracketTable []Band

// UpTo builds a bounded band.
func UpTo(upper int64, rate float64) Band {
	return Band{Upper: decimal.NewFromInt(upper), Rate: decimal.NewFromFloat(rate)}
}

// Top builds the unbounded final band.
func Top(rate float64) Band {
	return Band{Unbounded: true, Rate: decimal.NewFromFloat(rate)}
}

// Validate checks ordering and that exactly the last band is unbounded.
func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("bracket table is empty")
	}
	prev := decimal.Zero
	for i, b := range t {
		last := i == len(t)-1
		if b.Unbounded != last {
			if b.Unbounded {
				return fmt.Errorf("band %d is unbounded but not last", i)
			}
			return fmt.Errorf("final band must be unbounded")
		}
		if !last {
			if b.Upper.LessThanOrEqual(prev) {
				return fmt.Errorf("band %d upper bound %s does not increase", i, b.Upper)
			}
			prev = b.Upper
		}
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("band %d rate %s outside [0, 1]", i, b.Rate)
		}
	}
	return nil
}

// FICA holds US payroll-tax parameters.
type FICA struct {
	SSRate                      decimal.Decimal
	SSWageBase                  decimal.Decimal
	MedicareRate                decimal.Decimal
	AdditionalMedicareRate      decimal.Decimal
	AdditionalMedicareThreshold map[string]decimal.Decimal // by filing status
}

// USPolicy bundles the US federal and simplified state rules.
type USPolicy struct {
	StandardDeduction map[string]decimal.Decimal
	Brackets          map[string]BracketTable
	FICA              FICA
	StateTax          map[string]decimal.Decimal // flat effective rates, "other" fallback
	LTCGBrackets      map[string]BracketTable
	NIITRate          decimal.Decimal
	NIITThreshold     map[string]decimal.Decimal
	LTCGHoldingMonths int
}

// UKNIEmployee holds employee National Insurance bands.
type UKNIEmployee struct {
	LowerEarningsLimit decimal.Decimal
	UpperEarningsLimit decimal.Decimal
	RateMain           decimal.Decimal
	RateUpper          decimal.Decimal
}

// UKNISelfEmployed holds Class 2 and Class 4 NI parameters.
type UKNISelfEmployed struct {
	Class2Annual    decimal.Decimal
	Class4Lower     decimal.Decimal
	Class4Upper     decimal.Decimal
	Class4RateMain  decimal.Decimal
	Class4RateUpper decimal.Decimal
}

// UKCGT holds UK capital-gains parameters.
type UKCGT struct {
	AnnualExempt        decimal.Decimal
	BasicRate           decimal.Decimal
	HigherRate          decimal.Decimal
	HigherRateThreshold decimal.Decimal
}

// UKPolicy bundles UK income tax, NI, and CGT rules.
type UKPolicy struct {
	PersonalAllowance decimal.Decimal
	TaperStart        decimal.Decimal
	TaperEnd          decimal.Decimal
	Brackets          BracketTable
	NIEmployee        UKNIEmployee
	NISelfEmployed    UKNISelfEmployed
	CGT               UKCGT
}

// IndiaRegime is one of the two Indian income-tax regimes.
type IndiaRegime struct {
	StandardDeduction decimal.Decimal
	Brackets          BracketTable
	Rebate87ALimit    decimal.Decimal
	CessRate          decimal.Decimal
}

// IndiaCGT holds Indian capital-gains parameters per asset class.
type IndiaCGT struct {
	EquityLTCGRate        decimal.Decimal
	EquityLTCGExemption   decimal.Decimal
	EquitySTCGRate        decimal.Decimal
	PropertyLTCGRate      decimal.Decimal
	OtherLTCGRate         decimal.Decimal
	EquityHoldingMonths   int
	PropertyHoldingMonths int
}

// IndiaPolicy bundles both regimes, the surcharge slabs (a rate on tax,
// slabbed by income), and CGT rules.
type IndiaPolicy struct {
	NewRegime IndiaRegime
	OldRegime IndiaRegime
	Surcharge BracketTable
	CGT       IndiaCGT
}

// MortgageRate is a per-country preset pair.
type MortgageRate struct {
	Rate30Year decimal.Decimal `json:"30yr"`
	Rate15Year decimal.Decimal `json:"15yr"`
	Label      string          `json:"label"`
}

// APRTier maps a credit-score range to a personal-loan APR range.
type APRTier struct {
	MinScore int
	MaxScore int
	APRLow   decimal.Decimal
	APRHigh  decimal.Decimal
}

// ScoreTier labels a credit-score threshold; tiers are ordered descending.
type ScoreTier struct {
	MinScore int
	Label    string
}

// CPISeries is an annual consumer-price index with its available year range.
type CPISeries struct {
	MinYear int
	MaxYear int
	Index   map[int]decimal.Decimal
}

// InvestmentPresets holds the contribution limits and default assumptions
// used by the investment calculators.
type InvestmentPresets struct {
	Employee401kLimit       decimal.Decimal
	FIRESafeWithdrawalRate  decimal.Decimal
	DefaultInflation        decimal.Decimal
	DefaultInvestmentReturn decimal.Decimal
}

// Set is the full, immutable policy configuration shared by all requests.
type Set struct {
	US               USPolicy
	UK               UKPolicy
	India            IndiaPolicy
	MortgageRates    map[string]MortgageRate
	StudentLoanRates map[string]decimal.Decimal
	CreditCardAvgAPR decimal.Decimal
	PersonalLoanAPR  []APRTier
	CreditScoreTiers []ScoreTier
	Investment       InvestmentPresets
	CPI              map[string]CPISeries
}

// Validate checks every bracket table in the set.
func (s *Set) Validate() error {
	for status, table := range s.US.Brackets {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("us brackets %s: %w", status, err)
		}
	}
	for status, table := range s.US.LTCGBrackets {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("us ltcg brackets %s: %w", status, err)
		}
	}
	if err := s.UK.Brackets.Validate(); err != nil {
		return fmt.Errorf("uk brackets: %w", err)
	}
	if err := s.India.NewRegime.Brackets.Validate(); err != nil {
		return fmt.Errorf("india new regime brackets: %w", err)
	}
	if err := s.India.OldRegime.Brackets.Validate(); err != nil {
		return fmt.Errorf("india old regime brackets: %w", err)
	}
	if err := s.India.Surcharge.Validate(); err != nil {
		return fmt.Errorf("india surcharge slabs: %w", err)
	}
	return nil
}
