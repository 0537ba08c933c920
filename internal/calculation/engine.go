package calculation

import (
	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/policy"
	"github.com/finwise/finance-calculators/internal/request"
)

// Caps bounds every iterative simulation so that termination is guaranteed
// regardless of input. Hitting a cap is surfaced as a distinct outcome, never
// a silent truncation.
type Caps struct {
	// PayoffMaxMonths bounds the debt payoff simulation (safety valve for
	// payments below monthly interest).
	PayoffMaxMonths int
	// GoalSeekMaxYears bounds goal-seeking projections such as FIRE.
	GoalSeekMaxYears int
	// ScheduleMaxRows limits how many monthly rows are returned to callers.
	ScheduleMaxRows int
	// ComparisonMaxYears limits the rent-vs-buy horizon.
	ComparisonMaxYears int
}

// DefaultCaps returns the caps used by the original calculators.
func DefaultCaps() Caps {
	return Caps{
		PayoffMaxMonths:    600,
		GoalSeekMaxYears:   70,
		ScheduleMaxRows:    360,
		ComparisonMaxYears: 30,
	}
}

// Engine evaluates calculator requests against a shared read-only policy
// set. Every calculation is pure with respect to its inputs; an Engine may
// serve arbitrarily many concurrent requests.
type Engine struct {
	Policies *policy.Set
	Caps     Caps
	Logger   Logger

	taxPolicies map[string]TaxPolicy
}

// NewEngine creates an engine with the compiled-in policy defaults.
func NewEngine() *Engine {
	return NewEngineWithPolicies(policy.Default())
}

// NewEngineWithPolicies creates an engine around an already-loaded policy set.
func NewEngineWithPolicies(ps *policy.Set) *Engine {
	e := &Engine{
		Policies: ps,
		Caps:     DefaultCaps(),
		Logger:   NopLogger{},
	}
	e.taxPolicies = map[string]TaxPolicy{
		"US": &usTaxPolicy{us: &ps.US},
		"UK": &ukTaxPolicy{uk: &ps.UK},
		"IN": &indiaTaxPolicy{in: &ps.India},
	}
	return e
}

// SetLogger sets the engine logger. A nil logger restores the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// taxPolicy resolves a jurisdiction key to its TaxPolicy.
func (e *Engine) taxPolicy(country string) (TaxPolicy, error) {
	tp, ok := e.taxPolicies[country]
	if !ok {
		return nil, &domain.UnsupportedOptionError{Option: "country", Value: country, Supported: []string{"US", "UK", "IN"}}
	}
	return tp, nil
}

// Calculators lists the request names the engine dispatches on. The names
// mirror the calculator API paths and are part of the caller contract.
func Calculators() []string {
	return []string{
		"mortgage/repayment",
		"mortgage/rent-vs-buy",
		"mortgage/refinance",
		"mortgage/affordability",
		"investment/compound-interest",
		"investment/401k-pension",
		"investment/sip",
		"investment/fire",
		"debt/student-loan",
		"debt/credit-card",
		"debt/auto-loan",
		"debt/personal-loan",
		"tax/take-home-pay",
		"tax/freelance",
		"tax/capital-gains",
		"specialized/inflation",
		"specialized/rule-of-72",
		"specialized/latte-factor",
		"budget",
	}
}

// Calculate dispatches a named calculator request.
func (e *Engine) Calculate(name string, p request.Params) (any, error) {
	switch name {
	case "mortgage/repayment":
		return e.MortgageRepayment(p)
	case "mortgage/rent-vs-buy":
		return e.RentVsBuy(p)
	case "mortgage/refinance":
		return e.Refinance(p)
	case "mortgage/affordability":
		return e.Affordability(p)
	case "investment/compound-interest":
		return e.CompoundInterest(p)
	case "investment/401k-pension":
		return e.PensionPlan(p)
	case "investment/sip":
		return e.SIP(p)
	case "investment/fire":
		return e.FIRE(p)
	case "debt/student-loan":
		return e.StudentLoanRefinance(p)
	case "debt/credit-card":
		return e.CreditCardPayoff(p)
	case "debt/auto-loan":
		return e.AutoLoanVsLease(p)
	case "debt/personal-loan":
		return e.PersonalLoanEligibility(p)
	case "tax/take-home-pay":
		return e.TakeHomePay(p)
	case "tax/freelance":
		return e.FreelanceTax(p)
	case "tax/capital-gains":
		return e.CapitalGains(p)
	case "specialized/inflation":
		return e.Inflation(p)
	case "specialized/rule-of-72":
		return e.RuleOf72(p)
	case "specialized/latte-factor":
		return e.LatteFactor(p)
	case "budget":
		return e.Budget(p)
	default:
		return nil, &domain.UnsupportedOptionError{Option: "calculator", Value: name, Supported: Calculators()}
	}
}
