package calculation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/request"
	"github.com/finwise/finance-calculators/pkg/money"
)

// ExpenseCategory maps an expense field to its display label and bucket.
// Bucket is one of "need", "want", "saving", "debt".
type ExpenseCategory struct {
	Key    string
	Label  string
	Bucket string
}

// ExpenseMeta is the ordered expense catalogue the budget planner accepts.
var ExpenseMeta = []ExpenseCategory{
	{"housing_rent", "Rent / Mortgage", "need"},
	{"housing_hoa", "HOA / Strata Fees", "need"},
	{"housing_insurance", "Home / Renters Insurance", "need"},
	{"housing_maintenance", "Maintenance & Repairs", "need"},
	{"util_electricity", "Electricity", "need"},
	{"util_gas", "Gas / Heating", "need"},
	{"util_water", "Water / Sewage", "need"},
	{"util_internet", "Internet", "need"},
	{"util_phone", "Mobile Phone", "need"},
	{"trans_car_payment", "Car Payment / Lease", "need"},
	{"trans_fuel", "Fuel / Gas", "need"},
	{"trans_car_insurance", "Car Insurance", "need"},
	{"trans_maintenance", "Car Maintenance", "need"},
	{"trans_public", "Public Transport", "need"},
	{"trans_rideshare", "Ride-share / Taxi", "want"},
	{"trans_parking", "Parking / Tolls", "need"},
	{"food_groceries", "Groceries", "need"},
	{"food_dining", "Dining Out / Takeaway", "want"},
	{"food_work_lunch", "Work Lunches / Coffee", "want"},
	{"health_insurance", "Health Insurance", "need"},
	{"health_prescriptions", "Prescriptions / OTC", "need"},
	{"health_dental", "Dental / Vision", "need"},
	{"health_gym", "Gym / Fitness", "want"},
	{"health_therapy", "Therapy / Counselling", "need"},
	{"ins_life", "Life Insurance", "need"},
	{"ins_disability", "Disability Insurance", "need"},
	{"debt_student", "Student Loan Payment", "debt"},
	{"debt_credit_card", "Credit Card Payment", "debt"},
	{"debt_personal", "Personal Loan Payment", "debt"},
	{"debt_other", "Other Debt Payment", "debt"},
	{"sav_emergency", "Emergency Fund", "saving"},
	{"sav_retirement", "Retirement (401k/IRA)", "saving"},
	{"sav_investments", "Stocks / Index Funds", "saving"},
	{"sav_house", "House / Property Fund", "saving"},
	{"sav_education", "Education Fund (529)", "saving"},
	{"sav_other", "Other Savings Goal", "saving"},
	{"pers_clothing", "Clothing & Shoes", "want"},
	{"pers_grooming", "Hair / Personal Care", "want"},
	{"ent_streaming", "Streaming & Subscriptions", "want"},
	{"ent_hobbies", "Hobbies & Sports", "want"},
	{"ent_events", "Events / Concerts", "want"},
	{"ent_gaming", "Gaming", "want"},
	{"ent_books", "Books / Magazines", "want"},
	{"ent_travel", "Travel & Vacations", "want"},
	{"fam_childcare", "Childcare / Daycare", "need"},
	{"fam_school", "School / Tuition Fees", "need"},
	{"fam_allowance", "Children's Allowance", "want"},
	{"fam_pets", "Pets (food, vet, etc.)", "want"},
	{"give_charity", "Charity / Donations", "want"},
	{"give_gifts", "Gifts (birthdays, etc.)", "want"},
	{"edu_courses", "Online Courses / Training", "want"},
	{"other_misc", "Miscellaneous", "want"},
}

// IncomeSource maps an income field to its display label.
type IncomeSource struct {
	Key   string
	Label string
}

// IncomeSources lists the income fields the budget planner accepts.
var IncomeSources = []IncomeSource{
	{"inc_primary", "Primary Salary / Wages"},
	{"inc_secondary", "Secondary Job / Part-time"},
	{"inc_freelance", "Freelance / Self-employed"},
	{"inc_rental", "Rental Income"},
	{"inc_dividends", "Dividends / Interest"},
	{"inc_government", "Government Benefits"},
	{"inc_other", "Other Income"},
}

// Envelope is one cash envelope in the envelope method.
type Envelope struct {
	Name   string          `json:"name"`
	Bucket string          `json:"bucket"`
	Amount decimal.Decimal `json:"amount"`
}

// BudgetStep is one row of the reverse-budget waterfall.
type BudgetStep struct {
	Step   int             `json:"step"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// BudgetMethod is one budgeting method's view of the same income and
// expenses. Fields that a method does not use are omitted from its JSON.
type BudgetMethod struct {
	Name              string                     `json:"name"`
	Description       string                     `json:"description"`
	Targets           map[string]int             `json:"targets,omitempty"`
	Allocated         map[string]decimal.Decimal `json:"allocated,omitempty"`
	Actual            map[string]decimal.Decimal `json:"actual,omitempty"`
	Status            map[string]string          `json:"status,omitempty"`
	Unassigned        *decimal.Decimal           `json:"unassigned,omitempty"`
	TotalAssigned     *decimal.Decimal           `json:"total_assigned,omitempty"`
	CommittedPct      *decimal.Decimal           `json:"committed_pct,omitempty"`
	Envelopes         []Envelope                 `json:"envelopes,omitempty"`
	TotalEnvelopes    *decimal.Decimal           `json:"total_envelopes,omitempty"`
	Steps             []BudgetStep               `json:"steps,omitempty"`
	GuiltFreeSpending *decimal.Decimal           `json:"guilt_free_spending,omitempty"`
	SurplusAfter      decimal.Decimal            `json:"surplus_after"`
}

// BudgetMethods holds all six method analyses.
type BudgetMethods struct {
	Rule503020 BudgetMethod `json:"50_30_20"`
	Rule8020   BudgetMethod `json:"80_20"`
	ZeroBased  BudgetMethod `json:"zero_based"`
	Solution60 BudgetMethod `json:"60_solution"`
	Envelope   BudgetMethod `json:"envelope"`
	Reverse    BudgetMethod `json:"reverse"`
}

// BudgetHealth is the cross-method financial health summary.
type BudgetHealth struct {
	SavingsRatePct         decimal.Decimal  `json:"savings_rate_pct"`
	SavingsRateStatus      string           `json:"savings_rate_status"`
	HousingRatioPct        decimal.Decimal  `json:"housing_ratio_pct"`
	HousingRatioStatus     string           `json:"housing_ratio_status"`
	DebtToIncomePct        decimal.Decimal  `json:"debt_to_income_pct"`
	DTIStatus              string           `json:"dti_status"`
	EmergencyFundTarget3Mo decimal.Decimal  `json:"emergency_fund_target_3mo"`
	EmergencyFundTarget6Mo decimal.Decimal  `json:"emergency_fund_target_6mo"`
	FIRENumber             decimal.Decimal  `json:"fire_number"`
	YearsToFIRE            *decimal.Decimal `json:"years_to_fire"`
	MonthlySurplus         decimal.Decimal  `json:"monthly_surplus"`
	SurplusStatus          string           `json:"surplus_status"`
}

// ExpenseItem is one non-zero expense for the chart breakdown.
type ExpenseItem struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Bucket string          `json:"bucket"`
	Amount decimal.Decimal `json:"amount"`
}

// BudgetIncome summarizes income inputs.
type BudgetIncome struct {
	Total     decimal.Decimal            `json:"total"`
	Breakdown map[string]decimal.Decimal `json:"breakdown"`
}

// BudgetExpenses summarizes expense inputs by bucket.
type BudgetExpenses struct {
	Total     decimal.Decimal `json:"total"`
	Needs     decimal.Decimal `json:"needs"`
	Wants     decimal.Decimal `json:"wants"`
	Savings   decimal.Decimal `json:"savings"`
	Debt      decimal.Decimal `json:"debt"`
	Breakdown []ExpenseItem   `json:"breakdown"`
}

// BudgetResult is the full planner output.
type BudgetResult struct {
	Income         BudgetIncome    `json:"income"`
	Expenses       BudgetExpenses  `json:"expenses"`
	Methods        BudgetMethods   `json:"methods"`
	Health         BudgetHealth    `json:"health"`
	MonthlySurplus decimal.Decimal `json:"monthly_surplus"`
	AnnualSurplus  decimal.Decimal `json:"annual_surplus"`
}

// safeAmount reads a non-negative amount, treating absent or malformed
// values as zero the way the planner form does.
func safeAmount(p request.Params, key string) decimal.Decimal {
	d, err := p.FloatDefault(key, 0)
	if err != nil {
		return decimal.Zero
	}
	return money.ClampZero(d)
}

// methodStatus grades an actual percentage against its target with a ±2
// point tolerance. When higherOK is set, exceeding the target also counts
// as on track (savings targets).
func methodStatus(actualPct, targetPct decimal.Decimal, higherOK bool) string {
	diff := actualPct.Sub(targetPct)
	if diff.Abs().LessThanOrEqual(decimal.NewFromInt(2)) {
		return "on_track"
	}
	if higherOK {
		if diff.GreaterThanOrEqual(decimal.Zero) {
			return "on_track"
		}
		return "under"
	}
	if diff.GreaterThan(decimal.Zero) {
		return "over"
	}
	return "under"
}

// Budget handles the budget request: bucket totals, six budgeting method
// analyses, and the health indicators.
func (e *Engine) Budget(p request.Params) (*BudgetResult, error) {
	incomeBreakdown := make(map[string]decimal.Decimal)
	totalIncome := decimal.Zero
	for _, src := range IncomeSources {
		amt := safeAmount(p, src.Key)
		totalIncome = totalIncome.Add(amt)
		if amt.GreaterThan(decimal.Zero) {
			incomeBreakdown[src.Key] = money.RoundCents(amt)
		}
	}
	if totalIncome.LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("income", "total income must be greater than zero")
	}

	expenses := make(map[string]decimal.Decimal, len(ExpenseMeta))
	buckets := map[string]decimal.Decimal{"need": decimal.Zero, "want": decimal.Zero, "saving": decimal.Zero, "debt": decimal.Zero}
	totalExpenses := decimal.Zero
	for _, cat := range ExpenseMeta {
		amt := safeAmount(p, cat.Key)
		expenses[cat.Key] = amt
		buckets[cat.Bucket] = buckets[cat.Bucket].Add(amt)
		totalExpenses = totalExpenses.Add(amt)
	}

	needs := buckets["need"]
	wants := buckets["want"]
	savings := buckets["saving"]
	debt := buckets["debt"]
	needsAndDebt := needs.Add(debt)
	surplus := totalIncome.Sub(totalExpenses)

	savingsRate := money.RatioPct(savings, totalIncome)
	housingRatio := money.RatioPct(expenses["housing_rent"], totalIncome)
	dti := money.RatioPct(debt, totalIncome)
	needsPct := money.RatioPct(needsAndDebt, totalIncome)
	wantsPct := money.RatioPct(wants, totalIncome)
	everythingElsePct := money.RatioPct(needsAndDebt.Add(wants), totalIncome)

	pctOfIncome := func(f float64) decimal.Decimal {
		return money.RoundCents(totalIncome.Mul(decimal.NewFromFloat(f)))
	}
	surplusOut := money.RoundCents(surplus)

	methods := BudgetMethods{
		Rule503020: BudgetMethod{
			Name:        "50/30/20 Rule",
			Description: "50% needs, 30% wants, 20% savings. The most popular budgeting rule for building wealth while enjoying life.",
			Targets:     map[string]int{"needs": 50, "wants": 30, "savings": 20},
			Allocated: map[string]decimal.Decimal{
				"needs":   pctOfIncome(0.50),
				"wants":   pctOfIncome(0.30),
				"savings": pctOfIncome(0.20),
			},
			Actual: map[string]decimal.Decimal{
				"needs":   money.RoundCents(needsAndDebt),
				"wants":   money.RoundCents(wants),
				"savings": money.RoundCents(savings),
			},
			Status: map[string]string{
				"needs":   methodStatus(needsPct, decimal.NewFromInt(50), false),
				"wants":   methodStatus(wantsPct, decimal.NewFromInt(30), false),
				"savings": methodStatus(savingsRate, decimal.NewFromInt(20), true),
			},
			SurplusAfter: surplusOut,
		},
		Rule8020: BudgetMethod{
			Name:        "80/20 (Pay Yourself First)",
			Description: "Save 20% immediately when you're paid. Spend the remaining 80% on everything else with no further tracking needed.",
			Targets:     map[string]int{"savings": 20, "everything_else": 80},
			Allocated: map[string]decimal.Decimal{
				"savings":         pctOfIncome(0.20),
				"everything_else": pctOfIncome(0.80),
			},
			Actual: map[string]decimal.Decimal{
				"savings":         money.RoundCents(savings),
				"everything_else": money.RoundCents(needsAndDebt.Add(wants)),
			},
			Status: map[string]string{
				"savings":         methodStatus(savingsRate, decimal.NewFromInt(20), true),
				"everything_else": methodStatus(everythingElsePct, decimal.NewFromInt(80), false),
			},
			SurplusAfter: surplusOut,
		},
		ZeroBased: func() BudgetMethod {
			unassigned := surplusOut
			totalAssigned := money.RoundCents(totalExpenses)
			return BudgetMethod{
				Name:        "Zero-Based Budget (ZBB)",
				Description: "Every dollar of income is assigned a job. Income minus all allocations = $0. Maximum control and awareness.",
				Targets:     map[string]int{"assigned": 100, "unassigned": 0},
				Allocated: map[string]decimal.Decimal{
					"needs":   money.RoundCents(needsAndDebt),
					"wants":   money.RoundCents(wants),
					"savings": money.RoundCents(savings),
				},
				Unassigned:    &unassigned,
				TotalAssigned: &totalAssigned,
				SurplusAfter:  surplusOut,
			}
		}(),
		Solution60: func() BudgetMethod {
			committedPct := money.RoundTo(needsPct, 1)
			return BudgetMethod{
				Name:        "60% Solution",
				Description: "60% committed expenses (all must-pays), 10% retirement, 10% long-term savings, 10% short-term savings, 10% fun money.",
				Targets:     map[string]int{"committed": 60, "retirement": 10, "long_term": 10, "short_term": 10, "fun": 10},
				Allocated: map[string]decimal.Decimal{
					"committed":  pctOfIncome(0.60),
					"retirement": pctOfIncome(0.10),
					"long_term":  pctOfIncome(0.10),
					"short_term": pctOfIncome(0.10),
					"fun":        pctOfIncome(0.10),
				},
				Actual: map[string]decimal.Decimal{
					"committed": money.RoundCents(needsAndDebt),
					"savings":   money.RoundCents(savings),
					"fun":       money.RoundCents(wants),
				},
				CommittedPct: &committedPct,
				SurplusAfter: surplusOut,
			}
		}(),
		Envelope: func() BudgetMethod {
			var envelopes []Envelope
			for _, cat := range ExpenseMeta {
				if expenses[cat.Key].GreaterThan(decimal.Zero) {
					envelopes = append(envelopes, Envelope{
						Name:   cat.Label,
						Bucket: cat.Bucket,
						Amount: money.RoundCents(expenses[cat.Key]),
					})
				}
			}
			totalEnvelopes := money.RoundCents(totalExpenses)
			return BudgetMethod{
				Name:           "Envelope Method",
				Description:    "Assign cash to physical (or digital) envelopes per category. When the envelope is empty, spending stops. Zero overspending.",
				Envelopes:      envelopes,
				TotalEnvelopes: &totalEnvelopes,
				SurplusAfter:   surplusOut,
			}
		}(),
		Reverse: func() BudgetMethod {
			guiltFree := money.RoundCents(totalIncome.Sub(savings).Sub(needsAndDebt))
			return BudgetMethod{
				Name:        "Reverse Budget",
				Description: "Define your savings goals first, then pay bills, then spend whatever is left guilt-free. Goals are non-negotiable.",
				Steps: []BudgetStep{
					{Step: 1, Label: "Income", Amount: money.RoundCents(totalIncome)},
					{Step: 2, Label: "Minus Savings & Investments", Amount: money.RoundCents(savings).Neg()},
					{Step: 3, Label: "Minus Fixed Bills (Needs)", Amount: money.RoundCents(needsAndDebt).Neg()},
					{Step: 4, Label: "Guilt-Free Spending", Amount: guiltFree},
				},
				GuiltFreeSpending: &guiltFree,
				SurplusAfter:      surplusOut,
			}
		}(),
	}

	health := e.budgetHealth(savingsRate, housingRatio, dti, needsAndDebt, totalExpenses, savings, surplus)

	breakdown := make([]ExpenseItem, 0, len(ExpenseMeta))
	for _, cat := range ExpenseMeta {
		if expenses[cat.Key].GreaterThan(decimal.Zero) {
			breakdown = append(breakdown, ExpenseItem{
				Key:    cat.Key,
				Label:  cat.Label,
				Bucket: cat.Bucket,
				Amount: money.RoundCents(expenses[cat.Key]),
			})
		}
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})

	return &BudgetResult{
		Income: BudgetIncome{
			Total:     money.RoundCents(totalIncome),
			Breakdown: incomeBreakdown,
		},
		Expenses: BudgetExpenses{
			Total:     money.RoundCents(totalExpenses),
			Needs:     money.RoundCents(needs),
			Wants:     money.RoundCents(wants),
			Savings:   money.RoundCents(savings),
			Debt:      money.RoundCents(debt),
			Breakdown: breakdown,
		},
		Methods:        methods,
		Health:         health,
		MonthlySurplus: surplusOut,
		AnnualSurplus:  money.RoundCents(surplus.Mul(decimal.NewFromInt(12))),
	}, nil
}

func (e *Engine) budgetHealth(savingsRate, housingRatio, dti, needsAndDebt, totalExpenses, monthlySavings, surplus decimal.Decimal) BudgetHealth {
	savingsStatus := "low"
	switch {
	case savingsRate.GreaterThanOrEqual(decimal.NewFromInt(20)):
		savingsStatus = "excellent"
	case savingsRate.GreaterThanOrEqual(decimal.NewFromInt(10)):
		savingsStatus = "good"
	case savingsRate.GreaterThanOrEqual(decimal.NewFromInt(5)):
		savingsStatus = "fair"
	}
	housingStatus := "high"
	switch {
	case housingRatio.LessThanOrEqual(decimal.NewFromInt(28)):
		housingStatus = "good"
	case housingRatio.LessThanOrEqual(decimal.NewFromInt(36)):
		housingStatus = "caution"
	}
	dtiStatus := "high"
	switch {
	case dti.LessThanOrEqual(decimal.NewFromInt(15)):
		dtiStatus = "good"
	case dti.LessThanOrEqual(decimal.NewFromInt(36)):
		dtiStatus = "caution"
	}
	surplusStatus := "deficit"
	switch {
	case surplus.GreaterThan(decimal.Zero):
		surplusStatus = "surplus"
	case surplus.IsZero():
		surplusStatus = "balanced"
	}

	// FIRE number: 25x annual expenses.
	fireNumber := money.RoundCents(totalExpenses.Mul(decimal.NewFromInt(12)).Mul(decimal.NewFromInt(25)))

	// Years to reach the FIRE number at the current monthly savings and a 7%
	// return, from the future-value annuity formula solved for n (needs
	// logarithms, so float64).
	var yearsToFIRE *decimal.Decimal
	if monthlySavings.GreaterThan(decimal.Zero) {
		r := 0.07 / 12
		fv := fireNumber.InexactFloat64()
		pmt := monthlySavings.InexactFloat64()
		n := math.Log(1+fv*r/pmt) / math.Log(1+r)
		if !math.IsNaN(n) && !math.IsInf(n, 0) {
			y := decimal.NewFromFloat(n / 12).Round(1)
			yearsToFIRE = &y
		}
	}

	return BudgetHealth{
		SavingsRatePct:         money.RoundTo(savingsRate, 1),
		SavingsRateStatus:      savingsStatus,
		HousingRatioPct:        money.RoundTo(housingRatio, 1),
		HousingRatioStatus:     housingStatus,
		DebtToIncomePct:        money.RoundTo(dti, 1),
		DTIStatus:              dtiStatus,
		EmergencyFundTarget3Mo: money.RoundCents(needsAndDebt.Mul(decimal.NewFromInt(3))),
		EmergencyFundTarget6Mo: money.RoundCents(needsAndDebt.Mul(decimal.NewFromInt(6))),
		FIRENumber:             fireNumber,
		YearsToFIRE:            yearsToFIRE,
		MonthlySurplus:         money.RoundCents(surplus),
		SurplusStatus:          surplusStatus,
	}
}
