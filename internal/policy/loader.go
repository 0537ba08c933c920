package policy

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Tax tables change every fiscal year, so they can be overridden from a YAML
// file without rebuilding. Presets and CPI series are compiled in.
//
// Override file shape (all sections optional):
//
//	us:
//	  standard_deduction: {single: 15000, mfj: 30000, hoh: 22500}
//	  brackets:
//	    single:
//	      - {upper: 11925, rate: 0.10}
//	      - {rate: 0.37}          # no upper bound = top band
//	uk:
//	  personal_allowance: 12570
//	  brackets: [...]
//	india:
//	  new_regime:
//	    standard_deduction: 75000
//	    brackets: [...]
//	    rebate_87a_limit: 1200000
//	    cess_rate: 0.04

type bandFile struct {
	Upper *float64 `yaml:"upper"`
	Rate  float64  `yaml:"rate"`
}

type usFile struct {
	StandardDeduction map[string]float64    `yaml:"standard_deduction"`
	Brackets          map[string][]bandFile `yaml:"brackets"`
	StateTax          map[string]float64    `yaml:"state_tax"`
}

type ukFile struct {
	PersonalAllowance *float64   `yaml:"personal_allowance"`
	TaperStart        *float64   `yaml:"taper_start"`
	TaperEnd          *float64   `yaml:"taper_end"`
	Brackets          []bandFile `yaml:"brackets"`
}

type indiaRegimeFile struct {
	StandardDeduction *float64   `yaml:"standard_deduction"`
	Brackets          []bandFile `yaml:"brackets"`
	Rebate87ALimit    *float64   `yaml:"rebate_87a_limit"`
	CessRate          *float64   `yaml:"cess_rate"`
}

type indiaFile struct {
	NewRegime *indiaRegimeFile `yaml:"new_regime"`
	OldRegime *indiaRegimeFile `yaml:"old_regime"`
	Surcharge []bandFile       `yaml:"surcharge"`
}

type overrideFile struct {
	US    *usFile    `yaml:"us"`
	UK    *ukFile    `yaml:"uk"`
	India *indiaFile `yaml:"india"`
}

// Load returns the default policy set with overrides from the given YAML
// file applied. The merged set is validated before it is returned.
func Load(filename string) (*Set, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", filename, err)
	}

	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	set := Default()
	applyOverrides(set, &file)

	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}
	return set, nil
}

func applyOverrides(set *Set, file *overrideFile) {
	if file.US != nil {
		for status, v := range file.US.StandardDeduction {
			set.US.StandardDeduction[status] = decimal.NewFromFloat(v)
		}
		for status, bands := range file.US.Brackets {
			set.US.Brackets[status] = toTable(bands)
		}
		for state, v := range file.US.StateTax {
			set.US.StateTax[state] = decimal.NewFromFloat(v)
		}
	}
	if file.UK != nil {
		if file.UK.PersonalAllowance != nil {
			set.UK.PersonalAllowance = decimal.NewFromFloat(*file.UK.PersonalAllowance)
		}
		if file.UK.TaperStart != nil {
			set.UK.TaperStart = decimal.NewFromFloat(*file.UK.TaperStart)
		}
		if file.UK.TaperEnd != nil {
			set.UK.TaperEnd = decimal.NewFromFloat(*file.UK.TaperEnd)
		}
		if len(file.UK.Brackets) > 0 {
			set.UK.Brackets = toTable(file.UK.Brackets)
		}
	}
	if file.India != nil {
		applyIndiaRegime(&set.India.NewRegime, file.India.NewRegime)
		applyIndiaRegime(&set.India.OldRegime, file.India.OldRegime)
		if len(file.India.Surcharge) > 0 {
			set.India.Surcharge = toTable(file.India.Surcharge)
		}
	}
}

func applyIndiaRegime(regime *IndiaRegime, file *indiaRegimeFile) {
	if file == nil {
		return
	}
	if file.StandardDeduction != nil {
		regime.StandardDeduction = decimal.NewFromFloat(*file.StandardDeduction)
	}
	if len(file.Brackets) > 0 {
		regime.Brackets = toTable(file.Brackets)
	}
	if file.Rebate87ALimit != nil {
		regime.Rebate87ALimit = decimal.NewFromFloat(*file.Rebate87ALimit)
	}
	if file.CessRate != nil {
		regime.CessRate = decimal.NewFromFloat(*file.CessRate)
	}
}

func toTable(bands []bandFile) BracketTable {
	table := make(BracketTable, 0, len(bands))
	for _, b := range bands {
		band := Band{Rate: decimal.NewFromFloat(b.Rate)}
		if b.Upper == nil {
			band.Unbounded = true
		} else {
			band.Upper = decimal.NewFromFloat(*b.Upper)
		}
		table = append(table, band)
	}
	return table
}
