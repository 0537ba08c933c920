package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSetValidates(t *testing.T) {
	set := Default()
	require.NoError(t, set.Validate())
}

func TestBracketTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   BracketTable
		wantErr string
	}{
		{
			name:  "valid",
			table: BracketTable{UpTo(100, 0.1), UpTo(200, 0.2), Top(0.3)},
		},
		{
			name:    "empty",
			table:   BracketTable{},
			wantErr: "empty",
		},
		{
			name:    "non-increasing bounds",
			table:   BracketTable{UpTo(200, 0.1), UpTo(100, 0.2), Top(0.3)},
			wantErr: "does not increase",
		},
		{
			name:    "missing top band",
			table:   BracketTable{UpTo(100, 0.1), UpTo(200, 0.2)},
			wantErr: "final band must be unbounded",
		},
		{
			name:    "unbounded band in the middle",
			table:   BracketTable{Top(0.1), UpTo(100, 0.2), Top(0.3)},
			wantErr: "unbounded but not last",
		},
		{
			name:    "rate above 100%",
			table:   BracketTable{UpTo(100, 1.5), Top(0.3)},
			wantErr: "outside [0, 1]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDefaultValues(t *testing.T) {
	set := Default()

	assert.True(t, set.US.StandardDeduction["single"].Equal(decimal.NewFromInt(15000)))
	assert.Len(t, set.US.Brackets["single"], 7)
	assert.True(t, set.US.Brackets["single"][6].Unbounded)
	assert.True(t, set.UK.PersonalAllowance.Equal(decimal.NewFromInt(12570)))
	assert.True(t, set.India.NewRegime.Brackets[0].Rate.IsZero(), "India new regime starts with a 0%% band")
	assert.Equal(t, 1913, set.CPI["US"].MinYear)
	assert.Equal(t, 2024, set.CPI["US"].MaxYear)
	assert.True(t, set.MortgageRates["US"].Rate30Year.Equal(decimal.NewFromFloat(6.7)))
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := `
us:
  standard_deduction:
    single: 16000
uk:
  personal_allowance: 13000
india:
  new_regime:
    cess_rate: 0.05
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	set, err := Load(path)
	require.NoError(t, err)
	assert.True(t, set.US.StandardDeduction["single"].Equal(decimal.NewFromInt(16000)))
	assert.True(t, set.US.StandardDeduction["mfj"].Equal(decimal.NewFromInt(30000)), "untouched values stay at defaults")
	assert.True(t, set.UK.PersonalAllowance.Equal(decimal.NewFromInt(13000)))
	assert.True(t, set.India.NewRegime.CessRate.Equal(decimal.NewFromFloat(0.05)))
}

func TestLoadRejectsBadBrackets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := `
uk:
  brackets:
    - {upper: 50000, rate: 0.20}
    - {upper: 40000, rate: 0.40}
    - {rate: 0.45}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not increase")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	require.Error(t, err)
}
