package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports a missing, non-numeric, or out-of-range request
// field. Callers should surface it as a client error, not a system fault.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UnsupportedOptionError reports an enumerated value (country, region, asset
// type) that is not recognized by the policy tables.
type UnsupportedOptionError struct {
	Option    string
	Value     string
	Supported []string
}

func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("%s must be one of %s, got %q", e.Option, strings.Join(e.Supported, ", "), e.Value)
}

// NonConvergenceError reports an iterative simulation that hit its iteration
// cap without reaching its termination condition. It is distinct from a
// normal zero/empty result: the inputs do not amortize.
type NonConvergenceError struct {
	Simulation string
	Cap        int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge within %d iterations", e.Simulation, e.Cap)
}
