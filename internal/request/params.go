// Package request implements the named-scalar input contract between the
// calculation engine and its callers. A request is a flat mapping of field
// names to numbers, strings, or booleans; accessors coerce and validate,
// returning a ValidationError that identifies the offending field.
package request

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finwise/finance-calculators/internal/domain"
)

// Params holds the raw request fields.
type Params map[string]any

// Has reports whether the field was supplied at all.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func coerceFloat(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// Float returns a required numeric field.
func (p Params) Float(key string) (decimal.Decimal, error) {
	v, ok := p[key]
	if !ok {
		return decimal.Decimal{}, domain.NewValidationError(key, "is required and must be a number")
	}
	d, ok := coerceFloat(v)
	if !ok {
		return decimal.Decimal{}, domain.NewValidationError(key, "is required and must be a number")
	}
	return d, nil
}

// FloatDefault returns a numeric field, falling back to def when absent.
// A present but non-numeric value is still a validation error.
func (p Params) FloatDefault(key string, def float64) (decimal.Decimal, error) {
	v, ok := p[key]
	if !ok {
		return decimal.NewFromFloat(def), nil
	}
	d, ok := coerceFloat(v)
	if !ok {
		return decimal.Decimal{}, domain.NewValidationError(key, "must be a number")
	}
	return d, nil
}

// FloatRange returns a required numeric field constrained to [min, max].
func (p Params) FloatRange(key string, min, max float64) (decimal.Decimal, error) {
	d, err := p.Float(key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.LessThan(decimal.NewFromFloat(min)) || d.GreaterThan(decimal.NewFromFloat(max)) {
		return decimal.Decimal{}, domain.NewValidationError(key,
			fmt.Sprintf("must be between %s and %s", strconv.FormatFloat(min, 'f', -1, 64), strconv.FormatFloat(max, 'f', -1, 64)))
	}
	return d, nil
}

// Int returns a required integer field. Fractional values are truncated the
// way the original calculators truncate term years.
func (p Params) Int(key string) (int, error) {
	d, err := p.Float(key)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}

// IntDefault returns an integer field, falling back to def when absent.
func (p Params) IntDefault(key string, def int) (int, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Int(key)
}

// String returns a string field, falling back to def when absent or empty.
func (p Params) String(key, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

// Bool returns a boolean field, falling back to def when absent.
func (p Params) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}
