// Package output renders calculator results for callers: a stable ok/data
// envelope serialized as JSON, with decimals emitted as bare numbers.
package output

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts serialize as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Envelope is the uniform response wrapper. Exactly one of Data and Error is
// populated.
type Envelope struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Success wraps a calculator result.
func Success(data any) Envelope {
	return Envelope{OK: true, Data: data}
}

// Failure wraps an error message.
func Failure(err error) Envelope {
	return Envelope{OK: false, Error: err.Error()}
}

// Marshal serializes an envelope as pretty-printed JSON.
func Marshal(env Envelope) ([]byte, error) {
	return json.MarshalIndent(env, "", "  ")
}
