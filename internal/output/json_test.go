package output

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	env := Success(map[string]decimal.Decimal{"payment": decimal.NewFromFloat(1935.85)})
	data, err := Marshal(env)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"ok": true`)
	// Decimals serialize as bare JSON numbers.
	assert.Contains(t, text, `"payment": 1935.85`)
	assert.NotContains(t, text, `"1935.85"`)
	assert.NotContains(t, text, `"error"`)
}

func TestFailureEnvelope(t *testing.T) {
	env := Failure(errors.New("principal: must be between 1000 and 100000000"))
	data, err := Marshal(env)
	require.NoError(t, err)

	var parsed struct {
		OK    bool            `json:"ok"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.False(t, parsed.OK)
	assert.Nil(t, parsed.Data)
	assert.Contains(t, parsed.Error, "principal")
}

func TestMarshalIndents(t *testing.T) {
	data, err := Marshal(Success("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  "))
}
