package guardrails

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckRequest(t *testing.T) {
	msgs := json.RawMessage(`[{"role":"user","content":"Say hi."}]`)
	sys := json.RawMessage(`"You are terse."`)

	cases := []struct {
		name     string
		system   json.RawMessage
		messages json.RawMessage
		ok       bool
	}{
		{"valid", sys, msgs, true},
		{"system blocks", json.RawMessage(`[{"type":"text","text":"x"}]`), msgs, true},
		{"messages object", sys, json.RawMessage(`{}`), true},
		{"system absent", nil, msgs, false},
		{"system null", json.RawMessage(`null`), msgs, false},
		{"system empty", json.RawMessage(`""`), msgs, false},
		{"system false", json.RawMessage(`false`), msgs, false},
		{"system zero", json.RawMessage(`0`), msgs, false},
		{"system negative zero", json.RawMessage(`-0.0`), msgs, false},
		{"system overflowing number", json.RawMessage(`1e400`), msgs, true},
		{"system negative overflow", json.RawMessage(`-1e400`), msgs, true},
		{"messages absent", sys, nil, false},
		{"messages null", sys, json.RawMessage(`null`), false},
		{"messages empty", sys, json.RawMessage(` [ ] `), false},
		{"both absent", nil, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckRequest(tc.system, tc.messages)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMissingFields)
			}
		})
	}
}
