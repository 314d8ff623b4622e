package guardrails

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrMissingFields = errors.New("system and messages are required")

// CheckRequest reports ErrMissingFields unless both system and messages
// carry a truthy value. Shape is not inspected beyond that.
func CheckRequest(system, messages json.RawMessage) error {
	if !truthy(system) || !truthy(messages) {
		return ErrMissingFields
	}
	return nil
}

// truthy treats absent, null, false, zero, "" and [] as empty.
// Numbers beyond float64 range count as infinite, hence truthy.
func truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return false
	}
	switch v[0] {
	case 'n', 'f':
		return false
	case '"':
		var s string
		return json.Unmarshal(v, &s) == nil && s != ""
	case '[':
		var items []json.RawMessage
		return json.Unmarshal(v, &items) == nil && len(items) > 0
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n float64
		if err := json.Unmarshal(v, &n); err != nil {
			// out of float64 range, i.e. ±Inf
			return true
		}
		return n != 0
	}
	return true
}
