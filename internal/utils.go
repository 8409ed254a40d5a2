package internal

import (
	"bytes"
	"encoding/json"
)

// contractMsg returns msg compacted, or {} when it is empty. Invalid JSON is
// passed through untouched for the contract to reject.
func contractMsg(msg json.RawMessage) []byte {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 {
		return []byte("{}")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return trimmed
	}
	return buf.Bytes()
}
