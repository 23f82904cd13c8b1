package shared

import "encoding/json"

// MarshalJSON encodes v, optionally indented for human-facing output.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
