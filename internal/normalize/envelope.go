// Package normalize turns loosely typed API JSON into the strict domain
// records used by the store and the screens. Every mapper is total: missing
// or mistyped fields become zero values instead of errors.
package normalize

import (
	"encoding/json"
	"errors"
)

// ErrMalformed marks a payload too broken to map, such as a dashboard with
// no stats object.
var ErrMalformed = errors.New("malformed payload")

// Envelope is the optional {message, data} wrapper around API payloads.
type Envelope struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Unwrap returns the value under "data" when v is a JSON object carrying
// that key, even if the value is null. Anything else is returned unchanged.
func Unwrap(v any) any {
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return v
	}
	if data, ok := obj["data"]; ok {
		return data
	}
	return v
}

// Message returns the envelope's server message, or "" when v carries none.
func Message(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	return str(obj["message"])
}

// Decode parses raw JSON into the generic form the mappers accept.
// Invalid JSON decodes to nil, which every mapper treats as empty.
func Decode(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
