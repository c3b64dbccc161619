package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// truthy follows the API's loose notion of "set": null, false, 0, NaN and
// the empty string all count as unset.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

func num(v any) int64 {
	if !truthy(v) {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return finite(t)
	case string:
		// Decimal only: a leading zero is not octal and "1_000" is not a number.
		f, err := cast.ToFloat64E(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return finite(f)
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0
	}
	return n
}

func finite(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}

func str(v any) string {
	if !truthy(v) {
		return ""
	}
	switch v.(type) {
	case map[string]any, []any:
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// boolean is plain truthiness: any non-empty string, including "false",
// counts as true.
func boolean(v any) bool {
	return truthy(v)
}

// optionalStr keeps "unset" distinguishable from the empty string.
func optionalStr(v any) *string {
	s := str(v)
	if s == "" {
		return nil
	}
	return &s
}

// object returns v as a JSON object. Non-objects yield an empty map so
// nested lookups fall through to defaults.
func object(v any) map[string]any {
	if obj, ok := v.(map[string]any); ok && obj != nil {
		return obj
	}
	return map[string]any{}
}

// array returns v as a JSON array, or nil when v is not one.
func array(v any) []any {
	arr, _ := v.([]any)
	return arr
}

// list reads obj[key] as a dashboard list. Absent and null mean empty;
// any other non-array value is malformed.
func list(obj map[string]any, key string) ([]any, error) {
	switch t := obj[key].(type) {
	case nil:
		return nil, nil
	case []any:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T, not an array", ErrMalformed, key, t)
	}
}
