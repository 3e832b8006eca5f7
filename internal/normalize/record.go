package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is a decoded BaaS object. Pickers take candidate keys in priority
// order and use the first one that is present and non-null.
type Record map[string]any

// AsRecord reports whether v is a JSON object.
func AsRecord(v any) (Record, bool) {
	m, ok := v.(map[string]any)
	return Record(m), ok
}

// Value returns the first present, non-null value among keys.
func (r Record) Value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any of keys holds a non-null value.
func (r Record) Has(keys ...string) bool {
	_, ok := r.Value(keys...)
	return ok
}

func (r Record) Str(keys ...string) string {
	v, _ := r.Value(keys...)
	return ToString(v)
}

// Int returns the first key that converts to an integer, or 0.
func (r Record) Int(keys ...string) int64 {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			if n, ok := ToInt(v); ok {
				return n
			}
		}
	}
	return 0
}

// Float returns the first key that converts to a number, or 0.
func (r Record) Float(keys ...string) float64 {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			if f, ok := ToFloat(v); ok {
				return f
			}
		}
	}
	return 0
}

// Bool returns def when no key is present, otherwise Truthy of the value.
func (r Record) Bool(def bool, keys ...string) bool {
	v, ok := r.Value(keys...)
	if !ok {
		return def
	}
	return Truthy(v)
}

// Sub returns the nested object under key, or nil.
func (r Record) Sub(key string) Record {
	m, _ := r[key].(map[string]any)
	return Record(m)
}

// ToString renders scalars as text. Objects and arrays yield "".
func ToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil && !math.IsNaN(f)
	}
	return 0, false
}

func ToInt(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
	case int:
		return int64(t), true
	case int64:
		return t, true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}
	if f, ok := ToFloat(v); ok {
		return int64(f), true
	}
	return 0, false
}

// Truthy accepts true, 1, "true" and "1".
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1"
	}
	if f, ok := ToFloat(v); ok {
		return f == 1
	}
	return false
}

// Lookup walks nested objects and arrays; array segments are indices.
func Lookup(v any, path ...string) (any, bool) {
	cur := v
	for _, seg := range path {
		switch t := cur.(type) {
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			cur = t[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// IsNumericID reports whether s is a positive integer id.
func IsNumericID(s string) bool {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil && n > 0
}
