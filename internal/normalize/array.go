// Package normalize turns the heterogeneous payloads returned by the BaaS into
// predictable values: list envelopes, bilingual field names, image fields and
// availability flags.
package normalize

import (
	"bytes"
	"encoding/json"
)

// envelopeKeys are checked, in order, before any other array-valued property.
var envelopeKeys = []string{"data", "result", "items", "records"}

// Decode parses raw JSON keeping numbers as json.Number.
func Decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ExtractArray returns the list carried by a response body. A bare array is
// returned as is. For an object, the envelope keys are tried first and then
// the first array-valued property in document order. Anything else yields nil.
func ExtractArray(raw []byte) []any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	v, err := Decode(raw)
	if err != nil {
		return nil
	}
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		for _, k := range envelopeKeys {
			if arr, ok := t[k].([]any); ok {
				return arr
			}
		}
		for _, k := range objectKeys(raw) {
			if arr, ok := t[k].([]any); ok {
				return arr
			}
		}
	}
	return nil
}

// Records is ExtractArray restricted to object elements.
func Records(raw []byte) []Record {
	items := ExtractArray(raw)
	out := make([]Record, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Object decodes raw as a single record. Arrays yield their first object.
func Object(raw []byte) (Record, bool) {
	v, err := Decode(bytes.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	switch t := v.(type) {
	case map[string]any:
		return Record(t), true
	case []any:
		for _, it := range t {
			if m, ok := it.(map[string]any); ok {
				return Record(m), true
			}
		}
	}
	return nil, false
}

// objectKeys lists the top-level keys of a JSON object in document order.
func objectKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}
