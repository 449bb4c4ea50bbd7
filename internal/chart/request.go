package chart

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/buger/jsonparser"
)

// Request is the loosely-typed chart request handed over by the agent layer.
// Values are numbers, strings, bools, nil, []any, Tuple or *Mapping.
type Request map[string]any

// Tuple is a fixed (label, value) pair inside a bar "data" sequence.
type Tuple []any

// Mapping is an insertion-ordered string-keyed mapping. Key order matters for
// bar "data" elements, where the first key names the label and the second the
// value.
type Mapping struct {
	keys   []string
	values map[string]any
}

// NewMapping builds a Mapping from alternating key/value arguments.
func NewMapping(kv ...any) *Mapping {
	m := &Mapping{values: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return m
}

// Set inserts or replaces key. Replacing keeps the original position.
func (m *Mapping) Set(key string, v any) *Mapping {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// Get returns the value for key.
func (m *Mapping) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *Mapping) Len() int { return len(m.keys) }

// asMapping accepts *Mapping and plain maps. Plain Go maps carry no order, so
// their keys are taken in sorted order.
func asMapping(v any) (*Mapping, bool) {
	switch m := v.(type) {
	case *Mapping:
		return m, m != nil
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := &Mapping{keys: keys, values: m}
		return out, true
	case Request:
		return asMapping(map[string]any(m))
	}
	return nil, false
}

func sameKeySet(a, b *Mapping) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.keys {
		if _, ok := b.values[k]; !ok {
			return false
		}
	}
	return true
}

// ParseRequest decodes a JSON object into a Request. Nested objects keep their
// key order; integral numbers decode to int64, the rest to float64.
func ParseRequest(data []byte) (Request, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, invalid(EmptyOrWrongShape, "chart_data", "chart_data must be a JSON object")
	}
	req := Request{}
	err := jsonparser.ObjectEach(data, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		v, err := decodeValue(value, dt)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		req[string(key)] = v
		return nil
	})
	if err != nil {
		return nil, invalid(EmptyOrWrongShape, "chart_data", "chart_data is not valid JSON: %v", err)
	}
	return req, nil
}

func decodeValue(value []byte, dt jsonparser.ValueType) (any, error) {
	switch dt {
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		if !bytes.ContainsAny(value, ".eE") {
			if n, err := jsonparser.ParseInt(value); err == nil {
				return n, nil
			}
		}
		return jsonparser.ParseFloat(value)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Array:
		return decodeArray(value)
	case jsonparser.Object:
		return decodeObject(value)
	}
	return nil, fmt.Errorf("unsupported JSON value %q", value)
}

func decodeArray(value []byte) ([]any, error) {
	out := []any{}
	var inner error
	_, err := jsonparser.ArrayEach(value, func(v []byte, dt jsonparser.ValueType, _ int, err error) {
		if inner != nil {
			return
		}
		if err != nil {
			inner = err
			return
		}
		d, err := decodeValue(v, dt)
		if err != nil {
			inner = err
			return
		}
		out = append(out, d)
	})
	if inner != nil {
		return nil, inner
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeObject(value []byte) (*Mapping, error) {
	m := &Mapping{values: map[string]any{}}
	err := jsonparser.ObjectEach(value, func(key, v []byte, dt jsonparser.ValueType, _ int) error {
		d, err := decodeValue(v, dt)
		if err != nil {
			return err
		}
		m.Set(string(key), d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
