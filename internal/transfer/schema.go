// Package transfer maps stored rows to and from their JSON wire form.
//
// Each entity is described by a Schema: an ordered list of fields, each
// knowing how to write its value from a row and how to parse, validate
// and assign its value into a row. The same list drives both directions.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Schema[T any] struct {
	Entity string
	Fields []Field[T]
}

// Encode writes every field of v as one JSON object, in schema order.
func (s Schema[T]) Encode(v *T) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.encode(v))
		if err != nil {
			return nil, fmt.Errorf("encode %s.%s: %w", s.Entity, f.Name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeAll encodes a list of rows; an empty list encodes as [].
func (s Schema[T]) EncodeAll(vs []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(vs))
	for i := range vs {
		obj, err := s.Encode(&vs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// Decode parses data and assigns every present field into v. Fields that
// are absent keep v's current value; with partial false, absent required
// fields are errors. All failures are returned in one *ValidationError.
func (s Schema[T]) Decode(data []byte, v *T, partial bool) error {
	verr := &ValidationError{Entity: s.Entity}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		verr.add(NonField, "Invalid data. Expected a dictionary.")
		return verr
	}

	known := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = true

		if f.ReadOnly {
			continue
		}

		value, present := raw[f.Name]
		if !present {
			if f.Required && !partial {
				verr.add(f.Name, msgRequired)
			}
			continue
		}

		if err := f.decode(value, v); err != nil {
			verr.add(f.Name, err.Error())
		}
	}

	for name := range raw {
		if !known[name] {
			verr.add(name, msgUnknown)
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
