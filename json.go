package querystr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

var _ json.Marshaler = Value{}
var _ json.Unmarshaler = (*Value)(nil)
var _ json.Marshaler = (*Object)(nil)
var _ json.Unmarshaler = (*Object)(nil)

// MarshalJSON writes undefined, null and non-finite numbers as JSON null
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case String:
		return json.Marshal(v.str)
	case Number:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(formatNumber(v.num)), nil
	case Boolean:
		return json.Marshal(v.b)
	case Array:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	return []byte("null"), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var a any
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	jv, err := valueFromJSON(a)
	if err == nil {
		*v = jv
	}
	return err
}

func valueFromJSON(a any) (Value, error) {
	switch at := a.(type) {
	case []any:
		elems := make([]Value, len(at))
		for i, e := range at {
			ev, err := valueFromJSON(e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return ArrayValue(elems...), nil
	case map[string]any:
		return Value{}, fmt.Errorf("nested objects are not supported")
	}
	return ValueOf(a)
}

// MarshalJSON writes the object with keys in insertion order - undefined values are omitted
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	o.Range(func(key string, v Value) bool {
		if v.IsUndefined() {
			return true
		}
		var kd, vd []byte
		if kd, err = json.Marshal(key); err != nil {
			return false
		}
		if vd, err = v.MarshalJSON(); err != nil {
			return false
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.Write(kd)
		buf.WriteByte(':')
		buf.Write(vd)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the document
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = *NewObject()
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("cannot unmarshal %v into object", tok)
	}
	result := NewObject()
	for dec.More() {
		if tok, err = dec.Token(); err != nil {
			return err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return err
		}
		var v Value
		if err = v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		result.Set(key, v)
	}
	if _, err = dec.Token(); err != nil {
		return err
	}
	*o = *result
	return nil
}
