package querystr

import (
	"fmt"
	"github.com/shopspring/decimal"
	"math"
	"reflect"
	"strings"
)

// Kind is the kind of value held by a Value
type Kind int

const (
	Undefined Kind = iota
	Null
	String
	Number
	Boolean
	Array
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Array:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a single query value - one of undefined (absent), null, string, number, boolean
// or an array of scalars
//
// the zero Value is undefined
type Value struct {
	kind  Kind
	str   string
	num   float64
	b     bool
	elems []Value
}

// UndefinedValue returns the absent marker value
func UndefinedValue() Value {
	return Value{}
}

func NullValue() Value {
	return Value{kind: Null}
}

func StringValue(s string) Value {
	return Value{kind: String, str: s}
}

func NumberValue(n float64) Value {
	return Value{kind: Number, num: n}
}

func BoolValue(b bool) Value {
	return Value{kind: Boolean, b: b}
}

// ArrayValue returns an array value of the supplied elements
//
// arrays are never nested - any element that is itself an array is flattened into the result
func ArrayValue(elems ...Value) Value {
	result := make([]Value, 0, len(elems))
	for _, e := range elems {
		if e.kind == Array {
			result = append(result, e.elems...)
		} else {
			result = append(result, e)
		}
	}
	return Value{kind: Array, elems: result}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsUndefined() bool {
	return v.kind == Undefined
}

func (v Value) IsNull() bool {
	return v.kind == Null
}

// IsNullish reports whether the value is null, undefined or a value whose string form is empty or whitespace only
func (v Value) IsNullish() bool {
	return v.kind == Undefined || v.kind == Null || v.isBlank()
}

func (v Value) isBlank() bool {
	return trimSpace(v.String()) == ""
}

// Str returns the string of a String value (or "" for any other kind)
func (v Value) Str() string {
	return v.str
}

// Num returns the number of a Number value (or 0 for any other kind)
func (v Value) Num() float64 {
	return v.num
}

// Bool returns the boolean of a Boolean value (or false for any other kind)
func (v Value) Bool() bool {
	return v.b
}

// Elements returns a copy of the elements of an Array value (or nil for any other kind)
func (v Value) Elements() []Value {
	if v.kind != Array {
		return nil
	}
	result := make([]Value, len(v.elems))
	copy(result, v.elems)
	return result
}

// Len returns the number of elements of an Array value, 1 for any other defined value and 0 for undefined
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.elems)
	case Undefined:
		return 0
	}
	return 1
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case String:
		return v.str == other.str
	case Number:
		return v.num == other.num || (math.IsNaN(v.num) && math.IsNaN(other.num))
	case Boolean:
		return v.b == other.b
	case Array:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i, e := range v.elems {
			if !e.Equal(other.elems[i]) {
				return false
			}
		}
	}
	return true
}

// String returns the default string form of the value
//
// numbers use the shortest form that round-trips, arrays are joined with ","
func (v Value) String() string {
	switch v.kind {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case String:
		return v.str
	case Number:
		return formatNumber(v.num)
	case Boolean:
		if v.b {
			return "true"
		}
		return "false"
	}
	parts := make([]string, len(v.elems))
	for i, e := range v.elems {
		// undefined and null elements join as empty
		if e.kind != Undefined && e.kind != Null {
			parts[i] = e.String()
		}
	}
	return strings.Join(parts, ",")
}

// Any returns the value as a plain Go value (nil, string, float64, bool or []any)
func (v Value) Any() any {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return v.num
	case Boolean:
		return v.b
	case Array:
		result := make([]any, len(v.elems))
		for i, e := range v.elems {
			result[i] = e.Any()
		}
		return result
	}
	return nil
}

// ValueOf converts a plain Go value to a Value
//
// supported are nil, Value, strings, bools, all int/uint/float types, decimal.Decimal,
// slices/arrays of any of those, pointers to any of those and fmt.Stringer
func ValueOf(v any) (Value, error) {
	switch vt := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return vt, nil
	case string:
		return StringValue(vt), nil
	case []byte:
		return StringValue(string(vt)), nil
	case bool:
		return BoolValue(vt), nil
	case int:
		return NumberValue(float64(vt)), nil
	case int64:
		return NumberValue(float64(vt)), nil
	case float64:
		return NumberValue(vt), nil
	case decimal.Decimal:
		f, _ := vt.Float64()
		return NumberValue(f), nil
	case *decimal.Decimal:
		if vt == nil {
			return NullValue(), nil
		}
		f, _ := vt.Float64()
		return NumberValue(f), nil
	case decimal.NullDecimal:
		if !vt.Valid {
			return NullValue(), nil
		}
		f, _ := vt.Decimal.Float64()
		return NumberValue(f), nil
	case []string:
		elems := make([]Value, len(vt))
		for i, s := range vt {
			elems[i] = StringValue(s)
		}
		return ArrayValue(elems...), nil
	case fmt.Stringer:
		return StringValue(vt.String()), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return StringValue(rv.String()), nil
	case reflect.Bool:
		return BoolValue(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberValue(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NumberValue(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return NumberValue(rv.Float()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return NullValue(), nil
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return ArrayValue(), nil
		}
		elems := make([]Value, rv.Len())
		for i := range elems {
			ev, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return ArrayValue(elems...), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", v)
}

// coerce infers a boolean, null, undefined or number from a string value
//
// text whose numeric value is 0 is only coerced when it is exactly "0" - so "0.0", "00" and "0x0" stay as strings
func coerce(v Value) Value {
	if v.kind != String {
		return v
	}
	switch v.str {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	case "null":
		return NullValue()
	case "undefined":
		return UndefinedValue()
	case "0":
		return NumberValue(0)
	}
	if n := parseNumber(v.str); n != 0 && !math.IsNaN(n) {
		return NumberValue(n)
	}
	return v
}
