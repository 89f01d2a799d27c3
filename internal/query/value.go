package query

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/aidanlsb/resdb/internal/model"
)

// ValueType is the static type of a term and the dynamic type of a value.
type ValueType int

const (
	TypeNone ValueType = iota // no value (missing attribute, failed parse)
	TypeString
	TypeInt
	TypeFloat
	TypeKind
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeKind:
		return "kind"
	default:
		return "none"
	}
}

func (t ValueType) numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// comparableTypes reports whether values of the two types can be compared.
// Numbers compare across int and float; every other type only with itself.
func comparableTypes(a, b ValueType) bool {
	if a == TypeNone || b == TypeNone {
		return false
	}
	if a.numeric() && b.numeric() {
		return true
	}
	return a == b
}

// Value is a term result: a string, an integer, a float, a statement kind or
// nothing at all.
type Value struct {
	typ ValueType
	str string
	num int64
	flt float64
}

// None returns the empty value.
func None() Value { return Value{} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{typ: TypeString, str: s} }

// IntValue wraps an integer.
func IntValue(n int64) Value { return Value{typ: TypeInt, num: n} }

// FloatValue wraps a float.
func FloatValue(f float64) Value { return Value{typ: TypeFloat, flt: f} }

// KindValue wraps a statement kind.
func KindValue(k model.Kind) Value { return Value{typ: TypeKind, num: int64(k)} }

// Type returns the dynamic type of v.
func (v Value) Type() ValueType { return v.typ }

// IsNone reports whether v holds no value.
func (v Value) IsNone() bool { return v.typ == TypeNone }

// Str returns the string payload, or "" for non-string values.
func (v Value) Str() string { return v.str }

// Int returns the integer payload. Floats are truncated and kinds yield
// their ordinal.
func (v Value) Int() int64 {
	if v.typ == TypeFloat {
		return int64(v.flt)
	}
	return v.num
}

// Float returns the numeric payload as a float.
func (v Value) Float() float64 {
	if v.typ == TypeFloat {
		return v.flt
	}
	return float64(v.num)
}

// Kind returns the kind payload.
func (v Value) Kind() model.Kind { return model.Kind(v.num) }

// Interface returns the payload as nil, string, int64, float64 or model.Kind.
func (v Value) Interface() any {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeInt:
		return v.num
	case TypeFloat:
		return v.flt
	case TypeKind:
		return v.Kind()
	}
	return nil
}

func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeInt:
		return strconv.FormatInt(v.num, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case TypeKind:
		return v.Kind().String()
	}
	return ""
}

// MarshalJSON renders kinds by name and missing values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case TypeNone:
		return []byte("null"), nil
	case TypeKind:
		return json.Marshal(v.Kind().String())
	}
	return json.Marshal(v.Interface())
}

// valueKey identifies a value for set membership. Integral floats share a
// key with the equal integer.
type valueKey struct {
	typ ValueType
	str string
	num int64
	flt float64
}

func (v Value) key() valueKey {
	switch v.typ {
	case TypeFloat:
		if v.flt == math.Trunc(v.flt) && math.Abs(v.flt) < math.MaxInt64 {
			return valueKey{typ: TypeInt, num: int64(v.flt)}
		}
		return valueKey{typ: TypeFloat, flt: v.flt}
	case TypeString:
		return valueKey{typ: TypeString, str: v.str}
	case TypeInt, TypeKind:
		return valueKey{typ: v.typ, num: v.num}
	}
	return valueKey{}
}

// valueSet is the collapsed result of a subquery.
type valueSet map[valueKey]struct{}

func newValueSet(vals []Value) valueSet {
	set := make(valueSet, len(vals))
	for _, v := range vals {
		if !v.IsNone() {
			set[v.key()] = struct{}{}
		}
	}
	return set
}

func (s valueSet) contains(v Value) bool {
	_, ok := s[v.key()]
	return ok
}

// Strings returns the string form of each value.
func Strings(vals []Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.String()
	}
	return out
}

// Ints returns the integer payload of each value.
func Ints(vals []Value) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v.Int())
	}
	return out
}
