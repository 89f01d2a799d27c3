package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/aidanlsb/resdb/internal/model"
)

// Term yields a value from a candidate statement. Terms carry no state; the
// constructors below return fresh nodes.
type Term interface {
	// Type is the static type of every non-missing value the term yields.
	Type() ValueType
	String() string
	eval(ctx *evalContext, st model.Statement) Value
}

// SubjectTerm yields the statement subject.
type SubjectTerm struct{}

// PredicateTerm yields the statement predicate.
type PredicateTerm struct{}

// ObjectTerm yields the statement object.
type ObjectTerm struct{}

// IDTerm yields the statement id.
type IDTerm struct{}

// KindTerm yields the statement kind.
type KindTerm struct{}

// AttributeTerm yields the object of the first statement, in store order,
// that shares the candidate's subject and has predicate Name. It yields no
// value when there is no such statement.
type AttributeTerm struct {
	Name string
}

// ConstTerm yields a fixed value.
type ConstTerm struct {
	Value Value

	unsupported any // set when Const got a Go value it cannot represent
}

// ConvertTerm parses the string value of Inner as an int or a float. A
// value that does not parse yields no value.
type ConvertTerm struct {
	Inner Term
	To    ValueType
}

// RefTerm yields N when the string value of Inner is a back-reference "#N"
// and -1 for any other string.
type RefTerm struct {
	Inner Term
}

// Subject returns a term for the statement subject.
func Subject() Term { return SubjectTerm{} }

// Predicate returns a term for the statement predicate.
func Predicate() Term { return PredicateTerm{} }

// Object returns a term for the statement object.
func Object() Term { return ObjectTerm{} }

// StatementID returns a term for the statement id.
func StatementID() Term { return IDTerm{} }

// ResourceKind returns a term for the statement kind.
func ResourceKind() Term { return KindTerm{} }

// Attribute returns a correlated lookup of another statement's object on the
// same subject.
func Attribute(name string) Term { return AttributeTerm{Name: name} }

// Const wraps a Go value: a string, any integer type, float32, float64, a
// model.Kind or a Value. Other types are rejected when the query is
// validated.
func Const(v any) Term {
	switch x := v.(type) {
	case Value:
		return ConstTerm{Value: x}
	case string:
		return ConstTerm{Value: StringValue(x)}
	case model.Kind:
		return ConstTerm{Value: KindValue(x)}
	case int:
		return ConstTerm{Value: IntValue(int64(x))}
	case int8:
		return ConstTerm{Value: IntValue(int64(x))}
	case int16:
		return ConstTerm{Value: IntValue(int64(x))}
	case int32:
		return ConstTerm{Value: IntValue(int64(x))}
	case int64:
		return ConstTerm{Value: IntValue(x)}
	case uint8:
		return ConstTerm{Value: IntValue(int64(x))}
	case uint16:
		return ConstTerm{Value: IntValue(int64(x))}
	case uint32:
		return ConstTerm{Value: IntValue(int64(x))}
	case uint:
		if uint64(x) <= math.MaxInt64 {
			return ConstTerm{Value: IntValue(int64(x))}
		}
	case uint64:
		if x <= math.MaxInt64 {
			return ConstTerm{Value: IntValue(int64(x))}
		}
	case float32:
		return ConstTerm{Value: FloatValue(float64(x))}
	case float64:
		return ConstTerm{Value: FloatValue(x)}
	}
	return ConstTerm{unsupported: v}
}

// Number lists the target types accepted by StringTo.
type Number interface {
	int | int32 | int64 | float32 | float64
}

// StringTo parses the string value of t as T before comparison. Integer
// targets parse as base-10 64-bit integers, float targets as 64-bit floats.
// Surrounding whitespace is ignored.
func StringTo[T Number](t Term) Term {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return ConvertTerm{Inner: t, To: TypeFloat}
	}
	return ConvertTerm{Inner: t, To: TypeInt}
}

// ToInt is StringTo[int].
func ToInt(t Term) Term { return StringTo[int](t) }

// ToFloat is StringTo[float64].
func ToFloat(t Term) Term { return StringTo[float64](t) }

// ResourceIDToInt converts a back-reference "#N" to N, anything else to -1.
func ResourceIDToInt(t Term) Term { return RefTerm{Inner: t} }

func (SubjectTerm) Type() ValueType   { return TypeString }
func (PredicateTerm) Type() ValueType { return TypeString }
func (ObjectTerm) Type() ValueType    { return TypeString }
func (IDTerm) Type() ValueType        { return TypeInt }
func (KindTerm) Type() ValueType      { return TypeKind }
func (AttributeTerm) Type() ValueType { return TypeString }
func (t ConstTerm) Type() ValueType   { return t.Value.Type() }
func (t ConvertTerm) Type() ValueType { return t.To }
func (RefTerm) Type() ValueType       { return TypeInt }

func (SubjectTerm) eval(_ *evalContext, st model.Statement) Value {
	return StringValue(st.Subject())
}

func (PredicateTerm) eval(_ *evalContext, st model.Statement) Value {
	return StringValue(st.Predicate())
}

func (ObjectTerm) eval(_ *evalContext, st model.Statement) Value {
	return StringValue(st.Object())
}

func (IDTerm) eval(_ *evalContext, st model.Statement) Value {
	return IntValue(int64(st.ID()))
}

func (KindTerm) eval(_ *evalContext, st model.Statement) Value {
	return KindValue(st.Kind())
}

func (t AttributeTerm) eval(ctx *evalContext, st model.Statement) Value {
	obj, ok := ctx.r.Attribute(st.Subject(), t.Name)
	if !ok {
		return None()
	}
	return StringValue(obj)
}

func (t ConstTerm) eval(_ *evalContext, _ model.Statement) Value {
	return t.Value
}

func (t ConvertTerm) eval(ctx *evalContext, st model.Statement) Value {
	v := t.Inner.eval(ctx, st)
	if v.Type() != TypeString {
		return None()
	}
	switch t.To {
	case TypeInt:
		if n, ok := ParseInt(v.Str()); ok {
			return IntValue(n)
		}
	case TypeFloat:
		if f, ok := ParseFloat(v.Str()); ok {
			return FloatValue(f)
		}
	}
	return None()
}

func (t RefTerm) eval(ctx *evalContext, st model.Statement) Value {
	v := t.Inner.eval(ctx, st)
	if v.Type() != TypeString {
		return None()
	}
	return IntValue(int64(model.RefID(v.Str())))
}

// ParseInt parses s as a base-10 64-bit integer, ignoring surrounding
// whitespace.
func ParseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

// ParseFloat parses s as a finite 64-bit float, ignoring surrounding
// whitespace.
func ParseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
