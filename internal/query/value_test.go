package query

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aidanlsb/resdb/internal/model"
)

func TestApplyOp(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		op   CompareOp
		b    Value
		want bool
	}{
		{"string equal", StringValue("Topi"), CompareEq, StringValue("Topi"), true},
		{"string not equal", StringValue("Topi"), CompareNeq, StringValue("Olli"), true},
		{"string bytewise order", StringValue("Z"), CompareLt, StringValue("a"), true},
		{"int order", IntValue(6), CompareGt, IntValue(5), true},
		{"int equal", IntValue(3), CompareGte, IntValue(3), true},
		{"int and float", IntValue(3), CompareEq, FloatValue(3.0), true},
		{"float and int", FloatValue(2.5), CompareLt, IntValue(3), true},
		{"int above 2^53 not equal float", IntValue(1<<53 + 1), CompareEq, FloatValue(1 << 53), false},
		{"int above 2^53 greater than float", IntValue(1<<53 + 1), CompareGt, FloatValue(1 << 53), true},
		{"float below int above 2^53", FloatValue(1 << 53), CompareLt, IntValue(1<<53 + 1), true},
		{"negative int and fraction", IntValue(-2), CompareGt, FloatValue(-2.5), true},
		{"int and fraction above", IntValue(2), CompareLt, FloatValue(2.5), true},
		{"max int and 2^63", IntValue(math.MaxInt64), CompareLt, FloatValue(0x1p63), true},
		{"min int and -2^63", IntValue(math.MinInt64), CompareEq, FloatValue(-0x1p63), true},
		{"int and -inf", IntValue(math.MinInt64), CompareGt, FloatValue(math.Inf(-1)), true},
		{"int and nan", IntValue(0), CompareEq, FloatValue(math.NaN()), false},
		{"kind equal", KindValue(model.KindResource), CompareEq, KindValue(model.KindResource), true},
		{"kind ordinal", KindValue(model.KindLiteral), CompareLt, KindValue(model.KindResource), true},
		{"none equal", None(), CompareEq, None(), false},
		{"none not equal", None(), CompareNeq, StringValue("x"), false},
		{"not equal to none", StringValue("x"), CompareNeq, None(), false},
		{"string and int", StringValue("6"), CompareEq, IntValue(6), false},
		{"string and int not equal", StringValue("6"), CompareNeq, IntValue(7), false},
		{"kind and int", KindValue(model.KindLiteral), CompareEq, IntValue(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyOp(tt.op, tt.a, tt.b); got != tt.want {
				t.Errorf("%v %s %v = %v, want %v", tt.a, tt.op, tt.b, got, tt.want)
			}
		})
	}
}

func TestConst(t *testing.T) {
	tests := []struct {
		in   any
		want Value
	}{
		{"x", StringValue("x")},
		{7, IntValue(7)},
		{int8(-3), IntValue(-3)},
		{int32(5), IntValue(5)},
		{uint16(9), IntValue(9)},
		{uint64(10), IntValue(10)},
		{float32(0.5), FloatValue(0.5)},
		{2.25, FloatValue(2.25)},
		{model.KindResource, KindValue(model.KindResource)},
		{IntValue(4), IntValue(4)},
	}
	for _, tt := range tests {
		c, ok := Const(tt.in).(ConstTerm)
		if !ok {
			t.Fatalf("Const(%#v) is not a ConstTerm", tt.in)
		}
		if c.unsupported != nil {
			t.Errorf("Const(%#v) marked unsupported", tt.in)
		}
		if c.Value != tt.want {
			t.Errorf("Const(%#v) = %#v, want %#v", tt.in, c.Value, tt.want)
		}
	}

	for _, bad := range []any{uint64(math.MaxUint64), true, struct{}{}} {
		if c := Const(bad).(ConstTerm); c.unsupported == nil {
			t.Errorf("Const(%#v) accepted", bad)
		}
	}
}

func TestStringToTargetType(t *testing.T) {
	if got := StringTo[int](Object()).Type(); got != TypeInt {
		t.Errorf("StringTo[int] type = %s", got)
	}
	if got := StringTo[int64](Object()).Type(); got != TypeInt {
		t.Errorf("StringTo[int64] type = %s", got)
	}
	if got := StringTo[float64](Object()).Type(); got != TypeFloat {
		t.Errorf("StringTo[float64] type = %s", got)
	}
	if got := StringTo[float32](Object()).Type(); got != TypeFloat {
		t.Errorf("StringTo[float32] type = %s", got)
	}
}

func TestParseNumbers(t *testing.T) {
	intTests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"6", 6, true},
		{" -12 ", -12, true},
		{"3.5", 0, false},
		{"six", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range intTests {
		got, ok := ParseInt(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseInt(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	floatTests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2.5", 2.5, true},
		{"6", 6, true},
		{"1e3", 1000, true},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"x", 0, false},
	}
	for _, tt := range floatTests {
		got, ok := ParseFloat(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseFloat(%q) = %g, %v; want %g, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValueSetMembership(t *testing.T) {
	set := newValueSet([]Value{IntValue(3), None(), StringValue("Topi"), FloatValue(2.5)})

	tests := []struct {
		v    Value
		want bool
	}{
		{IntValue(3), true},
		{FloatValue(3), true},
		{FloatValue(2.5), true},
		{StringValue("Topi"), true},
		{StringValue("3"), false},
		{None(), false},
		{IntValue(2), false},
	}
	for _, tt := range tests {
		if got := set.contains(tt.v); got != tt.want {
			t.Errorf("contains(%#v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestValueJSON(t *testing.T) {
	vals := []Value{StringValue("a"), IntValue(2), FloatValue(1.5), KindValue(model.KindResource), None()}
	data, err := json.Marshal(vals)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if got, want := string(data), `["a",2,1.5,"resource",null]`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}

func TestValueHelpers(t *testing.T) {
	vals := []Value{StringValue("Anna"), IntValue(6), None()}
	if got := Strings(vals); got[0] != "Anna" || got[1] != "6" || got[2] != "" {
		t.Errorf("Strings = %q", got)
	}
	if got := Ints([]Value{IntValue(1), FloatValue(2.9)}); got[0] != 1 || got[1] != 2 {
		t.Errorf("Ints = %v", got)
	}
}
