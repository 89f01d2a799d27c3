package query

import (
	"cmp"
	"math"
	"strings"
)

// compareValues orders two values. ok is false when either value is missing
// or the types cannot be compared; such a comparison never matches.
func compareValues(a, b Value) (c int, ok bool) {
	if !comparableTypes(a.typ, b.typ) {
		return 0, false
	}
	switch {
	case a.typ == TypeInt && b.typ == TypeInt, a.typ == TypeKind:
		return cmp.Compare(a.num, b.num), true
	case a.typ == TypeInt && b.typ == TypeFloat:
		return compareIntFloat(a.num, b.flt), true
	case a.typ == TypeFloat && b.typ == TypeInt:
		return -compareIntFloat(b.num, a.flt), true
	case a.typ.numeric():
		return cmp.Compare(a.flt, b.flt), true
	default:
		return strings.Compare(a.str, b.str), true
	}
}

// compareIntFloat orders an integer against a float without rounding the
// integer to the nearest float, so 2^53+1 stays greater than 2^53.
func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 1
	case f >= 0x1p63:
		return -1
	case f < -0x1p63:
		return 1
	}
	t := math.Trunc(f)
	if c := cmp.Compare(i, int64(t)); c != 0 {
		return c
	}
	return cmp.Compare(0, f-t)
}

// applyOp evaluates a comparison operator against the result of compareValues.
func applyOp(op CompareOp, a, b Value) bool {
	c, ok := compareValues(a, b)
	if !ok {
		return false
	}
	switch op {
	case CompareEq:
		return c == 0
	case CompareNeq:
		return c != 0
	case CompareLt:
		return c < 0
	case CompareLte:
		return c <= 0
	case CompareGt:
		return c > 0
	case CompareGte:
		return c >= 0
	}
	return false
}
