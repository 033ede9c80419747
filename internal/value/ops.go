package value

import (
	"math"
	"unicode/utf8"
)

// Negate implements -v.
func Negate(v Value) (Value, error) {
	if n, ok := v.Num(); ok {
		return Number(-n), nil
	}
	return None, ErrNegate
}

// Not implements !v. A non-empty String negates to true.
func Not(v Value) Value {
	switch v.kind {
	case StringKind:
		return Bool(v.s != "")
	case NumberKind:
		return Bool(v.n == 0)
	case BoolKind:
		return Bool(!v.b)
	}
	return Bool(true)
}

// Add implements a + b for two Strings or two Numbers.
func Add(a, b Value) (Value, error) {
	switch {
	case a.kind == StringKind && b.kind == StringKind:
		return String(a.s + b.s), nil
	case a.kind == NumberKind && b.kind == NumberKind:
		return Number(a.n + b.n), nil
	}
	return None, ErrAdd
}

// Subtract implements a - b.
func Subtract(a, b Value) (Value, error) {
	if a.kind == NumberKind && b.kind == NumberKind {
		return Number(a.n - b.n), nil
	}
	return None, ErrSubtract
}

// Multiply implements a * b.
func Multiply(a, b Value) (Value, error) {
	if a.kind == NumberKind && b.kind == NumberKind {
		return Number(a.n * b.n), nil
	}
	return None, ErrMultiply
}

// Divide implements a / b. Dividing by zero is an error, not infinity.
func Divide(a, b Value) (Value, error) {
	if a.kind == NumberKind && b.kind == NumberKind && b.n != 0 {
		return Number(a.n / b.n), nil
	}
	return None, ErrDivide
}

// Compare orders a against b, returning -1, 0 or 1. ok is false when the
// pair is unordered: only Number/Number (total float order) and
// String/String (by length) are ordered.
func Compare(a, b Value) (c int, ok bool) {
	switch {
	case a.kind == NumberKind && b.kind == NumberKind:
		return totalCompare(a.n, b.n), true
	case a.kind == StringKind && b.kind == StringKind:
		return compareInts(utf8.RuneCountInString(a.s), utf8.RuneCountInString(b.s)), true
	}
	return 0, false
}

// Less implements a < b.
func Less(a, b Value) Value {
	c, ok := Compare(a, b)
	return Bool(ok && c < 0)
}

// LessEqual implements a <= b.
func LessEqual(a, b Value) Value {
	c, ok := Compare(a, b)
	return Bool(ok && c <= 0)
}

// Greater implements a > b.
func Greater(a, b Value) Value {
	c, ok := Compare(a, b)
	return Bool(ok && c > 0)
}

// GreaterEqual implements a >= b.
func GreaterEqual(a, b Value) Value {
	c, ok := Compare(a, b)
	return Bool(ok && c >= 0)
}

// Equal reports whether a and b are the same type and value. Values of
// different types are never equal; None equals None.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case StringKind:
		return a.s == b.s
	case NumberKind:
		return a.n == b.n
	case BoolKind:
		return a.b == b.b
	}
	return true
}

// totalCompare orders floats by the IEEE 754 totalOrder predicate:
// -NaN < -Inf < ... < -0 < +0 < ... < +Inf < +NaN.
func totalCompare(x, y float64) int {
	return compareInts(totalKey(x), totalKey(y))
}

func totalKey(f float64) int64 {
	k := int64(math.Float64bits(f))
	k ^= int64(uint64(k>>63) >> 1)
	return k
}

func compareInts[T int | int64](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
