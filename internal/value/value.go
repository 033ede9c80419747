// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package value implements goryl runtime values and their operators.
package value

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	NoneKind Kind = iota
	StringKind
	NumberKind
	BoolKind
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case NoneKind:
		return "None"
	case StringKind:
		return "String"
	case NumberKind:
		return "Number"
	case BoolKind:
		return "Bool"
	}
	return "Unknown"
}

// Value is a dynamically typed goryl value. The zero Value is None.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
}

// None is the absent value.
var None = Value{}

// String creates a String value.
func String(s string) Value { return Value{kind: StringKind, s: s} }

// Number creates a Number value.
func Number(n float64) Value { return Value{kind: NumberKind, n: n} }

// Bool creates a Bool value.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// FromLiteral converts a token literal (string, float64, bool or nil) to a
// Value. Unknown types become None.
func FromLiteral(lit any) Value {
	switch v := lit.(type) {
	case string:
		return String(v)
	case float64:
		return Number(v)
	case bool:
		return Bool(v)
	}
	return None
}

// Kind returns the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload; ok is false unless v is a String.
func (v Value) Str() (s string, ok bool) { return v.s, v.kind == StringKind }

// Num returns the number payload; ok is false unless v is a Number.
func (v Value) Num() (n float64, ok bool) { return v.n, v.kind == NumberKind }

// Boolean returns the bool payload; ok is false unless v is a Bool.
func (v Value) Boolean() (b bool, ok bool) { return v.b, v.kind == BoolKind }

// IsNone reports whether v is None.
func (v Value) IsNone() bool { return v.kind == NoneKind }

// String renders v the way print writes it: strings quoted, None as Null.
// Numbers print in plain decimal with a fractional part, or in exponent
// form when very large or very small.
func (v Value) String() string {
	switch v.kind {
	case StringKind:
		return strconv.Quote(v.s)
	case NumberKind:
		return formatNumber(v.n)
	case BoolKind:
		return strconv.FormatBool(v.b)
	}
	return "Null"
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	if abs := math.Abs(n); abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return formatExponent(n)
	}
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}

// formatExponent writes the shortest digits of n as 1.5e-5: no '+' sign and
// no zero padding in the exponent.
func formatExponent(n float64) string {
	s := strconv.FormatFloat(n, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mant + "e" + strconv.Itoa(e)
}

// Operator errors. The interpreter attaches a line number when it reports
// them.
var (
	ErrNegate   = errors.New("Invalid negation, can only negate type Number.")
	ErrAdd      = errors.New("Can only add literals of same type. Supported types: Number, String")
	ErrSubtract = errors.New("Can only subtract type Number")
	ErrMultiply = errors.New("Can only multiply type Number")
	ErrDivide   = errors.New("Division error.")
)
