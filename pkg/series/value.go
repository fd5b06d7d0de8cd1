package series

import (
	"fmt"
	"strconv"
)

type kind uint8

const (
	kindRaw kind = iota
	kindFloat
	kindInt
)

// Value is a single element of a series: a float, an integer, or a raw value
// that is not a number at all.
type Value struct {
	kind kind
	f    float64
	i    int64
	raw  any
}

// Number wraps a floating point cell value.
func Number(f float64) Value {
	return Value{kind: kindFloat, f: f}
}

// Int wraps an integer value. Integers keep integer arithmetic when two of them
// are subtracted and divided by the window width.
func Int(i int64) Value {
	return Value{kind: kindInt, i: i}
}

// Raw wraps a value that could not be read as a number. It is kept as is so it
// can be written back unchanged.
func Raw(v any) Value {
	return Value{kind: kindRaw, raw: v}
}

func (v Value) IsNumber() bool {
	return v.kind != kindRaw
}

func (v Value) Float() (float64, bool) {
	switch v.kind {
	case kindFloat:
		return v.f, true
	case kindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Equal reports whether two values are numerically equal, or hold the same raw
// value. Raw values that are not comparable are never equal.
func (v Value) Equal(o Value) (equal bool) {
	if v.kind == kindInt && o.kind == kindInt {
		return v.i == o.i
	}
	if v.IsNumber() || o.IsNumber() {
		a, aok := v.Float()
		b, bok := o.Float()
		return aok && bok && a == b
	}
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return v.raw == o.raw
}

// Interface returns the value in the form written back to a sheet.
func (v Value) Interface() any {
	switch v.kind {
	case kindFloat:
		return v.f
	case kindInt:
		return v.i
	}
	return v.raw
}

func (v Value) String() string {
	switch v.kind {
	case kindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	}
	if v.raw == nil {
		return ""
	}
	return fmt.Sprint(v.raw)
}

// sub returns v-o. Two integers stay integers.
func (v Value) sub(o Value) (Value, error) {
	if v.kind == kindInt && o.kind == kindInt {
		return Int(v.i - o.i), nil
	}
	a, aok := v.Float()
	b, bok := o.Float()
	if !aok || !bok {
		return Value{}, errNotNumber
	}
	return Number(a - b), nil
}

func (v Value) add(o Value) (Value, error) {
	if v.kind == kindInt && o.kind == kindInt {
		return Int(v.i + o.i), nil
	}
	a, aok := v.Float()
	b, bok := o.Float()
	if !aok || !bok {
		return Value{}, errNotNumber
	}
	return Number(a + b), nil
}

// divInt divides by a positive integer width. Integers are floored.
func (v Value) divInt(width int) (Value, error) {
	switch v.kind {
	case kindInt:
		q := v.i / int64(width)
		if v.i%int64(width) != 0 && v.i < 0 {
			q--
		}
		return Int(q), nil
	case kindFloat:
		return Number(v.f / float64(width)), nil
	}
	return Value{}, errNotNumber
}
