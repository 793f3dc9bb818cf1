// Package value defines the dynamic value model consumed by the rule
// evaluator: null, strings, numbers, booleans, ordered lists and keyed
// contexts.
package value

import (
	"fmt"
	"math/big"
	"strconv"
)

// Kind identifies the variant of a Value
type Kind string

const (
	NullKind    Kind = "null"
	StringKind  Kind = "string"
	NumberKind  Kind = "number"
	BoolKind    Kind = "bool"
	ListKind    Kind = "list"
	ContextKind Kind = "context"
)

// Value is one node of the value model
type Value interface {
	Kind() Kind
}

// Null is the distinguished null value. Use NullValue rather than
// constructing it.
type Null struct{}

// NullValue is the single Null instance
var NullValue = Null{}

// Kind implements Value
func (Null) Kind() Kind { return NullKind }

func (Null) String() string { return "null" }

// String holds a string
type String string

// Kind implements Value
func (String) Kind() Kind { return StringKind }

// Bool holds a boolean
type Bool bool

// Kind implements Value
func (Bool) Kind() Kind { return BoolKind }

// Number holds a decimal number in its literal form, e.g. "10961" or
// "3.14e2". Two numbers are equal when their numeric values are equal.
type Number string

// Kind implements Value
func (Number) Kind() Kind { return NumberKind }

// NumberFromInt creates a Number from an integer
func NumberFromInt(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// NumberFromFloat creates a Number from a float using the shortest
// representation that round-trips.
func NumberFromFloat(f float64) Number {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// Rat returns the exact rational value of n
func (n Number) Rat() (*big.Rat, bool) {
	return new(big.Rat).SetString(string(n))
}

// Float64 returns n as a float64
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// List is an ordered sequence of values
type List []Value

// Kind implements Value
func (List) Kind() Kind { return ListKind }

// Equal reports whether a and b are structurally equal. Contexts compare by
// key set and per-key values regardless of insertion order, lists compare
// element-wise, numbers compare by numeric value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case String:
		return av == b.(String)
	case Bool:
		return av == b.(Bool)
	case Number:
		bv := b.(Number)
		if av == bv {
			return true
		}
		ar, aok := av.Rat()
		br, bok := bv.Rat()
		return aok && bok && ar.Cmp(br) == 0
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Context:
		bv := b.(*Context)
		if av.Len() != bv.Len() {
			return false
		}
		for _, key := range av.keys {
			other, ok := bv.Get(key)
			if !ok || !Equal(av.entries[key], other) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("value: unknown variant %T", a))
	}
}
