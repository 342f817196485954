// Package jsonvalue holds decoded documents as a closed set of node types.
//
// A Value is exactly one of Object, Array or Scalar. The variant is chosen
// once while decoding, so consumers switch on the concrete type instead of
// probing arbitrary Go values.
package jsonvalue

import (
	"slices"
	"strconv"
)

// Value is a decoded JSON node. Implementations: Object, Array, Scalar.
type Value interface {
	isValue()
}

// Object maps member names to values.
type Object map[string]Value

// Array is an ordered list of values.
type Array []Value

func (Object) isValue() {}
func (Array) isValue()  {}
func (Scalar) isValue() {}

// Keys returns the member names in ascending order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ScalarType identifies the JSON type of a Scalar.
type ScalarType uint8

const (
	Null ScalarType = iota
	Bool
	Number
	String
)

func (t ScalarType) String() string {
	switch t {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Scalar is a leaf value. It is comparable with ==; numbers are stored in
// canonical text form so equal numbers compare equal.
type Scalar struct {
	Type ScalarType
	text string
}

// NullValue returns the JSON null scalar.
func NullValue() Scalar {
	return Scalar{Type: Null}
}

// BoolValue returns a boolean scalar.
func BoolValue(b bool) Scalar {
	return Scalar{Type: Bool, text: strconv.FormatBool(b)}
}

// StringValue returns a string scalar.
func StringValue(s string) Scalar {
	return Scalar{Type: String, text: s}
}

// NumberValue returns a number scalar from its JSON literal.
func NumberValue(literal string) (Scalar, error) {
	canonical, err := CanonicalNumber(literal)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{Type: Number, text: canonical}, nil
}

// Text returns the canonical text of the scalar: the string itself for
// strings, the JSON literal otherwise.
func (s Scalar) Text() string {
	if s.Type == Null {
		return "null"
	}
	return s.text
}

// Interface converts the scalar to a value suitable for encoders.
// Numbers are returned as Number so encoders keep the canonical literal.
func (s Scalar) Interface() any {
	switch s.Type {
	case Bool:
		return s.text == "true"
	case Number:
		return NumberLiteral(s.text)
	case String:
		return s.text
	default:
		return nil
	}
}

func (s Scalar) String() string {
	if s.Type == String {
		return strconv.Quote(s.text)
	}
	return s.Text()
}
