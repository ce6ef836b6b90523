package value

import (
	"fmt"

	"github.com/midbel/errtype/layout"
)

const (
	TypeBlank  = "blank"
	TypeNumber = "number"
	TypeText   = "text"
	TypeBool   = "boolean"
	TypeError  = "error"
)

type ValueKind int8

const (
	KindScalar ValueKind = 1 << iota
	KindError
	KindArray
	KindReference
)

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindError:
		return "error"
	case KindArray:
		return "array"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

type Value interface {
	Kind() ValueKind
	Type() string
	fmt.Stringer
}

type ScalarValue interface {
	Value
	Scalar() any
}

// ArrayValue is a rectangular block of values addressed by 0-based row and
// column indexes.
type ArrayValue interface {
	Value
	Dimension() layout.Dimension
	At(int, int) ScalarValue
}

// ReferenceValue is an unresolved reference to a region of a sheet.
type ReferenceValue interface {
	Value
	Bounds() *layout.Range
	Cell(layout.Position) ScalarValue
}

// Comparable is implemented by scalars that can be ordered against a value
// of the same type.
type Comparable interface {
	Equal(Value) (bool, error)
	Less(Value) (bool, error)
}
