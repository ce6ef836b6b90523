package value

import (
	"strconv"
	"strings"
)

type Blank struct{}

func Empty() ScalarValue {
	return Blank{}
}

func (Blank) Type() string {
	return TypeBlank
}

func (Blank) Kind() ValueKind {
	return KindScalar
}

func (Blank) String() string {
	return ""
}

func (Blank) Scalar() any {
	return nil
}

func (Blank) ToFloat() (ScalarValue, error) {
	return Float(0), nil
}

func (Blank) ToText() (ScalarValue, error) {
	return Text(""), nil
}

type Float float64

func (Float) Type() string {
	return TypeNumber
}

func (Float) Kind() ValueKind {
	return KindScalar
}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func (f Float) Scalar() any {
	return float64(f)
}

func (f Float) ToText() (ScalarValue, error) {
	return Text(f.String()), nil
}

func (f Float) ToFloat() (ScalarValue, error) {
	return f, nil
}

func (f Float) Equal(other Value) (bool, error) {
	x, ok := other.(Float)
	if !ok {
		return false, ErrCompatible
	}
	return float64(f) == float64(x), nil
}

func (f Float) Less(other Value) (bool, error) {
	x, ok := other.(Float)
	if !ok {
		return false, ErrCompatible
	}
	return float64(f) < float64(x), nil
}

type Text string

func (Text) Type() string {
	return TypeText
}

func (Text) Kind() ValueKind {
	return KindScalar
}

func (t Text) String() string {
	return string(t)
}

func (t Text) Scalar() any {
	return string(t)
}

func (t Text) ToText() (ScalarValue, error) {
	return t, nil
}

// ToFloat coerces the text the way arithmetic operators do: a text that is
// not a number can not be used as an operand.
func (t Text) ToFloat() (ScalarValue, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
	if err != nil {
		return ErrValue, ErrCast
	}
	return Float(n), nil
}

func (t Text) Equal(other Value) (bool, error) {
	x, ok := other.(Text)
	if !ok {
		return false, ErrCompatible
	}
	return strings.EqualFold(string(t), string(x)), nil
}

func (t Text) Less(other Value) (bool, error) {
	x, ok := other.(Text)
	if !ok {
		return false, ErrCompatible
	}
	return strings.ToLower(string(t)) < strings.ToLower(string(x)), nil
}

type Boolean bool

func (Boolean) Type() string {
	return TypeBool
}

func (Boolean) Kind() ValueKind {
	return KindScalar
}

func (b Boolean) String() string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (b Boolean) Scalar() any {
	return bool(b)
}

func (b Boolean) ToText() (ScalarValue, error) {
	return Text(b.String()), nil
}

func (b Boolean) ToFloat() (ScalarValue, error) {
	if !bool(b) {
		return Float(0), nil
	}
	return Float(1), nil
}

func (b Boolean) Equal(other Value) (bool, error) {
	x, ok := other.(Boolean)
	if !ok {
		return false, ErrCompatible
	}
	return bool(b) == bool(x), nil
}

func (b Boolean) Less(other Value) (bool, error) {
	x, ok := other.(Boolean)
	if !ok {
		return false, ErrCompatible
	}
	return !bool(b) && bool(x), nil
}
