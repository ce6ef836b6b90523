package value

import (
	"errors"
	"fmt"
)

var (
	ErrCast       = errors.New("value can not be cast to target type")
	ErrCompatible = errors.New("incompatible type")
)

type toFloat interface {
	ToFloat() (ScalarValue, error)
}

type toText interface {
	ToText() (ScalarValue, error)
}

func CastToFloat(val Value) (Float, error) {
	switch v := val.(type) {
	case Float:
		return v, nil
	case toFloat:
		x, err := v.ToFloat()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", val.Type(), ErrCast)
		}
		f, ok := x.(Float)
		if !ok {
			return f, fmt.Errorf("%s: %w", val.Type(), ErrCast)
		}
		return f, nil
	default:
		return 0, ErrCast
	}
}

func CastToText(val Value) (Text, error) {
	switch v := val.(type) {
	case Text:
		return v, nil
	case toText:
		x, err := v.ToText()
		if err != nil {
			return "", fmt.Errorf("%s: %w", val.Type(), ErrCast)
		}
		t, ok := x.(Text)
		if !ok {
			return t, fmt.Errorf("%s: %w", val.Type(), ErrCast)
		}
		return t, nil
	default:
		return "", ErrCast
	}
}
