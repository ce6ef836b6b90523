package builtins

import (
	"github.com/midbel/errtype/formula/operand"
	"github.com/midbel/errtype/value"
)

func NotAvailable(_, _ int) (value.Value, error) {
	return value.ErrNA, nil
}

func IsError(row, col int, arg value.Value) (value.Value, error) {
	return testFailure(row, col, arg, func(value.ErrorCode) bool {
		return true
	})
}

func IsErr(row, col int, arg value.Value) (value.Value, error) {
	return testFailure(row, col, arg, func(code value.ErrorCode) bool {
		return code != value.CodeNA
	})
}

func IsNA(row, col int, arg value.Value) (value.Value, error) {
	return testFailure(row, col, arg, func(code value.ErrorCode) bool {
		return code == value.CodeNA
	})
}

func testFailure(row, col int, arg value.Value, accept func(value.ErrorCode) bool) (value.Value, error) {
	_, err := operand.Resolve(arg, row, col)
	if err == nil {
		return value.Boolean(false), nil
	}
	code, ok := value.FailureCode(err)
	if !ok {
		return nil, err
	}
	return value.Boolean(accept(code)), nil
}

const (
	typeNumber  = 1
	typeText    = 2
	typeBoolean = 4
	typeError   = 16
	typeArray   = 64
)

// TypeOf implements TYPE. Arrays are reported before any resolution; a
// reference is resolved like any other operand.
func TypeOf(row, col int, arg value.Value) (value.Value, error) {
	if arg != nil && arg.Kind() == value.KindArray {
		return value.Float(typeArray), nil
	}
	v, err := operand.Resolve(arg, row, col)
	if err != nil {
		if _, ok := value.FailureCode(err); ok {
			return value.Float(typeError), nil
		}
		return nil, err
	}
	switch v.(type) {
	case value.Text:
		return value.Float(typeText), nil
	case value.Boolean:
		return value.Float(typeBoolean), nil
	default:
		return value.Float(typeNumber), nil
	}
}

func IfError(row, col int, arg, alt value.Value) (value.Value, error) {
	v, err := operand.Resolve(arg, row, col)
	if err == nil {
		return v, nil
	}
	if _, ok := value.FailureCode(err); !ok {
		return nil, err
	}
	v, err = operand.Resolve(alt, row, col)
	if err != nil {
		return Propagate(err)
	}
	return v, nil
}
