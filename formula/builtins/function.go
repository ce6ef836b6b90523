package builtins

import (
	"errors"
	"fmt"

	"github.com/midbel/errtype/value"
)

var ErrArity = errors.New("invalid number of arguments")

// Function is implemented by every formula function. Call receives exactly
// Arity unresolved arguments and the 0-based coordinates of the cell being
// evaluated.
//
// A formula error is returned as a value. A non nil error means the
// evaluation of the cell can not go on.
type Function interface {
	Arity() int
	Call(args []value.Value, row, col int) (value.Value, error)
}

type (
	Func0 func(row, col int) (value.Value, error)
	Func1 func(row, col int, arg value.Value) (value.Value, error)
	Func2 func(row, col int, arg0, arg1 value.Value) (value.Value, error)
)

type fixed struct {
	name  string
	arity int
	call  func([]value.Value, int, int) (value.Value, error)
}

func Fixed0(name string, fn Func0) Function {
	return fixed{
		name:  name,
		arity: 0,
		call: func(_ []value.Value, row, col int) (value.Value, error) {
			return fn(row, col)
		},
	}
}

func Fixed1(name string, fn Func1) Function {
	return fixed{
		name:  name,
		arity: 1,
		call: func(args []value.Value, row, col int) (value.Value, error) {
			return fn(row, col, args[0])
		},
	}
}

func Fixed2(name string, fn Func2) Function {
	return fixed{
		name:  name,
		arity: 2,
		call: func(args []value.Value, row, col int) (value.Value, error) {
			return fn(row, col, args[0], args[1])
		},
	}
}

func (f fixed) Arity() int {
	return f.arity
}

func (f fixed) String() string {
	return f.name
}

func (f fixed) Call(args []value.Value, row, col int) (value.Value, error) {
	if len(args) != f.arity {
		return nil, fmt.Errorf("%s: %w: want %d, got %d", f.name, ErrArity, f.arity, len(args))
	}
	return f.call(args, row, col)
}

// Propagate turns a failure met while resolving an argument into the result
// of the function. Other errors are returned unchanged.
func Propagate(err error) (value.Value, error) {
	if code, ok := value.FailureCode(err); ok {
		return value.ErrorOf(code), nil
	}
	return nil, err
}
