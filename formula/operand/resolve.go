// Package operand reduces the raw arguments given to formula functions to
// the single scalar value most functions work with.
//
// Every formula-domain error met during the reduction is returned as a
// *value.Failure. Any other error reports a misuse of the resolver by the
// caller and must not be turned into a formula error.
package operand

import (
	"errors"
	"fmt"

	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

var ErrOperand = errors.New("operand can not be resolved")

// Resolve returns the scalar value of arg for the cell at the 0-based row and
// col. An error value is never returned on success.
func Resolve(arg value.Value, row, col int) (value.ScalarValue, error) {
	switch v := arg.(type) {
	case nil:
		return value.Empty(), nil
	case value.Error:
		return nil, value.Fail(v.Code())
	case value.ReferenceValue:
		return resolveReference(v, row, col)
	case value.ArrayValue:
		return resolveArray(v, row, col)
	case value.ScalarValue:
		return v, nil
	default:
		return nil, fmt.Errorf("%s: %w", arg.Type(), ErrOperand)
	}
}

// ResolveAll resolves every argument, stopping at the first failure.
func ResolveAll(args []value.Value, row, col int) ([]value.ScalarValue, error) {
	list := make([]value.ScalarValue, 0, len(args))
	for i := range args {
		v, err := Resolve(args[i], row, col)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

func resolveReference(ref value.ReferenceValue, row, col int) (value.ScalarValue, error) {
	var (
		rg  = ref.Bounds()
		pos = layout.At(row, col)
	)
	if !rg.Contains(pos) {
		pos = rg.Starts
	}
	return scalar(ref.Cell(pos))
}

func resolveArray(arr value.ArrayValue, row, col int) (value.ScalarValue, error) {
	if !arr.Dimension().Inside(row, col) {
		return nil, value.Fail(value.CodeValue)
	}
	return scalar(arr.At(row, col))
}

func scalar(v value.ScalarValue) (value.ScalarValue, error) {
	if v == nil {
		return value.Empty(), nil
	}
	if e, ok := v.(value.Error); ok {
		return nil, value.Fail(e.Code())
	}
	return v, nil
}
