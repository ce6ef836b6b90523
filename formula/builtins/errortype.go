package builtins

import (
	"errors"
	"fmt"

	"github.com/midbel/errtype/formula/operand"
	"github.com/midbel/errtype/value"
)

var ErrInvalidCode = errors.New("invalid error code")

// ErrorType implements ERROR.TYPE.
//
//	#NULL!                       1
//	#DIV/0!                      2
//	#VALUE!                      3
//	#REF!                        4
//	#NAME?                       5
//	#NUM!                        6
//	#N/A                         7
//	~CIRCULAR~REF~               8
//	~FUNCTION~NOT~IMPLEMENTED~   9
//	anything else                #N/A
//
// These numbers are not the internal codes of the errors.
func ErrorType(row, col int, arg value.Value) (value.Value, error) {
	_, err := operand.Resolve(arg, row, col)
	if err == nil {
		return value.ErrNA, nil
	}
	code, ok := value.FailureCode(err)
	if !ok {
		return nil, err
	}
	ix, ok := code.Index()
	if !ok {
		return nil, fmt.Errorf("%s (%d): %w", code, code.Code(), ErrInvalidCode)
	}
	return value.Float(ix), nil
}
