package value

import (
	"errors"
	"fmt"
)

// Failure carries an error code from the place where an operand could not be
// resolved up to the function that asked for it.
type Failure struct {
	code ErrorCode
}

func Fail(code ErrorCode) error {
	return &Failure{
		code: code,
	}
}

func (f *Failure) Code() ErrorCode {
	return f.code
}

// Value gives the error value a function returns when it does not handle
// the failure itself.
func (f *Failure) Value() Error {
	return createError(f.code)
}

func (f *Failure) Error() string {
	return fmt.Sprintf("evaluation failed: %s", f.code)
}

// FailureCode extracts the code carried by err if err is, or wraps, a Failure.
func FailureCode(err error) (ErrorCode, bool) {
	var f *Failure
	if !errors.As(err, &f) {
		return 0, false
	}
	return f.code, true
}
