package builtins

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUndefined = errors.New("undefined function")

var Registry = map[string]Function{
	"ERROR.TYPE": Fixed1("ERROR.TYPE", ErrorType),
	"ISERROR":    Fixed1("ISERROR", IsError),
	"ISERR":      Fixed1("ISERR", IsErr),
	"ISNA":       Fixed1("ISNA", IsNA),
	"TYPE":       Fixed1("TYPE", TypeOf),
	"NA":         Fixed0("NA", NotAvailable),
	"IFERROR":    Fixed2("IFERROR", IfError),
}

// Lookup finds a function by name, ignoring case.
func Lookup(name string) (Function, error) {
	fn, ok := Registry[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUndefined)
	}
	return fn, nil
}
