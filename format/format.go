package format

import (
	"strings"

	"github.com/midbel/errtype/value"
)

const DefaultNumberPattern = "#,##0.##"

type Formatter interface {
	Format(value.Value) (string, error)
}

// ValueFormatter selects a formatter from the type of the value it is given.
// Values without formatter are written with their String method.
type ValueFormatter struct {
	formatters map[string]Formatter
}

func FormatValue() *ValueFormatter {
	vf := ValueFormatter{
		formatters: make(map[string]Formatter),
	}
	return &vf
}

func (vf *ValueFormatter) Set(kind string, formatter Formatter) {
	vf.formatters[kind] = formatter
}

func (vf *ValueFormatter) Number(pattern string) error {
	f, err := ParseNumberFormatter(pattern)
	if err == nil {
		vf.Set(value.TypeNumber, f)
	}
	return err
}

func (vf *ValueFormatter) Format(v value.Value) (string, error) {
	if v == nil {
		return "", nil
	}
	f, ok := vf.formatters[v.Type()]
	if ok {
		return f.Format(v)
	}
	return v.String(), nil
}

func FormatBool() Formatter {
	return boolFormatter{}
}

type boolFormatter struct{}

func (boolFormatter) Format(v value.Value) (string, error) {
	return strings.ToLower(v.String()), nil
}
