package types

import (
	"fmt"
	"strings"

	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

type Array struct {
	Data [][]value.ScalarValue
}

func NewArray(data [][]value.ScalarValue) value.ArrayValue {
	return Array{
		Data: data,
	}
}

// Row builds a single line array, the shape of an inline constant like {1,2,3}.
func Row(values ...value.ScalarValue) value.ArrayValue {
	return NewArray([][]value.ScalarValue{values})
}

func (a Array) Type() string {
	dim := a.Dimension()
	return fmt.Sprintf("array(%d, %d)", dim.Lines, dim.Columns)
}

func (Array) Kind() value.ValueKind {
	return value.KindArray
}

func (a Array) String() string {
	var rows []string
	for _, r := range a.Data {
		var cols []string
		for _, v := range r {
			if v == nil {
				v = value.Empty()
			}
			cols = append(cols, v.String())
		}
		rows = append(rows, strings.Join(cols, ","))
	}
	return fmt.Sprintf("{%s}", strings.Join(rows, ";"))
}

func (a Array) Dimension() layout.Dimension {
	var (
		d layout.Dimension
		n = len(a.Data)
	)
	if n > 0 {
		d.Lines = int64(n)
		d.Columns = int64(len(a.Data[0]))
	}
	return d
}

// At returns nil when row or col are out of the array.
func (a Array) At(row, col int) value.ScalarValue {
	if row < 0 || row >= len(a.Data) {
		return nil
	}
	v := a.Data[row]
	if col < 0 || col >= len(v) {
		return nil
	}
	return v[col]
}
