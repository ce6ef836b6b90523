package types

import (
	"testing"

	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

type mapGrid map[layout.Position]value.ScalarValue

func (g mapGrid) Cell(pos layout.Position) value.ScalarValue {
	pos.Sheet = ""
	return g[pos]
}

func TestArray(t *testing.T) {
	arr := NewArray([][]value.ScalarValue{
		{value.Float(1), value.Float(2)},
		{value.Text("foo"), nil},
	})
	dim := arr.Dimension()
	if dim.Lines != 2 || dim.Columns != 2 {
		t.Fatalf("dimension mismatched! got %dx%d", dim.Lines, dim.Columns)
	}
	if got := arr.At(1, 0); got != value.Text("foo") {
		t.Errorf("value mismatched! want foo, got %v", got)
	}
	if got := arr.At(2, 0); got != nil {
		t.Errorf("nil expected outside of array, got %v", got)
	}
	if got := arr.At(0, -1); got != nil {
		t.Errorf("nil expected for negative column, got %v", got)
	}
	if got := arr.String(); got != "{1,2;foo,}" {
		t.Errorf("string mismatched! got %s", got)
	}
}

func TestReference(t *testing.T) {
	grid := mapGrid{
		layout.At(0, 0): value.Float(1),
		layout.At(1, 1): value.ErrDiv0,
	}
	rg, _ := layout.RangeFromString("B2:A1")
	ref := NewReference(grid, rg)
	if got := ref.Bounds().String(); got != "A1:B2" {
		t.Errorf("bounds mismatched! want A1:B2, got %s", got)
	}
	if got := ref.Cell(layout.At(1, 1)); got != value.ErrDiv0 {
		t.Errorf("value mismatched! want #DIV/0!, got %v", got)
	}
	if got := ref.Cell(layout.At(5, 5)); got != nil {
		t.Errorf("nil expected outside of reference, got %v", got)
	}
}
