package types

import (
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

// Grid gives access to the cells of a sheet. A missing cell is reported as nil.
type Grid interface {
	Cell(layout.Position) value.ScalarValue
}

type Reference struct {
	rg   *layout.Range
	grid Grid
}

func NewReference(grid Grid, rg *layout.Range) value.ReferenceValue {
	return Reference{
		rg:   rg.Normalize(),
		grid: grid,
	}
}

func (Reference) Type() string {
	return "reference"
}

func (Reference) Kind() value.ValueKind {
	return value.KindReference
}

func (r Reference) String() string {
	return r.rg.String()
}

func (r Reference) Bounds() *layout.Range {
	return r.rg
}

func (r Reference) Cell(pos layout.Position) value.ScalarValue {
	if r.grid == nil || !r.rg.Contains(pos) {
		return nil
	}
	pos.Sheet = r.rg.Sheet()
	return r.grid.Cell(pos)
}
