package grid

import (
	"errors"
	"fmt"
	"iter"

	"github.com/midbel/errtype/formula/types"
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

const DefaultSheetName = "sheet1"

var ErrPosition = errors.New("invalid position")

type Cell struct {
	layout.Position

	Raw    string
	Parsed value.ScalarValue
}

// Sheet is an in-memory sheet. Cells are addressed by their 1-based line
// and column; the sheet part of a position is ignored.
type Sheet struct {
	name  string
	cells map[layout.Position]*Cell
	size  layout.Dimension
}

func NewSheet(name string) *Sheet {
	if name == "" {
		name = DefaultSheetName
	}
	return &Sheet{
		name:  name,
		cells: make(map[layout.Position]*Cell),
	}
}

func (s *Sheet) Name() string {
	return s.name
}

// Bounds gives the range from A1 to the last line and column holding a
// cell.
func (s *Sheet) Bounds() *layout.Range {
	var (
		start = layout.Position{Sheet: s.name}
		end   = layout.Position{Sheet: s.name}
	)
	if s.size.Lines > 0 {
		start.Line, start.Column = 1, 1
		end.Line, end.Column = s.size.Lines, s.size.Columns
	}
	return layout.NewRange(start, end)
}

func (s *Sheet) Size() layout.Dimension {
	return s.size
}

// Cell returns nil when nothing has been set at pos.
func (s *Sheet) Cell(pos layout.Position) value.ScalarValue {
	c, ok := s.cells[key(pos)]
	if !ok {
		return nil
	}
	return c.Parsed
}

func (s *Sheet) Raw(pos layout.Position) string {
	c, ok := s.cells[key(pos)]
	if !ok {
		return ""
	}
	return c.Raw
}

func (s *Sheet) SetValue(pos layout.Position, raw string, val value.ScalarValue) error {
	if pos.Line <= 0 || pos.Column <= 0 {
		return fmt.Errorf("%s: %w", pos, ErrPosition)
	}
	pos = key(pos)
	if val == nil {
		val = value.Empty()
	}
	s.cells[pos] = &Cell{
		Position: pos,
		Raw:      raw,
		Parsed:   val,
	}
	s.size = s.size.Max(layout.Dimension{
		Lines:   pos.Line,
		Columns: pos.Column,
	})
	return nil
}

func (s *Sheet) Set(pos layout.Position, val value.ScalarValue) error {
	var raw string
	if val != nil {
		raw = val.String()
	}
	return s.SetValue(pos, raw, val)
}

// Reference gives an unresolved reference to rg. The sheet of rg is replaced
// by the name of s.
func (s *Sheet) Reference(rg *layout.Range) value.ReferenceValue {
	rg = layout.NewRange(rg.Starts, rg.Ends)
	rg.Starts.Sheet = s.name
	rg.Ends.Sheet = s.name
	return types.NewReference(s, rg)
}

// Rows iterates over every line of the sheet from the first to the last one,
// missing cells are reported as nil.
func (s *Sheet) Rows() iter.Seq2[int64, []value.ScalarValue] {
	return func(yield func(int64, []value.ScalarValue) bool) {
		for i := int64(1); i <= s.size.Lines; i++ {
			row := make([]value.ScalarValue, s.size.Columns)
			for j := range row {
				row[j] = s.Cell(layout.Position{Line: i, Column: int64(j) + 1})
			}
			if !yield(i, row) {
				return
			}
		}
	}
}

func key(pos layout.Position) layout.Position {
	pos.Sheet = ""
	return pos
}
