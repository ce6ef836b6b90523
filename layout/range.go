package layout

import (
	"fmt"
	"iter"
	"strings"
)

type Range struct {
	Starts Position
	Ends   Position
}

func NewRange(starts, ends Position) *Range {
	return &Range{
		Starts: starts,
		Ends:   ends,
	}
}

// RangeFromString parses addresses like "A1:C3" or "B2". The returned range
// is always normalized.
func RangeFromString(str string) (*Range, error) {
	fst, lst, ok := strings.Cut(str, ":")
	starts, err := ParsePosition(fst)
	if err != nil {
		return nil, err
	}
	ends := starts
	if ok {
		if ends, err = ParsePosition(lst); err != nil {
			return nil, err
		}
		if ends.Sheet == "" {
			ends.Sheet = starts.Sheet
		}
	}
	return NewRange(starts, ends).Normalize(), nil
}

func (r *Range) Sheet() string {
	return r.Starts.Sheet
}

func (r *Range) Contains(pos Position) bool {
	ok := pos.Line >= r.Starts.Line && pos.Line <= r.Ends.Line
	if !ok {
		return false
	}
	return pos.Column >= r.Starts.Column && pos.Column <= r.Ends.Column
}

// Width is the number of columns covered by the range, bounds included.
func (r *Range) Width() int64 {
	return r.Ends.Column - r.Starts.Column + 1
}

// Height is the number of lines covered by the range, bounds included.
func (r *Range) Height() int64 {
	return r.Ends.Line - r.Starts.Line + 1
}

func (r *Range) Dimension() Dimension {
	return Dimension{
		Lines:   r.Height(),
		Columns: r.Width(),
	}
}

func (r *Range) Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for i := r.Starts.Line; i <= r.Ends.Line; i++ {
			for j := r.Starts.Column; j <= r.Ends.Column; j++ {
				pos := Position{
					Sheet:  r.Starts.Sheet,
					Line:   i,
					Column: j,
				}
				if !yield(pos) {
					return
				}
			}
		}
	}
}

func (r *Range) String() string {
	if r.Starts.Equal(r.Ends) {
		return r.Starts.Addr()
	}
	end := r.Ends
	end.Sheet = ""
	return fmt.Sprintf("%s:%s", r.Starts.Addr(), end.Addr())
}

func (r *Range) Normalize() *Range {
	x := NewRange(r.Starts, r.Ends)
	x.Starts.Line = min(r.Starts.Line, r.Ends.Line)
	x.Starts.Column = min(r.Starts.Column, r.Ends.Column)
	x.Ends.Line = max(r.Starts.Line, r.Ends.Line)
	x.Ends.Column = max(r.Starts.Column, r.Ends.Column)
	return x
}
