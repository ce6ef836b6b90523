package layout

type Dimension struct {
	Lines   int64
	Columns int64
}

func (d Dimension) Max(other Dimension) Dimension {
	if other.Lines > d.Lines {
		d.Lines = other.Lines
	}
	if other.Columns > d.Columns {
		d.Columns = other.Columns
	}
	return d
}

// Inside reports whether the 0-based row and column fall within the dimension.
func (d Dimension) Inside(row, col int) bool {
	if row < 0 || col < 0 {
		return false
	}
	return int64(row) < d.Lines && int64(col) < d.Columns
}
