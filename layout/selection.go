package layout

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Selection picks columns of a range. Columns are given by their 1-based
// index.
type Selection interface {
	Columns(*Range) []int64
}

// SelectionFromString parses column selections like "A;C:E" or "B:H:2". An
// empty bound of a span stands for the corresponding bound of the range.
func SelectionFromString(str string) (Selection, error) {
	var list combinedSelection
	for part := range strings.SplitSeq(str, ";") {
		sel, err := parseSelection(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", str, err)
		}
		list = append(list, sel)
	}
	if len(list) == 1 {
		return list[0], nil
	}
	return list, nil
}

func parseSelection(str string) (Selection, error) {
	parts := strings.Split(str, ":")
	switch n := len(parts); n {
	case 1:
		ix, err := parseColumn(parts[0])
		if err != nil || ix == 0 {
			return nil, ErrAddress
		}
		return SelectSingle(ix), nil
	case 2, 3:
		lo, err := parseColumn(parts[0])
		if err != nil {
			return nil, err
		}
		hi, err := parseColumn(parts[1])
		if err != nil {
			return nil, err
		}
		var step int64 = 1
		if n == 3 && parts[2] != "" {
			step, err = strconv.ParseInt(parts[2], 10, 64)
			if err != nil || step == 0 {
				return nil, ErrAddress
			}
		}
		return SelectSpan(lo, hi, step), nil
	default:
		return nil, ErrAddress
	}
}

func parseColumn(str string) (int64, error) {
	ix, offset := ParseIndex(str)
	if offset != len(str) {
		return 0, ErrAddress
	}
	return ix, nil
}

type singleSelection struct {
	Index int64
}

func SelectSingle(ix int64) Selection {
	return singleSelection{
		Index: ix,
	}
}

func (s singleSelection) Columns(rg *Range) []int64 {
	if rg == nil {
		return nil
	}
	if s.Index >= rg.Starts.Column && s.Index <= rg.Ends.Column {
		return []int64{s.Index}
	}
	return nil
}

type spanSelection struct {
	Starts int64
	Ends   int64
	Step   int64
}

func SelectSpan(from, to, step int64) Selection {
	if step == 0 {
		step++
	}
	return spanSelection{
		Starts: from,
		Ends:   to,
		Step:   step,
	}
}

func (s spanSelection) Columns(rg *Range) []int64 {
	if rg == nil {
		return nil
	}
	var (
		all    []int64
		starts = s.Starts
		ends   = s.Ends
	)
	if s.Step > 0 {
		if starts == 0 {
			starts = rg.Starts.Column
		}
		if ends == 0 {
			ends = rg.Ends.Column
		}
		starts = max(starts, rg.Starts.Column)
		ends = min(ends, rg.Ends.Column)
		for i := starts; i <= ends; i += s.Step {
			all = append(all, i)
		}
		return all
	}
	if starts == 0 {
		starts = rg.Ends.Column
	}
	if ends == 0 {
		ends = rg.Starts.Column
	}
	starts = min(starts, rg.Ends.Column)
	ends = max(ends, rg.Starts.Column)
	for i := starts; i >= ends; i += s.Step {
		all = append(all, i)
	}
	return all
}

type combinedSelection []Selection

func (c combinedSelection) Columns(rg *Range) []int64 {
	var all []int64
	for i := range c {
		all = slices.Concat(all, c[i].Columns(rg))
	}
	return all
}
