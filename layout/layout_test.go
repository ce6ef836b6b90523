package layout

import (
	"errors"
	"slices"
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		Addr string
		Want Position
	}{
		{
			Addr: "A1",
			Want: Position{Line: 1, Column: 1},
		},
		{
			Addr: "$B$12",
			Want: Position{Line: 12, Column: 2},
		},
		{
			Addr: "aa3",
			Want: Position{Line: 3, Column: 27},
		},
		{
			Addr: "data!C4",
			Want: Position{Sheet: "data", Line: 4, Column: 3},
		},
	}
	for _, c := range tests {
		got, err := ParsePosition(c.Addr)
		if err != nil {
			t.Errorf("%s: fail to parse address: %s", c.Addr, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s: position mismatched! want %v, got %v", c.Addr, c.Want, got)
		}
	}
}

func TestParsePositionInvalid(t *testing.T) {
	for _, addr := range []string{"", "A", "12", "A0", "A1B"} {
		_, err := ParsePosition(addr)
		if !errors.Is(err, ErrAddress) {
			t.Errorf("%s: expected address error, got %v", addr, err)
		}
	}
}

func TestPositionAddr(t *testing.T) {
	tests := []struct {
		Pos  Position
		Want string
	}{
		{
			Pos:  At(0, 0),
			Want: "A1",
		},
		{
			Pos:  At(9, 26),
			Want: "AA10",
		},
		{
			Pos:  Position{Sheet: "s1", Line: 2, Column: 3},
			Want: "s1!C2",
		},
	}
	for _, c := range tests {
		if got := c.Pos.Addr(); got != c.Want {
			t.Errorf("address mismatched! want %s, got %s", c.Want, got)
		}
	}
}

func TestRange(t *testing.T) {
	rg, err := RangeFromString("C3:A1")
	if err != nil {
		t.Fatalf("fail to parse range: %s", err)
	}
	if rg.String() != "A1:C3" {
		t.Errorf("range not normalized: %s", rg)
	}
	if rg.Width() != 3 || rg.Height() != 3 {
		t.Errorf("dimension mismatched! got %dx%d", rg.Height(), rg.Width())
	}
	if !rg.Contains(At(1, 1)) {
		t.Errorf("B2 should be contained in %s", rg)
	}
	if rg.Contains(At(3, 0)) {
		t.Errorf("A4 should not be contained in %s", rg)
	}
	var count int
	for range rg.Positions() {
		count++
	}
	if count != 9 {
		t.Errorf("positions count mismatched! want 9, got %d", count)
	}
}

func TestDimensionInside(t *testing.T) {
	dim := Dimension{Lines: 2, Columns: 3}
	tests := []struct {
		Row  int
		Col  int
		Want bool
	}{
		{0, 0, true},
		{1, 2, true},
		{2, 0, false},
		{0, 3, false},
		{-1, 0, false},
	}
	for _, c := range tests {
		if got := dim.Inside(c.Row, c.Col); got != c.Want {
			t.Errorf("(%d, %d): want %t, got %t", c.Row, c.Col, c.Want, got)
		}
	}
}

func TestSelection(t *testing.T) {
	rg, err := RangeFromString("B1:F4")
	if err != nil {
		t.Fatalf("fail to parse range: %s", err)
	}
	tests := []struct {
		Input string
		Want  []int64
	}{
		{Input: "C", Want: []int64{3}},
		{Input: "A", Want: nil},
		{Input: "c:e", Want: []int64{3, 4, 5}},
		{Input: ":D", Want: []int64{2, 3, 4}},
		{Input: "D:", Want: []int64{4, 5, 6}},
		{Input: "B:F:2", Want: []int64{2, 4, 6}},
		{Input: "F:B:-2", Want: []int64{6, 4, 2}},
		{Input: "B; E:F", Want: []int64{2, 5, 6}},
	}
	for _, c := range tests {
		sel, err := SelectionFromString(c.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		got := sel.Columns(rg)
		if !slices.Equal(got, c.Want) {
			t.Errorf("%s: columns mismatched! want %v, got %v", c.Input, c.Want, got)
		}
	}
}

func TestSelectionInvalid(t *testing.T) {
	for _, str := range []string{"", "A1", "A:B:C", "A:B:0", "A:B:C:D", "A;;B"} {
		_, err := SelectionFromString(str)
		if !errors.Is(err, ErrAddress) {
			t.Errorf("%s: expected invalid address error, got %v", str, err)
		}
	}
}
