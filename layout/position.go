package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrAddress = errors.New("invalid cell address")

// Position is a 1-based cell coordinate, optionally qualified by a sheet name.
type Position struct {
	Sheet  string
	Line   int64
	Column int64
}

// At builds the position of the cell found at the 0-based row and column
// indexes used by the evaluator.
func At(row, col int) Position {
	return Position{
		Line:   int64(row) + 1,
		Column: int64(col) + 1,
	}
}

func ParsePosition(addr string) (Position, error) {
	var pos Position
	if sheet, rest, ok := strings.Cut(addr, "!"); ok {
		pos.Sheet = strings.Trim(sheet, "'")
		addr = rest
	}
	addr = strings.ReplaceAll(addr, "$", "")
	if !IsAddress(addr) {
		return pos, fmt.Errorf("%s: %w", addr, ErrAddress)
	}
	var offset int
	pos.Column, offset = ParseIndex(addr)
	line, err := strconv.ParseInt(addr[offset:], 10, 64)
	if err != nil {
		return pos, fmt.Errorf("%s: %w", addr, ErrAddress)
	}
	pos.Line = line
	return pos, nil
}

func (p Position) Row() int {
	return int(p.Line - 1)
}

func (p Position) Col() int {
	return int(p.Column - 1)
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

func (p Position) Addr() string {
	var str strings.Builder
	if p.Sheet != "" {
		str.WriteString(p.Sheet)
		str.WriteString("!")
	}
	str.WriteString(indexToString(p.Column))
	str.WriteString(strconv.FormatInt(p.Line, 10))
	return str.String()
}

func (p Position) String() string {
	return p.Addr()
}

func IsAddress(addr string) bool {
	size := len(addr)
	if size < 2 {
		return false
	}
	var offset int
	for offset < size && isLetter(rune(addr[offset])) {
		offset++
	}
	if offset == 0 || offset >= size || addr[offset] == '0' {
		return false
	}
	for offset < size {
		c := addr[offset]
		if c < '0' || c > '9' {
			return false
		}
		offset++
	}
	return true
}

func ParseIndex(str string) (int64, int) {
	var (
		offset int
		index  int64
	)
	for offset < len(str) && isLetter(rune(str[offset])) {
		delta := byte('A')
		if isLower(rune(str[offset])) {
			delta = 'a'
		}
		index = index*26 + int64(str[offset]-delta+1)
		offset++
	}
	return index, offset
}

func indexToString(ix int64) string {
	var result string
	for ix > 0 {
		ix--
		result = string(rune('A')+rune(ix%26)) + result
		ix /= 26
	}
	return result
}

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c)
}
