// Package csv loads delimited files into in-memory sheets and writes sheets
// back as delimited text.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/midbel/errtype/grid"
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

var ErrComma = errors.New("invalid field separator")

type Options struct {
	Name      string
	Comma     rune
	TrimSpace bool
}

func (o Options) comma() rune {
	if o.Comma == 0 {
		return ','
	}
	return o.Comma
}

// Open reads file into a sheet named after the file when opts gives no name.
func Open(file string, opts Options) (*grid.Sheet, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if opts.Name == "" {
		opts.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	return Read(r, opts)
}

func Read(r io.Reader, opts Options) (*grid.Sheet, error) {
	rs := csv.NewReader(r)
	rs.Comma = opts.comma()
	rs.FieldsPerRecord = -1
	rs.TrimLeadingSpace = opts.TrimSpace
	if rs.Comma == '"' || rs.Comma == '\n' || rs.Comma == '\r' {
		return nil, fmt.Errorf("%q: %w", rs.Comma, ErrComma)
	}

	sh := grid.NewSheet(opts.Name)
	for line := int64(1); ; line++ {
		fields, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		for col, str := range fields {
			if opts.TrimSpace {
				str = strings.TrimSpace(str)
			}
			if str == "" {
				continue
			}
			pos := layout.Position{
				Line:   line,
				Column: int64(col) + 1,
			}
			if err := sh.SetValue(pos, str, Parse(str)); err != nil {
				return nil, err
			}
		}
	}
	return sh, nil
}

// Parse gives the value of a raw field: a number, a boolean, an error token
// or, when nothing else matches, the text itself.
func Parse(str string) value.ScalarValue {
	field := strings.TrimSpace(str)
	if field == "" {
		return value.Empty()
	}
	if strings.EqualFold(field, "true") || strings.EqualFold(field, "false") {
		return value.Boolean(strings.EqualFold(field, "true"))
	}
	if n, err := strconv.ParseFloat(field, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return value.Float(n)
	}
	if code, err := value.ByToken(field); err == nil {
		return value.ErrorOf(code)
	}
	return value.Text(str)
}

// Write writes every line of sh. Missing cells are written as empty fields.
func Write(w io.Writer, sh *grid.Sheet, comma rune) error {
	var data [][]string
	for _, row := range sh.Rows() {
		fields := make([]string, len(row))
		for i := range row {
			if row[i] != nil {
				fields[i] = row[i].String()
			}
		}
		data = append(data, fields)
	}
	return WriteAll(w, data, comma)
}

func WriteAll(w io.Writer, data [][]string, comma rune) error {
	ws := csv.NewWriter(w)
	if comma != 0 {
		ws.Comma = comma
	}
	if err := ws.WriteAll(data); err != nil {
		return err
	}
	return ws.Error()
}
