package main

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	lgtable "charm.land/lipgloss/v2/table"
	json "github.com/bytedance/sonic"

	"github.com/midbel/errtype/csv"
	"github.com/midbel/errtype/internal/config"
	"github.com/midbel/errtype/value"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("12"))

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type table struct {
	Headers []string
	Rows    [][]string
}

func (t *table) Append(row ...string) {
	t.Rows = append(t.Rows, row)
}

func (t *table) Print(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", config.FormatText:
		return t.printText(w)
	case config.FormatJSON:
		return t.printJSON(w)
	case config.FormatCSV:
		comma, err := cfg.Comma()
		if err != nil {
			return err
		}
		return csv.WriteAll(w, append([][]string{t.Headers}, t.Rows...), comma)
	default:
		return fmt.Errorf("%s: unsupported format", format)
	}
}

// Records gives one object per row keyed by the table headers.
func (t *table) Records() []map[string]string {
	list := make([]map[string]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := make(map[string]string)
		for i, h := range t.Headers {
			if i < len(r) {
				rec[h] = r[i]
			}
		}
		list = append(list, rec)
	}
	return list
}

func (t *table) printJSON(w io.Writer) error {
	buf, err := json.ConfigStd.MarshalIndent(t.Records(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(buf))
	return err
}

func (t *table) printText(w io.Writer) error {
	rows := t.Rows
	if cfg.Print.Color {
		rows = make([][]string, len(t.Rows))
		for i := range t.Rows {
			rows[i] = highlight(t.Rows[i])
		}
	}
	tb := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow && cfg.Print.Color {
				return headerStyle
			}
			return cellStyle
		})
	if cfg.Print.Width > 0 {
		tb = tb.Width(cfg.Print.Width)
	}
	_, err := lipgloss.Fprintln(w, tb.Render())
	return err
}

func highlight(row []string) []string {
	res := make([]string, len(row))
	for i, str := range row {
		switch {
		case str == "unclassified" || str == "unknown" || str == "-":
			res[i] = dimStyle.Render(str)
		case isErrorToken(str):
			res[i] = errorStyle.Render(str)
		default:
			res[i] = str
		}
	}
	return res
}

func isErrorToken(str string) bool {
	_, err := value.ByToken(str)
	return err == nil
}
