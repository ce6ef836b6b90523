package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/midbel/cli"
	"go.uber.org/zap"

	"github.com/midbel/errtype/csv"
	"github.com/midbel/errtype/formula/builtins"
	"github.com/midbel/errtype/formula/calc"
	"github.com/midbel/errtype/formula/env"
	"github.com/midbel/errtype/formula/eval"
	"github.com/midbel/errtype/formula/parse"
	"github.com/midbel/errtype/grid"
	"github.com/midbel/errtype/internal/config"
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

var errFail = errors.New("fail")

var (
	summary = "errtype classifies the error values of spreadsheet formulas"
	help    = ""
)

var (
	cfg    = config.Default()
	logger = zap.NewNop()
)

func main() {
	var (
		set   = cli.NewFlagSet("errtype")
		root  = prepare()
		file  string
		debug bool
	)
	set.StringVar(&file, "c", "", "configuration file")
	set.BoolVar(&debug, "d", false, "enable debug logging")
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := setup(file, debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	err := root.Execute(set.Args())
	logger.Sync()
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func setup(file string, debug bool) error {
	c, err := config.Load(file)
	if err != nil {
		return err
	}
	if debug {
		c.Log.Level = "debug"
	}
	l, err := c.Logger()
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"codes"}, &codesCmd)
	root.Register([]string{"classify"}, &classifyCmd)
	root.Register([]string{"sheet"}, &sheetCmd)
	root.Register([]string{"eval"}, &evalCmd)

	return root
}

var codesCmd = cli.Command{
	Name:    "codes",
	Alias:   []string{"list"},
	Summary: "list known error codes and their classification index",
	Usage:   "codes [-f format]",
	Handler: &ListCodesCommand{},
}

var classifyCmd = cli.Command{
	Name:    "classify",
	Alias:   []string{"type"},
	Summary: "give the ERROR.TYPE index of error tokens or numeric codes",
	Usage:   "classify [-f format] <token|code>...",
	Handler: &ClassifyCommand{},
}

var sheetCmd = cli.Command{
	Name:    "sheet",
	Alias:   []string{"check"},
	Summary: "apply ERROR.TYPE to the cells of a csv file",
	Usage:   "sheet [-r range] [-k columns] [-s separator] [-o out.csv] [-f format] <file.csv>",
	Handler: &CheckSheetCommand{},
}

var evalCmd = cli.Command{
	Name:    "eval",
	Alias:   []string{"calc"},
	Summary: "evaluate formulas and classify their result",
	Usage:   "eval [-i file.csv] [-s separator] [-a address] [-f format] <formula>...",
	Handler: &EvalFormulaCommand{},
}

type ListCodesCommand struct {
	Format string
}

func (c ListCodesCommand) Run(args []string) error {
	set := cli.NewFlagSet("codes")
	set.StringVar(&c.Format, "f", cfg.Print.Format, "output format (text, json, csv)")
	if err := set.Parse(args); err != nil {
		return err
	}
	tb := table{
		Headers: []string{"code", "token", "index"},
	}
	for _, e := range value.Codes() {
		tb.Append(strconv.Itoa(e.Code()), e.Token(), indexOf(e))
	}
	return tb.Print(os.Stdout, c.Format)
}

type ClassifyCommand struct {
	Format string
}

func (c ClassifyCommand) Run(args []string) error {
	set := cli.NewFlagSet("classify")
	set.StringVar(&c.Format, "f", cfg.Print.Format, "output format (text, json, csv)")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return fmt.Errorf("no error token given")
	}
	tb := table{
		Headers: []string{"input", "code", "token", "error.type"},
	}
	for _, a := range set.Args() {
		row, err := classify(a)
		if err != nil {
			logger.Warn("input not classified", zap.String("input", a), zap.Error(err))
		}
		tb.Append(row...)
	}
	return tb.Print(os.Stdout, c.Format)
}

// classify gives the ERROR.TYPE result of a token like "#DIV/0!" or of a
// numeric code like "7".
func classify(input string) ([]string, error) {
	var (
		code value.ErrorCode
		err  error
	)
	if n, err1 := strconv.Atoi(strings.TrimSpace(input)); err1 == nil {
		code, err = value.ByCode(n)
	} else {
		code, err = value.ByToken(input)
	}
	if err != nil {
		return []string{input, "", "", "unknown"}, err
	}
	res, err := builtins.ErrorType(0, 0, value.ErrorOf(code))
	if err != nil {
		if errors.Is(err, builtins.ErrInvalidCode) {
			return []string{input, strconv.Itoa(code.Code()), code.Token(), "unclassified"}, err
		}
		return nil, err
	}
	return []string{input, strconv.Itoa(code.Code()), code.Token(), res.String()}, nil
}

type CheckSheetCommand struct {
	Format string
	Range  string
	Cols   string
	Sep    string
	Output string
}

func (c CheckSheetCommand) Run(args []string) error {
	set := cli.NewFlagSet("sheet")
	set.StringVar(&c.Format, "f", cfg.Print.Format, "output format (text, json, csv)")
	set.StringVar(&c.Range, "r", "", "range of cells to check")
	set.StringVar(&c.Cols, "k", "", "columns to check (eg: A;C:E)")
	set.StringVar(&c.Output, "o", "", "write the computed sheet to a csv file")
	set.StringVar(&c.Sep, "s", cfg.CSV.Comma, "csv field separator")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 1 {
		return fmt.Errorf("invalid number of arguments")
	}
	sh, err := openSheet(set.Arg(0), c.Sep)
	if err != nil {
		return err
	}
	if err := sh.Recalc(); err != nil {
		return err
	}
	if c.Output != "" {
		if err := exportSheet(sh, c.Output, c.Sep); err != nil {
			return err
		}
	}
	tb, err := checkSheet(sh, c.Range, c.Cols)
	if err != nil {
		return err
	}
	return tb.Print(os.Stdout, c.Format)
}

// checkSheet evaluates ERROR.TYPE for every cell of sh holding a value. When
// a range is given, ERROR.TYPE is called with the range itself for each cell
// it covers. cols restricts the cells checked to a selection of columns.
func checkSheet(sh *calc.Sheet, addr, cols string) (*table, error) {
	var (
		rg  = sh.Bounds()
		arg eval.Expr
		err error
	)
	if addr != "" {
		if rg, err = layout.RangeFromString(addr); err != nil {
			return nil, err
		}
		if arg, err = eval.ParseAddr(addr); err != nil {
			return nil, err
		}
	}
	keep := func(layout.Position) bool { return true }
	if cols != "" {
		sel, err := layout.SelectionFromString(cols)
		if err != nil {
			return nil, err
		}
		list := sel.Columns(rg)
		keep = func(pos layout.Position) bool {
			return slices.Contains(list, pos.Column)
		}
	}
	tb := table{
		Headers: []string{"cell", "raw", "value", "error.type"},
	}
	for pos := range rg.Positions() {
		if !keep(pos) || (arg == nil && sh.Raw(pos) == "") {
			continue
		}
		target := arg
		if target == nil {
			target = eval.NewCellAddr(pos)
		}
		res, err := errorType(sh, target, pos)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pos.Addr(), err)
		}
		pos.Sheet = ""
		tb.Append(pos.Addr(), sh.Raw(pos), display(sh.Cell(pos)), res)
	}
	return &tb, nil
}

// exportSheet writes the values of sh, formulas replaced by their result.
func exportSheet(sh *calc.Sheet, file, sep string) error {
	comma, err := csvSeparator(sep)
	if err != nil {
		return err
	}
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := csv.Write(w, sh.Sheet, comma); err != nil {
		return err
	}
	logger.Debug("sheet exported", zap.String("file", file))
	return w.Close()
}

type EvalFormulaCommand struct {
	Format string
	File   string
	Sep    string
	Addr   string
}

func (c EvalFormulaCommand) Run(args []string) error {
	set := cli.NewFlagSet("eval")
	set.StringVar(&c.Format, "f", cfg.Print.Format, "output format (text, json, csv)")
	set.StringVar(&c.File, "i", "", "csv file formulas refer to")
	set.StringVar(&c.Sep, "s", cfg.CSV.Comma, "csv field separator")
	set.StringVar(&c.Addr, "a", "A1", "address of the cell formulas are evaluated in")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return fmt.Errorf("no formula given")
	}
	pos, err := layout.ParsePosition(c.Addr)
	if err != nil {
		return err
	}
	var sh *calc.Sheet
	if c.File != "" {
		sh, err = openSheet(c.File, c.Sep)
	} else {
		sh, err = calc.New(grid.NewSheet(""), env.Default(), logger)
	}
	if err != nil {
		return err
	}
	tb := table{
		Headers: []string{"formula", "value", "error.type"},
	}
	for _, a := range set.Args() {
		row, err := evalFormula(sh, a, pos)
		if err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
		tb.Append(row...)
	}
	return tb.Print(os.Stdout, c.Format)
}

func evalFormula(sh *calc.Sheet, formula string, pos layout.Position) ([]string, error) {
	expr, err := parse.ParseFormula(formula)
	if err != nil {
		return nil, err
	}
	res, err := sh.Eval(expr, pos)
	if err != nil {
		return nil, err
	}
	typ, err := errorType(sh, expr, pos)
	if err != nil {
		return nil, err
	}
	return []string{formula, display(res), typ}, nil
}

// errorType gives the result of ERROR.TYPE applied to expr. An error without
// classification index is reported as unclassified.
func errorType(sh *calc.Sheet, expr eval.Expr, pos layout.Position) (string, error) {
	res, err := sh.Eval(eval.NewCall("ERROR.TYPE", expr), pos)
	if errors.Is(err, builtins.ErrInvalidCode) {
		logger.Debug("unclassified error", zap.String("cell", pos.Addr()), zap.Error(err))
		return "unclassified", nil
	}
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func openSheet(file, sep string) (*calc.Sheet, error) {
	comma, err := csvSeparator(sep)
	if err != nil {
		return nil, err
	}
	sh, err := csv.Open(file, csv.Options{
		Comma:     comma,
		TrimSpace: cfg.CSV.TrimSpace,
	})
	if err != nil {
		return nil, err
	}
	return calc.New(sh, env.Default(), logger)
}

func display(v value.ScalarValue) string {
	if v == nil {
		return ""
	}
	vf, err := cfg.Formatter()
	if err != nil {
		return v.String()
	}
	str, err := vf.Format(v)
	if err != nil {
		logger.Debug("value not formatted", zap.String("value", v.String()), zap.Error(err))
		return v.String()
	}
	return str
}

func indexOf(code value.ErrorCode) string {
	ix, ok := code.Index()
	if !ok {
		return "-"
	}
	return strconv.Itoa(ix)
}

func csvSeparator(str string) (rune, error) {
	var comma rune
	switch str {
	case "semi", "semicolon", ";":
		comma = ';'
	case "comma", ",", "":
		comma = ','
	case "tab", "\t", `\t`:
		comma = '\t'
	case "colon", ":":
		comma = ':'
	case "pipe", "|":
		comma = '|'
	default:
		r, n := utf8.DecodeRuneInString(str)
		if r == utf8.RuneError || n != len(str) {
			return 0, fmt.Errorf("%s: unsupported separator", str)
		}
		comma = r
	}
	return comma, nil
}
