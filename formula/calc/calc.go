// Package calc evaluates the formulas stored in a sheet.
package calc

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/midbel/errtype/formula/env"
	"github.com/midbel/errtype/formula/eval"
	"github.com/midbel/errtype/formula/parse"
	"github.com/midbel/errtype/grid"
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

// Sheet computes formula cells on demand. A cell whose raw content starts
// with '=' holds a formula; every other cell is read from the underlying
// sheet.
//
// A formula reached again while it is being computed gives ~CIRCULAR~REF~.
// Sheet is not safe for concurrent use.
type Sheet struct {
	*grid.Sheet

	engine   *eval.Engine
	ctx      eval.Context
	logger   *zap.Logger
	formulas map[layout.Position]eval.Expr
	results  map[layout.Position]value.ScalarValue
	running  map[layout.Position]struct{}
	err      error
}

func New(sh *grid.Sheet, root *env.Environment, logger *zap.Logger) (*Sheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := Sheet{
		Sheet:    sh,
		engine:   eval.NewEngine(logger),
		logger:   logger,
		formulas: make(map[layout.Position]eval.Expr),
		results:  make(map[layout.Position]value.ScalarValue),
		running:  make(map[layout.Position]struct{}),
	}
	s.ctx = eval.SheetContext(root, &s)

	for pos := range sh.Bounds().Positions() {
		raw := sh.Raw(pos)
		if !strings.HasPrefix(raw, "=") {
			continue
		}
		expr, err := parse.ParseFormula(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pos.Addr(), err)
		}
		pos.Sheet = ""
		s.formulas[pos] = expr
	}
	return &s, nil
}

func (s *Sheet) Formula(pos layout.Position) (eval.Expr, bool) {
	pos.Sheet = ""
	expr, ok := s.formulas[pos]
	return expr, ok
}

// Cell gives the value of the cell at pos, computing it first if it holds
// a formula.
func (s *Sheet) Cell(pos layout.Position) value.ScalarValue {
	pos.Sheet = ""
	expr, ok := s.formulas[pos]
	if !ok {
		return s.Sheet.Cell(pos)
	}
	res, err := s.compute(pos, expr)
	if err != nil {
		if s.err == nil {
			s.err = fmt.Errorf("%s: %w", pos.Addr(), err)
		}
		return nil
	}
	return res
}

// Recalc computes every formula and stores its result in the underlying
// sheet. It stops at the first formula that can not be evaluated.
func (s *Sheet) Recalc() error {
	for pos := range s.Bounds().Positions() {
		pos.Sheet = ""
		if _, ok := s.formulas[pos]; !ok {
			continue
		}
		res := s.Cell(pos)
		if s.err != nil {
			return s.err
		}
		if err := s.SetValue(pos, s.Raw(pos), res); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sheet) compute(pos layout.Position, expr eval.Expr) (value.ScalarValue, error) {
	if res, ok := s.results[pos]; ok {
		return res, nil
	}
	if _, ok := s.running[pos]; ok {
		s.logger.Debug("circular reference", zap.String("cell", pos.Addr()))
		return value.ErrCircular, nil
	}
	s.running[pos] = struct{}{}
	defer delete(s.running, pos)

	res, err := s.engine.Compute(expr, s.ctx, pos.Row(), pos.Col())
	if err != nil {
		return nil, err
	}
	// a dependency that failed reads as blank, its result is not usable
	if s.err != nil {
		return nil, s.err
	}
	s.results[pos] = res
	return res, nil
}

// Eval computes expr as if it were the formula of the cell at pos.
func (s *Sheet) Eval(expr eval.Expr, pos layout.Position) (value.ScalarValue, error) {
	res, err := s.engine.Compute(expr, s.ctx, pos.Row(), pos.Col())
	if err == nil && s.err != nil {
		err = s.err
	}
	return res, err
}
