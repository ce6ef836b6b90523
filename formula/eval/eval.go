package eval

import (
	"cmp"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/midbel/errtype/formula/builtins"
	"github.com/midbel/errtype/formula/env"
	"github.com/midbel/errtype/formula/op"
	"github.com/midbel/errtype/formula/operand"
	"github.com/midbel/errtype/formula/types"
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

var ErrEval = errors.New("expression can not be evaluated")

// Engine evaluates expressions for a given cell. It keeps no state between
// two evaluations and can be shared by goroutines evaluating distinct cells.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger: logger,
	}
}

// Compute evaluates expr for the cell at row and col and reduces the result
// to a single value. A formula error is returned as an error value; a non nil
// error means the cell could not be evaluated at all.
func (e *Engine) Compute(expr Expr, ctx Context, row, col int) (value.ScalarValue, error) {
	res, err := e.Eval(expr, ctx, row, col)
	if err == nil {
		res, err = operand.Resolve(res, row, col)
	}
	if err == nil {
		return res.(value.ScalarValue), nil
	}
	if code, ok := value.FailureCode(err); ok {
		e.logger.Debug("evaluation failed",
			zap.String("cell", layout.At(row, col).Addr()),
			zap.Stringer("code", code),
		)
		return value.ErrorOf(code), nil
	}
	e.logger.Error("cell can not be evaluated",
		zap.String("cell", layout.At(row, col).Addr()),
		zap.Stringer("expr", expr),
		zap.Error(err),
	)
	return nil, err
}

// Eval evaluates expr without resolving its result: a cell or a range gives
// a reference.
func (e *Engine) Eval(expr Expr, ctx Context, row, col int) (value.Value, error) {
	switch x := expr.(type) {
	case number:
		return value.Float(x.value), nil
	case literal:
		return value.Text(x.value), nil
	case boolean:
		return value.Boolean(x.value), nil
	case errorLit:
		return value.ErrorOf(x.code), nil
	case array:
		return e.evalArray(x), nil
	case identifier:
		return e.evalIdent(x, ctx)
	case cellAddr:
		return ctx.At(x.Position)
	case rangeAddr:
		return ctx.Range(x.startAddr.Position, x.endAddr.Position)
	case call:
		return e.evalCall(x, ctx, row, col)
	case binary:
		return e.evalBinary(x, ctx, row, col)
	case unary:
		return e.evalUnary(x, ctx, row, col)
	default:
		return nil, fmt.Errorf("%T: %w", expr, ErrEval)
	}
}

func (e *Engine) evalArray(a array) value.Value {
	return types.NewArray(a.data)
}

func (e *Engine) evalIdent(i identifier, ctx Context) (value.Value, error) {
	v, err := ctx.Resolve(i.name)
	if errors.Is(err, env.ErrUndefined) {
		return value.ErrName, nil
	}
	return v, err
}

func (e *Engine) evalCall(c call, ctx Context, row, col int) (value.Value, error) {
	fn, err := ctx.ResolveFunc(c.ident)
	if errors.Is(err, env.ErrUndefined) {
		return value.ErrName, nil
	}
	if err != nil {
		return nil, err
	}
	args, err := e.evalArgs(c.args, ctx, row, col)
	if err != nil {
		return nil, err
	}
	res, err := fn.Call(args, row, col)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.ident, err)
	}
	return res, nil
}

func (e *Engine) evalArgs(list []Expr, ctx Context, row, col int) ([]value.Value, error) {
	args := make([]value.Value, 0, len(list))
	for i := range list {
		a, err := e.Eval(list[i], ctx, row, col)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, nil
}

func (e *Engine) evalUnary(u unary, ctx Context, row, col int) (value.Value, error) {
	v, err := e.operand(u.expr, ctx, row, col)
	if err != nil {
		return builtins.Propagate(err)
	}
	n, err := value.CastToFloat(v)
	if err != nil {
		return value.ErrValue, nil
	}
	switch u.op {
	case op.Add:
		return n, nil
	case op.Sub:
		return value.Float(-n), nil
	default:
		return value.ErrValue, nil
	}
}

func (e *Engine) evalBinary(b binary, ctx Context, row, col int) (value.Value, error) {
	args, err := e.evalArgs([]Expr{b.left, b.right}, ctx, row, col)
	if err != nil {
		return nil, err
	}
	list, err := operand.ResolveAll(args, row, col)
	if err != nil {
		return builtins.Propagate(err)
	}
	left, right := list[0], list[1]
	if b.op.Comparison() {
		return doCompare(left, right, b.op)
	}
	switch b.op {
	case op.Add:
		return doMath(left, right, func(left, right float64) (float64, value.Error, bool) {
			return left + right, value.Error{}, true
		})
	case op.Sub:
		return doMath(left, right, func(left, right float64) (float64, value.Error, bool) {
			return left - right, value.Error{}, true
		})
	case op.Mul:
		return doMath(left, right, func(left, right float64) (float64, value.Error, bool) {
			return left * right, value.Error{}, true
		})
	case op.Div:
		return doMath(left, right, func(left, right float64) (float64, value.Error, bool) {
			if right == 0 {
				return 0, value.ErrDiv0, false
			}
			return left / right, value.Error{}, true
		})
	case op.Pow:
		return doMath(left, right, func(left, right float64) (float64, value.Error, bool) {
			res := math.Pow(left, right)
			if math.IsNaN(res) || math.IsInf(res, 0) {
				return 0, value.ErrNum, false
			}
			return res, value.Error{}, true
		})
	case op.Concat:
		ls, err := value.CastToText(left)
		if err != nil {
			return value.ErrValue, nil
		}
		rs, err := value.CastToText(right)
		if err != nil {
			return value.ErrValue, nil
		}
		return value.Text(ls + rs), nil
	default:
		return nil, fmt.Errorf("%s: %w", b, ErrEval)
	}
}

func (e *Engine) operand(expr Expr, ctx Context, row, col int) (value.ScalarValue, error) {
	v, err := e.Eval(expr, ctx, row, col)
	if err != nil {
		return nil, err
	}
	return operand.Resolve(v, row, col)
}

func doMath(left, right value.ScalarValue, do func(left, right float64) (float64, value.Error, bool)) (value.Value, error) {
	ls, err := value.CastToFloat(left)
	if err != nil {
		return value.ErrValue, nil
	}
	rs, err := value.CastToFloat(right)
	if err != nil {
		return value.ErrValue, nil
	}
	res, fail, ok := do(float64(ls), float64(rs))
	if !ok {
		return fail, nil
	}
	return value.Float(res), nil
}

// doCompare orders blanks as the zero value of the other operand, then
// numbers before texts before booleans. Texts compare without case.
func doCompare(left, right value.ScalarValue, oper op.Op) (value.Value, error) {
	left = blankAs(left, right)
	right = blankAs(right, left)

	var res int
	if lr, rr := rank(left), rank(right); lr != rr {
		res = cmp.Compare(lr, rr)
	} else {
		c, ok := left.(value.Comparable)
		if !ok {
			return nil, fmt.Errorf("%s: %w: not comparable", left.Type(), ErrEval)
		}
		eq, err := c.Equal(right)
		if err != nil {
			return nil, err
		}
		if !eq {
			less, err := c.Less(right)
			if err != nil {
				return nil, err
			}
			res = 1
			if less {
				res = -1
			}
		}
	}
	switch oper {
	case op.Eq:
		return value.Boolean(res == 0), nil
	case op.Ne:
		return value.Boolean(res != 0), nil
	case op.Lt:
		return value.Boolean(res < 0), nil
	case op.Le:
		return value.Boolean(res <= 0), nil
	case op.Gt:
		return value.Boolean(res > 0), nil
	case op.Ge:
		return value.Boolean(res >= 0), nil
	default:
		return nil, fmt.Errorf("%s: %w", op.Symbol(oper), ErrEval)
	}
}

func blankAs(v, other value.ScalarValue) value.ScalarValue {
	if _, ok := v.(value.Blank); !ok {
		return v
	}
	switch other.(type) {
	case value.Text:
		return value.Text("")
	case value.Boolean:
		return value.Boolean(false)
	default:
		return value.Float(0)
	}
}

func rank(v value.ScalarValue) int {
	switch v.(type) {
	case value.Float:
		return 0
	case value.Text:
		return 1
	case value.Boolean:
		return 2
	default:
		return 3
	}
}
