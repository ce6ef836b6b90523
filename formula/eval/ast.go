package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/errtype/formula/op"
	"github.com/midbel/errtype/formula/types"
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

type Expr interface {
	fmt.Stringer
}

func NewNumber(n float64) Expr {
	return number{
		value: n,
	}
}

func NewLiteral(str string) Expr {
	return literal{
		value: str,
	}
}

func NewBoolean(b bool) Expr {
	return boolean{
		value: b,
	}
}

func NewError(code value.ErrorCode) Expr {
	return errorLit{
		code: code,
	}
}

func NewIdentifier(name string) Expr {
	return identifier{
		name: name,
	}
}

func NewArray(data [][]value.ScalarValue) Expr {
	return array{
		data: data,
	}
}

func NewCall(name string, args ...Expr) Expr {
	return call{
		ident: name,
		args:  args,
	}
}

func NewBinary(left, right Expr, oper op.Op) Expr {
	return binary{
		left:  left,
		right: right,
		op:    oper,
	}
}

func NewUnary(expr Expr, oper op.Op) Expr {
	return unary{
		expr: expr,
		op:   oper,
	}
}

func NewCellAddr(pos layout.Position) Expr {
	return cellAddr{
		Position: pos,
	}
}

func NewRangeAddr(start, end layout.Position) Expr {
	return rangeAddr{
		startAddr: cellAddr{Position: start},
		endAddr:   cellAddr{Position: end},
	}
}

// ParseAddr builds a cell or a range node from addresses like "B2",
// "data!A1" or "A1:C3".
func ParseAddr(addr string) (Expr, error) {
	fst, lst, ok := strings.Cut(addr, ":")
	start, err := layout.ParsePosition(fst)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NewCellAddr(start), nil
	}
	end, err := layout.ParsePosition(lst)
	if err != nil {
		return nil, err
	}
	if end.Sheet == "" {
		end.Sheet = start.Sheet
	}
	return NewRangeAddr(start, end), nil
}

type binary struct {
	left  Expr
	right Expr
	op    op.Op
}

func (b binary) String() string {
	oper := op.Symbol(b.op)
	return fmt.Sprintf("%s %s %s", b.left.String(), oper, b.right.String())
}

type unary struct {
	expr Expr
	op   op.Op
}

func (u unary) String() string {
	oper := op.Symbol(u.op)
	return fmt.Sprintf("%s%s", oper, u.expr.String())
}

type literal struct {
	value string
}

func (i literal) String() string {
	return fmt.Sprintf("\"%s\"", i.value)
}

type number struct {
	value float64
}

func (n number) String() string {
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

type boolean struct {
	value bool
}

func (b boolean) String() string {
	return value.Boolean(b.value).String()
}

type errorLit struct {
	code value.ErrorCode
}

func (e errorLit) String() string {
	return e.code.String()
}

type array struct {
	data [][]value.ScalarValue
}

func (a array) String() string {
	return types.Array{Data: a.data}.String()
}

type call struct {
	ident string
	args  []Expr
}

func (c call) String() string {
	var args []string
	for i := range c.args {
		args = append(args, c.args[i].String())
	}
	return fmt.Sprintf("%s(%s)", c.ident, strings.Join(args, ", "))
}

type identifier struct {
	name string
}

func (i identifier) String() string {
	return i.name
}

type cellAddr struct {
	layout.Position
}

func (a cellAddr) String() string {
	return a.Position.Addr()
}

type rangeAddr struct {
	startAddr cellAddr
	endAddr   cellAddr
}

func (a rangeAddr) String() string {
	end := a.endAddr.Position
	if end.Sheet == a.startAddr.Sheet {
		end.Sheet = ""
	}
	return fmt.Sprintf("%s:%s", a.startAddr.String(), end.Addr())
}
