// Package parse turns the text of a formula into an expression the
// evaluator can run.
package parse

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"strconv"
	"strings"

	"github.com/midbel/errtype/formula/eval"
	"github.com/midbel/errtype/formula/op"
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

var ErrSyntax = errors.New("syntax error")

const (
	powLowest = iota
	powCompare
	powConcat
	powAdd
	powMul
	powPow
	powUnary
)

var defaultBindings = map[rune]int{
	Add:    powAdd,
	Sub:    powAdd,
	Mul:    powMul,
	Div:    powMul,
	Pow:    powPow,
	Concat: powConcat,
	Eq:     powCompare,
	Ne:     powCompare,
	Lt:     powCompare,
	Le:     powCompare,
	Gt:     powCompare,
	Ge:     powCompare,
}

var operators = map[rune]op.Op{
	Add:    op.Add,
	Sub:    op.Sub,
	Mul:    op.Mul,
	Div:    op.Div,
	Pow:    op.Pow,
	Concat: op.Concat,
	Eq:     op.Eq,
	Ne:     op.Ne,
	Lt:     op.Lt,
	Le:     op.Le,
	Gt:     op.Gt,
	Ge:     op.Ge,
}

type (
	PrefixFunc func(*Parser) (eval.Expr, error)
	InfixFunc  func(*Parser, eval.Expr) (eval.Expr, error)
)

type Grammar struct {
	prefix   map[rune]PrefixFunc
	infix    map[rune]InfixFunc
	bindings map[rune]int
}

func (g *Grammar) Pow(kind rune) int {
	pow, ok := g.bindings[kind]
	if !ok {
		pow = powLowest
	}
	return pow
}

func (g *Grammar) Prefix(tok Token) (PrefixFunc, error) {
	fn, ok := g.prefix[tok.Type]
	if !ok {
		return nil, unexpected(tok)
	}
	return fn, nil
}

func (g *Grammar) Infix(tok Token) (InfixFunc, error) {
	fn, ok := g.infix[tok.Type]
	if !ok {
		return nil, unexpected(tok)
	}
	return fn, nil
}

func (g *Grammar) RegisterPrefix(kd rune, fn PrefixFunc) {
	g.prefix[kd] = fn
}

func (g *Grammar) RegisterInfix(kd rune, fn InfixFunc) {
	g.infix[kd] = fn
}

func (g *Grammar) RegisterBinding(kd rune, pow int) {
	g.bindings[kd] = pow
}

func FormulaGrammar() *Grammar {
	g := Grammar{
		prefix:   make(map[rune]PrefixFunc),
		infix:    make(map[rune]InfixFunc),
		bindings: maps.Clone(defaultBindings),
	}
	g.RegisterPrefix(Ident, parseAddressOrIdentifier)
	g.RegisterPrefix(Number, parseNumber)
	g.RegisterPrefix(Literal, parseLiteral)
	g.RegisterPrefix(ErrorLit, parseError)
	g.RegisterPrefix(Sub, parseUnary)
	g.RegisterPrefix(Add, parseUnary)
	g.RegisterPrefix(BegGrp, parseGroup)
	g.RegisterPrefix(BegArr, parseArray)

	for kd := range operators {
		g.RegisterInfix(kd, parseBinary)
	}
	return &g
}

type Parser struct {
	scan *Scanner
	curr Token
	peek Token

	grammar *Grammar
}

// ParseFormula parses str with the default grammar. The leading '=' of a
// formula is optional.
func ParseFormula(str string) (eval.Expr, error) {
	p := NewParser(FormulaGrammar())
	return p.ParseString(str)
}

func NewParser(g *Grammar) *Parser {
	var p Parser
	p.grammar = g
	return &p
}

func (p *Parser) ParseString(str string) (eval.Expr, error) {
	return p.Parse(strings.NewReader(str))
}

func (p *Parser) Parse(r io.Reader) (eval.Expr, error) {
	scan, err := Scan(r)
	if err != nil {
		return nil, err
	}
	p.scan = scan
	p.next()
	p.next()

	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, unexpected(p.curr)
	}
	return expr, nil
}

func (p *Parser) parse(pow int) (eval.Expr, error) {
	fn, err := p.grammar.Prefix(p.curr)
	if err != nil {
		return nil, err
	}
	left, err := fn(p)
	if err != nil {
		return nil, err
	}
	for !p.done() && pow < p.grammar.Pow(p.curr.Type) {
		fn, err := p.grammar.Infix(p.curr)
		if err != nil {
			return nil, err
		}
		left, err = fn(p, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}

func (p *Parser) done() bool {
	return p.is(EOF)
}

func (p *Parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *Parser) currentLiteral() string {
	return p.curr.Literal
}

func parseBinary(p *Parser, left eval.Expr) (eval.Expr, error) {
	kind := p.curr.Type
	p.next()
	right, err := p.parse(p.grammar.Pow(kind))
	if err != nil {
		return nil, err
	}
	return eval.NewBinary(left, right, operators[kind]), nil
}

func parseUnary(p *Parser) (eval.Expr, error) {
	kind := p.curr.Type
	p.next()
	right, err := p.parse(powUnary)
	if err != nil {
		return nil, err
	}
	return eval.NewUnary(right, operators[kind]), nil
}

func parseGroup(p *Parser) (eval.Expr, error) {
	p.next()
	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.is(EndGrp) {
		return nil, fmt.Errorf("%w: missing ')' at end of expression", ErrSyntax)
	}
	p.next()
	return expr, nil
}

func parseNumber(p *Parser) (eval.Expr, error) {
	defer p.next()

	x, err := strconv.ParseFloat(p.currentLiteral(), 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: invalid number", p.currentLiteral(), ErrSyntax)
	}
	return eval.NewNumber(x), nil
}

func parseLiteral(p *Parser) (eval.Expr, error) {
	defer p.next()
	return eval.NewLiteral(p.currentLiteral()), nil
}

func parseError(p *Parser) (eval.Expr, error) {
	defer p.next()
	code, err := value.ByToken(p.currentLiteral())
	if err != nil {
		return nil, err
	}
	return eval.NewError(code), nil
}

// parseAddressOrIdentifier handles everything starting with a name: function
// calls, booleans, cell addresses, ranges and named values.
func parseAddressOrIdentifier(p *Parser) (eval.Expr, error) {
	if p.peek.Type == BegGrp {
		return parseCall(p)
	}
	var sheet string
	if p.peek.Type == SheetRef {
		sheet = p.currentLiteral()
		p.next()
		p.next()
		if !p.is(Ident) {
			return nil, unexpected(p.curr)
		}
	}
	name := p.currentLiteral()
	if sheet == "" {
		switch strings.ToUpper(name) {
		case "TRUE":
			p.next()
			return eval.NewBoolean(true), nil
		case "FALSE":
			p.next()
			return eval.NewBoolean(false), nil
		}
	}
	if !layout.IsAddress(strings.ReplaceAll(name, "$", "")) {
		if sheet != "" {
			return nil, fmt.Errorf("%s: %w", name, layout.ErrAddress)
		}
		p.next()
		return eval.NewIdentifier(name), nil
	}
	start, err := parsePosition(sheet, name)
	if err != nil {
		return nil, err
	}
	p.next()
	if !p.is(RangeRef) {
		return eval.NewCellAddr(start), nil
	}
	p.next()
	if !p.is(Ident) {
		return nil, unexpected(p.curr)
	}
	end, err := parsePosition(sheet, p.currentLiteral())
	if err != nil {
		return nil, err
	}
	p.next()
	return eval.NewRangeAddr(start, end), nil
}

func parsePosition(sheet, addr string) (layout.Position, error) {
	pos, err := layout.ParsePosition(addr)
	if err != nil {
		return pos, err
	}
	pos.Sheet = sheet
	return pos, nil
}

func parseCall(p *Parser) (eval.Expr, error) {
	name := p.currentLiteral()
	p.next()
	p.next()

	var args []eval.Expr
	for !p.done() && !p.is(EndGrp) {
		arg, err := p.parse(powLowest)
		if err != nil {
			return nil, err
		}
		switch p.curr.Type {
		case Comma, Semi:
			p.next()
			if p.is(EndGrp) {
				return nil, unexpected(p.curr)
			}
		case EndGrp:
		default:
			return nil, unexpected(p.curr)
		}
		args = append(args, arg)
	}
	if !p.is(EndGrp) {
		return nil, fmt.Errorf("%w: missing ')' at end of function call", ErrSyntax)
	}
	p.next()
	return eval.NewCall(name, args...), nil
}

// parseArray reads an inline array like {1,2;3,4}. Lines are separated by
// semicolons and must have the same number of columns.
func parseArray(p *Parser) (eval.Expr, error) {
	p.next()
	var (
		data [][]value.ScalarValue
		row  []value.ScalarValue
	)
	for !p.done() && !p.is(EndArr) {
		v, err := parseConstant(p)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
		switch p.curr.Type {
		case Comma:
			p.next()
		case Semi:
			data = append(data, row)
			row = nil
			p.next()
		case EndArr:
		default:
			return nil, unexpected(p.curr)
		}
	}
	if !p.is(EndArr) {
		return nil, fmt.Errorf("%w: missing '}' at end of array", ErrSyntax)
	}
	p.next()
	data = append(data, row)
	for i := range data {
		if len(data[i]) == 0 || len(data[i]) != len(data[0]) {
			return nil, fmt.Errorf("%w: array lines have different lengths", ErrSyntax)
		}
	}
	return eval.NewArray(data), nil
}

func parseConstant(p *Parser) (value.ScalarValue, error) {
	defer p.next()
	var neg bool
	if p.is(Sub) || p.is(Add) {
		neg = p.is(Sub)
		p.next()
		if !p.is(Number) {
			return nil, unexpected(p.curr)
		}
	}
	switch p.curr.Type {
	case Number:
		x, err := strconv.ParseFloat(p.currentLiteral(), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: invalid number", p.currentLiteral(), ErrSyntax)
		}
		if neg {
			x = -x
		}
		return value.Float(x), nil
	case Literal:
		return value.Text(p.currentLiteral()), nil
	case ErrorLit:
		code, err := value.ByToken(p.currentLiteral())
		if err != nil {
			return nil, err
		}
		return value.ErrorOf(code), nil
	case Ident:
		switch strings.ToUpper(p.currentLiteral()) {
		case "TRUE":
			return value.Boolean(true), nil
		case "FALSE":
			return value.Boolean(false), nil
		}
	}
	return nil, unexpected(p.curr)
}

func unexpected(tok Token) error {
	if tok.Type == EOF {
		return fmt.Errorf("%w: unexpected end of formula", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected token %s at position %d", ErrSyntax, tok, tok.Position)
}
