package parse

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/midbel/errtype/internal/ds"
	"github.com/midbel/errtype/value"
)

const (
	Invalid rune = 0

	EOF rune = 1 << iota
	Ident
	Number
	Literal
	ErrorLit
	Add
	Sub
	Mul
	Div
	Pow
	Concat
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Comma
	Semi
	BegGrp
	EndGrp
	BegArr
	EndArr
	RangeRef
	SheetRef
)

type Token struct {
	Literal  string
	Type     rune
	Position int
}

func (t Token) String() string {
	var str string
	switch t.Type {
	case Invalid:
		return "<invalid>"
	case EOF:
		return "<eof>"
	case Ident:
		str = "identifier"
	case Number:
		str = "number"
	case Literal:
		str = "literal"
	case ErrorLit:
		str = "error"
	case Add:
		return "<add>"
	case Sub:
		return "<subtract>"
	case Mul:
		return "<multiply>"
	case Div:
		return "<divide>"
	case Pow:
		return "<power>"
	case Concat:
		return "<concat>"
	case Eq:
		return "<eq>"
	case Ne:
		return "<ne>"
	case Lt:
		return "<lt>"
	case Le:
		return "<le>"
	case Gt:
		return "<gt>"
	case Ge:
		return "<ge>"
	case Comma:
		return "<comma>"
	case Semi:
		return "<semicolon>"
	case BegGrp:
		return "<beg-group>"
	case EndGrp:
		return "<end-group>"
	case BegArr:
		return "<beg-array>"
	case EndArr:
		return "<end-array>"
	case RangeRef:
		return "<range>"
	case SheetRef:
		return "<sheet>"
	}
	return fmt.Sprintf("%s(%s)", str, t.Literal)
}

// Scanner splits the text of a formula into tokens. A leading '=' is
// skipped.
type Scanner struct {
	input []byte
	pos   int
	next  int
	char  rune

	buf bytes.Buffer
}

func Scan(r io.Reader) (*Scanner, error) {
	var (
		scan Scanner
		err  error
	)
	scan.input, err = io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	scan.read()
	if scan.char == equal {
		scan.read()
	}
	return &scan, nil
}

func (s *Scanner) Scan() Token {
	s.skipBlanks()

	var tok Token
	tok.Position = s.pos
	if s.done() {
		tok.Type = EOF
		return tok
	}
	defer s.reset()
	switch {
	case isOperator(s.char):
		s.scanOperator(&tok)
	case isDelimiter(s.char):
		s.scanDelimiter(&tok)
	case s.char == dquote:
		s.scanLiteral(&tok)
	case s.char == squote:
		s.scanQuotedIdent(&tok)
	case s.char == pound || s.char == tilde:
		s.scanError(&tok)
	case isDigit(s.char) || (s.char == dot && isDigit(s.peek())):
		s.scanNumber(&tok)
	case isLetter(s.char) || s.char == dollar:
		s.scanIdent(&tok)
	default:
		tok.Type = Invalid
		tok.Literal = string(s.char)
		s.read()
	}
	return tok
}

func (s *Scanner) scanIdent(tok *Token) {
	for !s.done() && (isAlpha(s.char) || (s.char == dot && isAlpha(s.peek()))) {
		s.write()
		s.read()
	}
	tok.Type = Ident
	tok.Literal = s.literal()
}

func (s *Scanner) scanQuotedIdent(tok *Token) {
	s.read()
	for !s.done() && s.char != squote {
		s.write()
		s.read()
	}
	tok.Type = Ident
	tok.Literal = s.literal()
	if s.char != squote {
		tok.Type = Invalid
		return
	}
	s.read()
}

func (s *Scanner) scanNumber(tok *Token) {
	tok.Type = Number
	s.scanDigits()
	if s.char == dot {
		s.write()
		s.read()
		s.scanDigits()
	}
	if s.char == 'e' || s.char == 'E' {
		if next := s.peek(); isDigit(next) || next == plus || next == minus {
			s.write()
			s.read()
			s.write()
			s.read()
			s.scanDigits()
		}
	}
	tok.Literal = s.literal()
}

func (s *Scanner) scanDigits() {
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
}

// scanLiteral reads a double quoted string. A quote is written twice to be
// part of the string.
func (s *Scanner) scanLiteral(tok *Token) {
	s.read()
	for !s.done() {
		if s.char == dquote {
			if s.peek() != dquote {
				break
			}
			s.read()
		}
		s.write()
		s.read()
	}
	tok.Type = Literal
	tok.Literal = s.literal()
	if s.char != dquote {
		tok.Type = Invalid
		return
	}
	s.read()
}

var errorTokens = func() *ds.Trie[value.ErrorCode] {
	trie := ds.NewTrie[value.ErrorCode]()
	for _, code := range value.Codes() {
		trie.Register(tokenPath(code.Token()), code)
	}
	return trie
}()

func tokenPath(str string) []string {
	return strings.Split(strings.ToUpper(str), "")
}

// scanError reads the longest error token found at the current position.
func (s *Scanner) scanError(tok *Token) {
	code, size := errorTokens.Longest(tokenPath(string(s.input[s.pos:])))
	if size == 0 {
		tok.Type = Invalid
		tok.Literal = string(s.char)
		s.read()
		return
	}
	for range size {
		s.read()
	}
	tok.Type = ErrorLit
	tok.Literal = code.Token()
}

func (s *Scanner) scanOperator(tok *Token) {
	tok.Type = Invalid
	switch s.char {
	case amper:
		tok.Type = Concat
	case plus:
		tok.Type = Add
	case minus:
		tok.Type = Sub
	case star:
		tok.Type = Mul
	case slash:
		tok.Type = Div
	case caret:
		tok.Type = Pow
	case colon:
		tok.Type = RangeRef
	case bang:
		tok.Type = SheetRef
	case equal:
		tok.Type = Eq
	case langle:
		tok.Type = Lt
		if k := s.peek(); k == equal {
			tok.Type = Le
			s.read()
		} else if k == rangle {
			tok.Type = Ne
			s.read()
		}
	case rangle:
		tok.Type = Gt
		if s.peek() == equal {
			tok.Type = Ge
			s.read()
		}
	default:
	}
	s.read()
}

func (s *Scanner) scanDelimiter(tok *Token) {
	tok.Type = Invalid
	switch s.char {
	case comma:
		tok.Type = Comma
	case semi:
		tok.Type = Semi
	case lparen:
		tok.Type = BegGrp
	case rparen:
		tok.Type = EndGrp
	case lcurly:
		tok.Type = BegArr
	case rcurly:
		tok.Type = EndArr
	default:
	}
	s.read()
}

func (s *Scanner) literal() string {
	return s.buf.String()
}

func (s *Scanner) write() {
	s.buf.WriteRune(s.char)
}

func (s *Scanner) reset() {
	s.buf.Reset()
}

func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.char = 0
		s.pos = len(s.input)
		return
	}
	r, n := utf8.DecodeRune(s.input[s.next:])
	s.char, s.pos, s.next = r, s.next, s.next+n
}

func (s *Scanner) peek() rune {
	r, _ := utf8.DecodeRune(s.input[s.next:])
	return r
}

func (s *Scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *Scanner) skipBlanks() {
	for isBlank(s.char) {
		s.read()
	}
}

const (
	underscore = '_'
	bang       = '!'
	semi       = ';'
	comma      = ','
	rparen     = ')'
	lparen     = '('
	lcurly     = '{'
	rcurly     = '}'
	squote     = '\''
	dquote     = '"'
	space      = ' '
	tab        = '\t'
	nl         = '\n'
	cr         = '\r'
	plus       = '+'
	minus      = '-'
	star       = '*'
	slash      = '/'
	caret      = '^'
	equal      = '='
	langle     = '<'
	rangle     = '>'
	colon      = ':'
	dot        = '.'
	amper      = '&'
	dollar     = '$'
	pound      = '#'
	tilde      = '~'
)

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c) || c == underscore
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return isLetter(c) || isDigit(c) || c == dollar
}

func isBlank(c rune) bool {
	return c == space || c == tab || c == nl || c == cr
}

func isDelimiter(c rune) bool {
	return c == semi || c == lparen || c == rparen ||
		c == lcurly || c == rcurly || c == comma
}

func isOperator(c rune) bool {
	return c == plus || c == minus || c == slash || c == star ||
		c == colon || c == bang || c == caret || c == amper ||
		c == equal || c == langle || c == rangle
}
