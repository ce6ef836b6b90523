package value

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCode  = errors.New("unknown error code")
	ErrUnknownToken = errors.New("unknown error token")
)

// ErrorCode identifies one of the error conditions a formula can produce.
type ErrorCode uint8

const (
	CodeNull ErrorCode = iota
	CodeDiv0
	CodeValue
	CodeRef
	CodeName
	CodeNum
	CodeNA
	CodeCircularRef
	CodeFuncNotImplemented
	CodeGettingData

	numCodes = iota
)

type errorEntry struct {
	code  int
	token string
	// 1-based position reported by ERROR.TYPE, 0 when unclassified
	index int
}

// codes are the internal identifiers of the spreadsheet application. The two
// negative ones are sentinels that never appear in a saved file.
var registry = [numCodes]errorEntry{
	CodeNull:               {code: 0x00, token: "#NULL!", index: 1},
	CodeDiv0:               {code: 0x07, token: "#DIV/0!", index: 2},
	CodeValue:              {code: 0x0F, token: "#VALUE!", index: 3},
	CodeRef:                {code: 0x17, token: "#REF!", index: 4},
	CodeName:               {code: 0x1D, token: "#NAME?", index: 5},
	CodeNum:                {code: 0x24, token: "#NUM!", index: 6},
	CodeNA:                 {code: 0x2A, token: "#N/A", index: 7},
	CodeCircularRef:        {code: -60, token: "~CIRCULAR~REF~", index: 8},
	CodeFuncNotImplemented: {code: -30, token: "~FUNCTION~NOT~IMPLEMENTED~", index: 9},
	CodeGettingData:        {code: 0x2B, token: "#GETTING_DATA"},
}

var (
	codesByNumber = make(map[int]ErrorCode, numCodes)
	codesByToken  = make(map[string]ErrorCode, numCodes)
)

func init() {
	for i, e := range registry {
		code := ErrorCode(i)
		if _, ok := codesByNumber[e.code]; ok {
			panic(fmt.Sprintf("duplicate error code %d", e.code))
		}
		if _, ok := codesByToken[e.token]; ok {
			panic(fmt.Sprintf("duplicate error token %s", e.token))
		}
		codesByNumber[e.code] = code
		codesByToken[e.token] = code
	}
}

// Codes returns every registered error code in declaration order.
func Codes() []ErrorCode {
	list := make([]ErrorCode, 0, numCodes)
	for i := range numCodes {
		list = append(list, ErrorCode(i))
	}
	return list
}

func ByCode(code int) (ErrorCode, error) {
	e, ok := codesByNumber[code]
	if !ok {
		return 0, fmt.Errorf("%d: %w", code, ErrUnknownCode)
	}
	return e, nil
}

// ByToken finds the error code displayed as token. The lookup ignores case.
func ByToken(token string) (ErrorCode, error) {
	e, ok := codesByToken[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return 0, fmt.Errorf("%s: %w", token, ErrUnknownToken)
	}
	return e, nil
}

func (e ErrorCode) Valid() bool {
	return e < numCodes
}

func (e ErrorCode) Code() int {
	if !e.Valid() {
		return -1
	}
	return registry[e].code
}

func (e ErrorCode) Token() string {
	if !e.Valid() {
		return ""
	}
	return registry[e].token
}

// Index gives the 1-based classification index of e. Codes outside the
// classification table report false.
func (e ErrorCode) Index() (int, bool) {
	if !e.Valid() || registry[e].index == 0 {
		return 0, false
	}
	return registry[e].index, true
}

func (e ErrorCode) String() string {
	if !e.Valid() {
		return fmt.Sprintf("ErrorCode(%d)", uint8(e))
	}
	return registry[e].token
}

var (
	ErrNull     = createError(CodeNull)
	ErrDiv0     = createError(CodeDiv0)
	ErrValue    = createError(CodeValue)
	ErrRef      = createError(CodeRef)
	ErrName     = createError(CodeName)
	ErrNum      = createError(CodeNum)
	ErrNA       = createError(CodeNA)
	ErrCircular = createError(CodeCircularRef)
	ErrNotImpl  = createError(CodeFuncNotImplemented)
)

// Error is the value of an expression whose evaluation failed.
type Error struct {
	code ErrorCode
}

func createError(code ErrorCode) Error {
	return Error{
		code: code,
	}
}

func ErrorOf(code ErrorCode) Error {
	return createError(code)
}

func (Error) Type() string {
	return TypeError
}

func (Error) Kind() ValueKind {
	return KindError
}

func (e Error) Code() ErrorCode {
	return e.code
}

func (e Error) String() string {
	return e.code.String()
}

func (e Error) Scalar() any {
	return e.code.Token()
}
