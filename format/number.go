package format

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/midbel/errtype/value"
)

var ErrPattern = errors.New("invalid pattern")

// numberFormatter writes numbers following patterns like "#,##0.00": '0'
// is a mandatory digit, '#' an optional one and ',' enables the grouping of
// thousands. A leading '+' writes the sign of positive numbers too.
type numberFormatter struct {
	minInt int
	minDec int
	maxDec int

	signAlways  bool
	hasGrouping bool

	decimalSep  byte
	thousandSep byte
}

func ParseNumberFormatter(pattern string) (Formatter, error) {
	nf := numberFormatter{
		decimalSep:  '.',
		thousandSep: ',',
	}
	left, right, _ := strings.Cut(pattern, ".")
	if strings.HasPrefix(left, "+") {
		nf.signAlways = true
		left = left[1:]
	}
	if left == "" {
		return nil, fmt.Errorf("%q: %w", pattern, ErrPattern)
	}
	optional := false
	for i := range len(right) {
		switch right[i] {
		case '0':
			if optional {
				return nil, fmt.Errorf("%q: %w: mandatory digit after optional one", pattern, ErrPattern)
			}
			nf.minDec++
		case '#':
			optional = true
		default:
			return nil, fmt.Errorf("%q: %w: unexpected character in fractional part", pattern, ErrPattern)
		}
		nf.maxDec++
	}
	for i := len(left) - 1; i >= 0; i-- {
		switch left[i] {
		case ',':
			nf.hasGrouping = true
		case '0':
			nf.minInt++
		case '#':
		default:
			return nil, fmt.Errorf("%q: %w: unexpected character in integral part", pattern, ErrPattern)
		}
	}
	return nf, nil
}

func (nf numberFormatter) Format(v value.Value) (string, error) {
	f, ok := v.(value.Float)
	if !ok {
		return "", fmt.Errorf("%s: value is not a number", v.Type())
	}
	var (
		num    = float64(f)
		signed = math.Signbit(num) && num != 0
		str    = strconv.FormatFloat(math.Abs(num), 'f', nf.maxDec, 64)
	)
	left, right, _ := strings.Cut(str, ".")
	integral := nf.integral(left)
	fractional := nf.fractional(right)

	var all []byte
	if signed {
		all = append(all, '-')
	} else if nf.signAlways {
		all = append(all, '+')
	}
	all = append(all, integral...)
	if len(fractional) > 0 {
		all = append(all, nf.decimalSep)
		all = append(all, fractional...)
	}
	return string(all), nil
}

func (nf numberFormatter) integral(str string) []byte {
	digits := []byte(strings.TrimLeft(str, "0"))
	for len(digits) < nf.minInt {
		digits = slices.Insert(digits, 0, '0')
	}
	if !nf.hasGrouping || len(digits) <= 3 {
		return digits
	}
	var res []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			res = append(res, nf.thousandSep)
		}
		res = append(res, digits[i])
	}
	return res
}

func (nf numberFormatter) fractional(str string) []byte {
	digits := []byte(str)
	for len(digits) > nf.minDec && digits[len(digits)-1] == '0' {
		digits = digits[:len(digits)-1]
	}
	return digits
}
