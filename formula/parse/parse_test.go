package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormula(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
	}{
		{Input: "=1+2*3", Want: "1 + 2 * 3"},
		{Input: "(1+2)*3", Want: "1 + 2 * 3"},
		{Input: "=ERROR.TYPE(1/0)", Want: "ERROR.TYPE(1 / 0)"},
		{Input: "=error.type(#n/a)", Want: "error.type(#N/A)"},
		{Input: "=ERROR.TYPE(~circular~ref~)", Want: "ERROR.TYPE(~CIRCULAR~REF~)"},
		{Input: "=IFERROR(A1; \"none\")", Want: `IFERROR(A1, "none")`},
		{Input: "=ISNA(data!$B$2)", Want: "ISNA(data!B2)"},
		{Input: "='my sheet'!A1:B3", Want: "my sheet!A1:B3"},
		{Input: "=-2^2", Want: "-2 ^ 2"},
		{Input: "=\"say \"\"hi\"\"\" & TRUE", Want: `"say "hi"" & TRUE`},
		{Input: "={1,2;#DIV/0!,\"x\"}", Want: "{1,2;#DIV/0!,x}"},
		{Input: "={-1.5e2,false}", Want: "{-150,FALSE}"},
		{Input: "=NA()", Want: "NA()"},
		{Input: "=rate * .5", Want: "rate * 0.5"},
		{Input: "=A1<>B1", Want: "A1 <> B1"},
		{Input: "=1+1<=2", Want: "1 + 1 <= 2"},
		{Input: "=1&2=\"12\"", Want: `1 & 2 = "12"`},
		{Input: "=ISNA(A1) >= FALSE", Want: "ISNA(A1) >= FALSE"},
	}
	for _, c := range tests {
		expr, err := ParseFormula(c.Input)
		require.NoError(t, err, c.Input)
		assert.Equal(t, c.Want, expr.String(), c.Input)
	}
}

func TestParseFormulaInvalid(t *testing.T) {
	tests := []string{
		"",
		"=1+",
		"=(1+2",
		"=SUM(1,",
		"=SUM(1,)",
		"={1,2;3}",
		"={}",
		"={A1}",
		"=#OOPS",
		"=1 2",
		"=\"unterminated",
		"=data!foo",
		"=1 @ 2",
		"=1<",
		"=1=>2",
	}
	for _, str := range tests {
		_, err := ParseFormula(str)
		assert.Error(t, err, str)
	}
}

func TestScan(t *testing.T) {
	scan, err := Scan(strings.NewReader("=ERROR.TYPE(A1:B2)&#N/A"))
	require.NoError(t, err)

	want := []rune{Ident, BegGrp, Ident, RangeRef, Ident, EndGrp, Concat, ErrorLit, EOF}
	for _, kind := range want {
		tok := scan.Scan()
		assert.Equal(t, kind, tok.Type, tok.String())
	}
}

func TestScanComparison(t *testing.T) {
	scan, err := Scan(strings.NewReader("=A1<>1<=2>=3>4<5=6"))
	require.NoError(t, err)

	want := []rune{Ident, Ne, Number, Le, Number, Ge, Number, Gt, Number, Lt, Number, Eq, Number, EOF}
	for _, kind := range want {
		tok := scan.Scan()
		assert.Equal(t, kind, tok.Type, tok.String())
	}
}

