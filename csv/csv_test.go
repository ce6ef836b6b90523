package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

func TestParse(t *testing.T) {
	tests := []struct {
		Input string
		Want  value.ScalarValue
	}{
		{Input: "", Want: value.Empty()},
		{Input: "  ", Want: value.Empty()},
		{Input: "42", Want: value.Float(42)},
		{Input: " -1.5 ", Want: value.Float(-1.5)},
		{Input: "TRUE", Want: value.Boolean(true)},
		{Input: "false", Want: value.Boolean(false)},
		{Input: "#DIV/0!", Want: value.ErrDiv0},
		{Input: "#n/a", Want: value.ErrNA},
		{Input: "~CIRCULAR~REF~", Want: value.ErrCircular},
		{Input: "#GETTING_DATA", Want: value.ErrorOf(value.CodeGettingData)},
		{Input: "inf", Want: value.Text("inf")},
		{Input: "#OOPS", Want: value.Text("#OOPS")},
		{Input: "foobar", Want: value.Text("foobar")},
	}
	for _, c := range tests {
		got := Parse(c.Input)
		assert.Equal(t, c.Want, got, "parse %q", c.Input)
	}
}

func TestRead(t *testing.T) {
	const data = "1;#N/A;foo\n;TRUE\n#VALUE!;;\"a;b\"\n"

	sh, err := Read(strings.NewReader(data), Options{Name: "data", Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, "data", sh.Name())
	assert.Equal(t, layout.Dimension{Lines: 3, Columns: 3}, sh.Size())

	tests := []struct {
		Addr string
		Want value.ScalarValue
	}{
		{Addr: "A1", Want: value.Float(1)},
		{Addr: "B1", Want: value.ErrNA},
		{Addr: "C1", Want: value.Text("foo")},
		{Addr: "A2", Want: nil},
		{Addr: "B2", Want: value.Boolean(true)},
		{Addr: "A3", Want: value.ErrValue},
		{Addr: "C3", Want: value.Text("a;b")},
	}
	for _, c := range tests {
		pos, err := layout.ParsePosition(c.Addr)
		require.NoError(t, err)
		assert.Equal(t, c.Want, sh.Cell(pos), "cell %s", c.Addr)
	}
}

func TestReadInvalidComma(t *testing.T) {
	_, err := Read(strings.NewReader("1,2"), Options{Comma: '"'})
	assert.ErrorIs(t, err, ErrComma)
}

func TestWrite(t *testing.T) {
	sh, err := Read(strings.NewReader("1,,#REF!\nfoo\n"), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sh, 0))
	assert.Equal(t, "1,,#REF!\nfoo,,\n", buf.String())
}
