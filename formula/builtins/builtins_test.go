package builtins

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/errtype/formula/operand"
	"github.com/midbel/errtype/formula/types"
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

type sheet map[string]value.ScalarValue

func (s sheet) Cell(pos layout.Position) value.ScalarValue {
	pos.Sheet = ""
	return s[pos.Addr()]
}

func ref(addr string, cells sheet) value.Value {
	rg, err := layout.RangeFromString(addr)
	if err != nil {
		panic(err)
	}
	return types.NewReference(cells, rg)
}

func TestErrorTypeClassified(t *testing.T) {
	tests := []struct {
		Arg  value.Value
		Want float64
	}{
		{Arg: value.ErrNull, Want: 1},
		{Arg: value.ErrDiv0, Want: 2},
		{Arg: value.ErrValue, Want: 3},
		{Arg: value.ErrRef, Want: 4},
		{Arg: value.ErrName, Want: 5},
		{Arg: value.ErrNum, Want: 6},
		{Arg: value.ErrNA, Want: 7},
		{Arg: value.ErrCircular, Want: 8},
		{Arg: value.ErrNotImpl, Want: 9},
	}
	fn := Registry["ERROR.TYPE"]
	for _, c := range tests {
		got, err := fn.Call([]value.Value{c.Arg}, 0, 0)
		require.NoError(t, err, c.Arg.String())
		assert.Equal(t, value.Float(c.Want), got, c.Arg.String())
	}
}

func TestErrorTypeNotAnError(t *testing.T) {
	cells := sheet{
		"A1": value.Float(42),
	}
	tests := []value.Value{
		value.Float(42),
		value.Text("foo"),
		value.Boolean(true),
		value.Empty(),
		ref("A1", cells),
		ref("B7", cells),
		types.Row(value.Float(1), value.Float(2)),
	}
	for _, arg := range tests {
		got, err := ErrorType(0, 0, arg)
		require.NoError(t, err, arg.String())
		assert.Equal(t, value.ErrNA, got, arg.String())
	}
}

func TestErrorTypeScenarios(t *testing.T) {
	cells := sheet{
		"A1": value.ErrDiv0,
		"A2": value.ErrNum,
		"A4": value.ErrNotImpl,
	}
	tests := []struct {
		Name string
		Arg  value.Value
		Row  int
		Want value.Value
	}{
		{Name: "division by zero", Arg: ref("A1", cells), Want: value.Float(2)},
		{Name: "invalid number", Arg: ref("A2", cells), Want: value.Float(6)},
		{Name: "blank cell", Arg: ref("A3", cells), Want: value.ErrNA},
		{Name: "function not implemented", Arg: ref("A4", cells), Want: value.Float(9)},
		{Name: "column at current row", Arg: ref("A1:A4", cells), Row: 1, Want: value.Float(6)},
		{Name: "array outside of bounds", Arg: types.Row(value.Float(1)), Row: 3, Want: value.Float(3)},
	}
	for _, c := range tests {
		t.Run(c.Name, func(t *testing.T) {
			got, err := ErrorType(c.Row, 0, c.Arg)
			require.NoError(t, err)
			assert.Equal(t, c.Want, got)
		})
	}
}

func TestErrorTypeUnclassified(t *testing.T) {
	got, err := ErrorType(0, 0, value.ErrorOf(value.CodeGettingData))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrInvalidCode)
	_, ok := value.FailureCode(err)
	assert.False(t, ok, "contract error must not look like a formula error")
}

func TestErrorTypeContractError(t *testing.T) {
	_, err := ErrorType(0, 0, object{})
	assert.ErrorIs(t, err, operand.ErrOperand)
}

func TestArity(t *testing.T) {
	fn, err := Lookup("error.type")
	require.NoError(t, err)
	assert.Equal(t, 1, fn.Arity())

	_, err = fn.Call(nil, 0, 0)
	assert.ErrorIs(t, err, ErrArity)
	_, err = fn.Call([]value.Value{value.ErrNA, value.ErrNA}, 0, 0)
	assert.ErrorIs(t, err, ErrArity)

	_, err = Lookup("VLOOKUP")
	assert.ErrorIs(t, err, ErrUndefined)
}

func TestPropagate(t *testing.T) {
	got, err := Propagate(value.Fail(value.CodeRef))
	require.NoError(t, err)
	assert.Equal(t, value.ErrRef, got)

	boom := errors.New("boom")
	got, err = Propagate(boom)
	assert.Nil(t, got)
	assert.Equal(t, boom, err)
}

func TestInformationFunctions(t *testing.T) {
	tests := []struct {
		Func string
		Args []value.Value
		Want value.Value
	}{
		{Func: "ISERROR", Args: []value.Value{value.ErrNA}, Want: value.Boolean(true)},
		{Func: "ISERROR", Args: []value.Value{value.Float(1)}, Want: value.Boolean(false)},
		{Func: "ISERR", Args: []value.Value{value.ErrNA}, Want: value.Boolean(false)},
		{Func: "ISERR", Args: []value.Value{value.ErrRef}, Want: value.Boolean(true)},
		{Func: "ISNA", Args: []value.Value{value.ErrNA}, Want: value.Boolean(true)},
		{Func: "ISNA", Args: []value.Value{value.ErrDiv0}, Want: value.Boolean(false)},
		{Func: "NA", Want: value.ErrNA},
		{Func: "TYPE", Args: []value.Value{value.Float(1)}, Want: value.Float(1)},
		{Func: "TYPE", Args: []value.Value{value.Empty()}, Want: value.Float(1)},
		{Func: "TYPE", Args: []value.Value{value.Text("a")}, Want: value.Float(2)},
		{Func: "TYPE", Args: []value.Value{value.Boolean(true)}, Want: value.Float(4)},
		{Func: "TYPE", Args: []value.Value{value.ErrName}, Want: value.Float(16)},
		{Func: "TYPE", Args: []value.Value{types.Row(value.Float(1))}, Want: value.Float(64)},
		{Func: "IFERROR", Args: []value.Value{value.Float(1), value.Float(2)}, Want: value.Float(1)},
		{Func: "IFERROR", Args: []value.Value{value.ErrDiv0, value.Text("x")}, Want: value.Text("x")},
		{Func: "IFERROR", Args: []value.Value{value.ErrDiv0, value.ErrRef}, Want: value.ErrRef},
	}
	for _, c := range tests {
		fn, err := Lookup(c.Func)
		require.NoError(t, err)
		got, err := fn.Call(c.Args, 0, 0)
		require.NoError(t, err, c.Func)
		assert.Equal(t, c.Want, got, c.Func)
	}
}

type object struct{}

func (object) Kind() value.ValueKind { return 0 }
func (object) Type() string          { return "object" }
func (object) String() string        { return "<object>" }
