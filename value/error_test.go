package value

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassificationIndex(t *testing.T) {
	tests := []struct {
		Code  ErrorCode
		Index int
	}{
		{CodeNull, 1},
		{CodeDiv0, 2},
		{CodeValue, 3},
		{CodeRef, 4},
		{CodeName, 5},
		{CodeNum, 6},
		{CodeNA, 7},
		{CodeCircularRef, 8},
		{CodeFuncNotImplemented, 9},
	}
	for _, c := range tests {
		got, ok := c.Code.Index()
		assert.True(t, ok, "%s should be classified", c.Code)
		assert.Equal(t, c.Index, got, "%s: index mismatched", c.Code)
	}
}

func TestClassificationIndexAbsent(t *testing.T) {
	_, ok := CodeGettingData.Index()
	assert.False(t, ok)

	_, ok = ErrorCode(200).Index()
	assert.False(t, ok)
}

func TestRegistryRoundTrip(t *testing.T) {
	seen := make(map[int]bool)
	for _, e := range Codes() {
		got, err := ByCode(e.Code())
		require.NoError(t, err)
		assert.Equal(t, e, got, "byCode(%d)", e.Code())

		got, err = ByToken(e.Token())
		require.NoError(t, err)
		assert.Equal(t, e, got, "byToken(%s)", e.Token())

		assert.False(t, seen[e.Code()], "duplicate code %d", e.Code())
		seen[e.Code()] = true
	}
	assert.Len(t, Codes(), 10)
}

func TestByCode(t *testing.T) {
	tests := []struct {
		Code int
		Want ErrorCode
	}{
		{0, CodeNull},
		{7, CodeDiv0},
		{15, CodeValue},
		{23, CodeRef},
		{29, CodeName},
		{36, CodeNum},
		{42, CodeNA},
		{-60, CodeCircularRef},
		{-30, CodeFuncNotImplemented},
		{43, CodeGettingData},
	}
	for _, c := range tests {
		got, err := ByCode(c.Code)
		require.NoError(t, err)
		assert.Equal(t, c.Want, got)
	}
	_, err := ByCode(99)
	assert.True(t, errors.Is(err, ErrUnknownCode))
}

func TestByToken(t *testing.T) {
	tests := []struct {
		Token string
		Want  ErrorCode
	}{
		{"#DIV/0!", CodeDiv0},
		{"#n/a", CodeNA},
		{" #NAME? ", CodeName},
		{"~circular~ref~", CodeCircularRef},
	}
	for _, c := range tests {
		got, err := ByToken(c.Token)
		require.NoError(t, err, c.Token)
		assert.Equal(t, c.Want, got, c.Token)
	}
	_, err := ByToken("#BOGUS!")
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestErrorValue(t *testing.T) {
	assert.Equal(t, KindError, ErrDiv0.Kind())
	assert.Equal(t, "#DIV/0!", ErrDiv0.String())
	assert.Equal(t, CodeDiv0, ErrDiv0.Code())
	assert.Equal(t, ErrNum, ErrorOf(CodeNum))
}

func TestInvalidCode(t *testing.T) {
	e := ErrorCode(42)
	assert.False(t, e.Valid())
	assert.Equal(t, -1, e.Code())
	assert.Equal(t, "", e.Token())
	assert.Equal(t, "ErrorCode(42)", e.String())
}
