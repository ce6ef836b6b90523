package value

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureCode(t *testing.T) {
	err := Fail(CodeRef)
	code, ok := FailureCode(err)
	assert.True(t, ok)
	assert.Equal(t, CodeRef, code)

	wrapped := fmt.Errorf("A1: %w", err)
	code, ok = FailureCode(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeRef, code)

	_, ok = FailureCode(errors.New("boom"))
	assert.False(t, ok)

	_, ok = FailureCode(nil)
	assert.False(t, ok)
}

func TestFailureValue(t *testing.T) {
	var f *Failure
	err := Fail(CodeNum)
	if !errors.As(err, &f) {
		t.Fatalf("failure expected, got %T", err)
	}
	assert.Equal(t, ErrNum, f.Value())
	assert.Equal(t, "evaluation failed: #NUM!", err.Error())
}

func TestCast(t *testing.T) {
	tests := []struct {
		Input Value
		Want  Float
		Fail  bool
	}{
		{Input: Float(1.5), Want: 1.5},
		{Input: Text(" 12 "), Want: 12},
		{Input: Boolean(true), Want: 1},
		{Input: Empty(), Want: 0},
		{Input: Text("foo"), Fail: true},
		{Input: ErrNA, Fail: true},
	}
	for _, c := range tests {
		got, err := CastToFloat(c.Input)
		if c.Fail {
			assert.ErrorIs(t, err, ErrCast, "%v", c.Input)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, c.Want, got)
	}
}
