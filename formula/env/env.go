package env

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/midbel/errtype/formula/builtins"
	"github.com/midbel/errtype/value"
)

var ErrUndefined = errors.New("undefined identifier")

// Environment binds names to values and to the functions a formula can call.
// It is not safe to define names while formulas are evaluated.
type Environment struct {
	values map[string]value.Value
	funcs  map[string]builtins.Function
	parent *Environment
}

func Empty() *Environment {
	ctx := Environment{
		values: make(map[string]value.Value),
		funcs:  make(map[string]builtins.Function),
	}
	return &ctx
}

// Default returns an environment knowing every builtin function.
func Default() *Environment {
	ctx := Empty()
	maps.Copy(ctx.funcs, builtins.Registry)
	return ctx
}

func Enclosed(parent *Environment) *Environment {
	ctx := Empty()
	ctx.parent = parent
	return ctx
}

func (c *Environment) Resolve(ident string) (value.Value, error) {
	v, ok := c.values[ident]
	if ok {
		return v, nil
	}
	if c.parent != nil {
		return c.parent.Resolve(ident)
	}
	return nil, fmt.Errorf("%s: %w", ident, ErrUndefined)
}

func (c *Environment) Define(ident string, val value.Value) {
	c.values[ident] = val
}

func (c *Environment) ResolveFunc(name string) (builtins.Function, error) {
	fn, ok := c.funcs[strings.ToUpper(name)]
	if ok {
		return fn, nil
	}
	if c.parent != nil {
		return c.parent.ResolveFunc(name)
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUndefined)
}

func (c *Environment) DefineFunc(name string, fn builtins.Function) {
	c.funcs[strings.ToUpper(name)] = fn
}
