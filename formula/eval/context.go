package eval

import (
	"fmt"

	"github.com/midbel/errtype/formula/builtins"
	"github.com/midbel/errtype/formula/env"
	"github.com/midbel/errtype/formula/types"
	"github.com/midbel/errtype/layout"
	"github.com/midbel/errtype/value"
)

// Context gives an expression access to the cells, names and functions it
// refers to.
type Context interface {
	At(layout.Position) (value.Value, error)
	Range(layout.Position, layout.Position) (value.Value, error)
	Resolve(string) (value.Value, error)
	ResolveFunc(string) (builtins.Function, error)
}

type View interface {
	Name() string
	Cell(layout.Position) value.ScalarValue
}

type sheetContext struct {
	view   View
	parent *env.Environment
}

func SheetContext(parent *env.Environment, sheet View) Context {
	if parent == nil {
		parent = env.Default()
	}
	return sheetContext{
		parent: parent,
		view:   sheet,
	}
}

func (c sheetContext) Resolve(name string) (value.Value, error) {
	return c.parent.Resolve(name)
}

func (c sheetContext) ResolveFunc(name string) (builtins.Function, error) {
	return c.parent.ResolveFunc(name)
}

// At gives an unresolved reference to the cell at pos. A cell of another
// sheet can not be referenced and gives #REF!.
func (c sheetContext) At(pos layout.Position) (value.Value, error) {
	return c.Range(pos, pos)
}

func (c sheetContext) Range(start, end layout.Position) (value.Value, error) {
	if start.Sheet != end.Sheet {
		return nil, fmt.Errorf("%s:%s: %w: cross sheet range not allowed", start, end, ErrEval)
	}
	if !c.owns(start.Sheet) {
		return value.ErrRef, nil
	}
	rg := layout.NewRange(start, end)
	return types.NewReference(c.view, rg), nil
}

func (c sheetContext) owns(sheet string) bool {
	return sheet == "" || sheet == c.view.Name()
}
