// Package exprop registers the built-in x-eval extended operation.
// Importing it (blank import suffices) makes x-eval available on the
// default registry.
//
// x-eval takes one arg, an expr-lang source string, and grafts the
// expression result at the operation path. The expression environment
// exposes:
//
//	doc  - the working document
//	node - the value currently at the path (nil when absent)
//	key  - the terminal path component (string or int)
//	args - the operation args
package exprop

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/signadot/jsonpatch/xop"
)

// ID is the registered extended operation id.
const ID = "x-eval"

func init() {
	xop.Default().MustRegister(ID, Config())
}

// Config returns the x-eval capability triple, for callers wiring a
// private registry.
func Config() *xop.Config {
	return &xop.Config{
		Arr:       apply,
		Obj:       apply,
		Validator: validate,
	}
}

func validate(c *xop.Call, index int) error {
	src, err := source(c)
	if err != nil {
		return err
	}
	if _, err := expr.Compile(src); err != nil {
		return fmt.Errorf("%s: bad expression at operation %d: %w", ID, index, err)
	}
	return nil
}

func apply(c *xop.Call) (*xop.Result, error) {
	src, err := source(c)
	if err != nil {
		return nil, err
	}
	prg, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ID, err)
	}
	env := map[string]any{
		"doc":  c.Document,
		"node": node(c),
		"key":  c.Key,
		"args": c.Args,
	}
	out, err := expr.Run(prg, env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ID, err)
	}
	if out == nil {
		return &xop.Result{Value: xop.Null}, nil
	}
	return &xop.Result{Value: out}, nil
}

func node(c *xop.Call) any {
	switch cc := c.Container.(type) {
	case map[string]any:
		key, ok := c.Key.(string)
		if !ok {
			return nil
		}
		return cc[key]
	case []any:
		i, ok := c.Key.(int)
		if !ok || i < 0 || i >= len(cc) {
			return nil
		}
		return cc[i]
	}
	return nil
}

func source(c *xop.Call) (string, error) {
	if len(c.Args) != 1 {
		return "", fmt.Errorf("%s expects 1 arg, got %d", ID, len(c.Args))
	}
	src, ok := c.Args[0].(string)
	if !ok {
		return "", fmt.Errorf("%s expects a string arg, got %T", ID, c.Args[0])
	}
	return src, nil
}
