package zparse

import (
	"fmt"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/eval"
	"github.com/signadot/zparse/ir"
)

// Tool expands $[expr] and .[expr] references embedded in the strings of
// a document.  Expressions see Env plus the document itself as "doc".
type Tool struct {
	Env map[string]any
}

func DefaultTool() *Tool {
	return &Tool{
		Env: map[string]any{},
	}
}

// Run returns an expanded copy of doc.
func (t *Tool) Run(doc *ir.Value) (*ir.Value, error) {
	env := eval.Env(t.Env).With(eval.DocName, doc.Interface())
	if debug.Eval() {
		debug.Logf("expanding with env %v\n", t.Env)
	}
	res, err := eval.ExpandValue(doc, env)
	if err != nil {
		return nil, fmt.Errorf("error expanding document: %w", err)
	}
	return res, nil
}

// Eval evaluates a single expression against doc.
func (t *Tool) Eval(doc *ir.Value, expression string) (*ir.Value, error) {
	return eval.Eval(doc, expression, eval.Env(t.Env).With(eval.DocName, doc.Interface()))
}
