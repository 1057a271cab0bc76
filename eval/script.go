package eval

import (
	"fmt"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Eval compiles and runs expression with doc bound in env, returning the
// result as a value.  A nil env is replaced by NewEnv(doc).
func Eval(doc *ir.Value, expression string, env Env) (*ir.Value, error) {
	if env == nil {
		env = NewEnv(doc)
	}
	res, err := run(doc, expression, env)
	if err != nil {
		return nil, err
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", expression, res)
	}
	v, err := FromAny(res)
	if err != nil {
		return nil, fmt.Errorf("could not translate result of %q: %w", expression, err)
	}
	return v, nil
}

func run(doc *ir.Value, expression string, env Env) (any, error) {
	program, err := expr.Compile(expression, exprOpts(doc)...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", expression, err)
	}
	res, err := vm.Run(program, map[string]any(env))
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", expression, err)
	}
	return res, nil
}
