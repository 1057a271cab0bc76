package eval

import "github.com/signadot/zparse/ir"

// Env is the variable environment of an expression.
type Env map[string]any

// DocName is the variable a document is bound to.
const DocName = "doc"

// NewEnv returns an environment with doc bound under DocName.
func NewEnv(doc *ir.Value) Env {
	return Env{DocName: doc.Interface()}
}

// With returns a copy of env with name bound to v.
func (env Env) With(name string, v any) Env {
	res := make(Env, len(env)+1)
	for k, x := range env {
		res[k] = x
	}
	res[name] = v
	return res
}
