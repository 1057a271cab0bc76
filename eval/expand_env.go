package eval

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/encode"
	"github.com/signadot/zparse/ir"
)

// GetRaw extracts the expression from a whole-string .[expr] reference.
// If v is not of that form, it returns the empty string.
//
// Example: GetRaw(".[doc.port]") returns "doc.port"
func GetRaw(v string) string {
	if !isRawEnvRef(v) {
		return ""
	}
	return strings.TrimSpace(v[2 : len(v)-1])
}

func isRawEnvRef(s string) bool {
	return len(s) > 3 && strings.HasPrefix(s, ".[") && strings.HasSuffix(s, "]")
}

// ExpandValue returns a copy of v with embedded expressions in string
// leaves expanded.  A string which is entirely a .[expr] reference is
// replaced by the expression's result, of whatever type; other strings
// have each $[expr] and .[expr] replaced by the result's text.  Object
// keys are left alone.  getpath resolves against v.
func ExpandValue(v *ir.Value, env Env) (*ir.Value, error) {
	return expandValue(v, v, env)
}

func expandValue(doc, v *ir.Value, env Env) (*ir.Value, error) {
	switch v.Type {
	case ir.ObjectType:
		res := ir.NewObject()
		for k, e := range v.Object.All() {
			x, err := expandValue(doc, e, env)
			if err != nil {
				return nil, err
			}
			res.Set(k, x)
		}
		return ir.FromObject(res), nil
	case ir.ArrayType:
		res := make([]*ir.Value, len(v.Array))
		for i, e := range v.Array {
			x, err := expandValue(doc, e, env)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return ir.FromSlice(res), nil
	case ir.StringType:
		if raw := GetRaw(v.String); raw != "" {
			return evalRaw(doc, raw, env)
		}
		s, err := expandString(doc, v.String, env)
		if err != nil {
			return nil, fmt.Errorf("error expanding %q: %w", v.String, err)
		}
		return ir.FromString(s), nil
	}
	return v.Clone(), nil
}

func evalRaw(doc *ir.Value, raw string, env Env) (*ir.Value, error) {
	x, err := run(doc, raw, env)
	if err != nil {
		return nil, err
	}
	res, err := FromAny(x)
	if err != nil {
		return nil, fmt.Errorf("could not translate result of %q: %w", raw, err)
	}
	return res, nil
}

// ExpandString expands $[...] and .[...] expressions in a string.
//
// Expressions are evaluated using expr-lang against the provided environment.
// Within expressions, backslash escaping is supported:
//   - \] → literal ] (does not close the expression)
//   - \\ → literal \
//   - \x → x (for any character x)
//
// If an expression is not closed with an unescaped ], the text is treated
// as a literal string rather than an expression.
func ExpandString(v string, env Env) (string, error) {
	return expandString(nil, v, env)
}

func expandString(doc *ir.Value, v string, env Env) (string, error) {
	if len(v) < 3 {
		return v, nil
	}
	exprStart := -1
	i := 0
	n := len(v)
	var outBuf []byte
	var keyBuf []byte

	for i < n-1 {
		c, next := v[i], v[i+1]
		i++
		switch c {
		case '$', '.':
			if next == '[' {
				exprStart = i - 1
				keyBuf = keyBuf[:0]
				i++
				continue
			}
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		case '\\':
			if exprStart != -1 {
				keyBuf = append(keyBuf, next)
				i++
				continue
			}
			outBuf = append(outBuf, c)
		case ']':
			if exprStart != -1 {
				d, err := expandKey(doc, string(keyBuf), env)
				if err != nil {
					return "", err
				}
				outBuf = append(outBuf, d...)
				exprStart = -1
				continue
			}
			outBuf = append(outBuf, c)
		default:
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		}
	}

	if exprStart == -1 {
		if i < n {
			outBuf = append(outBuf, v[n-1])
		}
		return string(outBuf), nil
	}
	// unclosed: the final byte may still close it
	if i >= n || v[n-1] != ']' {
		outBuf = append(outBuf, v[exprStart:n]...)
		return string(outBuf), nil
	}
	d, err := expandKey(doc, string(keyBuf), env)
	if err != nil {
		return "", err
	}
	return string(append(outBuf, d...)), nil
}

func expandKey(doc *ir.Value, key string, env Env) ([]byte, error) {
	key = strings.TrimSpace(key)
	x, err := run(doc, key, env)
	if err != nil {
		return nil, err
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", key, x)
	}
	d, err := anyToBytes(x)
	if err != nil {
		return nil, fmt.Errorf("could not render result of %s: %w", key, err)
	}
	return d, nil
}

func anyToBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return []byte("null"), nil
	case string:
		return []byte(x), nil
	case float64:
		return []byte(ir.FormatNumber(x)), nil
	case int:
		return []byte(strconv.Itoa(x)), nil
	case bool:
		return []byte(strconv.FormatBool(x)), nil
	}
	node, err := FromAny(v)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
