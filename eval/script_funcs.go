package eval

import (
	"bytes"
	"os"

	"github.com/signadot/zparse/encode"
	"github.com/signadot/zparse/ir"

	"github.com/expr-lang/expr"
	"github.com/tidwall/gjson"
)

func exprOpts(doc *ir.Value) []expr.Option {
	var docJSON []byte
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			if doc == nil {
				return nil, nil
			}
			if docJSON == nil {
				buf := bytes.NewBuffer(nil)
				if err := encode.Encode(doc, buf); err != nil {
					return nil, err
				}
				docJSON = buf.Bytes()
			}
			res := gjson.GetBytes(docJSON, params[0].(string))
			if !res.Exists() {
				return nil, nil
			}
			return res.Value(), nil
		},
			new(func(string) any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
