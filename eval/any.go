package eval

import (
	"encoding/json"
	"errors"

	"github.com/signadot/zparse/ir"
	zjson "github.com/signadot/zparse/json"
)

// FromAny converts an expression result to a value.  Results which
// ir.FromInterface does not know are round tripped through JSON.
func FromAny(v any) (*ir.Value, error) {
	switch x := v.(type) {
	case *ir.Value:
		if x == nil {
			return ir.Null(), nil
		}
		return x.Clone(), nil
	case []*ir.Value:
		return ir.FromSlice(x), nil
	}
	res, err := ir.FromInterface(v)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, ir.ErrUnsupportedType) {
		return nil, err
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return zjson.Parse(d)
}
