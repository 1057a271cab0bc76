package zparse

import (
	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/json"

	"github.com/tidwall/gjson"
)

// Get extracts the value at a gjson path such as "servers.0.host" or
// "items.#.name".  The boolean is false when nothing matches.
func Get(doc *ir.Value, path string) (*ir.Value, bool, error) {
	d, err := toJSON(doc)
	if err != nil {
		return nil, false, err
	}
	res := gjson.GetBytes(d, path)
	if !res.Exists() {
		return nil, false, nil
	}
	v, err := json.Parse([]byte(res.Raw), json.WithLimits(Config{}))
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}
