package zparse

import (
	"fmt"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/json"

	jsonpatch "github.com/evanphx/json-patch"
)

// MergePatch applies patch to doc as an RFC 7396 JSON merge patch: objects
// merge recursively, null deletes a key and anything else replaces.  The
// keys of merged objects come out sorted and datetimes
// become strings.  Neither argument is modified.
func MergePatch(doc, patch *ir.Value) (*ir.Value, error) {
	d, err := toJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("could not encode document: %w", err)
	}
	p, err := toJSON(patch)
	if err != nil {
		return nil, fmt.Errorf("could not encode patch: %w", err)
	}
	res, err := jsonpatch.MergePatch(d, p)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	if debug.Convert() {
		debug.Logf("merge patch gave %s\n", res)
	}
	return json.Parse(res, json.WithLimits(Config{}))
}

func toJSON(v *ir.Value) ([]byte, error) {
	s, err := Encode(v, format.JSONFormat)
	return []byte(s), err
}
