package eval

import (
	"testing"

	"github.com/signadot/zparse/ir"

	"github.com/google/go-cmp/cmp"
)

func testDoc() *ir.Value {
	return ir.FromKeyVals(
		ir.KeyVal{Key: "name", Val: ir.FromString("svc")},
		ir.KeyVal{Key: "ports", Val: ir.FromSlice([]*ir.Value{
			ir.FromInt(80), ir.FromInt(443),
		})},
		ir.KeyVal{Key: "meta", Val: ir.FromKeyVals(
			ir.KeyVal{Key: "enabled", Val: ir.FromBool(true)},
		)},
	)
}

func TestEval(t *testing.T) {
	t.Setenv("ZPARSE_EVAL_TEST", "from-env")
	tests := []struct {
		expr string
		want any
	}{
		{`doc.name`, "svc"},
		{`doc.ports[1]`, 443.0},
		{`len(doc.ports)`, 2.0},
		{`map(doc.ports, # + 1)`, []any{81.0, 444.0}},
		{`doc.meta.enabled && doc.name == "svc"`, true},
		{`doc.missing`, nil},
		{`{"n": doc.name, "count": len(doc.ports)}`, map[string]any{"n": "svc", "count": 2.0}},
		{`getpath("ports.1")`, 443.0},
		{`getpath("ports.#")`, 2.0},
		{`getpath("nope")`, nil},
		{`getenv("ZPARSE_EVAL_TEST")`, "from-env"},
	}
	doc := testDoc()
	for _, tc := range tests {
		got, err := Eval(doc, tc.expr, nil)
		if err != nil {
			t.Errorf("%s: %v", tc.expr, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got.Interface()); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", tc.expr, diff)
		}
	}
}

func TestEvalEnv(t *testing.T) {
	doc := testDoc()
	env := NewEnv(doc).With("factor", 10)
	got, err := Eval(doc, "doc.ports[0] * factor", env)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, ir.FromInt(800)) {
		t.Errorf("got %v", got)
	}
	if _, ok := env["factor"]; !ok {
		t.Error("With lost the binding")
	}
	if len(NewEnv(doc)) != 1 {
		t.Error("With modified its receiver")
	}
}

func TestEvalErrors(t *testing.T) {
	doc := testDoc()
	for _, e := range []string{
		`doc.(`,
		`1 +`,
		`doc.name / 2`,
	} {
		if _, err := Eval(doc, e, nil); err == nil {
			t.Errorf("%s: expected an error", e)
		}
	}
}

func TestFromAny(t *testing.T) {
	type point struct {
		X int `json:"x"`
	}
	tests := []struct {
		in   any
		want *ir.Value
	}{
		{nil, ir.Null()},
		{[]int{1, 2}, ir.FromSlice([]*ir.Value{ir.FromInt(1), ir.FromInt(2)})},
		{point{X: 3}, ir.FromKeyVals(ir.KeyVal{Key: "x", Val: ir.FromInt(3)})},
		{[]*ir.Value{ir.FromBool(true)}, ir.FromSlice([]*ir.Value{ir.FromBool(true)})},
		{ir.FromString("s"), ir.FromString("s")},
	}
	for _, tc := range tests {
		got, err := FromAny(tc.in)
		if err != nil {
			t.Errorf("%#v: %v", tc.in, err)
			continue
		}
		if !ir.Equal(tc.want, got) {
			t.Errorf("%#v: got %v want %v", tc.in, got, tc.want)
		}
	}
}
