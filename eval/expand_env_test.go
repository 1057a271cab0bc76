package eval

import (
	"testing"

	"github.com/signadot/zparse/ir"
)

type envTest struct {
	in, out string
}

func TestEnv(t *testing.T) {
	tests := []envTest{
		{
			in:  "abc",
			out: "abc",
		},
		{
			in:  "$[",
			out: "$[",
		},
		{
			in:  "$[x]",
			out: `X`,
		},
		{
			in:  " $[x]",
			out: ` X`,
		},
		{
			in:  ".[x]",
			out: `X`,
		},
		{
			in:  "$[x",
			out: "$[x",
		},
		{
			in:  "some $[stuff] $[here]",
			out: `some STUFF HERE`,
		},
		{
			in:  "some $[stuff] $[here] trailing",
			out: `some STUFF HERE trailing`,
		},
		{
			in:  "some $[ stuff ] $[here] trailing",
			out: `some STUFF HERE trailing`,
		},
		{
			in:  "$abc",
			out: "$abc",
		},
		{
			in:  " $abc",
			out: " $abc",
		},
		{
			in:  "$[1 + 2]",
			out: "3",
		},
		{
			in:  `$["a\]b"]`,
			out: "a]b",
		},
		{
			in:  "$[list]",
			out: `[1,"two"]`,
		},
		{
			in:  "$[node]",
			out: `{"k":true}`,
		},
		{
			in:  "$[none]",
			out: "null",
		},
	}
	f := Env{
		"x":     "X",
		"stuff": "STUFF",
		"here":  "HERE",
		"list":  []any{1, "two"},
		"node":  ir.FromKeyVals(ir.KeyVal{Key: "k", Val: ir.FromBool(true)}),
		"none":  nil,
	}
	for i := range tests {
		tc := &tests[i]
		got, err := ExpandString(tc.in, f)
		if err != nil {
			t.Error(err)
			continue
		}
		if got == tc.out {
			continue
		}
		t.Errorf("got %q want %q", got, tc.out)
	}
}

func TestEnvError(t *testing.T) {
	if _, err := ExpandString("$[1 +]", nil); err == nil {
		t.Error("expected a compile error")
	}
}

func TestGetRaw(t *testing.T) {
	tests := map[string]string{
		".[x]":       "x",
		".[ doc.a ]": "doc.a",
		"$[x]":       "",
		".[x] more":  "",
		".[]":        "",
		"plain":      "",
		"x .[y]":     "",
	}
	for in, want := range tests {
		if got := GetRaw(in); got != want {
			t.Errorf("GetRaw(%q) = %q want %q", in, got, want)
		}
	}
}

func TestExpandValue(t *testing.T) {
	doc := ir.FromKeyVals(
		ir.KeyVal{Key: "host", Val: ir.FromString("example.com")},
		ir.KeyVal{Key: "port", Val: ir.FromInt(8080)},
		ir.KeyVal{Key: "url", Val: ir.FromString("http://$[doc.host]:$[doc.port]/")},
		ir.KeyVal{Key: "raw", Val: ir.FromString(".[doc.port + 1]")},
		ir.KeyVal{Key: "list", Val: ir.FromSlice([]*ir.Value{
			ir.FromString(`$[getpath("host")]`),
			ir.Null(),
		})},
	)
	got, err := ExpandValue(doc, NewEnv(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromKeyVals(
		ir.KeyVal{Key: "host", Val: ir.FromString("example.com")},
		ir.KeyVal{Key: "port", Val: ir.FromInt(8080)},
		ir.KeyVal{Key: "url", Val: ir.FromString("http://example.com:8080/")},
		ir.KeyVal{Key: "raw", Val: ir.FromInt(8081)},
		ir.KeyVal{Key: "list", Val: ir.FromSlice([]*ir.Value{
			ir.FromString("example.com"),
			ir.Null(),
		})},
	)
	if !ir.Equal(want, got) {
		t.Errorf("got %v want %v", got, want)
	}
	if doc.Get("url").String != "http://$[doc.host]:$[doc.port]/" {
		t.Error("input was modified")
	}
}
