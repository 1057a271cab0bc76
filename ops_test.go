package zparse

import (
	"strings"
	"testing"

	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string, f format.Format) *ir.Value {
	t.Helper()
	v, err := Parse([]byte(s), f)
	require.NoError(t, err)
	return v
}

func TestMergePatch(t *testing.T) {
	tests := []struct {
		doc, patch, res string
	}{
		{`{"a":1}`, `{"b":1}`, `{"a":1,"b":1}`},
		{`{"a":1}`, `{"a":null}`, `{}`},
		{`{"a":{"x":1,"y":2}}`, `{"a":{"y":null,"z":3}}`, `{"a":{"x":1,"z":3}}`},
		{`{"a":[1,2]}`, `{"a":[3]}`, `{"a":[3]}`},
		{`[1,2]`, `{"a":1}`, `{"a":1}`},
		{`{"a":1}`, `[1,2]`, `[1,2]`},
	}
	for _, tc := range tests {
		doc := mustParse(t, tc.doc, format.JSONFormat)
		patch := mustParse(t, tc.patch, format.JSONFormat)
		res, err := MergePatch(doc, patch)
		require.NoError(t, err)
		got, err := Encode(res, format.JSONFormat)
		require.NoError(t, err)
		require.Equal(t, tc.res, got)
		before, _ := Encode(doc, format.JSONFormat)
		require.Equal(t, tc.doc, before)
	}
}

func TestMergePatchAcrossFormats(t *testing.T) {
	doc := mustParse(t, "[server]\nhost = \"a\"\nport = 80\n", format.TOMLFormat)
	patch := mustParse(t, "server:\n  port: 8080\n  tls: true\n", format.YAMLFormat)
	res, err := MergePatch(doc, patch)
	require.NoError(t, err)
	out, err := Encode(res, format.TOMLFormat)
	require.NoError(t, err)
	require.Equal(t, `server = {host = "a", port = 8080, tls = true}`, out)
}

func TestGet(t *testing.T) {
	doc := mustParse(t, `
servers:
  - host: a
    port: 80
  - host: b
    port: 81
name: x
`, format.YAMLFormat)
	tests := []struct {
		path string
		want string
	}{
		{"name", `"x"`},
		{"servers.1.host", `"b"`},
		{"servers.#", `2`},
		{"servers.#.port", `[80,81]`},
		{"servers.0", `{"host":"a","port":80}`},
	}
	for _, tc := range tests {
		v, ok, err := Get(doc, tc.path)
		require.NoError(t, err)
		require.True(t, ok, tc.path)
		got, err := Encode(v, format.JSONFormat)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, tc.path)
	}
	_, ok, err := Get(doc, "servers.5.host")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDiff(t *testing.T) {
	a := mustParse(t, `{"a":1,"b":[1,2],"c":"x"}`, format.JSONFormat)
	d, err := Diff(a, a.Clone())
	require.NoError(t, err)
	require.Empty(t, d)

	b := mustParse(t, `{"a":1,"b":[1,3],"c":"x"}`, format.JSONFormat)
	d, err = Diff(a, b)
	require.NoError(t, err)
	want := strings.Join([]string{
		` {`,
		`   "a": 1,`,
		`   "b": [`,
		`     1,`,
		`-    2`,
		`+    3`,
		`   ],`,
		`   "c": "x"`,
		` }`,
		``,
	}, "\n")
	require.Equal(t, want, d)
}

func TestTool(t *testing.T) {
	doc := mustParse(t, `
name: api
image: "registry/$[doc.name]:$[version]"
replicas: ".[scale * 2]"
`, format.YAMLFormat)
	tool := DefaultTool()
	tool.Env["version"] = "v1"
	tool.Env["scale"] = 3
	res, err := tool.Run(doc)
	require.NoError(t, err)
	out, err := Encode(res, format.JSONFormat)
	require.NoError(t, err)
	require.Equal(t, `{"name":"api","image":"registry/api:v1","replicas":6}`, out)

	v, err := tool.Eval(doc, `doc.name + "-" + version`)
	require.NoError(t, err)
	require.Equal(t, "api-v1", v.String)

	_, err = tool.Run(mustParse(t, `x: "$[1 +]"`, format.YAMLFormat))
	require.Error(t, err)
}
