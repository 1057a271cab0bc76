package zparse

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/signadot/zparse/encode"
	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/token"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestIdentity(t *testing.T) {
	// not even valid: identity must not parse
	in := "{ this is : not [ json"
	for _, f := range format.AllFormats() {
		out, err := Convert(in, f, f)
		require.NoError(t, err)
		require.Equal(t, in, out)
	}
}

func TestXMLLeavesStayStrings(t *testing.T) {
	out, err := Convert(`<root><name>test</name><value>42</value></root>`,
		format.XMLFormat, format.JSONFormat)
	require.NoError(t, err)
	require.Equal(t, `{"root":{"name":"test","value":"42"}}`, out)
	require.Equal(t, gjson.String, gjson.Get(out, "root.value").Type)
}

func TestXMLEmptyElements(t *testing.T) {
	in := `<cfg><opts/><name>x</name><flags></flags></cfg>`
	out, err := Convert(in, format.XMLFormat, format.JSONFormat)
	require.NoError(t, err)
	require.Equal(t, `{"cfg":{"opts":{},"name":"x","flags":{}}}`, out)

	back, err := Convert(out, format.JSONFormat, format.XMLFormat)
	require.NoError(t, err)
	require.Equal(t, `<cfg><opts/><name>x</name><flags/></cfg>`, back)
}

func TestConvertPairs(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		from, to format.Format
		want     string
	}{
		{
			name: "json to toml",
			in:   `{"title":"x","owner":{"name":"a b"},"ports":[1,2]}`,
			from: format.JSONFormat, to: format.TOMLFormat,
			want: "title = \"x\"\nowner = {name = \"a b\"}\nports = [1, 2]",
		},
		{
			name: "toml to json",
			in:   "a = 1\n[t]\nb = true\n",
			from: format.TOMLFormat, to: format.JSONFormat,
			want: `{"a":1,"t":{"b":true}}`,
		},
		{
			name: "yaml to json",
			in:   "a: 1\nb:\n  - x\n  - 2.5\n",
			from: format.YAMLFormat, to: format.JSONFormat,
			want: `{"a":1,"b":["x",2.5]}`,
		},
		{
			name: "json to yaml",
			in:   `{"a":1,"b":"x","c":[],"d":{}}`,
			from: format.JSONFormat, to: format.YAMLFormat,
			want: "a: 1\nb: \"x\"\nc: []\nd: {}",
		},
		{
			name: "json to xml",
			in:   `{"name":"test","value":42}`,
			from: format.JSONFormat, to: format.XMLFormat,
			want: `<root><name>test</name><value>42</value></root>`,
		},
		{
			name: "toml array of tables",
			in:   "[[p]]\nx = 1\n[[p]]\nx = 2\n",
			from: format.TOMLFormat, to: format.JSONFormat,
			want: `{"p":[{"x":1},{"x":2}]}`,
		},
		{
			name: "json duplicate keys",
			in:   `{"a":1,"b":2,"a":3}`,
			from: format.JSONFormat, to: format.YAMLFormat,
			want: "a: 3\nb: 2",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Convert(tc.in, tc.from, tc.to)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	v := ir.FromKeyVals(
		ir.KeyVal{Key: "name", Val: ir.FromString("zparse \"quoted\"\n")},
		ir.KeyVal{Key: "count", Val: ir.FromInt(3)},
		ir.KeyVal{Key: "ratio", Val: ir.FromNumber(0.25)},
		ir.KeyVal{Key: "on", Val: ir.FromBool(true)},
		ir.KeyVal{Key: "tags", Val: ir.FromSlice([]*ir.Value{ir.FromString("a"), ir.FromString("b")})},
		ir.KeyVal{Key: "owner", Val: ir.FromKeyVals(
			ir.KeyVal{Key: "id", Val: ir.FromInt(-7)},
			ir.KeyVal{Key: "key with space", Val: ir.FromString("")},
		)},
	)
	for _, f := range []format.Format{format.JSONFormat, format.TOMLFormat, format.YAMLFormat} {
		t.Run(f.String(), func(t *testing.T) {
			s, err := Encode(v, f)
			require.NoError(t, err)
			back, err := Parse([]byte(s), f)
			require.NoError(t, err, s)
			require.True(t, ir.Equal(v, back), "%s\n%v", s, back)
		})
	}
}

func TestTOMLDatetimes(t *testing.T) {
	for _, lit := range []string{
		"1979-05-27T07:32:00Z",
		"1979-05-27T00:32:00.999999-07:00",
		"1979-05-27T07:32:00",
		"1979-05-27",
		"07:32:00",
		"00:32:00.5",
	} {
		in := "d = " + lit
		v, err := Parse([]byte(in), format.TOMLFormat)
		require.NoError(t, err)
		require.Equal(t, ir.DatetimeType, v.Get("d").Type)
		out, err := Encode(v, format.TOMLFormat)
		require.NoError(t, err)
		require.Equal(t, in, out)
		js, err := Encode(v, format.JSONFormat)
		require.NoError(t, err)
		require.Equal(t, lit, gjson.Get(js, "d").String())
	}
}

func TestDuplicateKeyPolicy(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"b":2,"a":3}`), format.JSONFormat)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, v.Object.Keys())
	require.Equal(t, 3.0, v.Get("a").Number)

	for _, tc := range []struct {
		f  format.Format
		in string
	}{
		{format.TOMLFormat, "a = 1\na = 2"},
		{format.TOMLFormat, "[t]\n[t]"},
		{format.YAMLFormat, "a: 1\na: 2"},
		{format.XMLFormat, `<r a="1" a="2"/>`},
	} {
		_, err := Parse([]byte(tc.in), tc.f)
		require.ErrorIs(t, err, token.ErrDuplicateKey, "%s: %q", tc.f, tc.in)
	}
}

func TestLimits(t *testing.T) {
	nested := func(n int) string {
		return strings.Repeat("[", n) + strings.Repeat("]", n)
	}
	cfg := Config{MaxDepth: 4}
	_, err := ParseWithConfig([]byte(nested(4)), format.JSONFormat, cfg)
	require.NoError(t, err)
	_, err = ParseWithConfig([]byte(nested(5)), format.JSONFormat, cfg)
	require.ErrorIs(t, err, token.ErrMaxDepthExceeded)

	var terr *token.Error
	require.True(t, errors.As(err, &terr))
	require.Equal(t, token.KindMaxDepthExceeded, terr.Kind)
	require.Equal(t, 4, terr.Max)

	_, err = ParseWithConfig([]byte(nested(500)), format.JSONFormat, Config{})
	require.NoError(t, err)

	_, err = ParseWithConfig([]byte(`<a><b><c/></b></a>`), format.XMLFormat, Config{MaxDepth: 2})
	require.ErrorIs(t, err, token.ErrMaxDepthExceeded)

	big := `{"k":"` + strings.Repeat("x", 100) + `"}`
	_, err = ParseWithConfig([]byte(big), format.JSONFormat, Config{MaxSize: 50})
	require.ErrorIs(t, err, token.ErrMaxSizeExceeded)
	_, err = ParseWithConfig([]byte(big), format.JSONFormat, Config{MaxStringLength: 10})
	require.ErrorIs(t, err, token.ErrMaxStringLengthExceeded)
	_, err = ParseWithConfig([]byte("a = 1\nb = 2\nc = 3"), format.TOMLFormat, Config{MaxObjectEntries: 2})
	require.ErrorIs(t, err, token.ErrMaxObjectEntriesExceeded)
}

func TestConvertOptions(t *testing.T) {
	in := "{\n  // comment\n  \"a\": [1, 2,],\n}"
	_, err := Convert(in, format.JSONFormat, format.YAMLFormat)
	require.Error(t, err)

	opts := DefaultConvertOptions()
	opts.JSONComments = true
	opts.JSONTrailingCommas = true
	opts.Encode = []encode.EncodeOption{encode.EncodeIndent(2)}
	out, err := ConvertWithOptions(in, format.JSONFormat, format.TOMLFormat, opts)
	require.NoError(t, err)
	require.Equal(t, "a = [1, 2]", out)
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		in       string
		from, to format.Format
		kind     token.Kind
	}{
		{`[1, 2]`, format.JSONFormat, format.TOMLFormat, token.KindUnsupportedValue},
		{`{"a": null}`, format.JSONFormat, format.TOMLFormat, token.KindUnsupportedValue},
		{`x = inf`, format.TOMLFormat, format.JSONFormat, token.KindUnsupportedValue},
		{`{"1a": 1}`, format.JSONFormat, format.XMLFormat, token.KindUnsupportedValue},
		{`{"a": }`, format.JSONFormat, format.YAMLFormat, token.KindExpected},
		{`<a>`, format.XMLFormat, format.JSONFormat, token.KindUnterminatedTag},
	}
	for _, tc := range tests {
		_, err := Convert(tc.in, tc.from, tc.to)
		var terr *token.Error
		require.True(t, errors.As(err, &terr), "%q: %v", tc.in, err)
		require.Equal(t, tc.kind, terr.Kind, "%q: %v", tc.in, err)
	}
}

func TestSpecialFloats(t *testing.T) {
	v, err := Parse([]byte("a = inf\nb = -inf\nc = nan"), format.TOMLFormat)
	require.NoError(t, err)
	require.True(t, math.IsInf(v.Get("a").Number, 1))
	out, err := Encode(v, format.YAMLFormat)
	require.NoError(t, err)
	require.Equal(t, "a: .inf\nb: -.inf\nc: .nan", out)
	back, err := Parse([]byte(out), format.YAMLFormat)
	require.NoError(t, err)
	require.True(t, math.IsNaN(back.Get("c").Number))
}

func TestParseXML(t *testing.T) {
	doc, err := ParseXML([]byte(`<?xml version="1.0"?><a x="1">hi<b/></a>`), DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, "a", doc.Root.Name)
	x, ok := doc.Root.Attr("x")
	require.True(t, ok)
	require.Equal(t, "1", x)
	require.Len(t, doc.Root.Elements(), 1)
}
