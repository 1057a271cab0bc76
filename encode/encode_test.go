package encode

import (
	"bytes"
	"errors"
	"math"
	"testing"

	jsonpatch "github.com/evanphx/json-patch"
	goyaml "github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/json"
	"github.com/signadot/zparse/token"
	"github.com/signadot/zparse/toml"
	"github.com/signadot/zparse/yaml"
)

const sample = `{"name":"demo","n":3,"pi":3.25,"ok":true,"tags":["a","b c"],` +
	`"nested":{"x":{"y":[1,{"z":"w"}]},"empty":{},"none":[]},"quote":"say \"hi\"\n\u0001","weird key":-0.5}`

func sampleValue(t *testing.T) *ir.Value {
	t.Helper()
	v, err := json.Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

// normalize maps decoded integers onto float64.
func normalize(x any) any {
	switch t := x.(type) {
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
	case map[string]any:
		for k := range t {
			t[k] = normalize(t[k])
		}
	}
	return x
}

func TestJSONCompact(t *testing.T) {
	if got := MustString(sampleValue(t)); got != sample {
		t.Errorf("got\n%s\nwant\n%s", got, sample)
	}
}

func TestJSONIndent(t *testing.T) {
	v := ir.FromKeyVals(
		ir.KeyVal{Key: "a", Val: ir.FromSlice([]*ir.Value{ir.FromInt(1), ir.FromObject(nil)})},
		ir.KeyVal{Key: "b", Val: ir.Null()},
	)
	want := "{\n  \"a\": [\n    1,\n    {}\n  ],\n  \"b\": null\n}"
	got := MustString(v, EncodeIndent(2))
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if !jsonpatch.Equal([]byte(got), []byte(MustString(v))) {
		t.Error("indented and compact output differ")
	}
}

func TestTOML(t *testing.T) {
	v := sampleValue(t)
	out := MustString(v, EncodeFormat(format.TOMLFormat))
	var got map[string]any
	if err := gotoml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("go-toml: %v\n%s", err, out)
	}
	if diff := cmp.Diff(v.Interface(), normalize(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	back, err := toml.Parse([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(v, back) {
		t.Errorf("round trip: got %v", back.Interface())
	}
}

func TestTOMLLines(t *testing.T) {
	v := ir.FromKeyVals(
		ir.KeyVal{Key: "a", Val: ir.FromInt(1)},
		ir.KeyVal{Key: "b", Val: ir.FromKeyVals(ir.KeyVal{Key: "c.d", Val: ir.FromString("x")})},
		ir.KeyVal{Key: "f", Val: ir.FromNumber(math.Inf(-1))},
	)
	want := "a = 1\nb = {\"c.d\" = \"x\"}\nf = -inf"
	if got := MustString(v, EncodeFormat(format.TOMLFormat)); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestYAML(t *testing.T) {
	v := ir.FromKeyVals(
		ir.KeyVal{Key: "a", Val: ir.FromInt(1)},
		ir.KeyVal{Key: "l", Val: ir.FromSlice([]*ir.Value{
			ir.FromInt(1),
			ir.FromKeyVals(
				ir.KeyVal{Key: "b", Val: ir.FromString("x")},
				ir.KeyVal{Key: "c", Val: ir.FromSlice(nil)},
			),
		})},
		ir.KeyVal{Key: "m", Val: ir.FromKeyVals(ir.KeyVal{Key: "k", Val: ir.FromString("v")})},
		ir.KeyVal{Key: "e", Val: ir.FromObject(nil)},
		ir.KeyVal{Key: "1x", Val: ir.FromBool(true)},
		ir.KeyVal{Key: "n", Val: ir.Null()},
	)
	want := `a: 1
l:
  - 1
  - b: "x"
    c: []
m:
  k: "v"
e: {}
"1x": true
"n": null`
	got := MustString(v, EncodeFormat(format.YAMLFormat))
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	back, err := yaml.Parse([]byte(got))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(v, back) {
		t.Errorf("round trip: got %v", back.Interface())
	}
}

func TestYAMLAgainstGoYAML(t *testing.T) {
	v := sampleValue(t)
	out := MustString(v, EncodeFormat(format.YAMLFormat))
	var got any
	if err := goyaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("go-yaml: %v\n%s", err, out)
	}
	if diff := cmp.Diff(v.Interface(), normalize(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	back, err := yaml.Parse([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(v, back) {
		t.Errorf("round trip: got %v", back.Interface())
	}
}

func TestSpecialNumbers(t *testing.T) {
	v := ir.FromKeyVals(
		ir.KeyVal{Key: "p", Val: ir.FromNumber(math.Inf(1))},
		ir.KeyVal{Key: "q", Val: ir.FromNumber(math.NaN())},
		ir.KeyVal{Key: "r", Val: ir.FromNumber(1e300)},
	)
	if got, want := MustString(v, EncodeFormat(format.YAMLFormat)), "p: .inf\nq: .nan\nr: 1e+300"; got != want {
		t.Errorf("yaml: got %q want %q", got, want)
	}
	if got, want := MustString(v, EncodeFormat(format.TOMLFormat)), "p = inf\nq = nan\nr = 1e+300"; got != want {
		t.Errorf("toml: got %q want %q", got, want)
	}
	err := Encode(v, &bytes.Buffer{})
	if !errors.Is(err, token.ErrUnsupportedValue) {
		t.Errorf("json: got %v", err)
	}
}

func TestDatetimes(t *testing.T) {
	dt, ok := ir.ParseDatetime("1979-05-27T07:32:00.5-07:00")
	if !ok {
		t.Fatal("datetime")
	}
	v := ir.FromKeyVals(ir.KeyVal{Key: "d", Val: ir.FromDatetime(dt)})
	tests := []struct {
		f    format.Format
		want string
	}{
		{format.JSONFormat, `{"d":"1979-05-27T07:32:00.5-07:00"}`},
		{format.TOMLFormat, `d = 1979-05-27T07:32:00.5-07:00`},
		{format.YAMLFormat, `d: 1979-05-27T07:32:00.5-07:00`},
		{format.XMLFormat, `<d>1979-05-27T07:32:00.5-07:00</d>`},
	}
	for _, tt := range tests {
		if got := MustString(v, EncodeFormat(tt.f)); got != tt.want {
			t.Errorf("%s: got %s want %s", tt.f, got, tt.want)
		}
	}
}

func TestUnsupported(t *testing.T) {
	tests := []struct {
		name string
		v    *ir.Value
		f    format.Format
	}{
		{"toml array root", ir.FromSlice(nil), format.TOMLFormat},
		{"toml scalar root", ir.FromInt(1), format.TOMLFormat},
		{"toml null", ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.FromKeyVals(ir.KeyVal{Key: "b", Val: ir.Null()})}), format.TOMLFormat},
		{"toml null in array", ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.FromSlice([]*ir.Value{ir.Null()})}), format.TOMLFormat},
		{"json nan", ir.FromSlice([]*ir.Value{ir.FromNumber(math.NaN())}), format.JSONFormat},
		{"xml name", ir.FromKeyVals(ir.KeyVal{Key: "a b", Val: ir.FromInt(1)}), format.XMLFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Encode(tt.v, &buf, EncodeFormat(tt.f))
			if !errors.Is(err, token.ErrUnsupportedValue) {
				t.Errorf("got %v", err)
			}
			if buf.Len() != 0 {
				t.Errorf("partial output %q", buf.String())
			}
		})
	}
}

func TestColors(t *testing.T) {
	mark := func(s string) string { return "<" + s + ">" }
	c := &Colors{
		Map: map[Colorable]func(string) string{
			{Type: ir.NumberType, Attr: ValueColor}: mark,
			{Type: ir.ObjectType, Attr: FieldColor}: mark,
		},
	}
	v := ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.FromInt(1)}, ir.KeyVal{Key: "b", Val: ir.FromString("x")})
	if got, want := MustString(v, EncodeColors(c)), `{<"a">:<1>,<"b">:"x"}`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if got, want := MustString(v, EncodeColors(c), EncodeFormat(format.YAMLFormat)), "<a>: <1>\n<b>: \"x\""; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if got := FormatFromOpts(EncodeColors(nil), EncodeFormat(format.TOMLFormat)); got != format.TOMLFormat {
		t.Errorf("format %s", got)
	}
}
