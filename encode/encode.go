package encode

import (
	"bytes"
	"io"
	"math"
	"strings"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/format"
	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/token"
	"github.com/signadot/zparse/xml"
)

type EncState struct {
	format format.Format
	indent int
	depth  int
	buf    bytes.Buffer

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes v to w in the format selected by EncodeFormat, JSON by
// default.
func Encode(v *ir.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if debug.Convert() {
		debug.Logf("encode %s: %v\n", es.format, v)
	}
	var err error
	switch es.format {
	case format.JSONFormat:
		err = encodeJSON(v, es)
	case format.TOMLFormat:
		err = encodeTOML(v, es)
	case format.YAMLFormat:
		err = encodeYAML(v, es)
	case format.XMLFormat:
		var doc *xml.Document
		if doc, err = xml.FromValue(v); err == nil {
			return doc.Encode(w)
		}
	default:
		err = unsupported("format %s", es.format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(es.buf.Bytes())
	return err
}

func unsupported(f string, args ...any) error {
	return token.Errorf(token.KindUnsupportedValue, token.EmptySpan(), f, args...)
}

func (es *EncState) write(ss ...string) {
	for _, s := range ss {
		es.buf.WriteString(s)
	}
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) sep(t ir.Type, s string) string {
	return es.color(t, SepColor, s)
}

// nl starts a new line at the current depth when indenting.
func (es *EncState) nl() {
	if es.indent == 0 {
		return
	}
	es.write("\n", strings.Repeat(" ", es.indent*es.depth))
}

// scalar returns the text of a leaf shared by JSON and TOML.
func scalar(v *ir.Value) string {
	switch v.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		if v.Bool {
			return "true"
		}
		return "false"
	case ir.NumberType:
		return ir.FormatNumber(v.Number)
	case ir.StringType:
		return token.Quote(v.String)
	case ir.DatetimeType:
		return v.Datetime.String()
	}
	return ""
}

func encodeJSON(v *ir.Value, es *EncState) error {
	switch v.Type {
	case ir.ObjectType:
		es.write(es.sep(v.Type, "{"))
		if v.Object.Len() == 0 {
			es.write(es.sep(v.Type, "}"))
			return nil
		}
		es.depth++
		i := 0
		for k, e := range v.Object.All() {
			if i > 0 {
				es.write(es.sep(v.Type, ","))
			}
			i++
			es.nl()
			colon := ":"
			if es.indent > 0 {
				colon = ": "
			}
			es.write(es.color(v.Type, FieldColor, token.Quote(k)), es.sep(v.Type, colon))
			if err := encodeJSON(e, es); err != nil {
				return err
			}
		}
		es.depth--
		es.nl()
		es.write(es.sep(v.Type, "}"))
	case ir.ArrayType:
		es.write(es.sep(v.Type, "["))
		if len(v.Array) == 0 {
			es.write(es.sep(v.Type, "]"))
			return nil
		}
		es.depth++
		for i, e := range v.Array {
			if i > 0 {
				es.write(es.sep(v.Type, ","))
			}
			es.nl()
			if err := encodeJSON(e, es); err != nil {
				return err
			}
		}
		es.depth--
		es.nl()
		es.write(es.sep(v.Type, "]"))
	case ir.NumberType:
		if math.IsInf(v.Number, 0) || math.IsNaN(v.Number) {
			return unsupported("JSON has no number %s", ir.FormatNumber(v.Number))
		}
		es.write(es.color(v.Type, ValueColor, scalar(v)))
	case ir.DatetimeType:
		es.write(es.color(v.Type, ValueColor, token.Quote(v.Datetime.String())))
	default:
		es.write(es.color(v.Type, ValueColor, scalar(v)))
	}
	return nil
}

func tomlKey(k string) string {
	if token.IsBareKey(k) {
		return k
	}
	return token.Quote(k)
}

func encodeTOML(v *ir.Value, es *EncState) error {
	if v.Type != ir.ObjectType {
		return unsupported("TOML document root must be an object, not %s", v.Type)
	}
	i := 0
	for k, e := range v.Object.All() {
		if i > 0 {
			es.write("\n")
		}
		i++
		es.write(es.color(ir.ObjectType, FieldColor, tomlKey(k)), es.sep(ir.ObjectType, " = "))
		if err := encodeTOMLValue(k, e, es); err != nil {
			return err
		}
	}
	return nil
}

func encodeTOMLValue(key string, v *ir.Value, es *EncState) error {
	switch v.Type {
	case ir.NullType:
		return unsupported("TOML has no null (key %q)", key)
	case ir.ObjectType:
		es.write(es.sep(v.Type, "{"))
		i := 0
		for k, e := range v.Object.All() {
			if i > 0 {
				es.write(es.sep(v.Type, ", "))
			}
			i++
			es.write(es.color(v.Type, FieldColor, tomlKey(k)), es.sep(v.Type, " = "))
			if err := encodeTOMLValue(k, e, es); err != nil {
				return err
			}
		}
		es.write(es.sep(v.Type, "}"))
	case ir.ArrayType:
		es.write(es.sep(v.Type, "["))
		for i, e := range v.Array {
			if i > 0 {
				es.write(es.sep(v.Type, ", "))
			}
			if err := encodeTOMLValue(key, e, es); err != nil {
				return err
			}
		}
		es.write(es.sep(v.Type, "]"))
	default:
		es.write(es.color(v.Type, ValueColor, scalar(v)))
	}
	return nil
}

// yamlReserved are plain words a YAML 1.1 or 1.2 reader may resolve to
// something other than a string.
var yamlReserved = map[string]bool{
	"true": true, "false": true, "null": true, "yes": true, "no": true,
	"on": true, "off": true, "y": true, "n": true,
}

func yamlKey(k string) string {
	if k == "" || !(token.IsAlpha(k[0]) || k[0] == '_') || yamlReserved[strings.ToLower(k)] {
		return token.Quote(k)
	}
	for i := 0; i < len(k); i++ {
		if !token.IsBareKeyByte(k[i]) && k[i] != '.' && k[i] != '/' {
			return token.Quote(k)
		}
	}
	return k
}

func yamlScalar(v *ir.Value) string {
	if v.Type == ir.NumberType {
		switch {
		case math.IsInf(v.Number, 1):
			return ".inf"
		case math.IsInf(v.Number, -1):
			return "-.inf"
		case math.IsNaN(v.Number):
			return ".nan"
		}
	}
	return scalar(v)
}

func isBlock(v *ir.Value) bool {
	switch v.Type {
	case ir.ObjectType:
		return v.Object.Len() != 0
	case ir.ArrayType:
		return len(v.Array) != 0
	}
	return false
}

func encodeYAML(v *ir.Value, es *EncState) error {
	es.write(strings.Join(yamlLines(v, es), "\n"))
	return nil
}

// yamlLines renders v as lines relative to its own indentation.
func yamlLines(v *ir.Value, es *EncState) []string {
	switch {
	case v.Type == ir.ObjectType && isBlock(v):
		var lines []string
		for k, e := range v.Object.All() {
			key := es.color(v.Type, FieldColor, yamlKey(k)) + es.sep(v.Type, ":")
			if !isBlock(e) {
				lines = append(lines, key+" "+yamlLines(e, es)[0])
				continue
			}
			lines = append(lines, key)
			for _, ln := range yamlLines(e, es) {
				lines = append(lines, "  "+ln)
			}
		}
		return lines
	case v.Type == ir.ArrayType && isBlock(v):
		var lines []string
		dash := es.sep(v.Type, "-") + " "
		for _, e := range v.Array {
			sub := yamlLines(e, es)
			lines = append(lines, dash+sub[0])
			for _, ln := range sub[1:] {
				lines = append(lines, "  "+ln)
			}
		}
		return lines
	case v.Type == ir.ObjectType:
		return []string{es.sep(v.Type, "{}")}
	case v.Type == ir.ArrayType:
		return []string{es.sep(v.Type, "[]")}
	}
	return []string{es.color(v.Type, ValueColor, yamlScalar(v))}
}
