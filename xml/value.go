package xml

import (
	"strings"

	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/token"
)

const (
	AttributesKey = "@attributes"
	TextKey       = "#text"

	// RootName names the element wrapping values that do not name their
	// own root.
	RootName = "root"
	// ItemName names the elements holding the items of a top level array.
	ItemName = "item"
)

// ToValue maps a document to {rootName: value}.  An element becomes an
// object holding AttributesKey, TextKey and one entry per child name,
// repeated names collecting into an array.  An element holding nothing
// but text becomes that text, and an entirely empty element becomes {}.
// Leaves are always strings.
func ToValue(doc *Document) *ir.Value {
	return ir.FromKeyVals(ir.KeyVal{Key: doc.Root.Name, Val: elementValue(doc.Root)})
}

func elementValue(e *Element) *ir.Value {
	text := e.Text()
	children := e.Elements()
	if len(e.Attrs) == 0 && len(children) == 0 {
		if strings.TrimSpace(text) == "" {
			return ir.FromObject(nil)
		}
		return ir.FromString(text)
	}
	obj := ir.NewObject()
	if len(e.Attrs) != 0 {
		attrs := ir.NewObject()
		for _, a := range e.Attrs {
			attrs.Set(a.Name, ir.FromString(a.Value))
		}
		obj.Set(AttributesKey, ir.FromObject(attrs))
	}
	if strings.TrimSpace(text) != "" {
		obj.Set(TextKey, ir.FromString(text))
	}
	repeated := map[string]bool{}
	for _, c := range children {
		v := elementValue(c)
		prev := obj.Get(c.Name)
		switch {
		case prev == nil:
			obj.Set(c.Name, v)
		case repeated[c.Name]:
			prev.Array = append(prev.Array, v)
		default:
			repeated[c.Name] = true
			obj.Set(c.Name, ir.FromSlice([]*ir.Value{prev, v}))
		}
	}
	return ir.FromObject(obj)
}

// FromValue maps a value onto a document, inverting ToValue.  An object
// with a single non-array entry names the root element; anything else is
// wrapped in a RootName element, with top level array items as ItemName
// children.
func FromValue(v *ir.Value) (*Document, error) {
	if v.Type == ir.ObjectType && v.Object.Len() == 1 {
		for k, child := range v.Object.All() {
			if child.Type != ir.ArrayType {
				root, err := element(k, child)
				if err != nil {
					return nil, err
				}
				return &Document{Root: root}, nil
			}
		}
	}
	if v.Type == ir.ArrayType {
		v = ir.FromKeyVals(ir.KeyVal{Key: ItemName, Val: v})
	}
	root, err := element(RootName, v)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root}, nil
}

func element(name string, v *ir.Value) (*Element, error) {
	if !IsName(name) {
		return nil, token.Errorf(token.KindUnsupportedValue, token.EmptySpan(), "%q is not an XML name", name)
	}
	e := NewElement(name)
	if v.Type != ir.ObjectType {
		if s := scalarText(v); s != "" {
			e.AddText(s)
		}
		return e, nil
	}
	if attrs := v.Object.Get(AttributesKey); attrs != nil && attrs.Type == ir.ObjectType {
		for k, a := range attrs.Object.All() {
			if !IsName(k) {
				return nil, token.Errorf(token.KindUnsupportedValue, token.EmptySpan(), "%q is not an XML name", k)
			}
			if a.Type == ir.ArrayType || a.Type == ir.ObjectType {
				return nil, token.Errorf(token.KindUnsupportedValue, token.EmptySpan(), "attribute %q is a %s", k, a.Type)
			}
			e.SetAttr(k, scalarText(a))
		}
	}
	if t := v.Object.Get(TextKey); t != nil && t.Type != ir.ArrayType && t.Type != ir.ObjectType {
		if s := scalarText(t); s != "" {
			e.AddText(s)
		}
	}
	for k, child := range v.Object.All() {
		if k == AttributesKey || k == TextKey {
			continue
		}
		if err := addChildren(e, k, child); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// addChildren adds one element per item of an array, and one for any
// other value.
func addChildren(e *Element, name string, v *ir.Value) error {
	if v.Type != ir.ArrayType {
		c, err := element(name, v)
		if err != nil {
			return err
		}
		e.AddChild(c)
		return nil
	}
	for _, item := range v.Array {
		if err := addChildren(e, name, item); err != nil {
			return err
		}
	}
	return nil
}

func scalarText(v *ir.Value) string {
	switch v.Type {
	case ir.BoolType:
		if v.Bool {
			return "true"
		}
		return "false"
	case ir.NumberType:
		return ir.FormatNumber(v.Number)
	case ir.StringType:
		return v.String
	case ir.DatetimeType:
		return v.Datetime.String()
	}
	return ""
}
