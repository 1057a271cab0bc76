package xml

import "strings"

// Document is a parsed XML document.  Only the root element is kept; the
// prolog, comments and processing instructions are dropped.
type Document struct {
	Root *Element
}

type Attr struct {
	Name  string
	Value string
}

// Element is an XML element.  Attrs keep their document order.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Content
}

// Content is either an *Element or a Text.
type Content interface {
	isContent()
}

// Text is a run of character data with entities decoded.
type Text string

func (*Element) isContent() {}
func (Text) isContent()     {}

func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			return e.Attrs[i].Value, true
		}
	}
	return "", false
}

func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

func (e *Element) AddChild(c *Element) {
	e.Children = append(e.Children, c)
}

// AddText appends text, merging it with a preceding text run.
func (e *Element) AddText(s string) {
	if n := len(e.Children); n > 0 {
		if t, ok := e.Children[n-1].(Text); ok {
			e.Children[n-1] = t + Text(s)
			return
		}
	}
	e.Children = append(e.Children, Text(s))
}

// Text returns the concatenation of the element's direct text children.
func (e *Element) Text() string {
	var b strings.Builder
	for _, c := range e.Children {
		if t, ok := c.(Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// Elements returns the element's child elements.
func (e *Element) Elements() []*Element {
	var res []*Element
	for _, c := range e.Children {
		if ce, ok := c.(*Element); ok {
			res = append(res, ce)
		}
	}
	return res
}

func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == ':' || b >= 0x80
}

func isNameByte(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '-' || b == '.'
}

// IsName reports whether s is usable as an element or attribute name.
func IsName(s string) bool {
	if s == "" || !isNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}
