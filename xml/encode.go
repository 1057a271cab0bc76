package xml

import (
	"bytes"
	"io"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five predefined entities' characters.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Encode writes the document without a declaration or added whitespace.
// Elements without children are self-closed.
func (d *Document) Encode(w io.Writer) error {
	ew := &errWriter{w: w}
	encodeElement(ew, d.Root)
	return ew.err
}

func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Encode(&buf)
	return buf.String()
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(ss ...string) {
	for _, s := range ss {
		if ew.err != nil {
			return
		}
		_, ew.err = io.WriteString(ew.w, s)
	}
}

func encodeElement(w *errWriter, e *Element) {
	w.write("<", e.Name)
	for _, a := range e.Attrs {
		w.write(" ", a.Name, `="`, Escape(a.Value), `"`)
	}
	if len(e.Children) == 0 {
		w.write("/>")
		return
	}
	w.write(">")
	for _, c := range e.Children {
		switch c := c.(type) {
		case *Element:
			encodeElement(w, c)
		case Text:
			w.write(Escape(string(c)))
		}
	}
	w.write("</", e.Name, ">")
}
