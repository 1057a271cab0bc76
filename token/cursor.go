package token

import "bytes"

// Cursor walks a byte slice tracking offset, line and column.  It never
// copies or owns the slice.  Reading past the end reports no byte rather
// than failing.
type Cursor struct {
	src  []byte
	off  int
	line int
	col  int
}

func NewCursor(src []byte) *Cursor {
	return &Cursor{src: src, line: 1, col: 1}
}

func (c *Cursor) Current() (byte, bool) {
	if c.off >= len(c.src) {
		return 0, false
	}
	return c.src[c.off], true
}

// Peek returns the byte n positions after the current one, Peek(0) being
// Current().
func (c *Cursor) Peek(n int) (byte, bool) {
	i := c.off + n
	if i < 0 || i >= len(c.src) {
		return 0, false
	}
	return c.src[i], true
}

func (c *Cursor) Advance() (byte, bool) {
	if c.off >= len(c.src) {
		return 0, false
	}
	b := c.src[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b, true
}

func (c *Cursor) AdvanceBy(n int) {
	for range n {
		if _, ok := c.Advance(); !ok {
			return
		}
	}
}

// Consume advances past b if it is the current byte.
func (c *Cursor) Consume(b byte) bool {
	cur, ok := c.Current()
	if !ok || cur != b {
		return false
	}
	c.Advance()
	return true
}

func (c *Cursor) SkipWhitespace() {
	for {
		b, ok := c.Current()
		if !ok || !IsSpace(b) {
			return
		}
		c.Advance()
	}
}

// SliceFrom returns the already scanned bytes from start up to the current
// offset.
func (c *Cursor) SliceFrom(start int) []byte {
	if start < 0 {
		start = 0
	}
	if start > c.off {
		return nil
	}
	return c.src[start:c.off]
}

func (c *Cursor) Position() Pos {
	return Pos{Offset: c.off, Line: c.line, Col: c.col}
}

func (c *Cursor) Offset() int {
	return c.off
}

func (c *Cursor) IsEOF() bool {
	return c.off >= len(c.src)
}

func (c *Cursor) HasPrefix(s string) bool {
	return bytes.HasPrefix(c.src[c.off:], []byte(s))
}

func (c *Cursor) Remaining() []byte {
	return c.src[c.off:]
}

// Len is the total length of the underlying input.
func (c *Cursor) Len() int {
	return len(c.src)
}

func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func IsHexDigit(b byte) bool {
	return IsDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
