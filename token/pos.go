package token

import "fmt"

// Pos is a location in an input buffer.  Line and Col are 1-based, Col
// counts bytes.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) IsZero() bool {
	return p.Line == 0
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, col %d (offset %d)", p.Line, p.Col, p.Offset)
}

// Span is the half open range [Start, End) of an input buffer.
type Span struct {
	Start Pos
	End   Pos
}

// EmptySpan is the span used where no location is tracked.
func EmptySpan() Span {
	return Span{}
}

func NewSpan(start, end Pos) Span {
	return Span{Start: start, End: end}
}

// At returns the empty span located at p.
func At(p Pos) Span {
	return Span{Start: p, End: p}
}

func (s Span) IsEmpty() bool {
	return s.Start.IsZero()
}

func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

func (s Span) String() string {
	if s.IsEmpty() {
		return "<unknown>"
	}
	return s.Start.String()
}
