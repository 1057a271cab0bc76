package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCursorAdvance(t *testing.T) {
	c := NewCursor([]byte("ab\ncd"))
	if b, ok := c.Current(); !ok || b != 'a' {
		t.Fatalf("current: got %q %v", b, ok)
	}
	if b, ok := c.Peek(3); !ok || b != 'c' {
		t.Fatalf("peek: got %q %v", b, ok)
	}
	c.AdvanceBy(3)
	want := Pos{Offset: 3, Line: 2, Col: 1}
	if diff := cmp.Diff(want, c.Position()); diff != "" {
		t.Errorf("position (-want +got):\n%s", diff)
	}
	c.AdvanceBy(10)
	if !c.IsEOF() {
		t.Errorf("expected eof")
	}
	if _, ok := c.Advance(); ok {
		t.Errorf("advance past end reported a byte")
	}
	if _, ok := c.Peek(1); ok {
		t.Errorf("peek past end reported a byte")
	}
	want = Pos{Offset: 5, Line: 2, Col: 3}
	if diff := cmp.Diff(want, c.Position()); diff != "" {
		t.Errorf("position (-want +got):\n%s", diff)
	}
}

func TestCursorConsumeSlice(t *testing.T) {
	c := NewCursor([]byte("  \t\n{x}"))
	c.SkipWhitespace()
	start := c.Offset()
	if !c.Consume('{') {
		t.Fatal("consume {")
	}
	if c.Consume('}') {
		t.Fatal("consumed wrong byte")
	}
	c.Advance()
	if got := string(c.SliceFrom(start)); got != "{x" {
		t.Errorf("slice: got %q", got)
	}
	if !c.HasPrefix("}") {
		t.Errorf("prefix")
	}
}

func TestErrorIs(t *testing.T) {
	var err error = DuplicateKeyErr("a", At(Pos{Offset: 4, Line: 2, Col: 1}))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("errors.Is failed")
	}
	if got, want := err.Error(), `duplicate key "a" at line 2, col 1 (offset 4)`; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	k, ok := KindOf(err)
	if !ok || k != KindDuplicateKey {
		t.Errorf("kind: %v %v", k, ok)
	}
	err = MaxErr(KindMaxDepthExceeded, 3, EmptySpan())
	if got, want := err.Error(), "max depth exceeded (max 3)"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestLimits(t *testing.T) {
	l := Limits{MaxDepth: 2, MaxSize: 10}
	if err := l.CheckDepth(2, EmptySpan()); err != nil {
		t.Errorf("depth 2: %v", err)
	}
	err := l.CheckDepth(3, EmptySpan())
	var te *Error
	if !errors.As(err, &te) || te.Max != 2 || te.Kind != KindMaxDepthExceeded {
		t.Errorf("depth 3: %v", err)
	}
	if err := l.CheckSize(10, EmptySpan()); err != nil {
		t.Errorf("size 10: %v", err)
	}
	if err := l.CheckSize(11, EmptySpan()); !errors.Is(err, ErrMaxSizeExceeded) {
		t.Errorf("size 11: %v", err)
	}
	if err := (Limits{}).CheckDepth(1<<20, EmptySpan()); err != nil {
		t.Errorf("unlimited: %v", err)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", `""`},
		{"a\"b", `"a\"b"`},
		{"tab\there\n", `"tab\there\n"`},
		{"\x01", `"\u0001"`},
		{"héllo", `"héllo"`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
