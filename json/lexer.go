package json

import (
	"strconv"
	"unicode/utf8"

	"github.com/signadot/zparse/token"
)

// Lexer turns JSON input into tokens.
type Lexer struct {
	cur      *token.Cursor
	comments bool
	limits   token.Limits
	buf      []byte
}

func NewLexer(input []byte, opts ...ParseOption) *Lexer {
	o := newParseOpts(opts)
	return newLexer(input, o)
}

func newLexer(input []byte, o *parseOpts) *Lexer {
	return &Lexer{
		cur:      token.NewCursor(input),
		comments: o.comments,
		limits:   o.limits,
	}
}

// Offset is the number of bytes consumed so far.
func (l *Lexer) Offset() int {
	return l.cur.Offset()
}

func (l *Lexer) Position() token.Pos {
	return l.cur.Position()
}

// currentRune decodes the rune at the cursor without consuming it.
func (l *Lexer) currentRune() (rune, bool) {
	rem := l.cur.Remaining()
	if len(rem) == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRune(rem)
	return r, true
}

func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipIgnorable(); err != nil {
		return Token{}, err
	}
	start := l.cur.Position()
	tok := Token{}
	b, ok := l.cur.Current()
	if !ok {
		tok.Type = TEOF
		tok.Span = token.At(start)
		return tok, nil
	}
	switch b {
	case '{':
		l.cur.Advance()
		tok.Type = TLBrace
	case '}':
		l.cur.Advance()
		tok.Type = TRBrace
	case '[':
		l.cur.Advance()
		tok.Type = TLBracket
	case ']':
		l.cur.Advance()
		tok.Type = TRBracket
	case ':':
		l.cur.Advance()
		tok.Type = TColon
	case ',':
		l.cur.Advance()
		tok.Type = TComma
	case '"':
		s, err := l.lexString()
		if err != nil {
			return tok, err
		}
		tok.Type = TString
		tok.String = s
	case 'n':
		if err := l.lexWord("null"); err != nil {
			return tok, err
		}
		tok.Type = TNull
	case 't':
		if err := l.lexWord("true"); err != nil {
			return tok, err
		}
		tok.Type = TTrue
	case 'f':
		if err := l.lexWord("false"); err != nil {
			return tok, err
		}
		tok.Type = TFalse
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := l.lexNumber()
		if err != nil {
			return tok, err
		}
		tok.Type = TNumber
		tok.Number = f
	case '/':
		return tok, token.NewError(token.KindInvalidToken, token.At(start), "comments are not enabled")
	default:
		r, _ := utf8.DecodeRune(l.cur.Remaining())
		return tok, token.Errorf(token.KindInvalidToken, token.At(start), "unexpected character %q", r)
	}
	tok.Span = token.NewSpan(start, l.cur.Position())
	return tok, nil
}

func (l *Lexer) skipIgnorable() error {
	for {
		l.cur.SkipWhitespace()
		if !l.comments || !l.cur.HasPrefix("/") {
			return nil
		}
		start := l.cur.Position()
		switch {
		case l.cur.HasPrefix("//"):
			for {
				b, ok := l.cur.Advance()
				if !ok || b == '\n' {
					break
				}
			}
		case l.cur.HasPrefix("/*"):
			l.cur.AdvanceBy(2)
			for {
				if l.cur.IsEOF() {
					return token.NewError(token.KindUnterminatedComment, token.At(start), "block comment")
				}
				if l.cur.HasPrefix("*/") {
					l.cur.AdvanceBy(2)
					break
				}
				l.cur.Advance()
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) lexWord(w string) error {
	start := l.cur.Position()
	if !l.cur.HasPrefix(w) {
		return l.invalidWord(start)
	}
	l.cur.AdvanceBy(len(w))
	if b, ok := l.cur.Current(); ok && (token.IsAlpha(b) || token.IsDigit(b) || b == '_') {
		return l.invalidWord(start)
	}
	return nil
}

func (l *Lexer) invalidWord(start token.Pos) error {
	for {
		b, ok := l.cur.Current()
		if !ok || !(token.IsAlpha(b) || token.IsDigit(b) || b == '_') {
			break
		}
		l.cur.Advance()
	}
	return token.Errorf(token.KindInvalidToken, token.NewSpan(start, l.cur.Position()),
		"unknown literal %q", l.cur.SliceFrom(start.Offset))
}

func (l *Lexer) lexNumber() (float64, error) {
	start := l.cur.Position()
	invalid := func() (float64, error) {
		return 0, token.Errorf(token.KindInvalidNumber, token.NewSpan(start, l.cur.Position()),
			"%q", l.cur.SliceFrom(start.Offset))
	}
	l.cur.Consume('-')
	b, ok := l.cur.Current()
	switch {
	case !ok:
		return invalid()
	case b == '0':
		l.cur.Advance()
	case b >= '1' && b <= '9':
		l.digits()
	default:
		return invalid()
	}
	if l.cur.Consume('.') {
		if l.digits() == 0 {
			return invalid()
		}
	}
	if b, ok := l.cur.Current(); ok && (b == 'e' || b == 'E') {
		l.cur.Advance()
		if !l.cur.Consume('+') {
			l.cur.Consume('-')
		}
		if l.digits() == 0 {
			return invalid()
		}
	}
	f, err := strconv.ParseFloat(string(l.cur.SliceFrom(start.Offset)), 64)
	if err != nil {
		return invalid()
	}
	return f, nil
}

func (l *Lexer) digits() int {
	n := 0
	for {
		b, ok := l.cur.Current()
		if !ok || !token.IsDigit(b) {
			return n
		}
		l.cur.Advance()
		n++
	}
}

func (l *Lexer) lexString() (string, error) {
	start := l.cur.Position()
	l.cur.Advance()
	l.buf = l.buf[:0]
	for {
		b, ok := l.cur.Current()
		if !ok {
			return "", token.NewError(token.KindUnterminatedString, token.At(l.cur.Position()), "")
		}
		switch {
		case b == '"':
			l.cur.Advance()
			span := token.NewSpan(start, l.cur.Position())
			s, err := token.ToString(l.buf, span)
			if err != nil {
				return "", err
			}
			if err := l.limits.CheckString(len(s), span); err != nil {
				return "", err
			}
			return s, nil
		case b == '\\':
			if err := l.lexEscape(); err != nil {
				return "", err
			}
		case b < 0x20:
			return "", token.Errorf(token.KindInvalidToken, token.At(l.cur.Position()),
				"control character %#02x in string", b)
		default:
			l.buf = append(l.buf, b)
			l.cur.Advance()
		}
	}
}

func (l *Lexer) lexEscape() error {
	escPos := l.cur.Position()
	l.cur.Advance()
	b, ok := l.cur.Advance()
	if !ok {
		return token.NewError(token.KindUnterminatedString, token.At(l.cur.Position()), "")
	}
	switch b {
	case '"', '\\', '/':
		l.buf = append(l.buf, b)
	case 'b':
		l.buf = append(l.buf, '\b')
	case 'f':
		l.buf = append(l.buf, '\f')
	case 'n':
		l.buf = append(l.buf, '\n')
	case 'r':
		l.buf = append(l.buf, '\r')
	case 't':
		l.buf = append(l.buf, '\t')
	case 'u':
		r, err := l.hex4(escPos)
		if err != nil {
			return err
		}
		switch {
		case utf16IsHigh(r):
			lo, ok := l.lowSurrogate()
			if !ok {
				r = utf8.RuneError
				break
			}
			l.cur.AdvanceBy(6)
			r = combineSurrogates(r, lo)
		case utf16IsLow(r):
			r = utf8.RuneError
		}
		l.buf = utf8.AppendRune(l.buf, r)
	default:
		return token.Errorf(token.KindInvalidEscapeSequence, token.NewSpan(escPos, l.cur.Position()),
			`\%c`, b)
	}
	return nil
}

func (l *Lexer) hex4(escPos token.Pos) (rune, error) {
	rem := l.cur.Remaining()
	if len(rem) < 4 {
		return 0, token.NewError(token.KindInvalidUnicodeEscape, token.At(escPos), "")
	}
	r, ok := token.HexValue(rem[:4])
	if !ok {
		return 0, token.Errorf(token.KindInvalidUnicodeEscape, token.At(escPos), "%q", rem[:4])
	}
	l.cur.AdvanceBy(4)
	return r, nil
}

// lowSurrogate reports whether a \u escape of a low surrogate follows,
// without consuming it.
func (l *Lexer) lowSurrogate() (rune, bool) {
	rem := l.cur.Remaining()
	if len(rem) < 6 || rem[0] != '\\' || rem[1] != 'u' {
		return 0, false
	}
	lo, ok := token.HexValue(rem[2:6])
	return lo, ok && utf16IsLow(lo)
}

func utf16IsHigh(r rune) bool { return r >= 0xd800 && r < 0xdc00 }
func utf16IsLow(r rune) bool  { return r >= 0xdc00 && r < 0xe000 }

func combineSurrogates(hi, lo rune) rune {
	return 0x10000 + (hi-0xd800)<<10 + (lo - 0xdc00)
}
