package toml

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/token"
)

// Mode selects how the lexer reads a word.  In KeyMode a run of
// [A-Za-z0-9_-] is a bare key and '.' separates keys; in ValueMode the
// same bytes form numbers, booleans and datetimes.
type Mode int

const (
	KeyMode Mode = iota
	ValueMode
)

type Lexer struct {
	cur    *token.Cursor
	limits token.Limits
	buf    []byte
}

func NewLexer(input []byte, opts ...ParseOption) *Lexer {
	o := newParseOpts(opts)
	return &Lexer{cur: token.NewCursor(input), limits: o.limits}
}

func (l *Lexer) Offset() int {
	return l.cur.Offset()
}

func (l *Lexer) NextToken(mode Mode) (Token, error) {
	l.skipSpace()
	start := l.cur.Position()
	tok := Token{}
	b, ok := l.cur.Current()
	if !ok {
		tok.Type = TEOF
		tok.Span = token.At(start)
		return tok, nil
	}
	var err error
	switch b {
	case '\n':
		l.cur.Advance()
		tok.Type = TNewline
	case '[':
		l.cur.Advance()
		tok.Type = TLBracket
		if mode == KeyMode && l.cur.Consume('[') {
			tok.Type = TDLBracket
		}
	case ']':
		l.cur.Advance()
		tok.Type = TRBracket
		if mode == KeyMode && l.cur.Consume(']') {
			tok.Type = TDRBracket
		}
	case '{':
		l.cur.Advance()
		tok.Type = TLBrace
	case '}':
		l.cur.Advance()
		tok.Type = TRBrace
	case '=':
		l.cur.Advance()
		tok.Type = TEquals
	case ',':
		l.cur.Advance()
		tok.Type = TComma
	case '"', '\'':
		err = l.lexString(&tok)
	default:
		switch {
		case mode == KeyMode && b == '.':
			l.cur.Advance()
			tok.Type = TDot
		case mode == KeyMode && token.IsBareKeyByte(b):
			for {
				c, ok := l.cur.Current()
				if !ok || !token.IsBareKeyByte(c) {
					break
				}
				l.cur.Advance()
			}
			tok.Type = TBareKey
			tok.String = string(l.cur.SliceFrom(start.Offset))
		case mode == ValueMode && isWordByte(b):
			err = l.lexWord(&tok, start)
		default:
			r, _ := utf8.DecodeRune(l.cur.Remaining())
			err = token.Errorf(token.KindInvalidToken, token.At(start), "unexpected character %q", r)
		}
	}
	if err != nil {
		return tok, err
	}
	tok.Span = token.NewSpan(start, l.cur.Position())
	return tok, nil
}

// skipSpace skips blanks and comments, stopping at a newline.
func (l *Lexer) skipSpace() {
	for {
		b, ok := l.cur.Current()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\r':
			l.cur.Advance()
		case '#':
			for {
				c, ok := l.cur.Current()
				if !ok || c == '\n' {
					break
				}
				l.cur.Advance()
			}
		default:
			return
		}
	}
}

func isWordByte(b byte) bool {
	switch b {
	case '_', '.', ':', '+', '-':
		return true
	}
	return token.IsAlpha(b) || token.IsDigit(b)
}

func (l *Lexer) scanWord() {
	for {
		b, ok := l.cur.Current()
		if !ok || !isWordByte(b) {
			return
		}
		l.cur.Advance()
	}
}

func (l *Lexer) lexWord(tok *Token, start token.Pos) error {
	l.scanWord()
	w := string(l.cur.SliceFrom(start.Offset))
	if isLocalDate(w) && l.timeFollows() {
		l.cur.Advance()
		l.scanWord()
		w = string(l.cur.SliceFrom(start.Offset))
	}
	span := token.NewSpan(start, l.cur.Position())
	switch w {
	case "true", "false":
		tok.Type = TBool
		tok.Bool = w == "true"
		return nil
	case "inf", "+inf":
		tok.Type = TNumber
		tok.Number = math.Inf(1)
		return nil
	case "-inf":
		tok.Type = TNumber
		tok.Number = math.Inf(-1)
		return nil
	case "nan", "+nan", "-nan":
		tok.Type = TNumber
		tok.Number = math.NaN()
		return nil
	}
	if isDatetimeLike(w) {
		dt, ok := ir.ParseDatetime(w)
		if !ok {
			return token.Errorf(token.KindInvalidDatetime, span, "%q", w)
		}
		tok.Type = TDatetime
		tok.Datetime = dt
		return nil
	}
	if token.IsAlpha(w[0]) {
		return token.Errorf(token.KindInvalidToken, span, "unknown value %q", w)
	}
	f, ok := parseNumber(w)
	if !ok {
		return token.Errorf(token.KindInvalidNumber, span, "%q", w)
	}
	tok.Type = TNumber
	tok.Number = f
	return nil
}

// timeFollows reports whether the input continues with " HH:".
func (l *Lexer) timeFollows() bool {
	sp, _ := l.cur.Peek(0)
	h1, _ := l.cur.Peek(1)
	h2, _ := l.cur.Peek(2)
	colon, _ := l.cur.Peek(3)
	return sp == ' ' && token.IsDigit(h1) && token.IsDigit(h2) && colon == ':'
}

func isLocalDate(w string) bool {
	if len(w) != 10 || w[4] != '-' || w[7] != '-' {
		return false
	}
	for i := 0; i < len(w); i++ {
		if i != 4 && i != 7 && !token.IsDigit(w[i]) {
			return false
		}
	}
	return true
}

func isDatetimeLike(w string) bool {
	if strings.ContainsAny(w, ":T") || strings.HasSuffix(w, "Z") || strings.HasSuffix(w, "z") {
		return true
	}
	if len(w) > 10 && isLocalDate(w[:10]) {
		return true
	}
	dashes := 0
	for i := 0; i < len(w); i++ {
		switch {
		case w[i] == '-':
			dashes++
		case !token.IsDigit(w[i]):
			return false
		}
	}
	return dashes >= 2 && len(w) >= 8
}

func parseNumber(w string) (float64, bool) {
	if !validUnderscores(w) {
		return 0, false
	}
	s := strings.ReplaceAll(w, "_", "")
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseInt(s[2:], base, 64)
			if err != nil || s[2] == '+' || s[2] == '-' {
				return 0, false
			}
			return float64(n), true
		}
	}
	if strings.ContainsAny(s, ".eE") {
		if !validFloat(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || !validDecimal(digits) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

func validUnderscores(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] != '_' {
			continue
		}
		if i == 0 || i == len(w)-1 || !token.IsHexDigit(w[i-1]) || !token.IsHexDigit(w[i+1]) {
			return false
		}
	}
	return true
}

// validDecimal accepts a non-empty digit run without leading zeros.
func validDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !token.IsDigit(s[i]) {
			return false
		}
	}
	return s == "0" || s[0] != '0'
}

func validFloat(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	mant, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant, exp = s[:i], s[i+1:]
		if exp != "" && (exp[0] == '+' || exp[0] == '-') {
			exp = exp[1:]
		}
		if exp == "" || strings.Trim(exp, "0123456789") != "" {
			return false
		}
	}
	intPart, frac, hasDot := strings.Cut(mant, ".")
	if !validDecimal(intPart) {
		return false
	}
	if hasDot && (frac == "" || strings.Trim(frac, "0123456789") != "") {
		return false
	}
	return true
}

func (l *Lexer) lexString(tok *Token) error {
	start := l.cur.Position()
	tok.Type = TString
	var err error
	switch {
	case l.cur.HasPrefix(`"""`):
		tok.Multiline = true
		err = l.lexMultiline('"')
	case l.cur.HasPrefix(`'''`):
		tok.Multiline = true
		err = l.lexMultiline('\'')
	case l.cur.HasPrefix(`"`):
		err = l.lexBasic()
	default:
		err = l.lexLiteral()
	}
	if err != nil {
		return err
	}
	span := token.NewSpan(start, l.cur.Position())
	s, err := token.ToString(l.buf, span)
	if err != nil {
		return err
	}
	if err := l.limits.CheckString(len(s), span); err != nil {
		return err
	}
	tok.String = s
	return nil
}

func (l *Lexer) lexBasic() error {
	l.cur.Advance()
	l.buf = l.buf[:0]
	for {
		b, ok := l.cur.Current()
		switch {
		case !ok || b == '\n':
			return token.NewError(token.KindUnterminatedString, token.At(l.cur.Position()), "")
		case b == '"':
			l.cur.Advance()
			return nil
		case b == '\\':
			if err := l.lexEscape(); err != nil {
				return err
			}
		case b < 0x20 && b != '\t' || b == 0x7f:
			return token.Errorf(token.KindInvalidToken, token.At(l.cur.Position()),
				"control character %#02x in string", b)
		default:
			l.buf = append(l.buf, b)
			l.cur.Advance()
		}
	}
}

func (l *Lexer) lexLiteral() error {
	l.cur.Advance()
	l.buf = l.buf[:0]
	for {
		b, ok := l.cur.Current()
		switch {
		case !ok || b == '\n':
			return token.NewError(token.KindUnterminatedString, token.At(l.cur.Position()), "")
		case b == '\'':
			l.cur.Advance()
			return nil
		default:
			l.buf = append(l.buf, b)
			l.cur.Advance()
		}
	}
}

func (l *Lexer) lexMultiline(q byte) error {
	start := l.cur.Position()
	l.cur.AdvanceBy(3)
	l.buf = l.buf[:0]
	if !l.cur.Consume('\n') && l.cur.HasPrefix("\r\n") {
		l.cur.AdvanceBy(2)
	}
	delim := strings.Repeat(string(q), 3)
	for {
		b, ok := l.cur.Current()
		if !ok {
			return token.NewError(token.KindUnterminatedString, token.At(start), "multi-line string")
		}
		if l.cur.HasPrefix(delim) {
			n := 0
			for n < 5 {
				c, ok := l.cur.Peek(n)
				if !ok || c != q {
					break
				}
				n++
			}
			// up to two quotes may precede the closing delimiter
			for range n - 3 {
				l.buf = append(l.buf, q)
			}
			l.cur.AdvanceBy(n)
			return nil
		}
		if q == '"' && b == '\\' {
			if l.lineEndingBackslash() {
				continue
			}
			if err := l.lexEscape(); err != nil {
				return err
			}
			continue
		}
		l.buf = append(l.buf, b)
		l.cur.Advance()
	}
}

// lineEndingBackslash consumes a backslash followed by blanks and a
// newline, together with all whitespace after it.
func (l *Lexer) lineEndingBackslash() bool {
	i := 1
	for {
		c, ok := l.cur.Peek(i)
		if !ok {
			return false
		}
		if c == ' ' || c == '\t' || c == '\r' {
			i++
			continue
		}
		if c != '\n' {
			return false
		}
		break
	}
	l.cur.AdvanceBy(i)
	l.cur.SkipWhitespace()
	return true
}

func (l *Lexer) lexEscape() error {
	escPos := l.cur.Position()
	l.cur.Advance()
	b, ok := l.cur.Advance()
	if !ok {
		return token.NewError(token.KindUnterminatedString, token.At(l.cur.Position()), "")
	}
	switch b {
	case 'b':
		l.buf = append(l.buf, '\b')
	case 't':
		l.buf = append(l.buf, '\t')
	case 'n':
		l.buf = append(l.buf, '\n')
	case 'f':
		l.buf = append(l.buf, '\f')
	case 'r':
		l.buf = append(l.buf, '\r')
	case 'e':
		l.buf = append(l.buf, 0x1b)
	case '"', '\\':
		l.buf = append(l.buf, b)
	case 'u', 'U':
		n := 4
		if b == 'U' {
			n = 8
		}
		rem := l.cur.Remaining()
		if len(rem) < n {
			return token.NewError(token.KindInvalidUnicodeEscape, token.At(escPos), "")
		}
		r, ok := token.HexValue(rem[:n])
		if !ok || !utf8.ValidRune(r) {
			return token.Errorf(token.KindInvalidUnicodeEscape, token.At(escPos), "%q", rem[:n])
		}
		l.cur.AdvanceBy(n)
		l.buf = utf8.AppendRune(l.buf, r)
	default:
		return token.Errorf(token.KindInvalidEscapeSequence, token.NewSpan(escPos, l.cur.Position()), `\%c`, b)
	}
	return nil
}
