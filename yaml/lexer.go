package yaml

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/signadot/zparse/token"
)

// Lexer tokenizes YAML one line at a time.  Block structure is reported
// with Indent and Dedent tokens against a stack of indentation columns;
// the content of a "- " item pushes a virtual column so that compact
// nested collections line up with the item.
type Lexer struct {
	src     []byte
	off     int
	line    int
	limits  token.Limits
	indents []int
	queue   []Token
	flow    int
	started bool
	ended   bool
}

func NewLexer(input []byte, opts ...ParseOption) *Lexer {
	o := newParseOpts(opts)
	return newLexer(input, o)
}

func newLexer(input []byte, o *parseOpts) *Lexer {
	return &Lexer{src: input, line: 1, limits: o.limits, indents: []int{0}}
}

func (l *Lexer) NextToken() (Token, error) {
	for len(l.queue) == 0 {
		if l.off >= len(l.src) {
			l.finish()
			break
		}
		if err := l.readLine(); err != nil {
			return Token{}, err
		}
	}
	tok := l.queue[0]
	l.queue = l.queue[1:]
	return tok, nil
}

func (l *Lexer) eofPos() token.Pos {
	line, col := l.line, 1
	if n := len(l.src); n > 0 && l.src[n-1] != '\n' {
		line--
		col = n - bytes.LastIndexByte(l.src, '\n')
	}
	return token.Pos{Offset: len(l.src), Line: line, Col: col}
}

func (l *Lexer) finish() {
	span := token.At(l.eofPos())
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(Token{Type: TDedent, Span: span})
	}
	l.emit(Token{Type: TEOF, Span: span})
}

func (l *Lexer) emit(tok Token) {
	l.queue = append(l.queue, tok)
}

// lineText holds the current line and maps byte indices to positions.
type lineText struct {
	text  []byte
	start int
	no    int
}

func (t *lineText) pos(i int) token.Pos {
	return token.Pos{Offset: t.start + i, Line: t.no, Col: i + 1}
}

func (t *lineText) span(i, j int) token.Span {
	return token.NewSpan(t.pos(i), t.pos(j))
}

// next reads the next physical line without interpreting it.
func (l *Lexer) next() (*lineText, error) {
	start := l.off
	end := bytes.IndexByte(l.src[start:], '\n')
	if end < 0 {
		end = len(l.src)
		l.off = end
	} else {
		end += start
		l.off = end + 1
	}
	ln := &lineText{text: bytes.TrimSuffix(l.src[start:end], []byte("\r")), start: start, no: l.line}
	l.line++
	if err := l.limits.CheckSize(l.off, ln.span(0, len(ln.text))); err != nil {
		return nil, err
	}
	if !utf8.Valid(ln.text) {
		return nil, token.NewError(token.KindInvalidToken, ln.span(0, len(ln.text)), "invalid utf-8")
	}
	return ln, nil
}

func (l *Lexer) readLine() error {
	ln, err := l.next()
	if err != nil {
		return err
	}
	text := ln.text
	indent := 0
	for indent < len(text) && text[indent] == ' ' {
		indent++
	}
	end := contentEnd(text, indent)
	if end <= indent {
		return nil
	}
	if l.flow > 0 {
		if err := l.lexFlow(ln, indent, end); err != nil {
			return err
		}
		l.emit(Token{Type: TNewline, Span: token.At(ln.pos(end))})
		return nil
	}
	if text[indent] == '\t' {
		return token.NewError(token.KindInvalidIndentation, ln.span(indent, indent+1), "tab in indentation")
	}
	first := indent
	if indent == 0 {
		skip, rest, err := l.marker(ln, end)
		if err != nil || skip {
			return err
		}
		first = rest
	}
	if l.ended {
		return token.NewError(token.KindInvalidToken, ln.span(indent, end), "content after document end")
	}
	l.started = true
	if first == indent {
		if err := l.indentTo(ln, indent); err != nil {
			return err
		}
	}
	if err := l.lexBlock(ln, first, end, indent-1); err != nil {
		return err
	}
	l.emit(Token{Type: TNewline, Span: token.At(ln.pos(end))})
	return nil
}

// marker handles directives and document markers at column 0.  It
// reports whether the line is consumed and where remaining content
// starts.
func (l *Lexer) marker(ln *lineText, end int) (bool, int, error) {
	text := ln.text[:end]
	switch {
	case text[0] == '%' && !l.started:
		return true, 0, nil
	case string(text) == "...":
		l.ended = true
		return true, 0, nil
	case string(text) == "---" || bytes.HasPrefix(text, []byte("--- ")):
		if l.started || l.ended {
			return false, 0, token.NewError(token.KindInvalidToken, ln.span(0, 3), "multiple documents are not supported")
		}
		i := 3
		for i < end && text[i] == ' ' {
			i++
		}
		if i >= end {
			return true, 0, nil
		}
		return false, i, nil
	}
	return false, 0, nil
}

func (l *Lexer) indentTo(ln *lineText, indent int) error {
	top := l.indents[len(l.indents)-1]
	switch {
	case indent > top:
		l.indents = append(l.indents, indent)
		l.emit(Token{Type: TIndent, Span: ln.span(0, indent)})
	case indent < top:
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > indent {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(Token{Type: TDedent, Span: token.At(ln.pos(indent))})
		}
		if l.indents[len(l.indents)-1] != indent {
			return token.Errorf(token.KindInvalidIndentation, token.At(ln.pos(indent)),
				"dedent to column %d matches no enclosing block", indent+1)
		}
	}
	return nil
}

// contentEnd returns the end of the line's content with any comment and
// trailing blanks removed.
func contentEnd(text []byte, from int) int {
	end := len(text)
	var quote byte
	for i := from; i < len(text); i++ {
		c := text[i]
		switch {
		case quote == '"' && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case (c == '"' || c == '\'') && (i == from || strings.IndexByte(" \t[{,:", text[i-1]) >= 0):
			quote = c
		case c == '#' && (i == from || text[i-1] == ' ' || text[i-1] == '\t'):
			end = i
			i = len(text)
		}
	}
	for end > from && (text[end-1] == ' ' || text[end-1] == '\t') {
		end--
	}
	return end
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

func skipBlanks(text []byte, i, end int) int {
	for i < end && isBlank(text[i]) {
		i++
	}
	return i
}

// lexBlock tokenizes block context content in text[i:end].  owner is the
// column a block scalar's content must be indented beyond.
func (l *Lexer) lexBlock(ln *lineText, i, end, owner int) error {
	text := ln.text
	if text[i] == '-' && (i+1 == end || isBlank(text[i+1])) {
		l.emit(Token{Type: TDash, Span: ln.span(i, i+1)})
		j := skipBlanks(text, i+1, end)
		if j == end {
			return nil
		}
		l.indents = append(l.indents, j)
		l.emit(Token{Type: TIndent, Span: ln.span(i, j)})
		return l.lexBlock(ln, j, end, i)
	}
	key, after, ok, err := l.splitKey(ln, i, end)
	if err != nil {
		return err
	}
	if ok {
		l.emit(key)
		l.emit(Token{Type: TColon, Span: ln.span(after-1, after)})
		j := skipBlanks(text, after, end)
		if j == end {
			return nil
		}
		return l.lexValue(ln, j, end, i)
	}
	return l.lexValue(ln, i, end, owner)
}

// splitKey recognizes "key:" followed by a blank or the end of the line.
func (l *Lexer) splitKey(ln *lineText, i, end int) (Token, int, bool, error) {
	text := ln.text
	switch text[i] {
	case '[', '{':
		return Token{}, 0, false, nil
	case '"', '\'':
		tok, j, err := l.quoted(ln, i, end)
		if err != nil {
			return Token{}, 0, false, err
		}
		j = skipBlanks(text, j, end)
		if j < end && text[j] == ':' && (j+1 == end || isBlank(text[j+1])) {
			return tok, j + 1, true, nil
		}
		return Token{}, 0, false, nil
	}
	for k := i; k < end; k++ {
		if text[k] != ':' || (k+1 < end && !isBlank(text[k+1])) {
			continue
		}
		key := strings.TrimRight(string(text[i:k]), " \t")
		if key == "" {
			return Token{}, 0, false, token.NewError(token.KindInvalidKey, ln.span(i, k+1), "empty mapping key")
		}
		return Token{Type: TScalar, String: key, Span: ln.span(i, i+len(key))}, k + 1, true, nil
	}
	return Token{}, 0, false, nil
}

// lexValue tokenizes a value following a key, a dash, or alone on a line.
func (l *Lexer) lexValue(ln *lineText, i, end, owner int) error {
	text := ln.text
	switch text[i] {
	case '[', '{':
		return l.lexFlow(ln, i, end)
	case '"', '\'':
		tok, j, err := l.quoted(ln, i, end)
		if err != nil {
			return err
		}
		l.emit(tok)
		if j = skipBlanks(text, j, end); j < end {
			return token.ExpectedErr("end of line", "'"+string(text[j:end])+"'", ln.span(j, end))
		}
		return nil
	case '|', '>':
		if isBlockHeader(text[i:end]) {
			return l.blockScalar(ln, i, end, owner)
		}
	}
	s := string(text[i:end])
	span := ln.span(i, end)
	if err := l.limits.CheckString(len(s), span); err != nil {
		return err
	}
	l.emit(Token{Type: TScalar, String: s, Span: span})
	return nil
}

func isFlowIndicator(c byte) bool {
	switch c {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

func (l *Lexer) lexFlow(ln *lineText, i, end int) error {
	text := ln.text
	for i < end {
		c := text[i]
		tt := TEOF
		switch c {
		case ' ', '\t':
			i++
			continue
		case '[':
			tt = TLBracket
			l.flow++
		case '{':
			tt = TLBrace
			l.flow++
		case ']':
			tt = TRBracket
			l.flow = max(0, l.flow-1)
		case '}':
			tt = TRBrace
			l.flow = max(0, l.flow-1)
		case ',':
			tt = TComma
		case ':':
			tt = TColon
		case '"', '\'':
			tok, j, err := l.quoted(ln, i, end)
			if err != nil {
				return err
			}
			l.emit(tok)
			i = j
			continue
		}
		if tt != TEOF {
			l.emit(Token{Type: tt, Span: ln.span(i, i+1)})
			i++
			continue
		}
		j := i
		for j < end {
			c := text[j]
			if isFlowIndicator(c) {
				break
			}
			if c == ':' && (j+1 == end || isBlank(text[j+1]) || isFlowIndicator(text[j+1])) {
				break
			}
			j++
		}
		s := strings.TrimRight(string(text[i:j]), " \t")
		span := ln.span(i, i+len(s))
		if err := l.limits.CheckString(len(s), span); err != nil {
			return err
		}
		l.emit(Token{Type: TScalar, String: s, Span: span})
		i = j
	}
	return nil
}

// quoted scans a single or double quoted scalar starting at text[i] and
// returns it along with the index after the closing quote.
func (l *Lexer) quoted(ln *lineText, i, end int) (Token, int, error) {
	text := ln.text
	q := text[i]
	var buf []byte
	j := i + 1
	for {
		if j >= end {
			return Token{}, 0, token.NewError(token.KindUnterminatedString, token.At(ln.pos(i)), "")
		}
		c := text[j]
		switch {
		case c == q && q == '\'' && j+1 < end && text[j+1] == '\'':
			buf = append(buf, '\'')
			j += 2
			continue
		case c == q:
			span := ln.span(i, j+1)
			if err := l.limits.CheckString(len(buf), span); err != nil {
				return Token{}, 0, err
			}
			return Token{Type: TScalar, String: string(buf), Quoted: true, Span: span}, j + 1, nil
		case c == '\\' && q == '"':
			var err error
			buf, j, err = unescape(ln, buf, j, end)
			if err != nil {
				return Token{}, 0, err
			}
			continue
		}
		buf = append(buf, c)
		j++
	}
}

var simpleEscapes = map[byte]string{
	'0':  "\x00",
	'a':  "\a",
	'b':  "\b",
	't':  "\t",
	'\t': "\t",
	'n':  "\n",
	'v':  "\v",
	'f':  "\f",
	'r':  "\r",
	'e':  "\x1b",
	' ':  " ",
	'"':  "\"",
	'/':  "/",
	'\\': "\\",
	'N':  "\u0085",
	'_':  "\u00a0",
	'L':  "\u2028",
	'P':  "\u2029",
}

func unescape(ln *lineText, buf []byte, j, end int) ([]byte, int, error) {
	text := ln.text
	if j+1 >= end {
		return nil, 0, token.NewError(token.KindUnterminatedString, token.At(ln.pos(j)), "")
	}
	c := text[j+1]
	if s, ok := simpleEscapes[c]; ok {
		return append(buf, s...), j + 2, nil
	}
	n := 0
	switch c {
	case 'x':
		n = 2
	case 'u':
		n = 4
	case 'U':
		n = 8
	default:
		return nil, 0, token.Errorf(token.KindInvalidEscapeSequence, ln.span(j, j+2), `\%c`, c)
	}
	if j+2+n > end {
		return nil, 0, token.NewError(token.KindInvalidUnicodeEscape, ln.span(j, end), "")
	}
	r, ok := token.HexValue(text[j+2 : j+2+n])
	if !ok || !utf8.ValidRune(r) {
		return nil, 0, token.Errorf(token.KindInvalidUnicodeEscape, ln.span(j, j+2+n), "%q", text[j+2:j+2+n])
	}
	return utf8.AppendRune(buf, r), j + 2 + n, nil
}

func isBlockHeader(h []byte) bool {
	if len(h) > 3 {
		return false
	}
	for _, c := range h[1:] {
		if c != '-' && c != '+' && (c < '1' || c > '9') {
			return false
		}
	}
	return true
}

// blockScalar reads a | or > scalar whose header is text[i:end].  Content
// lines are those indented beyond owner; blank lines are kept.
func (l *Lexer) blockScalar(ln *lineText, i, end, owner int) error {
	header := ln.text[i:end]
	literal := header[0] == '|'
	var chomp byte
	want := 0
	for _, c := range header[1:] {
		if c == '-' || c == '+' {
			chomp = c
		} else {
			want = max(owner, 0) + int(c-'0')
		}
	}
	var lines []string
	endPos := ln.pos(end)
	for l.off < len(l.src) {
		rest := l.src[l.off:]
		if k := bytes.IndexByte(rest, '\n'); k >= 0 {
			rest = rest[:k]
		}
		rest = bytes.TrimSuffix(rest, []byte("\r"))
		ind := 0
		for ind < len(rest) && rest[ind] == ' ' {
			ind++
		}
		blank := len(bytes.TrimSpace(rest)) == 0
		if !blank {
			if want == 0 {
				if ind <= owner {
					break
				}
				want = ind
			} else if ind < want {
				break
			}
		}
		next, err := l.next()
		if err != nil {
			return err
		}
		endPos = next.pos(len(next.text))
		switch {
		case blank && (want == 0 || len(next.text) <= want):
			lines = append(lines, "")
		default:
			lines = append(lines, string(next.text[want:]))
		}
	}
	n := len(lines)
	for n > 0 && lines[n-1] == "" {
		n--
	}
	var body string
	if literal {
		body = strings.Join(lines[:n], "\n")
	} else {
		body = fold(lines[:n])
	}
	switch chomp {
	case '-':
	case '+':
		if n > 0 {
			body += "\n"
		}
		body += strings.Repeat("\n", len(lines)-n)
	default:
		if n > 0 {
			body += "\n"
		}
	}
	span := token.NewSpan(ln.pos(i), endPos)
	if err := l.limits.CheckString(len(body), span); err != nil {
		return err
	}
	l.emit(Token{Type: TScalar, String: body, Quoted: true, Span: span})
	return nil
}

// fold joins lines of a > scalar: a single break between two text lines
// becomes a space, empty lines become newlines, and breaks around more
// indented lines are kept.
func fold(lines []string) string {
	var b strings.Builder
	empties := 0
	prev := ""
	seen := false
	for _, ln := range lines {
		if ln == "" {
			empties++
			continue
		}
		switch {
		case !seen:
			b.WriteString(strings.Repeat("\n", empties))
		case moreIndented(prev) || moreIndented(ln):
			b.WriteString(strings.Repeat("\n", empties+1))
		case empties == 0:
			b.WriteByte(' ')
		default:
			b.WriteString(strings.Repeat("\n", empties))
		}
		b.WriteString(ln)
		prev, seen, empties = ln, true, 0
	}
	return b.String()
}

func moreIndented(s string) bool {
	return s != "" && (s[0] == ' ' || s[0] == '\t')
}
