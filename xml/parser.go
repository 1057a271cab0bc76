package xml

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/token"
)

// Parser is a recursive descent parser working directly on a cursor.
type Parser struct {
	cur  *token.Cursor
	opts *parseOpts
}

func NewParser(input []byte, opts ...ParseOption) *Parser {
	return &Parser{cur: token.NewCursor(input), opts: newParseOpts(opts)}
}

// Parse parses a document with exactly one root element.
func Parse(input []byte, opts ...ParseOption) (*Document, error) {
	return NewParser(input, opts...).Parse()
}

func (p *Parser) Parse() (*Document, error) {
	if err := p.misc(true); err != nil {
		return nil, err
	}
	b, ok := p.cur.Current()
	if !ok {
		return nil, token.NewError(token.KindUnexpectedEOF, p.here(), "no root element")
	}
	if b != '<' {
		return nil, token.ExpectedErr("'<'", p.describe(), p.here())
	}
	root, err := p.element(1)
	if err != nil {
		return nil, err
	}
	if err := p.misc(false); err != nil {
		return nil, err
	}
	if !p.cur.IsEOF() {
		return nil, token.ExpectedErr("end of input", p.describe(), p.here())
	}
	if debug.XML() {
		debug.Logf("xml: parsed <%s> with %d children\n", root.Name, len(root.Children))
	}
	return &Document{Root: root}, nil
}

func (p *Parser) here() token.Span {
	return token.At(p.cur.Position())
}

func (p *Parser) describe() string {
	b, ok := p.cur.Current()
	if !ok {
		return "end of input"
	}
	if b == '<' && p.cur.HasPrefix("</") {
		return "close tag"
	}
	return strconv.QuoteRune(rune(b))
}

func (p *Parser) checkSize() error {
	return p.opts.limits.CheckSize(p.cur.Offset(), p.here())
}

// misc skips whitespace, comments and processing instructions, and in
// the prolog also declarations such as <!DOCTYPE>.
func (p *Parser) misc(prolog bool) error {
	for {
		p.cur.SkipWhitespace()
		if err := p.checkSize(); err != nil {
			return err
		}
		var err error
		switch {
		case p.cur.HasPrefix("<?"):
			err = p.skipTo(2, "?>")
		case p.cur.HasPrefix("<!--"):
			err = p.skipTo(4, "-->")
		case prolog && p.cur.HasPrefix("<!"):
			err = p.skipDecl()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// skipTo advances past n bytes of an opening delimiter and then past the
// closing delimiter end.
func (p *Parser) skipTo(n int, end string) error {
	p.cur.AdvanceBy(n)
	i := bytes.Index(p.cur.Remaining(), []byte(end))
	if i < 0 {
		p.cur.AdvanceBy(p.cur.Len())
		return token.Errorf(token.KindUnterminatedComment, p.here(), "missing %q", end)
	}
	p.cur.AdvanceBy(i + len(end))
	return nil
}

// skipDecl skips a <!...> declaration including an internal [...] subset.
func (p *Parser) skipDecl() error {
	p.cur.AdvanceBy(2)
	nest := 0
	var quote byte
	for {
		b, ok := p.cur.Advance()
		if !ok {
			return token.NewError(token.KindUnterminatedComment, p.here(), "unterminated declaration")
		}
		switch {
		case quote != 0:
			if b == quote {
				quote = 0
			}
		case b == '"' || b == '\'':
			quote = b
		case b == '[':
			nest++
		case b == ']':
			nest--
		case b == '>' && nest <= 0:
			return nil
		}
	}
}

func (p *Parser) name() (string, error) {
	start := p.cur.Offset()
	startPos := p.cur.Position()
	b, ok := p.cur.Current()
	if !ok {
		return "", token.NewError(token.KindUnterminatedTag, p.here(), "")
	}
	if !isNameStart(b) {
		return "", token.ExpectedErr("name", p.describe(), p.here())
	}
	for ok && isNameByte(b) {
		p.cur.Advance()
		b, ok = p.cur.Current()
	}
	return token.ToString(p.cur.SliceFrom(start), token.NewSpan(startPos, p.cur.Position()))
}

// expect consumes b, reporting an unterminated tag at the end of input.
func (p *Parser) expect(b byte) error {
	if p.cur.Consume(b) {
		return nil
	}
	if p.cur.IsEOF() {
		return token.NewError(token.KindUnterminatedTag, p.here(), "")
	}
	return token.ExpectedErr(strconv.QuoteRune(rune(b)), p.describe(), p.here())
}

func (p *Parser) element(depth int) (*Element, error) {
	open := p.cur.Position()
	p.cur.Advance()
	if err := p.opts.limits.CheckDepth(depth, token.At(open)); err != nil {
		return nil, err
	}
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	e := NewElement(name)
	for {
		p.cur.SkipWhitespace()
		b, ok := p.cur.Current()
		switch {
		case !ok:
			return nil, token.NewError(token.KindUnterminatedTag, p.here(), "")
		case b == '/':
			p.cur.Advance()
			return e, p.expect('>')
		case b == '>':
			p.cur.Advance()
			return e, p.content(e, depth)
		}
		if err := p.attr(e); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) attr(e *Element) error {
	start := p.cur.Position()
	name, err := p.name()
	if err != nil {
		return err
	}
	span := token.NewSpan(start, p.cur.Position())
	if _, dup := e.Attr(name); dup {
		return token.DuplicateKeyErr(name, span)
	}
	if err := p.opts.limits.CheckEntries(len(e.Attrs)+1, span); err != nil {
		return err
	}
	p.cur.SkipWhitespace()
	if err := p.expect('='); err != nil {
		return err
	}
	p.cur.SkipWhitespace()
	q, ok := p.cur.Current()
	switch {
	case !ok:
		return token.NewError(token.KindUnterminatedAttribute, p.here(), "")
	case q != '"' && q != '\'':
		return token.ExpectedErr("quoted attribute value", p.describe(), p.here())
	}
	p.cur.Advance()
	v, err := p.chars(q)
	if err != nil {
		return err
	}
	if !p.cur.Consume(q) {
		return token.NewError(token.KindUnterminatedAttribute, p.here(), "")
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: v})
	return nil
}

func (p *Parser) content(e *Element, depth int) error {
	for {
		if err := p.checkSize(); err != nil {
			return err
		}
		switch {
		case p.cur.IsEOF():
			return token.Errorf(token.KindUnterminatedTag, p.here(), "<%s> is not closed", e.Name)
		case p.cur.HasPrefix("</"):
			return p.closeTag(e)
		case p.cur.HasPrefix("<!--"):
			if err := p.skipTo(4, "-->"); err != nil {
				return err
			}
		case p.cur.HasPrefix("<![CDATA["):
			if err := p.cdata(e); err != nil {
				return err
			}
		case p.cur.HasPrefix("<?"):
			if err := p.skipTo(2, "?>"); err != nil {
				return err
			}
		case p.cur.HasPrefix("<!"):
			if err := p.skipDecl(); err != nil {
				return err
			}
		case p.cur.HasPrefix("<"):
			child, err := p.element(depth + 1)
			if err != nil {
				return err
			}
			e.AddChild(child)
		default:
			s, err := p.chars('<')
			if err != nil {
				return err
			}
			if !isBlank(s) {
				e.AddText(s)
			}
		}
	}
}

func (p *Parser) closeTag(e *Element) error {
	start := p.cur.Position()
	p.cur.AdvanceBy(2)
	name, err := p.name()
	if err != nil {
		return err
	}
	if name != e.Name {
		return token.ExpectedErr("</"+e.Name+">", "</"+name+">", token.NewSpan(start, p.cur.Position()))
	}
	p.cur.SkipWhitespace()
	return p.expect('>')
}

func (p *Parser) cdata(e *Element) error {
	p.cur.AdvanceBy(len("<![CDATA["))
	startPos := p.cur.Position()
	i := bytes.Index(p.cur.Remaining(), []byte("]]>"))
	if i < 0 {
		p.cur.AdvanceBy(p.cur.Len())
		return token.NewError(token.KindUnterminatedComment, p.here(), "unterminated CDATA section")
	}
	start := p.cur.Offset()
	p.cur.AdvanceBy(i)
	span := token.NewSpan(startPos, p.cur.Position())
	s, err := token.ToString(p.cur.SliceFrom(start), span)
	if err != nil {
		return err
	}
	p.cur.AdvanceBy(3)
	if err := p.opts.limits.CheckString(len(s), span); err != nil {
		return err
	}
	e.AddText(s)
	return nil
}

// chars reads character data up to stop or the end of input, decoding
// entity references.
func (p *Parser) chars(stop byte) (string, error) {
	startPos := p.cur.Position()
	var buf []byte
	for {
		b, ok := p.cur.Current()
		if !ok || b == stop {
			break
		}
		if b != '&' {
			buf = append(buf, b)
			p.cur.Advance()
			continue
		}
		r, err := p.entity()
		if err != nil {
			return "", err
		}
		buf = utf8.AppendRune(buf, r)
	}
	span := token.NewSpan(startPos, p.cur.Position())
	if err := p.opts.limits.CheckString(len(buf), span); err != nil {
		return "", err
	}
	return token.ToString(buf, span)
}

var namedEntities = map[string]rune{
	"amp":  '&',
	"lt":   '<',
	"gt":   '>',
	"quot": '"',
	"apos": '\'',
}

// entity decodes the reference at the cursor, which is on '&'.
func (p *Parser) entity() (rune, error) {
	start := p.cur.Position()
	rest := p.cur.Remaining()
	end := bytes.IndexByte(rest, ';')
	if end < 0 || end > 12 {
		p.cur.Advance()
		return 0, token.NewError(token.KindInvalidEntity, token.NewSpan(start, p.cur.Position()), "missing ';'")
	}
	ref := string(rest[1:end])
	p.cur.AdvanceBy(end + 1)
	span := token.NewSpan(start, p.cur.Position())
	if r, ok := namedEntities[ref]; ok {
		return r, nil
	}
	if len(ref) > 1 && ref[0] == '#' {
		var n uint64
		var err error
		if ref[1] == 'x' || ref[1] == 'X' {
			n, err = strconv.ParseUint(ref[2:], 16, 32)
		} else {
			n, err = strconv.ParseUint(ref[1:], 10, 32)
		}
		if err == nil && n > 0 && utf8.ValidRune(rune(n)) {
			return rune(n), nil
		}
	}
	return 0, token.NewError(token.KindInvalidEntity, span, fmt.Sprintf("&%s;", ref))
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !token.IsSpace(s[i]) {
			return false
		}
	}
	return true
}
