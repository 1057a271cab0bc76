package yaml

import (
	"io"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/stream"
	"github.com/signadot/zparse/token"
)

// Parser is a recursive descent parser over the Lexer's tokens.
type Parser struct {
	lex  *Lexer
	opts *parseOpts
	buf  []Token

	parsed bool
	root   *ir.Value
	err    error
	events []stream.Event
}

func NewParser(input []byte, opts ...ParseOption) *Parser {
	o := newParseOpts(opts)
	return &Parser{lex: newLexer(input, o), opts: o}
}

func (p *Parser) fill(n int) error {
	for len(p.buf) <= n {
		tok, err := p.lex.NextToken()
		if err != nil {
			return err
		}
		p.buf = append(p.buf, tok)
	}
	return nil
}

func (p *Parser) peek() (*Token, error) {
	return p.peekAt(0)
}

func (p *Parser) peekAt(i int) (*Token, error) {
	if err := p.fill(i); err != nil {
		return nil, err
	}
	return &p.buf[i], nil
}

func (p *Parser) next() (Token, error) {
	if err := p.fill(0); err != nil {
		return Token{}, err
	}
	tok := p.buf[0]
	p.buf = p.buf[1:]
	return tok, nil
}

// skipNewlines drops newline tokens and peeks at the one after them.
func (p *Parser) skipNewlines() (*Token, error) {
	for {
		tok, err := p.peek()
		if err != nil || tok.Type != TNewline {
			return tok, err
		}
		p.buf = p.buf[1:]
	}
}

// Parse parses the whole document.  An empty document is null.
func (p *Parser) Parse() (*ir.Value, error) {
	if p.parsed {
		return p.root, p.err
	}
	p.root, p.err = p.parse()
	p.parsed = true
	if p.err == nil && debug.YAML() {
		debug.Logf("yaml: parsed %v\n", p.root)
	}
	return p.root, p.err
}

func (p *Parser) parse() (*ir.Value, error) {
	tok, err := p.skipNewlines()
	if err != nil {
		return nil, err
	}
	v := ir.Null()
	if tok.Type != TEOF {
		v, err = p.block(0)
		if err != nil {
			return nil, err
		}
		tok, err = p.skipNewlines()
		if err != nil {
			return nil, err
		}
		if tok.Type != TEOF {
			if tok.Type == TIndent {
				return nil, token.NewError(token.KindInvalidIndentation, tok.Span, "unexpected indentation")
			}
			return nil, token.ExpectedErr("end of document", tok.Describe(), tok.Span)
		}
	}
	return v, nil
}

// NextEvent returns the document as a sequence of events, parsing it on
// the first call.
func (p *Parser) NextEvent() (*stream.Event, error) {
	if !p.parsed {
		v, err := p.Parse()
		if err != nil {
			return nil, err
		}
		p.events = stream.ValueToEvents(v)
	} else if p.err != nil {
		return nil, p.err
	}
	if len(p.events) == 0 {
		return nil, io.EOF
	}
	ev := &p.events[0]
	p.events = p.events[1:]
	return ev, nil
}

func (p *Parser) checkDepth(depth int, span token.Span) error {
	return p.opts.limits.CheckDepth(depth, span)
}

// block parses the node starting at the next token.  depth is that of
// the enclosing collection.
func (p *Parser) block(depth int) (*ir.Value, error) {
	tok, err := p.skipNewlines()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TDash:
		return p.sequence(depth)
	case TScalar:
		after, err := p.peekAt(1)
		if err != nil {
			return nil, err
		}
		if after.Type == TColon {
			return p.mapping(depth)
		}
		t, _ := p.next()
		return scalarValue(&t), nil
	case TLBracket, TLBrace:
		return p.flow(depth)
	case TIndent:
		return nil, token.NewError(token.KindInvalidIndentation, tok.Span, "unexpected indentation")
	}
	return nil, token.ExpectedErr("value", tok.Describe(), tok.Span)
}

func scalarValue(tok *Token) *ir.Value {
	if tok.Quoted {
		return ir.FromString(tok.String)
	}
	return inferScalar(tok.String)
}

func (p *Parser) sequence(depth int) (*ir.Value, error) {
	first, err := p.peek()
	if err != nil {
		return nil, err
	}
	if err := p.checkDepth(depth+1, first.Span); err != nil {
		return nil, err
	}
	res := ir.FromSlice(nil)
	for {
		tok, err := p.skipNewlines()
		if err != nil {
			return nil, err
		}
		if tok.Type != TDash {
			return res, nil
		}
		p.next()
		v, err := p.nodeValue(depth+1, false)
		if err != nil {
			return nil, err
		}
		res.Array = append(res.Array, v)
	}
}

func (p *Parser) mapping(depth int) (*ir.Value, error) {
	first, err := p.peek()
	if err != nil {
		return nil, err
	}
	if err := p.checkDepth(depth+1, first.Span); err != nil {
		return nil, err
	}
	res := ir.FromObject(nil)
	for {
		tok, err := p.skipNewlines()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TScalar:
		case TIndent:
			return nil, token.NewError(token.KindInvalidIndentation, tok.Span, "unexpected indentation")
		default:
			return res, nil
		}
		after, err := p.peekAt(1)
		if err != nil {
			return nil, err
		}
		if after.Type != TColon {
			return nil, token.ExpectedErr("':' after mapping key", after.Describe(), after.Span)
		}
		key, _ := p.next()
		p.next()
		if res.Object.Has(key.String) {
			return nil, token.DuplicateKeyErr(key.String, key.Span)
		}
		if err := p.opts.limits.CheckEntries(res.Object.Len()+1, key.Span); err != nil {
			return nil, err
		}
		v, err := p.nodeValue(depth+1, true)
		if err != nil {
			return nil, err
		}
		res.Object.Set(key.String, v)
	}
}

// nodeValue parses what follows a "key:" or a "-".  A mapping value may
// be a sequence at the key's own indentation.
func (p *Parser) nodeValue(depth int, inMapping bool) (*ir.Value, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TScalar:
		t, _ := p.next()
		return scalarValue(&t), nil
	case TLBracket, TLBrace:
		return p.flow(depth)
	case TIndent:
		return p.nested(depth)
	case TNewline:
		tok, err = p.skipNewlines()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Type == TIndent:
			return p.nested(depth)
		case tok.Type == TDash && inMapping:
			return p.sequence(depth)
		}
		return ir.Null(), nil
	case TEOF, TDedent:
		return ir.Null(), nil
	}
	return nil, token.ExpectedErr("value", tok.Describe(), tok.Span)
}

// nested parses an indented block and its closing dedent.
func (p *Parser) nested(depth int) (*ir.Value, error) {
	p.next()
	v, err := p.block(depth)
	if err != nil {
		return nil, err
	}
	tok, err := p.skipNewlines()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TDedent:
		p.next()
	case TEOF:
	case TIndent:
		return nil, token.NewError(token.KindInvalidIndentation, tok.Span, "unexpected indentation")
	default:
		return nil, token.ExpectedErr("end of block", tok.Describe(), tok.Span)
	}
	return v, nil
}

func (p *Parser) nextInFlow() (Token, error) {
	if _, err := p.skipNewlines(); err != nil {
		return Token{}, err
	}
	return p.next()
}

func (p *Parser) flow(depth int) (*ir.Value, error) {
	open, err := p.next()
	if err != nil {
		return nil, err
	}
	if err := p.checkDepth(depth+1, open.Span); err != nil {
		return nil, err
	}
	if open.Type == TLBrace {
		return p.flowMapping(depth+1, &open)
	}
	return p.flowSequence(depth+1, &open)
}

func (p *Parser) flowSequence(depth int, open *Token) (*ir.Value, error) {
	res := ir.FromSlice(nil)
	for {
		tok, err := p.skipNewlines()
		if err != nil {
			return nil, err
		}
		if tok.Type == TRBracket {
			p.next()
			return res, nil
		}
		v, err := p.flowItem(depth, true)
		if err != nil {
			return nil, err
		}
		res.Array = append(res.Array, v)
		sep, err := p.nextInFlow()
		if err != nil {
			return nil, err
		}
		switch sep.Type {
		case TComma:
		case TRBracket:
			return res, nil
		case TEOF:
			return nil, token.NewError(token.KindUnexpectedEOF, open.Span, "unterminated flow sequence")
		default:
			return nil, token.ExpectedErr("',' or ']'", sep.Describe(), sep.Span)
		}
	}
}

func (p *Parser) flowMapping(depth int, open *Token) (*ir.Value, error) {
	res := ir.FromObject(nil)
	for {
		key, err := p.nextInFlow()
		if err != nil {
			return nil, err
		}
		switch key.Type {
		case TRBrace:
			return res, nil
		case TScalar:
		case TEOF:
			return nil, token.NewError(token.KindUnexpectedEOF, open.Span, "unterminated flow mapping")
		default:
			return nil, token.ExpectedErr("mapping key or '}'", key.Describe(), key.Span)
		}
		if res.Object.Has(key.String) {
			return nil, token.DuplicateKeyErr(key.String, key.Span)
		}
		if err := p.opts.limits.CheckEntries(res.Object.Len()+1, key.Span); err != nil {
			return nil, err
		}
		v := ir.Null()
		tok, err := p.skipNewlines()
		if err != nil {
			return nil, err
		}
		if tok.Type == TColon {
			p.next()
			if tok, err = p.skipNewlines(); err != nil {
				return nil, err
			}
			if tok.Type != TComma && tok.Type != TRBrace {
				if v, err = p.flowItem(depth, false); err != nil {
					return nil, err
				}
			}
		}
		res.Object.Set(key.String, v)
		sep, err := p.nextInFlow()
		if err != nil {
			return nil, err
		}
		switch sep.Type {
		case TComma:
		case TRBrace:
			return res, nil
		case TEOF:
			return nil, token.NewError(token.KindUnexpectedEOF, open.Span, "unterminated flow mapping")
		default:
			return nil, token.ExpectedErr("',' or '}'", sep.Describe(), sep.Span)
		}
	}
}

// flowItem parses one flow node.  Inside a sequence, "k: v" is a single
// pair mapping.
func (p *Parser) flowItem(depth int, inSequence bool) (*ir.Value, error) {
	tok, err := p.skipNewlines()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TLBracket, TLBrace:
		return p.flow(depth)
	case TScalar:
		t, _ := p.next()
		if !inSequence {
			return scalarValue(&t), nil
		}
		after, err := p.skipNewlines()
		if err != nil {
			return nil, err
		}
		if after.Type != TColon {
			return scalarValue(&t), nil
		}
		if err := p.checkDepth(depth+1, t.Span); err != nil {
			return nil, err
		}
		p.next()
		v := ir.Null()
		if after, err = p.skipNewlines(); err != nil {
			return nil, err
		}
		if after.Type != TComma && after.Type != TRBracket {
			if v, err = p.flowItem(depth+1, false); err != nil {
				return nil, err
			}
		}
		return ir.FromKeyVals(ir.KeyVal{Key: t.String, Val: v}), nil
	case TEOF:
		return nil, token.NewError(token.KindUnexpectedEOF, tok.Span, "in flow collection")
	}
	return nil, token.ExpectedErr("flow value", tok.Describe(), tok.Span)
}

// Parse parses a single YAML document.
func Parse(input []byte, opts ...ParseOption) (*ir.Value, error) {
	return NewParser(input, opts...).Parse()
}
