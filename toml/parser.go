package toml

import (
	"io"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/token"
)

// Parser reads one statement per call to NextEvent and applies it to the
// document root.
type Parser struct {
	lex  *Lexer
	opts *parseOpts

	root       *ir.Value
	table      *ir.Object
	tableDepth int

	headers map[*ir.Object]bool // declared by a [header]
	dotted  map[*ir.Object]bool // created by a dotted key
	sealed  map[*ir.Object]bool // inline tables
	aot     map[*ir.Value]bool  // arrays created by [[header]]

	finished bool
}

func NewParser(input []byte, opts ...ParseOption) *Parser {
	o := newParseOpts(opts)
	root := ir.FromObject(nil)
	return &Parser{
		lex:        &Lexer{cur: token.NewCursor(input), limits: o.limits},
		opts:       o,
		root:       root,
		table:      root.Object,
		tableDepth: 1,
		headers:    map[*ir.Object]bool{},
		dotted:     map[*ir.Object]bool{},
		sealed:     map[*ir.Object]bool{},
		aot:        map[*ir.Value]bool{},
	}
}

func (p *Parser) next(mode Mode) (Token, error) {
	tok, err := p.lex.NextToken(mode)
	if err != nil {
		return tok, err
	}
	if err := p.opts.limits.CheckSize(p.lex.Offset(), tok.Span); err != nil {
		return tok, err
	}
	return tok, nil
}

func (p *Parser) skipNewlines(mode Mode) (Token, error) {
	for {
		tok, err := p.next(mode)
		if err != nil || tok.Type != TNewline {
			return tok, err
		}
	}
}

// NextEvent parses the next statement, applies it to the document and
// returns it.  It returns io.EOF at the end of input.
func (p *Parser) NextEvent() (*Event, error) {
	ev, err := p.nextEvent()
	if debug.TOML() {
		if err != nil {
			debug.Logf("toml: %v\n", err)
		} else {
			debug.Logf("toml: %s %s\n", ev, ev.Span)
		}
	}
	return ev, err
}

func (p *Parser) nextEvent() (*Event, error) {
	if p.finished {
		return nil, io.EOF
	}
	tok, err := p.skipNewlines(KeyMode)
	if err != nil {
		return nil, err
	}
	var ev *Event
	switch tok.Type {
	case TEOF:
		p.finished = true
		return nil, io.EOF
	case TLBracket, TDLBracket:
		ev, err = p.header(&tok)
	case TBareKey, TString:
		ev, err = p.keyValue(&tok)
	default:
		return nil, token.ExpectedErr("key or table header", tok.Describe(), tok.Span)
	}
	if err != nil {
		return nil, err
	}
	if err := p.endOfLine(); err != nil {
		return nil, err
	}
	if err := p.apply(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (p *Parser) header(open *Token) (*Event, error) {
	isArray := open.Type == TDLBracket
	closing := TRBracket
	if isArray {
		closing = TDRBracket
	}
	first, err := p.next(KeyMode)
	if err != nil {
		return nil, err
	}
	path, end, err := p.keyPath(&first)
	if err != nil {
		return nil, err
	}
	if end.Type != closing {
		c := Token{Type: closing}
		return nil, token.Errorf(token.KindInvalidKey, end.Span,
			"table header: expected %s, found %s", c.Describe(), end.Describe())
	}
	return &Event{
		Type:    TableStart,
		Path:    path,
		IsArray: isArray,
		Span:    token.NewSpan(open.Span.Start, end.Span.End),
	}, nil
}

func (p *Parser) keyValue(first *Token) (*Event, error) {
	path, end, err := p.keyPath(first)
	if err != nil {
		return nil, err
	}
	if end.Type != TEquals {
		return nil, token.ExpectedErr("'='", end.Describe(), end.Span)
	}
	v, err := p.value(p.tableDepth + len(path) - 1)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:  KeyValue,
		Path:  path,
		Value: v,
		Span:  token.NewSpan(first.Span.Start, end.Span.End),
	}, nil
}

// keyPath reads a dotted key starting at first and returns it together
// with the token that ended it.
func (p *Parser) keyPath(first *Token) ([]string, *Token, error) {
	var path []string
	tok := *first
	for {
		switch {
		case tok.Type == TBareKey, tok.Type == TString && !tok.Multiline:
			path = append(path, tok.String)
		default:
			return nil, nil, token.Errorf(token.KindInvalidKey, tok.Span, "found %s", tok.Describe())
		}
		var err error
		tok, err = p.next(KeyMode)
		if err != nil {
			return nil, nil, err
		}
		if tok.Type != TDot {
			return path, &tok, nil
		}
		tok, err = p.next(KeyMode)
		if err != nil {
			return nil, nil, err
		}
	}
}

func (p *Parser) endOfLine() error {
	tok, err := p.next(KeyMode)
	if err != nil {
		return err
	}
	switch tok.Type {
	case TNewline:
	case TEOF:
		p.finished = true
	default:
		return token.ExpectedErr("newline", tok.Describe(), tok.Span)
	}
	return nil
}

// value parses a value whose parent container is at depth.
func (p *Parser) value(depth int) (*ir.Value, error) {
	tok, err := p.next(ValueMode)
	if err != nil {
		return nil, err
	}
	return p.valueFrom(&tok, depth)
}

func (p *Parser) valueFrom(tok *Token, depth int) (*ir.Value, error) {
	switch tok.Type {
	case TString:
		return ir.FromString(tok.String), nil
	case TNumber:
		return ir.FromNumber(tok.Number), nil
	case TBool:
		return ir.FromBool(tok.Bool), nil
	case TDatetime:
		return ir.FromDatetime(tok.Datetime), nil
	case TLBracket:
		return p.array(tok, depth+1)
	case TLBrace:
		return p.inlineTable(tok, depth+1)
	}
	return nil, token.ExpectedErr("value", tok.Describe(), tok.Span)
}

func (p *Parser) array(open *Token, depth int) (*ir.Value, error) {
	if err := p.opts.limits.CheckDepth(depth, open.Span); err != nil {
		return nil, err
	}
	res := ir.FromSlice(nil)
	for {
		tok, err := p.skipNewlines(ValueMode)
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TRBracket:
			return res, nil
		case TEOF:
			return nil, token.NewError(token.KindInvalidArray, open.Span, "unterminated array")
		}
		v, err := p.valueFrom(&tok, depth)
		if err != nil {
			return nil, err
		}
		res.Array = append(res.Array, v)
		tok, err = p.skipNewlines(ValueMode)
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TComma:
		case TRBracket:
			return res, nil
		case TEOF:
			return nil, token.NewError(token.KindInvalidArray, open.Span, "unterminated array")
		default:
			return nil, token.Errorf(token.KindInvalidArray, tok.Span,
				"expected ',' or ']', found %s", tok.Describe())
		}
	}
}

func (p *Parser) inlineTable(open *Token, depth int) (*ir.Value, error) {
	if err := p.opts.limits.CheckDepth(depth, open.Span); err != nil {
		return nil, err
	}
	res := ir.FromObject(nil)
	p.sealed[res.Object] = true
	tok, err := p.next(KeyMode)
	if err != nil {
		return nil, err
	}
	if tok.Type == TRBrace {
		return res, nil
	}
	for {
		switch tok.Type {
		case TNewline:
			return nil, token.NewError(token.KindInvalidInlineTable, tok.Span, "newline not allowed")
		case TEOF:
			return nil, token.NewError(token.KindInvalidInlineTable, open.Span, "unterminated inline table")
		}
		path, end, err := p.keyPath(&tok)
		if err != nil {
			return nil, err
		}
		if end.Type != TEquals {
			return nil, token.Errorf(token.KindInvalidInlineTable, end.Span, "expected '=', found %s", end.Describe())
		}
		v, err := p.value(depth + len(path) - 1)
		if err != nil {
			return nil, err
		}
		if err := p.insertDotted(res.Object, path, v, depth, end.Span); err != nil {
			return nil, err
		}
		tok, err = p.next(KeyMode)
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TComma:
			tok, err = p.next(KeyMode)
			if err != nil {
				return nil, err
			}
			if tok.Type == TRBrace {
				return res, nil
			}
		case TRBrace:
			return res, nil
		case TNewline:
			return nil, token.NewError(token.KindInvalidInlineTable, tok.Span, "newline not allowed")
		case TEOF:
			return nil, token.NewError(token.KindInvalidInlineTable, open.Span, "unterminated inline table")
		default:
			return nil, token.Errorf(token.KindInvalidInlineTable, tok.Span,
				"expected ',' or '}', found %s", tok.Describe())
		}
	}
}

func (p *Parser) apply(ev *Event) error {
	switch ev.Type {
	case TableStart:
		if ev.IsArray {
			return p.openArrayTable(ev)
		}
		return p.openTable(ev)
	default:
		return p.insertDotted(p.table, ev.Path, ev.Value, p.tableDepth, ev.Span)
	}
}

// descend walks the tables named by path from the root, creating those
// that are absent.  Arrays of tables are entered at their last element.
func (p *Parser) descend(path []string, span token.Span) (*ir.Object, int, error) {
	obj, depth := p.root.Object, 1
	for _, k := range path {
		v := obj.Get(k)
		switch {
		case v == nil:
			n := ir.FromObject(nil)
			if err := p.add(obj, k, n, span); err != nil {
				return nil, 0, err
			}
			obj = n.Object
			depth++
		case v.Type == ir.ObjectType && !p.sealed[v.Object]:
			obj = v.Object
			depth++
		case v.Type == ir.ArrayType && p.aot[v]:
			obj = v.Array[len(v.Array)-1].Object
			depth += 2
		default:
			return nil, 0, token.DuplicateKeyErr(k, span)
		}
		if err := p.opts.limits.CheckDepth(depth, span); err != nil {
			return nil, 0, err
		}
	}
	return obj, depth, nil
}

func (p *Parser) openTable(ev *Event) error {
	parent, depth, err := p.descend(ev.Path[:len(ev.Path)-1], ev.Span)
	if err != nil {
		return err
	}
	k := ev.Path[len(ev.Path)-1]
	v := parent.Get(k)
	switch {
	case v == nil:
		v = ir.FromObject(nil)
		if err := p.add(parent, k, v, ev.Span); err != nil {
			return err
		}
	case v.Type == ir.ObjectType && !p.sealed[v.Object] && !p.headers[v.Object] && !p.dotted[v.Object]:
	default:
		return token.DuplicateKeyErr(k, ev.Span)
	}
	depth++
	if err := p.opts.limits.CheckDepth(depth, ev.Span); err != nil {
		return err
	}
	p.headers[v.Object] = true
	p.table, p.tableDepth = v.Object, depth
	return nil
}

func (p *Parser) openArrayTable(ev *Event) error {
	parent, depth, err := p.descend(ev.Path[:len(ev.Path)-1], ev.Span)
	if err != nil {
		return err
	}
	k := ev.Path[len(ev.Path)-1]
	arr := parent.Get(k)
	switch {
	case arr == nil:
		arr = ir.FromSlice(nil)
		if err := p.add(parent, k, arr, ev.Span); err != nil {
			return err
		}
		p.aot[arr] = true
	case arr.Type == ir.ArrayType && p.aot[arr]:
	default:
		return token.DuplicateKeyErr(k, ev.Span)
	}
	depth += 2
	if err := p.opts.limits.CheckDepth(depth, ev.Span); err != nil {
		return err
	}
	elt := ir.FromObject(nil)
	arr.Array = append(arr.Array, elt)
	p.headers[elt.Object] = true
	p.table, p.tableDepth = elt.Object, depth
	return nil
}

// insertDotted assigns v at path below obj, which sits at depth.
func (p *Parser) insertDotted(obj *ir.Object, path []string, v *ir.Value, depth int, span token.Span) error {
	for _, k := range path[:len(path)-1] {
		e := obj.Get(k)
		switch {
		case e == nil:
			e = ir.FromObject(nil)
			if err := p.add(obj, k, e, span); err != nil {
				return err
			}
			p.dotted[e.Object] = true
		case e.Type == ir.ObjectType && p.dotted[e.Object]:
		default:
			return token.DuplicateKeyErr(k, span)
		}
		obj = e.Object
		depth++
		if err := p.opts.limits.CheckDepth(depth, span); err != nil {
			return err
		}
	}
	k := path[len(path)-1]
	if obj.Has(k) {
		return token.DuplicateKeyErr(k, span)
	}
	return p.add(obj, k, v, span)
}

// add sets the new key k in obj, counting it against MaxObjectEntries.
func (p *Parser) add(obj *ir.Object, k string, v *ir.Value, span token.Span) error {
	if err := p.opts.limits.CheckEntries(obj.Len()+1, span); err != nil {
		return err
	}
	obj.Set(k, v)
	return nil
}

// Parse consumes the remaining statements and returns the root table.
func (p *Parser) Parse() (*ir.Value, error) {
	for {
		_, err := p.NextEvent()
		if err == io.EOF {
			return p.root, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Parse parses a complete TOML document.  The result is always an
// object.
func Parse(input []byte, opts ...ParseOption) (*ir.Value, error) {
	return NewParser(input, opts...).Parse()
}
