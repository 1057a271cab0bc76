package json

import (
	"io"
	"strconv"

	"github.com/signadot/zparse/debug"
	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/stream"
	"github.com/signadot/zparse/token"
)

type pstate int

const (
	stValue    pstate = iota // root value or value after ':'
	stObjFirst               // after '{'
	stObjKey                 // after ',' in an object
	stColon                  // after a key
	stObjNext                // after a member value
	stArrFirst               // after '['
	stArrElem                // after ',' in an array
	stArrNext                // after an element
	stEnd                    // root complete
)

type frame struct {
	object  bool
	entries int
}

// Parser is a pull parser producing one stream.Event per call to
// NextEvent.  It keeps an explicit container stack, so nesting depth is
// bounded by the configured limits rather than the goroutine stack.
type Parser struct {
	lex      *Lexer
	opts     *parseOpts
	stack    []frame
	state    pstate
	finished bool
}

func NewParser(input []byte, opts ...ParseOption) *Parser {
	o := newParseOpts(opts)
	return &Parser{lex: newLexer(input, o), opts: o}
}

// NextEvent returns the next event, or io.EOF once the root value is
// complete and only whitespace (or comments) remain.
func (p *Parser) NextEvent() (*stream.Event, error) {
	ev, err := p.next()
	if debug.JSON() {
		if err != nil {
			debug.Logf("json: %v\n", err)
		} else {
			debug.Logf("json: %s %s\n", ev, ev.Span)
		}
	}
	return ev, err
}

func (p *Parser) next() (*stream.Event, error) {
	for {
		if p.finished {
			return nil, io.EOF
		}
		if p.state == stEnd {
			return nil, p.trailing()
		}
		tok, err := p.lex.NextToken()
		if err != nil {
			return nil, err
		}
		if err := p.opts.limits.CheckSize(p.lex.Offset(), tok.Span); err != nil {
			return nil, err
		}
		switch p.state {
		case stValue:
			return p.value(&tok)

		case stArrFirst, stArrElem:
			if tok.Type == TRBracket {
				if p.state == stArrElem && !p.opts.trailingCommas {
					return nil, token.NewError(token.KindTrailingComma, tok.Span, "")
				}
				return p.end(stream.EventArrayEnd, &tok), nil
			}
			return p.value(&tok)

		case stObjFirst, stObjKey:
			switch tok.Type {
			case TRBrace:
				if p.state == stObjKey && !p.opts.trailingCommas {
					return nil, token.NewError(token.KindTrailingComma, tok.Span, "")
				}
				return p.end(stream.EventObjectEnd, &tok), nil
			case TString:
				top := &p.stack[len(p.stack)-1]
				top.entries++
				if err := p.opts.limits.CheckEntries(top.entries, tok.Span); err != nil {
					return nil, err
				}
				p.state = stColon
				return &stream.Event{Type: stream.EventKey, Key: tok.String, Span: tok.Span}, nil
			case TEOF:
				return nil, token.NewError(token.KindUnexpectedEOF, tok.Span, "in object")
			}
			return nil, token.ExpectedErr("string key or '}'", tok.Describe(), tok.Span)

		case stColon:
			switch tok.Type {
			case TColon:
				p.state = stValue
				continue
			case TEOF:
				return nil, token.NewError(token.KindUnexpectedEOF, tok.Span, "after key")
			}
			return nil, token.ExpectedErr("':'", tok.Describe(), tok.Span)

		case stObjNext:
			switch tok.Type {
			case TComma:
				p.state = stObjKey
				continue
			case TRBrace:
				return p.end(stream.EventObjectEnd, &tok), nil
			case TString:
				return nil, token.NewError(token.KindMissingComma, tok.Span, "between object members")
			case TEOF:
				return nil, token.NewError(token.KindUnexpectedEOF, tok.Span, "in object")
			}
			return nil, token.ExpectedErr("',' or '}'", tok.Describe(), tok.Span)

		case stArrNext:
			switch tok.Type {
			case TComma:
				p.state = stArrElem
				continue
			case TRBracket:
				return p.end(stream.EventArrayEnd, &tok), nil
			case TEOF:
				return nil, token.NewError(token.KindUnexpectedEOF, tok.Span, "in array")
			}
			if tok.isValueStart() {
				return nil, token.NewError(token.KindMissingComma, tok.Span, "between array elements")
			}
			return nil, token.ExpectedErr("',' or ']'", tok.Describe(), tok.Span)

		}
	}
}

// trailing checks that nothing but whitespace and comments follows the
// root value.  Content that does not even lex is still reported as
// trailing content.
func (p *Parser) trailing() error {
	if err := p.lex.skipIgnorable(); err != nil {
		return err
	}
	at := p.lex.Position()
	if err := p.opts.limits.CheckSize(p.lex.Offset(), token.At(at)); err != nil {
		return err
	}
	r, ok := p.lex.currentRune()
	if !ok {
		p.finished = true
		return io.EOF
	}
	tok, err := p.lex.NextToken()
	if err != nil {
		return token.ExpectedErr("end of input", strconv.QuoteRune(r), token.At(at))
	}
	return token.ExpectedErr("end of input", tok.Describe(), tok.Span)
}

func (p *Parser) value(tok *Token) (*stream.Event, error) {
	switch tok.Type {
	case TLBrace, TLBracket:
		if err := p.opts.limits.CheckDepth(len(p.stack)+1, tok.Span); err != nil {
			return nil, err
		}
		if tok.Type == TLBrace {
			p.stack = append(p.stack, frame{object: true})
			p.state = stObjFirst
			return &stream.Event{Type: stream.EventObjectStart, Span: tok.Span}, nil
		}
		p.stack = append(p.stack, frame{})
		p.state = stArrFirst
		return &stream.Event{Type: stream.EventArrayStart, Span: tok.Span}, nil
	case TNull, TTrue, TFalse, TString, TNumber:
		ev := &stream.Event{Type: stream.EventValue, Value: scalar(tok), Span: tok.Span}
		p.afterValue()
		return ev, nil
	case TEOF:
		return nil, token.NewError(token.KindUnexpectedEOF, tok.Span, "expected a value")
	}
	return nil, token.ExpectedErr("value", tok.Describe(), tok.Span)
}

func scalar(tok *Token) *ir.Value {
	switch tok.Type {
	case TTrue:
		return ir.FromBool(true)
	case TFalse:
		return ir.FromBool(false)
	case TString:
		return ir.FromString(tok.String)
	case TNumber:
		return ir.FromNumber(tok.Number)
	}
	return ir.Null()
}

func (p *Parser) end(t stream.EventType, tok *Token) *stream.Event {
	p.stack = p.stack[:len(p.stack)-1]
	p.afterValue()
	return &stream.Event{Type: t, Span: tok.Span}
}

func (p *Parser) afterValue() {
	switch {
	case len(p.stack) == 0:
		p.state = stEnd
	case p.stack[len(p.stack)-1].object:
		p.state = stObjNext
	default:
		p.state = stArrNext
	}
}

// Depth is the number of currently open containers.
func (p *Parser) Depth() int {
	return len(p.stack)
}

// Parse consumes the remaining events and returns the root value.
func (p *Parser) Parse() (*ir.Value, error) {
	b := stream.NewBuilder()
	for {
		ev, err := p.NextEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := b.Push(ev); err != nil {
			return nil, err
		}
	}
	return b.Value(), nil
}

// Parse parses a complete JSON document.
func Parse(input []byte, opts ...ParseOption) (*ir.Value, error) {
	return NewParser(input, opts...).Parse()
}
