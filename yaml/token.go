package yaml

import (
	"strconv"

	"github.com/signadot/zparse/token"
)

type TokenType int

const (
	TEOF TokenType = iota
	TNewline
	TIndent
	TDedent
	TDash
	TColon
	TLBracket
	TRBracket
	TLBrace
	TRBrace
	TComma
	TScalar
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:      "TEOF",
		TNewline:  "TNewline",
		TIndent:   "TIndent",
		TDedent:   "TDedent",
		TDash:     "TDash",
		TColon:    "TColon",
		TLBracket: "TLBracket",
		TRBracket: "TRBracket",
		TLBrace:   "TLBrace",
		TRBrace:   "TRBrace",
		TComma:    "TComma",
		TScalar:   "TScalar",
	}[t]
}

// Token is one lexeme.  Quoted is set for quoted and block scalars, which
// are always strings.
type Token struct {
	Type   TokenType
	Span   token.Span
	String string
	Quoted bool
}

func (t *Token) Describe() string {
	switch t.Type {
	case TEOF:
		return "end of input"
	case TNewline:
		return "end of line"
	case TIndent:
		return "indentation"
	case TDedent:
		return "dedent"
	case TDash:
		return "'-'"
	case TColon:
		return "':'"
	case TLBracket:
		return "'['"
	case TRBracket:
		return "']'"
	case TLBrace:
		return "'{'"
	case TRBrace:
		return "'}'"
	case TComma:
		return "','"
	case TScalar:
		return "scalar " + strconv.Quote(t.String)
	}
	return t.Type.String()
}
