package toml

import (
	"strconv"

	"github.com/signadot/zparse/ir"
	"github.com/signadot/zparse/token"
)

type TokenType int

const (
	TEOF TokenType = iota
	TNewline
	TLBracket
	TRBracket
	TDLBracket
	TDRBracket
	TLBrace
	TRBrace
	TEquals
	TComma
	TDot
	TBareKey
	TString
	TNumber
	TBool
	TDatetime
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:       "TEOF",
		TNewline:   "TNewline",
		TLBracket:  "TLBracket",
		TRBracket:  "TRBracket",
		TDLBracket: "TDLBracket",
		TDRBracket: "TDRBracket",
		TLBrace:    "TLBrace",
		TRBrace:    "TRBrace",
		TEquals:    "TEquals",
		TComma:     "TComma",
		TDot:       "TDot",
		TBareKey:   "TBareKey",
		TString:    "TString",
		TNumber:    "TNumber",
		TBool:      "TBool",
		TDatetime:  "TDatetime",
	}[t]
}

// Token is one lexeme.  String holds the decoded text of keys and strings,
// Multiline is set for triple quoted strings.
type Token struct {
	Type      TokenType
	Span      token.Span
	String    string
	Multiline bool
	Number    float64
	Bool      bool
	Datetime  ir.Datetime
}

func (t *Token) Describe() string {
	switch t.Type {
	case TEOF:
		return "end of input"
	case TNewline:
		return "newline"
	case TLBracket:
		return "'['"
	case TRBracket:
		return "']'"
	case TDLBracket:
		return "'[['"
	case TDRBracket:
		return "']]'"
	case TLBrace:
		return "'{'"
	case TRBrace:
		return "'}'"
	case TEquals:
		return "'='"
	case TComma:
		return "','"
	case TDot:
		return "'.'"
	case TBareKey:
		return "key " + t.String
	case TString:
		return "string " + strconv.Quote(t.String)
	case TNumber:
		return "number " + ir.FormatNumber(t.Number)
	case TBool:
		return strconv.FormatBool(t.Bool)
	case TDatetime:
		return "datetime " + t.Datetime.String()
	}
	return t.Type.String()
}
