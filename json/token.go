package json

import (
	"strconv"

	"github.com/signadot/zparse/token"
)

type TokenType int

const (
	TEOF TokenType = iota
	TLBrace
	TRBrace
	TLBracket
	TRBracket
	TColon
	TComma
	TNull
	TTrue
	TFalse
	TString
	TNumber
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:      "TEOF",
		TLBrace:   "TLBrace",
		TRBrace:   "TRBrace",
		TLBracket: "TLBracket",
		TRBracket: "TRBracket",
		TColon:    "TColon",
		TComma:    "TComma",
		TNull:     "TNull",
		TTrue:     "TTrue",
		TFalse:    "TFalse",
		TString:   "TString",
		TNumber:   "TNumber",
	}[t]
}

type Token struct {
	Type   TokenType
	Span   token.Span
	String string
	Number float64
}

// Describe names the token for diagnostics.
func (t *Token) Describe() string {
	switch t.Type {
	case TEOF:
		return "end of input"
	case TLBrace:
		return "'{'"
	case TRBrace:
		return "'}'"
	case TLBracket:
		return "'['"
	case TRBracket:
		return "']'"
	case TColon:
		return "':'"
	case TComma:
		return "','"
	case TNull:
		return "null"
	case TTrue:
		return "true"
	case TFalse:
		return "false"
	case TString:
		return "string " + strconv.Quote(t.String)
	case TNumber:
		return "number " + strconv.FormatFloat(t.Number, 'g', -1, 64)
	}
	return t.Type.String()
}

func (t *Token) isValueStart() bool {
	switch t.Type {
	case TLBrace, TLBracket, TNull, TTrue, TFalse, TString, TNumber:
		return true
	}
	return false
}
