package token

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind classifies an Error.
type Kind int

const (
	KindInvalidToken Kind = iota + 1
	KindInvalidEscapeSequence
	KindInvalidUnicodeEscape
	KindUnterminatedString
	KindInvalidNumber
	KindInvalidDatetime

	KindExpected
	KindUnexpectedEOF
	KindTrailingComma
	KindMissingComma
	KindInvalidKey
	KindInvalidArray
	KindInvalidInlineTable
	KindInvalidIndentation

	KindDuplicateKey
	KindUnsupportedValue
	KindInvalidEntity
	KindUnterminatedTag
	KindUnterminatedAttribute
	KindUnterminatedComment

	KindMaxDepthExceeded
	KindMaxSizeExceeded
	KindMaxStringLengthExceeded
	KindMaxObjectEntriesExceeded
)

var (
	ErrInvalidToken             = errors.New("invalid token")
	ErrInvalidEscapeSequence    = errors.New("invalid escape sequence")
	ErrInvalidUnicodeEscape     = errors.New("invalid unicode escape")
	ErrUnterminatedString       = errors.New("unterminated string")
	ErrInvalidNumber            = errors.New("invalid number")
	ErrInvalidDatetime          = errors.New("invalid datetime")
	ErrExpected                 = errors.New("unexpected token")
	ErrUnexpectedEOF            = errors.New("unexpected end of input")
	ErrTrailingComma            = errors.New("trailing comma")
	ErrMissingComma             = errors.New("missing comma")
	ErrInvalidKey               = errors.New("invalid key")
	ErrInvalidArray             = errors.New("invalid array")
	ErrInvalidInlineTable       = errors.New("invalid inline table")
	ErrInvalidIndentation       = errors.New("invalid indentation")
	ErrDuplicateKey             = errors.New("duplicate key")
	ErrUnsupportedValue         = errors.New("unsupported value")
	ErrInvalidEntity            = errors.New("invalid entity")
	ErrUnterminatedTag          = errors.New("unterminated tag")
	ErrUnterminatedAttribute    = errors.New("unterminated attribute")
	ErrUnterminatedComment      = errors.New("unterminated comment")
	ErrMaxDepthExceeded         = errors.New("max depth exceeded")
	ErrMaxSizeExceeded          = errors.New("max size exceeded")
	ErrMaxStringLengthExceeded  = errors.New("max string length exceeded")
	ErrMaxObjectEntriesExceeded = errors.New("max object entries exceeded")
)

var kindErrs = map[Kind]error{
	KindInvalidToken:             ErrInvalidToken,
	KindInvalidEscapeSequence:    ErrInvalidEscapeSequence,
	KindInvalidUnicodeEscape:     ErrInvalidUnicodeEscape,
	KindUnterminatedString:       ErrUnterminatedString,
	KindInvalidNumber:            ErrInvalidNumber,
	KindInvalidDatetime:          ErrInvalidDatetime,
	KindExpected:                 ErrExpected,
	KindUnexpectedEOF:            ErrUnexpectedEOF,
	KindTrailingComma:            ErrTrailingComma,
	KindMissingComma:             ErrMissingComma,
	KindInvalidKey:               ErrInvalidKey,
	KindInvalidArray:             ErrInvalidArray,
	KindInvalidInlineTable:       ErrInvalidInlineTable,
	KindInvalidIndentation:       ErrInvalidIndentation,
	KindDuplicateKey:             ErrDuplicateKey,
	KindUnsupportedValue:         ErrUnsupportedValue,
	KindInvalidEntity:            ErrInvalidEntity,
	KindUnterminatedTag:          ErrUnterminatedTag,
	KindUnterminatedAttribute:    ErrUnterminatedAttribute,
	KindUnterminatedComment:      ErrUnterminatedComment,
	KindMaxDepthExceeded:         ErrMaxDepthExceeded,
	KindMaxSizeExceeded:          ErrMaxSizeExceeded,
	KindMaxStringLengthExceeded:  ErrMaxStringLengthExceeded,
	KindMaxObjectEntriesExceeded: ErrMaxObjectEntriesExceeded,
}

func (k Kind) Err() error {
	if e, ok := kindErrs[k]; ok {
		return e
	}
	return ErrInvalidToken
}

func (k Kind) String() string {
	return k.Err().Error()
}

// Error is the error type returned by every lexer, parser and serializer.
// Expected and Found are set for KindExpected, Key for KindDuplicateKey and
// Max for the limit kinds.
type Error struct {
	Kind     Kind
	Span     Span
	Expected string
	Found    string
	Key      string
	Max      int
	Msg      string
}

func NewError(k Kind, span Span, msg string) *Error {
	return &Error{Kind: k, Span: span, Msg: msg}
}

func Errorf(k Kind, span Span, format string, args ...any) *Error {
	return NewError(k, span, fmt.Sprintf(format, args...))
}

func ExpectedErr(expected, found string, span Span) *Error {
	return &Error{Kind: KindExpected, Span: span, Expected: expected, Found: found}
}

func DuplicateKeyErr(key string, span Span) *Error {
	return &Error{Kind: KindDuplicateKey, Span: span, Key: key}
}

func MaxErr(k Kind, max int, span Span) *Error {
	return &Error{Kind: k, Span: span, Max: max}
}

func (e *Error) Unwrap() error {
	return e.Kind.Err()
}

func (e *Error) Error() string {
	msg := e.message()
	if e.Span.IsEmpty() {
		return msg
	}
	return fmt.Sprintf("%s at %s", msg, e.Span.Start)
}

func (e *Error) message() string {
	var msg string
	switch e.Kind {
	case KindExpected:
		msg = fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	case KindDuplicateKey:
		msg = "duplicate key " + strconv.Quote(e.Key)
	case KindMaxDepthExceeded, KindMaxSizeExceeded,
		KindMaxStringLengthExceeded, KindMaxObjectEntriesExceeded:
		msg = fmt.Sprintf("%s (max %d)", e.Kind, e.Max)
	default:
		msg = e.Kind.String()
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	return msg
}

// KindOf returns the Kind of err if it is or wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}
