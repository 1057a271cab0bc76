// Package json implements a streaming JSON lexer and parser producing
// [stream.Event] values and [ir.Value] trees.
//
// The parser is strict RFC 8259 by default.  [AllowComments] and
// [AllowTrailingCommas] relax it to the common JSONC dialect.  Duplicate
// object keys are accepted; the last value wins while the key keeps its
// first position.
//
// Every error returned is a *token.Error carrying the span of the
// offending input.
package json
