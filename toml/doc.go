// Package toml parses a pragmatic subset of TOML 1.0 into an [ir.Value]
// object.
//
// The parser is statement oriented: each call to [Parser.NextEvent]
// reads one table header or key/value line, applies it to the document
// and returns it as an [Event].  Tables are resolved by walking from the
// root, so redeclared tables, keys assigned twice and dotted keys that
// cross a value are all reported as duplicate key errors.
//
// All integer forms (decimal, 0x, 0o, 0b) and floats become float64
// numbers.  Datetimes keep their kind and fractional precision so they
// serialize back to the same literal.
package toml
