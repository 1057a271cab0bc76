// Package yaml parses the block and flow subset of YAML 1.2 used by
// configuration files into an [ir.Value].
//
// Supported: block mappings and sequences (including compact "- k: v"
// items and sequences at their key's indentation), flow collections that
// may span lines, plain, single and double quoted scalars, literal and
// folded block scalars with chomping and indentation indicators, comments,
// a leading "---" and a trailing "...".
//
// Not supported: anchors, aliases, tags, complex keys, multi-line plain
// scalars and multiple documents.  Plain scalars resolve with the core
// schema: null, true/false, integers (decimal, 0x, 0o), floats, .inf and
// .nan.  Everything else, and every quoted or block scalar, is a string.
package yaml
