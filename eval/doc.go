// Package eval evaluates expr-lang expressions against parsed documents.
//
// A document is bound into the expression environment as "doc" in its
// native Go form (see ir.Value.Interface), and the functions getpath and
// getenv are available to every expression.  Strings may also carry
// embedded expressions, $[expr] or .[expr], which ExpandString and
// ExpandValue replace with their results.
//
// # Related Packages
//
//   - github.com/signadot/zparse/ir - Document values
//   - github.com/signadot/zparse/encode - Rendering of non-string results
package eval
