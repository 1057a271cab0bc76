// Package xml parses XML documents into a small element tree and maps
// that tree to and from [ir.Value].
//
// The parser walks a [token.Cursor] directly.  It skips the prolog
// (declarations, DOCTYPE with an internal subset, comments, processing
// instructions), reads exactly one root element, decodes the predefined
// and numeric entities, keeps CDATA as text and drops whitespace-only
// text runs.  Namespaces, external entities and DTD validation are not
// supported.
//
// The value mapping is documented on [ToValue] and [FromValue].
package xml
