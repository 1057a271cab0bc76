// Package zparse converts documents between JSON, TOML, YAML and XML.
//
// Every format is parsed into the shared value model of package ir,
// except XML, which is parsed into an xml.Document and mapped to and from
// values with xml.ToValue and xml.FromValue.  Conversion is parse then
// encode:
//
//	out, err := zparse.Convert(`a = 1`, format.TOMLFormat, format.JSONFormat)
//	// out == `{"a":1}`
//
// Parsers enforce the limits in Config.  Errors are *token.Error values
// carrying a Kind and a Span, and wrap a per-kind sentinel so they can be
// matched with errors.Is.
//
// The package also offers a few operations over parsed values: MergePatch
// applies an RFC 7396 merge patch, Get extracts by gjson path, Diff
// compares two values line by line and Tool expands embedded expressions.
//
// # Related Packages
//
//   - github.com/signadot/zparse/ir - Value model
//   - github.com/signadot/zparse/token - Positions, errors and limits
//   - github.com/signadot/zparse/encode - Serializers
//   - github.com/signadot/zparse/xml - XML documents
package zparse
