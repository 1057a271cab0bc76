// Package encode serializes [ir.Value] trees as JSON, TOML, YAML or XML.
//
// # Usage
//
//	v, _ := json.Parse(data)
//	err := encode.Encode(v, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
//	// indented JSON, colored for a terminal
//	err = encode.Encode(v, os.Stdout, encode.EncodeIndent(2), encode.EncodeColors(encode.NewColors()))
//
// Output carries no trailing newline.
//
// # Per format
//
//   - JSON is compact unless [EncodeIndent] is given.  Non-finite numbers
//     cannot be written.
//   - TOML needs an object root and has no null.  Nested objects are
//     written as inline tables.
//   - YAML is block style with every string double quoted.
//   - XML goes through [xml.FromValue]; leaves become text.
//
// Values that a format cannot represent produce a *token.Error of kind
// UnsupportedValue.
package encode
