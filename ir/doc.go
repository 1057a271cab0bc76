// Package ir provides the document tree shared by every parser and
// serializer.
//
// # Overview
//
// A document is a tree of *Value.  Value is a tagged union: the Type field
// indicates which of the remaining fields holds the value.
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Number, a float64.  Integers, floats and the hex, octal
//     and binary integers of TOML all collapse to it.
//   - StringType: String
//   - ArrayType: Array, an ordered slice of values
//   - ObjectType: Object, an insertion ordered mapping
//   - DatetimeType: Datetime, one of the four TOML temporal forms
//
// # Objects
//
// Object keeps keys in first insertion order.  Set on an existing key
// replaces the value in place, so the key keeps its original position.
// Insert never overwrites and reports whether the key was new; the TOML
// and YAML parsers use it to reject duplicate keys while the JSON tree
// builder uses Set so the last duplicate wins.
//
// # Creating Values
//
//	obj := ir.NewObject()
//	obj.Set("name", ir.FromString("zparse"))
//	obj.Set("tags", ir.FromSlice([]*ir.Value{ir.FromString("a")}))
//	v := ir.FromObject(obj)
//
// # Comparison
//
// Equal compares trees exactly, EqualApprox with a relative numeric
// tolerance.  Positions are never part of a Value, so trees parsed from
// different formats compare equal when their content is.
//
// Values are not safe for concurrent mutation.  Trees returned by parsers
// are owned by the caller.
package ir
