// Package core provides the PDF object types shared by the content stream
// parser, the font loader and the page wrappers.
//
// PDF defines eight basic object types, all implemented as types satisfying
// the Object interface:
//
//   - [Null] - the PDF null object
//   - [Bool] - boolean values (true/false)
//   - [Int] - integers
//   - [Real] - real numbers (floating point)
//   - [String] - string objects (literal or hexadecimal), kept as raw bytes
//   - [Name] - name objects (e.g., /Type, /Font)
//   - [Array] - arrays
//   - [Dict] - dictionaries
//
// Additionally, [Stream] pairs a dictionary with raw stream bytes.
//
// Objects are always direct: this package does not model indirect
// references, cross-reference tables or stream filters.
//
// # Numbers
//
// Content stream operands are frequently "any number". [Number] accepts
// both [Int] and [Real]:
//
//	if size, ok := core.Number(op.Operands[1]); ok {
//	    ...
//	}
package core
