// Package selector defines the persisted descriptions of a text location
// that annotations store instead of live ranges.
//
// Three selector kinds are understood:
//
//   - Range: a structural description made of two XPath containers relative
//     to the anchoring root plus a text offset inside each container.
//   - TextPosition: code point offsets into the document's text layer.
//   - TextQuote: the quoted text together with some surrounding context.
//
// Selectors of any other type are kept as Unknown values so that a set
// read from storage can be written back unchanged.
//
// # Wire Formats
//
// The JSON form matches the shared annotation data model:
//
//	{"type": "TextPositionSelector", "start": 42, "end": 50}
//
// A compact binary form built on msgpack is available through EncodeSet and
// DecodeSet for callers that cache selector sets locally.
package selector
