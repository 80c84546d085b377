// Package strategy implements the three ways a selector can be turned into
// a live range and back.
//
// Each Variant constructs an Anchor either from a stored selector
// (FromSelector) or from a live range (FromRange). An Anchor can then
// produce a range (ToRange) or a selector (ToSelector). Anchors are bound to
// one document, used once and discarded.
//
// The variants, in the order anchoring tries them:
//
//   - Range: XPath containers plus offsets within each container's text.
//     Cheap and exact while the document structure is unchanged.
//   - Position: code point offsets into the whole text layer. Survives
//     structural edits that leave the text alone.
//   - Quote: the quoted text and its context, located with approximate
//     matching. The most expensive and the most tolerant of edits.
//
// Failures are reported with ErrSelectorInvalid, ErrRangeUnsupported and
// ErrRangeNotFound so callers can tell them apart with errors.Is.
package strategy
