package dom

import "errors"

var (
	// ErrOutOfBounds indicates an offset outside the document's text layer
	// or outside an element's text.
	ErrOutOfBounds = errors.New("offset out of bounds")

	// ErrForeignNode indicates a node that is not inside the anchoring root.
	ErrForeignNode = errors.New("node is not part of the document")

	// ErrNodeNotFound indicates an XPath expression that selected nothing.
	ErrNodeNotFound = errors.New("node not found")

	// ErrBadXPath indicates an XPath expression that failed to compile or
	// selected something other than an element or text node.
	ErrBadXPath = errors.New("bad xpath")

	// ErrNoText indicates a document without any text nodes.
	ErrNoText = errors.New("document has no text")

	// ErrIgnored indicates that no element outside the ignored subtrees
	// could be found.
	ErrIgnored = errors.New("node is ignored")
)
