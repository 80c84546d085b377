package dom

import (
	"fmt"

	"golang.org/x/net/html"
)

// Point is a DOM boundary point. For text nodes Offset counts code points
// into the node's data; for elements it is a child index.
type Point struct {
	Node   *html.Node
	Offset int
}

// Range is a contiguous span [Start, End) of a document's text layer.
// Ranges are values; the zero Range belongs to no document.
type Range struct {
	doc        *Document
	start, end int
}

// Document returns the document the range belongs to.
func (r Range) Document() *Document { return r.doc }

// Start returns the offset of the first code point in the range.
func (r Range) Start() int { return r.start }

// End returns the offset just past the last code point in the range.
func (r Range) End() int { return r.end }

// Len returns the number of code points in the range.
func (r Range) Len() int { return r.end - r.start }

// Collapsed reports whether the range is empty.
func (r Range) Collapsed() bool { return r.start == r.end }

// IsZero reports whether r is the zero Range.
func (r Range) IsZero() bool { return r.doc == nil }

// String returns the text content of the range.
func (r Range) String() string {
	if r.doc == nil {
		return ""
	}
	return string(r.doc.text[r.start:r.end])
}

// Equal reports whether both ranges cover the same span of the same document.
func (r Range) Equal(o Range) bool {
	return r.doc == o.doc && r.start == o.start && r.end == o.end
}

// StartPoint returns the text node position where the range begins.
func (r Range) StartPoint() (Point, error) {
	if r.doc == nil {
		return Point{}, ErrForeignNode
	}
	return r.doc.PointAt(r.start, Forward)
}

// EndPoint returns the text node position where the range ends.
func (r Range) EndPoint() (Point, error) {
	if r.doc == nil {
		return Point{}, ErrForeignNode
	}
	return r.doc.PointAt(r.end, Backward)
}

// Context returns up to n code points of text before and after the range.
func (r Range) Context(n int) (prefix, suffix string) {
	if r.doc == nil || n <= 0 {
		return "", ""
	}
	from := max(0, r.start-n)
	to := min(len(r.doc.text), r.end+n)
	return string(r.doc.text[from:r.start]), string(r.doc.text[r.end:to])
}

// GoString formats the range for debugging.
func (r Range) GoString() string {
	return fmt.Sprintf("dom.Range[%d:%d]", r.start, r.end)
}
