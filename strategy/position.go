package strategy

import (
	"fmt"

	"github.com/tsawler/anchorage/dom"
	"github.com/tsawler/anchorage/selector"
)

// Position resolves TextPositionSelectors.
type Position struct{}

// PositionAnchor is a text layer span addressed by offsets.
type PositionAnchor struct {
	doc        *dom.Document
	start, end int
}

// Kind returns selector.KindTextPosition.
func (Position) Kind() selector.Kind { return selector.KindTextPosition }

// FromSelector checks the offsets against the document's text length.
func (Position) FromSelector(doc *dom.Document, sel selector.Selector) (Anchor, error) {
	s, ok := sel.(selector.TextPosition)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s, got %T", ErrSelectorInvalid, selector.TypeTextPosition, sel)
	}
	if err := selector.Validate(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSelectorInvalid, err)
	}
	if s.End > doc.Len() {
		return nil, fmt.Errorf("%w: end %d beyond text length %d", ErrSelectorInvalid, s.End, doc.Len())
	}
	return &PositionAnchor{doc: doc, start: s.Start, end: s.End}, nil
}

// FromRange wraps a live range.
func (Position) FromRange(doc *dom.Document, r dom.Range) (Anchor, error) {
	if err := checkRange(doc, r); err != nil {
		return nil, err
	}
	return &PositionAnchor{doc: doc, start: r.Start(), end: r.End()}, nil
}

// ToRange returns the addressed range.
func (a *PositionAnchor) ToRange(Options) (dom.Range, error) {
	r, err := a.doc.Range(a.start, a.end)
	if err != nil {
		return dom.Range{}, fmt.Errorf("%w: %w", ErrRangeNotFound, err)
	}
	return r, nil
}

// ToSelector returns the offsets as a TextPositionSelector.
func (a *PositionAnchor) ToSelector(Options) (selector.Selector, error) {
	return selector.TextPosition{Start: a.start, End: a.end}, nil
}
