package strategy

import (
	"fmt"

	"github.com/tsawler/anchorage/dom"
	"github.com/tsawler/anchorage/selector"
)

// Range resolves RangeSelectors.
type Range struct{}

// RangeAnchor is a text layer span addressed structurally.
type RangeAnchor struct {
	doc        *dom.Document
	start, end int
}

// Kind returns selector.KindRange.
func (Range) Kind() selector.Kind { return selector.KindRange }

// FromSelector locates both containers and converts their offsets.
func (Range) FromSelector(doc *dom.Document, sel selector.Selector) (Anchor, error) {
	s, ok := sel.(selector.Range)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s, got %T", ErrSelectorInvalid, selector.TypeRange, sel)
	}
	if err := selector.Validate(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSelectorInvalid, err)
	}

	start, err := containerOffset(doc, s.StartContainer, s.StartOffset)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %w", ErrSelectorInvalid, err)
	}
	end, err := containerOffset(doc, s.EndContainer, s.EndOffset)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %w", ErrSelectorInvalid, err)
	}
	if start > end {
		return nil, fmt.Errorf("%w: start %d after end %d", ErrSelectorInvalid, start, end)
	}

	return &RangeAnchor{doc: doc, start: start, end: end}, nil
}

func containerOffset(doc *dom.Document, path string, offset int) (int, error) {
	node, err := doc.NodeFromXPath(path)
	if err != nil {
		return 0, fmt.Errorf("container %q: %w", path, err)
	}
	return doc.OffsetWithin(node, offset)
}

// FromRange wraps a live range.
func (Range) FromRange(doc *dom.Document, r dom.Range) (Anchor, error) {
	if err := checkRange(doc, r); err != nil {
		return nil, err
	}
	return &RangeAnchor{doc: doc, start: r.Start(), end: r.End()}, nil
}

// ToRange returns the addressed range.
func (a *RangeAnchor) ToRange(Options) (dom.Range, error) {
	r, err := a.doc.Range(a.start, a.end)
	if err != nil {
		return dom.Range{}, fmt.Errorf("%w: %w", ErrRangeNotFound, err)
	}
	return r, nil
}

// ToSelector describes the range relative to the nearest element of each
// boundary that is not excluded by opts.IgnoreSelector.
func (a *RangeAnchor) ToSelector(opts Options) (selector.Selector, error) {
	filter, err := a.doc.CompileIgnoreFilter(opts.IgnoreSelector)
	if err != nil {
		return nil, fmt.Errorf("ignore selector: %w", err)
	}

	startPoint, err := a.doc.PointAt(a.start, dom.Forward)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRangeUnsupported, err)
	}
	endPoint, err := a.doc.PointAt(a.end, dom.Backward)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRangeUnsupported, err)
	}

	startPath, startOffset, err := a.describePoint(startPoint, a.start, filter)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	endPath, endOffset, err := a.describePoint(endPoint, a.end, filter)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return selector.Range{
		StartContainer: startPath,
		StartOffset:    startOffset,
		EndContainer:   endPath,
		EndOffset:      endOffset,
	}, nil
}

func (a *RangeAnchor) describePoint(p dom.Point, offset int, filter *dom.IgnoreFilter) (string, int, error) {
	container, err := a.doc.Container(p.Node, filter)
	if err != nil {
		return "", 0, err
	}
	path, err := a.doc.XPathFromNode(container)
	if err != nil {
		return "", 0, err
	}
	start, _, ok := a.doc.NodeSpan(container)
	if !ok {
		return "", 0, dom.ErrForeignNode
	}
	return path, offset - start, nil
}
