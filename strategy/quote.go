package strategy

import (
	"fmt"

	"github.com/tsawler/anchorage/dom"
	"github.com/tsawler/anchorage/match"
	"github.com/tsawler/anchorage/selector"
)

// ContextLength is the number of code points of prefix and suffix recorded
// when a quote is taken from a range.
const ContextLength = 32

// Quote resolves TextQuoteSelectors.
type Quote struct{}

// QuoteAnchor is quoted text with its surrounding context.
type QuoteAnchor struct {
	doc    *dom.Document
	exact  string
	prefix string
	suffix string
}

// Kind returns selector.KindTextQuote.
func (Quote) Kind() selector.Kind { return selector.KindTextQuote }

// FromSelector records the quote; the search happens in ToRange.
func (Quote) FromSelector(doc *dom.Document, sel selector.Selector) (Anchor, error) {
	s, ok := sel.(selector.TextQuote)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s, got %T", ErrSelectorInvalid, selector.TypeTextQuote, sel)
	}
	if err := selector.Validate(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSelectorInvalid, err)
	}
	return &QuoteAnchor{doc: doc, exact: s.Exact, prefix: s.Prefix, suffix: s.Suffix}, nil
}

// FromRange captures the range's text and context. Collapsed ranges have
// nothing to quote.
func (Quote) FromRange(doc *dom.Document, r dom.Range) (Anchor, error) {
	if err := checkRange(doc, r); err != nil {
		return nil, err
	}
	if r.Collapsed() {
		return nil, fmt.Errorf("%w: collapsed range", ErrRangeUnsupported)
	}
	prefix, suffix := r.Context(ContextLength)
	return &QuoteAnchor{doc: doc, exact: r.String(), prefix: prefix, suffix: suffix}, nil
}

// ToRange searches the document for the best match of the quote, preferring
// candidates near opts.Hint when it is set.
func (a *QuoteAnchor) ToRange(opts Options) (dom.Range, error) {
	res, ok := match.Quote(a.doc.Text(), a.exact, match.Context{
		Prefix:  a.prefix,
		Suffix:  a.suffix,
		Hint:    opts.Hint,
		HasHint: opts.HasHint,
	})
	if !ok {
		return dom.Range{}, fmt.Errorf("%w: quote %q", ErrRangeNotFound, a.exact)
	}
	return a.doc.Range(res.Start, res.End)
}

// ToSelector returns the quote as a TextQuoteSelector.
func (a *QuoteAnchor) ToSelector(Options) (selector.Selector, error) {
	return selector.TextQuote{Exact: a.exact, Prefix: a.prefix, Suffix: a.suffix}, nil
}
