package anchorage

import (
	"fmt"

	"github.com/tsawler/anchorage/dom"
	"github.com/tsawler/anchorage/selector"
	"github.com/tsawler/anchorage/strategy"
)

// Anchor resolves a selector set into a range of doc.
//
// Strategies are tried one at a time in the order Range, Position, Quote,
// skipping kinds absent from the set. The first strategy that produces a
// range wins, except that a Range or Position result whose text differs from
// a non-empty stored quote is rejected and the next strategy is tried. When a
// TextPositionSelector is present its start is used as the search hint.
//
// When nothing resolves, including when the set holds no usable selector,
// Anchor returns ErrAnchorExhausted. Individual strategy failures are logged
// at debug level and not returned.
func Anchor(doc *dom.Document, selectors []selector.Selector, opts ...Option) (dom.Range, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return dom.Range{}, err
	}
	return cfg.anchor(doc, selectors)
}

// classified holds the effective selector of each kind.
type classified struct {
	rng      *selector.Range
	position *selector.TextPosition
	quote    *selector.TextQuote
}

func (c classified) selectorFor(k selector.Kind) (selector.Selector, bool) {
	switch k {
	case selector.KindRange:
		if c.rng != nil {
			return *c.rng, true
		}
	case selector.KindTextPosition:
		if c.position != nil {
			return *c.position, true
		}
	case selector.KindTextQuote:
		if c.quote != nil {
			return *c.quote, true
		}
	}
	return nil, false
}

// classify picks one selector per kind. When a kind occurs more than once
// the last occurrence wins; unknown selector types are ignored.
func (cfg config) classify(selectors []selector.Selector) classified {
	var c classified
	for _, s := range selectors {
		switch v := s.(type) {
		case selector.Range:
			if c.rng != nil {
				cfg.logger.Debug().Str("type", selector.TypeRange).Msg("duplicate selector, using the last one")
			}
			c.rng = &v
		case selector.TextPosition:
			if c.position != nil {
				cfg.logger.Debug().Str("type", selector.TypeTextPosition).Msg("duplicate selector, using the last one")
			}
			c.position = &v
		case selector.TextQuote:
			if c.quote != nil {
				cfg.logger.Debug().Str("type", selector.TypeTextQuote).Msg("duplicate selector, using the last one")
			}
			c.quote = &v
		}
	}
	return c
}

// attempt is one strategy to try against one selector.
type attempt struct {
	variant strategy.Variant
	sel     selector.Selector
	verify  bool
}

func (cfg config) anchor(doc *dom.Document, selectors []selector.Selector) (dom.Range, error) {
	if doc == nil {
		return dom.Range{}, fmt.Errorf("%w: nil document", ErrInvalidOption)
	}

	c := cfg.classify(selectors)

	opts := cfg.strategyOptions()
	if c.position != nil {
		opts.Hint = c.position.Start
		opts.HasHint = true
	}

	var attempts []attempt
	for _, v := range cfg.variants {
		sel, ok := c.selectorFor(v.Kind())
		if !ok {
			continue
		}
		attempts = append(attempts, attempt{
			variant: v,
			sel:     sel,
			verify:  v.Kind() != selector.KindTextQuote,
		})
	}

	for _, a := range attempts {
		r, err := resolve(doc, a, opts, c.quote)
		if err != nil {
			cfg.logger.Debug().
				Str("strategy", a.variant.Kind().String()).
				Err(err).
				Msg("strategy failed")
			continue
		}
		cfg.logger.Debug().
			Str("strategy", a.variant.Kind().String()).
			Int("start", r.Start()).
			Int("end", r.End()).
			Msg("anchored")
		return r, nil
	}

	cfg.logger.Info().Int("attempts", len(attempts)).Msg("unable to anchor")
	return dom.Range{}, ErrAnchorExhausted
}

// resolve runs a single strategy and, where required, checks the result
// against the stored quote.
func resolve(doc *dom.Document, a attempt, opts strategy.Options, quote *selector.TextQuote) (dom.Range, error) {
	anchor, err := a.variant.FromSelector(doc, a.sel)
	if err != nil {
		return dom.Range{}, err
	}
	r, err := anchor.ToRange(opts)
	if err != nil {
		return dom.Range{}, err
	}
	if r.Document() != doc {
		return dom.Range{}, fmt.Errorf("%w: range from another document", ErrRangeNotFound)
	}
	if a.verify && quote != nil && quote.Exact != "" {
		if got := r.String(); got != quote.Exact {
			return dom.Range{}, fmt.Errorf("%w: found %q, want %q", ErrQuoteMismatch, got, quote.Exact)
		}
	}
	return r, nil
}
