package anchorage

import (
	"fmt"

	"github.com/tsawler/anchorage/dom"
	"github.com/tsawler/anchorage/selector"
	"github.com/tsawler/anchorage/strategy"
)

// Describe derives selectors for r, one per strategy that can express it,
// in the order Range, TextPosition, TextQuote. Strategies that cannot
// describe the range are left out, so the result may be empty. The error is
// only non-nil for invalid options.
func Describe(doc *dom.Document, r dom.Range, opts ...Option) (selector.Set, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrInvalidOption)
	}

	sopts := cfg.strategyOptions()
	out := selector.Set{}
	for _, v := range cfg.variants {
		d := derive(v, doc, r, sopts)
		if d.err != nil {
			cfg.logger.Debug().
				Str("strategy", d.kind.String()).
				Err(d.err).
				Msg("cannot describe range")
			continue
		}
		out = append(out, d.selector)
	}
	return out, nil
}

// derivation is the outcome of describing a range with one strategy.
type derivation struct {
	kind     selector.Kind
	selector selector.Selector
	err      error
}

func derive(v strategy.Variant, doc *dom.Document, r dom.Range, opts strategy.Options) derivation {
	d := derivation{kind: v.Kind()}
	anchor, err := v.FromRange(doc, r)
	if err != nil {
		d.err = err
		return d
	}
	d.selector, d.err = anchor.ToSelector(opts)
	return d
}
