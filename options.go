package anchorage

import (
	"fmt"
	"runtime"

	"github.com/antchfx/xpath"
	"github.com/rs/zerolog"

	"github.com/tsawler/anchorage/selector"
	"github.com/tsawler/anchorage/strategy"
)

// Option configures Anchor, Describe and AnchorAll.
type Option func(*config) error

type config struct {
	hint           int
	hasHint        bool
	ignoreSelector string
	variants       []strategy.Variant
	logger         zerolog.Logger
	concurrency    int
}

// defaultConfig returns the configuration used when no options are given.
func defaultConfig() config {
	return config{
		variants:    strategy.Variants(),
		logger:      zerolog.Nop(),
		concurrency: runtime.GOMAXPROCS(0),
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// strategyOptions returns the options handed to every resolver call.
func (c config) strategyOptions() strategy.Options {
	return strategy.Options{
		Hint:           c.hint,
		HasHint:        c.hasHint,
		IgnoreSelector: c.ignoreSelector,
	}
}

// WithHint seeds the quote search with an expected start offset. A
// TextPositionSelector in the anchored set overrides it.
func WithHint(offset int) Option {
	return func(c *config) error {
		if offset < 0 {
			return fmt.Errorf("%w: negative hint %d", ErrInvalidOption, offset)
		}
		c.hint = offset
		c.hasHint = true
		return nil
	}
}

// WithIgnoreSelector excludes the elements selected by an XPath expression
// from RangeSelector container paths produced by Describe.
func WithIgnoreSelector(expr string) Option {
	return func(c *config) error {
		if expr != "" {
			if _, err := xpath.Compile(expr); err != nil {
				return fmt.Errorf("%w: ignore selector %q: %v", ErrInvalidOption, expr, err)
			}
		}
		c.ignoreSelector = expr
		return nil
	}
}

// WithLogger sets the logger used for strategy failures and batch progress.
// The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithVariants replaces the built-in strategies. Exactly one variant per
// selector kind must be given; they are always tried Range, Position, Quote
// regardless of argument order.
func WithVariants(variants ...strategy.Variant) Option {
	return func(c *config) error {
		order := []selector.Kind{selector.KindRange, selector.KindTextPosition, selector.KindTextQuote}
		byKind := make(map[selector.Kind]strategy.Variant, len(variants))
		for _, v := range variants {
			if v == nil {
				return fmt.Errorf("%w: nil variant", ErrInvalidOption)
			}
			if _, dup := byKind[v.Kind()]; dup {
				return fmt.Errorf("%w: duplicate variant for %s", ErrInvalidOption, v.Kind())
			}
			byKind[v.Kind()] = v
		}

		out := make([]strategy.Variant, 0, len(order))
		for _, k := range order {
			v, ok := byKind[k]
			if !ok {
				return fmt.Errorf("%w: missing variant for %s", ErrInvalidOption, k)
			}
			out = append(out, v)
		}
		if len(byKind) != len(order) {
			return fmt.Errorf("%w: unsupported variant kind", ErrInvalidOption)
		}
		c.variants = out
		return nil
	}
}

// WithConcurrency bounds the number of targets AnchorAll resolves at once.
// The default is GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: concurrency %d", ErrInvalidOption, n)
		}
		c.concurrency = n
		return nil
	}
}
