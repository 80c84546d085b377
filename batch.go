package anchorage

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/anchorage/dom"
	"github.com/tsawler/anchorage/selector"
)

// Result is the outcome of anchoring one target.
type Result struct {
	Target selector.Target
	Range  dom.Range
	Err    error
}

// Orphaned reports whether the target could not be found in the document.
func (r Result) Orphaned() bool {
	return errors.Is(r.Err, ErrAnchorExhausted)
}

// AnchorAll anchors every target against doc, running up to the configured
// concurrency of targets at once. Each target is resolved exactly as Anchor
// would; results are returned in target order. The error is only non-nil
// for invalid options or a nil document.
func AnchorAll(doc *dom.Document, targets []selector.Target, opts ...Option) ([]Result, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrInvalidOption)
	}

	results := make([]Result, len(targets))
	var g errgroup.Group
	g.SetLimit(cfg.concurrency)

	for i, t := range targets {
		g.Go(func() error {
			if t.Fingerprint != "" && t.Fingerprint != doc.Fingerprint() {
				cfg.logger.Debug().Str("target", t.ID).Msg("document text changed since target was described")
			}
			r, err := cfg.anchor(doc, t.Selectors)
			results[i] = Result{Target: t, Range: r, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	orphaned := 0
	for _, r := range results {
		if r.Orphaned() {
			orphaned++
		}
	}
	cfg.logger.Info().Int("targets", len(targets)).Int("orphaned", orphaned).Msg("anchored batch")

	return results, nil
}
