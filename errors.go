package anchorage

import (
	"errors"

	"github.com/tsawler/anchorage/strategy"
)

var (
	// ErrAnchorExhausted is returned by Anchor when every applicable strategy
	// failed or was rejected. Callers should treat it as "this annotation
	// could not be found in the document".
	ErrAnchorExhausted = errors.New("unable to anchor")

	// ErrQuoteMismatch marks a Range or Position result whose text differs
	// from the stored quote. Anchor treats it as a strategy failure.
	ErrQuoteMismatch = errors.New("quote mismatch")

	// ErrInvalidOption indicates an option that could not be applied.
	ErrInvalidOption = errors.New("invalid option")
)

// Strategy failures, re-exported for callers that only import this package.
var (
	ErrSelectorInvalid  = strategy.ErrSelectorInvalid
	ErrRangeUnsupported = strategy.ErrRangeUnsupported
	ErrRangeNotFound    = strategy.ErrRangeNotFound
)
