package strategy

import (
	"errors"

	"github.com/tsawler/anchorage/dom"
	"github.com/tsawler/anchorage/selector"
)

var (
	// ErrSelectorInvalid indicates a selector whose stored data does not
	// correspond to a location in the document.
	ErrSelectorInvalid = errors.New("selector invalid")

	// ErrRangeUnsupported indicates a range the variant cannot describe.
	ErrRangeUnsupported = errors.New("range unsupported")

	// ErrRangeNotFound indicates that a search found no matching location.
	ErrRangeNotFound = errors.New("range not found")
)

// Options are passed through to every Anchor call.
type Options struct {
	// Hint is the expected start offset of the target, used by Quote to
	// prefer nearby matches. Only meaningful when HasHint is set.
	Hint    int
	HasHint bool

	// IgnoreSelector is an XPath expression; elements it selects are never
	// used as Range containers.
	IgnoreSelector string
}

// Anchor is a resolver instance bound to one document.
type Anchor interface {
	ToRange(opts Options) (dom.Range, error)
	ToSelector(opts Options) (selector.Selector, error)
}

// Variant constructs Anchors of one selector kind.
type Variant interface {
	Kind() selector.Kind
	FromSelector(doc *dom.Document, sel selector.Selector) (Anchor, error)
	FromRange(doc *dom.Document, r dom.Range) (Anchor, error)
}

// Variants returns the built-in variants in anchoring priority order.
func Variants() []Variant {
	return []Variant{Range{}, Position{}, Quote{}}
}

func checkRange(doc *dom.Document, r dom.Range) error {
	if r.IsZero() || r.Document() != doc {
		return errors.Join(ErrRangeUnsupported, dom.ErrForeignNode)
	}
	return nil
}
