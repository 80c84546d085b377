package selector

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalid is returned when a selector's stored data is structurally unusable.
var ErrInvalid = errors.New("invalid selector")

// Kind identifies a selector variant.
type Kind int

const (
	// KindUnknown marks a selector type this package does not interpret.
	KindUnknown Kind = iota
	// KindRange identifies a RangeSelector.
	KindRange
	// KindTextPosition identifies a TextPositionSelector.
	KindTextPosition
	// KindTextQuote identifies a TextQuoteSelector.
	KindTextQuote
)

// Wire type names.
const (
	TypeRange        = "RangeSelector"
	TypeTextPosition = "TextPositionSelector"
	TypeTextQuote    = "TextQuoteSelector"
)

// String returns the wire type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRange:
		return TypeRange
	case KindTextPosition:
		return TypeTextPosition
	case KindTextQuote:
		return TypeTextQuote
	default:
		return "Unknown"
	}
}

// KindOf maps a wire type name to its Kind.
func KindOf(typ string) Kind {
	switch typ {
	case TypeRange:
		return KindRange
	case TypeTextPosition:
		return KindTextPosition
	case TypeTextQuote:
		return KindTextQuote
	default:
		return KindUnknown
	}
}

// Selector is one of Range, TextPosition, TextQuote or Unknown.
type Selector interface {
	Kind() Kind
	selector()
}

// Range describes a location structurally. Containers are XPath expressions
// relative to the anchoring root; offsets count code points of the
// container's text content.
type Range struct {
	StartContainer string
	StartOffset    int
	EndContainer   string
	EndOffset      int
}

// TextPosition describes a location as code point offsets into the
// document's text layer. End is exclusive.
type TextPosition struct {
	Start int
	End   int
}

// TextQuote describes a location by its text and surrounding context.
type TextQuote struct {
	Exact  string
	Prefix string
	Suffix string
}

// Unknown holds a selector of a type this package does not interpret.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (Range) Kind() Kind        { return KindRange }
func (TextPosition) Kind() Kind { return KindTextPosition }
func (TextQuote) Kind() Kind    { return KindTextQuote }
func (Unknown) Kind() Kind      { return KindUnknown }

func (Range) selector()        {}
func (TextPosition) selector() {}
func (TextQuote) selector()    {}
func (Unknown) selector()      {}

// Validate checks the structural sanity of a selector without reference to
// any document. Unknown selectors are always valid.
func Validate(s Selector) error {
	switch v := s.(type) {
	case Range:
		if v.StartOffset < 0 || v.EndOffset < 0 {
			return fmt.Errorf("%w: negative range offset", ErrInvalid)
		}
	case TextPosition:
		if v.Start < 0 || v.End < 0 {
			return fmt.Errorf("%w: negative position", ErrInvalid)
		}
		if v.Start > v.End {
			return fmt.Errorf("%w: position start %d after end %d", ErrInvalid, v.Start, v.End)
		}
	case TextQuote:
		if v.Exact == "" {
			return fmt.Errorf("%w: empty quote", ErrInvalid)
		}
	case Unknown:
	case nil:
		return fmt.Errorf("%w: nil selector", ErrInvalid)
	}
	return nil
}
