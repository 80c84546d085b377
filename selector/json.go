package selector

import (
	"encoding/json"
	"fmt"
)

type rangeWire struct {
	Type           string `json:"type"`
	StartContainer string `json:"startContainer"`
	StartOffset    int    `json:"startOffset"`
	EndContainer   string `json:"endContainer"`
	EndOffset      int    `json:"endOffset"`
}

type positionWire struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type quoteWire struct {
	Type   string `json:"type"`
	Exact  string `json:"exact"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

// Marshal encodes a selector in its JSON wire shape.
func Marshal(s Selector) ([]byte, error) {
	switch v := s.(type) {
	case Range:
		return json.Marshal(rangeWire{
			Type:           TypeRange,
			StartContainer: v.StartContainer,
			StartOffset:    v.StartOffset,
			EndContainer:   v.EndContainer,
			EndOffset:      v.EndOffset,
		})
	case TextPosition:
		return json.Marshal(positionWire{Type: TypeTextPosition, Start: v.Start, End: v.End})
	case TextQuote:
		return json.Marshal(quoteWire{Type: TypeTextQuote, Exact: v.Exact, Prefix: v.Prefix, Suffix: v.Suffix})
	case Unknown:
		if len(v.Raw) == 0 {
			return json.Marshal(struct {
				Type string `json:"type"`
			}{v.Type})
		}
		return append(json.RawMessage(nil), v.Raw...), nil
	default:
		return nil, fmt.Errorf("%w: cannot marshal %T", ErrInvalid, s)
	}
}

// Unmarshal decodes a single selector from its JSON wire shape. Selectors of
// an unrecognised type decode to Unknown.
func Unmarshal(data []byte) (Selector, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decoding selector: %w", err)
	}
	if head.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrInvalid)
	}

	switch KindOf(head.Type) {
	case KindRange:
		var w rangeWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", head.Type, err)
		}
		return Range{
			StartContainer: w.StartContainer,
			StartOffset:    w.StartOffset,
			EndContainer:   w.EndContainer,
			EndOffset:      w.EndOffset,
		}, nil
	case KindTextPosition:
		var w positionWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", head.Type, err)
		}
		return TextPosition{Start: w.Start, End: w.End}, nil
	case KindTextQuote:
		var w quoteWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", head.Type, err)
		}
		return TextQuote{Exact: w.Exact, Prefix: w.Prefix, Suffix: w.Suffix}, nil
	default:
		return Unknown{Type: head.Type, Raw: append(json.RawMessage(nil), data...)}, nil
	}
}

// Set is an unordered collection of selectors as stored with an annotation.
type Set []Selector

// MarshalJSON encodes the set as a JSON array of wire selectors.
func (s Set) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(s))
	for i, sel := range s {
		b, err := Marshal(sel)
		if err != nil {
			return nil, fmt.Errorf("selector %d: %w", i, err)
		}
		raw = append(raw, b)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes a JSON array of wire selectors.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding selector set: %w", err)
	}
	out := make(Set, 0, len(raw))
	for i, r := range raw {
		sel, err := Unmarshal(r)
		if err != nil {
			return fmt.Errorf("selector %d: %w", i, err)
		}
		out = append(out, sel)
	}
	*s = out
	return nil
}

// Find returns the last selector of the given kind in the set, mirroring the
// last-one-wins rule anchoring applies.
func (s Set) Find(k Kind) (Selector, bool) {
	var found Selector
	for _, sel := range s {
		if sel != nil && sel.Kind() == k {
			found = sel
		}
	}
	return found, found != nil
}
