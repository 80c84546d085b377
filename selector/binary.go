package selector

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// binaryVersion is bumped whenever the packed layout changes.
const binaryVersion = 1

type packedSet struct {
	Version   uint8    `msgpack:"v"`
	Selectors []packed `msgpack:"s"`
}

// packed is the compact form of one selector. Field meaning depends on Kind:
// A/B hold containers for ranges, exact/prefix for quotes, or the type name
// for unknown selectors.
type packed struct {
	Kind  uint8  `msgpack:"k"`
	A     string `msgpack:"a,omitempty"`
	B     string `msgpack:"b,omitempty"`
	C     string `msgpack:"c,omitempty"`
	Start uint32 `msgpack:"o,omitempty"`
	End   uint32 `msgpack:"e,omitempty"`
	Raw   []byte `msgpack:"r,omitempty"`
}

// EncodeSet writes the set to w in the compact binary form.
func EncodeSet(w io.Writer, s Set) error {
	ps := packedSet{Version: binaryVersion, Selectors: make([]packed, 0, len(s))}
	for i, sel := range s {
		p, err := pack(sel)
		if err != nil {
			return fmt.Errorf("selector %d: %w", i, err)
		}
		ps.Selectors = append(ps.Selectors, p)
	}
	return msgpack.NewEncoder(w).Encode(&ps)
}

// DecodeSet reads a set written by EncodeSet.
func DecodeSet(r io.Reader) (Set, error) {
	var ps packedSet
	if err := msgpack.NewDecoder(r).Decode(&ps); err != nil {
		return nil, fmt.Errorf("decoding selector set: %w", err)
	}
	if ps.Version != binaryVersion {
		return nil, fmt.Errorf("unsupported selector set version %d", ps.Version)
	}
	out := make(Set, 0, len(ps.Selectors))
	for i, p := range ps.Selectors {
		sel, err := unpack(p)
		if err != nil {
			return nil, fmt.Errorf("selector %d: %w", i, err)
		}
		out = append(out, sel)
	}
	return out, nil
}

func pack(sel Selector) (packed, error) {
	switch v := sel.(type) {
	case Range:
		start, err := offset(v.StartOffset)
		if err != nil {
			return packed{}, err
		}
		end, err := offset(v.EndOffset)
		if err != nil {
			return packed{}, err
		}
		return packed{Kind: uint8(KindRange), A: v.StartContainer, B: v.EndContainer, Start: start, End: end}, nil
	case TextPosition:
		start, err := offset(v.Start)
		if err != nil {
			return packed{}, err
		}
		end, err := offset(v.End)
		if err != nil {
			return packed{}, err
		}
		return packed{Kind: uint8(KindTextPosition), Start: start, End: end}, nil
	case TextQuote:
		return packed{Kind: uint8(KindTextQuote), A: v.Exact, B: v.Prefix, C: v.Suffix}, nil
	case Unknown:
		return packed{Kind: uint8(KindUnknown), A: v.Type, Raw: v.Raw}, nil
	default:
		return packed{}, fmt.Errorf("%w: cannot encode %T", ErrInvalid, sel)
	}
}

func unpack(p packed) (Selector, error) {
	switch Kind(p.Kind) {
	case KindRange:
		return Range{StartContainer: p.A, StartOffset: int(p.Start), EndContainer: p.B, EndOffset: int(p.End)}, nil
	case KindTextPosition:
		return TextPosition{Start: int(p.Start), End: int(p.End)}, nil
	case KindTextQuote:
		return TextQuote{Exact: p.A, Prefix: p.B, Suffix: p.C}, nil
	case KindUnknown:
		return Unknown{Type: p.A, Raw: p.Raw}, nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrInvalid, p.Kind)
	}
}

func offset(v int) (uint32, error) {
	u, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, fmt.Errorf("%w: offset %d out of range", ErrInvalid, v)
	}
	return u, nil
}
