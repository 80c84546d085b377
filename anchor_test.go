package anchorage

import (
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/anchorage/dom"
	"github.com/tsawler/anchorage/internal/testutil/testlog"
	"github.com/tsawler/anchorage/selector"
	"github.com/tsawler/anchorage/strategy"
)

// Text layer: "hello worldtext 2hello world"
//
//	p-1  0..11  "hello world"
//	p-2 11..17  "text 2"
//	p-3 17..28  "hello world"
const fixture = `<html><body><p id="p-1">hello world</p><p id="p-2">text 2</p><p id="p-3">hello world</p></body></html>`

func mustParse(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(fixture)
	if err != nil {
		t.Fatalf("ParseString() failed: %v", err)
	}
	return doc
}

func mustRange(t *testing.T, doc *dom.Document, start, end int) dom.Range {
	t.Helper()
	r, err := doc.Range(start, end)
	if err != nil {
		t.Fatalf("Range(%d, %d) failed: %v", start, end, err)
	}
	return r
}

func assertRange(t *testing.T, r dom.Range, start, end int) {
	t.Helper()
	if r.Start() != start || r.End() != end {
		t.Errorf("range = [%d, %d), want [%d, %d)", r.Start(), r.End(), start, end)
	}
}

// fake is a scripted strategy that records how it was called.
type fake struct {
	kind  selector.Kind
	log   *[]string
	hints *[]int
	start int
	end   int
	fail  bool
}

type fakeAnchor struct {
	f   *fake
	doc *dom.Document
}

func (f *fake) Kind() selector.Kind { return f.kind }

func (f *fake) FromSelector(doc *dom.Document, _ selector.Selector) (strategy.Anchor, error) {
	return &fakeAnchor{f: f, doc: doc}, nil
}

func (f *fake) FromRange(doc *dom.Document, _ dom.Range) (strategy.Anchor, error) {
	return &fakeAnchor{f: f, doc: doc}, nil
}

func (a *fakeAnchor) ToRange(opts strategy.Options) (dom.Range, error) {
	*a.f.log = append(*a.f.log, a.f.kind.String())
	if a.f.hints != nil {
		*a.f.hints = append(*a.f.hints, opts.Hint)
	}
	if a.f.fail {
		return dom.Range{}, strategy.ErrRangeNotFound
	}
	return a.doc.Range(a.f.start, a.f.end)
}

func (a *fakeAnchor) ToSelector(strategy.Options) (selector.Selector, error) {
	return nil, strategy.ErrRangeUnsupported
}

func fakes(log *[]string, rng, pos, quote *fake) Option {
	for _, f := range []*fake{rng, pos, quote} {
		f.log = log
	}
	rng.kind = selector.KindRange
	pos.kind = selector.KindTextPosition
	quote.kind = selector.KindTextQuote
	return WithVariants(quote, rng, pos)
}

func TestAnchor_RangeVerifiedByQuote(t *testing.T) {
	doc := mustParse(t)

	// The quote alone would resolve to the first occurrence.
	sels := []selector.Selector{
		selector.Range{StartContainer: "/p[3]", StartOffset: 0, EndContainer: "/p[3]", EndOffset: 11},
		selector.TextQuote{Exact: "hello world"},
	}

	r, err := Anchor(doc, sels, WithLogger(testlog.New(t)))
	if err != nil {
		t.Fatalf("Anchor() failed: %v", err)
	}
	assertRange(t, r, 17, 28)
}

func TestAnchor_QuoteMismatchFallsBack(t *testing.T) {
	doc := mustParse(t)
	stale := selector.Range{StartContainer: "/p[2]", StartOffset: 0, EndContainer: "/p[2]", EndOffset: 6}

	t.Run("to position", func(t *testing.T) {
		sels := []selector.Selector{
			stale,
			selector.TextPosition{Start: 17, End: 28},
			selector.TextQuote{Exact: "hello world"},
		}
		r, err := Anchor(doc, sels)
		if err != nil {
			t.Fatalf("Anchor() failed: %v", err)
		}
		assertRange(t, r, 17, 28)
	})

	t.Run("to quote", func(t *testing.T) {
		sels := []selector.Selector{
			stale,
			selector.TextQuote{Exact: "hello world", Prefix: "text 2"},
		}
		r, err := Anchor(doc, sels)
		if err != nil {
			t.Fatalf("Anchor() failed: %v", err)
		}
		assertRange(t, r, 17, 28)
	})
}

func TestAnchor_MismatchIsLogged(t *testing.T) {
	doc := mustParse(t)
	logger, rec := testlog.NewRecorder()

	sels := []selector.Selector{
		selector.TextPosition{Start: 11, End: 17},
		selector.TextQuote{Exact: "hello world", Prefix: "text 2"},
	}
	if _, err := Anchor(doc, sels, WithLogger(logger)); err != nil {
		t.Fatalf("Anchor() failed: %v", err)
	}

	if !rec.Contains("strategy failed", ErrQuoteMismatch.Error()) {
		t.Errorf("no quote mismatch logged, got %q", rec.Lines())
	}
}

func TestAnchor_BrokenRangeFallsBackToQuote(t *testing.T) {
	doc := mustParse(t)
	sels := []selector.Selector{
		selector.Range{StartContainer: "/p[3]", StartOffset: 0, EndContainer: "/p[3]", EndOffset: 500},
		selector.TextQuote{Exact: "hello world", Prefix: "text 2"},
	}

	r, err := Anchor(doc, sels)
	if err != nil {
		t.Fatalf("Anchor() failed: %v", err)
	}
	assertRange(t, r, 17, 28)
}

func TestAnchor_Exhausted(t *testing.T) {
	doc := mustParse(t)

	tests := []struct {
		name string
		sels []selector.Selector
	}{
		{"quote absent", []selector.Selector{selector.TextQuote{Exact: "zzzzzzzzzz"}}},
		{"unknown only", []selector.Selector{selector.Unknown{Type: "FragmentSelector"}}},
		{"position out of bounds", []selector.Selector{selector.TextPosition{Start: 20, End: 40}}},
		{"empty quote", []selector.Selector{selector.TextQuote{}}},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Anchor(doc, tt.sels)
			if !errors.Is(err, ErrAnchorExhausted) {
				t.Errorf("Anchor() error = %v, want ErrAnchorExhausted", err)
			}
		})
	}
}

func TestAnchor_EmptySetInvokesNothing(t *testing.T) {
	doc := mustParse(t)
	var calls []string
	opt := fakes(&calls, &fake{}, &fake{}, &fake{})

	_, err := Anchor(doc, []selector.Selector{}, opt)
	if !errors.Is(err, ErrAnchorExhausted) {
		t.Fatalf("Anchor() error = %v, want ErrAnchorExhausted", err)
	}
	if len(calls) != 0 {
		t.Errorf("strategies invoked: %v", calls)
	}
}

func TestAnchor_SequentialOrder(t *testing.T) {
	doc := mustParse(t)
	all := []selector.Selector{
		selector.TextQuote{Exact: "text 2"},
		selector.TextPosition{Start: 11, End: 17},
		selector.Range{StartContainer: "/p[2]", EndContainer: "/p[2]", EndOffset: 6},
	}

	t.Run("stops at first success", func(t *testing.T) {
		var calls []string
		opt := fakes(&calls, &fake{fail: true}, &fake{start: 11, end: 17}, &fake{start: 11, end: 17})
		if _, err := Anchor(doc, all, opt); err != nil {
			t.Fatalf("Anchor() failed: %v", err)
		}
		want := []string{selector.TypeRange, selector.TypeTextPosition}
		if strings.Join(calls, ",") != strings.Join(want, ",") {
			t.Errorf("calls = %v, want %v", calls, want)
		}
	})

	t.Run("skips absent kinds", func(t *testing.T) {
		var calls []string
		opt := fakes(&calls, &fake{}, &fake{}, &fake{start: 11, end: 17})
		sels := []selector.Selector{selector.TextQuote{Exact: "text 2"}}
		if _, err := Anchor(doc, sels, opt); err != nil {
			t.Fatalf("Anchor() failed: %v", err)
		}
		if len(calls) != 1 || calls[0] != selector.TypeTextQuote {
			t.Errorf("calls = %v, want [%s]", calls, selector.TypeTextQuote)
		}
	})

	t.Run("all fail", func(t *testing.T) {
		var calls []string
		opt := fakes(&calls, &fake{fail: true}, &fake{fail: true}, &fake{fail: true})
		_, err := Anchor(doc, all, opt)
		if !errors.Is(err, ErrAnchorExhausted) {
			t.Fatalf("Anchor() error = %v, want ErrAnchorExhausted", err)
		}
		if len(calls) != 3 {
			t.Errorf("calls = %v, want all three", calls)
		}
	})
}

func TestAnchor_QuoteStrategyNotVerified(t *testing.T) {
	doc := mustParse(t)
	var calls []string
	// The scripted quote strategy returns "text 2" for a quote of "hello".
	opt := fakes(&calls, &fake{}, &fake{}, &fake{start: 11, end: 17})

	r, err := Anchor(doc, []selector.Selector{selector.TextQuote{Exact: "hello"}}, opt)
	if err != nil {
		t.Fatalf("Anchor() failed: %v", err)
	}
	assertRange(t, r, 11, 17)
}

func TestAnchor_EmptyExactSkipsVerification(t *testing.T) {
	doc := mustParse(t)
	sels := []selector.Selector{
		selector.TextPosition{Start: 11, End: 17},
		selector.TextQuote{},
	}

	r, err := Anchor(doc, sels)
	if err != nil {
		t.Fatalf("Anchor() failed: %v", err)
	}
	assertRange(t, r, 11, 17)
}

func TestAnchor_HintFromPosition(t *testing.T) {
	doc := mustParse(t)
	var calls []string
	var hints []int
	quote := &fake{kind: selector.KindTextQuote, log: &calls, hints: &hints, start: 0, end: 5}

	// The position selector is beyond the text, so only the quote strategy
	// gets to run.
	opt := WithVariants(strategy.Range{}, strategy.Position{}, quote)

	sels := []selector.Selector{
		selector.TextPosition{Start: 42, End: 50},
		selector.TextQuote{Exact: "hello"},
	}
	if _, err := Anchor(doc, sels, opt, WithHint(3)); err != nil {
		t.Fatalf("Anchor() failed: %v", err)
	}
	if len(hints) != 1 || hints[0] != 42 {
		t.Errorf("hints = %v, want [42]", hints)
	}
}

func TestAnchor_HintPrefersNearestQuote(t *testing.T) {
	doc := mustParse(t)
	sels := []selector.Selector{selector.TextQuote{Exact: "hello world"}}

	r, err := Anchor(doc, sels, WithHint(20))
	if err != nil {
		t.Fatalf("Anchor() failed: %v", err)
	}
	assertRange(t, r, 17, 28)

	r, err = Anchor(doc, sels)
	if err != nil {
		t.Fatalf("Anchor() failed: %v", err)
	}
	assertRange(t, r, 0, 11)
}

func TestAnchor_DuplicateKindLastWins(t *testing.T) {
	doc := mustParse(t)
	sels := []selector.Selector{
		selector.TextPosition{Start: 0, End: 5},
		selector.TextPosition{Start: 11, End: 17},
	}

	r, err := Anchor(doc, sels)
	if err != nil {
		t.Fatalf("Anchor() failed: %v", err)
	}
	assertRange(t, r, 11, 17)
}

func TestAnchor_InvalidOptions(t *testing.T) {
	doc := mustParse(t)
	sels := []selector.Selector{selector.TextPosition{Start: 0, End: 5}}

	tests := []struct {
		name string
		opt  Option
	}{
		{"negative hint", WithHint(-1)},
		{"bad ignore selector", WithIgnoreSelector("//[")},
		{"missing variant", WithVariants(strategy.Range{}, strategy.Position{})},
		{"duplicate variant", WithVariants(strategy.Range{}, strategy.Position{}, strategy.Position{})},
		{"zero concurrency", WithConcurrency(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Anchor(doc, sels, tt.opt)
			if !errors.Is(err, ErrInvalidOption) {
				t.Errorf("Anchor() error = %v, want ErrInvalidOption", err)
			}
		})
	}
}

func TestAnchor_NilDocument(t *testing.T) {
	_, err := Anchor(nil, []selector.Selector{selector.TextPosition{Start: 0, End: 1}})
	if !errors.Is(err, ErrInvalidOption) {
		t.Errorf("Anchor(nil) error = %v, want ErrInvalidOption", err)
	}
}
