package anchorage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tsawler/anchorage/internal/testutil/testlog"
	"github.com/tsawler/anchorage/selector"
)

func TestAnchorAll(t *testing.T) {
	doc := mustParse(t)
	logger, rec := testlog.NewRecorder()

	targets := []selector.Target{
		selector.NewTarget("doc.html", doc.Fingerprint(), selector.Set{
			selector.TextPosition{Start: 17, End: 28},
			selector.TextQuote{Exact: "hello world"},
		}),
		selector.NewTarget("doc.html", doc.Fingerprint(), selector.Set{
			selector.TextQuote{Exact: "zzzzzzzzzz"},
		}),
		selector.NewTarget("doc.html", "stale", selector.Set{
			selector.TextQuote{Exact: "text 2"},
		}),
	}

	results, err := AnchorAll(doc, targets, WithLogger(logger), WithConcurrency(2))
	if err != nil {
		t.Fatalf("AnchorAll() failed: %v", err)
	}
	if len(results) != len(targets) {
		t.Fatalf("AnchorAll() returned %d results, want %d", len(results), len(targets))
	}

	for i, r := range results {
		if r.Target.ID != targets[i].ID {
			t.Errorf("results[%d].Target.ID = %q, want %q", i, r.Target.ID, targets[i].ID)
		}
	}

	if results[0].Err != nil || results[0].Orphaned() {
		t.Errorf("results[0] = %v, want anchored", results[0].Err)
	}
	assertRange(t, results[0].Range, 17, 28)

	if !results[1].Orphaned() {
		t.Errorf("results[1].Orphaned() = false, err %v", results[1].Err)
	}

	if results[2].Err != nil {
		t.Errorf("results[2].Err = %v", results[2].Err)
	}
	assertRange(t, results[2].Range, 11, 17)

	if !rec.Contains(targets[2].ID, "document text changed") {
		t.Errorf("fingerprint mismatch not logged: %q", rec.Lines())
	}
	if rec.Contains(targets[0].ID, "document text changed") {
		t.Errorf("fingerprint mismatch logged for matching target")
	}
	if !rec.Contains(`"orphaned":1`) {
		t.Errorf("batch summary not logged: %q", rec.Lines())
	}
}

func TestAnchorAll_Many(t *testing.T) {
	doc := mustParse(t)

	targets := make([]selector.Target, 64)
	for i := range targets {
		start := i % 20
		targets[i] = selector.Target{
			ID:        fmt.Sprintf("t%d", i),
			Selectors: selector.Set{selector.TextPosition{Start: start, End: start + 5}},
		}
	}

	results, err := AnchorAll(doc, targets, WithConcurrency(8))
	if err != nil {
		t.Fatalf("AnchorAll() failed: %v", err)
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("results[%d].Err = %v", i, r.Err)
		}
		if r.Range.Start() != i%20 {
			t.Errorf("results[%d].Range.Start() = %d, want %d", i, r.Range.Start(), i%20)
		}
	}
}

func TestAnchorAll_Empty(t *testing.T) {
	results, err := AnchorAll(mustParse(t), nil)
	if err != nil {
		t.Fatalf("AnchorAll() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("AnchorAll(nil) = %v, want no results", results)
	}
}

func TestAnchorAll_InvalidOption(t *testing.T) {
	_, err := AnchorAll(mustParse(t), nil, WithConcurrency(-1))
	if !errors.Is(err, ErrInvalidOption) {
		t.Errorf("AnchorAll() error = %v, want ErrInvalidOption", err)
	}
}

func TestResult_Orphaned(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrAnchorExhausted, true},
		{fmt.Errorf("target t1: %w", ErrAnchorExhausted), true},
		{ErrInvalidOption, false},
	}
	for _, tt := range tests {
		if got := (Result{Err: tt.err}).Orphaned(); got != tt.want {
			t.Errorf("Result{Err: %v}.Orphaned() = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestAnchorAll_NilDocument(t *testing.T) {
	targets := []selector.Target{{ID: "t1", Selectors: selector.Set{selector.TextPosition{Start: 0, End: 1}}}}

	for _, in := range [][]selector.Target{targets, nil} {
		results, err := AnchorAll(nil, in)
		if !errors.Is(err, ErrInvalidOption) {
			t.Errorf("AnchorAll(nil, %d targets) error = %v, want ErrInvalidOption", len(in), err)
		}
		if results != nil {
			t.Errorf("AnchorAll(nil, %d targets) = %v, want no results", len(in), results)
		}
	}
}
