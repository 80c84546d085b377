package match

import (
	"sort"

	"golang.org/x/text/cases"
)

// Score weights for Quote.
const (
	quoteWeight    = 50.0
	prefixWeight   = 20.0
	suffixWeight   = 20.0
	positionWeight = 2.0
)

// maxQuoteErrors caps the edit distance tolerated for long quotes.
const maxQuoteErrors = 256

// Context is the surrounding information used to rank quote candidates.
type Context struct {
	Prefix string
	Suffix string

	// Hint is the expected start offset of the quote, used when HasHint is set.
	Hint    int
	HasHint bool
}

// Result is the best-ranked location of a quote. Score is normalised to
// the range [0, 1].
type Result struct {
	Match
	Score float64
}

// Quote finds the location in text that best matches quote and its context.
// It reports false when no candidate is within min(256, len(quote)/2) edits.
func Quote(text, quote string, ctx Context) (Result, bool) {
	t := []rune(text)
	q := []rune(quote)
	if len(q) == 0 {
		return Result{}, false
	}

	maxErrors := min(maxQuoteErrors, len(q)/2)
	matches := Search(t, q, maxErrors)
	if len(matches) == 0 {
		return Result{}, false
	}

	prefix := []rune(ctx.Prefix)
	suffix := []rune(ctx.Suffix)

	scored := make([]Result, 0, len(matches))
	for _, m := range matches {
		quoteScore := 1 - float64(m.Errors)/float64(len(q))

		prefixScore := 1.0
		if len(prefix) > 0 {
			before := t[max(0, m.Start-len(prefix)):m.Start]
			prefixScore = similarity(before, prefix)
		}

		suffixScore := 1.0
		if len(suffix) > 0 {
			after := t[m.End:min(len(t), m.End+len(suffix))]
			suffixScore = similarity(after, suffix)
		}

		positionScore := 1.0
		if ctx.HasHint {
			offset := m.Start - ctx.Hint
			if offset < 0 {
				offset = -offset
			}
			positionScore = 1 - float64(offset)/float64(len(t))
		}

		raw := quoteWeight*quoteScore + prefixWeight*prefixScore +
			suffixWeight*suffixScore + positionWeight*positionScore
		scored = append(scored, Result{
			Match: m,
			Score: raw / (quoteWeight + prefixWeight + suffixWeight + positionWeight),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored[0], true
}

// similarity scores how closely str occurs in text, ignoring case: 1 for an
// exact occurrence, 0 when nothing of str survives.
func similarity(text, str []rune) float64 {
	if len(text) == 0 || len(str) == 0 {
		return 0
	}
	fold := cases.Fold()
	t := []rune(fold.String(string(text)))
	s := []rune(fold.String(string(str)))
	if len(s) == 0 {
		return 0
	}
	return 1 - float64(MinErrors(t, s))/float64(len(s))
}
