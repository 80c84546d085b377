package match

import "sort"

// Match is an approximate occurrence of a pattern: the span [Start, End) of
// the searched text and the number of edits separating it from the pattern.
type Match struct {
	Start  int
	End    int
	Errors int
}

// Search returns the non-overlapping occurrences of pattern in text that are
// at most maxErrors edits away, ordered by position. Where candidates
// overlap the one with fewer errors wins, then the earlier one.
func Search(text, pattern []rune, maxErrors int) []Match {
	if len(pattern) == 0 || len(text) == 0 || maxErrors < 0 {
		return nil
	}

	candidates := sellers(text, pattern, maxErrors)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Errors != candidates[j].Errors {
			return candidates[i].Errors < candidates[j].Errors
		}
		return candidates[i].Start < candidates[j].Start
	})

	taken := make([]bool, len(text))
	var out []Match
	for _, c := range candidates {
		if overlaps(taken, c) {
			continue
		}
		for k := c.Start; k < c.End; k++ {
			taken[k] = true
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func overlaps(taken []bool, m Match) bool {
	for k := m.Start; k < m.End; k++ {
		if taken[k] {
			return true
		}
	}
	return false
}

// sellers runs the Sellers edit distance recurrence column by column,
// carrying the start offset of the best alignment for each cell.
func sellers(text, pattern []rune, maxErrors int) []Match {
	m := len(pattern)
	dist := make([]int, m+1)
	from := make([]int, m+1)
	next := make([]int, m+1)
	nextFrom := make([]int, m+1)
	for i := range dist {
		dist[i] = i
	}

	var out []Match
	for j := 1; j <= len(text); j++ {
		ch := text[j-1]
		next[0], nextFrom[0] = 0, j
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == ch {
				cost = 0
			}
			best, start := dist[i-1]+cost, from[i-1]
			if v := dist[i] + 1; v < best {
				best, start = v, from[i]
			}
			if v := next[i-1] + 1; v < best {
				best, start = v, nextFrom[i-1]
			}
			next[i], nextFrom[i] = best, start
		}
		if next[m] <= maxErrors && nextFrom[m] < j {
			out = append(out, Match{Start: nextFrom[m], End: j, Errors: next[m]})
		}
		dist, next = next, dist
		from, nextFrom = nextFrom, from
	}
	return out
}

// MinErrors returns the smallest number of edits between pattern and any
// substring of text.
func MinErrors(text, pattern []rune) int {
	m := len(pattern)
	if m == 0 {
		return 0
	}
	dist := make([]int, m+1)
	next := make([]int, m+1)
	for i := range dist {
		dist[i] = i
	}

	best := dist[m]
	for _, ch := range text {
		next[0] = 0
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == ch {
				cost = 0
			}
			next[i] = min(dist[i-1]+cost, dist[i]+1, next[i-1]+1)
		}
		best = min(best, next[m])
		dist, next = next, dist
	}
	return best
}
