package search

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Default cutoffs for approximate matching.
const (
	DefaultFallbackCutoff = 0.4
	DefaultSuggestCutoff  = 0.3
)

// Ratio returns the sequence-matcher similarity of a and b in [0, 1],
// computed over runes as 2*M/T where M is the number of matched runes and T
// the total rune count of both strings.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// CloseMatches returns up to n candidates whose similarity to query is at
// least cutoff, best first. Score.Doc is the candidate position; ties keep
// candidate order. No match, n <= 0 or no candidates yield an empty slice.
func CloseMatches(query string, candidates []string, n int, cutoff float64) []Score {
	if n <= 0 || len(candidates) == 0 {
		return []Score{}
	}

	if cutoff < 0 {
		cutoff = 0
	} else if cutoff > 1 {
		cutoff = 1
	}

	// The query is the cached second sequence; candidates rotate through
	// the first.
	matcher := difflib.NewMatcher(nil, runes(query))

	matches := make([]Score, 0)
	for i, candidate := range candidates {
		matcher.SetSeq1(runes(candidate))

		// Cheap upper bounds first
		if matcher.RealQuickRatio() < cutoff || matcher.QuickRatio() < cutoff {
			continue
		}
		if ratio := matcher.Ratio(); ratio >= cutoff {
			matches = append(matches, Score{Doc: i, Score: ratio})
		}
	}

	sortScores(matches)
	return truncate(matches, n)
}

// runes splits s into one-rune strings for the sequence matcher.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
