package search

import "sort"

// Score is a ranked document position with its relevance score.
type Score struct {
	// Doc is the position of the document in the indexed corpus.
	Doc int `json:"doc"`

	// Score is the relevance score (cosine, ratio or BM25 depending on source).
	Score float64 `json:"score"`
}

// sortScores orders scores by descending value, breaking ties by corpus order.
func sortScores(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Doc < scores[j].Doc
	})
}

// truncate returns at most n scores; n <= 0 keeps all.
func truncate(scores []Score, n int) []Score {
	if n > 0 && len(scores) > n {
		return scores[:n]
	}
	return scores
}
