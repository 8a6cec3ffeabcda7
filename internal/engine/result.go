package engine

import "github.com/alywork/lawdesk/internal/corpus"

// Strategies that can produce a Result.
const (
	StrategySubstring  = "substring"
	StrategySimilarity = "similarity"
	StrategyFuzzy      = "fuzzy"
	StrategyNoData     = "no_data"
	StrategyNoResult   = "no_result"
)

// Sentinel answers.
const (
	NoDataAnswer   = "لا توجد بيانات"
	NoResultAnswer = "لا توجد نتائج مطابقة للبحث."
)

// Hit is a ranked article.
type Hit struct {
	Article corpus.Article `json:"article"`

	// Position is the article's index in corpus order.
	Position int `json:"position"`

	// Score is the strategy's relevance score. Substring hits score 1.
	Score float64 `json:"score"`
}

// Result is the answer to a search.
//
// Answer, Reference and Example come from the first hit. For the
// no_data and no_result strategies Answer holds the sentinel text,
// Reference and Example are empty, and Hits is empty.
type Result struct {
	Answer    string `json:"answer"`
	Reference string `json:"reference"`
	Example   string `json:"example"`
	Strategy  string `json:"strategy"`
	Hits      []Hit  `json:"hits"`
}

// Found reports whether any strategy produced a hit.
func (r Result) Found() bool {
	return len(r.Hits) > 0
}

func sentinel(strategy, answer string) Result {
	return Result{Answer: answer, Strategy: strategy, Hits: []Hit{}}
}

func answered(strategy string, hits []Hit) Result {
	first := hits[0].Article
	return Result{
		Answer:    first.Text,
		Reference: first.Reference(),
		Example:   first.Example,
		Strategy:  strategy,
		Hits:      hits,
	}
}
