package search

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// vector is a sparse term-weight vector keyed by vocabulary position.
type vector map[int]float64

// Index is a TF-IDF vector space over a fixed set of documents.
//
// The index is immutable once built; a changed corpus needs a new Build.
type Index struct {
	vocabulary map[string]int
	idf        []float64
	docs       []vector
}

// Build constructs an index with one vector per text, in input order.
//
// Weights are raw term counts scaled by the smoothed inverse document
// frequency ln((1+N)/(1+df))+1, then L2-normalized. Building over no texts
// yields an index that answers every query with no results.
func Build(texts []string) *Index {
	tokenized := make([][]string, len(texts))
	df := make(map[string]int)
	for i, text := range texts {
		tokens := tokenize(text)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Stable vocabulary ordering
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	idx := &Index{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		docs:       make([]vector, len(texts)),
	}

	n := float64(len(texts))
	for i, term := range terms {
		idx.vocabulary[term] = i
		idx.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	for i, tokens := range tokenized {
		idx.docs[i] = idx.weigh(tokens)
	}

	return idx
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.docs)
}

// VocabularySize returns the number of distinct terms seen at build time.
func (idx *Index) VocabularySize() int {
	return len(idx.vocabulary)
}

// Query scores every document against text and returns the topN best,
// sorted by descending cosine similarity with ties in corpus order.
// topN <= 0 returns all documents.
func (idx *Index) Query(text string, topN int) []Score {
	return idx.QueryFunc(text, topN, nil)
}

// QueryFunc is Query restricted to documents for which keep returns true.
// A nil keep considers every document.
func (idx *Index) QueryFunc(text string, topN int, keep func(doc int) bool) []Score {
	if len(idx.docs) == 0 {
		return []Score{}
	}

	q := idx.weigh(tokenize(text))

	scores := make([]Score, 0, len(idx.docs))
	for i, doc := range idx.docs {
		if keep != nil && !keep(i) {
			continue
		}
		scores = append(scores, Score{Doc: i, Score: cosineSimilarity(q, doc)})
	}

	sortScores(scores)
	return truncate(scores, topN)
}

// weigh converts tokens to an L2-normalized TF-IDF vector.
// Terms outside the vocabulary contribute nothing.
func (idx *Index) weigh(tokens []string) vector {
	v := make(vector)
	for _, tok := range tokens {
		if pos, ok := idx.vocabulary[tok]; ok {
			v[pos]++
		}
	}

	var norm float64
	for pos, count := range v {
		w := count * idx.idf[pos]
		v[pos] = w
		norm += w * w
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for pos := range v {
			v[pos] /= norm
		}
	}

	return v
}

// tokenize lower-cases normalized text and keeps tokens of two or more runes.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(Normalize(text)))
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// cosineSimilarity computes cosine similarity between two sparse vectors.
func cosineSimilarity(a, b vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	// Iterate over the smaller vector
	if len(a) > len(b) {
		a, b = b, a
	}

	var dotProduct, normA, normB float64
	for pos, w := range a {
		dotProduct += w * b[pos]
		normA += w * w
	}
	for _, w := range b {
		normB += w * w
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
