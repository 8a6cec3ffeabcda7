/*
Package engine answers free-text questions against a corpus of legal articles.

An Engine is built once per corpus: the articles are loaded, a TF-IDF index
and a BM25 keyword index are built eagerly, and every later query runs
against those read-only structures. Search applies a layered policy:

 1. an empty corpus answers with the no_data sentinel;
 2. a section filter restricts the candidates before any ranking;
 3. a case-insensitive substring match over every field wins outright;
 4. otherwise TF-IDF cosine similarity ranks the candidates, where a best
    score of zero counts as no match;
 5. otherwise a fuzzy match against the article text is tried;
 6. otherwise the no_result sentinel is returned.

Per-query conditions are results, not errors. An Engine is safe for
concurrent use.
*/
package engine

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/alywork/lawdesk/internal/corpus"
	"github.com/alywork/lawdesk/internal/memory"
	"github.com/alywork/lawdesk/internal/search"
	"github.com/alywork/lawdesk/internal/storage"
	"github.com/google/uuid"
)

// Recorder receives one analytics record per answered query.
type Recorder interface {
	RecordSearch(rec storage.SearchRecord) error
}

// Options configures an Engine. Start from DefaultOptions and override.
// Counts <= 0 and negative cutoffs take their defaults; a cutoff of 0 is
// kept and accepts every candidate.
type Options struct {
	// DefaultTopN is the hit count used when a call passes topN <= 0.
	DefaultTopN int

	// FallbackCutoff is the minimum fuzzy ratio for a Search fallback hit.
	FallbackCutoff float64

	// SuggestCutoff is the minimum fuzzy ratio for a suggestion.
	SuggestCutoff float64

	// SuggestCount is the suggestion count used when Suggest gets n <= 0.
	SuggestCount int

	// Memory receives an interaction record from Answer. Optional.
	Memory memory.Store

	// Recorder receives an analytics record from Answer. Optional.
	Recorder Recorder
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		DefaultTopN:    1,
		FallbackCutoff: search.DefaultFallbackCutoff,
		SuggestCutoff:  search.DefaultSuggestCutoff,
		SuggestCount:   3,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.DefaultTopN <= 0 {
		o.DefaultTopN = def.DefaultTopN
	}
	if o.FallbackCutoff < 0 {
		o.FallbackCutoff = def.FallbackCutoff
	}
	if o.SuggestCutoff < 0 {
		o.SuggestCutoff = def.SuggestCutoff
	}
	if o.SuggestCount <= 0 {
		o.SuggestCount = def.SuggestCount
	}
	return o
}

// Engine is a retrieval engine bound to one corpus.
type Engine struct {
	articles []corpus.Article
	texts    []string
	index    *search.Index
	keywords *search.KeywordIndex
	opts     Options
	now      func() time.Time
}

// New builds an engine over articles. The slice is copied.
func New(articles []corpus.Article, opts Options) (*Engine, error) {
	owned := append([]corpus.Article{}, articles...)

	texts := make([]string, len(owned))
	for i, a := range owned {
		texts[i] = a.Text
	}

	keywords, err := search.NewKeywordIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword index: %w", err)
	}
	if err := keywords.IndexArticles(owned); err != nil {
		keywords.Close()
		return nil, fmt.Errorf("failed to index articles: %w", err)
	}

	return &Engine{
		articles: owned,
		texts:    texts,
		index:    search.Build(texts),
		keywords: keywords,
		opts:     opts.withDefaults(),
		now:      time.Now,
	}, nil
}

// Open loads the corpus at path and builds an engine over it.
// Load failures are returned as *corpus.LoadError.
func Open(path, sheet string, opts Options) (*Engine, error) {
	articles, err := corpus.Load(path, sheet)
	if err != nil {
		return nil, err
	}
	return New(articles, opts)
}

// Close releases the keyword index.
func (e *Engine) Close() error {
	return e.keywords.Close()
}

// Len returns the number of articles in the corpus.
func (e *Engine) Len() int {
	return len(e.articles)
}

// Articles returns a copy of the corpus in source order.
func (e *Engine) Articles() []corpus.Article {
	return append([]corpus.Article{}, e.articles...)
}

// Search answers query, optionally restricted to articles whose section
// contains section. topN <= 0 uses the configured default.
func (e *Engine) Search(query, section string, topN int) Result {
	if len(e.articles) == 0 {
		return sentinel(StrategyNoData, NoDataAnswer)
	}
	if topN <= 0 {
		topN = e.opts.DefaultTopN
	}

	candidates := e.inSection(section)
	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 {
		return sentinel(StrategyNoResult, NoResultAnswer)
	}

	if hits := e.substringHits(query, candidates, topN); len(hits) > 0 {
		return answered(StrategySubstring, hits)
	}
	if hits := e.similarityHits(query, candidates, topN); len(hits) > 0 {
		return answered(StrategySimilarity, hits)
	}
	if hits := e.fuzzyHits(query, candidates, topN, e.opts.FallbackCutoff); len(hits) > 0 {
		return answered(StrategyFuzzy, hits)
	}

	return sentinel(StrategyNoResult, NoResultAnswer)
}

// Answer runs Search and records the interaction in the memory store and
// the analytics recorder. Recording failures are logged and never change
// the returned result.
func (e *Engine) Answer(query, section string, topN int) Result {
	res := e.Search(query, section, topN)

	if e.opts.Memory != nil {
		rec := memory.Record{
			Role:        memory.RoleAssistant,
			Query:       query,
			Response:    res.Answer,
			Reference:   res.Reference,
			Example:     res.Example,
			ContextTags: []string{},
		}
		if section != "" {
			rec.ContextTags = append(rec.ContextTags, section)
		}
		if _, err := e.opts.Memory.Append(rec); err != nil {
			log.Printf("Warning: failed to save interaction: %v", err)
		}
	}

	if e.opts.Recorder != nil {
		rec := storage.SearchRecord{
			SearchID:     uuid.NewString(),
			QueryHash:    storage.HashQuery(query),
			Strategy:     res.Strategy,
			Section:      section,
			Timestamp:    e.now(),
			ResultsCount: len(res.Hits),
		}
		if err := e.opts.Recorder.RecordSearch(rec); err != nil {
			log.Printf("Warning: failed to record search: %v", err)
		}
	}

	return res
}

// Suggest returns up to n articles whose text is close to query.
// n <= 0 uses the configured suggestion count.
func (e *Engine) Suggest(query string, n int) []Hit {
	if n <= 0 {
		n = e.opts.SuggestCount
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []Hit{}
	}
	return e.fuzzyHits(query, e.inSection(""), n, e.opts.SuggestCutoff)
}

// ListSections returns the distinct non-empty sections in first-seen order.
func (e *Engine) ListSections() []string {
	seen := make(map[string]bool)
	sections := []string{}
	for _, a := range e.articles {
		if a.Section == "" || seen[a.Section] {
			continue
		}
		seen[a.Section] = true
		sections = append(sections, a.Section)
	}
	return sections
}

// ArticlesInSection returns the articles whose section contains section,
// ignoring case, in corpus order.
func (e *Engine) ArticlesInSection(section string) []corpus.Article {
	articles := []corpus.Article{}
	for _, pos := range e.inSection(section) {
		articles = append(articles, e.articles[pos])
	}
	return articles
}

// Explore ranks articles against query with BM25 over every field,
// optionally restricted to a section. limit <= 0 returns up to 10 hits.
func (e *Engine) Explore(query, section string, limit int) ([]Hit, error) {
	var within []int
	if section != "" {
		within = e.inSection(section)
	}

	scores, err := e.keywords.SearchBM25(query, limit, within)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}

	hits := make([]Hit, 0, len(scores))
	for _, s := range scores {
		hits = append(hits, Hit{Article: e.articles[s.Doc], Position: s.Doc, Score: s.Score})
	}
	return hits, nil
}

// inSection returns the positions of articles whose section contains
// section, ignoring case. An empty section matches every article.
func (e *Engine) inSection(section string) []int {
	needle := strings.ToLower(section)
	positions := []int{}
	for i, a := range e.articles {
		if strings.Contains(strings.ToLower(a.Section), needle) {
			positions = append(positions, i)
		}
	}
	return positions
}

func (e *Engine) substringHits(query string, candidates []int, topN int) []Hit {
	needle := strings.ToLower(query)
	hits := []Hit{}
	for _, pos := range candidates {
		for _, field := range e.articles[pos].Fields() {
			if strings.Contains(strings.ToLower(field), needle) {
				hits = append(hits, Hit{Article: e.articles[pos], Position: pos, Score: 1})
				break
			}
		}
		if len(hits) == topN {
			break
		}
	}
	return hits
}

func (e *Engine) similarityHits(query string, candidates []int, topN int) []Hit {
	keep := make(map[int]bool, len(candidates))
	for _, pos := range candidates {
		keep[pos] = true
	}

	hits := []Hit{}
	for _, s := range e.index.QueryFunc(query, topN, func(doc int) bool { return keep[doc] }) {
		// Scores are sorted, so the first zero ends the hits.
		if s.Score <= 0 {
			break
		}
		hits = append(hits, Hit{Article: e.articles[s.Doc], Position: s.Doc, Score: s.Score})
	}
	return hits
}

func (e *Engine) fuzzyHits(query string, candidates []int, n int, cutoff float64) []Hit {
	texts := make([]string, len(candidates))
	for i, pos := range candidates {
		texts[i] = e.texts[pos]
	}

	hits := []Hit{}
	for _, m := range search.CloseMatches(query, texts, n, cutoff) {
		pos := candidates[m.Doc]
		hits = append(hits, Hit{Article: e.articles[pos], Position: pos, Score: m.Score})
	}
	return hits
}
