package search

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/alywork/lawdesk/internal/corpus"
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// KeywordIndex is a BM25 keyword index over the corpus, backed by Bleve.
type KeywordIndex struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
}

// NewKeywordIndex creates an empty in-memory keyword index.
func NewKeywordIndex() (*KeywordIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &KeywordIndex{bleveIndex: index}, nil
}

// buildIndexMapping creates the Bleve index mapping for articles.
func buildIndexMapping() mapping.IndexMapping {
	articleMapping := bleve.NewDocumentMapping()

	for _, field := range []string{"article", "section", "text", "example"} {
		articleMapping.AddFieldMappingsAt(field, bleve.NewTextFieldMapping())
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", articleMapping)

	return indexMapping
}

// IndexArticles indexes articles under their corpus position.
func (k *KeywordIndex) IndexArticles(articles []corpus.Article) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	batch := k.bleveIndex.NewBatch()

	for i, a := range articles {
		doc := map[string]interface{}{
			"article": Normalize(a.ID),
			"section": Normalize(a.Section),
			"text":    Normalize(a.Text),
			"example": Normalize(a.Example),
		}

		docID := strconv.Itoa(i)
		if err := batch.Index(docID, doc); err != nil {
			log.Printf("Warning: failed to index article %s: %v", docID, err)
		}
	}

	if err := k.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index articles: %w", err)
	}

	return nil
}

// SearchBM25 ranks articles against text with BM25.
//
// A non-nil within restricts matching to those corpus positions before
// ranking; an empty non-nil slice matches nothing.
func (k *KeywordIndex) SearchBM25(text string, limit int, within []int) ([]Score, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	normalized := Normalize(text)
	if normalized == "" || (within != nil && len(within) == 0) {
		return []Score{}, nil
	}

	var q query.Query = bleve.NewMatchQuery(normalized)
	if within != nil {
		ids := make([]string, len(within))
		for i, pos := range within {
			ids[i] = strconv.Itoa(pos)
		}
		q = bleve.NewConjunctionQuery(q, bleve.NewDocIDQuery(ids))
	}

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	results, err := k.bleveIndex.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(results), nil
}

// convertBleveResults maps hits back to corpus positions.
func convertBleveResults(results *bleve.SearchResult) []Score {
	scores := make([]Score, 0, len(results.Hits))

	for _, hit := range results.Hits {
		pos, err := strconv.Atoi(hit.ID)
		if err != nil {
			log.Printf("Warning: unexpected document id %q", hit.ID)
			continue
		}
		scores = append(scores, Score{Doc: pos, Score: hit.Score})
	}

	sortScores(scores)
	return scores
}

// count returns the number of indexed articles.
func (k *KeywordIndex) count() (uint64, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	docCount, err := k.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}

	return docCount, nil
}

// Close closes the index and releases resources.
func (k *KeywordIndex) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.bleveIndex != nil {
		return k.bleveIndex.Close()
	}

	return nil
}
