package search

import (
	"testing"

	"github.com/alywork/lawdesk/internal/corpus"
)

func testArticles() []corpus.Article {
	return []corpus.Article{
		{ID: "1", Section: "إجازات", Text: "يحق للعامل إجازة سنوية مدفوعة الأجر", Example: "14 يوم"},
		{ID: "2", Section: "عمال", Text: "لا تزيد ساعات العمل العادية على ثماني ساعات يوميا"},
		{ID: "3", Section: "تفتيش", Text: "يحق لمفتش العمل دخول المنشأة في أي وقت"},
		{ID: "4", Section: "إجازات", Text: "للعاملة إجازة أمومة مدفوعة الأجر"},
	}
}

func newTestKeywordIndex(t *testing.T) *KeywordIndex {
	t.Helper()

	k, err := NewKeywordIndex()
	if err != nil {
		t.Fatalf("failed to create keyword index: %v", err)
	}
	t.Cleanup(func() { k.Close() })

	if err := k.IndexArticles(testArticles()); err != nil {
		t.Fatalf("failed to index articles: %v", err)
	}
	return k
}

func TestIndexArticles(t *testing.T) {
	k := newTestKeywordIndex(t)

	count, err := k.count()
	if err != nil {
		t.Fatalf("failed to get count: %v", err)
	}

	if count != 4 {
		t.Errorf("expected 4 indexed articles, got %d", count)
	}
}

func TestSearchBM25(t *testing.T) {
	k := newTestKeywordIndex(t)

	results, err := k.SearchBM25("المنشأة", 10, nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Doc != 2 {
		t.Errorf("expected article at position 2, got %d", results[0].Doc)
	}

	results, err = k.SearchBM25("مدفوعة الأجر", 10, nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results for paid leave, got %d", len(results))
	}
}

func TestSearchBM25Within(t *testing.T) {
	k := newTestKeywordIndex(t)

	results, err := k.SearchBM25("مدفوعة", 10, []int{3})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(results) != 1 || results[0].Doc != 3 {
		t.Errorf("expected only position 3, got %v", results)
	}

	results, err = k.SearchBM25("مدفوعة", 10, []int{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for empty restriction, got %v", results)
	}
}

func TestSearchBM25EmptyQuery(t *testing.T) {
	k := newTestKeywordIndex(t)

	results, err := k.SearchBM25(" ؟! ", 10, nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for empty query, got %v", results)
	}
}

func TestSearchBM25NoMatch(t *testing.T) {
	k := newTestKeywordIndex(t)

	results, err := k.SearchBM25("vacation", 10, nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}
