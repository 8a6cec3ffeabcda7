/*
Package search implements the ranking primitives used by the retrieval engine.

This package provides a TF-IDF vector space with cosine similarity, a
sequence-matcher fuzzy fallback, and a BM25 keyword index backed by Bleve.
All indexes normalize text with Normalize at build and query time.
*/
package search

import (
	"strings"
	"unicode"
)

// Normalize cleans text before indexing or querying.
//
// Anything that is not a letter, combining mark, digit, underscore or space
// becomes a space, whitespace runs collapse to a single space, and the result
// is trimmed. Case is preserved.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		if !isWordRune(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	return b.String()
}

// isWordRune reports whether r is kept by Normalize (spaces excluded).
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_'
}
