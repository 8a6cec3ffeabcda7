/*
Package corpus loads legal-article records from tabular sources.

A corpus is an ordered slice of Article values read from a spreadsheet
(.xlsx) or CSV export. Column names vary between deployments, so headers are
matched against a set of Arabic and English aliases, and any column that is
missing from the source yields empty strings rather than absent values.
*/
package corpus

import "strings"

// Article is one row of the legal corpus.
type Article struct {
	// ID is the article number as written in the source (may be empty).
	ID string `json:"article_id"`

	// Section is the section or chapter label the article belongs to.
	Section string `json:"section"`

	// Text is the authoritative article body.
	Text string `json:"text"`

	// Example is an optional illustrative scenario.
	Example string `json:"example"`
}

// Fields returns the article fields in column order.
func (a Article) Fields() []string {
	return []string{a.ID, a.Section, a.Text, a.Example}
}

// IsBlank reports whether every field is empty after trimming.
func (a Article) IsBlank() bool {
	for _, f := range a.Fields() {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Reference formats the citation string shown next to an answer.
func (a Article) Reference() string {
	if a.ID == "" && a.Section == "" {
		return ""
	}
	return "المادة " + a.ID + " - القسم: " + a.Section
}
