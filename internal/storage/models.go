package storage

import "time"

// SearchRecord represents one answered query.
type SearchRecord struct {
	// SearchID is a unique identifier for this search (UUID).
	SearchID string `json:"search_id"`

	// QueryHash is the SHA256 hash of the search query for privacy.
	QueryHash string `json:"query_hash"`

	// Strategy names the retrieval step that produced the answer.
	Strategy string `json:"strategy"`

	// Section is the section filter, or "" when none was given.
	Section string `json:"section"`

	// Timestamp is when the search was performed.
	Timestamp time.Time `json:"timestamp"`

	// ResultsCount is the number of results returned.
	ResultsCount int `json:"results_count"`
}
