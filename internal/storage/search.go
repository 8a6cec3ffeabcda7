package storage

import (
	"log"
	"time"
)

// RecordSearch records an answered query for analytics.
func (s *SQLiteStorage) RecordSearch(search SearchRecord) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO search_history (search_id, query_hash, strategy, section, timestamp, results_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		search.SearchID,
		search.QueryHash,
		search.Strategy,
		search.Section,
		formatTime(search.Timestamp),
		search.ResultsCount,
	)

	if err != nil {
		log.Printf("Warning: failed to record search: %v", err)
	}

	return nil
}

// StrategyCounts returns how many searches each strategy answered since a given time.
func (s *SQLiteStorage) StrategyCounts(since time.Time) (map[string]int, error) {
	counts := map[string]int{}
	if !s.enabled || s.db == nil {
		return counts, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT strategy, COUNT(*)
		FROM search_history
		WHERE timestamp >= ?
		GROUP BY strategy
	`

	rows, err := s.db.Query(query, formatTime(since))
	if err != nil {
		log.Printf("Warning: failed to query strategy counts: %v", err)
		return counts, nil
	}
	defer rows.Close()

	for rows.Next() {
		var strategy string
		var n int
		if err := rows.Scan(&strategy, &n); err != nil {
			log.Printf("Warning: failed to scan strategy row: %v", err)
			continue
		}
		counts[strategy] = n
	}

	return counts, nil
}

// RecentSearches returns up to limit searches, newest first.
func (s *SQLiteStorage) RecentSearches(limit int) ([]SearchRecord, error) {
	if !s.enabled || s.db == nil {
		return []SearchRecord{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT search_id, query_hash, strategy, section, timestamp, results_count
		FROM search_history
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		log.Printf("Warning: failed to query search history: %v", err)
		return []SearchRecord{}, nil
	}
	defer rows.Close()

	searches := []SearchRecord{}
	for rows.Next() {
		var rec SearchRecord
		var timestampStr string

		if err := rows.Scan(
			&rec.SearchID,
			&rec.QueryHash,
			&rec.Strategy,
			&rec.Section,
			&timestampStr,
			&rec.ResultsCount,
		); err != nil {
			log.Printf("Warning: failed to scan search row: %v", err)
			continue
		}

		rec.Timestamp, err = time.Parse(time.RFC3339, timestampStr)
		if err != nil {
			log.Printf("Warning: failed to parse timestamp: %v", err)
			continue
		}

		searches = append(searches, rec)
	}

	return searches, nil
}

// Cleanup removes records older than retention and returns how many were
// removed. The database is vacuumed only when something was deleted.
func (s *SQLiteStorage) Cleanup(retention time.Duration) (int64, error) {
	if !s.enabled || s.db == nil {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := formatTime(time.Now().Add(-retention))

	result, err := s.db.Exec("DELETE FROM search_history WHERE timestamp < ?", cutoff)
	if err != nil {
		log.Printf("Warning: failed to cleanup search_history: %v", err)
		return 0, nil
	}

	removed, err := result.RowsAffected()
	if err != nil || removed == 0 {
		return 0, nil
	}

	// Vacuum to reclaim space
	if _, err := s.db.Exec("VACUUM"); err != nil {
		log.Printf("Warning: failed to vacuum database: %v", err)
	}

	return removed, nil
}
