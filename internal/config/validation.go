package config

import "fmt"

// Validate checks that every setting is usable. It returns an
// *InvalidConfigError naming the first offending field.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		ok    bool
		msg   string
	}{
		{"corpus.path", c.Corpus.Path != "", "must not be empty"},
		{"memory.path", c.Memory.Path != "", "must not be empty"},
		{"memory.maxInteractions", c.Memory.MaxInteractions > 0, fmt.Sprintf("must be positive, got %d", c.Memory.MaxInteractions)},
		{"search.topN", c.Search.TopN > 0, fmt.Sprintf("must be positive, got %d", c.Search.TopN)},
		{"search.fallbackCutoff", inUnitRange(c.Search.FallbackCutoff), fmt.Sprintf("must be between 0 and 1, got %g", c.Search.FallbackCutoff)},
		{"search.suggestCutoff", inUnitRange(c.Search.SuggestCutoff), fmt.Sprintf("must be between 0 and 1, got %g", c.Search.SuggestCutoff)},
		{"search.suggestCount", c.Search.SuggestCount > 0, fmt.Sprintf("must be positive, got %d", c.Search.SuggestCount)},
		{"analytics.retentionDays", c.Analytics.RetentionDays >= 0, fmt.Sprintf("must not be negative, got %d", c.Analytics.RetentionDays)},
	}

	for _, check := range checks {
		if !check.ok {
			return &InvalidConfigError{
				Field:   check.field,
				Message: check.msg,
				Hint:    "Edit the config file or run 'lawdesk init --force' to reset it",
			}
		}
	}
	return nil
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}
