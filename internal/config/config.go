/*
Package config handles loading and saving lawdesk configuration.

Configuration is stored in ~/.lawdesk.json by default. Files ending in .yaml
or .yml are read and written as YAML; anything else is JSON. Both formats use
the same camelCase keys. Fields missing from the file keep their defaults, and
LAWDESK_* environment variables override file values. A leading "~/" in a
path setting is expanded to the user's home directory.

Schema:
  {
    "corpus": {
      "path": "/data/labor_law.xlsx",
      "sheet": "مواد_القانون"
    },
    "memory": {
      "path": "~/.lawdesk/memory.json",
      "maxInteractions": 25
    },
    "search": {
      "topN": 1,
      "fallbackCutoff": 0.4,
      "suggestCutoff": 0.3,
      "suggestCount": 3
    },
    "analytics": {
      "enabled": true,
      "dbPath": "~/.lawdesk/history.db",
      "retentionDays": 90
    }
  }
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the root configuration structure.
type Config struct {
	Corpus    CorpusConfig    `json:"corpus" yaml:"corpus"`
	Memory    MemoryConfig    `json:"memory" yaml:"memory"`
	Search    SearchConfig    `json:"search" yaml:"search"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`
}

// CorpusConfig locates the article corpus.
type CorpusConfig struct {
	// Path is a local .xlsx or .csv file.
	Path string `json:"path" yaml:"path"`

	// Sheet is the preferred workbook sheet. The first sheet is used
	// when it is missing.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
}

// MemoryConfig controls the interaction log.
type MemoryConfig struct {
	Path            string `json:"path" yaml:"path"`
	MaxInteractions int    `json:"maxInteractions" yaml:"maxInteractions"`
}

// SearchConfig tunes retrieval.
type SearchConfig struct {
	// TopN is the default number of hits per search.
	TopN int `json:"topN" yaml:"topN"`

	// FallbackCutoff is the minimum fuzzy ratio for a search fallback hit.
	FallbackCutoff float64 `json:"fallbackCutoff" yaml:"fallbackCutoff"`

	// SuggestCutoff is the minimum fuzzy ratio for a suggestion.
	SuggestCutoff float64 `json:"suggestCutoff" yaml:"suggestCutoff"`

	// SuggestCount is the default number of suggestions.
	SuggestCount int `json:"suggestCount" yaml:"suggestCount"`
}

// AnalyticsConfig controls the search analytics database.
type AnalyticsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DBPath is the SQLite file. Empty uses ~/.lawdesk/history.db.
	DBPath string `json:"dbPath,omitempty" yaml:"dbPath,omitempty"`

	// RetentionDays is how long search records are kept. 0 keeps them forever.
	RetentionDays int `json:"retentionDays" yaml:"retentionDays"`
}

// NewConfig creates a configuration with default values.
func NewConfig() *Config {
	dataDir := DefaultDataDir()
	return &Config{
		Corpus: CorpusConfig{
			Path:  filepath.Join(dataDir, "corpus.xlsx"),
			Sheet: "مواد_القانون",
		},
		Memory: MemoryConfig{
			Path:            filepath.Join(dataDir, "memory.json"),
			MaxInteractions: 25,
		},
		Search: SearchConfig{
			TopN:           1,
			FallbackCutoff: 0.4,
			SuggestCutoff:  0.3,
			SuggestCount:   3,
		},
		Analytics: AnalyticsConfig{
			Enabled:       true,
			RetentionDays: 90,
		},
	}
}

// DefaultDataDir returns ~/.lawdesk, or .lawdesk in the working directory
// when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lawdesk"
	}
	return filepath.Join(home, ".lawdesk")
}

// GetDefaultConfigPath returns the path to ~/.lawdesk.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".lawdesk.json"), nil
}

// LoadOrCreate reads the configuration at path, writing a default one
// first if the file does not exist.
func LoadOrCreate(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if err == nil {
		return cfg, nil
	}
	if _, ok := err.(*ConfigNotFoundError); !ok {
		return nil, err
	}

	cfg = NewConfig()
	if err := Save(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isYAML reports whether path should be read and written as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
