package config

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(cfg *Config)
		wantField string
	}{
		{"defaults", func(cfg *Config) {}, ""},
		{"empty corpus path", func(cfg *Config) { cfg.Corpus.Path = "" }, "corpus.path"},
		{"empty memory path", func(cfg *Config) { cfg.Memory.Path = "" }, "memory.path"},
		{"zero retention cap", func(cfg *Config) { cfg.Memory.MaxInteractions = 0 }, "memory.maxInteractions"},
		{"negative topN", func(cfg *Config) { cfg.Search.TopN = -1 }, "search.topN"},
		{"fallback cutoff above one", func(cfg *Config) { cfg.Search.FallbackCutoff = 1.5 }, "search.fallbackCutoff"},
		{"negative suggest cutoff", func(cfg *Config) { cfg.Search.SuggestCutoff = -0.1 }, "search.suggestCutoff"},
		{"zero suggest count", func(cfg *Config) { cfg.Search.SuggestCount = 0 }, "search.suggestCount"},
		{"negative retention", func(cfg *Config) { cfg.Analytics.RetentionDays = -1 }, "analytics.retentionDays"},
		{"cutoff bounds inclusive", func(cfg *Config) { cfg.Search.FallbackCutoff = 1; cfg.Search.SuggestCutoff = 0 }, ""},
		{"no sheet is allowed", func(cfg *Config) { cfg.Corpus.Sheet = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected valid config, got %v", err)
				}
				return
			}

			var invalid *InvalidConfigError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidConfigError, got %v", err)
			}
			if invalid.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, invalid.Field)
			}
		})
	}
}
