package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Corpus.Sheet != "مواد_القانون" {
		t.Errorf("unexpected default sheet %q", cfg.Corpus.Sheet)
	}
	if cfg.Memory.MaxInteractions != 25 {
		t.Errorf("Default MaxInteractions should be 25, got %d", cfg.Memory.MaxInteractions)
	}
	if cfg.Search.TopN != 1 || cfg.Search.SuggestCount != 3 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Search.FallbackCutoff != 0.4 || cfg.Search.SuggestCutoff != 0.3 {
		t.Errorf("unexpected cutoffs: %+v", cfg.Search)
	}
	if !cfg.Analytics.Enabled {
		t.Error("analytics should be enabled by default")
	}
	if filepath.Base(cfg.Memory.Path) != "memory.json" {
		t.Errorf("unexpected memory path %q", cfg.Memory.Path)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), name)

			cfg := NewConfig()
			cfg.Corpus.Path = "/data/labor_law.xlsx"
			cfg.Memory.MaxInteractions = 10
			cfg.Search.TopN = 3
			cfg.Analytics.Enabled = false

			if err := Save(cfg, configPath); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := LoadFrom(configPath)
			if err != nil {
				t.Fatalf("LoadFrom failed: %v", err)
			}

			if *loaded != *cfg {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
			}
		})
	}
}

func TestLoadOrCreate(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".lawdesk.json")

	cfg, err := LoadOrCreate(configPath)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Memory.MaxInteractions != 25 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config file should have been created: %v", err)
	}

	// Second call reads the file it wrote.
	if err := os.WriteFile(configPath, []byte(`{"search": {"topN": 4}}`), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	cfg, err = LoadOrCreate(configPath)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Search.TopN != 4 {
		t.Errorf("expected topN 4 from file, got %d", cfg.Search.TopN)
	}
}

func TestLoadOrCreateInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{invalid json}`), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	_, err := LoadOrCreate(configPath)
	var invalid *InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}

	data, _ := os.ReadFile(configPath)
	if string(data) != `{invalid json}` {
		t.Error("invalid config must not be overwritten")
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := LoadFrom("/nonexistent/path/config.json")
	if err == nil {
		t.Fatal("LoadFrom should fail for non-existent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected errors.Is(err, os.ErrNotExist), got %v", err)
	}
}
