package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	data := []byte(`{"test": "data"}`)
	if err := atomicWrite(testPath, data); err != nil {
		t.Fatalf("atomicWrite failed: %v", err)
	}

	// Verify temp file was cleaned up
	if _, err := os.Stat(testPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file was not cleaned up")
	}

	readData, err := os.ReadFile(testPath)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(readData) != string(data) {
		t.Errorf("content mismatch: got %q, want %q", string(readData), string(data))
	}
}

func TestSaveCreatesDir(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "subdir", "config.json")

	if err := Save(NewConfig(), testPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}
}

func TestBackupConfig(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	originalData := []byte(`{"original": true}`)
	if err := os.WriteFile(testPath, originalData, 0644); err != nil {
		t.Fatalf("failed to create original config: %v", err)
	}

	if err := backupConfig(testPath); err != nil {
		t.Fatalf("backupConfig failed: %v", err)
	}

	bakData, err := os.ReadFile(testPath + ".bak")
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(bakData) != string(originalData) {
		t.Errorf("backup content mismatch: got %q, want %q", string(bakData), string(originalData))
	}
}

func TestBackupConfigFirstRun(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	if err := backupConfig(testPath); err != nil {
		t.Fatalf("backupConfig failed on first run: %v", err)
	}

	if _, err := os.Stat(testPath + ".bak"); !os.IsNotExist(err) {
		t.Error("backup should not exist on first run")
	}
}

func TestSaveCreatesBackup(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	cfg.Corpus.Path = "/data/old.xlsx"
	if err := Save(cfg, testPath); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	cfg.Corpus.Path = "/data/new.xlsx"
	if err := Save(cfg, testPath); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	bakData, err := os.ReadFile(testPath + ".bak")
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if !strings.Contains(string(bakData), "old.xlsx") || strings.Contains(string(bakData), "new.xlsx") {
		t.Error("backup should contain old config, not new config")
	}
}

func TestSaveValidatesBeforeWrite(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	cfg.Search.TopN = 0

	err := Save(cfg, testPath)
	if err == nil {
		t.Fatal("Save should fail validation for topN 0")
	}
	if !strings.Contains(err.Error(), "invalid config") || !strings.Contains(err.Error(), "search.topN") {
		t.Errorf("error should name the invalid field, got: %v", err)
	}

	var invalid *InvalidConfigError
	if !errors.As(err, &invalid) || invalid.Path != testPath {
		t.Errorf("expected InvalidConfigError for %s, got %v", testPath, err)
	}

	if _, err := os.Stat(testPath); !os.IsNotExist(err) {
		t.Error("config file should not exist after failed validation")
	}
}

func TestSaveReadOnlyFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	testPath := filepath.Join(t.TempDir(), "readonly-save.json")
	os.WriteFile(testPath, []byte(`{}`), 0444)
	defer os.Chmod(testPath, 0644)

	err := Save(NewConfig(), testPath)
	if err == nil {
		t.Fatal("Save should error for read-only file")
	}
	if !strings.Contains(err.Error(), "permission denied") || !strings.Contains(err.Error(), "💡 Fix:") {
		t.Errorf("error should mention permission and fix, got: %v", err)
	}
}
