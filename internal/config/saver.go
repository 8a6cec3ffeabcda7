package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Save validates cfg and writes it to path with a backup and an atomic
// rename. The format follows the file extension.
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		if invalid, ok := err.(*InvalidConfigError); ok {
			invalid.Path = path
		}
		return err
	}

	if err := checkWritePermission(path); err != nil {
		return err
	}

	// First run has nothing to back up
	if err := backupConfig(path); err != nil {
		log.Printf("Warning: failed to create backup: %v", err)
	}

	data, err := marshal(cfg, path)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func marshal(cfg *Config, path string) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(cfg)
	}
	return json.MarshalIndent(cfg, "", "  ")
}

func backupConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return os.WriteFile(path+".bak", data, 0644)
}

func atomicWrite(path string, data []byte) error {
	// Write to temp file in same directory
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}

// checkWritePermission verifies we can write to the config path. A
// directory that does not exist yet is created by atomicWrite.
func checkWritePermission(path string) error {
	dir := filepath.Dir(path)

	if _, err := os.Stat(dir); err == nil {
		if err := checkDirectoryWritable(dir); err != nil {
			return &PermissionError{
				Path:    dir,
				Op:      "write",
				Fix:     getWritePermissionFix(dir),
				Details: "Cannot write to config directory",
			}
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := checkFileWritable(path); err != nil {
			return &PermissionError{
				Path:    path,
				Op:      "write",
				Fix:     getWritePermissionFix(path),
				Details: "Config file is read-only",
			}
		}
	}

	return nil
}

func checkDirectoryWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".write-test-*")
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(f.Name())
}

func checkFileWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

func getWritePermissionFix(path string) string {
	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf("Right-click %s → Properties → Security → Grant 'Write' permission", path)
	default: // unix-like
		return fmt.Sprintf("Run: chmod u+w %s", path)
	}
}
