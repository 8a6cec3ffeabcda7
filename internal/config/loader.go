package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFrom reads the configuration at path on top of the defaults.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to access config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &PermissionError{
				Path:    path,
				Op:      "read",
				Fix:     getReadPermissionFix(path),
				Details: getPermissionDetails(path),
			}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := NewConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: fmt.Sprintf("parse error: %v", err),
			Hint:    "Restore from .bak file if available",
			Err:     err,
		}
	}

	cfg.expandPaths()
	return cfg, nil
}

// envOverrides maps environment variables to the settings they replace.
var envOverrides = []struct {
	name  string
	apply func(cfg *Config, value string) error
}{
	{"LAWDESK_CORPUS_PATH", func(cfg *Config, v string) error { cfg.Corpus.Path = v; return nil }},
	{"LAWDESK_CORPUS_SHEET", func(cfg *Config, v string) error { cfg.Corpus.Sheet = v; return nil }},
	{"LAWDESK_MEMORY_PATH", func(cfg *Config, v string) error { cfg.Memory.Path = v; return nil }},
	{"LAWDESK_MAX_INTERACTIONS", func(cfg *Config, v string) error { return setInt(&cfg.Memory.MaxInteractions, v) }},
	{"LAWDESK_TOP_N", func(cfg *Config, v string) error { return setInt(&cfg.Search.TopN, v) }},
	{"LAWDESK_ANALYTICS_DB", func(cfg *Config, v string) error { cfg.Analytics.DBPath = v; return nil }},
}

// ApplyEnv overrides settings from LAWDESK_* environment variables.
// Unset or empty variables are ignored.
func (c *Config) ApplyEnv() error {
	for _, o := range envOverrides {
		value := os.Getenv(o.name)
		if value == "" {
			continue
		}
		if err := o.apply(c, value); err != nil {
			return &InvalidConfigError{
				Path:    "environment",
				Field:   o.name,
				Message: err.Error(),
				Err:     err,
			}
		}
	}
	c.expandPaths()
	return nil
}

// expandPaths resolves a leading "~/" in every path setting.
func (c *Config) expandPaths() {
	for _, p := range []*string{&c.Corpus.Path, &c.Memory.Path, &c.Analytics.DBPath} {
		*p = expandHome(*p)
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
// Paths are returned unchanged when the home directory is unknown.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func setInt(dst *int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("expected an integer, got %q", value)
	}
	*dst = n
	return nil
}

// getReadPermissionFix returns platform-specific fix command
func getReadPermissionFix(path string) string {
	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf("Right-click %s → Properties → Security → Edit permissions", path)
	default: // unix-like
		return fmt.Sprintf("Run: chmod 644 %s", path)
	}
}

// getPermissionDetails checks file ownership and permissions
func getPermissionDetails(path string) string {
	if runtime.GOOS == "windows" {
		return ""
	}

	info, err := os.Stat(path)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("Current permissions: %04o", info.Mode().Perm())
}
