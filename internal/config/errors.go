package config

import (
	"fmt"
	"os"
)

// PermissionError reports a config file or directory lawdesk cannot access.
type PermissionError struct {
	Path    string
	Op      string // "read" or "write"
	Fix     string // Suggested fix command
	Details string
}

func (e *PermissionError) Error() string {
	msg := fmt.Sprintf("permission denied (cannot %s config): %s\n", e.Op, e.Path)
	if e.Details != "" {
		msg += e.Details + "\n"
	}
	msg += "💡 Fix: " + e.Fix
	return msg
}

// Is lets errors.Is(err, os.ErrPermission) match.
func (e *PermissionError) Is(target error) bool {
	return target == os.ErrPermission
}

// ConfigNotFoundError reports a missing config file.
type ConfigNotFoundError struct {
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s\n\n💡 Run 'lawdesk init' to create configuration", e.Path)
}

// Is lets errors.Is(err, os.ErrNotExist) match.
func (e *ConfigNotFoundError) Is(target error) bool {
	return target == os.ErrNotExist
}

// InvalidConfigError reports a config that cannot be parsed or fails
// validation. Field names the offending setting when known.
type InvalidConfigError struct {
	Path    string
	Field   string
	Message string
	Hint    string
	Err     error
}

func (e *InvalidConfigError) Error() string {
	msg := "invalid config\n"
	if e.Path != "" {
		msg = fmt.Sprintf("invalid config: %s\n", e.Path)
	}
	if e.Field != "" {
		msg += e.Field + ": "
	}
	if e.Message != "" {
		msg += e.Message + "\n"
	}
	if e.Hint != "" {
		msg += "💡 " + e.Hint
	}
	return msg
}

func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}
