// Package config handles configuration loading and defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default values.
const (
	DefaultTodoFile     = "todo.txt"
	DefaultWorkers      = 1
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultTickSeconds  = 1
	userConfigName      = "totui.toml"
	projectConfigName   = "totui.toml"
	projectConfigHidden = ".totui.toml"
)

// Config holds the full configuration for totui.
type Config struct {
	// TodoFile is the todo.txt file commands operate on by default.
	TodoFile string `toml:"todo_file"`

	// Workers bounds the parallel document parser. 1 parses
	// sequentially.
	Workers int `toml:"workers"`

	// Logging configuration.
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// TickSeconds is the TUI refresh interval.
	TickSeconds int `toml:"tick_seconds"`

	// ProjectRoot is computed, not configured.
	ProjectRoot string `toml:"-"`
}

// setDefaults fills cfg with the built-in defaults.
func setDefaults(cfg *Config) {
	cfg.TodoFile = DefaultTodoFile
	cfg.Workers = DefaultWorkers
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.TickSeconds = DefaultTickSeconds
}

// findUserConfigFile looks for the per-user config file under the OS
// config directory.
func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "totui", userConfigName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// findProjectConfigFile looks for totui.toml or .totui.toml in the
// current directory.
func findProjectConfigFile() string {
	for _, name := range []string{projectConfigHidden, projectConfigName} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// expandPath expands a leading ~ and environment variables in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return expanded
	}
	if strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, expanded[2:])
		}
	}
	return expanded
}
