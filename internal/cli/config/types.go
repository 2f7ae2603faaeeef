// Package config provides configuration management for the nail CLI.
package config

import "log/slog"

// Config holds all CLI configuration options.
type Config struct {
	Output          string     `koanf:"output"`
	Verbose         bool       `koanf:"verbose"`
	LogLevel        slog.Level `koanf:"log_level"`
	HistoryFile     string     `koanf:"history_file"`
	Prompt          string     `koanf:"prompt"`
	ContinueOnError bool       `koanf:"continue_on_error"`
}

// Default configuration values
const (
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel        = "warn"
	DefaultHistoryFile     = "~/.nail_history"
	DefaultPrompt          = "nail> "
	DefaultContinueOnError = true
)

// OutputModes lists the accepted values of the output key.
var OutputModes = []string{"auto", "text", "table", "json", "yaml", "csv", "markdown"}

// Default returns a Config populated with the default values.
func Default() *Config {
	return &Config{
		Output:          DefaultOutput,
		LogLevel:        slog.LevelWarn,
		HistoryFile:     expandHome(DefaultHistoryFile),
		Prompt:          DefaultPrompt,
		ContinueOnError: DefaultContinueOnError,
	}
}
