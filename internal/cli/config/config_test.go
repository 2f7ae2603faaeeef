package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.StringP("output", "o", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.String("log-level", "", "")
	flags.String("prompt", "", "")
	flags.String("history-file", "", "")
	flags.Bool("continue-on-error", true, "")
	return flags
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.True(t, cfg.ContinueOnError)
	assert.False(t, cfg.Verbose)
	assert.NotContains(t, cfg.HistoryFile, "~")
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		env   map[string]string
		flags []string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "file overrides defaults",
			file: "output: json\nlog_level: debug\nprompt: \"db> \"\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "json", cfg.Output)
				assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
				assert.Equal(t, "db> ", cfg.Prompt)
			},
		},
		{
			name: "env overrides file",
			file: "output: json\n",
			env:  map[string]string{"NAIL_OUTPUT": "yaml", "NAIL_LOG_LEVEL": "ERROR"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "yaml", cfg.Output)
				assert.Equal(t, slog.LevelError, cfg.LogLevel)
			},
		},
		{
			name:  "flags override env",
			env:   map[string]string{"NAIL_OUTPUT": "yaml"},
			flags: []string{"-o", "csv", "--continue-on-error=false"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "csv", cfg.Output)
				assert.False(t, cfg.ContinueOnError)
			},
		},
		{
			name:  "unchanged flags do not override",
			file:  "output: markdown\n",
			flags: []string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "markdown", cfg.Output)
				assert.True(t, cfg.ContinueOnError)
			},
		},
		{
			name:  "verbose lowers log level",
			flags: []string{"--verbose"},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Verbose)
				assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
			},
		},
		{
			name: "level with offset",
			file: "log_level: info+2\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, slog.LevelInfo+2, cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			ResetConfig()
			if tt.file != "" {
				writeConfig(t, dir, "nail.yaml", tt.file)
			}
			for key, val := range tt.env {
				t.Setenv(key, val)
			}

			var flags *pflag.FlagSet
			if tt.flags != nil {
				flags = newFlags()
				require.NoError(t, flags.Parse(tt.flags))
			}

			cfg, err := LoadConfig("", flags)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())
	ResetConfig()
	path := writeConfig(t, dir, "custom.yml", "output: table\nhistory_file: /tmp/nail_hist\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "/tmp/nail_hist", cfg.HistoryFile)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_YmlFallback(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()
	writeConfig(t, dir, "nail.yml", "output: text\n")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "nail.yml", GetConfigFileUsed())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		errSubstr string
	}{
		{"bad output", "output: html\n", "invalid output"},
		{"bad level", "log_level: loud\n", "unable to decode config"},
		{"bad yaml", "output: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			ResetConfig()
			writeConfig(t, dir, "nail.yaml", tt.file)

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	_, err := LoadConfig("does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.yaml")
}

func TestConfig_Validate(t *testing.T) {
	for _, mode := range OutputModes {
		cfg := Default()
		cfg.Output = mode
		assert.NoError(t, cfg.Validate(), mode)
	}

	cfg := Default()
	cfg.Prompt = ""
	assert.ErrorContains(t, cfg.Validate(), "prompt")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".nail_history"), expandHome("~/.nail_history"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "", expandHome(""))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogLevel = slog.LevelInfo
	logger := NewLogger(&buf, cfg)

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "session=")

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
	assert.NotNil(t, GetLogger(context.Background()))
}
