package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default config location at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("MULTISEARCH_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{
		"MULTISEARCH_MODE", "MULTISEARCH_ENCODING", "MULTISEARCH_FORMAT", "MULTISEARCH_COLOR",
		"MULTISEARCH_LOG_LEVEL", "MULTISEARCH_LOG_FILE", "MULTISEARCH_OFFSET", "MULTISEARCH_WORKERS",
		"MULTISEARCH_PREFILTER", "MULTISEARCH_SORT", "MULTISEARCH_RECURSIVE", "MULTISEARCH_PROGRESS",
		"MULTISEARCH_TERMS",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "all", cfg.Mode)
	assert.Equal(t, "tsv", cfg.Format)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, 8, cfg.PrefilterThreshold)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingDefaultFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
terms: [hello, world]
term_files: [terms.txt]
mode: any
offset: 3
sort: true
recursive: true
encoding: latin1
workers: 2
format: json
color: never
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"hello", "world"}, cfg.Terms)
	assert.Equal(t, []string{"terms.txt"}, cfg.TermFiles)
	assert.Equal(t, "any", cfg.Mode)
	assert.Equal(t, 3, cfg.Offset)
	assert.True(t, cfg.Sort)
	assert.True(t, cfg.Recursive)
	assert.Equal(t, "latin1", cfg.Encoding)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched fields keep defaults
	assert.Equal(t, 8, cfg.PrefilterThreshold)
}

func TestLoadFromXDG(t *testing.T) {
	isolate(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "multisearch"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "multisearch", "config.yaml"), []byte("mode: first\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Mode)
}

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		envVars   map[string]string
		checkFunc func(*testing.T, *Config)
		wantErr   bool
	}{
		{
			name: "valid environment variables",
			envVars: map[string]string{
				"MULTISEARCH_MODE":    "first",
				"MULTISEARCH_WORKERS": "8",
				"MULTISEARCH_SORT":    "yes",
				"MULTISEARCH_TERMS":   "foo bar",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "first", cfg.Mode)
				assert.Equal(t, 8, cfg.Workers)
				assert.True(t, cfg.Sort)
				assert.Equal(t, []string{"foo", "bar"}, cfg.Terms)
			},
		},
		{
			name:    "invalid integer",
			envVars: map[string]string{"MULTISEARCH_WORKERS": "many"},
			wantErr: true,
		},
		{
			name:    "invalid boolean",
			envVars: map[string]string{"MULTISEARCH_RECURSIVE": "maybe"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load("")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "mode: any\nformat: json\n")
	t.Setenv("MULTISEARCH_MODE", "first")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Mode)
	assert.Equal(t, "json", cfg.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Mode = "every" }},
		{"negative offset", func(c *Config) { c.Offset = -1 }},
		{"negative prefilter", func(c *Config) { c.PrefilterThreshold = -1 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"bad format", func(c *Config) { c.Format = "xml" }},
		{"bad color", func(c *Config) { c.Color = "sometimes" }},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
