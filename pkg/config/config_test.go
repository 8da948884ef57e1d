// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/autocode/pkg/selection"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "blacklist", cfg.Selection.Mode)
	assert.Equal(t, []string{"node_modules", ".git"}, cfg.Selection.ExcludeDirs)
	assert.Contains(t, cfg.Selection.ExcludeFiles, "package-lock.json")
	assert.Contains(t, cfg.Selection.ExcludeExtensions, ".log")
	assert.Contains(t, cfg.Selection.ExcludeExtensions, ".iso")
	assert.Equal(t, []string{"src"}, cfg.Selection.IncludeDirs)

	assert.Equal(t, ProviderOpenAI, cfg.Oracle.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Oracle.Model)
	assert.InDelta(t, 0.2, cfg.Oracle.Temperature, 1e-9)
	assert.Equal(t, 3000, cfg.Oracle.MaxTokens)
	assert.Equal(t, 3, cfg.Oracle.MaxRetries)
	assert.Equal(t, time.Second, cfg.Oracle.Backoff())
	assert.Zero(t, cfg.Oracle.AttemptTimeout())

	assert.InDelta(t, 2.50, cfg.Pricing.InputPerMillion, 1e-9)
	assert.InDelta(t, 10.00, cfg.Pricing.OutputPerMillion, 1e-9)

	assert.Equal(t, "gpt.basic.log", cfg.Logging.BasicFile)
	assert.Equal(t, "gpt.verbose.log", cfg.Logging.VerboseFile)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "yaml_overrides",
			filename: ".autocode.yaml",
			config: `
root: ./project
selection:
  mode: Whitelist
  include_dirs: ["./src/", "lib"]
  include_files: ["README.md"]
oracle:
  provider: ollama
  max_retries: 5
  backoff_unit: 250ms
  timeout: 2m
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "project", cfg.Root, "root should be cleaned")
				assert.Equal(t, "whitelist", cfg.Selection.Mode, "mode should be lowercased")
				assert.Equal(t, []string{"src", "lib"}, cfg.Selection.IncludeDirs, "include dirs should be normalized")
				assert.Equal(t, []string{"README.md"}, cfg.Selection.IncludeFiles)
				assert.Equal(t, []string{"node_modules", ".git"}, cfg.Selection.ExcludeDirs, "untouched keys keep defaults")
				assert.Equal(t, ProviderOllama, cfg.Oracle.Provider)
				assert.Equal(t, "llama3.1", cfg.Oracle.Model, "model should default per provider")
				assert.Equal(t, 5, cfg.Oracle.MaxRetries)
				assert.Equal(t, 250*time.Millisecond, cfg.Oracle.Backoff())
				assert.Equal(t, 2*time.Minute, cfg.Oracle.AttemptTimeout())
			},
		},
		{
			name:     "yaml_zero_temperature_is_kept",
			filename: "config.yml",
			config: `
oracle:
  temperature: 0
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Zero(t, cfg.Oracle.Temperature)
			},
		},
		{
			name:     "yaml_empty_document",
			filename: ".autocode.yaml",
			config:   "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "gpt-4o-mini", cfg.Oracle.Model)
			},
		},
		{
			name:        "yaml_unknown_field",
			filename:    ".autocode.yaml",
			config:      "oracle:\n  temprature: 0.5\n",
			wantErr:     true,
			errContains: "temprature",
		},
		{
			name:     "hcl_overrides",
			filename: ".autocode.hcl",
			config: `
dry_run = true

selection {
  mode             = "blacklist"
  exclude_dirs     = ["node_modules", ".git", "dist/"]
  exclude_patterns = ["**/*_test.go"]
  respect_gitignore = true
}

oracle {
  provider    = "gemini"
  model       = lower("Gemini-2.5-Pro")
  temperature = 0.7
}

pricing {
  input_per_million  = 1.25
  output_per_million = 5
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.DryRun)
				assert.Equal(t, []string{"node_modules", ".git", "dist"}, cfg.Selection.ExcludeDirs)
				assert.Equal(t, []string{"**/*_test.go"}, cfg.Selection.ExcludePatterns)
				assert.True(t, cfg.Selection.RespectGitignore)
				assert.Equal(t, ProviderGemini, cfg.Oracle.Provider)
				assert.Equal(t, "gemini-2.5-pro", cfg.Oracle.Model)
				assert.InDelta(t, 0.7, cfg.Oracle.Temperature, 1e-9)
				assert.Equal(t, 3000, cfg.Oracle.MaxTokens, "untouched attributes keep defaults")
				assert.InDelta(t, 1.25, cfg.Pricing.InputPerMillion, 1e-9)
				assert.InDelta(t, 5.0, cfg.Pricing.OutputPerMillion, 1e-9)
			},
		},
		{
			name:        "hcl_syntax_error",
			filename:    ".autocode.hcl",
			config:      "oracle {",
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:     "json_overrides",
			filename: ".autocode.json",
			config:   `{"selection": {"mode": "whitelist", "include_files": ["a.py"]}, "oracle": {"model": "gpt-4o"}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "whitelist", cfg.Selection.Mode)
				assert.Equal(t, []string{"a.py"}, cfg.Selection.IncludeFiles)
				assert.Equal(t, "gpt-4o", cfg.Oracle.Model)
			},
		},
		{
			name:        "json_unknown_field",
			filename:    ".autocode.json",
			config:      `{"oracel": {}}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "invalid_mode",
			filename:    ".autocode.yaml",
			config:      "selection:\n  mode: greylist\n",
			wantErr:     true,
			errContains: "mode must be",
		},
		{
			name:        "invalid_provider",
			filename:    ".autocode.yaml",
			config:      "oracle:\n  provider: clippy\n",
			wantErr:     true,
			errContains: "unknown provider",
		},
		{
			name:        "invalid_retries",
			filename:    ".autocode.yaml",
			config:      "oracle:\n  max_retries: 0\n",
			wantErr:     true,
			errContains: "max_retries",
		},
		{
			name:        "invalid_temperature",
			filename:    ".autocode.yaml",
			config:      "oracle:\n  temperature: 3.5\n",
			wantErr:     true,
			errContains: "temperature",
		},
		{
			name:        "invalid_backoff",
			filename:    ".autocode.yaml",
			config:      "oracle:\n  backoff_unit: soon\n",
			wantErr:     true,
			errContains: "backoff_unit",
		},
		{
			name:        "invalid_pattern",
			filename:    ".autocode.yaml",
			config:      "selection:\n  exclude_patterns: ['[oops']\n",
			wantErr:     true,
			errContains: "exclude pattern",
		},
		{
			name:        "negative_price",
			filename:    ".autocode.yaml",
			config:      "pricing:\n  input_per_million: -1\n",
			wantErr:     true,
			errContains: "pricing",
		},
		{
			name:        "unsupported_extension",
			filename:    "autocode.toml",
			config:      "mode = 'blacklist'",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644), "writing config file should succeed")

			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "Load should fail")
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains, "error message should contain expected text")
				}
				return
			}

			require.NoError(t, err, "Load should succeed")
			require.NotNil(t, cfg, "config should not be nil")
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), ".autocode.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDiscover(t *testing.T) {
	t.Run("defaults_when_absent", func(t *testing.T) {
		cfg, path, err := Discover(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, "gpt-4o-mini", cfg.Oracle.Model)
	})

	t.Run("yaml_preferred_over_json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".autocode.json"), []byte(`{"oracle": {"model": "from-json"}}`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".autocode.yaml"), []byte("oracle:\n  model: from-yaml\n"), 0644))

		cfg, path, err := Discover(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, ".autocode.yaml"), path)
		assert.Equal(t, "from-yaml", cfg.Oracle.Model)
	})

	t.Run("invalid_file_is_an_error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".autocode.hcl"), []byte(`oracle { max_retries = -1 }`), 0644))

		_, _, err := Discover(context.Background(), dir)
		require.Error(t, err)
	})
}

func TestRules(t *testing.T) {
	cfg := Default()
	cfg.Selection.Mode = "whitelist"
	cfg.Selection.IncludeFiles = []string{"./main.go"}
	require.NoError(t, cfg.Validate())

	rules := cfg.Rules()
	assert.Equal(t, selection.ModeWhitelist, rules.Mode)
	assert.Equal(t, []string{"src"}, rules.IncludeDirs)
	assert.Equal(t, []string{"main.go"}, rules.IncludeFiles)
	assert.Equal(t, cfg.Selection.ExcludeExtensions, rules.ExcludeExtensions)
}

func TestValidateNormalizesPaths(t *testing.T) {
	cfg := Default()
	cfg.Root = ""
	cfg.Selection.ExcludeDirs = []string{"node_modules/", "./node_modules", "", ".", "build"}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, []string{"node_modules", "build"}, cfg.Selection.ExcludeDirs, "duplicates and empties should be dropped")
}
