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
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/relpath"
	"github.com/walteh/autocode/pkg/selection"
)

// 🔌 Oracle providers
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// 🎯 default model per provider, used when oracle.model is left empty
var defaultModels = map[string]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llama3.1",
	ProviderGemini: "gemini-2.5-flash",
}

// 📋 SelectionArgs configures which files take part in a run
type SelectionArgs struct {
	Mode string `json:"mode" yaml:"mode"` // blacklist or whitelist

	ExcludeDirs       []string `json:"exclude_dirs" yaml:"exclude_dirs"`
	ExcludeFiles      []string `json:"exclude_files" yaml:"exclude_files"`
	ExcludeExtensions []string `json:"exclude_extensions" yaml:"exclude_extensions"`
	ExcludePatterns   []string `json:"exclude_patterns,omitempty" yaml:"exclude_patterns,omitempty"`
	RespectGitignore  bool     `json:"respect_gitignore,omitempty" yaml:"respect_gitignore,omitempty"`

	IncludeDirs  []string `json:"include_dirs" yaml:"include_dirs"`
	IncludeFiles []string `json:"include_files" yaml:"include_files"`
}

// 🔮 OracleArgs configures the code-generation service
type OracleArgs struct {
	Provider    string  `json:"provider" yaml:"provider"`
	Model       string  `json:"model" yaml:"model"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKeyEnv   string  `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"` // overrides the provider's key variable
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	MaxRetries  int     `json:"max_retries" yaml:"max_retries"`
	BackoffUnit string  `json:"backoff_unit" yaml:"backoff_unit"`         // e.g. "1s"; sleep after attempt k is 2^k units
	Timeout     string  `json:"timeout,omitempty" yaml:"timeout,omitempty"` // per attempt, empty means none

	backoff time.Duration
	timeout time.Duration
}

// 💰 PricingArgs holds dollar prices per million tokens
type PricingArgs struct {
	InputPerMillion  float64 `json:"input_per_million" yaml:"input_per_million"`
	OutputPerMillion float64 `json:"output_per_million" yaml:"output_per_million"`
}

// 📝 LoggingArgs configures the two append-only log files
type LoggingArgs struct {
	BasicFile   string `json:"basic_file" yaml:"basic_file"`
	VerboseFile string `json:"verbose_file" yaml:"verbose_file"`
	MaxSizeMB   int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups  int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Root      string        `json:"root" yaml:"root"`
	DryRun    bool          `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Selection SelectionArgs `json:"selection" yaml:"selection"`
	Oracle    OracleArgs    `json:"oracle" yaml:"oracle"`
	Pricing   PricingArgs   `json:"pricing" yaml:"pricing"`
	Logging   LoggingArgs   `json:"logging" yaml:"logging"`
}

// 🏭 Default returns the configuration used when no file is present.
// Parsers decode on top of it, so a file only needs the keys it changes.
func Default() *Config {
	return &Config{
		Root: ".",
		Selection: SelectionArgs{
			Mode:         string(selection.ModeBlacklist),
			ExcludeDirs:  []string{"node_modules", ".git"},
			ExcludeFiles: []string{"package-lock.json", ".env"},
			ExcludeExtensions: []string{
				".log", ".tmp", ".pyc",
				".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg", ".ico",
				".pdf", ".zip", ".tar", ".gz", ".rar", ".7z",
				".exe", ".dll", ".so", ".dylib", ".bin", ".dat", ".iso",
			},
			IncludeDirs:  []string{"src"},
			IncludeFiles: []string{},
		},
		Oracle: OracleArgs{
			Provider:    ProviderOpenAI,
			Temperature: 0.2,
			MaxTokens:   3000,
			MaxRetries:  3,
			BackoffUnit: "1s",
		},
		Pricing: PricingArgs{
			InputPerMillion:  2.50,
			OutputPerMillion: 10.00,
		},
		Logging: LoggingArgs{
			BasicFile:   "gpt.basic.log",
			VerboseFile: "gpt.verbose.log",
			MaxSizeMB:   15,
			MaxBackups:  3,
		},
	}
}

// 🔍 Validate checks the configuration, normalizes paths and fills defaults
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Root) == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if err := cfg.Selection.validate(); err != nil {
		return errors.Errorf("selection: %w", err)
	}
	if err := cfg.Oracle.validate(); err != nil {
		return errors.Errorf("oracle: %w", err)
	}

	if cfg.Pricing.InputPerMillion < 0 || cfg.Pricing.OutputPerMillion < 0 {
		return errors.Errorf("pricing: prices must not be negative")
	}

	if cfg.Logging.MaxSizeMB < 0 || cfg.Logging.MaxBackups < 0 {
		return errors.Errorf("logging: max_size_mb and max_backups must not be negative")
	}

	return nil
}

func (s *SelectionArgs) validate() error {
	s.Mode = strings.ToLower(strings.TrimSpace(s.Mode))
	switch selection.Mode(s.Mode) {
	case "":
		s.Mode = string(selection.ModeBlacklist)
	case selection.ModeBlacklist, selection.ModeWhitelist:
	default:
		return errors.Errorf("mode must be %q or %q, got %q", selection.ModeBlacklist, selection.ModeWhitelist, s.Mode)
	}

	s.ExcludeDirs = normalizeAll(s.ExcludeDirs)
	s.ExcludeFiles = normalizeAll(s.ExcludeFiles)
	s.IncludeDirs = normalizeAll(s.IncludeDirs)
	s.IncludeFiles = normalizeAll(s.IncludeFiles)

	for _, p := range s.ExcludePatterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

func (o *OracleArgs) validate() error {
	o.Provider = strings.ToLower(strings.TrimSpace(o.Provider))
	if o.Provider == "" {
		o.Provider = ProviderOpenAI
	}
	def, ok := defaultModels[o.Provider]
	if !ok {
		return errors.Errorf("unknown provider %q", o.Provider)
	}
	if strings.TrimSpace(o.Model) == "" {
		o.Model = def
	}

	if o.Temperature < 0 || o.Temperature > 2 {
		return errors.Errorf("temperature must be between 0 and 2, got %v", o.Temperature)
	}
	if o.MaxTokens <= 0 {
		return errors.Errorf("max_tokens must be positive, got %d", o.MaxTokens)
	}
	if o.MaxRetries < 1 {
		return errors.Errorf("max_retries must be at least 1, got %d", o.MaxRetries)
	}

	if o.BackoffUnit == "" {
		o.BackoffUnit = "1s"
	}
	unit, err := time.ParseDuration(o.BackoffUnit)
	if err != nil {
		return errors.Errorf("parsing backoff_unit: %w", err)
	}
	if unit < 0 {
		return errors.Errorf("backoff_unit must not be negative")
	}
	o.backoff = unit

	o.timeout = 0
	if o.Timeout != "" {
		timeout, err := time.ParseDuration(o.Timeout)
		if err != nil {
			return errors.Errorf("parsing timeout: %w", err)
		}
		if timeout < 0 {
			return errors.Errorf("timeout must not be negative")
		}
		o.timeout = timeout
	}

	return nil
}

// ⏱️ Backoff returns the parsed backoff unit. Only meaningful after Validate.
func (o OracleArgs) Backoff() time.Duration {
	return o.backoff
}

// ⏱️ AttemptTimeout returns the parsed per-attempt timeout, zero for none
func (o OracleArgs) AttemptTimeout() time.Duration {
	return o.timeout
}

// 🎯 Rules converts the selection settings for the path filter
func (cfg *Config) Rules() selection.Rules {
	s := cfg.Selection
	return selection.Rules{
		Mode:              selection.Mode(s.Mode),
		ExcludeDirs:       s.ExcludeDirs,
		ExcludeFiles:      s.ExcludeFiles,
		ExcludeExtensions: s.ExcludeExtensions,
		ExcludePatterns:   s.ExcludePatterns,
		RespectGitignore:  s.RespectGitignore,
		IncludeDirs:       s.IncludeDirs,
		IncludeFiles:      s.IncludeFiles,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s/%s %s %s", cfg.Oracle.Provider, cfg.Oracle.Model, cfg.Selection.Mode, cfg.Root)
}

func normalizeAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		n := relpath.Normalize(p)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
