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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// hclConfig mirrors Config with every attribute optional, so only the
// attributes present in the file override the defaults
type hclConfig struct {
	Root   *string `hcl:"root,optional"`
	DryRun *bool   `hcl:"dry_run,optional"`

	Selection *struct {
		Mode              *string   `hcl:"mode,optional"`
		ExcludeDirs       *[]string `hcl:"exclude_dirs,optional"`
		ExcludeFiles      *[]string `hcl:"exclude_files,optional"`
		ExcludeExtensions *[]string `hcl:"exclude_extensions,optional"`
		ExcludePatterns   *[]string `hcl:"exclude_patterns,optional"`
		RespectGitignore  *bool     `hcl:"respect_gitignore,optional"`
		IncludeDirs       *[]string `hcl:"include_dirs,optional"`
		IncludeFiles      *[]string `hcl:"include_files,optional"`
	} `hcl:"selection,block"`

	Oracle *struct {
		Provider    *string  `hcl:"provider,optional"`
		Model       *string  `hcl:"model,optional"`
		BaseURL     *string  `hcl:"base_url,optional"`
		APIKeyEnv   *string  `hcl:"api_key_env,optional"`
		Temperature *float64 `hcl:"temperature,optional"`
		MaxTokens   *int     `hcl:"max_tokens,optional"`
		MaxRetries  *int     `hcl:"max_retries,optional"`
		BackoffUnit *string  `hcl:"backoff_unit,optional"`
		Timeout     *string  `hcl:"timeout,optional"`
	} `hcl:"oracle,block"`

	Pricing *struct {
		InputPerMillion  *float64 `hcl:"input_per_million,optional"`
		OutputPerMillion *float64 `hcl:"output_per_million,optional"`
	} `hcl:"pricing,block"`

	Logging *struct {
		BasicFile   *string `hcl:"basic_file,optional"`
		VerboseFile *string `hcl:"verbose_file,optional"`
		MaxSizeMB   *int    `hcl:"max_size_mb,optional"`
		MaxBackups  *int    `hcl:"max_backups,optional"`
	} `hcl:"logging,block"`
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := Default()
	set(&cfg.Root, raw.Root)
	set(&cfg.DryRun, raw.DryRun)

	if s := raw.Selection; s != nil {
		set(&cfg.Selection.Mode, s.Mode)
		set(&cfg.Selection.ExcludeDirs, s.ExcludeDirs)
		set(&cfg.Selection.ExcludeFiles, s.ExcludeFiles)
		set(&cfg.Selection.ExcludeExtensions, s.ExcludeExtensions)
		set(&cfg.Selection.ExcludePatterns, s.ExcludePatterns)
		set(&cfg.Selection.RespectGitignore, s.RespectGitignore)
		set(&cfg.Selection.IncludeDirs, s.IncludeDirs)
		set(&cfg.Selection.IncludeFiles, s.IncludeFiles)
	}

	if o := raw.Oracle; o != nil {
		set(&cfg.Oracle.Provider, o.Provider)
		set(&cfg.Oracle.Model, o.Model)
		set(&cfg.Oracle.BaseURL, o.BaseURL)
		set(&cfg.Oracle.APIKeyEnv, o.APIKeyEnv)
		set(&cfg.Oracle.Temperature, o.Temperature)
		set(&cfg.Oracle.MaxTokens, o.MaxTokens)
		set(&cfg.Oracle.MaxRetries, o.MaxRetries)
		set(&cfg.Oracle.BackoffUnit, o.BackoffUnit)
		set(&cfg.Oracle.Timeout, o.Timeout)
	}

	if pr := raw.Pricing; pr != nil {
		set(&cfg.Pricing.InputPerMillion, pr.InputPerMillion)
		set(&cfg.Pricing.OutputPerMillion, pr.OutputPerMillion)
	}

	if l := raw.Logging; l != nil {
		set(&cfg.Logging.BasicFile, l.BasicFile)
		set(&cfg.Logging.VerboseFile, l.VerboseFile)
		set(&cfg.Logging.MaxSizeMB, l.MaxSizeMB)
		set(&cfg.Logging.MaxBackups, l.MaxBackups)
	}

	return cfg, nil
}

// evalContext exposes env.<NAME> and a few string helpers to expressions
func evalContext() *hcl.EvalContext {
	env := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && hclsyntaxIdent(k) {
			env[k] = cty.StringVal(v)
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
			"concat": stdlib.ConcatFunc,
		},
	}
}

// hclsyntaxIdent reports whether name can be used as an attribute name
func hclsyntaxIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
