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
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/cmd/autocode/commands"
	"github.com/walteh/autocode/cmd/autocode/opts"
	"github.com/walteh/autocode/pkg/config"
	"github.com/walteh/autocode/pkg/log"
)

// newRootCmd creates the root command. With no subcommand it runs the
// transformation.
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autocode",
		Short: "Apply an instruction to a whole directory of code",
		Long: `autocode selects files under a root directory, sends them together with an
instruction to a code-generation service and writes back the files it
returns.

Configuration is read from .autocode.yaml, .autocode.yml, .autocode.hcl or
.autocode.json in the working directory when present. Flags override it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, o)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunTransform(cmd.Context(), o)
		},
	}

	addRootFlags(cmd.PersistentFlags(), o)

	cmd.AddCommand(
		commands.NewRunCmd(o),
		commands.NewFilesCmd(o),
		newVersionCmd(o),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(flags *pflag.FlagSet, o *opts.RootOpts) {
	flags.StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: discover .autocode.* in the working directory)")
	flags.StringVar(&o.Root, "root", "", "directory to transform")
	flags.StringVar(&o.Mode, "mode", "", "selection mode: blacklist or whitelist")
	flags.BoolVarP(&o.Debug, "debug", "d", false, "echo debug output to the console")

	flags.StringVar(&o.Provider, "provider", "", "code-generation service: openai, ollama or gemini")
	flags.StringVarP(&o.Model, "model", "m", "", "model name")
	flags.IntVar(&o.MaxRetries, "max-retries", 0, "attempts before giving up")
	flags.Float64Var(&o.Temperature, "temperature", 0, "sampling temperature")
	flags.IntVar(&o.MaxTokens, "max-tokens", 0, "maximum output tokens")

	flags.StringVarP(&o.Instruction, "instruction", "i", "", "instruction text")
	flags.StringVarP(&o.InstructionFile, "instruction-file", "f", "", "read the instruction from a file, - for stdin")
	flags.BoolVar(&o.DryRun, "dry-run", false, "report changes without writing them")
}

// setup loads .env and the configuration, applies flag overrides and opens
// the logger
func setup(cmd *cobra.Command, o *opts.RootOpts) error {
	ctx := cmd.Context()

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Errorf("loading .env: %w", err)
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}

	var cfg *config.Config
	var err error
	if o.ConfigFile != "" {
		cfg, err = config.Load(ctx, o.ConfigFile)
		o.ConfigPath = o.ConfigFile
	} else {
		cfg, o.ConfigPath, err = config.Discover(ctx, ".")
	}
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	applyOverrides(cmd.Flags(), o, cfg)
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}
	o.Config = cfg

	o.Logger = log.New(o.Stderr, o.Debug, log.FileSinks(log.FileOptions{
		BasicFile:   cfg.Logging.BasicFile,
		VerboseFile: cfg.Logging.VerboseFile,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
	})...)

	if o.ConfigPath != "" {
		o.Logger.Debugf("Using configuration from %s (%s).", o.ConfigPath, cfg)
	} else {
		o.Logger.Debugf("No configuration file found, using defaults (%s).", cfg)
	}
	return nil
}

// applyOverrides copies every flag the user set onto cfg
func applyOverrides(flags *pflag.FlagSet, o *opts.RootOpts, cfg *config.Config) {
	if flags.Changed("root") {
		cfg.Root = o.Root
	}
	if flags.Changed("mode") {
		cfg.Selection.Mode = o.Mode
	}
	if flags.Changed("provider") {
		cfg.Oracle.Provider = o.Provider
		if !flags.Changed("model") {
			// the previous model belongs to the previous provider
			cfg.Oracle.Model = ""
		}
	}
	if flags.Changed("model") {
		cfg.Oracle.Model = o.Model
	}
	if flags.Changed("max-retries") {
		cfg.Oracle.MaxRetries = o.MaxRetries
	}
	if flags.Changed("temperature") {
		cfg.Oracle.Temperature = o.Temperature
	}
	if flags.Changed("max-tokens") {
		cfg.Oracle.MaxTokens = o.MaxTokens
	}
	o.InstructionSet = flags.Changed("instruction")
	if flags.Changed("dry-run") {
		cfg.DryRun = o.DryRun
	}
}
