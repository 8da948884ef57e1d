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
package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/bundle"
	"github.com/walteh/autocode/pkg/cost"
	"github.com/walteh/autocode/pkg/instruction"
	"github.com/walteh/autocode/pkg/oracle"
	"github.com/walteh/autocode/pkg/protocol"
)

// 🔄 TransformOperation runs the full pipeline: select, load, read the
// instruction, request, parse, apply, report
type TransformOperation struct {
	BaseOperation

	client      oracle.Client
	getenv      func(string) string
	sleep       oracle.Sleeper
	instruction instruction.Source

	summary *Summary
}

// 🏭 NewTransformOperation creates a new transform operation
func NewTransformOperation(opts Options) *TransformOperation {
	return &TransformOperation{
		BaseOperation: NewBaseOperation(opts),
		client:        opts.Client,
		getenv:        opts.Getenv,
		sleep:         opts.Sleep,
		instruction:   opts.Instruction,
		summary:       &Summary{},
	}
}

// Summary returns what the last Execute did
func (op *TransformOperation) Summary() *Summary {
	return op.summary
}

// 🏃 Execute runs the pipeline. Running out of files or instruction ends
// the run without error. Oracle and configuration failures are returned.
func (op *TransformOperation) Execute(ctx context.Context) error {
	cfg := op.Config
	op.summary = &Summary{DryRun: cfg.DryRun}

	op.Logger.Header("transforming files")
	op.Logger.Infof("Starting the code modification run in %s.", cfg.Root)

	paths, err := op.Filter.Select(ctx, cfg.Root, cfg.Rules())
	if err != nil {
		return errors.Errorf("selecting files: %w", err)
	}
	op.summary.Selected = len(paths)
	if len(paths) == 0 {
		op.Logger.Warning("No files to process. Exiting.")
		return nil
	}

	files, err := op.Loader.Load(ctx, cfg.Root, paths)
	if err != nil {
		return errors.Errorf("loading files: %w", err)
	}
	op.summary.Loaded = files.Len()
	if files.Len() == 0 {
		op.Logger.Error("No file contents to process. Exiting.")
		return nil
	}
	op.Logger.Debugf("Loaded %d files (%d bytes).", files.Len(), files.Bytes())

	op.Logger.Info("Prompting user for instructions for code changes.")
	instr, err := instruction.Read(ctx, op.instruction)
	if err != nil {
		return errors.Errorf("reading instruction: %w", err)
	}
	if instr == "" {
		op.Logger.Warning("No instructions provided. Exiting.")
		return nil
	}
	op.Logger.Info("User has provided the code change instructions.")

	client := op.client
	if client == nil {
		client, err = oracle.New(op.Logger.WithContext(ctx), cfg.Oracle, op.getenv)
		if err != nil {
			return errors.Errorf("creating oracle client: %w", err)
		}
	}

	opts := oracle.OptionsFromConfig(cfg.Oracle)
	opts.Sleep = op.sleep
	requester := oracle.NewRequester(client, op.Logger, opts)

	op.Logger.Infof("Calling %s to process code changes...", client.Name())
	resp, err := requester.Request(ctx, instr, bundle.Assemble(files))
	if err != nil {
		return errors.Errorf("requesting changes: %w", err)
	}
	op.summary.Attempts = resp.Attempts

	op.Logger.Info("Parsing response...")
	edits, deletes := protocol.Parse(resp.Text)
	op.Logger.Infof("Total modified files parsed: %d", edits.Len())
	op.Logger.Infof("Total files to delete parsed: %d", deletes.Len())

	applied := NewApplier(op.Files, op.Logger, cfg.DryRun).Apply(ctx, edits, deletes, files)
	op.summary.merge(applied)

	op.report(resp)

	if cfg.DryRun {
		op.Logger.Success("Dry run complete, no files were changed.")
	} else {
		op.Logger.Success("All applicable files have been processed.")
	}
	return nil
}

// report prints the cost estimate and the summary table
func (op *TransformOperation) report(resp *oracle.Response) {
	if resp.HasUsage {
		op.summary.Usage = resp.Usage
		op.summary.HasUsage = true
		op.summary.Cost = cost.Estimate(
			cost.Tokens{Input: resp.Usage.InputTokens, Output: resp.Usage.OutputTokens},
			cost.Pricing{InputPerMillion: op.Config.Pricing.InputPerMillion, OutputPerMillion: op.Config.Pricing.OutputPerMillion},
		)
		op.Logger.Infof("Estimated cost of this prompt: %s", cost.Format(op.summary.Cost))
	} else {
		op.Logger.Warning("No usage information available for cost estimation.")
	}

	op.Logger.Table("run summary", op.summary.Rows())
}
