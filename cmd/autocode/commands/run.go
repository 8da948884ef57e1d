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
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/walteh/autocode/cmd/autocode/opts"
	"github.com/walteh/autocode/pkg/instruction"
	"github.com/walteh/autocode/pkg/operation"
)

// NewRunCmd creates the run command, which is also what the bare root does
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Transform the selected files with an instruction",
		Long: `Run selects files under the root, sends them with your instruction to the
configured code-generation service and applies the edits and deletions it
answers with.

The instruction comes from --instruction, --instruction-file (- for stdin)
or is read interactively until an empty line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTransform(cmd.Context(), o)
		},
	}
}

// RunTransform executes the transform pipeline with o
func RunTransform(ctx context.Context, o *opts.RootOpts) error {
	op := operation.NewTransformOperation(operation.Options{
		Config: o.Config,
		Logger: o.Logger,
		Getenv: o.Getenv,
		Instruction: instruction.Source{
			Text:    o.Instruction,
			TextSet: o.InstructionSet,
			File:    o.InstructionFile,
			Stdin:   o.Stdin,
			Out:     o.Stdout,
		},
		Out: o.Stdout,
	})
	return operation.NewRunner(o.Logger).Run(ctx, op)
}
