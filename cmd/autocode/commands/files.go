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
	"github.com/spf13/cobra"

	"github.com/walteh/autocode/cmd/autocode/opts"
	"github.com/walteh/autocode/pkg/operation"
)

// NewFilesCmd creates the files command
func NewFilesCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List the files a run would send",
		Long: `Files applies the selection rules and prints one path per line, relative
to the root. Nothing is sent and nothing is changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := operation.NewFilesOperation(operation.Options{
				Config: o.Config,
				Logger: o.Logger,
				Out:    o.Stdout,
			})
			return operation.NewRunner(o.Logger).Run(cmd.Context(), op)
		},
	}
}
