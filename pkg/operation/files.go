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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 📂 FilesOperation lists the files a run would send, without contacting
// the oracle
type FilesOperation struct {
	BaseOperation

	paths []string
}

// 🏭 NewFilesOperation creates a new files operation
func NewFilesOperation(opts Options) *FilesOperation {
	return &FilesOperation{BaseOperation: NewBaseOperation(opts)}
}

// Paths returns the selection from the last Execute
func (op *FilesOperation) Paths() []string {
	return op.paths
}

// 🏃 Execute selects files and prints one path per line to Out
func (op *FilesOperation) Execute(ctx context.Context) error {
	paths, err := op.Filter.Select(ctx, op.Config.Root, op.Config.Rules())
	if err != nil {
		return errors.Errorf("selecting files: %w", err)
	}
	op.paths = paths

	for _, p := range paths {
		if _, err := fmt.Fprintln(op.Out, p); err != nil {
			return errors.Errorf("writing listing: %w", err)
		}
	}

	op.Logger.Debugf("Listed %d files in %s mode.", len(paths), op.Config.Selection.Mode)
	return nil
}
