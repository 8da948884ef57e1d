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
/*
Package operation implements the commands autocode runs.

	+-------------+
	|  Operation  |
	|  (Pipeline) |
	+------+------+
	       |
	+------+------+
	|   Applier   |
	| (Changes)   |
	+------+------+

🎯 Purpose:
  - TransformOperation: select files, bundle them, ask the oracle, parse
    the answer and apply it
  - FilesOperation: print the selection without sending anything
  - Applier: deletions first, then edits restricted to the files that
    were sent

🔄 Flow:
 1. selection picks paths under the root
 2. bundle loads them and renders the payload
 3. instruction reads the change request
 4. oracle sends it with retries
 5. protocol parses edits and deletions
 6. Applier writes through the status manager
 7. a summary table and cost estimate close the run

🔍 Example:

	op := operation.NewTransformOperation(operation.Options{
		Config:      cfg,
		Logger:      logger,
		Instruction: instruction.Source{Text: "add type hints"},
	})
	if err := operation.NewRunner(logger).Run(ctx, op); err != nil {
		return err
	}
	fmt.Println(len(op.Summary().Modified))
*/
package operation
