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
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/log"
)

// 🏃 Runner executes operations one at a time
type Runner struct {
	logger *log.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Nop()
	}
	return &Runner{logger: logger}
}

// 🏃 Run executes op synchronously with the logger attached to ctx
func (r *Runner) Run(ctx context.Context, op Operation) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}

	start := time.Now()
	err := op.Execute(r.logger.WithContext(ctx))
	r.logger.Zerolog().Debug().Dur("elapsed", time.Since(start)).Bool("ok", err == nil).Msg("operation finished")

	if err != nil {
		return errors.Errorf("executing operation: %w", err)
	}
	return nil
}
