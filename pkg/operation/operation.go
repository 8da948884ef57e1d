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
	"io"
	"os"
	"strconv"

	"github.com/walteh/autocode/pkg/bundle"
	"github.com/walteh/autocode/pkg/config"
	"github.com/walteh/autocode/pkg/cost"
	"github.com/walteh/autocode/pkg/instruction"
	"github.com/walteh/autocode/pkg/log"
	"github.com/walteh/autocode/pkg/oracle"
	"github.com/walteh/autocode/pkg/selection"
	"github.com/walteh/autocode/pkg/status"
)

// 🎯 Operation is a single command the runner can execute
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config must already be validated
	Config *config.Config
	// Logger receives console and file output
	Logger *log.Logger
	// Client overrides the oracle built from Config.Oracle
	Client oracle.Client
	// Getenv looks up credentials, defaults to os.Getenv
	Getenv func(string) string
	// Sleep overrides the retry backoff sleeper
	Sleep oracle.Sleeper
	// Instruction says where the change request comes from
	Instruction instruction.Source
	// Out receives plain listings, defaults to os.Stdout
	Out io.Writer
}

// 🧱 BaseOperation holds the collaborators shared by every operation
type BaseOperation struct {
	Config *config.Config
	Logger *log.Logger
	Files  *status.Manager
	Filter *selection.Filter
	Loader *bundle.Loader
	Out    io.Writer
}

// 🏭 NewBaseOperation wires the shared collaborators from opts
func NewBaseOperation(opts Options) BaseOperation {
	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return BaseOperation{
		Config: cfg,
		Logger: logger,
		Files:  status.New(cfg.Root, logger),
		Filter: selection.New(logger),
		Loader: bundle.NewLoader(logger),
		Out:    out,
	}
}

// 📋 Summary describes what a run did
type Summary struct {
	Selected int // paths chosen by the filter
	Loaded   int // paths whose content was sent

	Modified  []string // written with new content, recreated files included
	Unchanged []string // written with identical content
	Deleted   []string
	Skipped   []string // refused or nothing to act on
	Failed    []string

	Attempts int
	Usage    oracle.Usage
	HasUsage bool
	Cost     float64
	DryRun   bool
}

// merge copies the apply outcome into s
func (s *Summary) merge(applied *Summary) {
	s.Modified = applied.Modified
	s.Unchanged = applied.Unchanged
	s.Deleted = applied.Deleted
	s.Skipped = applied.Skipped
	s.Failed = applied.Failed
	s.DryRun = applied.DryRun
}

// Rows renders the summary for log.Table
func (s *Summary) Rows() []log.Row {
	rows := []log.Row{
		{Label: "selected", Value: strconv.Itoa(s.Selected)},
		{Label: "loaded", Value: strconv.Itoa(s.Loaded)},
		{Label: "modified", Value: strconv.Itoa(len(s.Modified))},
		{Label: "unchanged", Value: strconv.Itoa(len(s.Unchanged))},
		{Label: "deleted", Value: strconv.Itoa(len(s.Deleted))},
		{Label: "skipped", Value: strconv.Itoa(len(s.Skipped))},
		{Label: "failed", Value: strconv.Itoa(len(s.Failed))},
	}
	if s.Attempts > 0 {
		rows = append(rows, log.Row{Label: "attempts", Value: strconv.Itoa(s.Attempts)})
	}
	if s.HasUsage {
		rows = append(rows,
			log.Row{Label: "input tokens", Value: strconv.Itoa(s.Usage.InputTokens)},
			log.Row{Label: "output tokens", Value: strconv.Itoa(s.Usage.OutputTokens)},
			log.Row{Label: "estimated cost", Value: cost.Format(s.Cost)},
		)
	}
	if s.DryRun {
		rows = append(rows, log.Row{Label: "dry run", Value: "true"})
	}
	return rows
}
