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

	"github.com/walteh/autocode/pkg/bundle"
	"github.com/walteh/autocode/pkg/log"
	"github.com/walteh/autocode/pkg/protocol"
	"github.com/walteh/autocode/pkg/relpath"
	"github.com/walteh/autocode/pkg/status"
)

// 💾 Store is the file system surface the applier works through
type Store interface {
	status.FileManager
	status.StatusReporter
}

// ✍️ Applier writes parsed edits and deletions to disk
type Applier struct {
	store  Store
	logger *log.Logger
	dryRun bool
}

// 🏭 NewApplier creates a new Applier. In dry-run mode nothing is written
// and the summary describes what would have changed.
func NewApplier(store Store, logger *log.Logger, dryRun bool) *Applier {
	if logger == nil {
		logger = log.Nop()
	}
	return &Applier{store: store, logger: logger, dryRun: dryRun}
}

// 🏃 Apply runs every deletion, then every edit.
//
// Edits are only written for paths present in files. A path that is both
// deleted and edited ends up recreated with the edited content. Per-path
// failures are recorded in the summary and never stop the run.
func (a *Applier) Apply(ctx context.Context, edits *protocol.EditSet, deletes *protocol.DeleteSet, files *bundle.FileSet) *Summary {
	sum := &Summary{DryRun: a.dryRun}

	a.store.StartOperation(ctx, "apply", deletes.Len()+edits.Len())
	defer a.store.FinishOperation(ctx)
	done := 0

	if deletes.Len() == 0 {
		a.logger.Info("No files to delete.")
	} else {
		a.logger.Info("Processing file deletions...")
	}
	for _, p := range deletes.Paths() {
		if ctx.Err() != nil {
			a.record(ctx, sum, status.FileInfo{Path: p, Status: status.StatusSkipped, Action: "delete", Detail: "canceled"})
		} else {
			a.delete(ctx, sum, p)
		}
		done++
		a.store.UpdateProgress(ctx, done)
	}

	if edits.Len() == 0 {
		a.logger.Info("No file modifications received.")
	}
	for _, p := range edits.Paths() {
		content, _ := edits.Get(p)
		if ctx.Err() != nil {
			a.record(ctx, sum, status.FileInfo{Path: p, Status: status.StatusSkipped, Action: "write", Detail: "canceled"})
		} else {
			a.write(ctx, sum, p, content, files)
		}
		done++
		a.store.UpdateProgress(ctx, done)
	}

	return sum
}

func (a *Applier) delete(ctx context.Context, sum *Summary, p string) {
	info := status.FileInfo{Path: p, Action: "delete"}

	if _, err := relpath.Resolve(".", p); err != nil {
		info.Status = status.StatusSkipped
		info.Detail = "refused, outside the root"
		a.logger.Debugf("Refusing to delete %q: %v", p, err)
		a.record(ctx, sum, info)
		return
	}

	kind, err := a.store.Stat(ctx, p)
	if err != nil {
		info.Status = status.StatusFailed
		info.Error = err
		a.record(ctx, sum, info)
		return
	}

	switch kind {
	case status.KindMissing:
		info.Status = status.StatusSkipped
		info.Detail = "does not exist"
		a.record(ctx, sum, info)
		return
	case status.KindOther:
		info.Status = status.StatusSkipped
		info.Detail = "not a regular file or directory"
		a.record(ctx, sum, info)
		return
	case status.KindDir:
		info.IsDir = true
		info.Detail = "directory"
		if !a.dryRun {
			err = a.store.RemoveDir(ctx, p)
		}
	default:
		info.Detail = "file"
		if !a.dryRun {
			err = a.store.DeleteFile(ctx, p)
		}
	}

	if err != nil {
		info.Status = status.StatusFailed
		info.Error = err
	} else {
		info.Status = status.StatusDeleted
		if a.dryRun {
			info.Detail = "would delete " + info.Detail
		}
	}
	a.record(ctx, sum, info)
}

func (a *Applier) write(ctx context.Context, sum *Summary, p, content string, files *bundle.FileSet) {
	info := status.FileInfo{Path: p, Action: "write"}

	if !files.Has(p) {
		info.Status = status.StatusSkipped
		info.Detail = "not among the selected files"
		a.record(ctx, sum, info)
		return
	}

	content = protocol.EnsureTrailingNewline(content)

	existing, readErr := a.store.ReadFile(ctx, p)
	existed := readErr == nil
	stats := diffLines(string(existing), content)

	switch {
	case existed && string(existing) == content:
		info.Status = status.StatusUnchanged
		info.Detail = "no changes"
	case existed:
		info.Status = status.StatusModified
		info.Detail = stats.String()
	default:
		info.Status = status.StatusNew
		info.Detail = "recreated " + stats.String()
	}
	if a.dryRun {
		if info.Status != status.StatusUnchanged {
			info.Detail = "would write " + stats.String()
		}
	} else if err := a.store.WriteFileAtomic(ctx, p, []byte(content)); err != nil {
		info.Status = status.StatusFailed
		info.Error = err
	}

	info.Size = int64(len(content))
	info.Checksum = status.Checksum([]byte(content))
	a.record(ctx, sum, info)

	if info.Status != status.StatusFailed {
		a.logger.Debugf("Updated content for %s:\n%s", p, content)
	}
}

// record tracks info and tallies it in sum
func (a *Applier) record(ctx context.Context, sum *Summary, info status.FileInfo) {
	a.store.TrackFile(ctx, info)

	switch info.Status {
	case status.StatusNew, status.StatusModified:
		sum.Modified = append(sum.Modified, info.Path)
	case status.StatusUnchanged:
		sum.Unchanged = append(sum.Unchanged, info.Path)
	case status.StatusDeleted:
		sum.Deleted = append(sum.Deleted, info.Path)
	case status.StatusFailed:
		sum.Failed = append(sum.Failed, info.Path)
	default:
		sum.Skipped = append(sum.Skipped, info.Path)
	}
}
