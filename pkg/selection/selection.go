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

package selection

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/log"
	"github.com/walteh/autocode/pkg/relpath"
)

// 🎯 Mode picks which rule set decides eligibility
type Mode string

const (
	ModeBlacklist Mode = "blacklist"
	ModeWhitelist Mode = "whitelist"
)

// 📋 Rules describes which files under the root are eligible.
// Only the sets belonging to Mode are consulted.
type Rules struct {
	Mode Mode

	// blacklist
	ExcludeDirs       []string
	ExcludeFiles      []string
	ExcludeExtensions []string
	ExcludePatterns   []string // doublestar globs against the relative path
	RespectGitignore  bool     // also honor <root>/.gitignore

	// whitelist
	IncludeDirs  []string
	IncludeFiles []string
}

// matcher decides pruning and eligibility for one mode
type matcher interface {
	// descend reports whether the walk should enter the directory rel
	descend(rel string) bool
	// keep reports whether the file rel is a candidate
	keep(rel string) bool
}

// 🔍 Filter walks a root directory and applies Rules
type Filter struct {
	logger *log.Logger
}

// 🏭 New creates a new Filter
func New(logger *log.Logger) *Filter {
	if logger == nil {
		logger = log.Nop()
	}
	return &Filter{logger: logger}
}

// 🚶 Select returns the slash-separated paths, relative to root, of every
// regular file the rules admit. The order is the lexical walk order.
//
// Unreadable subdirectories and vanished files are dropped with a warning.
// Only an unusable root or an unknown mode is an error.
func (f *Filter) Select(ctx context.Context, root string, rules Rules) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("reading root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %s is not a directory", root)
	}

	var m matcher
	switch rules.Mode {
	case ModeBlacklist, "":
		bl, err := newBlacklist(root, rules)
		if err != nil {
			return nil, err
		}
		m = bl
	case ModeWhitelist:
		wl := newWhitelist(rules)
		if wl.empty() {
			f.logger.Warning("Whitelist mode has no include_dirs or include_files; nothing to process.")
			return []string{}, nil
		}
		m = wl
	default:
		return nil, errors.Errorf("unknown selection mode %q", rules.Mode)
	}

	candidates, err := f.walk(ctx, root, m)
	if err != nil {
		return nil, err
	}
	f.logger.Infof("Total files to process: %d", len(candidates))

	if rules.Mode != ModeWhitelist {
		candidates = withoutExtensions(candidates, rules.ExcludeExtensions)
		f.logger.Infof("Using blacklist mode with %d files after exclusions.", len(candidates))
	} else {
		f.logger.Infof("Using whitelist mode with %d files.", len(candidates))
	}

	existing := f.verify(root, candidates)
	f.logger.Infof("Existing files to process: %d", len(existing))
	return existing, nil
}

func (f *Filter) walk(ctx context.Context, root string, m matcher) ([]string, error) {
	candidates := []string{}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == root {
				return errors.Errorf("walking root %s: %w", root, err)
			}
			f.logger.Warningf("Skipping %s: %v", p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", p, err)
		}
		rel = relpath.Normalize(filepath.ToSlash(rel))

		if d.IsDir() {
			if rel == "" || m.descend(rel) {
				return nil
			}
			f.logger.Debugf("pruned directory %s", rel)
			return filepath.SkipDir
		}

		if m.keep(rel) {
			candidates = append(candidates, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// verify drops candidates that are no longer existing regular files
func (f *Filter) verify(root string, candidates []string) []string {
	existing := make([]string, 0, len(candidates))
	for _, rel := range candidates {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil || !info.Mode().IsRegular() {
			f.logger.Warningf("File %s does not exist. Skipping.", rel)
			continue
		}
		existing = append(existing, rel)
	}
	return existing
}

// withoutExtensions drops paths whose lowercase form ends with any excluded
// extension. Entries are plain suffixes, so ".min.js" works as well as ".js".
func withoutExtensions(paths, exts []string) []string {
	if len(exts) == 0 {
		return paths
	}
	lowered := make([]string, 0, len(exts))
	for _, e := range exts {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			lowered = append(lowered, e)
		}
	}

	out := make([]string, 0, len(paths))
outer:
	for _, p := range paths {
		lp := strings.ToLower(p)
		for _, e := range lowered {
			if strings.HasSuffix(lp, e) {
				continue outer
			}
		}
		out = append(out, p)
	}
	return out
}

// normalizedSet builds a lookup of normalized, non-empty entries
func normalizedSet(entries []string) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		if n := relpath.Normalize(e); n != "" {
			set[n] = true
		}
	}
	return set
}
