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
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/autocode/pkg/relpath"
)

type blacklist struct {
	dirs     map[string]bool
	files    map[string]bool
	patterns []string
	git      *ignore.GitIgnore
}

func newBlacklist(root string, rules Rules) (*blacklist, error) {
	bl := &blacklist{
		dirs:  normalizedSet(rules.ExcludeDirs),
		files: normalizedSet(rules.ExcludeFiles),
	}

	for _, p := range rules.ExcludePatterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid exclude pattern %q", p)
		}
		bl.patterns = append(bl.patterns, p)
	}

	if rules.RespectGitignore {
		gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
		switch {
		case err == nil:
			bl.git = gi
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, errors.Errorf("reading .gitignore: %w", err)
		}
	}

	return bl, nil
}

func (b *blacklist) descend(rel string) bool {
	if b.dirs[rel] {
		return false
	}
	if b.git != nil && b.git.MatchesPath(rel+"/") {
		return false
	}
	return true
}

func (b *blacklist) keep(rel string) bool {
	for dir := range b.dirs {
		if relpath.Within(rel, dir) {
			return false
		}
	}
	if b.files[rel] {
		return false
	}
	if b.matchesPattern(rel) {
		return false
	}
	if b.git != nil && b.git.MatchesPath(rel) {
		return false
	}
	return true
}

func (b *blacklist) matchesPattern(rel string) bool {
	for _, p := range b.patterns {
		// patterns were validated up front, so Match cannot fail here
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
