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
	"github.com/walteh/autocode/pkg/relpath"
)

type whitelist struct {
	dirs  map[string]bool
	files map[string]bool
}

func newWhitelist(rules Rules) *whitelist {
	return &whitelist{
		dirs:  normalizedSet(rules.IncludeDirs),
		files: normalizedSet(rules.IncludeFiles),
	}
}

func (w *whitelist) empty() bool {
	return len(w.dirs) == 0 && len(w.files) == 0
}

// descend keeps included directories, anything below them, and every
// ancestor of an included directory or file so listed files stay reachable.
// With no include_dirs the walk is unrestricted and only include_files match.
func (w *whitelist) descend(rel string) bool {
	if len(w.dirs) == 0 {
		return true
	}
	if w.insideIncluded(rel) {
		return true
	}
	for dir := range w.dirs {
		if relpath.Within(dir, rel) {
			return true
		}
	}
	for file := range w.files {
		if relpath.Within(file, rel) {
			return true
		}
	}
	return false
}

func (w *whitelist) keep(rel string) bool {
	if w.files[rel] {
		return true
	}
	for dir := range w.dirs {
		if relpath.Within(rel, dir) {
			return true
		}
	}
	return false
}

func (w *whitelist) insideIncluded(rel string) bool {
	if w.dirs[rel] {
		return true
	}
	for dir := range w.dirs {
		if relpath.Within(rel, dir) {
			return true
		}
	}
	return false
}
