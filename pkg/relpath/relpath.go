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

// Package relpath canonicalizes root-relative paths. Every path used as a map
// key anywhere in autocode goes through Normalize, so "./src//a.py",
// "src\a.py" and "src/a.py" all name the same file.
package relpath

import (
	"path"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Normalize returns the slash-separated, cleaned form of p.
// The root itself (".", "./", "") normalizes to "".
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	if p == "." {
		return ""
	}
	return p
}

// Within reports whether rel lies strictly inside dir. Both must be normalized.
func Within(rel, dir string) bool {
	if dir == "" {
		return rel != ""
	}
	return strings.HasPrefix(rel, dir+"/")
}

// Resolve joins a normalized relative path onto root, refusing anything that
// would land outside root or on root itself.
func Resolve(root, rel string) (string, error) {
	if rel == "" {
		return "", errors.Errorf("empty path refers to the root directory")
	}
	if path.IsAbs(rel) || filepath.IsAbs(rel) {
		return "", errors.Errorf("absolute path %q is outside the root", rel)
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.Errorf("path %q escapes the root", rel)
	}
	return filepath.Join(root, filepath.FromSlash(rel)), nil
}
